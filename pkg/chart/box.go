package chart

import (
	errs "github.com/matzehuels/barchart/pkg/errors"
)

// ContentBox is the area left for bars and reference lines once padding,
// title, legends and labels are subtracted from the canvas.
type ContentBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom returns the y coordinate of the baseline bars grow from.
func (b ContentBox) Bottom() float64 { return b.Y + b.Height }

// Right returns the x coordinate of the right edge.
func (b ContentBox) Right() float64 { return b.X + b.Width }

// ResolveContentBox subtracts every margin from the canvas. Absent title,
// legends and labels have zero footprints, so their terms drop out.
func ResolveContentBox(c Config, fp Footprints) ContentBox {
	var b ContentBox
	b.Y = c.Padding + fp.TitleHeight + c.TitleGap
	b.Height = c.Height - b.Y - c.Padding - c.XLabelsGap - fp.XLabelsHeight - c.XLegendGap - fp.XLegendHeight
	b.X = c.Padding + fp.YLegendWidth + c.YLegendGap + fp.YLabelsWidth + c.YLabelsGap
	b.Width = c.Width - b.X - c.Padding
	return b
}

// BarSpacing splits contentWidth between size bars and size-1 gaps. With a
// single bar there is no gap and gapWidth is 0.
func BarSpacing(contentWidth, gapFraction float64, size int) (barWidth, gapWidth float64) {
	barWidth = contentWidth * (1 - gapFraction) / float64(size)
	if size > 1 {
		gapWidth = contentWidth * gapFraction / float64(size-1)
	}
	return barWidth, gapWidth
}

// BarX returns the left edge of bar i.
func BarX(b ContentBox, barWidth, gapWidth float64, i int) float64 {
	return b.X + float64(i)*(barWidth+gapWidth)
}

func checkContentBox(b ContentBox) error {
	if b.Width < 0 || b.Height < 0 {
		return errs.New(errs.ErrCodeContentOverflow,
			"margins exceed the canvas: content box is %.2fx%.2f", b.Width, b.Height)
	}
	return nil
}
