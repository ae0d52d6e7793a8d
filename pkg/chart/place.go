package chart

import (
	"math"
)

// Label is a placed text element.
type Label struct {
	Text
	Class Class `json:"class"`
	// Size is the unrotated measured size.
	Size Size `json:"size"`
	// Value is the numeric Y label value; zero for other classes.
	Value float64 `json:"value,omitempty"`
}

// Bar is the geometry of one bar. X and Width are fixed by Plot; Y, Height
// and Value change with every Update.
type Bar struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Value  float64 `json:"value"`
}

// Rect returns the bar as a rectangle.
func (b Bar) Rect() Rect { return Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height} }

// Layout is the geometry produced by Plot.
type Layout struct {
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Footprints Footprints `json:"footprints"`
	Content    ContentBox `json:"content"`
	BarWidth   float64    `json:"bar_width"`
	GapWidth   float64    `json:"gap_width"`
	MinValue   float64    `json:"min_value"`
	// MaxValue is the resolved maximum; nil when bars scale against the
	// largest value of each Update.
	MaxValue *float64 `json:"max_value,omitempty"`

	Title   *Label  `json:"title,omitempty"`
	XLegend *Label  `json:"x_legend,omitempty"`
	YLegend *Label  `json:"y_legend,omitempty"`
	XLabels []Label `json:"x_labels,omitempty"`
	YLabels []Label `json:"y_labels,omitempty"`
	Lines   []Line  `json:"lines,omitempty"`
	Bars    []Bar   `json:"bars"`
	// Values are the values of the last Update, nil before the first one.
	Values []float64 `json:"values,omitempty"`
}

// place positions every element. Bars are created with zero height at the
// content baseline.
func place(c Config, ms measurements, box ContentBox, barWidth, gapWidth float64) *Layout {
	l := &Layout{
		Width:      c.Width,
		Height:     c.Height,
		Footprints: ms.Footprints,
		Content:    box,
		BarWidth:   barWidth,
		GapWidth:   gapWidth,
		MinValue:   c.MinValue,
	}
	if max, ok := c.ResolvedMax(); ok {
		l.MaxValue = Float(max)
	}

	l.Title = placeTitle(c, ms.title)
	l.XLegend = placeXLegend(c, box, ms.xLegend)
	l.YLegend = placeYLegend(c, box, ms.yLegend)
	l.XLabels = placeXLabels(c, box, barWidth, gapWidth, ms.xLabels)
	l.YLabels, l.Lines = placeYLabels(c, box, ms.yLabels)

	l.Bars = make([]Bar, c.Size)
	for i := range l.Bars {
		l.Bars[i] = Bar{X: BarX(box, barWidth, gapWidth, i), Y: box.Bottom(), Width: barWidth}
	}
	return l
}

// placeTitle centres the title on the full canvas width with its baseline one
// text height below the padding.
func placeTitle(c Config, s Size) *Label {
	if c.Title == "" {
		return nil
	}
	return &Label{
		Text:  Text{Content: c.Title, X: c.Width/2 - s.Width/2, Y: c.Padding + s.Height},
		Class: ClassTitle,
		Size:  s,
	}
}

// placeXLegend centres the X legend over the content box, on the bottom
// padding edge.
func placeXLegend(c Config, box ContentBox, s Size) *Label {
	if c.XLegend == "" {
		return nil
	}
	return &Label{
		Text:  Text{Content: c.XLegend, X: box.X + box.Width/2 - s.Width/2, Y: c.Height - c.Padding},
		Class: ClassXLegend,
		Size:  s,
	}
}

// placeYLegend anchors the Y legend one text height right of the padding,
// vertically centred on the content box, and rotates it by -90 degrees.
func placeYLegend(c Config, box ContentBox, s Size) *Label {
	if c.YLegend == "" {
		return nil
	}
	return &Label{
		Text: Text{
			Content:  c.YLegend,
			X:        c.Padding + s.Height,
			Y:        box.Y + box.Height/2 + s.Width/2,
			Rotation: -90,
		},
		Class: ClassYLegend,
		Size:  s,
	}
}

// placeXLabels centres each label's rotated footprint under its bar. The
// sin(θ)·h term moves the pivot so the visible box, not the baseline origin,
// is centred. Empty labels produce no Label and so no text primitive, but
// keep their bar slot.
func placeXLabels(c Config, box ContentBox, barWidth, gapWidth float64, sizes []Size) []Label {
	var labels []Label
	sin := math.Sin(radians(c.XLabelsRotation))
	for i, s := range sizes {
		if c.XLabels[i] == "" {
			continue
		}
		horizontal, vertical := RotatedFootprint(s, c.XLabelsRotation)
		x := BarX(box, barWidth, gapWidth, i) + barWidth/2 - horizontal/2 + sin*s.Height
		y := box.Bottom() + c.XLabelsGap + vertical
		labels = append(labels, Label{
			Text:  Text{Content: c.XLabels[i], X: x, Y: y, Rotation: -c.XLabelsRotation},
			Class: ClassXLabel,
			Size:  s,
		})
	}
	return labels
}

// placeYLabels right-aligns each Y label against the content box and returns
// the matching reference lines when enabled.
func placeYLabels(c Config, box ContentBox, sizes []Size) ([]Label, []Line) {
	var (
		labels []Label
		lines  []Line
	)
	max, _ := c.ResolvedMax()
	for i, s := range sizes {
		y := YLabelPosition(box, c.YLabels[i], c.MinValue, max)
		if text := c.YLabelText(i); text != "" {
			labels = append(labels, Label{
				Text:  Text{Content: text, X: box.X - c.YLabelsGap - s.Width, Y: y + s.Height/3},
				Class: ClassYLabel,
				Size:  s,
				Value: c.YLabels[i],
			})
		}
		if c.ShowHorizontalLines {
			lines = append(lines, Line{X1: box.X, Y1: y, X2: box.Right(), Y2: y})
		}
	}
	return labels, lines
}

// YLabelPosition returns the y coordinate of a Y label value. The height
// fraction is clamped to [0, 1], so values outside [min, max] stick to the
// nearest edge of the content box.
func YLabelPosition(box ContentBox, value, min, max float64) float64 {
	fraction := (value - min) / (max - min)
	fraction = math.Min(1, math.Max(0, fraction))
	return box.Bottom() - box.Height*fraction
}

// BarHeight maps value to a pixel height. It is not clamped.
func BarHeight(box ContentBox, value, min, max float64) float64 {
	return box.Height * (value - min) / (max - min)
}
