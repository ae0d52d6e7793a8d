package chart

import (
	"math"
	"strconv"
)

// Footprints holds the space taken by text around the content box.
type Footprints struct {
	TitleHeight   float64 `json:"title_height"`
	XLegendHeight float64 `json:"x_legend_height"`
	// YLegendWidth is the unrotated height of the Y legend, which is drawn
	// rotated by -90 degrees.
	YLegendWidth float64 `json:"y_legend_width"`
	// XLabelsHeight is the largest rotated vertical footprint over all X
	// labels; every X label shares one row of this height.
	XLabelsHeight float64 `json:"x_labels_height"`
	YLabelsWidth  float64 `json:"y_labels_width"`
}

// measurements is the output of the measuring stage: footprints plus the
// unrotated size of every text element, so placement does not measure twice.
type measurements struct {
	Footprints
	title   Size
	xLegend Size
	yLegend Size
	xLabels []Size
	yLabels []Size
}

// measure runs the title, legend and label measurers. Empty strings are not
// passed to m and measure as zero.
func measure(m Measurer, c Config) measurements {
	var ms measurements

	ms.title = measureText(m, c.Title, ClassTitle)
	ms.TitleHeight = ms.title.Height

	ms.xLegend = measureText(m, c.XLegend, ClassXLegend)
	ms.XLegendHeight = ms.xLegend.Height

	ms.yLegend = measureText(m, c.YLegend, ClassYLegend)
	ms.YLegendWidth = ms.yLegend.Height

	ms.xLabels = make([]Size, c.xLabelCount())
	for i := range ms.xLabels {
		ms.xLabels[i] = measureText(m, c.XLabels[i], ClassXLabel)
		_, vertical := RotatedFootprint(ms.xLabels[i], c.XLabelsRotation)
		ms.XLabelsHeight = math.Max(ms.XLabelsHeight, vertical)
	}

	ms.yLabels = make([]Size, len(c.YLabels))
	for i := range ms.yLabels {
		ms.yLabels[i] = measureText(m, c.YLabelText(i), ClassYLabel)
		ms.YLabelsWidth = math.Max(ms.YLabelsWidth, ms.yLabels[i].Width)
	}

	return ms
}

func measureText(m Measurer, text string, class Class) Size {
	if text == "" {
		return Size{}
	}
	s := m.Measure(text, class)
	return Size{Width: math.Max(0, s.Width), Height: math.Max(0, s.Height)}
}

// RotatedFootprint returns the horizontal and vertical space taken by a text
// box of size s rotated by degrees. For 0 degrees it returns s unchanged.
func RotatedFootprint(s Size, degrees float64) (horizontal, vertical float64) {
	if degrees == 0 {
		return s.Width, s.Height
	}
	sin, cos := math.Sincos(radians(degrees))
	horizontal = sin*s.Height + cos*s.Width
	vertical = sin*s.Width + cos*s.Height
	return horizontal, vertical
}

func radians(degrees float64) float64 { return math.Pi / 180 * degrees }

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
