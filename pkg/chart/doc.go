// Package chart implements the bar chart layout engine.
//
// # Overview
//
// The engine turns a declarative [Config] (canvas size, padding, label text,
// rotation angle, gaps) into the concrete geometry of every visual element of a
// bar chart: title, axis legends, axis labels, horizontal reference lines and
// bars. Text size feeds back into the space left for the bars, so the engine
// measures all text first and only then resolves the plotting area.
//
// A single [Engine] runs in two phases:
//
//  1. [Engine.Plot] measures text, resolves the [ContentBox], derives bar width
//     and gap width, and places every element. It discards whatever was drawn
//     before.
//  2. [Engine.Update] re-runs only the value-to-pixel mapping for a new set of
//     values and patches the bars in place. Labels, legends and the title are
//     left untouched.
//
// # Collaborators
//
// The engine never touches fonts or pixels directly. It relies on two
// capabilities supplied by the host:
//
//   - [Measurer] returns the unrotated bounding box of a string for a style
//     [Class]. See package fonts for a TrueType implementation.
//   - [Surface] receives rect, line and text primitives tagged with a [Class]
//     and can patch a rect in place. See package render/scene for a retained
//     implementation that the SVG and PNG sinks consume.
//
// Without a surface the engine still computes a full [Layout], which is how
// most of the tests in this package exercise it.
//
// # Geometry
//
// The content box is what remains of the canvas after padding, title, legends
// and labels are subtracted:
//
//	contentY      = padding + titleHeight + titleGap
//	contentHeight = height - contentY - padding - xLabelsGap - xLabelsHeight - xLegendGap - xLegendHeight
//	contentX      = padding + yLegendWidth + yLegendGap + yLabelsWidth + yLabelsGap
//	contentWidth  = width - contentX - padding
//	gapWidth      = contentWidth * gapFraction / (size - 1)   // 0 when size == 1
//	barWidth      = contentWidth * (1 - gapFraction) / size
//
// X labels rotated by θ degrees occupy sin(θ)·w + cos(θ)·h vertically and
// sin(θ)·h + cos(θ)·w horizontally. The Y legend is rotated by -90 degrees, so
// its horizontal footprint is its unrotated height.
//
// Y labels are positioned with a height fraction clamped to [0, 1]. Bars are
// not clamped: values outside [MinValue, MaxValue] overflow the content box or
// get a negative height so out-of-range data stays visible.
//
// # Usage
//
//	cfg := chart.DefaultConfig()
//	cfg.Size = 3
//	cfg.XLabels = []string{"Jan", "Feb", "Mar"}
//	cfg.YLabels = []float64{0, 50, 100}
//
//	eng := chart.New(fonts.Default(), chart.WithSurface(scene.New()))
//	layout, err := eng.Plot(cfg)
//	if err != nil {
//	    return err
//	}
//	err = eng.Update([]float64{20, 70, 40})
//
// An Engine is not safe for concurrent use.
package chart
