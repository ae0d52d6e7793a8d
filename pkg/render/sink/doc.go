// Package sink provides output format renderers for bar charts.
//
// # Overview
//
// A "sink" transforms a drawn [scene.Scene] (or, for JSON, the computed
// [chart.Layout]) into a final output format:
//
//   - SVG: Scalable vector graphics built with svgo
//   - PNG: Raster image drawn natively with gg
//   - PDF: Print-ready output (requires rsvg-convert)
//   - JSON: Layout geometry export for external tools
//
// # SVG Output
//
// [RenderSVG] writes a document whose viewBox matches the chart size, a
// stylesheet generated from [styles.Sheet] and one element per primitive,
// each carrying its class name. Rotated text is placed with a
// "translate(x y) rotate(a)" transform.
//
//	sc := scene.New()
//	engine := chart.New(fonts.Default(), chart.WithSurface(sc))
//	_, err := engine.Plot(cfg)
//	svg := sink.RenderSVG(sc, sink.WithEmbeddedFont())
//
// # PNG Output
//
// [RenderPNG] draws the same primitives with gg. Text faces come from the
// measuring font so raster output matches the computed layout:
//
//	png, err := sink.RenderPNG(sc, sink.WithScale(2))
//
// # PDF Output
//
// [RenderPDF] converts the SVG output via [render.ToPDF]. This requires
// librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// Bars whose value is below the minimum have a negative height in the layout;
// SVG and PNG sinks draw them hanging below the baseline.
//
// [chart.Layout]: github.com/matzehuels/barchart/pkg/chart.Layout
// [scene.Scene]: github.com/matzehuels/barchart/pkg/render/scene.Scene
// [styles.Sheet]: github.com/matzehuels/barchart/pkg/render/styles.Sheet
// [render.ToPDF]: github.com/matzehuels/barchart/pkg/render.ToPDF
package sink
