// Package render provides output rendering for bar charts.
//
// # Overview
//
// The layout engine in [chart] draws onto a [scene.Scene]. This package and
// its subpackages turn that scene into files:
//
//   - Per-class appearance (in [styles] subpackage)
//   - Retained drawing surface (in [scene] subpackage)
//   - Output formats SVG, PNG, PDF and JSON (in [sink] subpackage)
//   - Generic format conversion (SVG to PDF/PNG, this package)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). PDF output always goes
// through it; PNG output is drawn natively by [sink.RenderPNG] and only
// falls back to [ToPNG] when asked to.
//
//	svg, err := sink.RenderSVG(sc)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [chart]: github.com/matzehuels/barchart/pkg/chart
// [styles]: github.com/matzehuels/barchart/pkg/render/styles
// [scene]: github.com/matzehuels/barchart/pkg/render/scene
// [scene.Scene]: github.com/matzehuels/barchart/pkg/render/scene.Scene
// [sink]: github.com/matzehuels/barchart/pkg/render/sink
// [sink.RenderPNG]: github.com/matzehuels/barchart/pkg/render/sink.RenderPNG
package render
