// Package pkg provides the libraries behind the barchart CLI and API.
//
// # Overview
//
// Barchart lays out a bar chart once and then moves only its bars as new
// values arrive. The pkg directory is organized into these areas:
//
//  1. [chart] - The layout engine (measure, place, plot, update)
//  2. [fonts] - Text measurement with real font metrics
//  3. [render] - Drawing surface, stylesheet and output sinks
//  4. [io] - Chart definitions in TOML or JSON
//  5. [pipeline] - Orchestration (parse → layout → render) with caching
//  6. [cache] and [store] - Render cache and chart persistence
//
// # Architecture
//
// The typical data flow:
//
//	chart.toml
//	     ↓
//	[io] package (decode + validate a Definition)
//	     ↓
//	[chart] package (measure labels, fix the content box, place bars)
//	     ↓
//	[render/scene] (retained primitives drawn by the engine)
//	     ↓
//	[render/sink] SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	def, _ := io.ReadDefinitionFile("chart.toml")
//
//	sc := scene.New()
//	eng := chart.New(fonts.Default(), chart.WithSurface(sc))
//	layout, _ := eng.Plot(def.Chart)
//
//	// Later: only bar geometry changes.
//	_ = eng.Update([]float64{3, 1, 4})
//
//	svg := sink.RenderSVG(sc, sink.WithStyles(def.Sheet()))
//
// # Main Packages
//
// [chart] - Computes footprints of the title, legends and axis labels,
// derives the content box from them, then positions bars, labels and
// horizontal reference lines. Update maps values to bar heights against the
// configured or derived value range.
//
// [fonts] - Measures text with the embedded Go Regular font via freetype.
// An approximate measurer is available when no font data is wanted.
//
// [render/styles] - Default appearance per element class, overridable per
// definition.
//
// [render/scene] - A chart.Surface that records primitives for the sinks.
//
// [render/sink] - SVG (svgo), PNG (gg), PDF (rsvg-convert) and JSON output.
//
// [pipeline] - The single code path used by the CLI and the HTTP API.
//
// [cache] - File, Redis and null caches for layouts and artifacts.
//
// [store] - Chart records in memory or MongoDB.
//
// [observability] - Hook registry for metrics and tracing integrations.
//
// [errors] - Coded errors shared by every layer.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/chart/...              # Specific package
//	go test -run Example ./pkg/chart     # Examples only
//
// MongoDB and Redis tests are skipped unless BARCHART_TEST_MONGO_URI or
// BARCHART_TEST_REDIS_URL point at a running server.
//
// [chart]: https://pkg.go.dev/github.com/matzehuels/barchart/pkg/chart
// [fonts]: https://pkg.go.dev/github.com/matzehuels/barchart/pkg/fonts
// [render]: https://pkg.go.dev/github.com/matzehuels/barchart/pkg/render
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/barchart/pkg/render/styles
// [render/scene]: https://pkg.go.dev/github.com/matzehuels/barchart/pkg/render/scene
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/barchart/pkg/render/sink
// [io]: https://pkg.go.dev/github.com/matzehuels/barchart/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/barchart/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/barchart/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/barchart/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/barchart/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/barchart/pkg/errors
package pkg
