package pipeline

import (
	"fmt"

	"github.com/matzehuels/barchart/pkg/chart"
	errs "github.com/matzehuels/barchart/pkg/errors"
	bio "github.com/matzehuels/barchart/pkg/io"
	"github.com/matzehuels/barchart/pkg/render/scene"
	"github.com/matzehuels/barchart/pkg/render/sink"
)

// Render generates output artifacts in the requested formats from a plotted
// scene and its layout. Text faces for PNG output come from faces; pass nil
// to use the definition's font sizes with the default font.
func Render(sc *scene.Scene, l *chart.Layout, def *bio.Definition, faces sink.FaceSource, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if faces == nil {
		faces = measurerFor(def)
	}
	sheet := def.Sheet()
	svgOpts := buildSVGOptions(def, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(sc, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(sc,
				sink.WithScale(opts.Scale),
				sink.WithPNGStyles(sheet),
				sink.WithFaces(faces))
		case FormatPDF:
			data, err = sink.RenderPDF(sc, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l, sink.WithJSONIndent(), sink.WithJSONConfig(def.Chart))
		default:
			return nil, errs.New(errs.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options shared by the SVG and PDF
// outputs.
func buildSVGOptions(def *bio.Definition, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithStyles(def.Sheet())}
	if def.Chart.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(def.Chart.Title))
	}
	if opts.EmbedFont {
		svgOpts = append(svgOpts, sink.WithEmbeddedFont())
	}
	return svgOpts
}
