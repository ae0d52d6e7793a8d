// Package pipeline provides the definition → layout → render pipeline shared
// by the CLI and the API server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: decode and validate a chart definition (TOML or JSON)
//  2. Layout: Plot the chart, then apply the selected value frame via Update
//  3. Render: draw the resulting scene in each requested format
//     (SVG, PNG, PDF, JSON)
//
// Layouts and artifacts are cached by a hash of the definition plus the
// options that affect them, so an unchanged chart is served without
// re-plotting.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, def, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	eng, sc, err := runner.Plot(ctx, def, opts)
//	artifacts, err := pipeline.Render(sc, eng.Layout(), def, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/barchart/pkg/cache"
	"github.com/matzehuels/barchart/pkg/chart"
	errs "github.com/matzehuels/barchart/pkg/errors"
)

// DefaultScale is the PNG scale factor used when Options.Scale is zero.
const DefaultScale = 2.0

// MaxScale bounds Options.Scale. A 600x400 chart at this scale is already a
// 4800x3200 image.
const MaxScale = 8.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists every supported output format in a stable order.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// Options configures one pipeline run. It supports JSON decoding for API
// requests.
type Options struct {
	// Formats to render; defaults to svg.
	Formats []string `json:"formats,omitempty"`
	// Scale is the PNG resolution multiplier; defaults to DefaultScale.
	Scale float64 `json:"scale,omitempty"`
	// Frame selects the values shown: 0 keeps the chart's own values, n
	// applies the nth entry of the definition's frames.
	Frame int `json:"frame,omitempty"`
	// EmbedFont inlines the measuring font into SVG output so every viewer
	// renders text at the measured size.
	EmbedFont bool `json:"embed_font,omitempty"`
	// Refresh bypasses cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	measurer  string
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DefinitionHash is the content hash of the definition.
	DefinitionHash string

	// Layout is the computed chart geometry after the frame was applied.
	Layout *chart.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Bars       int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	return errs.ValidateFormat(format, Formats...)
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errs.New(errs.ErrCodeInvalidInput, "scale must be in (0, %g], got %g", MaxScale, o.Scale)
	}
	if o.Frame < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "frame must not be negative, got %d", o.Frame)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Frame: o.Frame, Measurer: o.measurer}
}

// ArtifactKeyOpts returns cache key options for one rendered format. Only
// the options that change that format are included, so a PNG scale change
// does not invalidate the cached SVG.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Frame: o.Frame, Measurer: o.measurer}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatSVG, FormatPDF:
		k.EmbedFont = o.EmbedFont
	}
	return k
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
