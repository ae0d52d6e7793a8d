package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/fonts"
	bio "github.com/matzehuels/barchart/pkg/io"
	"github.com/matzehuels/barchart/pkg/observability"
	"github.com/matzehuels/barchart/pkg/render/scene"
)

// GenerateLayout plots def on a fresh scene with measurer and applies the
// frame selected by opts. The engine is returned so callers can keep
// stepping through frames with Update.
func GenerateLayout(ctx context.Context, def *bio.Definition, m chart.Measurer, opts Options) (*chart.Engine, *scene.Scene, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	hooks := observability.Pipeline()
	sc := scene.New()
	eng := chart.New(m, chart.WithSurface(sc), chart.WithLogger(opts.Logger))

	start := time.Now()
	hooks.OnPlotStart(ctx, def.Chart.Size)
	_, err := eng.Plot(def.Chart)
	hooks.OnPlotComplete(ctx, def.Chart.Size, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}

	if opts.Frame > 0 {
		values, err := def.Frame(opts.Frame - 1)
		if err != nil {
			return nil, nil, err
		}
		err = eng.Update(values)
		hooks.OnUpdate(ctx, len(values), err)
		if err != nil {
			return nil, nil, err
		}
	}
	return eng, sc, nil
}

// measurerFor returns a font measurer sized by the definition's stylesheet.
// It also serves faces to the PNG sink, so text is drawn at the size it was
// measured at.
func measurerFor(def *bio.Definition) *fonts.Measurer {
	return fonts.Default().WithSizes(def.Sheet().FontSizes())
}
