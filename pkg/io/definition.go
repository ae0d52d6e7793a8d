package io

import (
	"maps"
	"slices"

	"github.com/matzehuels/barchart/pkg/chart"
	errs "github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/render/styles"
)

// Definition is a chart as stored on disk or posted to the API: the engine
// configuration, optional value frames stepped through with Update, and
// optional style overrides.
type Definition struct {
	Chart chart.Config `toml:"chart" json:"chart"`
	// Frames are value sequences applied after the initial Plot, one per
	// Update. Each must hold Chart.Size values.
	Frames [][]float64  `toml:"frames" json:"frames,omitempty"`
	Styles styles.Sheet `toml:"styles" json:"styles,omitempty"`
}

// NewDefinition returns a definition whose chart is [chart.DefaultConfig].
// Decoders start from it so absent keys keep their defaults.
func NewDefinition() *Definition {
	return &Definition{Chart: chart.DefaultConfig()}
}

// Validate checks the chart configuration and every frame.
func (d *Definition) Validate() error {
	if err := d.Chart.Validate(); err != nil {
		return err
	}
	for i, f := range d.Frames {
		if err := chart.CheckValues(f, d.Chart.Size); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidValues, err, "frame %d", i)
		}
	}
	for c := range d.Styles {
		if !knownClass(c) {
			return errs.New(errs.ErrCodeInvalidConfig, "styles: unknown class %q", c)
		}
	}
	return nil
}

// Frame returns the values to show for frame i. Frame -1 is the chart's own
// Values.
func (d *Definition) Frame(i int) ([]float64, error) {
	if i == -1 {
		return d.Chart.Values, nil
	}
	if i < 0 || i >= len(d.Frames) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "frame %d out of range (definition has %d frames)", i, len(d.Frames))
	}
	return d.Frames[i], nil
}

// Clone returns a deep copy of d.
func (d *Definition) Clone() *Definition {
	c := &Definition{Chart: d.Chart.Clone()}
	if d.Frames != nil {
		c.Frames = make([][]float64, len(d.Frames))
		for i, f := range d.Frames {
			c.Frames[i] = slices.Clone(f)
		}
	}
	if d.Styles != nil {
		c.Styles = maps.Clone(d.Styles)
	}
	return c
}

// Sheet returns the default stylesheet with the definition's overrides.
func (d *Definition) Sheet() styles.Sheet {
	return styles.Default().Merge(d.Styles)
}

func knownClass(c chart.Class) bool {
	for _, k := range chart.Classes {
		if k == c {
			return true
		}
	}
	return false
}
