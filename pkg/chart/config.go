package chart

import (
	"math"
	"slices"

	errs "github.com/matzehuels/barchart/pkg/errors"
)

// Default configuration values.
const (
	DefaultSize        = 10
	DefaultWidth       = 600.0
	DefaultHeight      = 400.0
	DefaultPadding     = 10.0
	DefaultGapFraction = 0.2
	DefaultMinValue    = 0.0
)

// Config describes one bar chart. It is read once per Plot call.
//
// Zero values are meaningful for most numeric fields (a padding of 0 is a
// valid padding), so callers should start from [DefaultConfig] and override
// what they need. Decoders in package io do exactly that.
type Config struct {
	// Size is the number of bars.
	Size int `toml:"size" json:"size"`
	// Width and Height are the viewport dimensions.
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
	// Padding surrounds everything drawn.
	Padding float64 `toml:"padding" json:"padding"`
	// GapFraction is the share of the content width used by the gaps
	// between bars, in [0, 1).
	GapFraction float64 `toml:"gap_fraction" json:"gap_fraction"`

	// Values are plotted right away when non-empty.
	Values []float64 `toml:"values" json:"values,omitempty"`
	// MinValue maps to a bar height of zero.
	MinValue float64 `toml:"min_value" json:"min_value"`
	// MaxValue maps to a bar reaching the top of the content box. When nil
	// it defaults to the largest Y label, or to the largest value of each
	// Update call if there are no Y labels.
	MaxValue *float64 `toml:"max_value" json:"max_value,omitempty"`

	XLabels         []string `toml:"x_labels" json:"x_labels,omitempty"`
	XLabelsGap      float64  `toml:"x_labels_gap" json:"x_labels_gap"`
	XLabelsRotation float64  `toml:"x_labels_rotation" json:"x_labels_rotation"`

	YLabels    []float64 `toml:"y_labels" json:"y_labels,omitempty"`
	YLabelsGap float64   `toml:"y_labels_gap" json:"y_labels_gap"`
	// YLabelsMapping replaces the displayed text of each Y label. It must
	// have the same length as YLabels; the numeric label still drives the
	// vertical position.
	YLabelsMapping []string `toml:"y_labels_mapping" json:"y_labels_mapping,omitempty"`

	XLegend    string  `toml:"x_legend" json:"x_legend,omitempty"`
	XLegendGap float64 `toml:"x_legend_gap" json:"x_legend_gap"`
	YLegend    string  `toml:"y_legend" json:"y_legend,omitempty"`
	YLegendGap float64 `toml:"y_legend_gap" json:"y_legend_gap"`

	Title    string  `toml:"title" json:"title,omitempty"`
	TitleGap float64 `toml:"title_gap" json:"title_gap"`

	// ShowHorizontalLines draws one reference line per Y label.
	ShowHorizontalLines bool `toml:"show_horizontal_lines" json:"show_horizontal_lines"`
}

// DefaultConfig returns a Config with every field at its default.
func DefaultConfig() Config {
	return Config{
		Size:                DefaultSize,
		Width:               DefaultWidth,
		Height:              DefaultHeight,
		Padding:             DefaultPadding,
		GapFraction:         DefaultGapFraction,
		MinValue:            DefaultMinValue,
		ShowHorizontalLines: true,
	}
}

// Float returns a pointer to v, for setting [Config.MaxValue].
func Float(v float64) *float64 { return &v }

// Validate checks the parts of the configuration that do not depend on text
// measurement. Plot calls it before doing anything else.
func (c Config) Validate() error {
	if c.Size < 1 {
		return errs.New(errs.ErrCodeInvalidSize, "size must be at least 1, got %d", c.Size)
	}
	if !positive(c.Width) || !positive(c.Height) {
		return errs.New(errs.ErrCodeInvalidConfig, "canvas must have positive dimensions, got %gx%g", c.Width, c.Height)
	}
	if !finite(c.GapFraction) || c.GapFraction < 0 || c.GapFraction >= 1 {
		return errs.New(errs.ErrCodeInvalidConfig, "gap_fraction must be in [0, 1), got %g", c.GapFraction)
	}
	spacings := []struct {
		name string
		v    float64
	}{
		{"padding", c.Padding},
		{"x_labels_gap", c.XLabelsGap},
		{"y_labels_gap", c.YLabelsGap},
		{"x_legend_gap", c.XLegendGap},
		{"y_legend_gap", c.YLegendGap},
		{"title_gap", c.TitleGap},
	}
	for _, s := range spacings {
		if !finite(s.v) || s.v < 0 {
			return errs.New(errs.ErrCodeInvalidConfig, "%s must be a non-negative number, got %g", s.name, s.v)
		}
	}
	if !finite(c.XLabelsRotation) {
		return errs.New(errs.ErrCodeInvalidConfig, "x_labels_rotation must be finite")
	}
	if !finite(c.MinValue) {
		return errs.New(errs.ErrCodeInvalidRange, "min_value must be finite")
	}
	if c.MaxValue != nil && !finite(*c.MaxValue) {
		return errs.New(errs.ErrCodeInvalidRange, "max_value must be finite")
	}
	for i, v := range c.YLabels {
		if !finite(v) {
			return errs.New(errs.ErrCodeInvalidConfig, "y_labels[%d] must be finite", i)
		}
	}
	if c.YLabelsMapping != nil && len(c.YLabelsMapping) != len(c.YLabels) {
		return errs.New(errs.ErrCodeInvalidConfig, "y_labels_mapping has %d entries, y_labels has %d", len(c.YLabelsMapping), len(c.YLabels))
	}
	if len(c.Values) > 0 {
		if err := CheckValues(c.Values, c.Size); err != nil {
			return err
		}
	}
	max, ok := c.ResolvedMax()
	if ok && max == c.MinValue {
		return errs.New(errs.ErrCodeInvalidRange, "max_value equals min_value (%g)", max)
	}
	if !ok && len(c.Values) > 0 && slices.Max(c.Values) == c.MinValue {
		return errs.New(errs.ErrCodeInvalidRange, "largest value equals min_value (%g)", c.MinValue)
	}
	return nil
}

// ResolvedMax returns the maximum used to scale bars and position Y labels.
// ok is false when neither MaxValue nor Y labels are set, in which case each
// Update scales against the largest value it receives.
func (c Config) ResolvedMax() (max float64, ok bool) {
	if c.MaxValue != nil {
		return *c.MaxValue, true
	}
	if len(c.YLabels) > 0 {
		return slices.Max(c.YLabels), true
	}
	return 0, false
}

// YLabelText returns the text displayed for Y label i.
func (c Config) YLabelText(i int) string {
	if c.YLabelsMapping != nil {
		return c.YLabelsMapping[i]
	}
	return formatNumber(c.YLabels[i])
}

// xLabelCount is the number of X labels that get drawn.
func (c Config) xLabelCount() int {
	return min(c.Size, len(c.XLabels))
}

// CheckValues returns an INVALID_VALUES error unless values holds exactly
// size finite numbers.
func CheckValues(values []float64, size int) error {
	if len(values) != size {
		return errs.New(errs.ErrCodeInvalidValues, "got %d values for %d bars", len(values), size)
	}
	for i, v := range values {
		if !finite(v) {
			return errs.New(errs.ErrCodeInvalidValues, "values[%d] must be finite", i)
		}
	}
	return nil
}

func finite(v float64) bool   { return !math.IsNaN(v) && !math.IsInf(v, 0) }
func positive(v float64) bool { return finite(v) && v > 0 }
