package chart

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/barchart/pkg/errors"
)

// Option configures an Engine.
type Option func(*Engine)

// WithSurface sets the surface that receives primitives. Without one the
// engine only computes geometry.
func WithSurface(s Surface) Option { return func(e *Engine) { e.surface = s } }

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option { return func(e *Engine) { e.logger = l } }

// Engine lays out a bar chart. Plot rebuilds everything; Update re-maps bar
// values only.
type Engine struct {
	measurer Measurer
	surface  Surface
	logger   *log.Logger

	cfg    Config
	layout *Layout
	bars   []Handle
}

// New returns an engine that measures text with m.
func New(m Measurer, opts ...Option) *Engine {
	e := &Engine{measurer: m}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e
}

// Layout returns the geometry of the last successful Plot, updated by any
// later Update calls. It is nil before the first Plot.
func (e *Engine) Layout() *Layout { return e.layout }

// Config returns the configuration of the last successful Plot.
func (e *Engine) Config() Config { return e.cfg }

// Plot measures, resolves and places every element of the chart described by
// cfg, replacing whatever the engine held before. When cfg.Values is not
// empty the bars are scaled right away as if Update had been called.
//
// On error the previous layout and surface content are left untouched.
func (e *Engine) Plot(cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()

	ms := measure(e.measurer, cfg)
	box := ResolveContentBox(cfg, ms.Footprints)
	if err := checkContentBox(box); err != nil {
		return nil, err
	}
	barWidth, gapWidth := BarSpacing(box.Width, cfg.GapFraction, cfg.Size)

	e.logger.Debug("measured footprints",
		"title", ms.TitleHeight,
		"x_legend", ms.XLegendHeight,
		"y_legend", ms.YLegendWidth,
		"x_labels", ms.XLabelsHeight,
		"y_labels", ms.YLabelsWidth)
	e.logger.Debug("content box",
		"x", box.X, "y", box.Y, "width", box.Width, "height", box.Height,
		"bar_width", barWidth, "gap_width", gapWidth)

	e.cfg = cfg
	e.layout = place(cfg, ms, box, barWidth, gapWidth)
	e.draw()

	if len(cfg.Values) > 0 {
		// Validate already checked length, finiteness and range.
		if err := e.Update(cfg.Values); err != nil {
			return nil, err
		}
	}
	return e.layout, nil
}

// Update recomputes the height and y position of every bar from values,
// which must hold exactly one finite value per bar. Nothing but the bars is
// touched.
//
// Without a configured or derived MaxValue the largest of values is used as
// the ceiling, so successive calls may rescale the chart.
func (e *Engine) Update(values []float64) error {
	if e.layout == nil {
		return errs.New(errs.ErrCodeNotPlotted, "update called before plot")
	}
	if err := CheckValues(values, e.cfg.Size); err != nil {
		return err
	}

	min := e.cfg.MinValue
	max, ok := e.cfg.ResolvedMax()
	if !ok {
		max = slices.Max(values)
	}
	if max == min {
		return errs.New(errs.ErrCodeInvalidRange, "cannot scale bars: max value equals min value (%g)", min)
	}

	box := e.layout.Content
	for i, v := range values {
		h := BarHeight(box, v, min, max)
		bar := &e.layout.Bars[i]
		bar.Height = h
		bar.Y = box.Bottom() - h
		bar.Value = v
		if e.surface != nil {
			e.surface.SetRect(e.bars[i], bar.Rect())
		}
	}
	e.layout.Values = slices.Clone(values)

	e.logger.Debug("updated bars", "count", len(values), "max", max)
	return nil
}

// draw replays the layout onto the surface.
func (e *Engine) draw() {
	e.bars = nil
	s := e.surface
	if s == nil {
		return
	}
	l := e.layout

	s.Reset(l.Width, l.Height)
	s.AddRect(ClassBackground, Rect{Width: l.Width, Height: l.Height})
	for _, lb := range []*Label{l.Title, l.XLegend, l.YLegend} {
		if lb != nil {
			s.AddText(lb.Class, lb.Text)
		}
	}
	for _, lb := range l.XLabels {
		s.AddText(lb.Class, lb.Text)
	}
	for _, lb := range l.YLabels {
		s.AddText(lb.Class, lb.Text)
	}
	for _, ln := range l.Lines {
		s.AddLine(ClassHorizontalLine, ln)
	}
	e.bars = make([]Handle, len(l.Bars))
	for i, b := range l.Bars {
		e.bars[i] = s.AddRect(ClassBar, b.Rect())
	}
}

// Clone returns a copy of c that shares no slices or pointers with it.
func (c Config) Clone() Config {
	c.Values = slices.Clone(c.Values)
	c.XLabels = slices.Clone(c.XLabels)
	c.YLabels = slices.Clone(c.YLabels)
	c.YLabelsMapping = slices.Clone(c.YLabelsMapping)
	if c.MaxValue != nil {
		c.MaxValue = Float(*c.MaxValue)
	}
	return c
}
