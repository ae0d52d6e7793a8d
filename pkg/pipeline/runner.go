package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/barchart/pkg/cache"
	"github.com/matzehuels/barchart/pkg/chart"
	bio "github.com/matzehuels/barchart/pkg/io"
	"github.com/matzehuels/barchart/pkg/observability"
	"github.com/matzehuels/barchart/pkg/render/scene"
	"github.com/matzehuels/barchart/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Measurer overrides text measurement. When nil, text is measured with
	// the embedded Go font at the sizes of the definition's stylesheet.
	Measurer chart.Measurer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The cache is instrumented so hits and misses reach the observability hooks.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  cache.Instrument(c),
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, def *bio.Definition, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.measurer = measurerID(r.Measurer)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hash, err := cache.HashJSON(def)
	if err != nil {
		return nil, fmt.Errorf("hash definition: %w", err)
	}
	result := &Result{DefinitionHash: hash}
	result.Stats.Bars = def.Chart.Size

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, hash, opts); ok {
			if l, ok := r.cachedLayout(ctx, hash, opts); ok {
				result.Layout = l
				result.Artifacts = artifacts
				result.CacheInfo = CacheInfo{LayoutHit: true, RenderHit: true}
				r.Logger.Debug("served from cache", "hash", hash[:12], "formats", opts.Formats)
				return result, nil
			}
		}
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	eng, sc, err := r.Plot(ctx, def, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = eng.Layout()
	result.Stats.LayoutTime = time.Since(layoutStart)
	r.storeLayout(ctx, hash, result.Layout, opts)

	c := result.Layout.Content
	r.Logger.Info("computed layout",
		"bars", def.Chart.Size,
		"content", fmt.Sprintf("%.1fx%.1f", c.Width, c.Height),
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := Render(sc, result.Layout, def, r.faces(), opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
		}
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Plot runs the layout stage without caching and returns the live engine
// and scene, for callers that keep updating the chart.
func (r *Runner) Plot(ctx context.Context, def *bio.Definition, opts Options) (*chart.Engine, *scene.Scene, error) {
	r.applyLogger(&opts)
	m := r.Measurer
	if m == nil {
		m = measurerFor(def)
	}
	return GenerateLayout(ctx, def, m, opts)
}

// cachedArtifacts returns every requested format from cache, or false if any
// is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			return nil, false
		}
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) cachedLayout(ctx context.Context, hash string, opts Options) (*chart.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts()))
	if err != nil || !hit {
		return nil, false
	}
	var l chart.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		// Stale encoding; fall through to recompute.
		return nil, false
	}
	return &l, true
}

func (r *Runner) storeLayout(ctx context.Context, hash string, l *chart.Layout, opts Options) {
	data, err := json.Marshal(l)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts()), data, cache.TTLLayout); err != nil {
		r.Logger.Warn("cache write failed", "stage", "layout", "err", err)
	}
}

// faces returns the face source for PNG output. A custom measurer that can
// also provide faces is used so drawing matches measuring; otherwise Render
// falls back to the default font.
func (r *Runner) faces() sink.FaceSource {
	if fs, ok := r.Measurer.(sink.FaceSource); ok {
		return fs
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// measurerID identifies m in cache keys. Measurers with configurable metrics
// report them through CacheID; others are told apart by type only.
func measurerID(m chart.Measurer) string {
	switch m := m.(type) {
	case nil:
		return ""
	case interface{ CacheID() string }:
		return m.CacheID()
	default:
		return fmt.Sprintf("%T", m)
	}
}
