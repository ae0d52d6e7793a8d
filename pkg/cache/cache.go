// Package cache stores rendered chart artifacts and layouts.
//
// Rendering a chart is cheap but not free: PDF output shells out to
// rsvg-convert and PNG output rasterizes every glyph. The pipeline keys each
// artifact by a hash of the chart definition and the render options, so an
// unchanged definition is served from cache.
//
// Three backends are provided:
//
//   - [FileCache]: entries as JSON files under a directory, for the CLI
//   - [RedisCache]: entries in Redis, shared by API servers
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// [Instrument] wraps any backend so hits, misses and writes are reported to
// the observability hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Time-to-live for cached entries.
const (
	// TTLLayout is how long computed layout geometry is kept.
	TTLLayout = 24 * time.Hour

	// TTLArtifact is how long rendered SVG/PNG/PDF/JSON output is kept.
	// Artifacts are keyed by content hash, so they never go stale.
	TTLArtifact = 7 * 24 * time.Hour
)
