// Package store persists chart definitions for the API server.
//
// A stored chart is a [Record]: an io.Definition plus a generated ID and
// timestamps. The API plots a record on demand, so only the definition is
// stored and never any geometry.
//
// Two backends are provided:
//
//   - [MemoryStore]: a mutex-guarded map, for tests and single-process use
//   - [MongoStore]: a MongoDB collection, for servers that must survive
//     restarts
//
// Both report every operation to [observability.Store].
package store

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/barchart/pkg/chart"
	errs "github.com/matzehuels/barchart/pkg/errors"
	bio "github.com/matzehuels/barchart/pkg/io"
	"github.com/matzehuels/barchart/pkg/observability"
)

// Store persists chart definitions. Implementations must be safe for
// concurrent use and must return records that share no memory with their
// own state.
type Store interface {
	// Create validates def and stores it under a new ID.
	Create(ctx context.Context, def *bio.Definition) (Record, error)
	// Get returns the record with id, or a CHART_NOT_FOUND error.
	Get(ctx context.Context, id string) (Record, error)
	// UpdateValues replaces the chart's values. They must hold exactly
	// Size finite numbers and pass the definition's validation; rejected
	// values leave the record untouched.
	UpdateValues(ctx context.Context, id string, values []float64) (Record, error)
	// Delete removes the record with id, or returns CHART_NOT_FOUND.
	Delete(ctx context.Context, id string) error
	// List returns every record, oldest first.
	List(ctx context.Context) ([]Record, error)
	Close(ctx context.Context) error
}

// Record is a stored chart.
type Record struct {
	ID         string          `json:"id" bson:"_id"`
	Definition *bio.Definition `json:"definition" bson:"definition"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" bson:"updated_at"`
}

// newRecord validates def and wraps a copy of it in a record with a fresh ID.
func newRecord(def *bio.Definition, now time.Time) (Record, error) {
	if def == nil {
		return Record{}, errs.New(errs.ErrCodeInvalidInput, "definition is required")
	}
	if err := def.Validate(); err != nil {
		return Record{}, err
	}
	return Record{
		ID:         uuid.NewString(),
		Definition: def.Clone(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func notFound(id string) error {
	return errs.New(errs.ErrCodeChartNotFound, "chart %s not found", id)
}

// withValues returns a copy of def showing values, validated with the same
// rules as Create.
func withValues(def *bio.Definition, values []float64) (*bio.Definition, error) {
	if err := chart.CheckValues(values, def.Chart.Size); err != nil {
		return nil, err
	}
	next := def.Clone()
	next.Chart.Values = slices.Clone(values)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return next, nil
}

// observe reports a finished operation to the store hooks.
func observe(ctx context.Context, op string, start time.Time, err error) {
	observability.Store().OnStoreOp(ctx, op, time.Since(start), err)
}

func (r Record) clone() Record {
	if r.Definition != nil {
		r.Definition = r.Definition.Clone()
	}
	return r
}
