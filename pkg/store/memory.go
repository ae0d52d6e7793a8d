package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	errs "github.com/matzehuels/barchart/pkg/errors"
	bio "github.com/matzehuels/barchart/pkg/io"
)

// MemoryStore keeps records in a map. Records are lost when the process
// exits.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record), now: time.Now}
}

// Create implements [Store].
func (s *MemoryStore) Create(ctx context.Context, def *bio.Definition) (rec Record, err error) {
	defer func(start time.Time) { observe(ctx, "create", start, err) }(time.Now())

	rec, err = newRecord(def, s.now().UTC())
	if err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()
	return rec.clone(), nil
}

// Get implements [Store].
func (s *MemoryStore) Get(ctx context.Context, id string) (rec Record, err error) {
	defer func(start time.Time) { observe(ctx, "get", start, err) }(time.Now())

	if err := errs.ValidateChartID(id); err != nil {
		return Record{}, err
	}
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return Record{}, notFound(id)
	}
	return rec.clone(), nil
}

// UpdateValues implements [Store].
func (s *MemoryStore) UpdateValues(ctx context.Context, id string, values []float64) (rec Record, err error) {
	defer func(start time.Time) { observe(ctx, "update_values", start, err) }(time.Now())

	if err := errs.ValidateChartID(id); err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, notFound(id)
	}
	next, err := withValues(rec.Definition, values)
	if err != nil {
		return Record{}, err
	}
	rec.Definition = next
	rec.UpdatedAt = s.now().UTC()
	s.records[id] = rec
	return rec.clone(), nil
}

// Delete implements [Store].
func (s *MemoryStore) Delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { observe(ctx, "delete", start, err) }(time.Now())

	if err := errs.ValidateChartID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return notFound(id)
	}
	delete(s.records, id)
	return nil
}

// List implements [Store].
func (s *MemoryStore) List(ctx context.Context) (recs []Record, err error) {
	defer func(start time.Time) { observe(ctx, "list", start, err) }(time.Now())

	s.mu.RLock()
	recs = make([]Record, 0, len(s.records))
	for _, r := range s.records {
		recs = append(recs, r.clone())
	}
	s.mu.RUnlock()

	slices.SortFunc(recs, func(a, b Record) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return recs, nil
}

// Close implements [Store].
func (s *MemoryStore) Close(context.Context) error { return nil }
