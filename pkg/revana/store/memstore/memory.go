// Package memstore is an in-memory store.Store, used in tests and for
// runs that do not need persistence.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognitext/revana/pkg/revana/internalerr"
	"github.com/cognitext/revana/pkg/revana/parse"
	"github.com/cognitext/revana/pkg/revana/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu      sync.RWMutex
	records map[string]parse.Record // keyed by Record.Key()
	order   []string                // insertion order of record keys
	tokenDF map[string]int64
	runs    map[string]store.Run
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		records: make(map[string]parse.Record),
		tokenDF: make(map[string]int64),
		runs:    make(map[string]store.Run),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertRecord inserts or replaces a record, keyed by its identity.
func (s *Store) UpsertRecord(ctx context.Context, rec parse.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := rec.Key()
	if _, ok := s.records[key]; !ok {
		s.order = append(s.order, key)
	}
	s.records[key] = rec
	return nil
}

// GetRecord returns the record with the given identity key.
func (s *Store) GetRecord(ctx context.Context, key string) (parse.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key]
	if !ok {
		return parse.Record{}, fmt.Errorf("%w: record %q", internalerr.ErrNotFound, key)
	}
	return rec, nil
}

// ListRecords returns all records in insertion order.
func (s *Store) ListRecords(ctx context.Context) ([]parse.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]parse.Record, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.records[key])
	}
	return out, nil
}

// RecordsByParentProduct returns the records of one product group, in
// insertion order.
func (s *Store) RecordsByParentProduct(ctx context.Context, parentProductID string) ([]parse.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []parse.Record
	for _, key := range s.order {
		if rec := s.records[key]; rec.ParentProductID == parentProductID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// CountRecords returns the number of stored records.
func (s *Store) CountRecords(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

// UpsertTokenDF sets the document frequency for a token.
func (s *Store) UpsertTokenDF(ctx context.Context, token string, df int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenDF[token] = df
	return nil
}

// GetTokenDF returns the document frequency for a token, zero when
// the token is unknown.
func (s *Store) GetTokenDF(ctx context.Context, token string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokenDF[token], nil
}

// AllTokenDF returns a copy of the full document-frequency table.
func (s *Store) AllTokenDF(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int64, len(s.tokenDF))
	for tok, df := range s.tokenDF {
		out[tok] = df
	}
	return out, nil
}

// PutRun stores a run manifest.
func (s *Store) PutRun(ctx context.Context, run store.Run) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run id is empty", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// GetRun returns a run manifest by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("%w: run %q", internalerr.ErrNotFound, id)
	}
	return run, nil
}

// ListRuns returns manifests newest-first, at most limit of them.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Run, 0, len(s.runs))
	for _, run := range s.runs {
		out = append(out, run)
	}
	// ULIDs sort lexicographically by creation time.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
