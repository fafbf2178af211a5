// Package memory provides an in-memory session-history store for
// development and testing.
package memory

import (
	"context"
	"sync"

	"github.com/termcastio/termcast-server/internal/session"
)

// maxRecords bounds retained history; the oldest records are dropped first.
const maxRecords = 1000

// Store implements in-memory session-history storage
type Store struct {
	mu      sync.RWMutex
	records []session.Record
}

// NewStore creates a new in-memory store
func NewStore() *Store {
	return &Store{}
}

// SaveRecord stores rec, evicting the oldest record when full.
func (s *Store) SaveRecord(_ context.Context, rec session.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	if len(s.records) > maxRecords {
		s.records = s.records[len(s.records)-maxRecords:]
	}
	return nil
}

// ListRecords returns up to limit records, newest first. A non-positive
// limit returns all retained records.
func (s *Store) ListRecords(_ context.Context, limit int) ([]session.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]session.Record, 0, n)
	for i := len(s.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

// Ping always succeeds for the in-memory store
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store
func (s *Store) Close() error {
	return nil
}
