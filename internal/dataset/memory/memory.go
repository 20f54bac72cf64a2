// Package memory keeps the session dataset in process memory.
package memory

import (
	"context"
	"sync"

	"khata/internal/core"
)

type Store struct {
	mu      sync.Mutex
	records []core.Record
}

func New() *Store {
	return &Store{}
}

// Replace swaps the dataset wholesale. The slice is copied in, so the
// caller may keep mutating its own copy.
func (s *Store) Replace(_ context.Context, records []core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]core.Record(nil), records...)
	return nil
}

// Records returns a copy of the dataset in file order.
func (s *Store) Records(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record(nil), s.records...), nil
}
