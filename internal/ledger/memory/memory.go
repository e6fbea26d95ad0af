// Package memory provides the in-memory ledger backend, the default
// when no durable storage is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"gastozap/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.ExpenseRecord
}

func New() *Store {
	return &Store{}
}

// Append stores the record and returns a synthetic reference. The
// mutex is the whole-ledger write lock required for concurrent
// webhooks.
func (s *Store) Append(_ context.Context, rec core.ExpenseRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, rec)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// ReadAll returns a copy of the ledger in insertion order.
func (s *Store) ReadAll(_ context.Context) ([]core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.ExpenseRecord, len(s.items))
	copy(out, s.items)
	return out, nil
}
