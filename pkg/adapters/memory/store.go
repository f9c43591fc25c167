package memory

import (
	"context"
	"sort"
	"sync"
)

// ClosureStore implements ports.ClosureStore in memory.
// Safe for concurrent use.
type ClosureStore struct {
	ids map[string]struct{}
	mu  sync.RWMutex
}

// NewClosureStore creates an empty in-memory closure store.
func NewClosureStore() *ClosureStore {
	return &ClosureStore{
		ids: make(map[string]struct{}),
	}
}

// Close marks id as closed.
func (s *ClosureStore) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
	return nil
}

// Open removes the closure on id.
func (s *ClosureStore) Open(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
	return nil
}

// Closed returns the closed IDs in ascending order.
func (s *ClosureStore) Closed(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
