package memory

import (
	"context"
	"sync"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

// CounterStore implements ports.CounterStore in memory.
// Safe for concurrent use.
type CounterStore struct {
	value *int
	mu    sync.RWMutex
}

// NewCounterStore creates an empty in-memory counter.
func NewCounterStore() *CounterStore {
	return &CounterStore{}
}

// Load returns the stored value or domain.ErrCounterNotFound.
func (s *CounterStore) Load(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.value == nil {
		return 0, domain.ErrCounterNotFound
	}
	return *s.value, nil
}

// Save replaces the stored value.
func (s *CounterStore) Save(ctx context.Context, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = &value
	return nil
}
