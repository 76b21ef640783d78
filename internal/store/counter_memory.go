package store

import (
	"context"
	"sync"
	"time"

	"github.com/nmoreau/shortlink/internal/ratelimit"
)

// CounterMemoryStore is an in-memory implementation of
// ratelimit.CounterStore with lazy TTL expiry.
type CounterMemoryStore struct {
	mu       sync.Mutex
	counters map[string]counterEntry
}

type counterEntry struct {
	count     int64
	expiresAt time.Time
}

// NewCounterMemoryStore creates a new in-memory counter store.
func NewCounterMemoryStore() *CounterMemoryStore {
	return &CounterMemoryStore{
		counters: make(map[string]counterEntry),
	}
}

func (s *CounterMemoryStore) Get(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.counters[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return 0, nil
	}

	return entry.count, nil
}

func (s *CounterMemoryStore) Set(_ context.Context, key string, count int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[key] = counterEntry{
		count:     count,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// Compile-time check.
var _ ratelimit.CounterStore = (*CounterMemoryStore)(nil)
