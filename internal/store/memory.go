package store

import (
	"context"
	"sync"
	"time"

	"github.com/nmoreau/shortlink/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.LinkStore and
// shortener.DedupStore, used in tests and for running without external
// backends. Dedup entries are lazily expired at read time.
type MemoryStore struct {
	mu    sync.RWMutex
	links map[shortener.Code]string
	dedup map[string]dedupEntry
}

type dedupEntry struct {
	code      shortener.Code
	expiresAt time.Time
}

// NewMemoryStore creates a new in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links: make(map[shortener.Code]string),
		dedup: make(map[string]dedupEntry),
	}
}

func (m *MemoryStore) GetLink(_ context.Context, code shortener.Code) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	longURL, ok := m.links[code]
	if !ok {
		return "", shortener.ErrNotFound
	}

	return longURL, nil
}

func (m *MemoryStore) PutLink(_ context.Context, code shortener.Code, longURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.links[code] = longURL

	return nil
}

func (m *MemoryStore) GetDedup(_ context.Context, hash string) (shortener.Code, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.dedup[hash]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", shortener.ErrNotFound
	}

	return entry.code, nil
}

func (m *MemoryStore) PutDedup(_ context.Context, hash string, code shortener.Code, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dedup[hash] = dedupEntry{
		code:      code,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// DeleteLink removes a link, simulating external purging. Only used by
// tests; the service itself never deletes.
func (m *MemoryStore) DeleteLink(code shortener.Code) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.links, code)
}

// Compile-time checks.
var (
	_ shortener.LinkStore  = (*MemoryStore)(nil)
	_ shortener.DedupStore = (*MemoryStore)(nil)
)
