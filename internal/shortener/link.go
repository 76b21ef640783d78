package shortener

import (
	"context"
	"errors"
	"time"
)

// Code is a short link token.
type Code string

// ErrNotFound is returned when a code has no stored link.
var ErrNotFound = errors.New("link not found")

// ErrAllocationExhausted is returned when every generated candidate code
// collided with an existing link.
var ErrAllocationExhausted = errors.New("code allocation exhausted")

// LinkStore is the durable key-value boundary for links. Implementations
// provide no compare-and-swap; PutLink overwrites blindly and callers must
// tolerate the resulting read-then-write races.
type LinkStore interface {
	// GetLink returns the long URL stored for code, or ErrNotFound.
	GetLink(ctx context.Context, code Code) (string, error)
	// PutLink stores the mapping with unbounded lifetime.
	PutLink(ctx context.Context, code Code, longURL string) error
}

// DedupStore holds TTL-bound (content hash -> code) entries.
type DedupStore interface {
	// GetDedup returns the code recorded for hash, or ErrNotFound.
	GetDedup(ctx context.Context, hash string) (Code, error)
	// PutDedup stores the entry, expiring it after ttl.
	PutDedup(ctx context.Context, hash string, code Code, ttl time.Duration) error
}
