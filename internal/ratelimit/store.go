package ratelimit

import (
	"context"
	"time"
)

// CounterStore is the ephemeral cache boundary for rate-limit counters.
// Entries expire via TTL; an absent key reads as zero.
type CounterStore interface {
	// Get returns the current count for key, or 0 if the key is absent.
	Get(ctx context.Context, key string) (int64, error)
	// Set writes the count, expiring it after ttl.
	Set(ctx context.Context, key string, count int64, ttl time.Duration) error
}
