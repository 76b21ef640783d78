package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nmoreau/shortlink/internal/ratelimit"
)

// CounterRedisStore is a Redis implementation of ratelimit.CounterStore.
// It is backed by the ephemeral cache client, a substrate independent of
// the durable link store.
type CounterRedisStore struct {
	client *redis.Client
}

// NewCounterRedisStore creates a new Redis-backed counter store.
func NewCounterRedisStore(client *redis.Client) *CounterRedisStore {
	return &CounterRedisStore{client: client}
}

func (s *CounterRedisStore) Get(ctx context.Context, key string) (int64, error) {
	count, err := s.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, err
	}

	return count, nil
}

func (s *CounterRedisStore) Set(ctx context.Context, key string, count int64, ttl time.Duration) error {
	return s.client.Set(ctx, key, count, ttl).Err()
}

// Compile-time check.
var _ ratelimit.CounterStore = (*CounterRedisStore)(nil)
