package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/nmoreau/shortlink/internal/analytics"
)

// Redis is an analytics.Store keeping per-code counters in Redis.
// Created links increment "stats:created"; each resolution increments a
// per-code hit counter under "hits:".
type Redis struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed analytics store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) SaveLinkCreated(ctx context.Context, event *analytics.LinkCreatedEvent) error {
	pipe := r.client.Pipeline()
	pipe.Incr(ctx, "stats:created")

	if event.Deduplicated {
		pipe.Incr(ctx, "stats:deduplicated")
	}

	_, err := pipe.Exec(ctx)

	return err
}

func (r *Redis) SaveLinkResolved(ctx context.Context, event *analytics.LinkResolvedEvent) error {
	pipe := r.client.Pipeline()
	pipe.Incr(ctx, "stats:resolved")
	pipe.Incr(ctx, "hits:"+event.Code)
	_, err := pipe.Exec(ctx)

	return err
}

// Hits returns the resolution count for a code.
func (r *Redis) Hits(ctx context.Context, code string) (int64, error) {
	count, err := r.client.Get(ctx, "hits:"+code).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	return count, err
}

// Compile-time check.
var _ analytics.Store = (*Redis)(nil)
