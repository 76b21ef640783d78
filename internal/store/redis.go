package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nmoreau/shortlink/internal/shortener"
)

// RedisStore is a Redis implementation of shortener.LinkStore and
// shortener.DedupStore.
type RedisStore struct {
	client      *redis.Client
	linkPrefix  string // "link:" for code -> url
	dedupPrefix string // "dedup:" for urlHash -> code
}

// NewRedisStore creates a new Redis-backed link store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:      client,
		linkPrefix:  "link:",
		dedupPrefix: "dedup:",
	}
}

func (r *RedisStore) GetLink(ctx context.Context, code shortener.Code) (string, error) {
	longURL, err := r.client.Get(ctx, r.linkPrefix+string(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", shortener.ErrNotFound
		}

		return "", err
	}

	return longURL, nil
}

func (r *RedisStore) PutLink(ctx context.Context, code shortener.Code, longURL string) error {
	// Links have unbounded lifetime; TTL 0 means no expiry.
	return r.client.Set(ctx, r.linkPrefix+string(code), longURL, 0).Err()
}

func (r *RedisStore) GetDedup(ctx context.Context, hash string) (shortener.Code, error) {
	code, err := r.client.Get(ctx, r.dedupPrefix+hash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", shortener.ErrNotFound
		}

		return "", err
	}

	return shortener.Code(code), nil
}

func (r *RedisStore) PutDedup(ctx context.Context, hash string, code shortener.Code, ttl time.Duration) error {
	return r.client.Set(ctx, r.dedupPrefix+hash, string(code), ttl).Err()
}

// Compile-time checks.
var (
	_ shortener.LinkStore  = (*RedisStore)(nil)
	_ shortener.DedupStore = (*RedisStore)(nil)
)
