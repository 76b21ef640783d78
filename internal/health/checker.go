package health

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Checker reports whether a backing service is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to Checker.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// PostgresChecker adapts pgxpool.Pool to Checker.
type PostgresChecker struct {
	pool *pgxpool.Pool
}

// NewPostgresChecker creates a Postgres health checker.
func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

func (p *PostgresChecker) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// NoopChecker always reports healthy. Used for the in-memory backend.
type NoopChecker struct{}

func (NoopChecker) Ping(context.Context) error { return nil }

// Registry holds named checkers for the readiness endpoint.
type Registry struct {
	checkers map[string]Checker
}

// NewRegistry creates a registry over the given named checkers.
func NewRegistry(checkers map[string]Checker) *Registry {
	return &Registry{checkers: checkers}
}

// Check pings every registered checker and returns per-name status plus
// whether all of them passed.
func (r *Registry) Check(ctx context.Context) (map[string]string, bool) {
	statuses := make(map[string]string, len(r.checkers))
	healthy := true

	for name, checker := range r.checkers {
		if err := checker.Ping(ctx); err != nil {
			statuses[name] = "unhealthy"
			healthy = false
		} else {
			statuses[name] = "healthy"
		}
	}

	return statuses, healthy
}
