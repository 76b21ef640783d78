package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nmoreau/shortlink/internal/shortener"
)

// PostgresStore is a PostgreSQL implementation of shortener.LinkStore and
// shortener.DedupStore. Postgres has no per-key expiry, so dedup entries
// carry an expires_at column and are lazily expired at read time; the
// store never deletes rows.
//
// Schema:
//
//	CREATE TABLE links (
//	    code       TEXT PRIMARY KEY,
//	    long_url   TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE TABLE dedup_entries (
//	    url_hash   TEXT PRIMARY KEY,
//	    code       TEXT NOT NULL,
//	    expires_at TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) GetLink(ctx context.Context, code shortener.Code) (string, error) {
	query := `
		SELECT long_url
		FROM links
		WHERE code = $1
	`

	var longURL string

	err := p.pool.QueryRow(ctx, query, string(code)).Scan(&longURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shortener.ErrNotFound
		}

		return "", err
	}

	return longURL, nil
}

func (p *PostgresStore) PutLink(ctx context.Context, code shortener.Code, longURL string) error {
	query := `
		INSERT INTO links (code, long_url, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (code) DO UPDATE SET long_url = EXCLUDED.long_url
	`

	_, err := p.pool.Exec(ctx, query, string(code), longURL)

	return err
}

func (p *PostgresStore) GetDedup(ctx context.Context, hash string) (shortener.Code, error) {
	query := `
		SELECT code
		FROM dedup_entries
		WHERE url_hash = $1 AND expires_at > now()
	`

	var code string

	err := p.pool.QueryRow(ctx, query, hash).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shortener.ErrNotFound
		}

		return "", err
	}

	return shortener.Code(code), nil
}

func (p *PostgresStore) PutDedup(ctx context.Context, hash string, code shortener.Code, ttl time.Duration) error {
	query := `
		INSERT INTO dedup_entries (url_hash, code, expires_at)
		VALUES ($1, $2, now() + $3)
		ON CONFLICT (url_hash) DO UPDATE
		SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at
	`

	_, err := p.pool.Exec(ctx, query, hash, string(code), ttl)

	return err
}

// Compile-time checks.
var (
	_ shortener.LinkStore  = (*PostgresStore)(nil)
	_ shortener.DedupStore = (*PostgresStore)(nil)
)
