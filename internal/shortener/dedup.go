package shortener

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Index is the optional deduplication layer mapping a content hash of the
// long URL to a previously allocated code. It is a best-effort
// write-reduction cache: every failure path degrades to "absent" and is
// never surfaced to the caller.
type Index struct {
	store  DedupStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewIndex creates a deduplication index. A ttl <= 0 disables it entirely:
// Lookup always misses and Record never writes.
func NewIndex(store DedupStore, ttl time.Duration, logger *zap.Logger) *Index {
	return &Index{
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// Enabled reports whether deduplication is active.
func (i *Index) Enabled() bool {
	return i.ttl > 0
}

// Lookup returns the code previously recorded for longURL. The second
// return value is false when deduplication is disabled, the entry is
// absent, or the store read failed. Callers must still verify the link the
// code points to exists before trusting it.
func (i *Index) Lookup(ctx context.Context, longURL string) (Code, bool) {
	if !i.Enabled() {
		return "", false
	}

	code, err := i.store.GetDedup(ctx, hashURL(longURL))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			i.logger.Warn("dedup lookup failed", zap.Error(err))
		}

		return "", false
	}

	return code, true
}

// Record stores the (hash -> code) entry with the configured TTL. Write
// failures only cost an optimization, so they are logged and swallowed.
func (i *Index) Record(ctx context.Context, longURL string, code Code) {
	if !i.Enabled() {
		return
	}

	if err := i.store.PutDedup(ctx, hashURL(longURL), code, i.ttl); err != nil {
		i.logger.Warn("dedup record failed",
			zap.String("code", string(code)),
			zap.Error(err),
		)
	}
}

// hashURL computes the content hash of the exact long-URL string.
func hashURL(longURL string) string {
	h := sha256.Sum256([]byte(longURL))

	return hex.EncodeToString(h[:])
}
