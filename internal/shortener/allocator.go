package shortener

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// maxAttempts bounds the generate/probe loop. The 58^7 keyspace is sparse
// enough that repeated collisions indicate a store problem, not contention.
const maxAttempts = 6

// Allocator drives code generation against the link store and maintains
// the deduplication index.
type Allocator struct {
	links    LinkStore
	dedup    *Index
	generate Generator
	logger   *zap.Logger
}

// NewAllocator creates a link allocator.
func NewAllocator(links LinkStore, dedup *Index, generate Generator, logger *zap.Logger) *Allocator {
	return &Allocator{
		links:    links,
		dedup:    dedup,
		generate: generate,
		logger:   logger,
	}
}

// Allocate returns a code mapping to longURL, reusing a deduplicated code
// when one is still live, otherwise allocating and persisting a fresh one.
//
// The probe-then-put sequence is not atomic: two concurrent requests can
// both observe a candidate as free and both write it, the second silently
// overwriting the first. The store offers no compare-and-swap, so this is
// accepted rather than papered over with client-side locks.
func (a *Allocator) Allocate(ctx context.Context, longURL string) (Code, error) {
	if code, ok := a.dedup.Lookup(ctx, longURL); ok {
		// A dedup entry is only trusted if its link still exists. A
		// dangling entry is bypassed; its TTL will self-clean it.
		_, err := a.links.GetLink(ctx, code)

		switch {
		case err == nil:
			return code, nil
		case !errors.Is(err, ErrNotFound):
			return "", fmt.Errorf("verify deduplicated link: %w", err)
		}

		a.logger.Debug("dangling dedup entry bypassed",
			zap.String("code", string(code)),
		)
	}

	code, err := a.selectCode(ctx)
	if err != nil {
		return "", err
	}

	if err := a.links.PutLink(ctx, code, longURL); err != nil {
		return "", fmt.Errorf("store link: %w", err)
	}

	a.dedup.Record(ctx, longURL, code)

	return code, nil
}

// selectCode probes generated candidates until one is unoccupied.
func (a *Allocator) selectCode(ctx context.Context) (Code, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		candidate := a.generate()

		_, err := a.links.GetLink(ctx, candidate)
		if errors.Is(err, ErrNotFound) {
			return candidate, nil
		}

		if err != nil {
			return "", fmt.Errorf("probe candidate: %w", err)
		}

		a.logger.Debug("candidate collision",
			zap.String("code", string(candidate)),
			zap.Int("attempt", attempt),
		)
	}

	return "", ErrAllocationExhausted
}
