package shortener

import (
	"context"
	"regexp"
)

// tokenShape is deliberately wider than the generation alphabet so that
// externally purged or legacy codes still resolve; anything outside it is
// rejected before touching the store.
var tokenShape = regexp.MustCompile(`^[A-Za-z0-9_-]{3,64}$`)

// ValidToken reports whether token has an acceptable shape.
func ValidToken(token string) bool {
	return tokenShape.MatchString(token)
}

// Resolver looks up stored links by token.
type Resolver struct {
	links LinkStore
}

// NewResolver creates a resolver over the given link store.
func NewResolver(links LinkStore) *Resolver {
	return &Resolver{links: links}
}

// Resolve returns the long URL stored for token. Malformed tokens
// short-circuit to ErrNotFound without a store round-trip. The stored URL
// is returned verbatim; it was validated at write time.
func (r *Resolver) Resolve(ctx context.Context, token string) (string, error) {
	if !ValidToken(token) {
		return "", ErrNotFound
	}

	return r.links.GetLink(ctx, Code(token))
}
