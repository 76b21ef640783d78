package shortener_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmoreau/shortlink/internal/shortener"
	"github.com/nmoreau/shortlink/internal/store"
)

// trackingStore counts reads so tests can assert short-circuiting.
type trackingStore struct {
	*store.MemoryStore
	gets int
}

func (s *trackingStore) GetLink(ctx context.Context, code shortener.Code) (string, error) {
	s.gets++

	return s.MemoryStore.GetLink(ctx, code)
}

func TestResolve(t *testing.T) {
	t.Run("returns the stored url", func(t *testing.T) {
		mem := store.NewMemoryStore()
		require.NoError(t, mem.PutLink(context.Background(), "abc1234", "https://example.com"))

		resolver := shortener.NewResolver(mem)

		got, err := resolver.Resolve(context.Background(), "abc1234")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", got)
	})

	t.Run("returns ErrNotFound for unknown tokens", func(t *testing.T) {
		resolver := shortener.NewResolver(store.NewMemoryStore())

		_, err := resolver.Resolve(context.Background(), "missing")
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("rejects malformed tokens without touching the store", func(t *testing.T) {
		tracking := &trackingStore{MemoryStore: store.NewMemoryStore()}
		resolver := shortener.NewResolver(tracking)

		malformed := []string{
			"",
			"ab",
			strings.Repeat("a", 65),
			"has space",
			"semi;colon",
			"slash/y",
			"perc%25",
		}

		for _, token := range malformed {
			_, err := resolver.Resolve(context.Background(), token)
			assert.ErrorIs(t, err, shortener.ErrNotFound, "token %q", token)
		}

		assert.Zero(t, tracking.gets, "malformed tokens must not reach the store")
	})

	t.Run("accepts underscore and hyphen tokens", func(t *testing.T) {
		assert.True(t, shortener.ValidToken("a_b-c3"))
		assert.True(t, shortener.ValidToken("abc"))
		assert.True(t, shortener.ValidToken(strings.Repeat("z", 64)))
		assert.False(t, shortener.ValidToken(strings.Repeat("z", 65)))
	})
}
