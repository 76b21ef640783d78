package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmoreau/shortlink/internal/shortener"
	"github.com/nmoreau/shortlink/internal/store"
)

func TestMemoryStoreLinks(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		mem := store.NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, mem.PutLink(ctx, "abc1234", "https://example.com"))

		got, err := mem.GetLink(ctx, "abc1234")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", got)
	})

	t.Run("missing link", func(t *testing.T) {
		mem := store.NewMemoryStore()

		_, err := mem.GetLink(context.Background(), "missing1")
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("put overwrites blindly", func(t *testing.T) {
		mem := store.NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, mem.PutLink(ctx, "abc1234", "https://old.example.com"))
		require.NoError(t, mem.PutLink(ctx, "abc1234", "https://new.example.com"))

		got, _ := mem.GetLink(ctx, "abc1234")
		assert.Equal(t, "https://new.example.com", got)
	})
}

func TestMemoryStoreDedup(t *testing.T) {
	t.Run("entry round-trip", func(t *testing.T) {
		mem := store.NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, mem.PutDedup(ctx, "somehash", "abc1234", time.Minute))

		code, err := mem.GetDedup(ctx, "somehash")
		require.NoError(t, err)
		assert.Equal(t, shortener.Code("abc1234"), code)
	})

	t.Run("entries expire lazily", func(t *testing.T) {
		mem := store.NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, mem.PutDedup(ctx, "somehash", "abc1234", 10*time.Millisecond))

		time.Sleep(20 * time.Millisecond)

		_, err := mem.GetDedup(ctx, "somehash")
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}

func TestCounterMemoryStore(t *testing.T) {
	t.Run("absent key reads zero", func(t *testing.T) {
		counters := store.NewCounterMemoryStore()

		count, err := counters.Get(context.Background(), "rl:client:1")
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("set then get", func(t *testing.T) {
		counters := store.NewCounterMemoryStore()
		ctx := context.Background()

		require.NoError(t, counters.Set(ctx, "rl:client:1", 3, time.Minute))

		count, err := counters.Get(ctx, "rl:client:1")
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("expired counters read zero", func(t *testing.T) {
		counters := store.NewCounterMemoryStore()
		ctx := context.Background()

		require.NoError(t, counters.Set(ctx, "rl:client:1", 3, 10*time.Millisecond))

		time.Sleep(20 * time.Millisecond)

		count, err := counters.Get(ctx, "rl:client:1")
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
