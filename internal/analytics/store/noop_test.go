package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/nmoreau/shortlink/internal/analytics"
	"github.com/nmoreau/shortlink/internal/analytics/store"
)

func TestNoop(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())

	t.Run("accepts created events", func(t *testing.T) {
		err := noop.SaveLinkCreated(context.Background(), &analytics.LinkCreatedEvent{
			ID:        "1",
			Code:      "abc1234",
			LongURL:   "https://example.com",
			CreatedAt: time.Now(),
		})
		assert.NoError(t, err)
	})

	t.Run("accepts resolved events", func(t *testing.T) {
		err := noop.SaveLinkResolved(context.Background(), &analytics.LinkResolvedEvent{
			ID:         "2",
			Code:       "abc1234",
			ResolvedAt: time.Now(),
		})
		assert.NoError(t, err)
	})
}
