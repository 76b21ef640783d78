package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/nmoreau/shortlink/internal/analytics"
)

// Noop is an analytics.Store that only logs events.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	n.logger.Info("link created",
		zap.String("code", event.Code),
		zap.Bool("deduplicated", event.Deduplicated),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (n *Noop) SaveLinkResolved(_ context.Context, event *analytics.LinkResolvedEvent) error {
	n.logger.Info("link resolved",
		zap.String("code", event.Code),
		zap.String("referrer", event.Referrer),
		zap.Time("resolvedAt", event.ResolvedAt),
	)

	return nil
}

// Compile-time check.
var _ analytics.Store = (*Noop)(nil)
