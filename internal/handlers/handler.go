package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/nmoreau/shortlink/internal/analytics"
	"github.com/nmoreau/shortlink/internal/messaging"
	"github.com/nmoreau/shortlink/internal/ratelimit"
	"github.com/nmoreau/shortlink/internal/shortener"
)

// LinkHandler is the thin dispatch layer over the allocation and
// resolution engine.
type LinkHandler struct {
	allocator       *shortener.Allocator
	resolver        *shortener.Resolver
	limiter         *ratelimit.FixedWindowLimiter
	baseURL         string
	publishCreated  messaging.Publish[analytics.LinkCreatedEvent]
	publishResolved messaging.Publish[analytics.LinkResolvedEvent]
	logger          *zap.Logger
}

// NewLinkHandler creates the handler. baseURL may be empty, in which case
// the serving host of each request is used to compose short URLs.
func NewLinkHandler(
	allocator *shortener.Allocator,
	resolver *shortener.Resolver,
	limiter *ratelimit.FixedWindowLimiter,
	baseURL string,
	publishCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishResolved messaging.Publish[analytics.LinkResolvedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		allocator:       allocator,
		resolver:        resolver,
		limiter:         limiter,
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		publishCreated:  publishCreated,
		publishResolved: publishResolved,
		logger:          logger,
	}
}

// base returns the URL prefix short links are composed with.
func (h *LinkHandler) base(r *http.Request) string {
	if h.baseURL != "" {
		return h.baseURL
	}

	scheme := "http"
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + r.Host
}
