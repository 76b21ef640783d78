package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nmoreau/shortlink/internal/analytics"
	"github.com/nmoreau/shortlink/internal/middleware"
	"github.com/nmoreau/shortlink/internal/shortener"
)

// Redirect handles GET/HEAD /{token}: 302 to the stored URL or 404.
func (h *LinkHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	longURL, err := h.resolver.Resolve(r.Context(), token)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)

			return
		}

		h.logger.Error("resolve failed", zap.String("token", token), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	event := &analytics.LinkResolvedEvent{
		ID:         uuid.NewString(),
		Code:       token,
		ClientAddr: middleware.ClientAddr(r),
		Referrer:   r.Header.Get("Referer"),
		ResolvedAt: time.Now(),
	}
	if err := h.publishResolved(event); err != nil {
		h.logger.Warn("failed to publish link resolved event",
			zap.String("code", token),
			zap.Error(err),
		)
	}

	w.Header().Set("Location", longURL)
	w.WriteHeader(http.StatusFound)
}
