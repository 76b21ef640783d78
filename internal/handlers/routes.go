package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmoreau/shortlink/internal/health"
	"github.com/nmoreau/shortlink/internal/middleware"
)

// RegisterRoutes wires all routes on the mux. The CORS policy applies to
// the creation endpoint; resolution and probes are policy-free.
func RegisterRoutes(
	mux *chi.Mux,
	h *LinkHandler,
	registry *health.Registry,
	cors middleware.CORSPolicy,
) {
	mux.Get("/healthz", Healthz)
	mux.Get("/readyz", Readyz(registry))

	mux.Group(func(r chi.Router) {
		r.Use(middleware.CORS(cors))
		r.Post("/short", h.Shorten)
		// Matched so the CORS middleware can answer preflights with 204.
		r.Options("/short", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})

	mux.Get("/{token}", h.Redirect)
	mux.Head("/{token}", h.Redirect)
}
