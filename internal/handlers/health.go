package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nmoreau/shortlink/internal/health"
)

// Healthz answers liveness probes unconditionally.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// Readyz reports whether the backing stores are reachable.
func Readyz(registry *health.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses, healthy := registry.Check(r.Context())

		status := http.StatusOK
		overall := "ok"

		if !healthy {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": overall,
			"stores": statuses,
		})
	}
}
