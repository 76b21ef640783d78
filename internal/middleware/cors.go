package middleware

import (
	"net/http"
	"strings"
)

// CORSMode selects the cross-origin policy.
type CORSMode string

const (
	// CORSOpen allows any origin without credentials.
	CORSOpen CORSMode = "open"
	// CORSList echoes the origin only when it is in the allow-set.
	CORSList CORSMode = "list"
	// CORSOff emits no CORS headers at all.
	CORSOff CORSMode = "off"
)

// CORSPolicy is a stateless header-decision function over the configured
// mode and allow-set.
type CORSPolicy struct {
	Mode    CORSMode
	Origins map[string]struct{}
}

// NewCORSPolicy creates a policy. origins is only consulted in list mode.
func NewCORSPolicy(mode CORSMode, origins []string) CORSPolicy {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = struct{}{}
		}
	}

	return CORSPolicy{Mode: mode, Origins: allowed}
}

// Apply writes the CORS response headers for r according to the policy.
func (p CORSPolicy) Apply(w http.ResponseWriter, r *http.Request) {
	switch p.Mode {
	case CORSOpen:
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
			w.Header().Set("Access-Control-Allow-Headers", reqHeaders)
		}
	case CORSList:
		w.Header().Add("Vary", "Origin")

		origin := r.Header.Get("Origin")
		if _, ok := p.Origins[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

			if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
				w.Header().Set("Access-Control-Allow-Headers", reqHeaders)
			}
		}
	case CORSOff:
	}
}

// CORS returns a chi middleware that applies the policy to every response
// and answers OPTIONS preflights with 204.
func CORS(policy CORSPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			policy.Apply(w, r)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
