package middleware

import (
	"net/http"
	"strings"
)

// FallbackClientAddr is used when no proxy header identifies the client.
// Direct connections without a proxy in front all share this sentinel.
const FallbackClientAddr = "0.0.0.0"

// ClientAddr derives the client address used for rate limiting: the
// trusted proxy-supplied X-Real-IP header, else the first entry of the
// X-Forwarded-For chain, else the fallback sentinel.
func ClientAddr(r *http.Request) string {
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take the first IP (original client).
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	return FallbackClientAddr
}
