package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nmoreau/shortlink/internal/middleware"
)

func TestClientAddr(t *testing.T) {
	t.Run("prefers X-Real-IP", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "198.51.100.9")
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 10.0.0.1")

		assert.Equal(t, "198.51.100.9", middleware.ClientAddr(req))
	})

	t.Run("takes the first forwarded-for entry", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 10.0.0.1, 172.16.0.1")

		assert.Equal(t, "203.0.113.1", middleware.ClientAddr(req))
	})

	t.Run("handles a single forwarded-for entry", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", " 203.0.113.1 ")

		assert.Equal(t, "203.0.113.1", middleware.ClientAddr(req))
	})

	t.Run("falls back to the sentinel address", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		assert.Equal(t, middleware.FallbackClientAddr, middleware.ClientAddr(req))
	})
}
