package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nmoreau/shortlink/internal/middleware"
)

func corsHandler(policy middleware.CORSPolicy) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return middleware.CORS(policy)(next)
}

func TestCORS(t *testing.T) {
	t.Run("open mode allows any origin", func(t *testing.T) {
		policy := middleware.NewCORSPolicy(middleware.CORSOpen, nil)

		req := httptest.NewRequest(http.MethodPost, "/short", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		w := httptest.NewRecorder()

		corsHandler(policy).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("open mode echoes requested headers", func(t *testing.T) {
		policy := middleware.NewCORSPolicy(middleware.CORSOpen, nil)

		req := httptest.NewRequest(http.MethodOptions, "/short", nil)
		req.Header.Set("Access-Control-Request-Headers", "content-type, x-custom")
		w := httptest.NewRecorder()

		corsHandler(policy).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "content-type, x-custom", w.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("list mode echoes allowed origins only", func(t *testing.T) {
		policy := middleware.NewCORSPolicy(middleware.CORSList, []string{"https://app.example.com"})

		req := httptest.NewRequest(http.MethodPost, "/short", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()

		corsHandler(policy).ServeHTTP(w, req)

		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Values("Vary"), "Origin")
	})

	t.Run("list mode withholds headers for unknown origins", func(t *testing.T) {
		policy := middleware.NewCORSPolicy(middleware.CORSList, []string{"https://app.example.com"})

		req := httptest.NewRequest(http.MethodPost, "/short", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()

		corsHandler(policy).ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Values("Vary"), "Origin")
	})

	t.Run("off mode emits no cors headers", func(t *testing.T) {
		policy := middleware.NewCORSPolicy(middleware.CORSOff, nil)

		req := httptest.NewRequest(http.MethodPost, "/short", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		w := httptest.NewRecorder()

		corsHandler(policy).ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Vary"))
	})

	t.Run("preflight returns 204 in every mode", func(t *testing.T) {
		for _, mode := range []middleware.CORSMode{middleware.CORSOpen, middleware.CORSList, middleware.CORSOff} {
			req := httptest.NewRequest(http.MethodOptions, "/short", nil)
			w := httptest.NewRecorder()

			corsHandler(middleware.NewCORSPolicy(mode, nil)).ServeHTTP(w, req)

			assert.Equal(t, http.StatusNoContent, w.Code, "mode %s", mode)
		}
	})
}
