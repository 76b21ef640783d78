package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nmoreau/shortlink/internal/analytics"
	"github.com/nmoreau/shortlink/internal/middleware"
	"github.com/nmoreau/shortlink/internal/shortener"
)

// maxEncodedLen caps the base64-encoded longUrl form field; maxDecodedLen
// caps the decoded URL.
const (
	maxEncodedLen = 8192
	maxDecodedLen = 8192
)

// maxBodyBytes leaves headroom for form framing around the encoded field.
const maxBodyBytes = 16 << 10

// Shorten handles POST /short: rate-limit admission, input validation,
// and link allocation.
func (h *LinkHandler) Shorten(w http.ResponseWriter, r *http.Request) {
	clientAddr := middleware.ClientAddr(r)

	decision, err := h.limiter.Admit(r.Context(), clientAddr)
	if err != nil {
		h.logger.Error("rate limit check failed",
			zap.String("clientAddr", clientAddr),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "storage unavailable")

		return
	}

	w.Header().Set("x-rl-remaining", strconv.Itoa(decision.Remaining))
	w.Header().Set("x-rl-reset-in", strconv.Itoa(decision.ResetIn))

	if !decision.Allowed {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")

		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")

			return
		}

		writeError(w, http.StatusBadRequest, "malformed form body")

		return
	}

	encoded := r.PostFormValue("longUrl")
	if encoded == "" {
		writeError(w, http.StatusBadRequest, "missing longUrl field")

		return
	}

	if len(encoded) > maxEncodedLen {
		writeError(w, http.StatusRequestEntityTooLarge, "encoded longUrl exceeds size cap")

		return
	}

	longURL, err := decodeLongURL(encoded)
	if err != nil {
		writeError(w, http.StatusBadRequest, "longUrl is not valid base64")

		return
	}

	if len(longURL) > maxDecodedLen {
		writeError(w, http.StatusRequestEntityTooLarge, "decoded longUrl exceeds size cap")

		return
	}

	if err := validateLongURL(longURL); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())

		return
	}

	code, err := h.allocator.Allocate(r.Context(), longURL)
	if err != nil {
		if errors.Is(err, shortener.ErrAllocationExhausted) {
			h.logger.Error("code allocation exhausted", zap.String("clientAddr", clientAddr))
			writeError(w, http.StatusInternalServerError, "could not allocate a short code")

			return
		}

		h.logger.Error("link allocation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage unavailable")

		return
	}

	event := &analytics.LinkCreatedEvent{
		ID:         uuid.NewString(),
		Code:       string(code),
		LongURL:    longURL,
		ClientAddr: clientAddr,
		CreatedAt:  time.Now(),
	}
	if err := h.publishCreated(event); err != nil {
		h.logger.Warn("failed to publish link created event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	writeSuccess(w, h.base(r)+"/"+string(code))
}

// decodeLongURL decodes standard or URL-safe base64, with or without
// padding. Spaces are folded back to '+' for clients that skipped
// form-encoding the field value.
func decodeLongURL(encoded string) (string, error) {
	normalized := strings.TrimSpace(encoded)
	normalized = strings.ReplaceAll(normalized, " ", "+")
	normalized = strings.ReplaceAll(normalized, "-", "+")
	normalized = strings.ReplaceAll(normalized, "_", "/")
	normalized = strings.TrimRight(normalized, "=")

	decoded, err := base64.RawStdEncoding.DecodeString(normalized)
	if err != nil {
		return "", err
	}

	return string(decoded), nil
}

// validateLongURL requires an absolute http or https URL.
func validateLongURL(longURL string) error {
	u, err := url.Parse(longURL)
	if err != nil {
		return errors.New("longUrl is not a valid URL")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("invalid scheme: only http and https URLs are allowed")
	}

	if u.Host == "" {
		return errors.New("longUrl must be an absolute URL")
	}

	return nil
}
