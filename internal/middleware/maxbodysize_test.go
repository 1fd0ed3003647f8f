package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fleet-ledger/internal/middleware"
)

// bodyReadingHandler returns 413 when reading the body fails, like a decoding handler.
var bodyReadingHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	w.WriteHeader(http.StatusOK)
})

func TestMaxBodySizeHandler_SmallBody_PassesThrough(t *testing.T) {
	const limit = 100
	h := middleware.NewMaxBodySizeHandler(limit)(bodyReadingHandler)

	body := strings.NewReader(strings.Repeat("x", 50))
	req := httptest.NewRequest(http.MethodPost, "/receipts", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMaxBodySizeHandler_ContentLengthExceedsLimit_Returns413(t *testing.T) {
	const limit = 100
	h := middleware.NewMaxBodySizeHandler(limit)(bodyReadingHandler)

	body := strings.NewReader(strings.Repeat("x", 200))
	req := httptest.NewRequest(http.MethodPost, "/receipts", body)
	req.ContentLength = 200
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"payload_too_large","message":"request body too large"}}`, rec.Body.String())
}

func TestMaxBodySizeHandler_StreamingBodyExceedsLimit_Returns413(t *testing.T) {
	const limit = 100
	h := middleware.NewMaxBodySizeHandler(limit)(bodyReadingHandler)

	body := strings.NewReader(strings.Repeat("x", 200))
	req := httptest.NewRequest(http.MethodPost, "/receipts", body)
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
