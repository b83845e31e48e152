package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func authedHandler(t *testing.T, keys []string) http.Handler {
	t.Helper()
	return APIKeyAuth(keys)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, GetAPIKeyFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAPIKeyAuth(t *testing.T) {
	h := authedHandler(t, []string{"secret-key"})

	t.Run("bearer format", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/analyses", nil)
		req.Header.Set("Authorization", "Bearer secret-key")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bare key format", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/analyses", nil)
		req.Header.Set("Authorization", "secret-key")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/analyses", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/analyses", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("health bypasses auth", func(t *testing.T) {
		bypass := APIKeyAuth([]string{"secret-key"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		bypass.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimiterAllow(t *testing.T) {
	// 1 rps with burst 2: third immediate hit is rejected
	rl := NewRateLimiter(1, 2)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// other clients keep their own bucket
	assert.True(t, rl.Allow("10.0.0.2"))
}
