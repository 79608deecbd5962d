package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucket_Refill(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewTokenBucket(2, time.Second)
	l.now = func() time.Time { return clock }

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "keys have separate buckets")

	clock = clock.Add(1500 * time.Millisecond)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	clock = clock.Add(500 * time.Millisecond)
	assert.True(t, l.Allow("a"), "partial refill interval is carried over")
}

func TestTokenBucket_PrunesIdleKeys(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewTokenBucket(1, time.Second)
	l.now = func() time.Time { return clock }

	l.Allow("a")
	clock = clock.Add(2 * time.Hour)
	l.Allow("b")

	assert.NotContains(t, l.limiters, "a")
	assert.Contains(t, l.limiters, "b")
}

func TestRateLimit_OnlyMutations(t *testing.T) {
	l := NewTokenBucket(1, time.Minute)
	h := RateLimit(l, l.RetryAfter(), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/v1/lists", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do(http.MethodPost).Code)
	rejected := do(http.MethodPost)
	assert.Equal(t, http.StatusTooManyRequests, rejected.Code)
	assert.Equal(t, "60", rejected.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusOK, do(http.MethodGet).Code)
}
