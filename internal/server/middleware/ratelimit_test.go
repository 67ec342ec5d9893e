package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute, testLogger())
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("device-1"), "request %d should pass", i)
	}
	assert.False(t, rl.Allow("device-1"), "request over the limit should be denied")

	// A different key has its own bucket.
	assert.True(t, rl.Allow("device-2"))
}

func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond, testLogger())
	defer rl.Stop()

	require.True(t, rl.Allow("device-1"))
	require.False(t, rl.Allow("device-1"))

	time.Sleep(30 * time.Millisecond)

	assert.True(t, rl.Allow("device-1"), "tokens should refill after the window")
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(2, time.Minute, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(deviceID string) int {
		req := httptest.NewRequest(http.MethodPost, "/sync/note", nil)
		if deviceID != "" {
			req.Header.Set("X-Device-ID", deviceID)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("device-1"))
	assert.Equal(t, http.StatusOK, send("device-1"))
	assert.Equal(t, http.StatusTooManyRequests, send("device-1"))

	// Another device is unaffected.
	assert.Equal(t, http.StatusOK, send("device-2"))
}

func TestRateLimitMiddlewareFallsBackToIP(t *testing.T) {
	handler := RateLimitMiddleware(1, time.Minute, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/sync/note", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/sync/note", nil)
	req.RemoteAddr = "10.0.0.1:5678"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	// Same remote host but different port still maps to a distinct
	// RemoteAddr key, so it passes.
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		remote   string
		expected string
	}{
		{
			name:     "remote addr only",
			remote:   "192.168.1.1:1234",
			expected: "192.168.1.1:1234",
		},
		{
			name:     "x-forwarded-for single",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.5"},
			remote:   "10.0.0.1:1234",
			expected: "203.0.113.5",
		},
		{
			name:     "x-forwarded-for chain takes first",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.5, 70.41.3.18"},
			remote:   "10.0.0.1:1234",
			expected: "203.0.113.5",
		},
		{
			name:     "x-real-ip",
			headers:  map[string]string{"X-Real-IP": "203.0.113.9"},
			remote:   "10.0.0.1:1234",
			expected: "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, clientIP(req))
		})
	}
}
