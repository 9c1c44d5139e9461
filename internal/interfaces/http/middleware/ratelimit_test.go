package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	ok, remaining := rl.Allow("a")
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	ok, remaining = rl.Allow("a")
	assert.True(t, ok)
	assert.Equal(t, 0, remaining)

	ok, _ = rl.Allow("a")
	assert.False(t, ok)

	ok, _ = rl.Allow("b")
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Minute)
	ok, _ = rl.Allow("a")
	assert.True(t, ok, "new window")
}

func TestRateLimiter_RemoveStale(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	defer rl.Stop()

	now := time.Now()
	rl.now = func() time.Time { return now }
	rl.Allow("old")

	now = now.Add(3 * time.Second)
	rl.removeStale()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.clients)
}

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	defer rl.Stop()

	router := gin.New()
	router.Use(RateLimit(rl))
	router.POST("/login", okHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}
