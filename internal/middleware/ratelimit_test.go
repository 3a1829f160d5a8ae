package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterPerKey(t *testing.T) {
	limiter := NewMemoryLimiter(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(ctx, "a"))
	}
	assert.False(t, limiter.Allow(ctx, "a"))
	assert.True(t, limiter.Allow(ctx, "b"))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/limited/:id", RateLimit(NewMemoryLimiter(1), func(c *gin.Context) string { return c.Param("id") }), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/open", RateLimit(nil, func(*gin.Context) string { return "x" }), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	get := func(path string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code
	}
	assert.Equal(t, http.StatusNoContent, get("/limited/1"))
	assert.Equal(t, http.StatusTooManyRequests, get("/limited/1"))
	assert.Equal(t, http.StatusNoContent, get("/limited/2"))
	assert.Equal(t, http.StatusNoContent, get("/open"))
	assert.Equal(t, http.StatusNoContent, get("/open"))
}

func TestMemoryLimiterCleanupEvictsIdleKeys(t *testing.T) {
	limiter := NewMemoryLimiter(1)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }
	ctx := context.Background()

	require.True(t, limiter.Allow(ctx, "apply:1:1"))
	require.False(t, limiter.Allow(ctx, "apply:1:1"))
	clock = clock.Add(90 * time.Second)
	require.True(t, limiter.Allow(ctx, "apply:2:1"))
	assert.Equal(t, 2, limiter.Len())

	// Nothing is idle long enough yet.
	assert.Equal(t, 0, limiter.Cleanup())

	clock = clock.Add(45 * time.Second)
	assert.Equal(t, 1, limiter.Cleanup())
	assert.Equal(t, 1, limiter.Len())

	// An evicted key starts over with a full bucket.
	assert.True(t, limiter.Allow(ctx, "apply:1:1"))
}

func TestMemoryLimiterStartCleanupStopsWithContext(t *testing.T) {
	limiter := NewMemoryLimiter(1)
	limiter.idle = 0
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter.Allow(ctx, "apply:1:1")
	limiter.StartCleanup(ctx, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return limiter.Len() == 0 }, time.Second, 5*time.Millisecond)
}
