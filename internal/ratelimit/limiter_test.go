package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tekstlab/leesmeter/internal/monitoring"
)

func TestRateLimiter_AllowIP(t *testing.T) {
	rl := NewRateLimiter(Config{IPLimitPerMin: 10, BurstMultiplier: 1}, monitoring.NewMetrics())

	result := rl.AllowIP("192.0.2.1")
	assert.True(t, result.Allowed)
	assert.Equal(t, 10, result.Limit)
}

func TestRateLimiter_BurstExhaustion(t *testing.T) {
	// burst floor is 5, refill is slow enough that immediate
	// requests beyond it are rejected
	rl := NewRateLimiter(Config{IPLimitPerMin: 1, BurstMultiplier: 1}, monitoring.NewMetrics())

	allowed := 0
	var last *Result
	for i := 0; i < 10; i++ {
		last = rl.AllowIP("192.0.2.2")
		if last.Allowed {
			allowed++
		}
	}

	assert.Equal(t, 5, allowed)
	assert.False(t, last.Allowed)
	assert.Greater(t, last.RetryAfter.Seconds(), 0.0)
}

func TestRateLimiter_IndependentIPs(t *testing.T) {
	rl := NewRateLimiter(Config{IPLimitPerMin: 1, BurstMultiplier: 1}, monitoring.NewMetrics())

	for i := 0; i < 10; i++ {
		rl.AllowIP("192.0.2.3")
	}

	result := rl.AllowIP("192.0.2.4")
	assert.True(t, result.Allowed)

	stats := rl.GetStats()
	assert.Equal(t, 2, stats["active_limiters"])
}

func TestIPRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	metrics := monitoring.NewMetrics()
	rl := NewRateLimiter(Config{IPLimitPerMin: 1, BurstMultiplier: 1}, metrics)

	router := gin.New()
	router.Use(rl.IPRateLimitMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	var lastCode int
	var lastHeaders http.Header
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "192.0.2.5:1234"
		router.ServeHTTP(w, req)
		lastCode = w.Code
		lastHeaders = w.Header()
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
	assert.NotEmpty(t, lastHeaders.Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, lastHeaders.Get("Retry-After"))
}
