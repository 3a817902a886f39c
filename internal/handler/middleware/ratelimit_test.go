//go:build unit

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-booking/internal/handler/middleware"
	"travel-booking/internal/infra/cache"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLimiter struct {
	decision cache.RateDecision
	err      error
	keys     []string
}

func (f *fakeLimiter) Take(_ context.Context, key string, _ time.Time) (cache.RateDecision, error) {
	f.keys = append(f.keys, key)
	return f.decision, f.err
}

func (f *fakeLimiter) Capacity() int { return 5 }

func serve(mw gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/purchase", mw, func(c *gin.Context) { c.Status(http.StatusAccepted) })

	req := httptest.NewRequest(http.MethodPost, "/purchase", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	t.Run("正常系: 許可されればヘッダーを付けて通す", func(t *testing.T) {
		limiter := &fakeLimiter{decision: cache.RateDecision{Allowed: true, Remaining: 4}}

		w := serve(middleware.NewRateLimitMiddleware(limiter, true).Limit("coupon_purchase"))

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
		require.Len(t, limiter.keys, 1)
		assert.Equal(t, "coupon_purchase:203.0.113.7", limiter.keys[0])
	})

	t.Run("異常系: 枯渇したら429とRetry-After", func(t *testing.T) {
		limiter := &fakeLimiter{decision: cache.RateDecision{Allowed: false, RetryAfter: 1500 * time.Millisecond}}

		w := serve(middleware.NewRateLimitMiddleware(limiter, true).Limit("coupon_purchase"))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "2", w.Header().Get("Retry-After"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Retry-After は最低1秒", func(t *testing.T) {
		limiter := &fakeLimiter{decision: cache.RateDecision{Allowed: false}}

		w := serve(middleware.NewRateLimitMiddleware(limiter, true).Limit("coupon_purchase"))

		assert.Equal(t, "1", w.Header().Get("Retry-After"))
	})

	t.Run("Redis障害時は通す", func(t *testing.T) {
		limiter := &fakeLimiter{err: errors.New("dial tcp: connection refused")}

		w := serve(middleware.NewRateLimitMiddleware(limiter, true).Limit("booking_start"))

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	})

	t.Run("無効ならリミッターを呼ばない", func(t *testing.T) {
		limiter := &fakeLimiter{}

		w := serve(middleware.NewRateLimitMiddleware(limiter, false).Limit("booking_start"))

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Empty(t, limiter.keys)
	})
}
