package middleware

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"travel-booking/internal/handler/httperr"
	"travel-booking/internal/infra/cache"
	"travel-booking/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type RateLimiter interface {
	Take(ctx context.Context, key string, now time.Time) (cache.RateDecision, error)
	Capacity() int
}

type RateLimitMiddleware struct {
	limiter RateLimiter
	enabled bool
}

func NewRateLimitMiddleware(limiter RateLimiter, enabled bool) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, enabled: enabled}
}

// Limit keys the bucket by route and caller. The limiter fails open when redis is unavailable.
func (m *RateLimitMiddleware) Limit(route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		caller := c.ClientIP()
		if userID, ok := GetUserID(c); ok {
			caller = userID.String()
		}

		decision, err := m.limiter.Take(c.Request.Context(), route+":"+caller, time.Now())
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "route", route, "error", err.Error())
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(m.limiter.Capacity()))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
		if !decision.Allowed {
			metrics.RateLimitedTotal.WithLabelValues(route).Inc()
			httperr.AbortTooManyRequests(c, decision.RetryAfter)
			return
		}
		c.Next()
	}
}
