//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"travel-booking/internal/handler/middleware"
	"travel-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLoggingMiddleware_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := middleware.NewLogger(config.NewTestConfig().Log)

	serveWithID := func(id string) (*httptest.ResponseRecorder, string) {
		var seen string
		r := gin.New()
		r.Use(logger.LoggingMiddleware())
		r.GET("/api/bookings/:bookingId", func(c *gin.Context) {
			seen = middleware.GetRequestID(c)
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/OKB000001", nil)
		if id != "" {
			req.Header.Set("X-Request-ID", id)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w, seen
	}

	t.Run("クライアント指定のIDを引き継ぐ", func(t *testing.T) {
		w, seen := serveWithID("edge-7f3a.19")

		assert.Equal(t, "edge-7f3a.19", seen)
		assert.Equal(t, "edge-7f3a.19", w.Header().Get("X-Request-ID"))
	})

	t.Run("未指定なら採番する", func(t *testing.T) {
		w, seen := serveWithID("")

		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})

	t.Run("ログに載せられない文字を含むIDは置き換える", func(t *testing.T) {
		_, seen := serveWithID("abc\ninjected=1")

		assert.NotContains(t, seen, "\n")
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})
}
