package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"travel-booking/internal/handler/httperr"
	"travel-booking/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the envelope for handlers that recorded an error but did not respond.
// The most recent public error wins; private errors collapse to a bare 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if last := c.Errors.ByType(gin.ErrorTypePublic).Last(); last != nil {
			if resp, ok := last.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}

		if len(c.Errors) == 0 {
			if status := c.Writer.Status(); status != http.StatusOK {
				c.Status(status)
				c.Writer.WriteHeaderNow()
				return
			}
		}

		slog.ErrorContext(c.Request.Context(), "request ended without a response",
			"route", c.FullPath(),
			"request_id", GetRequestID(c),
			"errors", c.Errors.String())
		c.JSON(http.StatusInternalServerError, httperr.New(c, http.StatusInternalServerError, "Internal server error", nil))
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				route := c.FullPath()
				if route == "" {
					route = "unmatched"
				}
				metrics.PanicsRecoveredTotal.WithLabelValues(route).Inc()

				attrs := []any{
					"panic", rec,
					"route", route,
					"request_id", GetRequestID(c),
					"stack", string(debug.Stack()),
				}
				if userID, ok := GetUserID(c); ok {
					attrs = append(attrs, "user_id", userID.String())
				}
				slog.ErrorContext(c.Request.Context(), "ハンドラでpanicが発生", attrs...)

				httperr.Abort(c, http.StatusInternalServerError, "Internal server error")
			}
		}()
		c.Next()
	}
}
