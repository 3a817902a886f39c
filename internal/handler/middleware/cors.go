package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"travel-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Headers the booking and lottery endpoints depend on; merged into whatever the environment configures.
var (
	requiredAllowHeaders  = []string{"Idempotency-Key", requestIDHeader}
	requiredExposeHeaders = []string{
		"Location",
		"Idempotent-Replayed",
		"Retry-After",
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		requestIDHeader,
	}
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     mergeHeaders(cfg.AllowHeaders, requiredAllowHeaders),
		ExposeHeaders:    mergeHeaders(cfg.ExposeHeaders, requiredExposeHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	// a wildcard cannot be combined with cookies; explicit origins keep credentials
	corsCfg.AllowOrigins = slices.DeleteFunc(slices.Clone(cfg.AllowOrigins), func(o string) bool { return o == "*" })
	if len(corsCfg.AllowOrigins) < len(cfg.AllowOrigins) {
		switch {
		case cfg.AllowCredentials && len(corsCfg.AllowOrigins) > 0:
			slog.Warn("CORS wildcard origin ignored because credentials are enabled")
		default:
			if cfg.AllowCredentials {
				slog.Warn("CORS credentials disabled because only a wildcard origin is configured")
			}
			corsCfg.AllowOrigins = nil
			corsCfg.AllowAllOrigins = true
			corsCfg.AllowCredentials = false
		}
	}

	slog.Info("CORS middleware initialized",
		"allow_origins", corsCfg.AllowOrigins,
		"allow_all_origins", corsCfg.AllowAllOrigins,
		"expose_headers", corsCfg.ExposeHeaders)
	return cors.New(corsCfg)
}

func mergeHeaders(configured, required []string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.ContainsFunc(out, func(c string) bool { return strings.EqualFold(c, h) }) {
			out = append(out, h)
		}
	}
	return out
}
