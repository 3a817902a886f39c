package cache

import (
	"context"
	"log/slog"
	"time"

	"travel-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient pings once at startup. A failed ping is logged, not fatal: the rate
// limiter fails open and the live offer cache falls through to PostgreSQL.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, continuing without cache", "addr", cfg.Addr, "error", err.Error())
	}
	return client
}
