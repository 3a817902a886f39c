//go:build e2e

package dbtest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	redisOnce      sync.Once
	redisContainer testcontainers.Container
	redisErr       error
)

// NewRedis returns a client on a flushed database of the shared Redis container.
func NewRedis(t *testing.T) *redis.Client {
	t.Helper()

	redisOnce.Do(func() {
		redisContainer, redisErr = startGenericContainer(testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
			Labels:       map[string]string{"purpose": "e2e-tests"},
		}, 120)
	})
	require.NoError(t, redisErr, "Redisコンテナの起動に失敗")

	info, err := hostPort(redisContainer, "6379/tcp")
	require.NoError(t, err, "Redisコンテナ情報の取得に失敗")

	client := redis.NewClient(&redis.Options{Addr: info.Host + ":" + info.Port.Port()})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.FlushDB(ctx).Err())

	t.Cleanup(func() { _ = client.Close() })
	return client
}
