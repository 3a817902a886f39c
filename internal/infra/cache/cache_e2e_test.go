//go:build e2e

package cache_test

import (
	"context"
	"testing"
	"time"

	"travel-booking/internal/infra/cache"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/testutil/dbtest"
	"travel-booking/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveOfferCache(t *testing.T) {
	ctx := context.Background()
	rdb := dbtest.NewRedis(t)
	c := cache.NewLiveOfferCache(rdb, 30*time.Second)

	t.Run("未登録はミス", func(t *testing.T) {
		got, err := c.GetLive(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("保存した内容をそのまま返す", func(t *testing.T) {
		want := &queries.OfferView{
			ID:           uuid.New(),
			Title:        "Monsoon Mega Draw",
			TotalCoupons: 100,
			SoldCoupons:  12,
			Price:        499,
			EndDate:      time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			Status:       "live",
			CreatedAt:    time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
		}
		require.NoError(t, c.SetLive(ctx, want))

		got, err := c.GetLive(ctx)

		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("GetLive() mismatch (-want +got):\n%s", diff)
		}
		ttl, err := rdb.TTL(ctx, "offers:live").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, 30*time.Second)
	})

	t.Run("壊れたエントリは消してミス扱い", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, "offers:live", "{not json", time.Minute).Err())

		got, err := c.GetLive(ctx)

		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Zero(t, rdb.Exists(ctx, "offers:live").Val())
	})

	t.Run("無効化で次はミス", func(t *testing.T) {
		require.NoError(t, c.SetLive(ctx, &queries.OfferView{ID: uuid.New(), Title: "Diwali Draw"}))
		require.NoError(t, c.InvalidateLive(ctx))

		got, err := c.GetLive(ctx)

		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRateLimiter(t *testing.T) {
	ctx := context.Background()
	rdb := dbtest.NewRedis(t)
	limiter := cache.NewRateLimiter(rdb, config.RateLimitConfig{
		Enabled:        true,
		Prefix:         "rl",
		Capacity:       3,
		RefillTokens:   1,
		RefillInterval: 10 * time.Second,
		TTL:            time.Minute,
	})
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("容量まで許可し、その後は待ち時間を返す", func(t *testing.T) {
		for i := range 3 {
			d, err := limiter.Take(ctx, "coupon_purchase:user-a", now)
			require.NoError(t, err)
			assert.True(t, d.Allowed)
			assert.Equal(t, int64(2-i), d.Remaining)
		}

		d, err := limiter.Take(ctx, "coupon_purchase:user-a", now.Add(4*time.Second))

		require.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.Equal(t, 6*time.Second, d.RetryAfter)
	})

	t.Run("間隔が経てば補充される", func(t *testing.T) {
		d, err := limiter.Take(ctx, "coupon_purchase:user-a", now.Add(10*time.Second))

		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Zero(t, d.Remaining)
	})

	t.Run("キーごとに独立", func(t *testing.T) {
		d, err := limiter.Take(ctx, "coupon_purchase:user-b", now)

		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, int64(2), d.Remaining)
	})
}
