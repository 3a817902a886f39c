package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

const liveOfferKey = "offers:live"

// LiveOfferCache keeps the single live offer as JSON. sold_coupons may lag by up to ttl.
type LiveOfferCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLiveOfferCache(rdb *redis.Client, ttl time.Duration) *LiveOfferCache {
	return &LiveOfferCache{rdb: rdb, ttl: ttl}
}

func (c *LiveOfferCache) GetLive(ctx context.Context) (*queries.OfferView, error) {
	raw, err := c.rdb.Get(ctx, liveOfferKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errs.Wrap(err, "redis get live offer")
	}

	var v queries.OfferView
	if err := json.Unmarshal(raw, &v); err != nil {
		// corrupt entry: drop it and report a miss
		_ = c.rdb.Del(ctx, liveOfferKey).Err()
		return nil, nil
	}
	return &v, nil
}

func (c *LiveOfferCache) SetLive(ctx context.Context, v *queries.OfferView) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errs.Wrap(err, "encode live offer")
	}
	if err := c.rdb.Set(ctx, liveOfferKey, raw, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "redis set live offer")
	}
	return nil
}

func (c *LiveOfferCache) InvalidateLive(ctx context.Context) error {
	if err := c.rdb.Del(ctx, liveOfferKey).Err(); err != nil {
		return errs.Wrap(err, "redis delete live offer")
	}
	return nil
}
