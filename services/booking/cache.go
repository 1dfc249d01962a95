package booking

import (
	"context"
	"encoding/json"
	"time"

	"viewly/models"
	"viewly/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// BookingCache is a read-through cache for booking lookups. It is strictly
// an optimization: every transition invalidates, and a miss always falls
// through to the store.
type BookingCache interface {
	Get(ctx context.Context, bookingID string) (*models.Booking, bool)
	Set(ctx context.Context, b *models.Booking)
	Invalidate(ctx context.Context, bookingID string)
}

type redisBookingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBookingCache returns a BookingCache on the shared Redis client.
func NewRedisBookingCache() BookingCache {
	return &redisBookingCache{
		client: utils.GetCacheClient(),
		ttl:    5 * time.Minute,
	}
}

func cacheKey(bookingID string) string {
	return "booking:" + bookingID
}

func (c *redisBookingCache) Get(ctx context.Context, bookingID string) (*models.Booking, bool) {
	data, err := c.client.Get(ctx, cacheKey(bookingID)).Result()
	if err != nil {
		return nil, false
	}
	var b models.Booking
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return nil, false
	}
	return &b, true
}

func (c *redisBookingCache) Set(ctx context.Context, b *models.Booking) {
	data, err := json.Marshal(b)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(b.ID), data, c.ttl).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache booking", zap.String("booking_id", b.ID), zap.Error(err))
	}
}

func (c *redisBookingCache) Invalidate(ctx context.Context, bookingID string) {
	if err := c.client.Del(ctx, cacheKey(bookingID)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate booking cache", zap.String("booking_id", bookingID), zap.Error(err))
	}
}
