package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/motorvia/autocare-scheduler/internal/config"
)

const availabilityTTL = 30 * time.Second

func NewRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

// AvailabilityCache keeps the hour→remaining-capacity projection per
// (center, date) with a short TTL. It only ever caches committed
// state: writers invalidate after their transaction commits.
type AvailabilityCache struct {
	rdb *redis.Client
}

func NewAvailabilityCache(rdb *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb}
}

func key(centerID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s", centerID, date)
}

func (c *AvailabilityCache) Get(ctx context.Context, centerID uint, date string) (map[int]int, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(centerID, date)).Result()
	if err != nil {
		return nil, false
	}

	var out map[int]int
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, false
	}
	return out, true
}

func (c *AvailabilityCache) Set(ctx context.Context, centerID uint, date string, slots map[int]int) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(centerID, date), raw, availabilityTTL)
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, centerID uint, date string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, key(centerID, date))
}
