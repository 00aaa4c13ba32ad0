package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/tutorhub-backend/internal/config"
)

// RedisScheduleCache stores built weeks under a version counter. Bumping
// the counter orphans every cached week at once; orphans expire by TTL.
type RedisScheduleCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisScheduleCache creates a new RedisScheduleCache.
func NewRedisScheduleCache(rdb *redis.Client, ttl time.Duration) *RedisScheduleCache {
	return &RedisScheduleCache{rdb: rdb, ttl: ttl}
}

func (c *RedisScheduleCache) Version(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, config.CacheKey.ScheduleVersionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *RedisScheduleCache) Bump(ctx context.Context) error {
	return c.rdb.Incr(ctx, config.CacheKey.ScheduleVersionKey()).Err()
}

// Get returns the cached payload and whether it was present.
func (c *RedisScheduleCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *RedisScheduleCache) Set(ctx context.Context, key string, data []byte) error {
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}
