package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared across instances: INCR the
// key, set the window TTL on first hit.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		rdb:    rdb,
		limit:  int64(limit),
		window: window,
		prefix: "ratelimit:",
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	full := l.prefix + key

	count, err := l.rdb.Incr(ctx, full).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, full, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= l.limit, nil
}
