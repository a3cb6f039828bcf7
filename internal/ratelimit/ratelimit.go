package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type (
	// Limiter throttles per-client request rates. Counters live in Redis
	// with TTLs so limits hold across multiple instances.
	Limiter interface {
		Allow(ctx context.Context, key string) (bool, error)
	}

	fixedWindowLimiter struct {
		rdb    *redis.Client
		prefix string
		limit  int64
		window time.Duration
	}
)

func NewFixedWindowLimiter(rdb *redis.Client, prefix string, limit int64, window time.Duration) Limiter {
	return &fixedWindowLimiter{
		rdb:    rdb,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

func (l *fixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowStart := time.Now().UnixMilli() / l.window.Milliseconds()
	bucket := fmt.Sprintf("%s:%s:%d", l.prefix, key, windowStart)

	count, err := l.rdb.Incr(ctx, bucket).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, bucket, l.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= l.limit, nil
}
