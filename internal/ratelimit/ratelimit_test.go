package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLimiter(t *testing.T, limit int64, window time.Duration) (Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewFixedWindowLimiter(rdb, "test", limit, window), mr
}

func TestAllow(t *testing.T) {
	limiter, _ := setupLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, allowed, "request over the limit must be denied")
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	limiter, _ := setupLimiter(t, 1, time.Minute)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, allowed, "a different client has its own window")
}

func TestAllow_WindowExpires(t *testing.T) {
	limiter, mr := setupLimiter(t, 1, time.Second)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, allowed)

	// Advancing the clock past the window opens a fresh bucket.
	mr.FastForward(2 * time.Second)
	time.Sleep(1100 * time.Millisecond)

	allowed, err = limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAllow_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewFixedWindowLimiter(rdb, "test", 1, time.Minute)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "user-1")
	assert.Error(t, err)
}
