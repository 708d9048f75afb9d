package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_Allow_PerMinute(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerMinute: 5}

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "subscribe:usr_a", config)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "subscribe:usr_a", config)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")
}

func TestRedisRateLimiter_Allow_DifferentKeys(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerMinute: 1}

	allowed, err := limiter.Allow(ctx, "subscribe:usr_a", config)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "subscribe:usr_b", config)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "subscribe:usr_a", config)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRedisRateLimiter_GetRemainingAndReset(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerMinute: 3}

	for i := 0; i < 2; i++ {
		_, err := limiter.Allow(ctx, "k", config)
		require.NoError(t, err)
	}

	remaining, err := limiter.GetRemaining(ctx, "k", time.Minute, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)

	require.NoError(t, limiter.Reset(ctx, "k"))

	remaining, err = limiter.GetRemaining(ctx, "k", time.Minute, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), remaining)
}

func TestRedisRateLimiter_ZeroLimits(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))

	for i := 0; i < 20; i++ {
		allowed, err := limiter.Allow(context.Background(), "unlimited", RateLimitConfig{})
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}
