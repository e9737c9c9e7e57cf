package currency

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/tally/internal/logger"
)

func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCacheFallsThroughWhenRedisIsDown(t *testing.T) {
	src := &mapSource{rates: map[string]decimal.Decimal{"USDTRY": decimal.RequireFromString("32")}}
	cache := NewCache(unreachableClient(t), src, time.Minute, logger.Nop())

	rate, err := cache.Rate(context.Background(), "USD", "TRY", time.Now())
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(32)))
	assert.Equal(t, 1, src.calls)

	assert.NotPanics(t, func() { cache.Invalidate(context.Background(), "USD", "TRY") })
}

func TestCachePropagatesSourceErrors(t *testing.T) {
	cache := NewCache(unreachableClient(t), &mapSource{}, time.Minute, logger.Nop())

	_, err := cache.Rate(context.Background(), "USD", "EUR", time.Now())
	assert.ErrorIs(t, err, ErrRateNotFound)
}

func TestNewRedisClientUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewRedisClient(ctx, "127.0.0.1:1", 0)
	assert.Error(t, err)
}

func TestCacheKey(t *testing.T) {
	day := time.Date(2025, time.July, 9, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "rate:USD:TRY:2025-07-09", cacheKey("USD", "TRY", day))
}
