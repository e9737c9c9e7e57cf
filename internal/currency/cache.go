package currency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/constants"
)

// Cache is a read-through Redis cache in front of a RateSource. Redis
// failures are logged and fall through to the source.
type Cache struct {
	client *redis.Client
	source RateSource
	ttl    time.Duration
	log    zerolog.Logger
}

var _ RateSource = (*Cache)(nil)

// NewRedisClient connects to addr and pings it once.
func NewRedisClient(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     4,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

func NewCache(client *redis.Client, source RateSource, ttl time.Duration, log zerolog.Logger) *Cache {
	return &Cache{client: client, source: source, ttl: ttl, log: log}
}

func (c *Cache) Rate(ctx context.Context, base, quote string, asOf time.Time) (decimal.Decimal, error) {
	key := cacheKey(base, quote, asOf)

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if rate, perr := decimal.NewFromString(cached); perr == nil {
			return rate, nil
		}
		c.log.Debug().Str("key", key).Msg("discarding unparsable cached rate")
	case !errors.Is(err, redis.Nil):
		c.log.Debug().Err(err).Str("key", key).Msg("rate cache read failed")
	}

	rate, err := c.source.Rate(ctx, base, quote, asOf)
	if err != nil {
		return decimal.Zero, err
	}

	if err := c.client.Set(ctx, key, rate.String(), c.ttl).Err(); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("rate cache write failed")
	}
	return rate, nil
}

// Invalidate drops every cached date for the pair in both directions.
func (c *Cache) Invalidate(ctx context.Context, base, quote string) {
	for _, pattern := range []string{
		fmt.Sprintf("rate:%s:%s:*", base, quote),
		fmt.Sprintf("rate:%s:%s:*", quote, base),
	} {
		iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			c.log.Warn().Err(err).Str("pattern", pattern).Msg("rate cache scan failed")
			continue
		}
		if len(keys) == 0 {
			continue
		}
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.log.Warn().Err(err).Str("pattern", pattern).Msg("rate cache invalidation failed")
		}
	}
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func cacheKey(base, quote string, asOf time.Time) string {
	return fmt.Sprintf("rate:%s:%s:%s", base, quote, asOf.UTC().Format(constants.DateFormat))
}
