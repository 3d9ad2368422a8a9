package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection parameters for the Redis counter store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisCounter implements Counter on a shared Redis instance so that
// multiple service replicas enforce one allowance per identity.
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter creates a Redis-backed counter.
func NewRedisCounter(cfg RedisConfig) *RedisCounter {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
	return &RedisCounter{client: rdb}
}

// NewRedisCounterFromClient wraps an existing client. Used in tests.
func NewRedisCounterFromClient(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

// Incr atomically increments the window counter for key. The key embeds
// the window start, so a new window starts at zero without any explicit
// reset, and the expiry keeps stale windows from accumulating.
func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	windowStart := time.Now().UTC().Truncate(window)
	resetAt := windowStart.Add(window)

	redisKey := fmt.Sprintf("quota:%s:%d", key, windowStart.Unix())

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireAt(ctx, redisKey, resetAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("redis incr failed: %w", err)
	}

	return incr.Val(), resetAt, nil
}

// Ping tests the Redis connection
func (c *RedisCounter) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisCounter) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
