package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ward28/wardbot/internal/dedupe"
)

// Cache is a Redis-backed key-value cache with TTL semantics. It is the
// persistence behind the dedupe guard; one entry per workflow occurrence.
type Cache struct {
	client *redis.Client
}

// Compile-time interface check.
var _ dedupe.Cache = (*Cache)(nil) //nolint:gochecknoglobals // compile-time check

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &Cache{client: client}, nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("redis.Cache.Close: %w", err)
	}
	return nil
}

// Get returns the value stored under key, or ok=false when the key is absent
// or expired.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis.Cache.Get: %w", err)
	}

	return value, true, nil
}

// SetWithTTL stores value under key, expiring after ttl.
func (c *Cache) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis.Cache.SetWithTTL: %w", err)
	}
	return nil
}
