package serve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss indicates the identifier has no cached redirect.
var ErrCacheMiss = errors.New("cache miss")

const cacheKeyPrefix = "ark:redirect:"

// RedirectCache is a Redis-backed cache of resolved redirect URLs keyed
// by ARK identifier. It is an optimization for hot identifiers; the
// resolver works without it.
type RedirectCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedirectCache connects to Redis and verifies the connection.
func NewRedirectCache(addr string, ttl time.Duration) (*RedirectCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedirectCache{client: client, ttl: ttl}, nil
}

// Client returns the underlying Redis client, for health checks.
func (c *RedirectCache) Client() *redis.Client {
	return c.client
}

// Get returns the cached redirect for arkID, or ErrCacheMiss.
func (c *RedirectCache) Get(ctx context.Context, arkID string) (string, error) {
	redirect, err := c.client.Get(ctx, cacheKeyPrefix+arkID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("cache get: %w", err)
	}
	return redirect, nil
}

// Set stores the redirect for arkID with the configured TTL.
func (c *RedirectCache) Set(ctx context.Context, arkID, redirect string) error {
	if err := c.client.Set(ctx, cacheKeyPrefix+arkID, redirect, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Flush drops all cached redirects. Called after a registry reload so
// stale templates are not served.
func (c *RedirectCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, cacheKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache flush: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache flush: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *RedirectCache) Close() error {
	return c.client.Close()
}
