package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const countKey = "tickets:count"
const countTTL = 30 * time.Second

// CountCache caches the total ticket count shown on the landing page.
// The entry expires after countTTL and is invalidated on every ticket
// creation, so the landing page never lags far behind the store.
type CountCache struct {
	client *redis.Client
}

// NewCountCache creates a CountCache wrapping the given Redis client.
func NewCountCache(client *redis.Client) *CountCache {
	return &CountCache{client: client}
}

// Get returns the cached count and whether a cached value was present.
func (c *CountCache) Get(ctx context.Context) (int64, bool, error) {
	n, err := c.client.Get(ctx, countKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("count cache get: %w", err)
	}
	return n, true, nil
}

// Set stores the count (expires after countTTL).
func (c *CountCache) Set(ctx context.Context, count int64) error {
	if err := c.client.Set(ctx, countKey, count, countTTL).Err(); err != nil {
		return fmt.Errorf("count cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached count.
func (c *CountCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, countKey).Err(); err != nil {
		return fmt.Errorf("count cache invalidate: %w", err)
	}
	return nil
}
