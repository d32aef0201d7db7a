package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// SearchCache implements ports.SearchCache using Redis. It holds serialized
// search and comparison payloads under a short TTL so repeated queries skip
// the vendor round trips.
type SearchCache struct {
	client *goredis.Client
	prefix string
}

// NewSearchCache creates a new Redis-backed search cache.
func NewSearchCache(client *goredis.Client) *SearchCache {
	return &SearchCache{
		client: client,
		prefix: "search:",
	}
}

// Get retrieves a cached payload. Returns nil, nil on a miss.
func (c *SearchCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis search cache get: %w", err)
	}
	return val, nil
}

// Set stores a payload with TTL.
func (c *SearchCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis search cache set: %w", err)
	}
	return nil
}
