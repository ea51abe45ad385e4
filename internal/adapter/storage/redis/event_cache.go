package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// EventCache implements service.ProcessedEventCache using Redis. It is the
// fast-path dedupe for inbound webhooks; the database remains the durable
// idempotency source of truth.
type EventCache struct {
	client *goredis.Client
	prefix string
}

// NewEventCache creates a new Redis-backed processed-event cache.
func NewEventCache(client *goredis.Client) *EventCache {
	return &EventCache{
		client: client,
		prefix: "event:",
	}
}

// Get retrieves a processed-event marker.
// Returns nil, nil if the key does not exist.
func (c *EventCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis event get: %w", err)
	}
	return val, nil
}

// Set stores a processed-event marker with TTL.
func (c *EventCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+key, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis event set: %w", err)
	}
	return nil
}
