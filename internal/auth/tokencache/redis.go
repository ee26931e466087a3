package tokencache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by a shared Redis instance, for deployments
// that want cross-process cache reuse instead of the default in-process
// cache. Values are stored as JSON with a server-side TTL.
type Redis[T any] struct {
	client    redis.Cmdable
	keyPrefix string
	ttl       time.Duration
}

// NewRedis creates a Redis cache. keyPrefix namespaces this cache's keys
// within the instance.
func NewRedis[T any](client redis.Cmdable, keyPrefix string, ttl time.Duration) *Redis[T] {
	return &Redis[T]{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// Get implements Cache.
func (r *Redis[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	raw, err := r.client.Get(ctx, r.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("redis get: %w", err)
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return zero, false, fmt.Errorf("decode cached value: %w", err)
	}
	return value, true, nil
}

// Set implements Cache.
func (r *Redis[T]) Set(ctx context.Context, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	if err := r.client.Set(ctx, r.keyPrefix+key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
