// Package tokencache provides the TTL cache that fronts token
// introspection. The value type is generic so the cache carries the
// verifier's result type without depending on it.
package tokencache

import "context"

// Cache is a TTL-bounded key/value store for verification results.
// Implementations must be safe for concurrent use. Entries expire
// passively; two concurrent misses for the same key are acceptable and
// no single-flight guarantee is made.
type Cache[T any] interface {
	// Get returns the cached value and whether a live entry was found.
	Get(ctx context.Context, key string) (T, bool, error)

	// Set stores value under key for the cache's configured TTL.
	Set(ctx context.Context, key string, value T) error
}
