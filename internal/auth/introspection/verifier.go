package introspection

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"go.uber.org/zap"

	"github.com/kobzev/LykkeWalletAPI/internal/auth/tokencache"
	"github.com/kobzev/LykkeWalletAPI/pkg/metrics"
)

// CacheKey derives the cache key for a token. Tokens are hashed so the
// raw credential never appears as a cache key.
func CacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CachedVerifier fronts an Introspector with a TTL cache. Both active
// and inactive results are cached, bounding the cost of repeated
// presentation of a bad token. A failing cache degrades to always-miss:
// the live call still happens and the request is never failed because
// of cache trouble.
type CachedVerifier struct {
	introspector Introspector
	cache        tokencache.Cache[Result]
	logger       *zap.Logger
}

// NewCachedVerifier wires an Introspector to a cache.
func NewCachedVerifier(introspector Introspector, cache tokencache.Cache[Result], logger *zap.Logger) *CachedVerifier {
	return &CachedVerifier{
		introspector: introspector,
		cache:        cache,
		logger:       logger,
	}
}

// Verify returns the introspection result for token, consulting the
// cache first. A live result is cached regardless of its active flag.
func (v *CachedVerifier) Verify(ctx context.Context, token string) (Result, error) {
	key := CacheKey(token)

	cached, ok, err := v.cache.Get(ctx, key)
	if err != nil {
		v.logger.Warn("introspection cache read failed, forcing live call", zap.Error(err))
	} else if ok {
		metrics.IntrospectionCacheHits.Inc()
		return cached, nil
	}
	metrics.IntrospectionCacheMisses.Inc()

	result, err := v.introspector.Introspect(ctx, token)
	if err != nil {
		return Result{}, err
	}

	if err := v.cache.Set(ctx, key, result); err != nil {
		v.logger.Warn("introspection cache write failed", zap.Error(err))
	}
	return result, nil
}
