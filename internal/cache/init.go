package cache

import (
	"github.com/billforge/billforge/internal/config"
	"github.com/billforge/billforge/internal/logger"
)

// Initialize builds the cache from configuration.
func Initialize(cfg *config.Configuration, log *logger.Logger) Cache {
	if !cfg.Cache.Enabled {
		log.Infow("cache disabled, using noop cache")
		return NewNoopCache()
	}

	log.Infow("initializing in-memory cache", "ttl", cfg.Cache.TTL)
	return NewInMemoryCache(cfg.Cache.TTL)
}

// UnmarshalCacheValue attempts to convert a cache value to the
// specified type. Returns the typed value and true if successful.
func UnmarshalCacheValue[T any](value interface{}) (T, bool) {
	var zero T
	if value == nil {
		return zero, false
	}
	if typed, ok := value.(T); ok {
		return typed, true
	}
	return zero, false
}
