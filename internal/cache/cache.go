package cache

import (
	"context"
	"time"
)

// Cache is the interface for caching catalog lookups. Computed values
// such as plan-change diffs are never cached; only remote catalog reads
// (plan versions, fee lists) go through here.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)
	Delete(ctx context.Context, key string)
	DeleteByPrefix(ctx context.Context, prefix string)
	Flush(ctx context.Context)
}

const (
	ExpiryDefaultInMemory = 30 * time.Second
)

// noopCache satisfies Cache when caching is disabled in configuration.
type noopCache struct{}

// NewNoopCache returns a cache that stores nothing.
func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) Get(ctx context.Context, key string) (interface{}, bool) { return nil, false }
func (noopCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
}
func (noopCache) Delete(ctx context.Context, key string)            {}
func (noopCache) DeleteByPrefix(ctx context.Context, prefix string) {}
func (noopCache) Flush(ctx context.Context)                         {}
