package cachemanager

import (
	"context"
	"sync/atomic"
	"time"
)

// ReadThrough fills a Cache from load on a miss. Values are stored for ttl;
// errors are never cached.
type ReadThrough[K ~string, V any] struct {
	cache Cache[K, V]
	load  func(ctx context.Context, key K) (V, error)
	ttl   time.Duration

	hits, misses, failures atomic.Uint64
}

// NewReadThrough wraps cache with load.
func NewReadThrough[K ~string, V any](cache Cache[K, V], load func(ctx context.Context, key K) (V, error), ttl time.Duration) *ReadThrough[K, V] {
	return &ReadThrough[K, V]{cache: cache, load: load, ttl: ttl}
}

// Get returns the cached value for key, loading and storing it on a miss.
func (r *ReadThrough[K, V]) Get(ctx context.Context, key K) (V, error) {
	if value, ok := r.cache.Get(ctx, key); ok {
		r.hits.Add(1)
		return value, nil
	}

	r.misses.Add(1)
	value, err := r.load(ctx, key)
	if err != nil {
		r.failures.Add(1)
		return value, err
	}
	r.cache.Set(ctx, key, value, r.ttl)
	return value, nil
}

// Stats returns the lookup counters.
func (r *ReadThrough[K, V]) Stats() Stats {
	return Stats{
		Hits:     r.hits.Load(),
		Misses:   r.misses.Load(),
		Failures: r.failures.Load(),
	}
}
