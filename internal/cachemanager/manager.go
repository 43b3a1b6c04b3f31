// Package cachemanager provides small generic caches over go-cache.
package cachemanager

import (
	"context"
	"time"
)

// Cache is a keyed cache with per-entry TTLs.
type Cache[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K)
	Flush(ctx context.Context)
	Len() int
}

// Stats counts read-through lookups.
type Stats struct {
	Hits     uint64
	Misses   uint64 // lookups that called the loader
	Failures uint64 // loader errors; never cached
}
