package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/pagedeck/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
	// NoExpiration keeps an entry until it is deleted or flushed.
	NoExpiration = gocache.NoExpiration
)

// InMemory implements Cache with go-cache. The name identifies the cache in
// log lines.
type InMemory[K ~string, V any] struct {
	name  string
	cache *gocache.Cache
}

// NewInMemory creates a named cache. Expired entries are removed every
// cleanupInterval.
func NewInMemory[K ~string, V any](name string, defaultExpiration, cleanupInterval time.Duration) *InMemory[K, V] {
	c := &InMemory[K, V]{
		name:  name,
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
	c.cache.OnEvicted(func(key string, _ any) {
		log.Debug(log.CatCache, "Cache entry evicted", "cache", name, "key", key)
	})
	return c
}

// Get retrieves an item by key. A value of the wrong type counts as a miss.
func (c *InMemory[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V

	value, found := c.cache.Get(string(key))
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "Cached value has unexpected type", "cache", c.name, "key", key)
		return zero, false
	}
	return v, true
}

// Set stores value under key for ttl. NoExpiration keeps it until Flush.
func (c *InMemory[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

// Delete removes keys.
func (c *InMemory[K, V]) Delete(_ context.Context, keys ...K) {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
}

// Flush removes every item without firing eviction callbacks.
func (c *InMemory[K, V]) Flush(_ context.Context) {
	n := c.cache.ItemCount()
	c.cache.Flush()
	log.Debug(log.CatCache, "Cache flushed", "cache", c.name, "items", n)
}

// Len returns the number of items, including expired ones not yet cleaned up.
func (c *InMemory[K, V]) Len() int {
	return c.cache.ItemCount()
}
