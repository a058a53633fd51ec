// Package cache memoizes rendered ledger reads for the HTTP server.
// Entries expire after a TTL and the whole cache is flushed after every
// transaction. Each flush starts a new generation, and a read built in an
// older generation is never stored, so a read never outlives its state.
package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache wraps go-cache.
type Cache struct {
	mu    sync.Mutex // orders Clear against SetIfGeneration
	gen   uint64
	store *gocache.Cache
}

// New creates a cache with the given TTL and cleanup interval.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Generation returns the current generation. Take it before reading the
// state a cached value will be built from.
func (c *Cache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// SetIfGeneration stores value only if no Clear happened since gen was
// taken. It reports whether the value was stored.
func (c *Cache) SetIfGeneration(key string, value any, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return false
	}
	c.store.Set(key, value, gocache.DefaultExpiration)
	return true
}

// Clear removes all items and starts a new generation.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.store.Flush()
}

// ItemCount returns the number of items, including expired ones not yet cleaned up.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}
