package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// cacheEntry holds a cached value with its timestamp.
type cacheEntry struct {
	value     string
	timestamp time.Time
}

// InMemoryCache is a thread-safe in-memory cache with optional TTL.
// With no TTL it grows without bound for the life of the process.
type InMemoryCache struct {
	cache  map[string]cacheEntry
	mu     sync.RWMutex
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

// Stats holds cache counters.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// NewInMemoryCache creates a new in-memory cache with the specified TTL.
// If ttlSeconds is 0 or negative, entries never expire.
func NewInMemoryCache(ttlSeconds int) *InMemoryCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttlSeconds <= 0 {
		ttl = 0 // No expiration
	}
	return &InMemoryCache{
		cache: make(map[string]cacheEntry),
		ttl:   ttl,
	}
}

// Get retrieves a value from the cache.
// Returns the value and true if found and not expired, empty string and false otherwise.
func (c *InMemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		return "", false, nil
	}

	if c.expired(entry) {
		c.evictIfExpired(key)
		c.misses.Add(1)
		return "", false, nil
	}

	c.hits.Add(1)
	return entry.value, true, nil
}

// Set stores a value in the cache.
func (c *InMemoryCache) Set(ctx context.Context, key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = cacheEntry{
		value:     value,
		timestamp: time.Now(),
	}
	return nil
}

func (c *InMemoryCache) expired(entry cacheEntry) bool {
	return c.ttl > 0 && time.Since(entry.timestamp) > c.ttl
}

// evictIfExpired deletes key only if the entry under the write lock is still
// expired; a Set that landed after the read must survive.
func (c *InMemoryCache) evictIfExpired(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.cache[key]; ok && c.expired(entry) {
		delete(c.cache, key)
	}
}

// Len returns the number of entries in the cache (including expired ones).
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Clear removes all entries from the cache.
func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cacheEntry)
}

// Stats returns a snapshot of hit/miss counters and the current size.
func (c *InMemoryCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Entries: len(c.cache),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}
