package lru

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/rr-query/internal/dns/domain"
	"github.com/haukened/rr-query/internal/dns/repos/answercache"
)

// responseCache is an LRU-backed implementation of answercache.ResponseCache.
// It tracks basic metrics: hits, misses, and evictions.
type responseCache struct {
	lru       *lru.Cache[string, domain.CachedResponse]
	capacity  int
	hits      uint64
	misses    uint64
	evictions uint64
}

// disabledCache is a no-op ResponseCache used when size <= 0.
type disabledCache struct{}

// New creates a new ResponseCache with the given capacity. If size <= 0, a
// disabled no-op cache is returned that always misses and tracks no metrics.
func New(size int) (answercache.ResponseCache, error) {
	if size <= 0 {
		return &disabledCache{}, nil
	}

	rc := &responseCache{capacity: size}
	// Use NewWithEvict to observe evictions, including Purge-induced ones.
	cache, err := lru.NewWithEvict(size, func(_ string, _ domain.CachedResponse) {
		atomic.AddUint64(&rc.evictions, 1)
	})
	if err != nil {
		return nil, err
	}
	rc.lru = cache
	return rc, nil
}

// Get looks up a response by key. When found, increments hits; otherwise increments misses.
func (c *responseCache) Get(key string) (domain.CachedResponse, bool) {
	if val, ok := c.lru.Get(key); ok {
		atomic.AddUint64(&c.hits, 1)
		return val, true
	}
	atomic.AddUint64(&c.misses, 1)
	return domain.CachedResponse{}, false
}

// Put stores a response by key.
func (c *responseCache) Put(key string, resp domain.CachedResponse) {
	c.lru.Add(key, resp)
}

// Remove drops key if present.
func (c *responseCache) Remove(key string) { c.lru.Remove(key) }

// Len returns the number of entries in the cache.
func (c *responseCache) Len() int { return c.lru.Len() }

// Purge clears all entries. Evictions are counted via the eviction callback.
func (c *responseCache) Purge() { c.lru.Purge() }

// Stats returns cumulative counters and the current size.
func (c *responseCache) Stats() answercache.CacheStats {
	return answercache.CacheStats{
		Capacity:  c.capacity,
		Size:      c.lru.Len(),
		Hits:      atomic.LoadUint64(&c.hits),
		Misses:    atomic.LoadUint64(&c.misses),
		Evictions: atomic.LoadUint64(&c.evictions),
	}
}

// disabledCache implementation

func (d *disabledCache) Get(string) (domain.CachedResponse, bool) {
	return domain.CachedResponse{}, false
}

func (d *disabledCache) Put(string, domain.CachedResponse) {}

func (d *disabledCache) Remove(string) {}

func (d *disabledCache) Len() int { return 0 }

func (d *disabledCache) Purge() {}

func (d *disabledCache) Stats() answercache.CacheStats { return answercache.CacheStats{} }

var _ answercache.ResponseCache = (*responseCache)(nil)
var _ answercache.ResponseCache = (*disabledCache)(nil)
