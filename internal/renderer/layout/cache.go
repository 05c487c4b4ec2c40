package layout

import (
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/dshills/typepad/internal/shape"
)

// ResultCache memoizes shaping results by paragraph text with LRU eviction.
// Paragraphs with equal text under equal Params share one result, which is
// treated as immutable. A change of Params empties the cache.
type ResultCache struct {
	mu        sync.Mutex
	entries   map[uint64]*cacheEntry
	params    Params
	maxSize   int
	tick      uint64
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	text       string
	result     shape.Result
	lastAccess uint64
}

// NewResultCache creates a cache holding at most maxSize results
// (0 = unlimited, not recommended).
func NewResultCache(maxSize int) *ResultCache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &ResultCache{
		entries: make(map[uint64]*cacheEntry),
		maxSize: maxSize,
	}
}

// Shape returns the cached result for text or shapes it.
func (c *ResultCache) Shape(text string, p Params) shape.Result {
	hash := hashLine(text)

	c.mu.Lock()
	if p != c.params {
		c.entries = make(map[uint64]*cacheEntry)
		c.params = p
	}
	c.tick++
	if e, ok := c.entries[hash]; ok && e.text == text {
		e.lastAccess = c.tick
		res := e.result
		c.mu.Unlock()
		c.hits.Add(1)
		return res
	}
	c.mu.Unlock()

	c.misses.Add(1)
	res := shapeText(text, p)

	c.mu.Lock()
	defer c.mu.Unlock()
	if p == c.params {
		c.entries[hash] = &cacheEntry{text: text, result: res, lastAccess: c.tick}
		if c.maxSize > 0 && len(c.entries) > c.maxSize {
			c.evict()
		}
	}
	return res
}

// InvalidateAll clears the cache.
func (c *ResultCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]*cacheEntry)
}

// evict removes the least recently used entries until under maxSize.
// Must be called with the lock held.
func (c *ResultCache) evict() {
	toRemove := len(c.entries) - c.maxSize
	for ; toRemove > 0; toRemove-- {
		var oldest uint64
		var oldestAccess uint64
		first := true
		for h, e := range c.entries {
			if first || e.lastAccess < oldestAccess {
				oldest, oldestAccess, first = h, e.lastAccess, false
			}
		}
		delete(c.entries, oldest)
		c.evictions.Add(1)
	}
}

// Size returns the number of cached results.
func (c *ResultCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *ResultCache) Stats() CacheStats {
	size := c.Size()
	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   hitRate,
	}
}

// ResetStats resets the cache statistics counters.
func (c *ResultCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Size      int     // Current number of entries
	MaxSize   int     // Maximum entries allowed
	Hits      uint64  // Number of cache hits
	Misses    uint64  // Number of cache misses
	Evictions uint64  // Number of evicted entries
	HitRate   float64 // Hit rate (0.0 - 1.0)
}

// hashLine computes a hash of line content using FNV-1a.
func hashLine(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
