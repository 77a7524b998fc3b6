package combo

import (
	"strconv"
	"strings"
	"sync"
)

// Cache holds one Indexer per shape for the lifetime of the cache.
// Entries are inserted at most once and never evicted or replaced.
type Cache struct {
	mu       sync.RWMutex
	indexers map[string]*Indexer
}

// DefaultCache is the process-wide combination cache.
var DefaultCache = NewCache()

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{indexers: make(map[string]*Indexer)}
}

// Indexer returns the cached indexer for the shape of counts, creating it with
// skip if absent. When an entry already exists skip is ignored.
func (c *Cache) Indexer(counts []int, skip SkipFunc) *Indexer {
	key := ShapeKey(counts)

	c.mu.RLock()
	x, ok := c.indexers[key]
	c.mu.RUnlock()
	if ok {
		return x
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if x, ok := c.indexers[key]; ok {
		return x
	}
	x = New(counts, skip)
	c.indexers[key] = x
	return x
}

// Len returns the number of cached shapes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.indexers)
}

// ShapeKey renders counts as the cache key, e.g. "9,9,9".
func ShapeKey(counts []int) string {
	parts := make([]string, len(counts))
	for i, n := range counts {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
