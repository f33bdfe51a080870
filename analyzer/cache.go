package analyzer

import (
	"github.com/floatdrop/lru"
)

// Cache memoizes digests by message for repeated analysis passes over the
// same corpus. Not safe for concurrent use.
type Cache struct {
	fn      Func
	entries *lru.LRU[string, string]
	hits    uint64
	misses  uint64
}

func NewCache(fn Func, size int) *Cache {
	return &Cache{
		fn:      fn,
		entries: lru.New[string, string](size),
	}
}

// Sum returns the digest of data, computing it at most once while the
// entry stays resident.
func (c *Cache) Sum(data []byte) string {
	key := string(data)
	if v := c.entries.Get(key); v != nil {
		c.hits++
		return *v
	}
	h := c.fn(data)
	c.entries.Set(key, h)
	c.misses++
	return h
}

// Stats returns cache hits and misses since creation.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}
