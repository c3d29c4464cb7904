package cache

import (
	"sync"
)

// QueryCache stores rendered SQL keyed by statement fingerprint.
type QueryCache interface {
	GetSQL(fingerprint uint32) (string, bool)
	SetSQL(fingerprint uint32, sql string)
	Len() int
}

// memQueryCache never evicts. The key space is bounded by the query shapes an
// application actually builds.
type memQueryCache struct {
	mu   sync.RWMutex
	data map[uint32]string
}

// NewQueryCache returns an unbounded in-memory cache.
func NewQueryCache() QueryCache {
	return &memQueryCache{
		data: make(map[uint32]string, 16),
	}
}

func (c *memQueryCache) GetSQL(f uint32) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.data[f]
	return q, ok
}

func (c *memQueryCache) SetSQL(f uint32, q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[f] = q
}

func (c *memQueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
