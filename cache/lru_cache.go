package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUQueryCache is a bounded QueryCache. Evicting an entry only means the
// statement is rendered again on its next use.
type LRUQueryCache struct {
	cache *lru.Cache[uint32, string]
}

// NewLRUQueryCache creates a cache holding at most size statements. onEvict
// may be nil.
func NewLRUQueryCache(size int, onEvict func(fingerprint uint32, sql string)) (*LRUQueryCache, error) {
	c, err := lru.NewWithEvict(size, onEvict)
	if err != nil {
		return nil, fmt.Errorf("lru query cache: %w", err)
	}
	return &LRUQueryCache{cache: c}, nil
}

func (s *LRUQueryCache) GetSQL(f uint32) (string, bool) {
	return s.cache.Get(f)
}

func (s *LRUQueryCache) SetSQL(f uint32, q string) {
	s.cache.Add(f, q)
}

func (s *LRUQueryCache) Len() int {
	return s.cache.Len()
}

// Purge drops every cached statement.
func (s *LRUQueryCache) Purge() {
	s.cache.Purge()
}
