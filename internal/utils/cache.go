package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"
)

// Cache is the process-wide short-lived cache (trending lists and friends).
var Cache *cache.Cache

// InitCache sets up the global cache: 5 minute default TTL, 10 minute sweep.
func InitCache() {
	Cache = cache.New(5*time.Minute, 10*time.Minute)
}

// CacheGet reads a value from the global cache.
func CacheGet(key string) (interface{}, bool) {
	return Cache.Get(key)
}

// CacheSet stores a value in the global cache.
func CacheSet(key string, value interface{}, duration time.Duration) {
	Cache.Set(key, value, duration)
}

// CacheDelete drops one key.
func CacheDelete(key string) {
	Cache.Delete(key)
}

// CacheItem wraps a value with its expiry.
type CacheItem[T any] struct {
	Value     T
	ExpiredAt time.Time
}

// SearchCache is a size-bounded LRU with per-entry TTL, used for title
// search results.
type SearchCache[T any] struct {
	storage *lru.Cache[string, CacheItem[T]]
	ttl     time.Duration
}

// NewSearchCache builds a cache holding at most size entries valid for ttl.
func NewSearchCache[T any](size int, ttl time.Duration) *SearchCache[T] {
	c, _ := lru.New[string, CacheItem[T]](size)
	return &SearchCache[T]{
		storage: c,
		ttl:     ttl,
	}
}

// Set stores or refreshes an entry.
func (c *SearchCache[T]) Set(key string, value T) {
	item := CacheItem[T]{
		Value:     value,
		ExpiredAt: time.Now().Add(c.ttl),
	}
	c.storage.Add(key, item)
}

// Get returns the entry if present and not expired.
func (c *SearchCache[T]) Get(key string) (T, bool) {
	var zero T
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}

	if time.Now().After(item.ExpiredAt) {
		c.storage.Remove(key)
		return zero, false
	}

	return item.Value, true
}

// Delete drops one key.
func (c *SearchCache[T]) Delete(key string) {
	c.storage.Remove(key)
}

// Clear drops everything.
func (c *SearchCache[T]) Clear() {
	c.storage.Purge()
}

// Len returns the number of live entries.
func (c *SearchCache[T]) Len() int {
	return c.storage.Len()
}
