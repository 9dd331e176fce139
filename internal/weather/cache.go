package weather

import (
	"sync"
	"time"
)

// Cache is a TTL cache for weather answers. The time source is
// injected so expiry is testable without waiting on the wall clock.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	data      *Data
	fetchedAt time.Time
}

func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	return &Cache{
		entries: map[string]cacheEntry{},
		ttl:     ttl,
		now:     now,
	}
}

func (c *Cache) Get(key string) (*Data, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.data, true
}

func (c *Cache) Set(key string, data *Data) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{data: data, fetchedAt: c.now()}
}

func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]cacheEntry{}
}
