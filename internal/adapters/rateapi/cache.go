package rateapi

import (
	"sync"
	"time"
)

type cacheEntry struct {
	rates   map[string]float64
	expires time.Time
}

// rateCache keeps the latest rate sheet of each base currency for a fixed TTL.
type rateCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

func newRateCache(ttl time.Duration) *rateCache {
	return &rateCache{ttl: ttl, now: time.Now, entries: map[string]cacheEntry{}}
}

func (c *rateCache) get(base string) (map[string]float64, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[base]
	if !ok || !c.now().Before(e.expires) {
		return nil, false
	}
	return e.rates, true
}

func (c *rateCache) put(base string, rates map[string]float64) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[base] = cacheEntry{rates: rates, expires: c.now().Add(c.ttl)}
}
