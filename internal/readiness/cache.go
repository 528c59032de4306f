package readiness

import (
	"sync"
	"time"
)

// cacheKey is derived from the request parameters that change the outcome.
type cacheKey struct {
	userID    string
	tokenType string
}

type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// resultCache is a small TTL cache for readiness responses. Evaluations are
// deterministic within a TTL window, so repeated polling from UIs does not
// re-run the category fan-out.
type resultCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
}

func newResultCache(ttl time.Duration) *resultCache {
	return &resultCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
	}
}

func (c *resultCache) get(key cacheKey, now time.Time) (*Response, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || now.After(entry.expiresAt) {
		return nil, false
	}
	return entry.response, true
}

func (c *resultCache) put(key cacheKey, response *Response, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Opportunistic sweep keeps the map bounded without a background worker.
	for k, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{response: response, expiresAt: now.Add(c.ttl)}
}
