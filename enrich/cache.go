package enrich

import "sync"

// Cache is the run-scoped per-domain cache shared by the chunk workers.
// The discipline is per-domain single flight: the first worker to see a
// domain inserts a pending entry and performs the lookup, later workers block
// on that entry. This guarantees exactly one WHOIS call per distinct domain
// per run, even when two workers race on a never-seen domain.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	ready chan struct{}
	info  DomainInfo
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// Get returns the cached entry for domain, calling fetch exactly once per
// domain across the cache's lifetime.
func (c *Cache) Get(domain string, fetch func(string) DomainInfo) DomainInfo {
	c.mu.Lock()
	if e, ok := c.entries[domain]; ok {
		c.mu.Unlock()
		<-e.ready
		return e.info
	}
	e := &cacheEntry{ready: make(chan struct{})}
	c.entries[domain] = e
	c.mu.Unlock()

	e.info = fetch(domain)
	close(e.ready)
	return e.info
}

// Len reports how many distinct domains have been looked up.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
