package ukleg

import (
	"sync"
	"time"
)

// documentCache is an in-memory TTL cache for fetched document bytes, keyed
// by URL. legislation.gov.uk documents change rarely, so a short TTL mostly
// serves repeated extractions (body, schedules, preamble) within one run.
type documentCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

func newDocumentCache(ttl time.Duration) *documentCache {
	return &documentCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached bytes for url, or false if absent or expired.
func (cache *documentCache) Get(url string) ([]byte, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	entry, found := cache.entries[url]
	if !found {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(cache.entries, url)
		return nil, false
	}
	return entry.data, true
}

// Set stores bytes for url with the cache's TTL.
func (cache *documentCache) Set(url string, data []byte) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.entries[url] = cacheEntry{
		data:      data,
		expiresAt: time.Now().Add(cache.ttl),
	}
}
