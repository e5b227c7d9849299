package cellar

import (
	"sync"
	"time"
)

// cacheEntry holds a cached payload and its expiration time.
type cacheEntry struct {
	payload   Payload
	expiresAt time.Time
}

// ContentCache is a thread-safe, in-memory TTL cache for fetched payloads,
// keyed by Cellar id. Entries are lazily expired on access.
type ContentCache struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	defaultTTL time.Duration
}

// NewContentCache creates a new cache with the given default TTL.
func NewContentCache(defaultTTL time.Duration) *ContentCache {
	return &ContentCache{
		entries:    make(map[string]cacheEntry),
		defaultTTL: defaultTTL,
	}
}

// Get retrieves a cached payload by Cellar id.
// Returns the payload and true if found and not expired, or a zero value
// and false otherwise. Expired entries are lazily removed on access.
func (contentCache *ContentCache) Get(id string) (Payload, bool) {
	contentCache.mu.RLock()
	entry, exists := contentCache.entries[id]
	contentCache.mu.RUnlock()

	if !exists {
		return Payload{}, false
	}

	if time.Now().After(entry.expiresAt) {
		contentCache.mu.Lock()
		// Re-check in case another goroutine already removed or replaced it.
		if current, stillExists := contentCache.entries[id]; stillExists && time.Now().After(current.expiresAt) {
			delete(contentCache.entries, id)
		}
		contentCache.mu.Unlock()
		return Payload{}, false
	}

	return entry.payload, true
}

// Set stores a payload in the cache with the default TTL.
func (contentCache *ContentCache) Set(id string, payload Payload) {
	contentCache.mu.Lock()
	contentCache.entries[id] = cacheEntry{
		payload:   payload,
		expiresAt: time.Now().Add(contentCache.defaultTTL),
	}
	contentCache.mu.Unlock()
}

// Invalidate removes a specific entry from the cache.
func (contentCache *ContentCache) Invalidate(id string) {
	contentCache.mu.Lock()
	delete(contentCache.entries, id)
	contentCache.mu.Unlock()
}

// Len returns the number of entries currently in the cache (including
// potentially expired ones).
func (contentCache *ContentCache) Len() int {
	contentCache.mu.RLock()
	count := len(contentCache.entries)
	contentCache.mu.RUnlock()
	return count
}
