// Package cache holds the export response cache: one rendered document
// per key, served until it ages out.
package cache

import (
	"fmt"
	"sync"
	"time"
)

// Export caches rendered export documents with a fixed maximum age. Safe
// for concurrent use. The clock is injected so expiry is testable.
type Export struct {
	maxAge time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

type entry struct {
	content   string
	expiresAt time.Time
}

// NewExport creates an export cache. A nil clock uses the wall clock.
func NewExport(maxAge time.Duration, now func() time.Time) *Export {
	if now == nil {
		now = time.Now
	}
	return &Export{maxAge: maxAge, now: now, entries: make(map[string]entry)}
}

// Get returns the cached content for key. An entry past its expiry is
// evicted and reported as a miss.
func (c *Export) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return e.content, true
}

// Set stores content for key, valid for the cache's maximum age.
func (c *Export) Set(key, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{content: content, expiresAt: c.now().Add(c.maxAge)}
}

// HitHeaders are the response headers for a cache hit.
func (c *Export) HitHeaders() map[string]string {
	return map[string]string{
		"Cache-Control": fmt.Sprintf("max-age=%d", int(c.maxAge.Seconds())),
		"X-Cache":       "HIT",
	}
}

// MissHeaders are the response headers for a freshly rendered document.
func (c *Export) MissHeaders() map[string]string {
	return map[string]string{
		"Cache-Control": fmt.Sprintf("max-age=%d", int(c.maxAge.Seconds())),
		"X-Cache":       "MISS",
	}
}
