package cache

import (
	"context"
	"sync"
	"time"

	"invoice_dashboard/internal/application/revalidate"
)

type entry struct {
	body      []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryRouteCache is the in-process route cache used when Redis is not configured.
type MemoryRouteCache struct {
	mu       sync.RWMutex
	entries  map[string]entry
	versions map[string]uint64
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryRouteCache(ttl time.Duration) *MemoryRouteCache {
	return &MemoryRouteCache{
		entries:  make(map[string]entry),
		versions: make(map[string]uint64),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (c *MemoryRouteCache) Get(_ context.Context, path string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if e.expired(c.now()) {
		c.mu.Lock()
		// a fresh Set may have landed between the two locks
		if cur, ok := c.entries[path]; ok && cur.expired(c.now()) {
			delete(c.entries, path)
		}
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.body, true, nil
}

func (c *MemoryRouteCache) Version(_ context.Context, path string) (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.versions[path], nil
}

func (c *MemoryRouteCache) SetIfUnchanged(_ context.Context, path string, body []byte, version uint64) (bool, error) {
	e := entry{body: append([]byte(nil), body...)}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[path] != version {
		return false, nil
	}
	c.entries[path] = e
	return true, nil
}

func (c *MemoryRouteCache) Invalidate(_ context.Context, path string) error {
	c.mu.Lock()
	delete(c.entries, path)
	c.versions[path]++
	c.mu.Unlock()
	return nil
}

var _ revalidate.RouteCache = (*MemoryRouteCache)(nil)
