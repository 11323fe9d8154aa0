package currency

import (
	"context"
	"sync"
	"time"
)

// Info is the presentation side of an organization's currency. Engine
// amounts stay plain decimals; the symbol only travels with DTOs.
type Info struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

type FetchFunc func(ctx context.Context, orgID int64) (Info, error)

// Cache avoids refetching an organization's currency on every request.
// It is an explicit object owned by whoever wires it, keyed by
// organization so entries never leak across tenants, and its clock is
// injectable so tests can expire entries deterministically.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	fetch   FetchFunc
	entries map[int64]entry
}

type entry struct {
	info      Info
	fetchedAt time.Time
}

func NewCache(ttl time.Duration, fetch FetchFunc) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		fetch:   fetch,
		entries: make(map[int64]entry),
	}
}

// WithClock overrides the cache clock. Tests only.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Get returns the cached currency for the organization, refreshing
// lazily once the entry is older than the TTL.
func (c *Cache) Get(ctx context.Context, orgID int64) (Info, error) {
	c.mu.Lock()
	cached, ok := c.entries[orgID]
	fresh := ok && c.now().Sub(cached.fetchedAt) < c.ttl
	c.mu.Unlock()

	if fresh {
		return cached.info, nil
	}

	info, err := c.fetch(ctx, orgID)
	if err != nil {
		if ok {
			// Serving a stale symbol beats failing a whole estimate.
			return cached.info, nil
		}
		return Info{}, err
	}

	c.mu.Lock()
	c.entries[orgID] = entry{info: info, fetchedAt: c.now()}
	c.mu.Unlock()
	return info, nil
}

// Reset drops all entries.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[int64]entry)
	c.mu.Unlock()
}
