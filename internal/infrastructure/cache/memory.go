package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pantrymatch/backend/internal/domain"
)

// sweepInterval is how often expired entries are dropped
const sweepInterval = 10 * time.Minute

// entry is one cached value and its deadline
type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// MemoryCache is a thread-safe in-memory byte cache with TTL support.
// Values are copied on the way in and out.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryCache creates a cache and starts its background sweeper.
// Call Close to stop the sweeper.
func NewMemoryCache() *MemoryCache {
	c := newMemoryCache(time.Now)
	go c.sweep(sweepInterval)
	return c
}

func newMemoryCache(now func() time.Time) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		now:     now,
		stop:    make(chan struct{}),
	}
}

// Get returns the bytes stored under key, or domain.ErrCacheMiss
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || e.expired(c.now()) {
		return nil, domain.ErrCacheMiss
	}
	return append([]byte(nil), e.value...), nil
}

// Set stores value under key for ttl
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{
		value:     append([]byte(nil), value...),
		expiresAt: c.now().Add(ttl),
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

// Delete removes key. Missing keys are ignored.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// sweep drops expired entries every interval until Close
func (c *MemoryCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *MemoryCache) removeExpired() {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
		}
	}
}

// Close stops the background sweeper. It is safe to call more than once.
func (c *MemoryCache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}
