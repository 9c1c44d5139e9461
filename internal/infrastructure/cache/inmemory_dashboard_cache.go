package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopdesk/backend/internal/application/report"
)

const defaultCleanupInterval = 30 * time.Second

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// InMemoryDashboardCache keeps dashboard views in process memory. Values
// are stored JSON encoded so callers never share mutable state with the
// cache.
type InMemoryDashboardCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once

	hits   atomic.Int64
	misses atomic.Int64
}

// NewInMemoryDashboardCache creates the cache and starts its cleanup loop.
// Call Close to stop it.
func NewInMemoryDashboardCache() *InMemoryDashboardCache {
	c := &InMemoryDashboardCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	go c.cleanupLoop(defaultCleanupInterval)
	return c
}

// Get decodes the cached value of key into dest
func (c *InMemoryDashboardCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || entry.expired(c.now()) {
		c.misses.Add(1)
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	c.hits.Add(1)
	return true, nil
}

// Set stores value under key. A non-positive ttl never expires.
func (c *InMemoryDashboardCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard view: %w", err)
	}

	entry := cacheEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

// Invalidate drops every entry
func (c *InMemoryDashboardCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
	return nil
}

// Stats returns the hit and miss counters
func (c *InMemoryDashboardCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of stored entries, expired ones included
func (c *InMemoryDashboardCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup loop. Safe to call more than once.
func (c *InMemoryDashboardCache) Close() error {
	c.stopOnce.Do(func() { close(c.stopCh) })
	return nil
}

func (c *InMemoryDashboardCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *InMemoryDashboardCache) removeExpired() {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
		}
	}
}

var _ report.DashboardCache = (*InMemoryDashboardCache)(nil)
