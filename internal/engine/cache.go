package engine

// cache.go keeps recently loaded column sets in memory. Row creation hits the
// column list of the same table over and over; the cache turns that into one
// catalog read per TTL window. Schema edits invalidate the affected table.

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type cachedColumns struct {
	columns   []Column
	fetchedAt time.Time
}

type schemaCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[uuid.UUID]cachedColumns
}

func newSchemaCache(ttl time.Duration) *schemaCache {
	return &schemaCache{
		ttl:     ttl,
		entries: make(map[uuid.UUID]cachedColumns),
	}
}

// Get returns the cached column set for a table, or false if absent or stale.
func (c *schemaCache) Get(tableID uuid.UUID) ([]Column, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[tableID]
	if !ok || time.Since(entry.fetchedAt) > c.ttl {
		return nil, false
	}
	return entry.columns, true
}

// Put stores a freshly loaded column set.
func (c *schemaCache) Put(tableID uuid.UUID, columns []Column) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tableID] = cachedColumns{columns: columns, fetchedAt: time.Now()}
}

// Invalidate drops a single table's cached columns.
func (c *schemaCache) Invalidate(tableID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tableID)
}

// Clear removes all cached entries.
// Primarily useful for testing.
func (c *schemaCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uuid.UUID]cachedColumns)
}

// Len returns the number of cached tables.
func (c *schemaCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
