package sales

import (
	"sync"
	"time"
)

// Cache is the ordered in-memory collection of recently fetched or created
// sales held by one Service instance, most-recent-first. It is distinct
// from the remote store: lookups here never fall back to a remote fetch.
type Cache struct {
	mu    sync.RWMutex
	sales []*Sale
}

// NewCache instantiates an empty sales cache.
func NewCache() *Cache {
	return &Cache{}
}

// Prepend inserts a sale at the front of the cache.
func (c *Cache) Prepend(sale *Sale) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sales = append([]*Sale{sale}, c.sales...)
}

// Replace swaps the cached list wholesale, keeping the given order.
func (c *Cache) Replace(sales []*Sale) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sales = sales
}

// Get returns the cached sale with the given ID, or ok=false when the sale
// is unknown to this cache.
func (c *Cache) Get(id string) (*Sale, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.sales {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// SetStatus updates the cached copy of a sale after a committed transition.
func (c *Cache) SetStatus(id string, status Status, updatedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.sales {
		if s.ID == id {
			s.Status = status
			s.UpdatedAt = updatedAt
			return
		}
	}
}

// All returns the cached sales in order, most recent first.
func (c *Cache) All() []*Sale {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Sale, len(c.sales))
	copy(out, c.sales)
	return out
}

// Len returns the number of cached sales.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sales)
}
