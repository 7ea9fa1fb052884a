package imagecache

import (
	"sync"

	"github.com/mmcdole/dex/internal/domain"
)

// Cache is a process-lifetime URL -> image store. All access is serialized
// under one mutex. Entries are never evicted or replaced.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*domain.Image
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*domain.Image)}
}

// Get returns the image stored for rawURL
func (c *Cache) Get(rawURL string) (*domain.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	img, ok := c.entries[rawURL]
	return img, ok
}

// Put stores img under rawURL unless a value is already present.
// Reports whether the value was stored.
func (c *Cache) Put(rawURL string, img *domain.Image) bool {
	if img == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[rawURL]; exists {
		return false
	}
	c.entries[rawURL] = img
	return true
}

// Len returns the number of cached images
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
