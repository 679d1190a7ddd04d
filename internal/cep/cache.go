package cep

import (
	"sync"

	"github.com/huum-shop/storefront-api/internal/geo"
)

// CoordCache remembers resolved coordinates per normalized postal code for
// the lifetime of the process. Entries are never evicted: postal codes are
// low-cardinality per session and the values are tiny.
type CoordCache struct {
	mu    sync.RWMutex
	coord map[string]geo.Coordinate
}

// NewCoordCache constructs an empty cache.
func NewCoordCache() *CoordCache {
	return &CoordCache{coord: make(map[string]geo.Coordinate)}
}

// Get returns the cached coordinate for a code, if present.
func (c *CoordCache) Get(code string) (geo.Coordinate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	coord, ok := c.coord[code]
	return coord, ok
}

// Put stores a coordinate. Concurrent writers for the same code overwrite
// each other with equal values, which is fine.
func (c *CoordCache) Put(code string, coord geo.Coordinate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.coord[code] = coord
}

// Len reports the number of cached codes.
func (c *CoordCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.coord)
}
