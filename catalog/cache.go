// Package catalog keeps the client-side view of the backend catalog: an
// insertion-ordered item list with an id index, replaced wholesale on every
// refetch, plus a Browser for search/sort/pagination over it.
package catalog

import (
	"github.com/lumenik/install-client/model"
)

type (
	// Cache keeps catalog items alongside an id lookup index.
	// Items are never mutated in place: Replace swaps the whole snapshot.
	Cache struct {
		list     model.GameList
		idMatch  map[string]model.Game
		platform string
	}
)

// NewCache creates an empty catalog cache.
func NewCache() *Cache {
	return &Cache{
		idMatch: make(map[string]model.Game),
	}
}

// Replace swaps the cached snapshot for a freshly fetched one.
func (c *Cache) Replace(platform string, games model.GameList) {
	c.platform = platform
	c.list = make(model.GameList, len(games))
	copy(c.list, games)

	c.idMatch = make(map[string]model.Game, len(games))
	for _, g := range games {
		c.idMatch[g.ID] = g
	}
}

// Get returns the cached item with the given id.
func (c *Cache) Get(id string) (model.Game, bool) {
	g, ok := c.idMatch[id]
	return g, ok
}

// Snapshot returns a copy of the cached list (insertion order preserved).
func (c *Cache) Snapshot() model.GameList {
	snapshot := make(model.GameList, len(c.list))
	copy(snapshot, c.list)

	return snapshot
}

// Platform returns the platform the cache was filled for.
func (c *Cache) Platform() string {
	return c.platform
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	return len(c.list)
}
