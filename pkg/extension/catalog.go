package extension

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Catalog stores plugins by id. It is assembled once at startup and only read
// afterwards, so each build can create a fresh Scope over it.
type Catalog struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin by its ID(). Duplicate ids return an error.
func (c *Catalog) Register(plugin Plugin) error {
	if plugin == nil {
		return fmt.Errorf("extension: plugin is required")
	}
	id := normalizeID(plugin.ID())
	if id == "" {
		return fmt.Errorf("extension: plugin id is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.plugins[id]; exists {
		return fmt.Errorf("extension: plugin %q already registered", id)
	}
	c.plugins[id] = plugin
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (c *Catalog) MustRegister(plugin Plugin) {
	if err := c.Register(plugin); err != nil {
		panic(err)
	}
}

// Get retrieves a plugin by id.
func (c *Catalog) Get(id string) (Plugin, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	plugin, ok := c.plugins[normalizeID(id)]
	return plugin, ok
}

// Has reports whether a plugin is registered.
func (c *Catalog) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// List returns the sorted plugin ids.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.plugins))
	for id := range c.plugins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func normalizeID(id string) string {
	return strings.TrimSpace(id)
}
