package bundle

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/cellkit/internal/cell"
	"github.com/zjrosen/cellkit/internal/log"
)

// TemplateCache holds resolved templates for the life of the process.
// It is safe to share between bundles; keys include the namespace.
type TemplateCache struct {
	cache *gocache.Cache
}

// NewTemplateCache creates a cache whose entries never expire.
func NewTemplateCache() *TemplateCache {
	return &TemplateCache{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

func cacheKey(namespace, identifier string) string {
	return namespace + "/" + identifier
}

// Get returns the cached template for namespace/identifier.
func (c *TemplateCache) Get(namespace, identifier string) (*cell.Template, bool) {
	key := cacheKey(namespace, identifier)

	value, found := c.cache.Get(key)
	if !found {
		return nil, false
	}

	tmpl, ok := value.(*cell.Template)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting template", "key", key)
		return nil, false
	}

	log.Debug(log.CatCache, "cache hit", "key", key)
	return tmpl, true
}

// Set stores tmpl under namespace/identifier.
func (c *TemplateCache) Set(namespace, identifier string, tmpl *cell.Template) {
	c.cache.Set(cacheKey(namespace, identifier), tmpl, gocache.NoExpiration)
}

// GetOrLoad returns the cached template or calls load and caches its result.
// Failed loads are not cached.
func (c *TemplateCache) GetOrLoad(namespace, identifier string, load func() (*cell.Template, error)) (*cell.Template, bool, error) {
	if tmpl, ok := c.Get(namespace, identifier); ok {
		return tmpl, true, nil
	}

	tmpl, err := load()
	if err != nil {
		return nil, false, err
	}

	c.Set(namespace, identifier, tmpl)
	return tmpl, false, nil
}

// Len returns the number of cached templates.
func (c *TemplateCache) Len() int {
	return c.cache.ItemCount()
}

// Flush removes every cached template.
func (c *TemplateCache) Flush() {
	c.cache.Flush()
}
