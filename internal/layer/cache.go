package layer

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Cache provides thread-safe caching of parsed datasets to avoid redundant
// disk reads and parsing.
//
// Datasets are keyed by their source path. Once a file is parsed,
// subsequent Load calls for the same path return the cached dataset. The
// cache stores the exact path string it was given: different spellings of
// the same file are separate entries.
//
// Cached datasets remain in memory until removed with Evict or Clear. For
// long-running processes serving many layers, evict layers whose source
// files change or are retired.
type Cache struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
}

// NewCache creates an empty dataset cache, ready for concurrent use.
func NewCache() *Cache {
	return &Cache{
		datasets: make(map[string]*Dataset),
	}
}

// Load retrieves a dataset from the cache, parsing the file on first use.
//
// The format is chosen by file extension: .json and .geojson parse as
// GeoJSON, .wkt and .txt as Well-Known Text.
func (c *Cache) Load(path string) (*Dataset, error) {
	c.mu.RLock()
	if d, ok := c.datasets[path]; ok {
		c.mu.RUnlock()
		return d, nil
	}
	c.mu.RUnlock()

	d, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.datasets[path] = d
	c.mu.Unlock()
	return d, nil
}

// Evict removes a dataset from the cache. Removing an uncached path is a
// no-op.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.datasets, path)
	c.mu.Unlock()
}

// Clear removes all cached datasets.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.datasets = make(map[string]*Dataset)
	c.mu.Unlock()
}

// Len returns the number of cached datasets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.datasets)
}

func loadFile(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".geojson":
		return LoadGeoJSON(path)
	case ".wkt", ".txt":
		return LoadWKT(path)
	default:
		return nil, fmt.Errorf("layer %s: unsupported file extension", path)
	}
}
