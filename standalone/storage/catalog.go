package storage

import (
	"errors"
	"fmt"
	"os"
)

// LoadCatalog loads the catalog from path.
// If the file doesn't exist, it returns the demo catalog.
// If the file is corrupted, it returns an error.
func LoadCatalog(path string) (*Catalog, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultCatalog(), nil
	}

	catalog := &Catalog{}
	if err := ReadJSON(path, catalog); err != nil {
		return nil, err
	}

	catalog = migrateCatalog(catalog)

	// Silently drop tiles that can never load
	SanitizeCatalog(catalog)

	return catalog, nil
}

// SaveCatalog saves the catalog to path atomically
func SaveCatalog(path string, catalog *Catalog) error {
	return AtomicWriteJSON(path, catalog)
}

// CreateCatalogIfMissing writes the demo catalog to path if it doesn't exist
func CreateCatalogIfMissing(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return SaveCatalog(path, DefaultCatalog())
	}
	return nil
}

func migrateCatalog(catalog *Catalog) *Catalog {
	if catalog.Version == 0 {
		catalog.Version = 1
	}
	return catalog
}

// AddLane appends a lane built from asset keys and returns its index.
// An empty title becomes "Lane N".
func (c *Catalog) AddLane(title string, assets []string) int {
	if title == "" {
		title = fmt.Sprintf("Lane %d", len(c.Lanes)+1)
	}
	tiles := make([]CatalogTile, len(assets))
	for i, a := range assets {
		tiles[i] = CatalogTile{Asset: a}
	}
	c.Lanes = append(c.Lanes, CatalogLane{Title: title, Tiles: tiles})
	return len(c.Lanes) - 1
}

// TileCount returns the number of tiles across all lanes
func (c *Catalog) TileCount() int {
	n := 0
	for _, lane := range c.Lanes {
		n += len(lane.Tiles)
	}
	return n
}
