package storage

import (
	"fmt"
	"strings"
)

// SanitizeCatalog trims asset keys and removes tiles without one.
// This runs on load so blank tiles never reach the grid.
func SanitizeCatalog(c *Catalog) {
	for i := range c.Lanes {
		lane := &c.Lanes[i]
		kept := lane.Tiles[:0]
		for _, tile := range lane.Tiles {
			tile.Asset = strings.TrimSpace(tile.Asset)
			if tile.Asset == "" {
				continue
			}
			kept = append(kept, tile)
		}
		lane.Tiles = kept
	}
}

// ValidateCatalog checks catalog-level fields and returns human-readable
// error descriptions. An empty slice means the catalog is valid.
func ValidateCatalog(c *Catalog) []string {
	var errors []string

	if c.Version != 1 {
		errors = append(errors, fmt.Sprintf("version: %d (valid: 1)", c.Version))
	}
	if len(c.Lanes) == 0 {
		errors = append(errors, "lanes: empty (valid: at least one lane)")
	}

	return errors
}

// CorrectCatalog resets invalid catalog-level fields. A catalog without
// lanes gets the demo lanes.
func CorrectCatalog(c *Catalog) *Catalog {
	if c.Version != 1 {
		c.Version = 1
	}
	if len(c.Lanes) == 0 {
		c.Lanes = DefaultCatalog().Lanes
	}
	return c
}
