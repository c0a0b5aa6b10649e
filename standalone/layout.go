package standalone

import (
	"fmt"

	"github.com/user-none/lanegrid/focus"
	"github.com/user-none/lanegrid/standalone/storage"
)

// paramsFromConfig builds focus tuning parameters from the layout and
// motion config sections.
func paramsFromConfig(cfg *storage.Config) focus.Params {
	return focus.Params{
		LaneHeight:    cfg.Layout.LaneHeight,
		TilePitch:     cfg.Layout.TilePitch,
		VisibleLanes:  cfg.Layout.VisibleLanes,
		VisibleTiles:  cfg.Layout.VisibleTiles,
		ScrollDamping: cfg.Motion.ScrollDamping,
		ScrollSnap:    cfg.Motion.ScrollSnap,
		FocusScale:    cfg.Motion.FocusScale,
		ScaleDamping:  cfg.Motion.ScaleDamping,
		ScaleSnap:     cfg.Motion.ScaleSnap,
		AspectEpsilon: cfg.Motion.AspectEpsilon,
		OffsetEpsilon: cfg.Motion.OffsetEpsilon,
	}
}

// tileRect places tile col of lane row in stage coordinates
func tileRect(l storage.LayoutConfig, row, col int) focus.Rect {
	return focus.Rect{
		X: l.OriginX + float64(col)*l.TilePitch,
		Y: l.OriginY + float64(row)*l.LaneHeight,
		W: l.TileWidth,
		H: l.TileHeight,
	}
}

// buildGrid lays out every catalog lane as a row of tiles. A tile's own
// aspectFit overrides the layout default. Buffers and resources are not
// attached yet; see focus.Grid.LoadAssets.
func buildGrid(catalog *storage.Catalog, cfg *storage.Config) (*focus.Grid, error) {
	params := paramsFromConfig(cfg)

	lanes := make([]*focus.Lane, len(catalog.Lanes))
	for row, cl := range catalog.Lanes {
		tiles := make([]*focus.Tile, len(cl.Tiles))
		for col, ct := range cl.Tiles {
			fit := cfg.Layout.AspectFit
			if ct.AspectFit != nil {
				fit = *ct.AspectFit
			}
			tiles[col] = focus.NewTile(tileRect(cfg.Layout, row, col), ct.Asset, ct.Title, fit, params)
		}
		lanes[row] = focus.NewLane(cl.Title, tiles, params)
	}

	g, err := focus.NewGrid(lanes, params)
	if err != nil {
		return nil, fmt.Errorf("failed to build grid: %w", err)
	}
	return g, nil
}
