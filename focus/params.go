// Package focus implements a remote-control style focus grid: a vertical
// stack of lanes, each a horizontal row of tiles, with exactly one focused
// lane and one focused tile at a time.
//
// Input moves the focus, which sets new scroll targets. Each Tick eases the
// scroll values toward their targets and pushes them down the hierarchy,
// parent before child: Grid, then each Lane, then each Tile. Tiles animate
// their focus zoom and re-upload geometry only when something visible moved.
package focus

import "math"

// Params are the tuning constants for layout and motion.
type Params struct {
	LaneHeight   float64 // Vertical pitch between lanes
	TilePitch    float64 // Horizontal pitch between tiles
	VisibleLanes int     // Lanes shown before the grid starts scrolling
	VisibleTiles int     // Tiles shown before a lane starts scrolling

	ScrollDamping float64 // Fraction of the remaining scroll distance covered per tick
	ScrollSnap    float64 // Scroll snaps to target below this distance

	FocusScale    float64 // Zoom of the focused tile
	ScaleDamping  float64 // Fraction of the remaining zoom covered per tick
	ScaleSnap     float64 // Zoom snaps to target below this distance
	AspectEpsilon float64 // Minimum height change for aspect-fit to apply
	OffsetEpsilon float64 // Minimum offset change that forces a geometry upload
}

// DefaultParams returns the reference deployment's values.
func DefaultParams() Params {
	return Params{
		LaneHeight:    480,
		TilePitch:     320,
		VisibleLanes:  2,
		VisibleTiles:  5,
		ScrollDamping: 0.1,
		ScrollSnap:    0.5,
		FocusScale:    1.2,
		ScaleDamping:  0.15,
		ScaleSnap:     0.001,
		AspectEpsilon: 0.01,
		OffsetEpsilon: 0.1,
	}
}

// LaneScrollTarget returns the grid's vertical scroll target when the lane at
// index is active. The first VisibleLanes lanes need no scroll.
func (p Params) LaneScrollTarget(index int) float64 {
	return windowScroll(index, p.VisibleLanes, p.LaneHeight)
}

// TileScrollTarget returns a lane's horizontal scroll target when the tile at
// index is selected. The first VisibleTiles tiles need no scroll.
func (p Params) TileScrollTarget(index int) float64 {
	return windowScroll(index, p.VisibleTiles, p.TilePitch)
}

func windowScroll(index, window int, pitch float64) float64 {
	last := window - 1
	if index > last {
		return -float64(index-last) * pitch
	}
	return 0
}

// approach moves current toward target by damping of the remaining distance,
// snapping to target once the distance is within snap. With damping in (0, 1]
// the value never overshoots.
func approach(current, target, damping, snap float64) float64 {
	diff := target - current
	if math.Abs(diff) > snap {
		return current + diff*damping
	}
	return target
}
