package focus

import "errors"

// ErrNoLanes is returned by NewGrid when given no lanes
var ErrNoLanes = errors.New("focus: grid needs at least one lane")

// Grid is a vertical stack of lanes with exactly one active lane
type Grid struct {
	lanes  []*Lane
	params Params

	active        int
	scrollY       float64
	targetScrollY float64
}

// NewGrid creates a grid with the first lane active. The lane set is fixed
// for the grid's lifetime.
func NewGrid(lanes []*Lane, params Params) (*Grid, error) {
	if len(lanes) == 0 {
		return nil, ErrNoLanes
	}
	for _, l := range lanes {
		l.setActive(false)
	}
	lanes[0].setActive(true)
	return &Grid{
		lanes:  lanes,
		params: params,
	}, nil
}

// HandleInput applies one navigation command. Up and Down change the active
// lane; Left and Right go to the active lane. Moves past an edge do nothing.
// It reports whether the focus moved.
func (g *Grid) HandleInput(dir Direction) bool {
	moved := false
	switch dir {
	case DirUp:
		if g.active > 0 {
			g.activate(g.active - 1)
			moved = true
		}
	case DirDown:
		if g.active < len(g.lanes)-1 {
			g.activate(g.active + 1)
			moved = true
		}
	case DirLeft, DirRight:
		moved = g.lanes[g.active].HandleInput(dir)
	}

	g.targetScrollY = g.params.LaneScrollTarget(g.active)
	return moved
}

func (g *Grid) activate(index int) {
	g.lanes[g.active].setActive(false)
	g.active = index
	g.lanes[g.active].setActive(true)
}

// Tick eases the vertical scroll, then ticks every lane with it. The grid
// always finishes before any lane, and lanes run in order.
func (g *Grid) Tick(dt float64) {
	g.scrollY = approach(g.scrollY, g.targetScrollY, g.params.ScrollDamping, g.params.ScrollSnap)
	for _, l := range g.lanes {
		l.Tick(dt, g.scrollY)
	}
}

// Render draws every lane in order, back to front
func (g *Grid) Render(s Surface) {
	for _, l := range g.lanes {
		l.Render(s)
	}
}

// LoadAssets allocates geometry buffers and requests resources for every
// tile. Any allocation failure aborts, leaving the grid unusable.
func (g *Grid) LoadAssets(alloc BufferAllocator, res Resources) error {
	for _, l := range g.lanes {
		if err := l.LoadAssets(alloc, res); err != nil {
			return err
		}
	}
	return nil
}

// ActiveLaneIndex returns the index of the active lane
func (g *Grid) ActiveLaneIndex() int {
	return g.active
}

// ActiveLane returns the lane receiving horizontal input
func (g *Grid) ActiveLane() *Lane {
	return g.lanes[g.active]
}

// Focused returns the focused tile, or nil when the active lane is empty
func (g *Grid) Focused() *Tile {
	return g.lanes[g.active].Selected()
}

// ScrollY returns the current vertical scroll
func (g *Grid) ScrollY() float64 {
	return g.scrollY
}

// TargetScrollY returns the vertical scroll being eased toward
func (g *Grid) TargetScrollY() float64 {
	return g.targetScrollY
}

// Lanes returns the lanes in draw order
func (g *Grid) Lanes() []*Lane {
	return g.lanes
}

// Params returns the layout and motion constants
func (g *Grid) Params() Params {
	return g.params
}
