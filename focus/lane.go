package focus

// Lane is a horizontally scrolling row of tiles
type Lane struct {
	title  string
	tiles  []*Tile
	params Params

	// -1 when the lane has no tiles
	selected int
	active   bool

	scrollX        float64
	targetScrollX  float64
	verticalOffset float64
}

// NewLane creates an inactive lane with its first tile selected
func NewLane(title string, tiles []*Tile, params Params) *Lane {
	l := &Lane{
		title:    title,
		tiles:    tiles,
		params:   params,
		selected: -1,
	}
	if len(tiles) > 0 {
		l.selected = 0
	}
	return l
}

// HandleInput moves the selection left or right. It does nothing while the
// lane is inactive, for vertical directions, and at either end of the lane.
// It reports whether the selection changed.
func (l *Lane) HandleInput(dir Direction) bool {
	if !l.active || l.selected < 0 {
		return false
	}

	moved := false
	switch dir {
	case DirLeft:
		if l.selected > 0 {
			l.selected--
			moved = true
		}
	case DirRight:
		if l.selected < len(l.tiles)-1 {
			l.selected++
			moved = true
		}
	}

	l.targetScrollX = l.params.TileScrollTarget(l.selected)
	return moved
}

// Tick eases the horizontal scroll and pushes both offsets and the selection
// down to every tile.
func (l *Lane) Tick(dt, verticalOffset float64) {
	l.scrollX = approach(l.scrollX, l.targetScrollX, l.params.ScrollDamping, l.params.ScrollSnap)
	l.verticalOffset = verticalOffset

	for i, t := range l.tiles {
		t.Tick(l.scrollX, verticalOffset, l.active && i == l.selected)
	}
}

// Render draws every tile in order. Tiles without a buffer or resource are
// skipped; a placeholder texture is drawn like any other.
func (l *Lane) Render(s Surface) {
	for _, t := range l.tiles {
		if t.buffer == nil || t.entry == nil {
			continue
		}
		s.DrawQuad(t.buffer, t.entry.Texture())
	}
}

// LoadAssets allocates every tile's buffer and requests its resource
func (l *Lane) LoadAssets(alloc BufferAllocator, res Resources) error {
	for _, t := range l.tiles {
		if err := t.Init(alloc); err != nil {
			return err
		}
		if err := t.RequestResource(res); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lane) setActive(active bool) {
	l.active = active
}

// SelectedIndex returns the selected tile index; ok is false for an empty lane
func (l *Lane) SelectedIndex() (index int, ok bool) {
	return l.selected, l.selected >= 0
}

// Selected returns the selected tile, or nil for an empty lane
func (l *Lane) Selected() *Tile {
	if l.selected < 0 {
		return nil
	}
	return l.tiles[l.selected]
}

// Active reports whether the lane receives horizontal input
func (l *Lane) Active() bool {
	return l.active
}

// ScrollX returns the current horizontal scroll
func (l *Lane) ScrollX() float64 {
	return l.scrollX
}

// TargetScrollX returns the horizontal scroll being eased toward
func (l *Lane) TargetScrollX() float64 {
	return l.targetScrollX
}

// VerticalOffset returns the grid scroll pushed at the last tick
func (l *Lane) VerticalOffset() float64 {
	return l.verticalOffset
}

// Tiles returns the lane's tiles in draw order
func (l *Lane) Tiles() []*Tile {
	return l.tiles
}

// Len returns the number of tiles
func (l *Lane) Len() int {
	return len(l.tiles)
}

// Title returns the lane's display title
func (l *Lane) Title() string {
	return l.title
}
