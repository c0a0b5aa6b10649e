package focus

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewGridRequiresLanes(t *testing.T) {
	if _, err := NewGrid(nil, DefaultParams()); !errors.Is(err, ErrNoLanes) {
		t.Errorf("NewGrid(nil) error = %v, want ErrNoLanes", err)
	}
}

func TestNewGridActivatesFirstLane(t *testing.T) {
	g := buildGrid(t, 3, 4)
	if g.ActiveLaneIndex() != 0 {
		t.Errorf("ActiveLaneIndex() = %d, want 0", g.ActiveLaneIndex())
	}
	for i, l := range g.Lanes() {
		if l.Active() != (i == 0) {
			t.Errorf("lane %d Active() = %v", i, l.Active())
		}
	}
	if g.Focused() != g.Lanes()[0].Tiles()[0] {
		t.Error("Focused() is not the first tile")
	}
}

func TestGridEndToEnd(t *testing.T) {
	g := buildGrid(t, 20, 10)

	for i := 0; i < 5; i++ {
		if !g.HandleInput(DirDown) {
			t.Fatalf("Down %d did not move", i+1)
		}
	}
	if g.ActiveLaneIndex() != 5 {
		t.Errorf("ActiveLaneIndex() = %d, want 5", g.ActiveLaneIndex())
	}
	if g.TargetScrollY() != -1920 {
		// 5 lanes down with two visible is four pitches
		t.Errorf("TargetScrollY() = %v, want -1920", g.TargetScrollY())
	}

	for i := 0; i < 6; i++ {
		g.HandleInput(DirRight)
	}
	lane := g.ActiveLane()
	if idx, _ := lane.SelectedIndex(); idx != 6 {
		t.Errorf("SelectedIndex() = %d, want 6", idx)
	}
	if lane.TargetScrollX() != -640 {
		t.Errorf("TargetScrollX() = %v, want -640", lane.TargetScrollX())
	}
	if g.Focused() != lane.Tiles()[6] {
		t.Error("Focused() is not tile 6 of lane 5")
	}

	settle(g)
	if g.ScrollY() != g.TargetScrollY() {
		t.Errorf("ScrollY() = %v, want %v", g.ScrollY(), g.TargetScrollY())
	}
	if lane.ScrollX() != -640 {
		t.Errorf("ScrollX() = %v, want -640", lane.ScrollX())
	}
	if got := g.Focused().AnimScale(); got != 1.2 {
		t.Errorf("focused AnimScale() = %v, want 1.2", got)
	}
}

func TestGridEndToEndReferenceHeight(t *testing.T) {
	// 480 per lane with a three-lane window puts lane 5 at -1440
	p := DefaultParams()
	p.VisibleLanes = 3
	g := buildGrid(t, 20, 10)
	g.params = p

	for i := 0; i < 5; i++ {
		g.HandleInput(DirDown)
	}
	if g.TargetScrollY() != -1440 {
		t.Errorf("TargetScrollY() = %v, want -1440", g.TargetScrollY())
	}
}

func TestGridEdges(t *testing.T) {
	g := buildGrid(t, 2, 2)

	if g.HandleInput(DirUp) {
		t.Error("moved up past the first lane")
	}
	g.HandleInput(DirDown)
	if g.HandleInput(DirDown) {
		t.Error("moved down past the last lane")
	}
	if g.ActiveLaneIndex() != 1 {
		t.Errorf("ActiveLaneIndex() = %d, want 1", g.ActiveLaneIndex())
	}
	if !g.Lanes()[1].Active() || g.Lanes()[0].Active() {
		t.Error("active flags out of step with ActiveLaneIndex")
	}
}

func TestGridHorizontalGoesToActiveLane(t *testing.T) {
	g := buildGrid(t, 3, 5)
	g.HandleInput(DirDown)
	g.HandleInput(DirRight)
	g.HandleInput(DirRight)

	for i, l := range g.Lanes() {
		idx, _ := l.SelectedIndex()
		want := 0
		if i == 1 {
			want = 2
		}
		if idx != want {
			t.Errorf("lane %d SelectedIndex() = %d, want %d", i, idx, want)
		}
	}

	// Each lane keeps its own selection
	g.HandleInput(DirUp)
	if idx, _ := g.ActiveLane().SelectedIndex(); idx != 0 {
		t.Errorf("lane 0 SelectedIndex() = %d, want 0", idx)
	}
}

func TestGridTickPushesScroll(t *testing.T) {
	g := buildGrid(t, 5, 3)
	g.HandleInput(DirDown)
	g.HandleInput(DirDown)
	g.HandleInput(DirDown)

	g.Tick(1.0 / 60)
	if g.ScrollY() == 0 {
		t.Fatal("ScrollY() did not move")
	}
	for i, l := range g.Lanes() {
		if l.VerticalOffset() != g.ScrollY() {
			t.Errorf("lane %d VerticalOffset() = %v, want %v", i, l.VerticalOffset(), g.ScrollY())
		}
		for j, tile := range l.Tiles() {
			if _, y := tile.Offset(); y != g.ScrollY() {
				t.Errorf("lane %d tile %d offset y = %v, want %v", i, j, y, g.ScrollY())
			}
		}
	}
}

func TestGridScrollMonotone(t *testing.T) {
	g := buildGrid(t, 20, 1)
	for i := 0; i < 10; i++ {
		g.HandleInput(DirDown)
	}
	target := g.TargetScrollY()

	prev := g.ScrollY()
	for i := 0; i < 500; i++ {
		g.Tick(1.0 / 60)
		y := g.ScrollY()
		if y > prev || y < target {
			t.Fatalf("tick %d: ScrollY %v after %v, want monotone toward %v", i, y, prev, target)
		}
		prev = y
	}
	if prev != target {
		t.Errorf("ScrollY() = %v, want exactly %v", prev, target)
	}
}

func TestGridWithEmptyLane(t *testing.T) {
	p := DefaultParams()
	full := newTestLane(3)
	empty := NewLane("Empty", nil, p)
	g, err := NewGrid([]*Lane{full, empty}, p)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	g.HandleInput(DirDown)
	if g.Focused() != nil {
		t.Error("Focused() non-nil on an empty lane")
	}
	if g.HandleInput(DirRight) {
		t.Error("moved right in an empty lane")
	}
	g.Tick(1.0 / 60)
	for i, tile := range full.Tiles() {
		if tile.Selected() {
			t.Errorf("tile %d of the inactive lane is selected", i)
		}
	}
}

func TestGridRandomInputInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := buildGrid(t, 7, 9)
	dirs := []Direction{DirUp, DirDown, DirLeft, DirRight}

	for step := 0; step < 2000; step++ {
		dir := dirs[rng.Intn(len(dirs))]
		g.HandleInput(dir)
		g.Tick(1.0 / 60)

		active := g.ActiveLaneIndex()
		if active < 0 || active >= len(g.Lanes()) {
			t.Fatalf("step %d: ActiveLaneIndex() = %d out of range", step, active)
		}
		if g.TargetScrollY() != g.Params().LaneScrollTarget(active) {
			t.Fatalf("step %d: TargetScrollY() = %v, want %v", step, g.TargetScrollY(), g.Params().LaneScrollTarget(active))
		}

		activeLanes := 0
		for i, l := range g.Lanes() {
			idx, ok := l.SelectedIndex()
			if !ok || idx < 0 || idx >= l.Len() {
				t.Fatalf("step %d: lane %d SelectedIndex() = %d out of range", step, i, idx)
			}
			if l.TargetScrollX() != g.Params().TileScrollTarget(idx) {
				t.Fatalf("step %d: lane %d TargetScrollX() = %v, want %v", step, i, l.TargetScrollX(), g.Params().TileScrollTarget(idx))
			}
			if !l.Active() {
				continue
			}
			activeLanes++
			if i != active {
				t.Fatalf("step %d: lane %d active, want %d", step, i, active)
			}
			selected := 0
			for j, tile := range l.Tiles() {
				if tile.Selected() {
					selected++
					if j != idx {
						t.Fatalf("step %d: tile %d selected, want %d", step, j, idx)
					}
				}
			}
			if selected != 1 {
				t.Fatalf("step %d: %d tiles selected in the active lane", step, selected)
			}
		}
		if activeLanes != 1 {
			t.Fatalf("step %d: %d active lanes", step, activeLanes)
		}
	}
}

func TestGridLoadAssetsSharesEntries(t *testing.T) {
	cache, loader := newTestCache(t)
	g := buildGrid(t, 20, 10)
	alloc := &fakeAllocator{}

	if err := g.LoadAssets(alloc, cache); err != nil {
		t.Fatalf("LoadAssets failed: %v", err)
	}
	if len(alloc.buffers) != 200 {
		t.Errorf("buffers = %d, want 200", len(alloc.buffers))
	}
	if len(loader.keys) != 2 {
		t.Errorf("loads started = %d, want 2", len(loader.keys))
	}
	if cache.Len() != 2 {
		t.Errorf("cache Len() = %d, want 2", cache.Len())
	}

	loader.finish("poster-a", 600, 300)
	loader.finish("poster-b", 300, 600)
	cache.Pump()
	g.Tick(1.0 / 60)

	lane := g.Lanes()[3]
	if h := lane.Tiles()[0].Rect().H; h != 150 {
		t.Errorf("poster-a height = %v, want 150", h)
	}
	if h := lane.Tiles()[1].Rect().H; h != 600 {
		t.Errorf("poster-b height = %v, want 600", h)
	}

	s := &fakeSurface{}
	g.Render(s)
	if len(s.draws) != 200 {
		t.Errorf("draws = %d, want 200", len(s.draws))
	}
}

func TestGridLoadAssetsFailure(t *testing.T) {
	cache, _ := newTestCache(t)
	g := buildGrid(t, 2, 3)
	err := g.LoadAssets(&fakeAllocator{failAt: 5}, cache)
	if !errors.Is(err, errAlloc) {
		t.Errorf("LoadAssets() error = %v, want errAlloc", err)
	}
}
