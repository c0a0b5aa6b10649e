package focus

import (
	"fmt"
	"math"

	"github.com/user-none/lanegrid/texcache"
)

// Tile is a single focusable poster
type Tile struct {
	rect    Rect
	assetID string
	title   string
	params  Params

	// Height is recomputed from the asset's aspect ratio once it is known
	aspectFit        bool
	aspectFitPending bool

	animScale float64
	selected  bool
	offsetX   float64
	offsetY   float64

	// Values at the last upload, for dirty detection
	prevOffsetX float64
	prevOffsetY float64

	entry  *texcache.Entry
	buffer Buffer
	quad   Quad
}

// NewTile creates a tile at rest (scale 1, no offsets). If aspectFit is set,
// the height is replaced by width * (natural height / natural width) once the
// asset's size is known.
func NewTile(r Rect, assetID, title string, aspectFit bool, params Params) *Tile {
	t := &Tile{
		rect:             r,
		assetID:          assetID,
		title:            title,
		params:           params,
		aspectFit:        aspectFit,
		aspectFitPending: aspectFit,
		animScale:        1.0,
	}
	t.quad = t.geometry()
	return t
}

// Init allocates the tile's geometry buffer and uploads the initial quad
func (t *Tile) Init(alloc BufferAllocator) error {
	buf, err := alloc.NewBuffer()
	if err != nil {
		return fmt.Errorf("failed to create buffer for %q: %w", t.assetID, err)
	}
	t.buffer = buf
	t.quad = t.geometry()
	t.buffer.Upload(&t.quad)
	return nil
}

// RequestResource fetches the shared entry for the tile's asset. The entry
// may still be a placeholder; the tile does not care.
func (t *Tile) RequestResource(res Resources) error {
	e, err := res.Get(t.assetID)
	if err != nil {
		return err
	}
	t.entry = e
	return nil
}

// SetAsset points the tile at a different asset. Aspect-fit is re-armed
// only for tiles created with it. The previous entry stays in the cache;
// the tile just stops using it.
func (t *Tile) SetAsset(assetID string, res Resources) error {
	t.assetID = assetID
	t.aspectFitPending = t.aspectFit
	t.entry = nil
	return t.RequestResource(res)
}

// Tick applies the offsets and selection pushed down by the lane, advances
// the zoom animation and re-uploads geometry if anything visible changed.
// It reports whether the geometry changed.
func (t *Tile) Tick(offsetX, offsetY float64, selected bool) bool {
	t.offsetX = offsetX
	t.offsetY = offsetY
	t.selected = selected

	dirty := false

	if t.aspectFitPending && t.entry != nil {
		if nw, nh, ok := t.entry.NaturalSize(); ok {
			h := t.rect.W * (float64(nh) / float64(nw))
			if math.Abs(t.rect.H-h) > t.params.AspectEpsilon {
				t.rect.H = h
				t.aspectFitPending = false
				dirty = true
			}
		}
	}

	if math.Abs(t.offsetX-t.prevOffsetX) > t.params.OffsetEpsilon {
		t.prevOffsetX = t.offsetX
		dirty = true
	}
	if math.Abs(t.offsetY-t.prevOffsetY) > t.params.OffsetEpsilon {
		t.prevOffsetY = t.offsetY
		dirty = true
	}

	target := 1.0
	if selected {
		target = t.params.FocusScale
	}
	if diff := target - t.animScale; math.Abs(diff) > t.params.ScaleSnap {
		t.animScale += diff * t.params.ScaleDamping
		dirty = true
	} else if t.animScale != target {
		t.animScale = target
		dirty = true
	}

	if !dirty {
		return false
	}
	t.quad = t.geometry()
	if t.buffer != nil {
		t.buffer.Upload(&t.quad)
	}
	return true
}

func (t *Tile) geometry() Quad {
	return buildQuad(t.rect, t.animScale, t.offsetX, t.offsetY)
}

// Quad returns the geometry as last uploaded
func (t *Tile) Quad() Quad {
	return t.quad
}

// Rect returns the tile's unscaled placement
func (t *Tile) Rect() Rect {
	return t.rect
}

// AssetID returns the tile's asset key
func (t *Tile) AssetID() string {
	return t.assetID
}

// Title returns the tile's display title
func (t *Tile) Title() string {
	return t.title
}

// AspectFitPending reports whether the height still waits on asset metadata
func (t *Tile) AspectFitPending() bool {
	return t.aspectFitPending
}

// AnimScale returns the current zoom
func (t *Tile) AnimScale() float64 {
	return t.animScale
}

// Selected reports whether the tile has focus
func (t *Tile) Selected() bool {
	return t.selected
}

// Offset returns the scroll offsets pushed at the last tick
func (t *Tile) Offset() (x, y float64) {
	return t.offsetX, t.offsetY
}

// Entry returns the shared asset entry, or nil before RequestResource
func (t *Tile) Entry() *texcache.Entry {
	return t.entry
}

// Buffer returns the geometry buffer, or nil before Init
func (t *Tile) Buffer() Buffer {
	return t.buffer
}
