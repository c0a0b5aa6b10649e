package focus

import "github.com/user-none/lanegrid/texcache"

// Vertex layout: (position.x, position.y, texcoord.u, texcoord.v) interleaved
const (
	FloatsPerVertex = 4
	VerticesPerQuad = 6
	QuadFloats      = FloatsPerVertex * VerticesPerQuad
	VertexStride    = FloatsPerVertex * 4 // bytes
)

// Quad is one tile's two triangles
type Quad [QuadFloats]float32

// Rect is a tile's unscaled, unscrolled placement
type Rect struct {
	X, Y, W, H float64
}

// Buffer holds a tile's uploaded geometry
type Buffer interface {
	Upload(q *Quad)
}

// BufferAllocator creates geometry buffers
type BufferAllocator interface {
	NewBuffer() (Buffer, error)
}

// Surface draws uploaded tiles. Screen-to-clip transforms and sampling
// belong to the implementation.
type Surface interface {
	DrawQuad(buf Buffer, tex texcache.Texture)
}

// Resources hands out shared asset entries
type Resources interface {
	Get(key string) (*texcache.Entry, error)
}

// buildQuad scales r around its center by scale, translates it by the
// offsets and returns the six vertices. Both triangles share the
// (x, y2)-(x2, y) diagonal. Zero or negative sizes are not rejected and
// produce degenerate quads.
func buildQuad(r Rect, scale, offsetX, offsetY float64) Quad {
	w := r.W * scale
	h := r.H * scale
	cx := r.X + r.W/2 + offsetX
	cy := r.Y + r.H/2 + offsetY

	x := float32(cx - w/2)
	y := float32(cy - h/2)
	x2 := x + float32(w)
	y2 := y + float32(h)

	return Quad{
		x, y, 0, 0,
		x, y2, 0, 1,
		x2, y, 1, 0,
		x2, y, 1, 0,
		x, y2, 0, 1,
		x2, y2, 1, 1,
	}
}
