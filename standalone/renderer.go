package standalone

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/lanegrid/focus"
	"github.com/user-none/lanegrid/standalone/storage"
	"github.com/user-none/lanegrid/texcache"
)

var errEmptyTexture = errors.New("empty texture image")

// imageTexture is a texcache.Texture backed by an ebiten image. Replace swaps
// the underlying image; the imageTexture value itself never changes.
type imageTexture struct {
	img *ebiten.Image
}

func (t *imageTexture) Replace(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return errEmptyTexture
	}
	next := ebiten.NewImageFromImage(img)
	if t.img != nil {
		t.img.Deallocate()
	}
	t.img = next
	return nil
}

func (t *imageTexture) Size() (int, int) {
	if t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// imageDevice allocates 1x1 filled ebiten images
type imageDevice struct{}

func (imageDevice) NewTexture(fill color.Color) (texcache.Texture, error) {
	img := ebiten.NewImage(1, 1)
	img.Fill(fill)
	return &imageTexture{img: img}, nil
}

// quadBuffer holds the last uploaded tile geometry
type quadBuffer struct {
	quad     focus.Quad
	uploads  int
	uploaded bool
}

func (b *quadBuffer) Upload(q *focus.Quad) {
	b.quad = *q
	b.uploads++
	b.uploaded = true
}

// quadAllocator hands out quad buffers and counts them
type quadAllocator struct {
	buffers []*quadBuffer
}

func (a *quadAllocator) NewBuffer() (focus.Buffer, error) {
	b := &quadBuffer{}
	a.buffers = append(a.buffers, b)
	return b, nil
}

// Uploads returns the total geometry uploads across all buffers
func (a *quadAllocator) Uploads() int {
	n := 0
	for _, b := range a.buffers {
		n += b.uploads
	}
	return n
}

// quadIndices is the index list for one six-vertex quad
var quadIndices = []uint16{0, 1, 2, 3, 4, 5}

// stageSurface draws tile quads into the stage image with DrawTriangles.
// Vertices are in stage pixels; texture coordinates are normalized in the
// quad and scaled to texels here.
type stageSurface struct {
	dst      *ebiten.Image
	vertices [focus.VerticesPerQuad]ebiten.Vertex
	opts     ebiten.DrawTrianglesOptions
	draws    int
}

func newStageSurface() *stageSurface {
	s := &stageSurface{}
	s.opts.Filter = ebiten.FilterLinear
	return s
}

func (s *stageSurface) DrawQuad(buf focus.Buffer, tex texcache.Texture) {
	qb, ok := buf.(*quadBuffer)
	if !ok || !qb.uploaded {
		return
	}
	it, ok := tex.(*imageTexture)
	if !ok || it.img == nil {
		return
	}

	fillVertices(&s.vertices, &qb.quad, it.img.Bounds().Dx(), it.img.Bounds().Dy())
	s.dst.DrawTriangles(s.vertices[:], quadIndices, it.img, &s.opts)
	s.draws++
}

// fillVertices converts the interleaved quad into ebiten vertices with
// texture coordinates in texels of a texW x texH source.
func fillVertices(dst *[focus.VerticesPerQuad]ebiten.Vertex, q *focus.Quad, texW, texH int) {
	for i := 0; i < focus.VerticesPerQuad; i++ {
		base := i * focus.FloatsPerVertex
		dst[i] = ebiten.Vertex{
			DstX:   q[base],
			DstY:   q[base+1],
			SrcX:   q[base+2] * float32(texW),
			SrcY:   q[base+3] * float32(texH),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}
}

// StageSize returns the logical size of the area the grid is drawn into:
// the visible lanes and tiles plus the origin margin on every side.
func StageSize(l storage.LayoutConfig) (width, height int) {
	w := 2*l.OriginX + float64(l.VisibleTiles-1)*l.TilePitch + l.TileWidth
	h := 2*l.OriginY + float64(l.VisibleLanes)*l.LaneHeight
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// fitScale returns the aspect-preserving scale and centering offsets that
// fit a srcW x srcH image inside dstW x dstH.
func fitScale(srcW, srcH, dstW, dstH int) (scale, offsetX, offsetY float64) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, 0
	}
	nativeW := float64(srcW)
	nativeH := float64(srcH)

	scaleX := float64(dstW) / nativeW
	scaleY := float64(dstH) / nativeH
	scale = scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	offsetX = (float64(dstW) - nativeW*scale) / 2
	offsetY = (float64(dstH) - nativeH*scale) / 2
	return scale, offsetX, offsetY
}

// StageRenderer owns the offscreen stage the grid renders into and scales it
// onto the screen.
type StageRenderer struct {
	width, height int
	stage         *ebiten.Image
	surface       *stageSurface
	drawOpts      ebiten.DrawImageOptions
}

// NewStageRenderer creates a renderer for the given layout
func NewStageRenderer(l storage.LayoutConfig) *StageRenderer {
	w, h := StageSize(l)
	return &StageRenderer{
		width:   w,
		height:  h,
		surface: newStageSurface(),
	}
}

// Size returns the stage size in logical pixels
func (r *StageRenderer) Size() (int, int) {
	return r.width, r.height
}

// Render clears the stage to background and draws the grid into it.
// It returns the stage image.
func (r *StageRenderer) Render(g *focus.Grid, background color.Color) *ebiten.Image {
	if r.stage == nil {
		r.stage = ebiten.NewImage(r.width, r.height)
	}
	r.stage.Fill(background)
	r.surface.dst = r.stage
	r.surface.draws = 0
	if g != nil {
		g.Render(r.surface)
	}
	return r.stage
}

// Draws returns how many quads the last Render drew
func (r *StageRenderer) Draws() int {
	return r.surface.draws
}

// DrawScaled draws the stage onto dst with aspect-ratio-preserving scaling
func (r *StageRenderer) DrawScaled(dst *ebiten.Image) {
	if r.stage == nil {
		return
	}
	scale, offsetX, offsetY := fitScale(r.width, r.height, dst.Bounds().Dx(), dst.Bounds().Dy())

	r.drawOpts = ebiten.DrawImageOptions{}
	r.drawOpts.GeoM.Scale(scale, scale)
	r.drawOpts.GeoM.Translate(offsetX, offsetY)
	r.drawOpts.Filter = ebiten.FilterLinear
	dst.DrawImage(r.stage, &r.drawOpts)
}

// Dispose releases the stage image
func (r *StageRenderer) Dispose() {
	if r.stage != nil {
		r.stage.Deallocate()
		r.stage = nil
	}
}
