package focus

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user-none/lanegrid/texcache"
)

type fakeBuffer struct {
	uploads int
	last    Quad
}

func (b *fakeBuffer) Upload(q *Quad) {
	b.uploads++
	b.last = *q
}

type fakeAllocator struct {
	buffers []*fakeBuffer
	// failAt is the 1-based allocation that fails; 0 never fails
	failAt int
}

var errAlloc = errors.New("out of buffers")

func (a *fakeAllocator) NewBuffer() (Buffer, error) {
	if a.failAt > 0 && len(a.buffers)+1 == a.failAt {
		return nil, errAlloc
	}
	b := &fakeBuffer{}
	a.buffers = append(a.buffers, b)
	return b, nil
}

type draw struct {
	buf Buffer
	tex texcache.Texture
}

type fakeSurface struct {
	draws []draw
}

func (s *fakeSurface) DrawQuad(buf Buffer, tex texcache.Texture) {
	s.draws = append(s.draws, draw{buf: buf, tex: tex})
}

type fakeTexture struct {
	w, h int
}

func (t *fakeTexture) Replace(img image.Image) error {
	b := img.Bounds()
	t.w, t.h = b.Dx(), b.Dy()
	return nil
}

func (t *fakeTexture) Size() (int, int) {
	return t.w, t.h
}

type fakeDevice struct{}

func (fakeDevice) NewTexture(color.Color) (texcache.Texture, error) {
	return &fakeTexture{w: 1, h: 1}, nil
}

// manualLoader keeps completions until the test finishes them
type manualLoader struct {
	done map[string][]func(texcache.Result)
	keys []string
}

func newManualLoader() *manualLoader {
	return &manualLoader{done: make(map[string][]func(texcache.Result))}
}

func (l *manualLoader) Load(key string, done func(texcache.Result)) {
	l.done[key] = append(l.done[key], done)
	l.keys = append(l.keys, key)
}

func (l *manualLoader) finish(key string, w, h int) {
	for _, done := range l.done[key] {
		done(texcache.Result{Image: image.NewNRGBA(image.Rect(0, 0, w, h))})
	}
}

func newTestCache(t *testing.T) (*texcache.Cache, *manualLoader) {
	t.Helper()
	loader := newManualLoader()
	c, err := texcache.New(fakeDevice{}, loader, nil)
	if err != nil {
		t.Fatalf("texcache.New failed: %v", err)
	}
	return c, loader
}

// buildGrid lays out lanes x tiles the way the demo catalog does
func buildGrid(t *testing.T, lanes, tiles int) *Grid {
	t.Helper()
	p := DefaultParams()
	ls := make([]*Lane, lanes)
	for row := 0; row < lanes; row++ {
		ts := make([]*Tile, tiles)
		for i := 0; i < tiles; i++ {
			r := Rect{
				X: 50 + float64(i)*p.TilePitch,
				Y: 50 + float64(row)*p.LaneHeight,
				W: 300,
				H: 200,
			}
			asset := "poster-a"
			if i%2 == 1 {
				asset = "poster-b"
			}
			ts[i] = NewTile(r, asset, "", true, p)
		}
		ls[row] = NewLane("", ts, p)
	}
	g, err := NewGrid(ls, p)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	return g
}

// settle ticks until every value has snapped to its target
func settle(g *Grid) {
	for i := 0; i < 500; i++ {
		g.Tick(1.0 / 60)
	}
}
