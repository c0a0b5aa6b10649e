// Package texcache deduplicates asynchronous image loads. Every distinct key
// maps to exactly one Entry for the lifetime of the Cache, and every caller
// asking for that key shares the same Entry.
//
// Entries start out holding a 1x1 placeholder texture. The real image is
// applied in place when the load completes. Loads may finish on any goroutine,
// but their results are only applied by Pump, which the render loop calls on
// the same goroutine that calls Get.
package texcache

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"
)

// PlaceholderColor is the default 1x1 fill used before an image arrives.
var PlaceholderColor = color.NRGBA{0x00, 0x00, 0xff, 0xff}

// ErrNilDevice is returned by New when no graphics device is supplied
var ErrNilDevice = errors.New("texcache: nil device")

// ErrEmptyImage is reported when a loader completes without an image
var ErrEmptyImage = errors.New("texcache: load returned no image")

// Texture is a graphics-side image whose content can be replaced without
// changing the Texture value itself.
type Texture interface {
	// Replace uploads img as the new texture content.
	Replace(img image.Image) error
	// Size returns the current texel dimensions.
	Size() (width, height int)
}

// Device allocates textures.
type Device interface {
	NewTexture(fill color.Color) (Texture, error)
}

// Result is what a Loader reports for one key.
type Result struct {
	Image image.Image
	// Width and Height are the natural dimensions of the source image. They
	// may differ from Image's bounds when the loader downscaled it. Zero
	// means "use Image's bounds".
	Width  int
	Height int
	Err    error
}

// Loader fetches and decodes the image for a key. Load must not block; done
// is called exactly once, from any goroutine.
type Loader interface {
	Load(key string, done func(Result))
}

type completion struct {
	entry  *Entry
	result Result
}

// Stats is a snapshot of cache occupancy
type Stats struct {
	Entries int
	Pending int
	Loaded  int
	Failed  int
}

// Cache maps asset keys to shared entries. It never evicts and never
// re-fetches: a key is loaded at most once per Cache.
type Cache struct {
	device      Device
	loader      Loader
	placeholder color.Color

	entries map[string]*Entry
	pending int
	loaded  int
	failed  int

	// inbox is written by loader goroutines and drained by Pump
	mu    sync.Mutex
	inbox []completion
}

// New creates a cache backed by the given device and loader. A nil loader is
// allowed; entries then keep their placeholder forever. A nil placeholder
// selects PlaceholderColor.
func New(device Device, loader Loader, placeholder color.Color) (*Cache, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if placeholder == nil {
		placeholder = PlaceholderColor
	}
	return &Cache{
		device:      device,
		loader:      loader,
		placeholder: placeholder,
		entries:     make(map[string]*Entry),
	}, nil
}

// Get returns the entry for key, creating it and starting its load on first
// use. It never waits for the load. The only error is a texture allocation
// failure, in which case nothing is cached and no load is started.
func (c *Cache) Get(key string) (*Entry, error) {
	if e, ok := c.entries[key]; ok {
		return e, nil
	}

	tex, err := c.device.NewTexture(c.placeholder)
	if err != nil {
		return nil, fmt.Errorf("failed to create texture for %q: %w", key, err)
	}

	e := &Entry{key: key, texture: tex}
	c.entries[key] = e

	if c.loader != nil {
		c.pending++
		c.loader.Load(key, func(r Result) {
			c.post(e, r)
		})
	}
	return e, nil
}

// Lookup returns the entry for key without creating it
func (c *Cache) Lookup(key string) (*Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// post queues a finished load. Safe to call from any goroutine.
func (c *Cache) post(e *Entry, r Result) {
	c.mu.Lock()
	c.inbox = append(c.inbox, completion{entry: e, result: r})
	c.mu.Unlock()
}

// Pump applies every load that finished since the last call and returns how
// many were applied. Call it once per frame before ticking the grid.
func (c *Cache) Pump() int {
	c.mu.Lock()
	batch := c.inbox
	c.inbox = nil
	c.mu.Unlock()

	applied := 0
	for _, done := range batch {
		if c.apply(done) {
			applied++
		}
	}
	return applied
}

// apply is the only place an entry changes after creation
func (c *Cache) apply(done completion) bool {
	e := done.entry
	if e.state != StatePlaceholder {
		// A loader reported twice; the first result wins.
		return false
	}
	c.pending--

	r := done.result
	if r.Err == nil && r.Image == nil {
		r.Err = ErrEmptyImage
	}
	if r.Err != nil {
		c.fail(e, r.Err)
		return true
	}

	if err := e.texture.Replace(r.Image); err != nil {
		c.fail(e, fmt.Errorf("failed to upload texture: %w", err))
		return true
	}

	w, h := r.Width, r.Height
	if w <= 0 || h <= 0 {
		b := r.Image.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	e.width = w
	e.height = h
	e.state = StateLoaded
	c.loaded++
	return true
}

func (c *Cache) fail(e *Entry, err error) {
	e.state = StateFailed
	c.failed++
	log.Printf("Failed to load asset %s: %v", e.key, err)
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	return len(c.entries)
}

// Stats returns entry counts by state
func (c *Cache) Stats() Stats {
	return Stats{
		Entries: len(c.entries),
		Pending: c.pending,
		Loaded:  c.loaded,
		Failed:  c.failed,
	}
}
