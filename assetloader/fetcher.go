package assetloader

import (
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/user-none/lanegrid/texcache"
)

// Defaults used when Options fields are zero
const (
	DefaultWorkers        = 2
	DefaultTimeout        = 10 * time.Second
	DefaultMaxTextureSize = 2048
)

// Options configures a Fetcher
type Options struct {
	Workers        int           // Concurrent loads
	Timeout        time.Duration // Per HTTP request
	MaxTextureSize int           // Longest side after downscaling; negative disables
	CacheDir       string        // Mirror for downloaded bytes; empty disables
	Client         *http.Client  // Overrides the client built from Timeout
}

// Fetcher loads assets on a bounded pool of goroutines. It implements
// texcache.Loader.
type Fetcher struct {
	client   *http.Client
	maxSize  int
	cacheDir string

	sem chan struct{}
	wg  sync.WaitGroup
}

// New creates a Fetcher
func New(opts Options) *Fetcher {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxTextureSize == 0 {
		opts.MaxTextureSize = DefaultMaxTextureSize
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Fetcher{
		client:   client,
		maxSize:  opts.MaxTextureSize,
		cacheDir: opts.CacheDir,
		sem:      make(chan struct{}, opts.Workers),
	}
}

// Load starts loading key in the background and returns immediately.
// done is called exactly once from a worker goroutine.
func (f *Fetcher) Load(key string, done func(texcache.Result)) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()

		f.sem <- struct{}{}
		img, w, h, err := f.LoadImage(key)
		<-f.sem

		done(texcache.Result{Image: img, Width: w, Height: h, Err: err})
	}()
}

// LoadImage resolves, reads and decodes key on the calling goroutine
func (f *Fetcher) LoadImage(key string) (img image.Image, width, height int, err error) {
	data, err := f.Read(key)
	if err != nil {
		return nil, 0, 0, err
	}
	return Decode(data, f.maxSize)
}

// Read returns the encoded bytes for key
func (f *Fetcher) Read(key string) ([]byte, error) {
	src, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	if src.Remote() {
		return fetchRemote(f.client, f.cacheDir, src.URL)
	}
	data, _, err := ReadFile(src.Path, src.Member)
	return data, err
}

// Wait blocks until every started load has reported
func (f *Fetcher) Wait() {
	f.wg.Wait()
}
