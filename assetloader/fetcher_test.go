package assetloader

import (
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/user-none/lanegrid/texcache"
)

// collector gathers results reported to Load callbacks
type collector struct {
	mu      sync.Mutex
	results map[string]texcache.Result
}

func newCollector() *collector {
	return &collector{results: make(map[string]texcache.Result)}
}

func (c *collector) done(key string) func(texcache.Result) {
	return func(r texcache.Result) {
		c.mu.Lock()
		c.results[key] = r
		c.mu.Unlock()
	}
}

func posterServer(t *testing.T, body []byte) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path != "/poster.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFetcherHTTP(t *testing.T) {
	srv, _ := posterServer(t, encodeTestPNG(t, 60, 30))
	f := New(Options{})
	c := newCollector()

	f.Load(srv.URL+"/poster.png", c.done("ok"))
	f.Load(srv.URL+"/missing.png", c.done("missing"))
	f.Wait()

	ok := c.results["ok"]
	if ok.Err != nil {
		t.Fatalf("load failed: %v", ok.Err)
	}
	if ok.Width != 60 || ok.Height != 30 {
		t.Errorf("size = %dx%d, want 60x30", ok.Width, ok.Height)
	}
	if c.results["missing"].Err == nil {
		t.Error("404 reported no error")
	}
}

func TestFetcherDiskCache(t *testing.T) {
	body := encodeTestPNG(t, 8, 4)
	srv, hits := posterServer(t, body)
	dir := t.TempDir()
	url := srv.URL + "/poster.png"

	first := New(Options{CacheDir: dir})
	if _, err := first.Read(url); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if _, err := os.Stat(diskCachePath(dir, url)); err != nil {
		t.Fatalf("cache file missing: %v", err)
	}

	// A later session is served from disk
	second := New(Options{CacheDir: dir})
	_, w, h, err := second.LoadImage(url)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if w != 8 || h != 4 {
		t.Errorf("size = %dx%d, want 8x4", w, h)
	}
	if n := atomic.LoadInt32(hits); n != 1 {
		t.Errorf("server hits = %d, want 1", n)
	}
}

func TestWriteCacheFileTempNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "poster.img")

	// Another process mid-write at the old fixed temp name
	other := path + ".tmp"
	if err := os.WriteFile(other, []byte("partial"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := writeCacheFile(path, []byte("first")); err != nil {
		t.Fatalf("writeCacheFile failed: %v", err)
	}
	if err := writeCacheFile(path, []byte("second")); err != nil {
		t.Fatalf("writeCacheFile failed: %v", err)
	}

	if data, _ := os.ReadFile(path); string(data) != "second" {
		t.Errorf("cache file = %q, want second", data)
	}
	if data, _ := os.ReadFile(other); string(data) != "partial" {
		t.Errorf("foreign temp file clobbered: %q", data)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("dir holds %d files, want cache file and foreign temp only", len(entries))
	}
}

func TestFetcherWithoutDiskCache(t *testing.T) {
	srv, hits := posterServer(t, encodeTestPNG(t, 2, 2))
	f := New(Options{})
	url := srv.URL + "/poster.png"
	f.Read(url)
	f.Read(url)
	if n := atomic.LoadInt32(hits); n != 2 {
		t.Errorf("server hits = %d, want 2", n)
	}
}

func TestFetcherLocalFiles(t *testing.T) {
	plain := createTestFile(t, "poster.png", encodeTestPNG(t, 10, 20))
	pack := createTestZipFile(t, archiveFile{"inner/cover.png", encodeTestPNG(t, 3, 9)})

	f := New(Options{MaxTextureSize: 5})
	tests := []struct {
		key          string
		wantW, wantH int
	}{
		{plain, 10, 20},
		{ArchiveKey(pack, "inner/cover.png"), 3, 9},
		{pack, 3, 9},
	}
	for _, tt := range tests {
		img, w, h, err := f.LoadImage(tt.key)
		if err != nil {
			t.Fatalf("LoadImage(%q) failed: %v", tt.key, err)
		}
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("LoadImage(%q) size = %dx%d, want %dx%d", tt.key, w, h, tt.wantW, tt.wantH)
		}
		if b := img.Bounds(); b.Dx() > 5 || b.Dy() > 5 {
			t.Errorf("LoadImage(%q) not downscaled: %v", tt.key, b)
		}
	}
}

func TestFetcherInvalidKey(t *testing.T) {
	f := New(Options{})
	c := newCollector()
	f.Load("", c.done("empty"))
	f.Wait()
	if c.results["empty"].Err == nil {
		t.Error("empty key reported no error")
	}
}

func TestFetcherBoundsWorkers(t *testing.T) {
	var active, peak int32
	release := make(chan struct{})
	body := encodeTestPNG(t, 1, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		<-release
		atomic.AddInt32(&active, -1)
		w.Write(body)
	}))
	defer srv.Close()

	f := New(Options{Workers: 2})
	c := newCollector()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		f.Load(srv.URL+"/"+name, c.done(name))
	}
	close(release)
	f.Wait()

	if p := atomic.LoadInt32(&peak); p > 2 {
		t.Errorf("peak concurrent loads = %d, want <= 2", p)
	}
	if len(c.results) != 5 {
		t.Errorf("results = %d, want 5", len(c.results))
	}
}

// fakeDevice lets a real texcache.Cache run against the fetcher
type fakeTexture struct{ w, h int }

func (t *fakeTexture) Replace(img image.Image) error {
	t.w, t.h = img.Bounds().Dx(), img.Bounds().Dy()
	return nil
}

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }

type fakeDevice struct{}

func (fakeDevice) NewTexture(color.Color) (texcache.Texture, error) {
	return &fakeTexture{w: 1, h: 1}, nil
}

func TestFetcherFeedsCache(t *testing.T) {
	srv, hits := posterServer(t, encodeTestPNG(t, 600, 300))
	f := New(Options{})
	cache, err := texcache.New(fakeDevice{}, f, nil)
	if err != nil {
		t.Fatalf("texcache.New failed: %v", err)
	}

	url := srv.URL + "/poster.png"
	a, _ := cache.Get(url)
	b, _ := cache.Get(url)
	broken, _ := cache.Get(srv.URL + "/gone.png")
	f.Wait()
	cache.Pump()

	if a != b {
		t.Error("same URL gave different entries")
	}
	if !a.Loaded() {
		t.Fatalf("entry state = %v, want loaded", a.State())
	}
	if w, h, _ := a.NaturalSize(); w != 600 || h != 300 {
		t.Errorf("NaturalSize() = %dx%d, want 600x300", w, h)
	}
	if broken.State() != texcache.StateFailed {
		t.Errorf("broken state = %v, want failed", broken.State())
	}
	if n := atomic.LoadInt32(hits); n != 2 {
		t.Errorf("server hits = %d, want 2", n)
	}
}
