package standalone

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/user-none/lanegrid/standalone/shader"
	"github.com/user-none/lanegrid/standalone/storage"
)

// newTestApp returns an app with its data directory in a temp dir. No
// graphics resources are created.
func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("APPDATA", dir)
	storage.Init("lanegrid-test")
	if err := storage.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	bindings := BuildBindings(storage.InputConfig{})
	return &App{
		state:         StateBrowsing,
		config:        storage.DefaultConfig(),
		notification:  NewNotification(),
		importer:      NewImporter(),
		inputManager:  NewInputManager(bindings),
		hud:           NewHUD(bindings),
		shaderManager: shader.NewManager(),
		rumbler:       NewRumbler(0),
		search:        NewLaneSearch(nil),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadConfigCorrupted(t *testing.T) {
	a := newTestApp(t)
	path, _ := storage.GetConfigPath()
	writeFile(t, path, "{not json")

	if a.loadConfig() {
		t.Fatal("loadConfig should fail on invalid JSON")
	}
	if a.state != StateError {
		t.Errorf("state = %v, want Error", a.state)
	}
	if a.errorFile != "config.json" || a.errorPath != path {
		t.Errorf("error file = %q %q", a.errorFile, a.errorPath)
	}
	if !a.configLoadFailed {
		t.Error("configLoadFailed should be set")
	}

	// The broken file must survive exit
	a.lastWindowedWidth, a.lastWindowedHeight = 800, 600
	a.saveWindowState()
	data, _ := os.ReadFile(path)
	if string(data) != "{not json" {
		t.Errorf("config was overwritten: %s", data)
	}
}

func TestLoadConfigCorrectsInvalidValues(t *testing.T) {
	a := newTestApp(t)
	path, _ := storage.GetConfigPath()
	writeFile(t, path, `{"version": 1, "theme": "Nope", "loader": {"workers": 99}}`)

	if !a.loadConfig() {
		t.Fatal("loadConfig failed")
	}
	if a.config.Theme != "Default" {
		t.Errorf("theme = %q, want Default", a.config.Theme)
	}
	if a.config.Loader.Workers != storage.DefaultConfig().Loader.Workers {
		t.Errorf("workers = %d, want default", a.config.Loader.Workers)
	}

	saved, err := storage.LoadConfig()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if saved.Theme != "Default" {
		t.Errorf("corrected config not saved, theme = %q", saved.Theme)
	}
}

func TestLoadCatalogCreatesDemo(t *testing.T) {
	a := newTestApp(t)
	if !a.loadCatalog() {
		t.Fatal("loadCatalog failed")
	}
	if got := len(a.catalog.Lanes); got != len(storage.DefaultCatalog().Lanes) {
		t.Errorf("lanes = %d, want demo catalog", got)
	}
	if _, err := os.Stat(a.catalogPath); err != nil {
		t.Errorf("catalog file not created: %v", err)
	}
}

func TestLoadCatalogCorrupted(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "broken.json")
	writeFile(t, path, "[")
	a.opts.CatalogPath = path

	if a.loadCatalog() {
		t.Fatal("loadCatalog should fail on invalid JSON")
	}
	if a.state != StateError || a.errorFile != "catalog.json" || a.errorPath != path {
		t.Errorf("state = %v file = %q path = %q", a.state, a.errorFile, a.errorPath)
	}
}

func TestLoadCatalogImports(t *testing.T) {
	a := newTestApp(t)
	a.importer.list = func(path string) ([]string, error) {
		switch path {
		case "/posters/Sci-Fi.zip":
			return []string{"/posters/Sci-Fi.zip#a.png", "/posters/Sci-Fi.zip#b.png"}, nil
		default:
			return nil, errors.New("missing")
		}
	}
	a.opts.Import = []string{"/posters/Sci-Fi.zip", "/nowhere"}

	if !a.loadCatalog() {
		t.Fatal("loadCatalog failed")
	}
	last := a.catalog.Lanes[len(a.catalog.Lanes)-1]
	if last.Title != "Sci-Fi" || len(last.Tiles) != 2 {
		t.Errorf("imported lane = %+v", last)
	}
	if a.opts.Import != nil {
		t.Error("imports should be consumed")
	}

	saved, err := storage.LoadCatalog(a.catalogPath)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(saved.Lanes) != len(a.catalog.Lanes) {
		t.Errorf("saved lanes = %d, want %d", len(saved.Lanes), len(a.catalog.Lanes))
	}
}

func TestApplyImportError(t *testing.T) {
	a := newTestApp(t)
	if !a.loadCatalog() {
		t.Fatal("loadCatalog failed")
	}
	lanes := len(a.catalog.Lanes)

	if err := a.applyImport(importResult{err: errors.New("no images found in /tmp/x")}); err != nil {
		t.Fatalf("applyImport: %v", err)
	}
	if len(a.catalog.Lanes) != lanes {
		t.Error("failed import should not add a lane")
	}
	if !a.notification.IsVisible() {
		t.Error("failed import should notify")
	}
}

func TestSaveWindowState(t *testing.T) {
	a := newTestApp(t)

	// Never windowed: nothing to save
	a.saveWindowState()
	if path, _ := storage.GetConfigPath(); fileExists(path) {
		t.Fatal("config should not be written without a windowed size")
	}

	a.lastWindowedWidth, a.lastWindowedHeight = 1000, 700
	a.windowX, a.windowY = 20, 30
	a.lastFullscreenState = true
	a.saveWindowState()

	saved, err := storage.LoadConfig()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	w := saved.Window
	if w.Width != 1000 || w.Height != 700 || !w.Fullscreen {
		t.Errorf("window = %+v", w)
	}
	if w.X == nil || *w.X != 20 || w.Y == nil || *w.Y != 30 {
		t.Errorf("position = %v %v", w.X, w.Y)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
