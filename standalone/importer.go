package standalone

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sqweek/dialog"
	"github.com/user-none/lanegrid/assetloader"
)

// importResult is a lane ready to be appended to the catalog
type importResult struct {
	title string
	keys  []string
	err   error
}

// Importer asks for a folder and lists its images off the main thread.
// Results are collected with Poll on the update goroutine.
type Importer struct {
	busy    atomic.Bool
	results chan importResult

	browse func() (string, error)
	list   func(path string) ([]string, error)
}

// NewImporter creates an importer using the native folder picker
func NewImporter() *Importer {
	return &Importer{
		results: make(chan importResult, 1),
		browse: func() (string, error) {
			return dialog.Directory().Title("Select Poster Folder").Browse()
		},
		list: assetloader.ListImages,
	}
}

// Start opens the picker in the background. It returns false if an import is
// already running.
func (im *Importer) Start() bool {
	if !im.busy.CompareAndSwap(false, true) {
		return false
	}
	// Run dialog in goroutine to avoid blocking Ebiten's main thread
	go func() {
		defer im.busy.Store(false)

		path, err := im.browse()
		if errors.Is(err, dialog.ErrCancelled) {
			return
		}
		if err != nil {
			im.results <- importResult{err: fmt.Errorf("failed to open folder picker: %w", err)}
			return
		}
		im.results <- im.scan(path)
	}()
	return true
}

// Import lists path synchronously. Used for paths given on the command line.
func (im *Importer) Import(path string) importResult {
	return im.scan(path)
}

func (im *Importer) scan(path string) importResult {
	keys, err := im.list(path)
	if err != nil {
		return importResult{err: err}
	}
	if len(keys) == 0 {
		return importResult{err: fmt.Errorf("no images found in %s", path)}
	}
	return importResult{title: laneTitle(path), keys: keys}
}

// Poll returns a finished import, if any
func (im *Importer) Poll() (importResult, bool) {
	select {
	case r := <-im.results:
		return r, true
	default:
		return importResult{}, false
	}
}

// laneTitle names a lane after its folder or archive, without extensions
func laneTitle(path string) string {
	name := filepath.Base(filepath.Clean(path))
	for _, ext := range []string{".tar.gz", ".tgz", ".zip", ".7z", ".rar", ".gz"} {
		if strings.HasSuffix(strings.ToLower(name), ext) && len(name) > len(ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}
