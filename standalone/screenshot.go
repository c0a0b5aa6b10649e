package standalone

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/user-none/lanegrid/standalone/storage"
)

// ScreenshotManager handles taking and saving screenshots
type ScreenshotManager struct {
	now func() time.Time
}

// NewScreenshotManager creates a new screenshot manager
func NewScreenshotManager() *ScreenshotManager {
	return &ScreenshotManager{now: time.Now}
}

// TakeScreenshot saves screen to the screenshot directory as <unix>.png and
// returns the file path. Capture is silent.
func (m *ScreenshotManager) TakeScreenshot(screen image.Image) (string, error) {
	dir, err := storage.GetScreenshotDir()
	if err != nil {
		return "", err
	}
	return m.save(screen, dir)
}

func (m *ScreenshotManager) save(img image.Image, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	fullPath := filepath.Join(dir, fmt.Sprintf("%d.png", m.now().Unix()))

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create screenshot file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to encode screenshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}
	return fullPath, nil
}
