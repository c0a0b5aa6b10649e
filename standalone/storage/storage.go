package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// appName is the data directory name, set once by Init
var appName string

// Init names the per-user data directory. Every path helper fails until it
// has been called.
func Init(dataDirName string) {
	appName = dataDirName
}

// Layout of the data directory
const (
	configFile    = "config.json"
	catalogFile   = "catalog.json"
	artworkDir    = "artwork"    // disk cache for fetched posters
	screenshotDir = "screenshots"
)

var errNotInitialized = errors.New("storage not initialized")

// dataRoot returns the platform directory that holds per-user app data:
// ~/Library/Application Support on macOS, %APPDATA% on Windows, and
// $XDG_DATA_HOME (or ~/.local/share) elsewhere.
func dataRoot() (string, error) {
	if runtime.GOOS == "windows" {
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return "", errors.New("APPDATA environment variable not set")
	}
	if runtime.GOOS != "darwin" {
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support"), nil
	}
	return filepath.Join(home, ".local", "share"), nil
}

// GetBaseDir returns <data root>/<appName>.
func GetBaseDir() (string, error) {
	if appName == "" {
		return "", errNotInitialized
	}
	root, err := dataRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, appName), nil
}

func inBaseDir(parts ...string) (string, error) {
	base, err := GetBaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{base}, parts...)...), nil
}

// EnsureDirectories creates the data directory and its subdirectories
func EnsureDirectories() error {
	for _, sub := range []string{"", artworkDir, screenshotDir} {
		dir, err := inBaseDir(sub)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetConfigPath returns the full path to config.json
func GetConfigPath() (string, error) {
	return inBaseDir(configFile)
}

// GetCatalogPath returns override when set, otherwise catalog.json in the
// data directory.
func GetCatalogPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return inBaseDir(catalogFile)
}

func GetArtworkDir() (string, error) {
	return inBaseDir(artworkDir)
}

func GetScreenshotDir() (string, error) {
	return inBaseDir(screenshotDir)
}

// AtomicWriteJSON writes v as indented JSON beside path and renames it into
// place. Readers see either the old file or the new one.
func AtomicWriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// ReadJSON decodes the file at path into v. A missing file is returned
// unwrapped so callers can test it with os.IsNotExist.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}
