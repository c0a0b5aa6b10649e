package assetloader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// memberSeparator splits an archive path from the member inside it
const memberSeparator = "#"

// Source is a parsed asset key
type Source struct {
	URL    string // set for remote assets
	Path   string // local file or archive
	Member string // file inside the archive at Path, if any
}

// Remote reports whether the asset is fetched over HTTP
func (s Source) Remote() bool {
	return s.URL != ""
}

// ParseKey splits an asset key into its source. URLs are kept whole,
// including any fragment. Local keys may carry "#member"; file:// is accepted
// as a prefix for local paths. A key that names an existing file is never
// split, so folder images may have "#" in their names.
func ParseKey(key string) (Source, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Source{}, fmt.Errorf("%w: empty key", ErrInvalidKey)
	}

	lower := strings.ToLower(key)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return Source{URL: key}, nil
	}
	if strings.Contains(key, "://") && !strings.HasPrefix(lower, "file://") {
		return Source{}, fmt.Errorf("%w: unsupported scheme in %q", ErrInvalidKey, key)
	}
	key = strings.TrimPrefix(key, "file://")

	if !strings.Contains(key, memberSeparator) || isRegularFile(key) {
		return Source{Path: filepath.FromSlash(key)}, nil
	}

	i := splitMember(key)
	p, member := key[:i], key[i+1:]
	if p == "" || member == "" {
		return Source{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return Source{Path: filepath.FromSlash(p), Member: member}, nil
}

// splitMember returns the index of the separator that ends the archive path.
// The first "#" preceded by an existing file wins, so both the archive path
// and the member may contain "#". Keys naming nothing on disk split at the
// last "#".
func splitMember(key string) int {
	for i := 0; i < len(key); i++ {
		if key[i] == memberSeparator[0] && i > 0 && isRegularFile(key[:i]) {
			return i
		}
	}
	return strings.LastIndex(key, memberSeparator)
}

func isRegularFile(p string) bool {
	info, err := os.Stat(filepath.FromSlash(p))
	return err == nil && info.Mode().IsRegular()
}

// ArchiveKey builds the key for a file inside an archive
func ArchiveKey(archivePath, member string) string {
	return archivePath + memberSeparator + member
}

// ListImages returns an asset key for every image in a folder (sorted by
// name, not recursive) or in an archive (archive order).
func ListImages(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}
		var keys []string
		for _, e := range entries {
			if e.IsDir() || !IsImageFile(e.Name()) {
				continue
			}
			keys = append(keys, filepath.Join(path, e.Name()))
		}
		sort.Strings(keys)
		return keys, nil
	}

	header, err := readHeader(path)
	if err != nil {
		return nil, err
	}

	var members []string
	switch detectFormat(header, path) {
	case formatImage:
		return []string{path}, nil
	case formatZIP:
		members, err = listZIP(path)
	case format7z:
		members, err = list7z(path)
	case formatGzip:
		members, err = listGzip(path)
	case formatRAR:
		members, err = listRAR(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = ArchiveKey(path, m)
	}
	return keys, nil
}

func readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	return header[:n], nil
}
