// Package assetloader resolves asset keys to decoded images. A key is an
// HTTP(S) URL, a local image path, or a local archive (ZIP, 7z, gzip,
// tar.gz, RAR) optionally followed by "#member" to pick a file inside it.
package assetloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Magic bytes for format detection
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"

	magicPNG  = []byte{0x89, 0x50, 0x4E, 0x47}
	magicJPEG = []byte{0xFF, 0xD8, 0xFF}
	magicGIF  = []byte("GIF8")
	magicBMP  = []byte("BM")
	magicRIFF = []byte("RIFF")
	magicWEBP = []byte("WEBP")
)

// Maximum encoded image size (32MB safety limit)
const maxAssetSize = 32 * 1024 * 1024

// ErrNoImageFile is returned when no matching image is found in an archive
var ErrNoImageFile = errors.New("no image file found in archive")

// ErrUnsupportedFormat is returned for unrecognized file formats
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrFileTooLarge is returned when content exceeds the size limit
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// ErrInvalidKey is returned for keys that cannot name an asset
var ErrInvalidKey = errors.New("invalid asset key")

// ImageExtensions are the file types treated as images inside archives and
// folders.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

type formatType int

const (
	formatUnknown formatType = iota
	formatImage
	formatZIP
	format7z
	formatGzip
	formatRAR
)

// matchFunc selects an archive member by name
type matchFunc func(name string) bool

// ReadFile reads encoded image bytes from a local path. Archives are
// detected by magic bytes. If member is empty the first image in the archive
// is used; otherwise member must name a file in it. Returns the data and the
// base name of the file it came from.
func ReadFile(filePath, member string) ([]byte, string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, "", fmt.Errorf("failed to read file header: %w", err)
	}
	header = header[:n]

	format := detectFormat(header, filePath)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("failed to seek file: %w", err)
	}

	match := IsImageFile
	if member != "" {
		if format == formatImage {
			return nil, "", fmt.Errorf("%w: %s is not an archive", ErrInvalidKey, filePath)
		}
		match = memberMatcher(member)
	}

	switch format {
	case formatImage:
		data, err := limitedRead(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read image: %w", err)
		}
		return data, filepath.Base(filePath), nil

	case formatZIP:
		return extractFromZIP(filePath, match)

	case format7z:
		return extractFrom7z(filePath, match)

	case formatGzip:
		return extractFromGzip(filePath, match)

	case formatRAR:
		return extractFromRAR(filePath, match)

	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filePath)
	}
}

// detectFormat determines the file format from magic bytes, falling back
// to the extension.
func detectFormat(header []byte, filePath string) formatType {
	ext := strings.ToLower(filepath.Ext(filePath))

	if len(header) >= 4 {
		if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
			return formatZIP
		}
		if bytes.HasPrefix(header, magicRAR) {
			return formatRAR
		}
	}
	if len(header) >= 6 && bytes.HasPrefix(header, magic7z) {
		return format7z
	}
	if len(header) >= 2 && bytes.HasPrefix(header, magicGzip) {
		return formatGzip
	}
	if isImageHeader(header) {
		return formatImage
	}

	switch ext {
	case ".zip", ".cbz":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar", ".cbr":
		return formatRAR
	}

	if IsImageFile(filePath) {
		return formatImage
	}

	return formatUnknown
}

func isImageHeader(header []byte) bool {
	switch {
	case bytes.HasPrefix(header, magicPNG),
		bytes.HasPrefix(header, magicJPEG),
		bytes.HasPrefix(header, magicGIF),
		bytes.HasPrefix(header, magicBMP):
		return true
	case len(header) >= 12 && bytes.HasPrefix(header, magicRIFF) && bytes.Equal(header[8:12], magicWEBP):
		return true
	}
	return false
}

// IsImageFile checks if a filename has an image extension (case-insensitive)
func IsImageFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range ImageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// memberMatcher matches an archive entry by its slash-separated path
func memberMatcher(member string) matchFunc {
	want := path.Clean(strings.TrimPrefix(filepath.ToSlash(member), "/"))
	return func(name string) bool {
		return path.Clean(strings.TrimPrefix(filepath.ToSlash(name), "/")) == want
	}
}

// limitedRead reads from r up to maxAssetSize bytes, returning an error if exceeded
func limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, maxAssetSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > maxAssetSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
