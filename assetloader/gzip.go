package assetloader

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

func isTarGz(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz")
}

func openGzip(path string) (*os.File, *gzip.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open gzip: %w", err)
	}
	gr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	return f, gr, nil
}

// extractFromGzip extracts the first matching file from a tar.gz archive,
// or the decompressed content of a plain .gz file.
func extractFromGzip(path string, match matchFunc) ([]byte, string, error) {
	f, gr, err := openGzip(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	defer gr.Close()

	if isTarGz(path) {
		return extractFromTar(gr, match)
	}

	// Plain .gz: the content is the image, named without the .gz suffix
	name := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		name = name[:len(name)-3]
	}
	if !match(name) {
		return nil, "", ErrNoImageFile
	}

	data, err := limitedRead(gr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress gzip: %w", err)
	}
	return data, name, nil
}

// extractFromTar extracts the first matching regular file from a tar stream
func extractFromTar(r io.Reader, match matchFunc) ([]byte, string, error) {
	tr := tar.NewReader(r)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read tar entry: %w", err)
		}

		if header.Typeflag != tar.TypeReg || !match(header.Name) {
			continue
		}

		data, err := limitedRead(tr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s from tar: %w", header.Name, err)
		}
		return data, filepath.Base(header.Name), nil
	}

	return nil, "", ErrNoImageFile
}

// listGzip returns the image members of a tar.gz archive, or the single
// decompressed name of a plain .gz image.
func listGzip(path string) ([]string, error) {
	if !isTarGz(path) {
		name := filepath.Base(path)
		name = name[:len(name)-len(filepath.Ext(name))]
		if IsImageFile(name) {
			return []string{name}, nil
		}
		return nil, nil
	}

	f, gr, err := openGzip(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	defer gr.Close()

	var names []string
	tr := tar.NewReader(gr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar entry: %w", err)
		}
		if header.Typeflag == tar.TypeReg && IsImageFile(header.Name) {
			names = append(names, header.Name)
		}
	}
	return names, nil
}
