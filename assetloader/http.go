package assetloader

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

// diskCachePath returns where a downloaded URL is mirrored
func diskCachePath(dir, url string) string {
	sum := sha1.Sum([]byte(url))
	return filepath.Join(dir, hex.EncodeToString(sum[:])+".img")
}

// download fetches a URL entirely into memory
func download(client *http.Client, url string) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return limitedRead(resp.Body)
}

// fetchRemote returns the bytes for a URL, served from the disk cache when
// cacheDir is set and already holds them.
func fetchRemote(client *http.Client, cacheDir, url string) ([]byte, error) {
	var cachePath string
	if cacheDir != "" {
		cachePath = diskCachePath(cacheDir, url)
		if f, err := os.Open(cachePath); err == nil {
			data, err := limitedRead(f)
			f.Close()
			if err == nil && len(data) > 0 {
				return data, nil
			}
		}
	}

	data, err := download(client, url)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}

	if cachePath != "" {
		if err := writeCacheFile(cachePath, data); err != nil {
			log.Printf("Warning: failed to cache %s: %v", url, err)
		}
	}
	return data, nil
}

// writeCacheFile writes through a unique temp file in the cache directory
// and renames it into place, so readers never see a partial file.
func writeCacheFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0644)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
