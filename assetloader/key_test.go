package assetloader

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		key  string
		want Source
	}{
		{"https://example.com/p.jpg", Source{URL: "https://example.com/p.jpg"}},
		{"HTTP://example.com/p.jpg#frag", Source{URL: "HTTP://example.com/p.jpg#frag"}},
		{"/posters/a.png", Source{Path: filepath.FromSlash("/posters/a.png")}},
		{"file:///posters/a.png", Source{Path: filepath.FromSlash("/posters/a.png")}},
		{"/packs/set.zip#art/front.png", Source{Path: filepath.FromSlash("/packs/set.zip"), Member: "art/front.png"}},
		{"  relative/b.webp  ", Source{Path: filepath.FromSlash("relative/b.webp")}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ParseKey(tt.key)
			if err != nil {
				t.Fatalf("ParseKey failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseKey(%q) = %+v, want %+v", tt.key, got, tt.want)
			}
		})
	}
}

func TestParseKeyInvalid(t *testing.T) {
	for _, key := range []string{"", "   ", "ftp://host/a.png", "#member", "/packs/set.zip#"} {
		if _, err := ParseKey(key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("ParseKey(%q) error = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestSourceRemote(t *testing.T) {
	if !(Source{URL: "https://x"}).Remote() {
		t.Error("URL source not remote")
	}
	if (Source{Path: "/x"}).Remote() {
		t.Error("path source remote")
	}
}

func TestListImages_Directory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "notes.txt", "c.webp"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	keys, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "c.webp"),
	}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("ListImages() = %v, want %v", keys, want)
	}
}

func TestListImages_HashInName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "set#2")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "poster#1.png"), encodeTestPNG(t, 4, 6), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	keys, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("ListImages() = %v, want one key", keys)
	}

	src, err := ParseKey(keys[0])
	if err != nil {
		t.Fatalf("ParseKey failed: %v", err)
	}
	if src.Member != "" || src.Path != keys[0] {
		t.Errorf("ParseKey(%q) = %+v, want the whole path", keys[0], src)
	}

	_, w, h, err := New(Options{}).LoadImage(keys[0])
	if err != nil {
		t.Fatalf("LoadImage(%q) failed: %v", keys[0], err)
	}
	if w != 4 || h != 6 {
		t.Errorf("size = %dx%d, want 4x6", w, h)
	}
}

func TestParseKey_HashInArchivePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pack#1")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	pack := filepath.Join(dir, "set.zip")
	if err := os.WriteFile(pack, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	src, err := ParseKey(ArchiveKey(pack, "art#2.png"))
	if err != nil {
		t.Fatalf("ParseKey failed: %v", err)
	}
	if src.Path != pack || src.Member != "art#2.png" {
		t.Errorf("ParseKey() = %+v, want %s and art#2.png", src, pack)
	}
}

func TestListImages_Zip(t *testing.T) {
	path := createTestZipFile(t,
		archiveFile{"z.png", encodeTestPNG(t, 1, 1)},
		archiveFile{"readme.txt", []byte("hello")},
		archiveFile{"art/a.png", encodeTestPNG(t, 1, 1)},
	)

	keys, err := ListImages(path)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	want := []string{ArchiveKey(path, "z.png"), ArchiveKey(path, "art/a.png")}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("ListImages() = %v, want %v", keys, want)
	}

	// Every listed key reads back
	for _, key := range keys {
		src, err := ParseKey(key)
		if err != nil {
			t.Fatalf("ParseKey(%q) failed: %v", key, err)
		}
		if _, _, err := ReadFile(src.Path, src.Member); err != nil {
			t.Errorf("ReadFile(%q) failed: %v", key, err)
		}
	}
}

func TestListImages_TarGz(t *testing.T) {
	path := createTestTarGzFile(t,
		archiveFile{"one.png", encodeTestPNG(t, 1, 1)},
		archiveFile{"two.gif", []byte("GIF89a")},
	)
	keys, err := ListImages(path)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("ListImages() = %v, want 2 keys", keys)
	}
}

func TestListImages_SingleImage(t *testing.T) {
	path := createTestFile(t, "poster.png", encodeTestPNG(t, 1, 1))
	keys, err := ListImages(path)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != path {
		t.Errorf("ListImages() = %v, want [%s]", keys, path)
	}
}

func TestListImages_Missing(t *testing.T) {
	if _, err := ListImages("/nonexistent/path"); err == nil {
		t.Error("Expected error for missing path")
	}
}
