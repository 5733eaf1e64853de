package lena

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// pngHeader is enough of a PNG file for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestDataURL(t *testing.T) {
	url, err := DataURL(bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("DataURL() error = %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("DataURL() = %q, want a png data URL", url)
	}

	if _, err := DataURL(strings.NewReader("just some text")); err == nil {
		t.Error("DataURL() accepted a text file")
	}
}

func TestLoadPhotos(t *testing.T) {
	dir := t.TempDir()
	photo := filepath.Join(dir, "front.png")
	if err := os.WriteFile(photo, pngHeader, 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := LoadPhotos(photo, photo)
	if err != nil {
		t.Fatalf("LoadPhotos() error = %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("LoadPhotos() returned %d photos, want 2", len(urls))
	}
	if err := (Property{Name: "x", Price: USD(1), Photos: urls}).Validate(); err != nil {
		t.Errorf("loaded photos are not valid: %v", err)
	}

	if _, err := LoadPhotos(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("LoadPhotos() accepted a missing file")
	}
}
