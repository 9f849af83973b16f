package imaging

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, createTestImage(40, 30, color.White)); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return path
}

func TestImageCache_Load(t *testing.T) {
	path := writeTestPNG(t, t.TempDir())
	cache := NewImageCache()

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 40 {
		t.Errorf("Expected width 40, got %d", img.Bounds().Dx())
	}

	// Second load comes from the cache; deleting the file must not matter
	os.Remove(path)
	if _, err := cache.Load(path); err != nil {
		t.Errorf("Cached load failed after file removal: %v", err)
	}
}

func TestImageCache_Evict(t *testing.T) {
	path := writeTestPNG(t, t.TempDir())
	cache := NewImageCache()

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(path)
	os.Remove(path)

	if _, err := cache.Load(path); err == nil {
		t.Error("Expected error loading evicted image with file removed")
	}
}

func TestImageCache_LoadMissing(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Load("/nonexistent/image.png"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestGetDimensions(t *testing.T) {
	path := writeTestPNG(t, t.TempDir())
	cache := NewImageCache()

	dims, err := GetDimensions(cache, path)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 40 || dims.Height != 30 {
		t.Errorf("Expected 40x30, got %dx%d", dims.Width, dims.Height)
	}
}
