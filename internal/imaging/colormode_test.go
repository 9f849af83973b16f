package imaging

import (
	"image/color"
	"testing"
)

func TestAnalyzeColorMode_Monochrome(t *testing.T) {
	img := createTestImage(50, 50, color.White)
	// Black linework on white is still monochrome
	for x := 10; x < 40; x++ {
		img.Set(x, 25, color.Black)
	}

	result := AnalyzeColorMode(img)

	if result.Mode != "monochrome" {
		t.Errorf("Expected monochrome, got %s", result.Mode)
	}
	if result.DistinctColors < 2 {
		t.Errorf("Expected at least 2 distinct colors, got %d", result.DistinctColors)
	}
}

func TestAnalyzeColorMode_Color(t *testing.T) {
	img := createTestImage(50, 50, color.White)
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}

	result := AnalyzeColorMode(img)

	if result.Mode != "color" {
		t.Errorf("Expected color, got %s", result.Mode)
	}
}

func TestAnalyzeColorMode_GrayTones(t *testing.T) {
	img := createTestImage(20, 20, color.RGBA{120, 120, 120, 255})

	result := AnalyzeColorMode(img)

	if result.Mode != "monochrome" {
		t.Errorf("Gray tones should classify as monochrome, got %s", result.Mode)
	}
	if result.DistinctColors != 1 {
		t.Errorf("Expected 1 distinct quantized color, got %d", result.DistinctColors)
	}
}
