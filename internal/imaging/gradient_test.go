package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createSplitImage creates an image with a vertical black/white boundary
func createSplitImage(width, height, splitX int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < splitX {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func TestEdgeMap_VerticalEdge(t *testing.T) {
	img := createSplitImage(50, 50, 25)

	edges := EdgeMap(img, 50, 150)

	// The boundary should produce edge pixels near x=25
	edgeFound := false
	for y := 5; y < 45; y++ {
		for x := 22; x <= 28; x++ {
			if edges[y][x] {
				edgeFound = true
			}
		}
	}
	if !edgeFound {
		t.Error("EdgeMap should mark the vertical boundary as edges")
	}
}

func TestEdgeMap_UniformImage(t *testing.T) {
	img := createTestImage(50, 50, color.RGBA{128, 128, 128, 255})

	edges := EdgeMap(img, 50, 150)

	count := 0
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			if edges[y][x] {
				count++
			}
		}
	}
	if count != 0 {
		t.Errorf("Uniform image should have 0 edges, got %d", count)
	}
}

func TestEdgeDensity(t *testing.T) {
	edges := make([][]bool, 10)
	for y := range edges {
		edges[y] = make([]bool, 10)
	}
	edges[0][0] = true
	edges[5][5] = true

	density := EdgeDensity(edges)
	if density != 0.02 {
		t.Errorf("Expected density 0.02, got %f", density)
	}
}

func TestEdgeDensity_Empty(t *testing.T) {
	if d := EdgeDensity(nil); d != 0 {
		t.Errorf("Expected 0 density for empty map, got %f", d)
	}
}

func TestSobelField_UniformImage(t *testing.T) {
	img := createTestImage(30, 30, color.White)

	field := SobelField(img)

	if field.Width != 30 || field.Height != 30 {
		t.Errorf("Unexpected field size %dx%d", field.Width, field.Height)
	}
	// Interior of a uniform image has zero gradient; border replication
	// keeps the mean near zero as well.
	if field.MeanMagnitude > 1.0 {
		t.Errorf("Uniform image should have near-zero mean gradient, got %f", field.MeanMagnitude)
	}
}

func TestSobelField_EdgeHasGradient(t *testing.T) {
	img := createSplitImage(40, 40, 20)

	field := SobelField(img)

	if field.MeanMagnitude <= 0 {
		t.Error("Image with a boundary should have positive mean gradient")
	}

	// Peak magnitude should sit at the boundary
	boundary := field.Magnitude[20][20]
	far := field.Magnitude[20][5]
	if boundary <= far {
		t.Errorf("Expected boundary gradient (%f) to exceed flat-region gradient (%f)", boundary, far)
	}
}
