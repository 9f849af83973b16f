package detection

import (
	"image"
	"image/color"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MinCircleRadius <= 0 || cfg.MaxCircleRadius <= cfg.MinCircleRadius {
		t.Errorf("Invalid circle radius range: [%d, %d]", cfg.MinCircleRadius, cfg.MaxCircleRadius)
	}
	if cfg.EdgeThresholdLow >= cfg.EdgeThresholdHigh {
		t.Errorf("Hysteresis thresholds out of order: low=%d high=%d",
			cfg.EdgeThresholdLow, cfg.EdgeThresholdHigh)
	}
	if cfg.MinLineLength <= 0 {
		t.Errorf("MinLineLength must be positive, got %d", cfg.MinLineLength)
	}
}

func TestDetect_EmptyImage(t *testing.T) {
	d := New(DefaultConfig())
	img := createTestImage(80, 80, color.White)

	f := d.Detect(img)

	if f.Shapes.CircleCount != 0 || f.Shapes.RectangleCount != 0 || f.Shapes.PolygonCount != 0 {
		t.Errorf("Expected zero shapes, got %+v", f.Shapes)
	}
	if f.Lines.Total != 0 {
		t.Errorf("Expected zero lines, got %d", f.Lines.Total)
	}
	if f.Complexity.Level != "very_simple" {
		t.Errorf("Expected very_simple, got %q", f.Complexity.Level)
	}
}

func TestDetect_TinyImage(t *testing.T) {
	d := New(DefaultConfig())

	// Smaller than the Sobel window; stages must degrade, not panic.
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	f := d.Detect(img)

	if f == nil {
		t.Fatal("Detect returned nil")
	}
}

func TestDetect_AllStagesPopulated(t *testing.T) {
	d := New(DefaultConfig())
	img := createRectangleImage(100, 100, 20, 20, 80, 80)

	f := d.Detect(img)

	// Complexity always computes on a non-trivial image.
	if f.Complexity.EdgeDensity <= 0 {
		t.Error("Rectangle image should have nonzero edge density")
	}
	sum := f.Lines.Horizontal + f.Lines.Vertical + f.Lines.Diagonal
	if sum != f.Lines.Total {
		t.Errorf("Line classes must partition the total: %d != %d", sum, f.Lines.Total)
	}
}
