package imaging

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorModeResult classifies a drawing's color usage.
//
// Most CAD renders are effectively monochrome (black linework on white);
// colored drawings usually indicate layers rendered with distinct pens.
type ColorModeResult struct {
	// Mode is "monochrome" or "color".
	Mode string `json:"mode"`

	// DistinctColors is the number of distinct quantized colors found.
	// Quantization groups colors within 16 units per channel, so
	// anti-aliasing halos do not inflate the count.
	DistinctColors int `json:"distinct_colors"`
}

// saturation above this marks a pixel as genuinely colored rather than
// a gray tone with rounding noise
const colorSaturationThreshold = 0.08

// AnalyzeColorMode classifies an image as monochrome or color and counts
// its distinct quantized colors.
//
// A drawing is monochrome when no sampled pixel has HSL saturation above
// the threshold. Large images are sampled on a stride grid rather than
// per-pixel; the classification is statistical, not exact.
func AnalyzeColorMode(img image.Image) *ColorModeResult {
	bounds := img.Bounds()
	stride := 1
	if d := bounds.Dx() * bounds.Dy(); d > 1<<20 {
		stride = 4
	}

	distinct := make(map[string]struct{})
	colored := false

	for y := bounds.Min.Y; y < bounds.Max.Y; y += stride {
		for x := bounds.Min.X; x < bounds.Max.X; x += stride {
			r, g, b, _ := img.At(x, y).RGBA()
			r8 := uint8((r >> 8) / 16 * 16)
			g8 := uint8((g >> 8) / 16 * 16)
			b8 := uint8((b >> 8) / 16 * 16)
			distinct[fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)] = struct{}{}

			if !colored {
				c := colorful.Color{
					R: float64(r>>8) / 255.0,
					G: float64(g>>8) / 255.0,
					B: float64(b>>8) / 255.0,
				}
				_, s, _ := c.Hsl()
				if s > colorSaturationThreshold {
					colored = true
				}
			}
		}
	}

	mode := "monochrome"
	if colored {
		mode = "color"
	}

	return &ColorModeResult{
		Mode:           mode,
		DistinctColors: len(distinct),
	}
}
