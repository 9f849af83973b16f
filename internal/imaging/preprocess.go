package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// maxAnalysisSide caps the longest side of images sent to vision
// providers; larger renders are Lanczos-downscaled before encoding.
const maxAnalysisSide = 4096

// Variant is one preprocessed rendition of a drawing image.
type Variant struct {
	// Name identifies the rendition: "original", "enhanced_contrast"
	// or "sharpened".
	Name string

	// Image is the processed image, already constrained to the maximum
	// analysis size.
	Image image.Image
}

// Preprocess produces the renditions used for visual analysis.
//
// Three variants are returned, in order:
//
//  1. original — resized only if it exceeds the size cap
//  2. enhanced_contrast — boosted contrast, better for faint linework
//  3. sharpened — unsharp-masked, better for small text and hatching
//
// The first variant is the primary analysis image; the others exist for
// callers that want to retry a pass against an enhanced rendition.
func Preprocess(img image.Image) []Variant {
	base := fitToAnalysisSize(img)

	return []Variant{
		{Name: "original", Image: base},
		{Name: "enhanced_contrast", Image: imaging.AdjustContrast(base, 50)},
		{Name: "sharpened", Image: imaging.Sharpen(base, 1.0)},
	}
}

// EncodePNG encodes an image as PNG bytes for provider payloads.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func fitToAnalysisSize(img image.Image) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= maxAnalysisSide && h <= maxAnalysisSide {
		return img
	}
	if w >= h {
		return imaging.Resize(img, maxAnalysisSide, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxAnalysisSide, imaging.Lanczos)
}
