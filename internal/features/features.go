// Package features merges the raster and vector extraction results into
// a single feature set and formats it as an analysis prompt.
package features

import (
	"fmt"
	"strings"

	"github.com/drafthaus/cadlens/internal/cad"
	"github.com/drafthaus/cadlens/internal/detection"
	"github.com/drafthaus/cadlens/internal/imaging"
	"github.com/drafthaus/cadlens/internal/ocr"
)

// FeatureSet is the normalized structured output of feature extraction
// over one drawing: the raster-derived parts, plus the vector manifest
// when the drawing came from a CAD file.
type FeatureSet struct {
	ImageSize  imaging.Dimensions         `json:"image_size"`
	Shapes     detection.ShapesResult     `json:"shapes"`
	Lines      detection.LinesResult      `json:"lines"`
	Complexity detection.ComplexityResult `json:"complexity"`
	Text       ocr.Annotations            `json:"text"`
	ColorMode  imaging.ColorModeResult    `json:"color_mode"`

	// Manifest is present only for drawings converted from vector
	// documents.
	Manifest *cad.Manifest `json:"manifest,omitempty"`
}

// promptTextCap bounds the raw OCR text carried into the prompt so
// downstream payloads stay bounded.
const promptTextCap = 1000

// Merge assembles a feature set from the extraction results. The
// manifest is optional; pass nil for raster-only drawings.
func Merge(size imaging.Dimensions, detected *detection.Features, text *ocr.Annotations, colorMode imaging.ColorModeResult, manifest *cad.Manifest) *FeatureSet {
	fs := &FeatureSet{
		ImageSize: size,
		ColorMode: colorMode,
		Manifest:  manifest,
	}
	if detected != nil {
		fs.Shapes = detected.Shapes
		fs.Lines = detected.Lines
		fs.Complexity = detected.Complexity
	}
	if text != nil {
		fs.Text = *text
	}
	return fs
}

// Prompt formats the feature set as the flat text payload sent to
// analysis models. Pure and deterministic; no I/O.
func (fs *FeatureSet) Prompt() string {
	var b strings.Builder

	b.WriteString("CAD DRAWING ANALYSIS (Computer Vision Extraction)\n\n")

	fmt.Fprintf(&b, "IMAGE PROPERTIES:\n")
	fmt.Fprintf(&b, "- Size: %dx%d pixels\n", fs.ImageSize.Width, fs.ImageSize.Height)
	fmt.Fprintf(&b, "- Complexity: %s\n", strings.ToUpper(orUnknown(fs.Complexity.Level)))
	fmt.Fprintf(&b, "- Complexity Score: %.1f/10\n\n", fs.Complexity.Score)

	fmt.Fprintf(&b, "DETECTED SHAPES:\n")
	fmt.Fprintf(&b, "- Circles: %d\n", fs.Shapes.CircleCount)
	fmt.Fprintf(&b, "- Rectangles: %d\n", fs.Shapes.RectangleCount)
	fmt.Fprintf(&b, "- Total Lines: %d (H:%d, V:%d, D:%d)\n\n",
		fs.Lines.Total, fs.Lines.Horizontal, fs.Lines.Vertical, fs.Lines.Diagonal)

	fmt.Fprintf(&b, "EXTRACTED TEXT (%d items):\n%s\n\n",
		len(fs.Text.TextItems), truncate(orDefault(fs.Text.RawText, "No text detected"), promptTextCap))

	fmt.Fprintf(&b, "DIMENSIONS FOUND:\n%s\n\n",
		orDefault(strings.Join(fs.Text.DimensionTokens, ", "), "No dimensions detected"))

	fmt.Fprintf(&b, "TECHNICAL TERMS:\n%s\n\n",
		orDefault(strings.Join(fs.Text.TechnicalTerms, ", "), "No technical terms detected"))

	fmt.Fprintf(&b, "DRAWING CHARACTERISTICS:\n")
	fmt.Fprintf(&b, "- Has dimension markers: %s\n", yesNo(fs.Lines.DimensionMarkers > 0))
	fmt.Fprintf(&b, "- Color mode: %s (%d distinct colors)\n",
		orUnknown(fs.ColorMode.Mode), fs.ColorMode.DistinctColors)

	if m := fs.Manifest; m != nil && m.ConversionStatus == cad.StatusSuccess {
		fmt.Fprintf(&b, "\nVECTOR SOURCE (%s):\n", m.SourceFile)
		fmt.Fprintf(&b, "- Units: %s\n", m.Units)
		fmt.Fprintf(&b, "- Layers: %s\n", strings.Join(m.Layers, ", "))
		fmt.Fprintf(&b, "- Entities: %d total, %d text, %d dimensions\n",
			m.Statistics.TotalEntities,
			m.Statistics.TextEntities+m.Statistics.MTextEntities,
			m.Statistics.DimensionEntities)
	}

	return b.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func orUnknown(s string) string {
	return orDefault(s, "unknown")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
