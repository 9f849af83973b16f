package detection

import (
	"image"

	"github.com/drafthaus/cadlens/internal/imaging"
)

// ComplexityResult is the derived complexity metric of a drawing.
type ComplexityResult struct {
	// EdgeDensity is the fraction of pixels marked as edges, in [0, 1].
	EdgeDensity float64 `json:"edge_density"`

	// AvgGradient is the mean Sobel gradient magnitude on the 0-255
	// grayscale scale.
	AvgGradient float64 `json:"avg_gradient"`

	// Score is clamped to [0, 10].
	Score float64 `json:"complexity_score"`

	// Level is the classification band for Score.
	Level string `json:"complexity_level"`
}

// MeasureComplexity computes the drawing complexity metric.
//
// The score combines how much of the image is edges with how much fine
// detail the gradients carry:
//
//	score = min(10, edgeDensity*100 + avgGradient/10)
func (d *Detector) MeasureComplexity(img image.Image) *ComplexityResult {
	edges := imaging.EdgeMap(img, d.cfg.EdgeThresholdLow, d.cfg.EdgeThresholdHigh)
	density := imaging.EdgeDensity(edges)
	gradient := imaging.SobelField(img).MeanMagnitude

	score := ComplexityScore(density, gradient)

	return &ComplexityResult{
		EdgeDensity: density,
		AvgGradient: gradient,
		Score:       score,
		Level:       ClassifyComplexity(score),
	}
}

// ComplexityScore combines edge density and mean gradient magnitude into
// a score clamped to [0, 10].
func ComplexityScore(edgeDensity, avgGradient float64) float64 {
	score := edgeDensity*100 + avgGradient/10
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// ClassifyComplexity maps a complexity score to its band.
func ClassifyComplexity(score float64) string {
	switch {
	case score < 2:
		return "very_simple"
	case score < 4:
		return "simple"
	case score < 6:
		return "moderate"
	case score < 8:
		return "complex"
	default:
		return "very_complex"
	}
}
