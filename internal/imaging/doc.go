// Package imaging provides the raster groundwork for drawing analysis.
//
// It covers image loading and caching, the preprocessing variants fed to
// vision models, the gradient and edge fields consumed by the shape and
// line detectors, and color-mode classification.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left
// corner; X increases rightward and Y increases downward.
//
// # Value Ranges
//
// Grayscale and gradient fields use the 0-255 range as float64 values so
// that edge thresholds and complexity formulas stay directly comparable
// to their 8-bit equivalents.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are
// stateless and may be called concurrently on different images.
package imaging
