// Package ocr extracts text annotations from rendered drawings using
// Tesseract (via gosseract/v2).
//
// Beyond raw recognition the package classifies the recovered text into
// the annotation categories engineering drawings carry: dimension tokens
// (measurements, radii, diameters, angles) and technical vocabulary
// (standards references, view labels, material callouts).
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Failure Semantics
//
// Drawings without text, or systems without a working Tesseract install,
// are normal operating conditions. ExtractAnnotations degrades to an
// empty result and logs the cause rather than failing the extraction
// pipeline; only the pure classification helpers are error-free by
// construction.
//
// # Temporary Files
//
// Region OCR writes the crop to a temporary PNG because Tesseract wants
// a file path. The file is deleted after OCR completes.
package ocr
