// Package cad extracts structured manifests from parsed vector drawing
// documents.
//
// The input is an in-memory Document: a flat entity list with typed
// geometric attributes, a layer table and header metadata. The output
// is a Manifest, the canonical JSON representation consumed by the
// analysis and retrieval layers, carrying per-entity bounding boxes in
// both drawing units and extents-normalized [0, 1] coordinates.
//
// Text bounding boxes are approximations from character count and font
// height; exact glyph metrics would require a rendering pass this
// package deliberately avoids.
//
// # Failure Semantics
//
// An entity that cannot be extracted is logged and skipped; extraction
// of the rest continues. A document that cannot be processed at all
// yields a fallback manifest with conversion_status "conversion_failed"
// and zeroed statistics, never an error to the caller.
package cad
