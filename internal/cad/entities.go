package cad

import (
	"fmt"
	"log"
	"math"
	"strings"
	"unicode/utf8"
)

// Entity is one extracted drawing primitive in manifest form.
type Entity struct {
	// ID is a stable ordinal identifier within the document.
	ID string `json:"id"`

	Type string `json:"type"`

	// RawText is the text content for text-bearing entities; absent
	// for pure geometry.
	RawText string `json:"raw_text,omitempty"`

	Layer string `json:"layer"`

	Block string `json:"block,omitempty"`

	// BBoxWorld is [minX, minY, maxX, maxY] in drawing units.
	BBoxWorld [4]float64 `json:"bbox_world"`

	// BBoxNorm is the same box rescaled against the document extents;
	// components lie in [0, 1] for coordinates within the extents.
	BBoxNorm [4]float64 `json:"bbox_norm"`

	// Extra carries type-specific attributes (rotation, height, style,
	// dimension subtype).
	Extra map[string]any `json:"extra"`
}

// Extents is the document bounding box in drawing units.
type Extents struct {
	Min [2]float64 `json:"min"`
	Max [2]float64 `json:"max"`
}

// Statistics counts extracted entities per category. Every entity falls
// into exactly one bucket, so the buckets sum to TotalEntities.
type Statistics struct {
	TotalEntities     int `json:"total_entities"`
	TextEntities      int `json:"text_entities"`
	MTextEntities     int `json:"mtext_entities"`
	DimensionEntities int `json:"dimension_entities"`

	// LineEntities covers LINE, POLYLINE and LWPOLYLINE.
	LineEntities int `json:"line_entities"`

	CircleEntities int `json:"circle_entities"`
	ArcEntities    int `json:"arc_entities"`
	OtherEntities  int `json:"other_entities"`
}

// textWidthFactor approximates glyph advance as a fraction of the font
// height. Good enough for layout hints; not rendering-accurate.
const textWidthFactor = 0.6

// mtextLineSpacing approximates multi-line text spacing as a multiple
// of the character height.
const mtextLineSpacing = 1.5

// Extraction is the full result of extracting a Document.
type Extraction struct {
	Extents    Extents
	Layers     []string
	Entities   []Entity
	Statistics Statistics
}

// Extract walks a document's entities and produces the manifest-level
// extraction: extents, entity list with normalized boxes, and category
// statistics. Entities that cannot be extracted are logged and skipped.
func Extract(doc *Document) *Extraction {
	extents := computeExtents(doc.Entities)

	minX, minY := extents.Min[0], extents.Min[1]
	spanX := math.Max(extents.Max[0]-minX, 1)
	spanY := math.Max(extents.Max[1]-minY, 1)

	entities := make([]Entity, 0, len(doc.Entities))
	for i := range doc.Entities {
		id := fmt.Sprintf("ent_%06d", i+1)
		entity, err := extractEntity(&doc.Entities[i], id, minX, minY, spanX, spanY)
		if err != nil {
			log.Printf("cad: skipping entity %s (%s): %v", id, doc.Entities[i].Type, err)
			continue
		}
		entities = append(entities, *entity)
	}

	layers := doc.Layers
	if layers == nil {
		layers = []string{}
	}

	return &Extraction{
		Extents:    extents,
		Layers:     layers,
		Entities:   entities,
		Statistics: calculateStatistics(entities),
	}
}

// extentCoordinate returns an entity's representative coordinate for
// extent computation: the first present attribute in precedence order
// insert, start, end, center, location. Entities with none are excluded
// from extents but still extracted.
func extentCoordinate(e *EntityData) *Point {
	for _, p := range []*Point{e.Insert, e.Start, e.End, e.Center, e.Location} {
		if p != nil {
			return p
		}
	}
	return nil
}

// computeExtents expands a running min/max over each entity's
// representative coordinate. A document yielding no coordinates falls
// back to a default unit box so normalization never divides by zero.
func computeExtents(entities []EntityData) Extents {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false

	for i := range entities {
		p := extentCoordinate(&entities[i])
		if p == nil {
			continue
		}
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
		found = true
	}

	if !found {
		return Extents{Min: [2]float64{0, 0}, Max: [2]float64{100, 100}}
	}
	return Extents{Min: [2]float64{minX, minY}, Max: [2]float64{maxX, maxY}}
}

// extractEntity dispatches on the declared entity type.
func extractEntity(e *EntityData, id string, minX, minY, spanX, spanY float64) (*Entity, error) {
	layer := e.Layer
	if layer == "" {
		layer = "0"
	}

	switch e.Type {
	case "TEXT":
		return extractText(e, id, layer, minX, minY, spanX, spanY)
	case "MTEXT":
		return extractMText(e, id, layer, minX, minY, spanX, spanY)
	case "DIMENSION":
		return extractDimension(e, id, layer, minX, minY, spanX, spanY)
	case "LINE", "POLYLINE", "LWPOLYLINE", "CIRCLE", "ARC", "ELLIPSE":
		return extractGeometric(e, id, layer, minX, minY, spanX, spanY), nil
	default:
		// Unrecognized types are kept for the statistics but carry no
		// geometry at all, so both boxes stay zero.
		return &Entity{
			ID:    id,
			Type:  e.Type,
			Layer: layer,
			Block: e.Block,
			Extra: map[string]any{},
		}, nil
	}
}

func extractText(e *EntityData, id, layer string, minX, minY, spanX, spanY float64) (*Entity, error) {
	if e.Insert == nil {
		return nil, fmt.Errorf("TEXT entity without insert point")
	}

	style := e.Style
	if style == "" {
		style = "Standard"
	}

	textWidth := float64(utf8.RuneCountInString(e.Text)) * e.Height * textWidthFactor
	bbox := [4]float64{e.Insert.X, e.Insert.Y, e.Insert.X + textWidth, e.Insert.Y + e.Height}

	return &Entity{
		ID:        id,
		Type:      "TEXT",
		RawText:   e.Text,
		Layer:     layer,
		Block:     e.Block,
		BBoxWorld: bbox,
		BBoxNorm:  normalizeBBox(bbox, minX, minY, spanX, spanY),
		Extra: map[string]any{
			"height":   e.Height,
			"rotation": e.Rotation,
			"style":    style,
		},
	}, nil
}

func extractMText(e *EntityData, id, layer string, minX, minY, spanX, spanY float64) (*Entity, error) {
	if e.Insert == nil {
		return nil, fmt.Errorf("MTEXT entity without insert point")
	}

	charHeight := e.CharHeight
	if charHeight == 0 {
		charHeight = 1.0
	}

	lines := strings.Split(e.Text, "\n")
	maxLine := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLine {
			maxLine = n
		}
	}

	textWidth := float64(maxLine) * charHeight * textWidthFactor
	totalHeight := float64(len(lines)) * charHeight * mtextLineSpacing
	bbox := [4]float64{e.Insert.X, e.Insert.Y, e.Insert.X + textWidth, e.Insert.Y + totalHeight}

	return &Entity{
		ID:        id,
		Type:      "MTEXT",
		RawText:   e.Text,
		Layer:     layer,
		Block:     e.Block,
		BBoxWorld: bbox,
		BBoxNorm:  normalizeBBox(bbox, minX, minY, spanX, spanY),
		Extra: map[string]any{
			"char_height": charHeight,
			"line_count":  len(lines),
		},
	}, nil
}

// dimension boxes are a fixed 50x10 placeholder anchored at the
// definition point; the real dimension geometry lives in sub-entities
// the document reader does not expand.
func extractDimension(e *EntityData, id, layer string, minX, minY, spanX, spanY float64) (*Entity, error) {
	defpoint := e.DefPoint
	if defpoint == nil {
		defpoint = &Point{}
	}

	dimType := e.DimType
	if dimType == "" {
		dimType = "UNKNOWN"
	}

	bbox := [4]float64{defpoint.X, defpoint.Y, defpoint.X + 50, defpoint.Y + 10}

	return &Entity{
		ID:        id,
		Type:      "DIMENSION",
		RawText:   e.Text,
		Layer:     layer,
		Block:     e.Block,
		BBoxWorld: bbox,
		BBoxNorm:  normalizeBBox(bbox, minX, minY, spanX, spanY),
		Extra: map[string]any{
			"dim_type": dimType,
		},
	}, nil
}

// extractGeometric handles the pure-geometry types. LINE and CIRCLE get
// real boxes; ARC, ELLIPSE and polylines keep zero boxes since their
// true bounds need vertex or curve expansion.
func extractGeometric(e *EntityData, id, layer string, minX, minY, spanX, spanY float64) *Entity {
	var bbox [4]float64

	switch e.Type {
	case "LINE":
		if e.Start != nil && e.End != nil {
			bbox = [4]float64{
				math.Min(e.Start.X, e.End.X), math.Min(e.Start.Y, e.End.Y),
				math.Max(e.Start.X, e.End.X), math.Max(e.Start.Y, e.End.Y),
			}
		}
	case "CIRCLE":
		if e.Center != nil {
			bbox = [4]float64{
				e.Center.X - e.Radius, e.Center.Y - e.Radius,
				e.Center.X + e.Radius, e.Center.Y + e.Radius,
			}
		}
	}

	return &Entity{
		ID:        id,
		Type:      e.Type,
		Layer:     layer,
		Block:     e.Block,
		BBoxWorld: bbox,
		BBoxNorm:  normalizeBBox(bbox, minX, minY, spanX, spanY),
		Extra:     map[string]any{},
	}
}

// normalizeBBox rescales a world box against the document extents. The
// spans are already floored at 1, so degenerate extents cannot produce
// NaN or infinities.
func normalizeBBox(bbox [4]float64, minX, minY, spanX, spanY float64) [4]float64 {
	return [4]float64{
		(bbox[0] - minX) / spanX,
		(bbox[1] - minY) / spanY,
		(bbox[2] - minX) / spanX,
		(bbox[3] - minY) / spanY,
	}
}

func calculateStatistics(entities []Entity) Statistics {
	stats := Statistics{TotalEntities: len(entities)}

	for i := range entities {
		switch strings.ToLower(entities[i].Type) {
		case "text":
			stats.TextEntities++
		case "mtext":
			stats.MTextEntities++
		case "dimension":
			stats.DimensionEntities++
		case "line", "polyline", "lwpolyline":
			stats.LineEntities++
		case "circle":
			stats.CircleEntities++
		case "arc":
			stats.ArcEntities++
		default:
			stats.OtherEntities++
		}
	}
	return stats
}
