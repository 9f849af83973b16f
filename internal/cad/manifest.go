package cad

import (
	"fmt"
	"strings"
	"time"
)

// Manifest is the canonical document-level aggregate persisted as JSON
// and consumed by the analysis and retrieval layers.
type Manifest struct {
	FileID     string `json:"file_id"`
	SheetID    string `json:"sheet_id"`
	SourceFile string `json:"source_file"`

	// ConversionStatus is "success" or "conversion_failed"; consumers
	// must check it before trusting the entity list.
	ConversionStatus string `json:"conversion_status"`
	ErrorMessage     string `json:"error_message,omitempty"`

	ParsedAt time.Time `json:"parsed_at"`

	Units      string  `json:"units"`
	Scale      float64 `json:"scale"`
	DXFVersion string  `json:"dxf_version"`

	Extents    Extents    `json:"extents"`
	Layers     []string   `json:"layers"`
	Entities   []Entity   `json:"entities"`
	Statistics Statistics `json:"statistics"`
}

// StatusSuccess and StatusFailed are the two conversion states a
// manifest can carry.
const (
	StatusSuccess = "success"
	StatusFailed  = "conversion_failed"
)

// defaultSheetID names the single model-space sheet vector documents
// typically carry.
const defaultSheetID = "Model"

// ManifestText renders a manifest as flat text for retrieval indexing:
// file metadata, entity text grouped by layer with type tags, and the
// category statistics. Source filename and raw text content appear as
// exact literals so they survive a round trip through the index.
func ManifestText(m *Manifest) string {
	if m.ConversionStatus == StatusFailed {
		msg := m.ErrorMessage
		if msg == "" {
			msg = "Unknown error"
		}
		return fmt.Sprintf("CAD file conversion failed: %s", msg)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CAD Drawing: %s\n", m.SourceFile)
	fmt.Fprintf(&b, "Units: %s\n", m.Units)
	fmt.Fprintf(&b, "Layers: %s\n", strings.Join(m.Layers, ", "))
	b.WriteString("\n")

	// Group entity text by layer, keeping first-seen layer order.
	layerOrder := []string{}
	layerTexts := make(map[string][]string)
	for i := range m.Entities {
		e := &m.Entities[i]
		if e.RawText == "" {
			continue
		}
		if _, ok := layerTexts[e.Layer]; !ok {
			layerOrder = append(layerOrder, e.Layer)
		}
		layerTexts[e.Layer] = append(layerTexts[e.Layer], fmt.Sprintf("[%s] %s", e.Type, e.RawText))
	}

	for _, layer := range layerOrder {
		fmt.Fprintf(&b, "Layer '%s':\n", layer)
		for _, line := range layerTexts[layer] {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	stats := m.Statistics
	fmt.Fprintf(&b, "Total entities: %d\n", stats.TotalEntities)
	fmt.Fprintf(&b, "Text entities: %d\n", stats.TextEntities+stats.MTextEntities)
	fmt.Fprintf(&b, "Dimension entities: %d", stats.DimensionEntities)

	return b.String()
}
