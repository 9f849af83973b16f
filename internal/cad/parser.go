package cad

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Parser turns parsed documents into manifests and optionally persists
// them as indented JSON files.
type Parser struct {
	// ManifestDir is where SaveManifest writes; empty disables saving.
	ManifestDir string
}

// NewParser creates a Parser writing manifests under dir.
func NewParser(dir string) *Parser {
	return &Parser{ManifestDir: dir}
}

// Parse extracts a document into a manifest.
//
// An empty fileID gets a generated UUID. A nil document produces the
// fallback manifest rather than an error; extraction itself cannot fail
// past the per-entity level.
func (p *Parser) Parse(doc *Document, fileID, sourceFile string) *Manifest {
	if fileID == "" {
		fileID = uuid.NewString()
	}

	if doc == nil {
		log.Printf("cad: no document for %s, emitting fallback manifest", sourceFile)
		return FallbackManifest(fileID, sourceFile, "document unreadable")
	}

	extraction := Extract(doc)

	version := doc.Version
	if version == "" {
		version = "unknown"
	}

	return &Manifest{
		FileID:           fileID,
		SheetID:          defaultSheetID,
		SourceFile:       sourceFile,
		ConversionStatus: StatusSuccess,
		ParsedAt:         time.Now(),
		Units:            UnitsName(doc.UnitsCode),
		Scale:            1.0,
		DXFVersion:       version,
		Extents:          extraction.Extents,
		Layers:           extraction.Layers,
		Entities:         extraction.Entities,
		Statistics:       extraction.Statistics,
	}
}

// FallbackManifest builds the uniform failed-conversion manifest:
// zeroed statistics, empty entity list, the error message attached.
func FallbackManifest(fileID, sourceFile, errMsg string) *Manifest {
	return &Manifest{
		FileID:           fileID,
		SheetID:          defaultSheetID,
		SourceFile:       sourceFile,
		ConversionStatus: StatusFailed,
		ErrorMessage:     errMsg,
		ParsedAt:         time.Now(),
		Units:            "unknown",
		Scale:            1.0,
		DXFVersion:       "unknown",
		Extents:          Extents{},
		Layers:           []string{},
		Entities:         []Entity{},
	}
}

// SaveManifest writes a manifest as indented JSON under ManifestDir,
// named <file_id>_<sheet_id>.json, and returns the path.
func (p *Parser) SaveManifest(m *Manifest) (string, error) {
	if p.ManifestDir == "" {
		return "", fmt.Errorf("no manifest directory configured")
	}
	if err := os.MkdirAll(p.ManifestDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create manifest dir: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}

	path := filepath.Join(p.ManifestDir, fmt.Sprintf("%s_%s.json", m.FileID, m.SheetID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}
