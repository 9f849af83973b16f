package ocr

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Position is a text item's bounding box in pixel coordinates.
type Position struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TextItem is one recognized word with its location and OCR confidence.
type TextItem struct {
	Text string `json:"text"`

	// Confidence is Tesseract's word confidence on a 0-100 scale.
	Confidence float64 `json:"confidence"`

	Position Position `json:"position"`
}

// Annotations is the classified text content of a drawing.
type Annotations struct {
	// TextItems are the recognized words above the confidence floor.
	TextItems []TextItem `json:"text_items"`

	// RawText is the full recognized text with original spacing.
	RawText string `json:"raw_text"`

	// DimensionTokens are measurement-like strings found in the text,
	// deduplicated in first-seen order.
	DimensionTokens []string `json:"dimension_tokens"`

	// TechnicalTerms are drawing vocabulary hits (standards, view
	// labels, material callouts), deduplicated in first-seen order.
	TechnicalTerms []string `json:"technical_terms"`
}

// Config holds the OCR tuning.
type Config struct {
	// Language is the Tesseract language code.
	Language string

	// MinConfidence is the word confidence floor on the 0-100 scale;
	// words below it are dropped.
	MinConfidence float64
}

// DefaultConfig returns the standard OCR tuning.
func DefaultConfig() Config {
	return Config{
		Language:      "eng",
		MinConfidence: 30,
	}
}

// Extractor runs OCR and annotation classification. Safe for concurrent
// use; each extraction opens its own Tesseract client.
type Extractor struct {
	cfg Config
}

// New creates an Extractor with the given configuration.
func New(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// ExtractAnnotations performs OCR on an image file and classifies the
// recovered text.
//
// OCR failure is not fatal: a missing Tesseract install or an unreadable
// image logs the cause and returns an empty Annotations value, never nil.
func (e *Extractor) ExtractAnnotations(imagePath string) *Annotations {
	raw, items, err := e.recognize(imagePath)
	if err != nil {
		log.Printf("ocr: extraction failed for %s, continuing without text: %v", imagePath, err)
		return emptyAnnotations()
	}
	return e.classify(raw, items)
}

// ExtractAnnotationsFromRegion performs OCR on a rectangular region of
// an already loaded image. Positions in the result are relative to the
// original image, not the crop.
func (e *Extractor) ExtractAnnotationsFromRegion(img image.Image, x1, y1, x2, y2 int) *Annotations {
	cropped := imaging.Crop(img, image.Rect(x1, y1, x2, y2))

	tmpFile, err := os.CreateTemp("", "ocr-region-*.png")
	if err != nil {
		log.Printf("ocr: temp file creation failed, continuing without text: %v", err)
		return emptyAnnotations()
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, cropped); err != nil {
		tmpFile.Close()
		log.Printf("ocr: temp image encode failed, continuing without text: %v", err)
		return emptyAnnotations()
	}
	tmpFile.Close()

	result := e.ExtractAnnotations(tmpPath)

	for i := range result.TextItems {
		result.TextItems[i].Position.X += x1
		result.TextItems[i].Position.Y += y1
	}
	return result
}

// recognize runs Tesseract over the image file and returns the raw text
// plus the word items above the confidence floor.
func (e *Extractor) recognize(imagePath string) (string, []TextItem, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.cfg.Language); err != nil {
		return "", nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Word boxes can fail on some Tesseract builds; keep the text.
		return text, []TextItem{}, nil
	}

	items := make([]TextItem, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		confidence := float64(box.Confidence)
		if confidence < e.cfg.MinConfidence {
			continue
		}
		items = append(items, TextItem{
			Text:       box.Word,
			Confidence: confidence,
			Position: Position{
				X:      box.Box.Min.X,
				Y:      box.Box.Min.Y,
				Width:  box.Box.Dx(),
				Height: box.Box.Dy(),
			},
		})
	}

	return text, items, nil
}

// classify builds the full Annotations value from recognized text.
func (e *Extractor) classify(raw string, items []TextItem) *Annotations {
	return &Annotations{
		TextItems:       items,
		RawText:         raw,
		DimensionTokens: FindDimensionTokens(raw),
		TechnicalTerms:  FindTechnicalTerms(raw),
	}
}

func emptyAnnotations() *Annotations {
	return &Annotations{
		TextItems:       []TextItem{},
		DimensionTokens: []string{},
		TechnicalTerms:  []string{},
	}
}
