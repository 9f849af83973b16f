package detection

import (
	"image"
	"log"
)

// Config holds the detection tuning constants.
//
// The defaults match the values the detectors were calibrated with;
// change them only for unusually small or large renders.
type Config struct {
	// MinCircleRadius is the smallest circle radius considered, in pixels.
	MinCircleRadius int

	// MaxCircleRadius bounds the Hough search space, in pixels.
	MaxCircleRadius int

	// MinCircleDistance is the minimum center distance between two
	// reported circles; closer detections are merged.
	MinCircleDistance int

	// MinLineLength is the shortest reported line segment, in pixels.
	MinLineLength int

	// EdgeThresholdLow and EdgeThresholdHigh are the Canny hysteresis
	// thresholds on the 0-255 scale.
	EdgeThresholdLow  int
	EdgeThresholdHigh int
}

// DefaultConfig returns the standard detection tuning.
func DefaultConfig() Config {
	return Config{
		MinCircleRadius:   5,
		MaxCircleRadius:   200,
		MinCircleDistance: 20,
		MinLineLength:     20,
		EdgeThresholdLow:  50,
		EdgeThresholdHigh: 150,
	}
}

// Detector runs the shape, line and complexity detectors over a raster
// drawing. A zero-cost value type; safe for concurrent use.
type Detector struct {
	cfg Config
}

// New creates a Detector with the given configuration.
func New(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Features is the combined output of one detection run.
type Features struct {
	Shapes     ShapesResult     `json:"shapes"`
	Lines      LinesResult      `json:"lines"`
	Complexity ComplexityResult `json:"complexity"`
}

// Detect runs all detectors over an image.
//
// Each stage is isolated: a stage that fails is replaced with a zeroed
// result and logged, and the remaining stages still run. Detect never
// returns an error; a fully zeroed Features value is the worst case.
func (d *Detector) Detect(img image.Image) *Features {
	f := &Features{}

	runStage("shapes", func() {
		f.Shapes = *d.DetectShapes(img)
	})
	runStage("lines", func() {
		f.Lines = *d.DetectLines(img)
	})
	runStage("complexity", func() {
		f.Complexity = *d.MeasureComplexity(img)
	})

	return f
}

// runStage executes one detection stage, converting a panic into a
// logged skip so a single detector cannot sink the whole extraction.
func runStage(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("detection: %s stage failed, using zeroed result: %v", name, r)
		}
	}()
	fn()
}
