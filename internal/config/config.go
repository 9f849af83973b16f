// Package config loads runtime configuration from the environment and
// an optional TOML tuning file.
//
// Credentials come from the environment (a .env file is honored when
// present); numeric tuning lives in cadlens.toml. Everything has a
// working default, so a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/time/rate"

	"github.com/drafthaus/cadlens/internal/analysis"
	"github.com/drafthaus/cadlens/internal/detection"
	"github.com/drafthaus/cadlens/internal/ocr"
)

// DefaultFile is the tuning file looked for in the working directory.
const DefaultFile = "cadlens.toml"

// Config is the resolved runtime configuration. Constructed by Load and
// passed explicitly; there are no package-level globals.
type Config struct {
	GoogleAPIKey     string
	OpenRouterAPIKey string

	// ManifestDir is where CAD manifests are written.
	ManifestDir string

	Detection detection.Config
	OCR       ocr.Config

	// Analysis tuning.
	MaxAttempts    int
	InterPassDelay time.Duration
	CallsPerSecond float64
}

// fileConfig is the TOML shape of the tuning file. Zero values mean
// "keep the default".
type fileConfig struct {
	ManifestDir string `toml:"manifest_dir"`

	Detection struct {
		MinCircleRadius   int `toml:"min_circle_radius"`
		MaxCircleRadius   int `toml:"max_circle_radius"`
		MinCircleDistance int `toml:"min_circle_distance"`
		MinLineLength     int `toml:"min_line_length"`
		EdgeThresholdLow  int `toml:"edge_threshold_low"`
		EdgeThresholdHigh int `toml:"edge_threshold_high"`
	} `toml:"detection"`

	OCR struct {
		Language      string  `toml:"language"`
		MinConfidence float64 `toml:"min_confidence"`
	} `toml:"ocr"`

	Analysis struct {
		MaxAttempts           int     `toml:"max_attempts"`
		InterPassDelaySeconds float64 `toml:"inter_pass_delay_seconds"`
		CallsPerSecond        float64 `toml:"calls_per_second"`
	} `toml:"analysis"`
}

// Load builds the configuration: defaults, then the TOML file at path
// (skipped when absent), then environment credentials. An empty path
// uses DefaultFile.
func Load(path string) (*Config, error) {
	// A .env in the working directory is a convenience, not a
	// requirement.
	_ = godotenv.Load()

	cfg := &Config{
		ManifestDir:    "cad_manifests",
		Detection:      detection.DefaultConfig(),
		OCR:            ocr.DefaultConfig(),
		MaxAttempts:    3,
		InterPassDelay: time.Second,
		CallsPerSecond: 1,
	}

	if path == "" {
		path = DefaultFile
	}
	if err := applyFile(cfg, path); err != nil {
		return nil, err
	}

	cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	cfg.OpenRouterAPIKey = os.Getenv("OPENROUTER_API_KEY")

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if fc.ManifestDir != "" {
		cfg.ManifestDir = fc.ManifestDir
	}

	d := &cfg.Detection
	applyInt(&d.MinCircleRadius, fc.Detection.MinCircleRadius)
	applyInt(&d.MaxCircleRadius, fc.Detection.MaxCircleRadius)
	applyInt(&d.MinCircleDistance, fc.Detection.MinCircleDistance)
	applyInt(&d.MinLineLength, fc.Detection.MinLineLength)
	applyInt(&d.EdgeThresholdLow, fc.Detection.EdgeThresholdLow)
	applyInt(&d.EdgeThresholdHigh, fc.Detection.EdgeThresholdHigh)

	if fc.OCR.Language != "" {
		cfg.OCR.Language = fc.OCR.Language
	}
	if fc.OCR.MinConfidence > 0 {
		cfg.OCR.MinConfidence = fc.OCR.MinConfidence
	}

	applyInt(&cfg.MaxAttempts, fc.Analysis.MaxAttempts)
	if fc.Analysis.InterPassDelaySeconds > 0 {
		cfg.InterPassDelay = time.Duration(fc.Analysis.InterPassDelaySeconds * float64(time.Second))
	}
	if fc.Analysis.CallsPerSecond > 0 {
		cfg.CallsPerSecond = fc.Analysis.CallsPerSecond
	}

	return nil
}

func applyInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

// Providers builds the provider map from the configured credentials.
// Providers with no key are still registered; they fail as unavailable
// so the cascade can route around them.
func (c *Config) Providers() map[string]analysis.Provider {
	return map[string]analysis.Provider{
		analysis.ProviderGeminiDirect: analysis.NewGeminiProvider(c.GoogleAPIKey),
		analysis.ProviderOpenRouter:   analysis.NewOpenRouterProvider(c.OpenRouterAPIKey),
	}
}

// OrchestratorOptions translates the analysis tuning into orchestrator
// options.
func (c *Config) OrchestratorOptions() []analysis.Option {
	return []analysis.Option{
		analysis.WithMaxAttempts(c.MaxAttempts),
		analysis.WithInterPassDelay(c.InterPassDelay),
		analysis.WithLimiter(rate.NewLimiter(rate.Limit(c.CallsPerSecond), 1)),
	}
}
