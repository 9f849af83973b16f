package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drafthaus/cadlens/internal/analysis"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "cad_manifests", cfg.ManifestDir)
	assert.Equal(t, 5, cfg.Detection.MinCircleRadius)
	assert.Equal(t, 200, cfg.Detection.MaxCircleRadius)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Equal(t, 30.0, cfg.OCR.MinConfidence)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, time.Second, cfg.InterPassDelay)
	assert.Equal(t, 1.0, cfg.CallsPerSecond)
	assert.Empty(t, cfg.GoogleAPIKey)
	assert.Empty(t, cfg.OpenRouterAPIKey)
}

func TestLoad_EnvironmentKeys(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "g-key")
	t.Setenv("OPENROUTER_API_KEY", "or-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "g-key", cfg.GoogleAPIKey)
	assert.Equal(t, "or-key", cfg.OpenRouterAPIKey)
}

func TestLoad_TOMLOverrides(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	path := filepath.Join(t.TempDir(), "cadlens.toml")
	content := `
manifest_dir = "out/manifests"

[detection]
min_circle_radius = 8
min_line_length = 40

[ocr]
language = "eng+deu"
min_confidence = 55.0

[analysis]
max_attempts = 5
inter_pass_delay_seconds = 0.25
calls_per_second = 2.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out/manifests", cfg.ManifestDir)
	assert.Equal(t, 8, cfg.Detection.MinCircleRadius)
	assert.Equal(t, 40, cfg.Detection.MinLineLength)
	// Unset keys keep their defaults.
	assert.Equal(t, 200, cfg.Detection.MaxCircleRadius)
	assert.Equal(t, 20, cfg.Detection.MinCircleDistance)

	assert.Equal(t, "eng+deu", cfg.OCR.Language)
	assert.Equal(t, 55.0, cfg.OCR.MinConfidence)

	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.InterPassDelay)
	assert.Equal(t, 2.0, cfg.CallsPerSecond)
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cadlens.toml")
	require.NoError(t, os.WriteFile(path, []byte("[detection\nbroken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_Providers(t *testing.T) {
	cfg := &Config{GoogleAPIKey: "g", OpenRouterAPIKey: "or"}

	providers := cfg.Providers()
	require.Contains(t, providers, analysis.ProviderGeminiDirect)
	require.Contains(t, providers, analysis.ProviderOpenRouter)
	assert.Equal(t, analysis.ProviderGeminiDirect, providers[analysis.ProviderGeminiDirect].Name())
	assert.Equal(t, analysis.ProviderOpenRouter, providers[analysis.ProviderOpenRouter].Name())
}

func TestConfig_OrchestratorOptions(t *testing.T) {
	cfg := &Config{MaxAttempts: 4, InterPassDelay: time.Second, CallsPerSecond: 1}

	opts := cfg.OrchestratorOptions()
	assert.Len(t, opts, 3)
}
