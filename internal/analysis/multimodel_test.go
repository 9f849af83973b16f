package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareModels(t *testing.T) {
	gemini := &fakeProvider{name: ProviderGeminiDirect, handler: func(req Request) (string, error) {
		return "vision says: bracket", nil
	}}
	openRouter := &fakeProvider{name: ProviderOpenRouter, handler: func(req Request) (string, error) {
		return "text says: bracket", nil
	}}
	o, _ := newTestOrchestrator(map[string]Provider{
		ProviderGeminiDirect: gemini,
		ProviderOpenRouter:   openRouter,
	})

	result := o.CompareModels(context.Background(), "FEATURES", []byte("png"),
		"gemini-2.5-flash",
		[]string{"meta-llama/llama-3.3-70b-instruct:free", "google/gemma-3-27b-it:free"})

	require.Len(t, result.Reports, 3)
	for _, report := range result.Reports {
		require.NotNil(t, report)
		assert.Equal(t, 5, report.SuccessCount())
	}

	assert.Equal(t, "gemini-2.5-flash", result.Reports[0].ModelID)
	assert.Equal(t, "meta-llama/llama-3.3-70b-instruct:free", result.Reports[1].ModelID)
	assert.Equal(t, "google/gemma-3-27b-it:free", result.Reports[2].ModelID)

	assert.True(t, result.Synthesis.Succeeded)
	assert.Equal(t, 3, result.Synthesis.SourcePassCount)
}

func TestCompareModels_TextModelsGetNoImage(t *testing.T) {
	openRouter := &fakeProvider{name: ProviderOpenRouter, handler: func(req Request) (string, error) {
		return "ok", nil
	}}
	gemini := &fakeProvider{name: ProviderGeminiDirect, handler: func(req Request) (string, error) {
		return "ok", nil
	}}
	o, _ := newTestOrchestrator(map[string]Provider{
		ProviderGeminiDirect: gemini,
		ProviderOpenRouter:   openRouter,
	})

	o.CompareModels(context.Background(), "", []byte("png"),
		"gemini-2.5-flash", []string{"openai/gpt-oss-20b:free"})

	openRouter.mu.Lock()
	defer openRouter.mu.Unlock()
	for _, call := range openRouter.calls {
		assert.Empty(t, call.Image, "text model %s received image bytes", call.Model)
	}
}

func TestCompareModels_SurvivesFailedModel(t *testing.T) {
	gemini := &fakeProvider{name: ProviderGeminiDirect, handler: func(req Request) (string, error) {
		return "vision result", nil
	}}
	openRouter := &fakeProvider{name: ProviderOpenRouter, handler: func(req Request) (string, error) {
		return "", &UnavailableError{Message: "down"}
	}}
	o, _ := newTestOrchestrator(map[string]Provider{
		ProviderGeminiDirect: gemini,
		ProviderOpenRouter:   openRouter,
	})

	result := o.CompareModels(context.Background(), "", nil,
		"gemini-2.5-flash", []string{"openai/gpt-oss-20b:free"})

	require.Len(t, result.Reports, 2)
	assert.Equal(t, 5, result.Reports[0].SuccessCount())
	assert.Equal(t, 0, result.Reports[1].SuccessCount())

	// The fold still runs from the surviving perspective.
	assert.True(t, result.Synthesis.Succeeded)
	assert.Equal(t, 1, result.Synthesis.SourcePassCount)
}

func TestPerspectiveText(t *testing.T) {
	assert.Empty(t, perspectiveText(nil))

	withSynthesis := NewAnalysisReport("m")
	withSynthesis.Synthesis = &Synthesis{SummaryText: "summary", Succeeded: true}
	assert.Equal(t, "summary", perspectiveText(withSynthesis))

	passOnly := NewAnalysisReport("m")
	passOnly.Record(PassResult{PassName: "overview", Succeeded: true, Text: "pass text"})
	assert.Equal(t, "pass text", perspectiveText(passOnly))

	failed := NewAnalysisReport("m")
	failed.Record(PassResult{PassName: "overview", ErrorKind: ErrKindExhausted})
	assert.Empty(t, perspectiveText(failed))
}
