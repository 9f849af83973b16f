package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleReport() *AnalysisReport {
	r := NewAnalysisReport("gemini-2.5-flash")
	r.ImagePath = "/renders/bracket.png"
	r.Record(PassResult{PassName: "overview", Succeeded: true, Text: "a mounting bracket"})
	r.Record(PassResult{PassName: "technical", Succeeded: true, Text: "metric, ISO 2768"})
	r.Record(PassResult{PassName: "components", ErrorKind: ErrKindExhausted, ErrorDetail: "all providers exhausted"})
	r.Synthesis = &Synthesis{SummaryText: "executive view", SourcePassCount: 2, Succeeded: true}
	return r
}

func TestReport_Record(t *testing.T) {
	r := sampleReport()

	assert.Len(t, r.Passes, 3)
	assert.Equal(t, 2, r.SuccessCount())
	assert.Len(t, r.Errors, 1)
	assert.Equal(t, "components", r.Errors[0].Pass)
}

func TestReport_Format(t *testing.T) {
	text := sampleReport().Format()

	for _, want := range []string{
		"COMPREHENSIVE CAD DRAWING ANALYSIS",
		"EXECUTIVE SUMMARY",
		"executive view",
		"DETAILED ANALYSES",
		"OVERVIEW ANALYSIS",
		"a mounting bracket",
		"TECHNICAL ANALYSIS",
		"ANALYSIS METADATA",
		"Image: /renders/bracket.png",
		"Model: gemini-2.5-flash",
		"Analyses Completed: 2",
		"Errors Encountered: 1",
	} {
		assert.Contains(t, text, want)
	}

	// Failed passes contribute no analysis section.
	assert.NotContains(t, text, "COMPONENTS ANALYSIS")

	// Section bars render at full width.
	assert.Contains(t, text, strings.Repeat("=", 80))
	assert.Contains(t, text, strings.Repeat("-", 80))
}

func TestReport_Format_NoSynthesis(t *testing.T) {
	r := NewAnalysisReport("m")
	r.Record(PassResult{PassName: "overview", Succeeded: true, Text: "x"})

	text := r.Format()

	assert.NotContains(t, text, "EXECUTIVE SUMMARY")
	assert.Contains(t, text, "Analyses Completed: 1")
	assert.NotContains(t, text, "Errors Encountered")
}

func TestReport_Format_DegradedSynthesisOmitted(t *testing.T) {
	r := NewAnalysisReport("m")
	r.Record(PassResult{PassName: "overview", Succeeded: true, Text: "x"})
	r.Synthesis = &Synthesis{SummaryText: "Synthesis generation failed"}

	assert.NotContains(t, r.Format(), "EXECUTIVE SUMMARY")
}

func TestReport_EmptyStillFormats(t *testing.T) {
	r := NewAnalysisReport("m")

	text := r.Format()

	assert.Contains(t, text, "Analyses Completed: 0")
	assert.Contains(t, text, "Image: Unknown")
}
