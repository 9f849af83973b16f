package analysis

import (
	"fmt"
	"strings"
)

// PassError is one irrecoverably failed pass in a report's error list.
type PassError struct {
	Pass  string `json:"pass"`
	Error string `json:"error"`
}

// AnalysisReport is the complete result of one analysis request:
// ordered pass results, the optional synthesis, and the failed-pass
// list. A report exists for every well-formed request, even when every
// pass failed.
type AnalysisReport struct {
	ImagePath string `json:"image_path,omitempty"`
	ModelID   string `json:"model_id"`
	ModelName string `json:"model_name,omitempty"`

	Passes    []PassResult `json:"passes"`
	Synthesis *Synthesis   `json:"synthesis,omitempty"`
	Errors    []PassError  `json:"errors"`
}

// NewAnalysisReport creates an empty report for a model.
func NewAnalysisReport(modelID string) *AnalysisReport {
	return &AnalysisReport{
		ModelID: modelID,
		Passes:  []PassResult{},
		Errors:  []PassError{},
	}
}

// Record appends a pass result, mirroring failures into the error list.
func (r *AnalysisReport) Record(result PassResult) {
	r.Passes = append(r.Passes, result)
	if !result.Succeeded {
		r.Errors = append(r.Errors, PassError{
			Pass:  result.PassName,
			Error: result.ErrorDetail,
		})
	}
}

// SuccessCount reports how many passes succeeded.
func (r *AnalysisReport) SuccessCount() int {
	n := 0
	for _, p := range r.Passes {
		if p.Succeeded {
			n++
		}
	}
	return n
}

const reportBar = 80

// Format renders the report as flat text for retrieval indexing:
// executive summary, per-pass sections and a metadata footer.
func (r *AnalysisReport) Format() string {
	heavy := strings.Repeat("=", reportBar)
	light := strings.Repeat("-", reportBar)

	var b strings.Builder
	b.WriteString(heavy + "\n")
	b.WriteString("COMPREHENSIVE CAD DRAWING ANALYSIS\n")
	b.WriteString(heavy + "\n\n")

	if r.Synthesis != nil && r.Synthesis.Succeeded {
		b.WriteString("EXECUTIVE SUMMARY\n")
		b.WriteString(light + "\n")
		b.WriteString(r.Synthesis.SummaryText + "\n\n")
	}

	b.WriteString("DETAILED ANALYSES\n")
	b.WriteString(heavy + "\n")

	for _, p := range r.Passes {
		if !p.Succeeded {
			continue
		}
		fmt.Fprintf(&b, "\n%s ANALYSIS\n", strings.ToUpper(p.PassName))
		b.WriteString(light + "\n")
		b.WriteString(p.Text + "\n")
	}

	b.WriteString("\nANALYSIS METADATA\n")
	b.WriteString(light + "\n")
	fmt.Fprintf(&b, "Image: %s\n", orUnknownStr(r.ImagePath))
	fmt.Fprintf(&b, "Model: %s\n", orUnknownStr(r.ModelID))
	fmt.Fprintf(&b, "Analyses Completed: %d", r.SuccessCount())

	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "\nErrors Encountered: %d", len(r.Errors))
	}

	return b.String()
}

func orUnknownStr(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
