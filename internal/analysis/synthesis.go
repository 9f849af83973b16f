package analysis

import (
	"context"
	"fmt"
	"strings"
)

// Synthesis is the executive summary distilled from the successful
// passes. Succeeded false means the summarization call itself exhausted
// its cascade; the per-pass results remain valid.
type Synthesis struct {
	SummaryText     string `json:"summary_text"`
	SourcePassCount int    `json:"source_pass_count"`
	Succeeded       bool   `json:"succeeded"`
}

// degradedSummary is the placeholder carried when synthesis exhausts
// all providers.
const degradedSummary = "Synthesis generation failed"

// synthesize concatenates the successful pass texts under section
// headers and runs a summarization call through the same cascade.
// Callers guard on at least one success.
func (o *Orchestrator) synthesize(ctx context.Context, results []PassResult, modelID string) Synthesis {
	var sections []string
	count := 0
	for _, r := range results {
		if !r.Succeeded {
			continue
		}
		sections = append(sections, fmt.Sprintf("=== %s ===\n%s", strings.ToUpper(r.PassName), r.Text))
		count++
	}
	if count == 0 {
		return Synthesis{SummaryText: degradedSummary}
	}

	prompt := fmt.Sprintf(`Based on these multiple detailed analyses of the same CAD drawing, create a comprehensive executive summary:

%s

Provide:
1. **Drawing Identity**: Type, purpose, and primary application
2. **Key Specifications**: Most critical dimensions and specifications
3. **Notable Features**: Top 5-7 most important elements
4. **Technical Assessment**: Overall quality and completeness rating
5. **Critical Information**: Must-know details for anyone using this drawing

Be concise but complete. This should be the "executive briefing" on this drawing.`,
		strings.Join(sections, "\n\n"))

	result := o.RunPass(ctx, "synthesis", prompt, nil, modelID)
	if !result.Succeeded {
		return Synthesis{
			SummaryText:     degradedSummary,
			SourcePassCount: count,
		}
	}

	return Synthesis{
		SummaryText:     result.Text,
		SourcePassCount: count,
		Succeeded:       true,
	}
}
