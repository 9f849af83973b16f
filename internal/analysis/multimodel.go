package analysis

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// ComparativeResult holds the independent per-model reports of a
// comparative analysis plus the synthesis folding them together.
type ComparativeResult struct {
	// Reports is ordered: the vision model's report first, then the
	// text models in request order.
	Reports []*AnalysisReport `json:"reports"`

	Synthesis Synthesis `json:"synthesis"`
}

// CompareModels runs one vision-capable model plus any number of
// text-only models over the same feature payload.
//
// The per-model analyses are mutually independent and run concurrently,
// each on its own orchestrator clone so retry counters and pacing state
// are never shared. Text models receive no image bytes. The folded
// synthesis runs through the vision model's cascade.
func (o *Orchestrator) CompareModels(ctx context.Context, featureText string, image []byte, visionModel string, textModels []string) *ComparativeResult {
	reports := make([]*AnalysisReport, 1+len(textModels))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		reports[0] = o.clone().Analyze(ctx, featureText, image, visionModel)
	}()

	for i, model := range textModels {
		wg.Add(1)
		go func(slot int, modelID string) {
			defer wg.Done()
			reports[slot] = o.clone().Analyze(ctx, featureText, nil, modelID)
		}(i+1, model)
	}

	wg.Wait()

	// Fold the per-model syntheses (falling back to their overview
	// passes) into one comparative summary.
	perspectives := make([]PassResult, 0, len(reports))
	for _, report := range reports {
		text := perspectiveText(report)
		if text == "" {
			continue
		}
		perspectives = append(perspectives, PassResult{
			PassName:  report.ModelID,
			Succeeded: true,
			Text:      text,
		})
	}

	result := &ComparativeResult{Reports: reports}
	if len(perspectives) > 0 {
		result.Synthesis = o.synthesize(ctx, perspectives, visionModel)
	} else {
		result.Synthesis = Synthesis{SummaryText: degradedSummary}
	}
	return result
}

// perspectiveText picks a model's best contribution to the comparative
// fold: its synthesis when it produced one, otherwise its first
// successful pass.
func perspectiveText(report *AnalysisReport) string {
	if report == nil {
		return ""
	}
	if report.Synthesis != nil && report.Synthesis.Succeeded {
		return report.Synthesis.SummaryText
	}
	for _, p := range report.Passes {
		if p.Succeeded {
			return p.Text
		}
	}
	return ""
}

// clone copies the orchestrator with fresh pacing state.
func (o *Orchestrator) clone() *Orchestrator {
	return &Orchestrator{
		registry:       o.registry,
		providers:      o.providers,
		clock:          o.clock,
		limiter:        rate.NewLimiter(o.limiter.Limit(), o.limiter.Burst()),
		maxAttempts:    o.maxAttempts,
		interPassDelay: o.interPassDelay,
	}
}
