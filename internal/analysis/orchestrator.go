package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"
)

// Error kinds recorded on failed pass results.
const (
	ErrKindRateLimited = "rate_limited"
	ErrKindUnavailable = "unavailable"
	ErrKindExhausted   = "exhausted"
)

// PassResult is the outcome of one analysis pass.
type PassResult struct {
	PassName  string `json:"pass_name"`
	Succeeded bool   `json:"succeeded"`
	Text      string `json:"text,omitempty"`

	// ErrorKind is set on failure; one of the ErrKind constants.
	ErrorKind string `json:"error_kind,omitempty"`

	// ErrorDetail carries the last error message on failure.
	ErrorDetail string `json:"error_detail,omitempty"`

	// ProviderUsed names the provider and model that produced Text.
	ProviderUsed string `json:"provider_used,omitempty"`
}

// analysisPasses is the fixed pass sequence of a full analysis.
var analysisPasses = []struct {
	Name   string
	Prompt string
}{
	{"overview", "Analyze this CAD: 1) type 2) purpose 3) complexity 4) key features"},
	{"technical", "Technical aspects: 1) dimensions 2) standards 3) annotations 4) units"},
	{"components", "Components: 1) major parts 2) relationships 3) materials 4) features"},
	{"measurements", "Measurements: 1) critical dims 2) tolerances 3) angles 4) constraints"},
	{"quality", "Quality: 1) clarity 2) completeness 3) issues 4) recommendations"},
}

const (
	// defaultMaxAttempts bounds rate-limit retries per (model, pass).
	defaultMaxAttempts = 3

	// defaultInterPassDelay is the pause between sequential passes.
	defaultInterPassDelay = time.Second
)

// Orchestrator drives the per-pass retry/fallback state machine over
// the registered providers. Construct with NewOrchestrator; the zero
// value is not usable.
type Orchestrator struct {
	registry  *Registry
	providers map[string]Provider

	clock          Clock
	limiter        *rate.Limiter
	maxAttempts    int
	interPassDelay time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock injects a Clock; tests use a fake to avoid wall-clock
// sleeps.
func WithClock(c Clock) Option {
	return func(o *Orchestrator) { o.clock = c }
}

// WithLimiter sets the provider-call pacing limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(o *Orchestrator) { o.limiter = l }
}

// WithMaxAttempts bounds rate-limit retries per (model, pass).
func WithMaxAttempts(n int) Option {
	return func(o *Orchestrator) { o.maxAttempts = n }
}

// WithInterPassDelay sets the pause between sequential passes.
func WithInterPassDelay(d time.Duration) Option {
	return func(o *Orchestrator) { o.interPassDelay = d }
}

// NewOrchestrator wires a registry to the available providers, keyed by
// provider name. Models whose provider has no entry are unreachable and
// skipped during cascades.
func NewOrchestrator(registry *Registry, providers map[string]Provider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry:       registry,
		providers:      providers,
		clock:          realClock{},
		limiter:        rate.NewLimiter(rate.Every(time.Second), 1),
		maxAttempts:    defaultMaxAttempts,
		interPassDelay: defaultInterPassDelay,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// candidate is one (provider, model) stop on a cascade.
type candidate struct {
	provider string
	model    string
}

// cascadeFor resolves a model's full fallback chain by walking the
// declared single-hop fallbacks transitively. A visited set guards
// against catalog cycles.
func (o *Orchestrator) cascadeFor(modelID string) []candidate {
	chain := []candidate{}
	visited := make(map[string]bool)

	id := modelID
	for id != "" && !visited[id] {
		visited[id] = true
		desc, ok := o.registry.Lookup(id)
		if !ok {
			break
		}
		chain = append(chain, candidate{provider: desc.Provider, model: desc.ID})
		id = desc.FallbackModel
	}
	return chain
}

// RunPass executes one analysis pass through the cascade state machine.
//
// Per candidate: rate-limit errors back off (parsed wait, capped) and
// retry up to maxAttempts; unavailable errors fall through to the next
// candidate immediately. A cascade that ends without success yields a
// failed result marked exhausted. RunPass never returns an error; the
// failure mode lives in the result.
func (o *Orchestrator) RunPass(ctx context.Context, passName, prompt string, image []byte, modelID string) PassResult {
	cascade := o.cascadeFor(modelID)
	if len(cascade) == 0 {
		return PassResult{
			PassName:    passName,
			ErrorKind:   ErrKindExhausted,
			ErrorDetail: fmt.Sprintf("unknown model %q: %v", modelID, ErrAllProvidersExhausted),
		}
	}

	var lastErr error

	for _, cand := range cascade {
		provider, ok := o.providers[cand.provider]
		if !ok {
			log.Printf("analysis: no %s provider configured, skipping %s", cand.provider, cand.model)
			continue
		}

		for attempt := 1; attempt <= o.maxAttempts; attempt++ {
			if err := o.limiter.Wait(ctx); err != nil {
				return o.failedPass(passName, err)
			}

			text, err := provider.Generate(ctx, Request{Prompt: prompt, Image: image, Model: cand.model})
			if err == nil {
				return PassResult{
					PassName:     passName,
					Succeeded:    true,
					Text:         text,
					ProviderUsed: fmt.Sprintf("%s %s", cand.provider, cand.model),
				}
			}
			lastErr = err

			var rl *RateLimitError
			if errors.As(err, &rl) {
				if attempt == o.maxAttempts {
					break // this model's quota is gone, try the fallback
				}
				wait := BackoffFor(err)
				log.Printf("analysis: %s rate limited on %s, waiting %s (attempt %d/%d)",
					passName, cand.model, wait, attempt, o.maxAttempts)
				if err := o.clock.Sleep(ctx, wait); err != nil {
					return o.failedPass(passName, err)
				}
				continue
			}

			// Unavailable or unexpected: no point retrying this model.
			log.Printf("analysis: %s failed on %s: %v", passName, cand.model, err)
			break
		}
	}

	detail := ErrAllProvidersExhausted.Error()
	if lastErr != nil {
		detail = fmt.Sprintf("%v (last error: %v)", ErrAllProvidersExhausted, lastErr)
	}
	return PassResult{
		PassName:    passName,
		ErrorKind:   ErrKindExhausted,
		ErrorDetail: detail,
	}
}

// failedPass records a context cancellation as a failed result so the
// caller can still assemble a partial report.
func (o *Orchestrator) failedPass(passName string, err error) PassResult {
	return PassResult{
		PassName:    passName,
		ErrorKind:   ErrKindExhausted,
		ErrorDetail: err.Error(),
	}
}

// Analyze runs the full pass sequence against one model cascade and
// assembles the report.
//
// Passes run sequentially with an inter-pass delay to respect provider
// rate limits. Cancellation stops further passes from starting; the
// partial report is a valid result. Synthesis runs only when at least
// one pass succeeded.
func (o *Orchestrator) Analyze(ctx context.Context, featureText string, image []byte, modelID string) *AnalysisReport {
	report := NewAnalysisReport(modelID)
	if desc, ok := o.registry.Lookup(modelID); ok {
		report.ModelName = desc.DisplayName
	}

	for i, pass := range analysisPasses {
		if ctx.Err() != nil {
			break
		}

		prompt := pass.Prompt
		if featureText != "" {
			prompt = pass.Prompt + "\n\n" + featureText
		}

		result := o.RunPass(ctx, pass.Name, prompt, image, modelID)
		report.Record(result)

		if i < len(analysisPasses)-1 && ctx.Err() == nil {
			if err := o.clock.Sleep(ctx, o.interPassDelay); err != nil {
				break
			}
		}
	}

	if report.SuccessCount() > 0 {
		synthesis := o.synthesize(ctx, report.Passes, modelID)
		report.Synthesis = &synthesis
	}

	return report
}

// PassNames lists the canonical pass sequence.
func PassNames() []string {
	names := make([]string, len(analysisPasses))
	for i, p := range analysisPasses {
		names[i] = p.Name
	}
	return names
}
