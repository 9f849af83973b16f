package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Request is one generation call. Image is optional PNG bytes;
// text-only requests are first-class.
type Request struct {
	Prompt string
	Image  []byte
	Model  string
}

// Provider is the uniform generation contract the orchestrator
// dispatches through. Implementations map their backend's failure modes
// onto the error taxonomy below.
type Provider interface {
	// Name identifies the provider in the registry (e.g. "GEMINI_DIRECT").
	Name() string

	// Generate performs one model call and returns the response text.
	Generate(ctx context.Context, req Request) (string, error)
}

// RateLimitError reports a provider-side quota or rate limit. Transient;
// the orchestrator backs off and retries before falling back.
type RateLimitError struct {
	Message string

	// WaitHint is the wait the provider suggested, when it gave a
	// structured one. Zero means none; the orchestrator then parses
	// Message or uses the default backoff.
	WaitHint time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: %s", e.Message)
}

// UnavailableError reports a transport, auth or server failure. Not
// retried against the same model; the orchestrator moves to the next
// cascade candidate immediately.
type UnavailableError struct {
	Message string
	Err     error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider unavailable: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("provider unavailable: %s", e.Message)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// ErrAllProvidersExhausted marks a pass whose entire cascade failed.
// Terminal for that pass only; sibling passes still run.
var ErrAllProvidersExhausted = errors.New("all providers exhausted")
