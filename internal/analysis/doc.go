// Package analysis orchestrates LLM analysis of extracted drawing
// features across multiple providers with rate-limit aware retry and
// cascading fallback.
//
// The moving parts:
//
//   - Registry: the closed, immutable catalog of ModelDescriptors,
//     including each model's declared fallback chain.
//   - Provider: the uniform generation contract HTTP backends implement
//     (Gemini direct, OpenRouter).
//   - Orchestrator: the per-pass state machine. A pass tries its
//     primary model, retries on rate limits with parsed backoff, and
//     walks the declared fallback cascade before marking the pass
//     exhausted. Exhaustion is terminal for that pass only.
//   - Synthesis: a final summarization call over the successful passes,
//     itself subject to the same cascade rules.
//
// A full analysis is five sequential passes (overview, technical,
// components, measurements, quality). Partial reports are first-class
// results: a request with zero successful passes still yields a report.
//
// Timing is injected through the Clock interface so retry and pacing
// logic tests run without wall-clock sleeps.
package analysis
