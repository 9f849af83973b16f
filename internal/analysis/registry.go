package analysis

import "sort"

// Provider identities in the model catalog.
const (
	ProviderGeminiDirect = "GEMINI_DIRECT"
	ProviderOpenRouter   = "OPENROUTER"
)

// Capability tags a model's strengths in the catalog.
type Capability string

const (
	CapVision       Capability = "vision"
	CapFast         Capability = "fast"
	CapLite         Capability = "lite"
	CapTechnical    Capability = "technical"
	CapReasoning    Capability = "reasoning"
	CapLargeContext Capability = "large_context"
	CapAdvanced     Capability = "advanced"
)

// ModelDescriptor describes one catalog model, including its declared
// single-hop fallback. Immutable after registry construction.
type ModelDescriptor struct {
	ID           string       `json:"id"`
	DisplayName  string       `json:"display_name"`
	Provider     string       `json:"provider"`
	Capabilities []Capability `json:"capabilities"`

	// FallbackProvider and FallbackModel declare where the cascade goes
	// when this model is exhausted; both empty means no fallback.
	FallbackProvider string `json:"fallback_provider,omitempty"`
	FallbackModel    string `json:"fallback_model,omitempty"`

	SupportsVision bool   `json:"supports_vision"`
	ContextWindow  string `json:"context_window"`
	Free           bool   `json:"free"`
	Notes          string `json:"notes,omitempty"`
}

// HasCapability reports whether the descriptor declares the capability.
func (d ModelDescriptor) HasCapability(want Capability) bool {
	for _, c := range d.Capabilities {
		if c == want {
			return true
		}
	}
	return false
}

// Registry is the closed, read-only model catalog. Safe for concurrent
// reads; never mutated after construction.
type Registry struct {
	models map[string]ModelDescriptor
}

// NewRegistry loads the model catalog.
//
// The Gemini-direct family carries the full cascade: flash falls back
// to flash-lite, which falls back to the free OpenRouter Gemini.
// OpenRouter models get no cascade beyond what is declared here.
func NewRegistry() *Registry {
	catalog := []ModelDescriptor{
		{
			ID:               "gemini-2.5-flash",
			DisplayName:      "Gemini 2.5 Flash",
			Provider:         ProviderGeminiDirect,
			Capabilities:     []Capability{CapVision, CapFast},
			FallbackProvider: ProviderGeminiDirect,
			FallbackModel:    "gemini-2.5-flash-lite",
			SupportsVision:   true,
			ContextWindow:    "1M tokens",
			Free:             true,
			Notes:            "Google AI Studio (recommended)",
		},
		{
			ID:               "gemini-2.5-flash-lite",
			DisplayName:      "Gemini 2.5 Flash Lite",
			Provider:         ProviderGeminiDirect,
			Capabilities:     []Capability{CapVision, CapFast, CapLite},
			FallbackProvider: ProviderOpenRouter,
			FallbackModel:    "google/gemini-2.0-flash-exp:free",
			SupportsVision:   true,
			ContextWindow:    "1M tokens",
			Free:             true,
			Notes:            "Lighter version, better for quota limits",
		},
		{
			ID:             "google/gemini-2.0-flash-exp:free",
			DisplayName:    "Gemini 2.0 Flash (OpenRouter)",
			Provider:       ProviderOpenRouter,
			Capabilities:   []Capability{CapVision, CapFast},
			SupportsVision: true,
			ContextWindow:  "1M tokens",
			Free:           true,
			Notes:          "OpenRouter fallback (rate limited)",
		},
		{
			ID:             "nvidia/nemotron-nano-12b-v2-vl:free",
			DisplayName:    "NVIDIA Nemotron Nano VL",
			Provider:       ProviderOpenRouter,
			Capabilities:   []Capability{CapVision, CapTechnical},
			SupportsVision: true,
			ContextWindow:  "32K tokens",
			Free:           true,
			Notes:          "Optimized for technical diagrams",
		},
		{
			ID:             "qwen/qwen-2.5-vl-7b-instruct:free",
			DisplayName:    "Qwen 2.5 VL 7B",
			Provider:       ProviderOpenRouter,
			Capabilities:   []Capability{CapVision, CapFast},
			SupportsVision: true,
			ContextWindow:  "32K tokens",
			Free:           true,
			Notes:          "Qwen vision model",
		},
		{
			ID:            "meta-llama/llama-3.3-70b-instruct:free",
			DisplayName:   "Llama 3.3 70B Instruct",
			Provider:      ProviderOpenRouter,
			Capabilities:  []Capability{CapReasoning, CapLargeContext},
			ContextWindow: "128K tokens",
			Free:          true,
			Notes:         "Best free text model",
		},
		{
			ID:            "google/gemma-3-27b-it:free",
			DisplayName:   "Gemma 3 27B IT",
			Provider:      ProviderOpenRouter,
			Capabilities:  []Capability{CapReasoning, CapFast},
			ContextWindow: "8K tokens",
			Free:          true,
			Notes:         "Fast Google model",
		},
		{
			ID:            "openai/gpt-oss-20b:free",
			DisplayName:   "GPT OSS 20B",
			Provider:      ProviderOpenRouter,
			Capabilities:  []Capability{CapReasoning},
			ContextWindow: "16K tokens",
			Free:          true,
			Notes:         "Open source GPT-style",
		},
		{
			ID:            "deepseek/deepseek-r1",
			DisplayName:   "DeepSeek R1",
			Provider:      ProviderOpenRouter,
			Capabilities:  []Capability{CapReasoning, CapAdvanced},
			ContextWindow: "64K tokens",
			Free:          false,
			Notes:         "Excellent reasoning (paid)",
		},
		{
			ID:            "qwen/qwen3-235b-a22b",
			DisplayName:   "Qwen 3 235B",
			Provider:      ProviderOpenRouter,
			Capabilities:  []Capability{CapReasoning, CapAdvanced},
			ContextWindow: "32K tokens",
			Free:          false,
			Notes:         "Large reasoning model (paid)",
		},
	}

	models := make(map[string]ModelDescriptor, len(catalog))
	for _, d := range catalog {
		models[d.ID] = d
	}
	return &Registry{models: models}
}

// Lookup resolves a model id.
func (r *Registry) Lookup(id string) (ModelDescriptor, bool) {
	d, ok := r.models[id]
	return d, ok
}

// List returns all descriptors sorted by id.
func (r *Registry) List() []ModelDescriptor {
	out := make([]ModelDescriptor, 0, len(r.models))
	for _, d := range r.models {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// VisionModels returns the vision-capable descriptors sorted by id.
func (r *Registry) VisionModels() []ModelDescriptor {
	out := make([]ModelDescriptor, 0)
	for _, d := range r.List() {
		if d.SupportsVision {
			out = append(out, d)
		}
	}
	return out
}
