package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const openRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterProvider calls the OpenRouter chat-completions API. It
// serves both the catalog's native OpenRouter models and the last-hop
// fallback of the Gemini-direct cascade.
type OpenRouterProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client

	// Referer and Title identify the application to OpenRouter.
	Referer string
	Title   string
}

// NewOpenRouterProvider creates a provider using the given API key.
func NewOpenRouterProvider(apiKey string) *OpenRouterProvider {
	return &OpenRouterProvider{
		apiKey:   apiKey,
		endpoint: openRouterEndpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
		Referer:  "https://drafthaus.dev",
		Title:    "cadlens",
	}
}

func (p *OpenRouterProvider) Name() string { return ProviderOpenRouter }

type openRouterContentPart struct {
	Type     string              `json:"type"`
	Text     string              `json:"text,omitempty"`
	ImageURL *openRouterImageURL `json:"image_url,omitempty"`
}

type openRouterImageURL struct {
	URL string `json:"url"`
}

type openRouterMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type openRouterRequest struct {
	Model    string              `json:"model"`
	Messages []openRouterMessage `json:"messages"`
}

type openRouterResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate issues one chat-completion call. Images travel as base64
// data URLs inside the message content.
func (p *OpenRouterProvider) Generate(ctx context.Context, req Request) (string, error) {
	if p.apiKey == "" {
		return "", &UnavailableError{Message: "no OpenRouter API key configured"}
	}

	var content any = req.Prompt
	if len(req.Image) > 0 {
		encoded := base64.StdEncoding.EncodeToString(req.Image)
		content = []openRouterContentPart{
			{Type: "text", Text: req.Prompt},
			{Type: "image_url", ImageURL: &openRouterImageURL{
				URL: "data:image/png;base64," + encoded,
			}},
		}
	}

	payload, err := json.Marshal(openRouterRequest{
		Model:    req.Model,
		Messages: []openRouterMessage{{Role: "user", Content: content}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("HTTP-Referer", p.Referer)
	httpReq.Header.Set("X-Title", p.Title)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &UnavailableError{Message: "OpenRouter request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &UnavailableError{Message: "failed to read OpenRouter response", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &RateLimitError{Message: string(truncateBytes(body, 200))}
	case resp.StatusCode != http.StatusOK:
		return "", &UnavailableError{
			Message: fmt.Sprintf("OpenRouter error (%d): %s", resp.StatusCode, truncateBytes(body, 200)),
		}
	}

	var decoded openRouterResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &UnavailableError{Message: "failed to decode OpenRouter response", Err: err}
	}
	if len(decoded.Choices) == 0 {
		return "", &UnavailableError{Message: "OpenRouter response carried no choices"}
	}
	return decoded.Choices[0].Message.Content, nil
}

func truncateBytes(b []byte, limit int) []byte {
	if len(b) <= limit {
		return b
	}
	return b[:limit]
}
