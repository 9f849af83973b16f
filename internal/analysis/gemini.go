package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const geminiEndpointBase = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiProvider calls the Google AI Studio generateContent API
// directly. The primary provider of the catalog's cascade.
type GeminiProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewGeminiProvider creates a provider using the given API key.
func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{
		apiKey:   apiKey,
		endpoint: geminiEndpointBase,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *GeminiProvider) Name() string { return ProviderGeminiDirect }

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate issues one generateContent call. Quota responses (HTTP 429
// or RESOURCE_EXHAUSTED status) surface as RateLimitError so the
// orchestrator can back off and cascade.
func (p *GeminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	if p.apiKey == "" {
		return "", &UnavailableError{Message: "no Google API key configured"}
	}

	parts := []geminiPart{{Text: req.Prompt}}
	if len(req.Image) > 0 {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: "image/png",
			Data:     base64.StdEncoding.EncodeToString(req.Image),
		}})
	}

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", p.endpoint, req.Model, p.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &UnavailableError{Message: "Gemini request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &UnavailableError{Message: "failed to read Gemini response", Err: err}
	}

	var decoded geminiResponse
	if err := json.Unmarshal(body, &decoded); err != nil && resp.StatusCode == http.StatusOK {
		return "", &UnavailableError{Message: "failed to decode Gemini response", Err: err}
	}

	if resp.StatusCode == http.StatusTooManyRequests || quotaStatus(&decoded) {
		return "", &RateLimitError{Message: string(truncateBytes(body, 200))}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &UnavailableError{
			Message: fmt.Sprintf("Gemini error (%d): %s", resp.StatusCode, truncateBytes(body, 200)),
		}
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", &UnavailableError{Message: "Gemini response carried no candidates"}
	}

	var text strings.Builder
	for _, part := range decoded.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

func quotaStatus(resp *geminiResponse) bool {
	return resp.Error != nil &&
		(resp.Error.Status == "RESOURCE_EXHAUSTED" || resp.Error.Code == 429)
}
