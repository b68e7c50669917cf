// Package providers implements the model API backends for the
// assistant. Importing the package registers them via init().
package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/mybussiness/bazaar/assistant"
)

// GeminiProvider implements the Google Generative Language API.
type GeminiProvider struct{}

func init() {
	assistant.RegisterProvider(&GeminiProvider{})
}

// Name returns the provider identifier.
func (g *GeminiProvider) Name() string {
	return "gemini"
}

// BuildURL constructs the generateContent endpoint for the model.
// Streaming uses the SSE variant.
func (g *GeminiProvider) BuildURL(baseURL, model string, stream bool) string {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	if stream {
		return fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", baseURL, model)
	}
	return fmt.Sprintf("%s/models/%s:generateContent", baseURL, model)
}

// SetHeaders adds the API key header. GEMINI_API_KEY is preferred;
// API_KEY is honoured as a legacy alias.
func (g *GeminiProvider) SetHeaders(req *http.Request) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("API_KEY")
	}
	if apiKey != "" {
		req.Header.Set("x-goog-api-key", apiKey)
	}
}

// Gemini request/response wire types.

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// BuildRequestBody creates the Gemini JSON request body. The stream
// flag is carried in the URL, not the body.
func (g *GeminiProvider) BuildRequestBody(model, system string, messages []assistant.Message, temperature *float64, stream bool) ([]byte, error) {
	req := geminiRequest{}

	if system != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	for _, m := range messages {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		req.Contents = append(req.Contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Content}},
		})
	}
	if temperature != nil {
		req.GenerationConfig = &geminiGenerationConfig{Temperature: temperature}
	}

	return json.Marshal(req)
}

// ParseResponse extracts the generated text.
func (g *GeminiProvider) ParseResponse(body []byte, model string) (*assistant.Response, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini response has no candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	return &assistant.Response{
		Content: text.String(),
		Model:   model,
	}, nil
}

// ParseStreamEvent extracts the text increment from one SSE payload.
// The stream is done when a candidate carries a finish reason.
func (g *GeminiProvider) ParseStreamEvent(data []byte) (string, bool, error) {
	var resp geminiResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", false, fmt.Errorf("parse gemini stream event: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", false, nil
	}

	cand := resp.Candidates[0]
	var text strings.Builder
	for _, part := range cand.Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), cand.FinishReason != "", nil
}
