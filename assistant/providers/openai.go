package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/mybussiness/bazaar/assistant"
)

// OpenAIProvider implements the OpenAI chat completions API. Any
// OpenAI-compatible endpoint (OpenRouter, local inference servers)
// works through a custom base URL.
type OpenAIProvider struct{}

func init() {
	assistant.RegisterProvider(&OpenAIProvider{})
}

// Name returns the provider identifier.
func (o *OpenAIProvider) Name() string {
	return "openai"
}

// BuildURL constructs the chat completions endpoint.
func (o *OpenAIProvider) BuildURL(baseURL, model string, stream bool) string {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	if strings.HasSuffix(baseURL, "/chat/completions") {
		return baseURL
	}
	return baseURL + "/chat/completions"
}

// SetHeaders adds OpenAI authentication headers.
func (o *OpenAIProvider) SetHeaders(req *http.Request) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
}

// OpenAI request/response wire types.

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature *float64        `json:"temperature,omitempty"`
	Stream      bool            `json:"stream,omitempty"`
}

type openAIChoice struct {
	Message openAIMessage `json:"message"`
	Delta   openAIMessage `json:"delta"`
}

type openAIResponse struct {
	Model   string         `json:"model"`
	Choices []openAIChoice `json:"choices"`
}

// BuildRequestBody creates the OpenAI JSON request body.
func (o *OpenAIProvider) BuildRequestBody(model, system string, messages []assistant.Message, temperature *float64, stream bool) ([]byte, error) {
	req := openAIRequest{
		Model:       model,
		Temperature: temperature,
		Stream:      stream,
	}
	if system != "" {
		req.Messages = append(req.Messages, openAIMessage{Role: "system", Content: system})
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openAIMessage{Role: m.Role, Content: m.Content})
	}

	return json.Marshal(req)
}

// ParseResponse extracts the generated text.
func (o *OpenAIProvider) ParseResponse(body []byte, model string) (*assistant.Response, error) {
	var resp openAIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse openai response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai response has no choices")
	}

	usedModel := resp.Model
	if usedModel == "" {
		usedModel = model
	}
	return &assistant.Response{
		Content: resp.Choices[0].Message.Content,
		Model:   usedModel,
	}, nil
}

// ParseStreamEvent extracts the text delta from one SSE payload.
// "[DONE]" terminates the stream.
func (o *OpenAIProvider) ParseStreamEvent(data []byte) (string, bool, error) {
	if strings.TrimSpace(string(data)) == "[DONE]" {
		return "", true, nil
	}

	var resp openAIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", false, fmt.Errorf("parse openai stream event: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", false, nil
	}
	return resp.Choices[0].Delta.Content, false, nil
}
