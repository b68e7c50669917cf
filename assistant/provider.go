package assistant

import (
	"net/http"
	"sync"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // Message content
}

// Response contains a completed (non-streaming) generation result.
type Response struct {
	// Content is the generated text.
	Content string

	// Model is the model that produced it.
	Model string
}

// Provider defines the interface for model API implementations.
type Provider interface {
	// Name returns the provider identifier (e.g., "gemini", "openai").
	Name() string

	// BuildURL constructs the full API endpoint URL for the model.
	// stream selects the streaming variant of the endpoint.
	BuildURL(baseURL, model string, stream bool) string

	// SetHeaders adds provider-specific auth headers to the request.
	SetHeaders(req *http.Request)

	// BuildRequestBody creates the JSON request body. system is the
	// system instruction, empty to omit. temperature is nil to use the
	// provider default.
	BuildRequestBody(model, system string, messages []Message, temperature *float64, stream bool) ([]byte, error)

	// ParseResponse extracts the generated text from provider JSON.
	ParseResponse(body []byte, model string) (*Response, error)

	// ParseStreamEvent extracts the text increment from one SSE data
	// payload. done reports end of stream; empty text with done=false
	// means the event carried no text (keepalives, role deltas).
	ParseStreamEvent(data []byte) (text string, done bool, err error)
}

// providerRegistry holds registered providers.
var (
	providerRegistry = make(map[string]Provider)
	providerMu       sync.RWMutex
)

// RegisterProvider adds a provider to the registry.
func RegisterProvider(p Provider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	providerRegistry[p.Name()] = p
}

// GetProvider retrieves a provider by name.
func GetProvider(name string) Provider {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return providerRegistry[name]
}

// ListProviders returns all registered provider names.
func ListProviders() []string {
	providerMu.RLock()
	defer providerMu.RUnlock()

	names := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		names = append(names, name)
	}
	return names
}
