package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mybussiness/bazaar/domain"
	"github.com/mybussiness/bazaar/metrics"
)

// Canned fallback text served when the model API fails. Callers see
// degraded-but-valid content; the Degraded flag is the side channel
// for code that needs to know.
const (
	FallbackPromotion = "Special offer available at MY BUSSINESS! High quality product at best price. Visit us today!"
	FallbackInsights  = "Focus on increasing stock for high-demand items like Basmati Rice and running a weekend promotion for local customers."
	FallbackChat      = "Maaf kijiyay, connectivity issue hay. Please try again."
)

// Greeting returns the opening assistant message for a user.
func Greeting(userName string) string {
	return fmt.Sprintf("Assalam-o-Alaikum %s! I am your MY BUSSINESS AI assistant. How can I help you grow your activities today?", userName)
}

// Metrics is the business snapshot handed to BusinessInsights.
type Metrics struct {
	Orders   int                 `json:"orders"`
	Products int                 `json:"products"`
	Rating   float64             `json:"rating"`
	Type     domain.BusinessType `json:"type"`
	Expenses decimal.Decimal     `json:"expenses"`
}

// Result is the outcome of an assistant operation. Degraded marks
// fallback content served after an API failure; absence of an error is
// not evidence of success.
type Result struct {
	Text     string
	Degraded bool
}

// Assistant generates promotional copy, insights and chat replies.
type Assistant struct {
	client  *Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// WithMetrics wires the metric set updated per operation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Assistant) {
		a.metrics = m
	}
}

// New creates an assistant over the given client.
func New(client *Client, opts ...Option) *Assistant {
	a := &Assistant{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GeneratePromotion writes marketing copy for a product. Never returns
// an error; failures degrade to FallbackPromotion.
func (a *Assistant) GeneratePromotion(ctx context.Context, productName string, businessType domain.BusinessType) Result {
	prompt := fmt.Sprintf(`Create a catchy, high-conversion marketing promotion for a product named %q from a %q business in Pakistan. Use localized persuasive language (English/Urdu mix where effective). Mention price in PKR. Keep it under 100 words and use emojis appropriate for Pakistani social media. Promote as part of the MY BUSSINESS network.`,
		productName, string(businessType))

	return a.complete(ctx, "promotion", prompt, FallbackPromotion)
}

// BusinessInsights produces growth tips from a business snapshot.
// Never returns an error; failures degrade to FallbackInsights.
func (a *Assistant) BusinessInsights(ctx context.Context, m Metrics) Result {
	data, err := json.Marshal(m)
	if err != nil {
		// Snapshot types marshal cleanly; treat this like an API failure.
		a.countFallback("insights")
		return Result{Text: FallbackInsights, Degraded: true}
	}

	prompt := fmt.Sprintf(`Analyze this business data for a Pakistani small business: %s. Provide 3 concrete, actionable growth tips. Focus on local market trends, inventory optimization, and customer retention within the MY BUSSINESS ecosystem. Keep it concise.`,
		string(data))

	return a.complete(ctx, "insights", prompt, FallbackInsights)
}

func (a *Assistant) complete(ctx context.Context, operation, prompt, fallback string) Result {
	if a.metrics != nil {
		a.metrics.AssistantRequests.WithLabelValues(operation).Inc()
	}

	resp, err := a.client.Complete(ctx, "", []Message{{Role: "user", Content: prompt}})
	if err != nil {
		a.logger.Warn("Assistant call degraded to fallback",
			"operation", operation,
			"error", err)
		a.countFallback(operation)
		return Result{Text: fallback, Degraded: true}
	}

	return Result{Text: resp.Content}
}

func (a *Assistant) countFallback(operation string) {
	if a.metrics != nil {
		a.metrics.AssistantFallbacks.WithLabelValues(operation).Inc()
	}
}
