// Package commands implements the bazaar CLI subcommands over a shared
// application wiring of the in-memory stores and the assistant.
package commands

import (
	"log/slog"
	"net/http"

	"github.com/mybussiness/bazaar/assistant"
	"github.com/mybussiness/bazaar/catalog"
	"github.com/mybussiness/bazaar/config"
	"github.com/mybussiness/bazaar/fixture"
	"github.com/mybussiness/bazaar/ledger"
	"github.com/mybussiness/bazaar/metrics"
	"github.com/mybussiness/bazaar/order"
	"github.com/mybussiness/bazaar/prefs"
)

// App wires together the stores, engine, assistant and preference
// store behind the CLI commands. All state is in-memory and seeded
// from the demo fixtures.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	Catalog   *catalog.Store
	Suggester *catalog.Suggester
	Ledger    *ledger.Ledger
	Orders    *order.Engine
	Metrics   *metrics.Metrics
	Prefs     *prefs.Store

	// Assistant generates one-shot copy; ChatAssistant carries the
	// chat model, which may differ.
	Assistant     *assistant.Assistant
	ChatAssistant *assistant.Assistant
}

// NewApp builds the application from configuration.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	m := metrics.New()

	cat := catalog.NewStore(
		catalog.WithLogger(logger),
		catalog.WithBusinesses(fixture.Businesses()),
		catalog.WithProducts(fixture.Products()),
	)

	led := ledger.New(ledger.WithLogger(logger))

	eng := order.NewEngine(
		order.WithLogger(logger),
		order.WithLedger(led),
		order.WithMetrics(m),
		order.WithBargainPolicy(order.BargainPolicy{
			MinRatio:      cfg.Bargain.MinRatio,
			CapAtOriginal: cfg.Bargain.CapAtOriginal,
		}),
	)

	httpClient := &http.Client{Timeout: cfg.Assistant.Timeout}
	temp := cfg.Assistant.Temperature

	oneShot := assistant.NewClient(assistant.Endpoint{
		Provider:    cfg.Assistant.Provider,
		URL:         cfg.Assistant.Endpoint,
		Model:       cfg.Assistant.Model,
		Temperature: &temp,
	}, assistant.WithClientLogger(logger), assistant.WithHTTPClient(httpClient))

	chat := assistant.NewClient(assistant.Endpoint{
		Provider:    cfg.Assistant.Provider,
		URL:         cfg.Assistant.Endpoint,
		Model:       cfg.Assistant.ChatModel,
		Temperature: &temp,
	}, assistant.WithClientLogger(logger), assistant.WithHTTPClient(httpClient))

	return &App{
		Config:        cfg,
		Logger:        logger,
		Catalog:       cat,
		Suggester:     catalog.NewSuggester(cat, catalog.WithSuggestLogger(logger)),
		Ledger:        led,
		Orders:        eng,
		Metrics:       m,
		Prefs:         prefs.NewStore(cfg.Prefs.Path, prefs.WithLogger(logger)),
		Assistant:     assistant.New(oneShot, assistant.WithLogger(logger), assistant.WithMetrics(m)),
		ChatAssistant: assistant.New(chat, assistant.WithLogger(logger), assistant.WithMetrics(m)),
	}
}
