package catalog

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mybussiness/bazaar/domain"
)

// Suggestion defaults, matching the search modal behaviour: short
// queries yield nothing, and result lists are capped per kind.
const (
	defaultSuggestDelay = 500 * time.Millisecond
	minQueryLength      = 2
	maxBusinessResults  = 4
	maxProductResults   = 6
)

// SuggestionKind distinguishes what a suggestion points at.
type SuggestionKind string

const (
	SuggestionBusiness SuggestionKind = "business"
	SuggestionProduct  SuggestionKind = "product"
)

// Suggestion is a single search hit. Exactly one of Business or
// Product is populated, according to Kind.
type Suggestion struct {
	Kind     SuggestionKind
	Business domain.Business
	Product  domain.Product
}

// Suggester evaluates search queries against the catalog after a fixed
// delay. A new query cancels the previous pending evaluation, so only
// the latest query's results are ever delivered (last-write-wins).
type Suggester struct {
	store  *Store
	delay  time.Duration
	logger *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// SuggesterOption configures a Suggester.
type SuggesterOption func(*Suggester)

// WithSuggestDelay overrides the evaluation delay. Mainly for tests.
func WithSuggestDelay(d time.Duration) SuggesterOption {
	return func(s *Suggester) {
		s.delay = d
	}
}

// WithSuggestLogger sets the logger.
func WithSuggestLogger(logger *slog.Logger) SuggesterOption {
	return func(s *Suggester) {
		s.logger = logger
	}
}

// NewSuggester creates a suggester over the given store.
func NewSuggester(store *Store, opts ...SuggesterOption) *Suggester {
	s := &Suggester{
		store:  store,
		delay:  defaultSuggestDelay,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query schedules an evaluation of the query and delivers the results
// to fn after the configured delay. Queries shorter than two characters
// deliver an empty result immediately. Calling Query again before the
// delay elapses drops the pending evaluation.
func (s *Suggester) Query(query string, fn func([]Suggestion)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if len(query) < minQueryLength {
		fn(nil)
		return
	}

	s.timer = time.AfterFunc(s.delay, func() {
		results := s.evaluate(query)
		s.logger.Debug("Search suggestions evaluated", "query", query, "results", len(results))
		fn(results)
	})
}

// Stop cancels any pending evaluation.
func (s *Suggester) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Suggester) evaluate(query string) []Suggestion {
	var out []Suggestion

	businesses := s.store.ListBusinesses(BusinessFilter{Search: query})
	if len(businesses) > maxBusinessResults {
		businesses = businesses[:maxBusinessResults]
	}
	for _, b := range businesses {
		out = append(out, Suggestion{Kind: SuggestionBusiness, Business: b})
	}

	products := s.store.ListProducts(ProductFilter{Search: query})
	if len(products) > maxProductResults {
		products = products[:maxProductResults]
	}
	for _, p := range products {
		out = append(out, Suggestion{Kind: SuggestionProduct, Product: p})
	}

	return out
}
