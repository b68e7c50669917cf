// Package metrics collects process-local counters for the marketplace
// core. There is no exposition endpoint; the CLI gathers and renders
// the registry on demand.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics bundles the counters updated by the order engine and the
// assistant adapter.
type Metrics struct {
	registry *prometheus.Registry

	OrdersPlaced      prometheus.Counter
	OrdersCompleted   prometheus.Counter
	OrdersCancelled   prometheus.Counter
	BargainsSubmitted prometheus.Counter
	BargainsAccepted  prometheus.Counter

	AssistantRequests  *prometheus.CounterVec
	AssistantFallbacks *prometheus.CounterVec
}

// New creates a metric set backed by its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bazaar_orders_placed_total",
			Help: "Orders created from customer carts.",
		}),
		OrdersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bazaar_orders_completed_total",
			Help: "Orders that reached COMPLETED.",
		}),
		OrdersCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bazaar_orders_cancelled_total",
			Help: "Orders that reached CANCELLED.",
		}),
		BargainsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bazaar_bargains_submitted_total",
			Help: "Orders placed with a customer counter-offer.",
		}),
		BargainsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bazaar_bargains_accepted_total",
			Help: "Bargained orders accepted by the merchant.",
		}),
		AssistantRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bazaar_assistant_requests_total",
			Help: "Assistant operations attempted, by operation.",
		}, []string{"operation"}),
		AssistantFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bazaar_assistant_fallbacks_total",
			Help: "Assistant operations that served canned fallback text.",
		}, []string{"operation"}),
	}

	m.registry.MustRegister(
		m.OrdersPlaced,
		m.OrdersCompleted,
		m.OrdersCancelled,
		m.BargainsSubmitted,
		m.BargainsAccepted,
		m.AssistantRequests,
		m.AssistantFallbacks,
	)
	return m
}

// Gatherer exposes the underlying registry for rendering.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Dump writes all gathered metric families in the Prometheus text
// exposition format.
func Dump(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metric family %q: %w", mf.GetName(), err)
		}
	}
	return nil
}
