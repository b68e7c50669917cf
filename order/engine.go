// Package order implements the order lifecycle engine: creation from a
// cart, the bargaining/fulfilment state machine, and the derived sales
// and pipeline aggregates.
//
// The state machine, one instance per order:
//
//	PENDING|BARGAINING            --accept--> ACCEPTED
//	PENDING|BARGAINING            --reject--> CANCELLED
//	ACCEPTED                      --assign--> ASSIGNED
//	ASSIGNED                      --start-->  IN_PROGRESS
//	ACCEPTED|ASSIGNED|IN_PROGRESS --finish--> COMPLETED
//
// COMPLETED and CANCELLED are terminal; transitions out of them are
// rejected with a TransitionError.
package order

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mybussiness/bazaar/domain"
	"github.com/mybussiness/bazaar/ledger"
	"github.com/mybussiness/bazaar/metrics"
)

// Engine holds all orders and applies status transitions. Orders are
// prepended on creation so the newest lists first, and are never
// deleted.
type Engine struct {
	mu     sync.RWMutex
	orders []domain.Order

	policy  BargainPolicy
	ledger  *ledger.Ledger
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithBargainPolicy sets the counter-offer policy.
func WithBargainPolicy(p BargainPolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithLedger wires the expense ledger used by NetProfit.
func WithLedger(l *ledger.Ledger) Option {
	return func(e *Engine) {
		e.ledger = l
	}
}

// WithMetrics wires the metric set updated on order events.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithClock overrides the time source. Mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an order engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PlaceOrder creates an order from the cart contents and clears the
// cart. The original price is the catalog sum over the lines; a
// non-nil bargain puts the order into BARGAINING with the offer as its
// total, otherwise it starts PENDING at the catalog price. The order's
// business is taken from the first cart line.
func (e *Engine) PlaceOrder(cart *domain.Cart, customerID string, bargain *decimal.Decimal) (domain.Order, error) {
	lines := cart.Lines()
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	original := cart.Total()
	total := original
	status := domain.OrderPending

	if bargain != nil {
		if err := e.policy.Check(*bargain, original); err != nil {
			return domain.Order{}, err
		}
		total = *bargain
		status = domain.OrderBargaining
	}

	items := make([]domain.OrderItem, len(lines))
	for i, l := range lines {
		items[i] = domain.OrderItem{
			ProductID: l.Product.ID,
			Quantity:  l.Qty,
			Price:     l.Product.Price,
		}
	}

	o := domain.Order{
		ID:            uuid.New().String(),
		CustomerID:    customerID,
		BusinessID:    lines[0].Product.BusinessID,
		Items:         items,
		TotalPrice:    total,
		OriginalPrice: original,
		Status:        status,
		CreatedAt:     e.now(),
	}

	e.mu.Lock()
	e.orders = append([]domain.Order{o}, e.orders...)
	e.mu.Unlock()

	cart.Clear()

	if e.metrics != nil {
		e.metrics.OrdersPlaced.Inc()
		if status == domain.OrderBargaining {
			e.metrics.BargainsSubmitted.Inc()
		}
	}
	e.logger.Info("Order placed",
		"order_id", o.ID,
		"customer_id", o.CustomerID,
		"business_id", o.BusinessID,
		"status", o.Status,
		"total", o.TotalPrice.String(),
		"original", o.OriginalPrice.String())

	return o, nil
}

// Accept moves a pending or bargained order to ACCEPTED.
func (e *Engine) Accept(orderID, actor string) error {
	return e.transition(orderID, domain.OrderAccepted, actor, nil,
		domain.OrderPending, domain.OrderBargaining)
}

// Reject cancels a pending or bargained order.
func (e *Engine) Reject(orderID, actor string) error {
	return e.transition(orderID, domain.OrderCancelled, actor, nil,
		domain.OrderPending, domain.OrderBargaining)
}

// Assign attaches a staff member to an accepted order.
func (e *Engine) Assign(orderID, staffID, actor string) error {
	return e.transition(orderID, domain.OrderAssigned, actor,
		func(o *domain.Order) { o.StaffID = staffID },
		domain.OrderAccepted)
}

// Start marks an assigned order as in progress.
func (e *Engine) Start(orderID, actor string) error {
	return e.transition(orderID, domain.OrderInProgress, actor, nil,
		domain.OrderAssigned)
}

// Finish completes an order. Staff may finish directly from ACCEPTED
// or ASSIGNED; the assignment steps are optional.
func (e *Engine) Finish(orderID, actor string) error {
	return e.transition(orderID, domain.OrderCompleted, actor, nil,
		domain.OrderAccepted, domain.OrderAssigned, domain.OrderInProgress)
}

// transition applies a status change if the order's current status is
// in the allowed set, recording the change in the order's history.
func (e *Engine) transition(orderID string, to domain.OrderStatus, actor string, mutate func(*domain.Order), from ...domain.OrderStatus) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.orders {
		if e.orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrOrderNotFound
	}

	current := e.orders[idx].Status
	allowed := false
	for _, f := range from {
		if current == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return &TransitionError{OrderID: orderID, From: current, To: to}
	}

	next := make([]domain.Order, len(e.orders))
	copy(next, e.orders)
	o := &next[idx]
	o.StatusChanges = append(append([]domain.StatusChange(nil), o.StatusChanges...), domain.StatusChange{
		From:      current,
		To:        to,
		Actor:     actor,
		Timestamp: e.now(),
	})
	o.Status = to
	if mutate != nil {
		mutate(o)
	}
	e.orders = next

	if e.metrics != nil {
		switch to {
		case domain.OrderCompleted:
			e.metrics.OrdersCompleted.Inc()
		case domain.OrderCancelled:
			e.metrics.OrdersCancelled.Inc()
		case domain.OrderAccepted:
			if o.Bargained() {
				e.metrics.BargainsAccepted.Inc()
			}
		}
	}
	e.logger.Info("Order status changed",
		"order_id", orderID,
		"from", current,
		"to", to,
		"actor", actor)

	return nil
}

// Get looks up an order by id.
func (e *Engine) Get(orderID string) (domain.Order, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, o := range e.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return domain.Order{}, false
}

// Orders returns all orders, newest first.
func (e *Engine) Orders() []domain.Order {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]domain.Order, len(e.orders))
	copy(out, e.orders)
	return out
}

// OrdersForCustomer returns the orders placed by one customer.
func (e *Engine) OrdersForCustomer(customerID string) []domain.Order {
	return e.filter(func(o domain.Order) bool { return o.CustomerID == customerID })
}

// OrdersForBusiness returns the orders addressed to one business.
func (e *Engine) OrdersForBusiness(businessID string) []domain.Order {
	return e.filter(func(o domain.Order) bool { return o.BusinessID == businessID })
}

// OrdersForStaff returns a staff member's queue for a business: orders
// assigned to them plus any still unassigned.
func (e *Engine) OrdersForStaff(businessID, staffID string) []domain.Order {
	return e.filter(func(o domain.Order) bool {
		return o.BusinessID == businessID && (o.StaffID == staffID || o.StaffID == "")
	})
}

// ActiveOrder returns the customer's first order not yet in a terminal
// state, used for the progress tracker.
func (e *Engine) ActiveOrder(customerID string) (domain.Order, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, o := range e.orders {
		if o.CustomerID == customerID && !o.Status.Terminal() {
			return o, true
		}
	}
	return domain.Order{}, false
}

// TotalSales sums the total price of COMPLETED orders for a business.
// An empty businessID sums across the platform.
func (e *Engine) TotalSales(businessID string) decimal.Decimal {
	e.mu.RLock()
	defer e.mu.RUnlock()

	total := decimal.Zero
	for _, o := range e.orders {
		if o.Status != domain.OrderCompleted {
			continue
		}
		if businessID != "" && o.BusinessID != businessID {
			continue
		}
		total = total.Add(o.TotalPrice)
	}
	return total
}

// PipelineCount counts the orders of a business not yet in a terminal
// state. An empty businessID counts across the platform.
func (e *Engine) PipelineCount(businessID string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := 0
	for _, o := range e.orders {
		if o.Status.Terminal() {
			continue
		}
		if businessID != "" && o.BusinessID != businessID {
			continue
		}
		n++
	}
	return n
}

// NetProfit is total sales minus total expenses for a business. With
// no ledger wired it equals total sales.
func (e *Engine) NetProfit(businessID string) decimal.Decimal {
	sales := e.TotalSales(businessID)
	if e.ledger == nil {
		return sales
	}
	return sales.Sub(e.ledger.TotalExpenses(businessID))
}

func (e *Engine) filter(keep func(domain.Order) bool) []domain.Order {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []domain.Order
	for _, o := range e.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}
