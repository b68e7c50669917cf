package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderBargaining OrderStatus = "BARGAINING"
	OrderAccepted   OrderStatus = "ACCEPTED"
	OrderAssigned   OrderStatus = "ASSIGNED"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// IsValid checks if a status string is a known order status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderBargaining, OrderAccepted, OrderAssigned,
		OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus converts a string to an OrderStatus, returning empty
// for invalid values.
func ParseOrderStatus(v string) OrderStatus {
	s := OrderStatus(v)
	if s.IsValid() {
		return s
	}
	return ""
}

// Terminal reports whether the status is final. Terminal orders never
// transition again.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Step maps the status onto the four-step progress track shown to
// customers. CANCELLED sits outside the track and maps to 0.
func (s OrderStatus) Step() int {
	switch s {
	case OrderPending, OrderBargaining:
		return 1
	case OrderAccepted:
		return 2
	case OrderAssigned, OrderInProgress:
		return 3
	case OrderCompleted:
		return 4
	default:
		return 0
	}
}

// Label returns the customer-facing description of the status.
func (s OrderStatus) Label() string {
	switch s {
	case OrderPending:
		return "Awaiting Merchant"
	case OrderBargaining:
		return "Bargain Under Review"
	case OrderAccepted:
		return "Order Accepted"
	case OrderAssigned:
		return "Staff Assigned"
	case OrderInProgress:
		return "Being Prepared"
	case OrderCompleted:
		return "Delivered"
	case OrderCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// OrderItem is a single cart line frozen into an order. Price is the
// catalog price at order time.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// StatusChange records a status transition on an order.
type StatusChange struct {
	From      OrderStatus `json:"from"`
	To        OrderStatus `json:"to"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Order is created from a customer's cart and mutated only through
// status transitions. Orders are never deleted.
//
// OriginalPrice is the catalog-computed sum over the items; TotalPrice
// may be lower when a bargain was accepted.
type Order struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	BusinessID    string          `json:"business_id"`
	Items         []OrderItem     `json:"items"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Status        OrderStatus     `json:"status"`
	StaffID       string          `json:"staff_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	StatusChanges []StatusChange  `json:"status_changes,omitempty"`
}

// Bargained reports whether the customer countered the catalog price.
func (o Order) Bargained() bool {
	return !o.TotalPrice.Equal(o.OriginalPrice)
}
