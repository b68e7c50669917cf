package order

import (
	"errors"
	"fmt"

	"github.com/mybussiness/bazaar/domain"
)

// Sentinel errors for order creation and transitions.
var (
	// ErrEmptyCart is returned when placing an order from an empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrOrderNotFound is returned when a transition names an unknown order.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition is the sentinel wrapped by TransitionError.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrBargainTooLow is returned when a counter-offer falls below the
	// configured policy floor.
	ErrBargainTooLow = errors.New("bargain below policy floor")

	// ErrBargainAboveOriginal is returned when policy forbids offers
	// exceeding the catalog total.
	ErrBargainAboveOriginal = errors.New("bargain exceeds original price")
)

// TransitionError describes a rejected status transition. It unwraps
// to ErrInvalidTransition so callers can match with errors.Is.
type TransitionError struct {
	OrderID string
	From    domain.OrderStatus
	To      domain.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order %s: cannot transition %s -> %s", e.OrderID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
