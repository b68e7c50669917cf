package domain

import "github.com/shopspring/decimal"

// CartLine is one product in a cart with its quantity.
type CartLine struct {
	Product Product
	Qty     int
}

// Cart is an ephemeral, customer-session-scoped list of cart lines.
// It is not persisted and is cleared when an order is placed.
type Cart struct {
	lines []CartLine
}

// Add puts one unit of the product into the cart, incrementing the
// quantity if the product is already present.
func (c *Cart) Add(p Product) {
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Qty++
			return
		}
	}
	c.lines = append(c.lines, CartLine{Product: p, Qty: 1})
}

// Remove takes one unit of the product out of the cart, dropping the
// line when the quantity reaches zero. Unknown products are a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].Product.ID != productID {
			continue
		}
		if c.lines[i].Qty > 1 {
			c.lines[i].Qty--
			return
		}
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
}

// Line returns the cart line for a product, if present.
func (c *Cart) Line(productID string) (CartLine, bool) {
	for _, l := range c.lines {
		if l.Product.ID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct products in the cart.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Total returns the catalog-price sum over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return total
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}
