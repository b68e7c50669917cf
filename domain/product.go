package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Product belongs to exactly one business. Ratings is an ordered
// sequence of 1..5 values appended by customers after completed orders.
type Product struct {
	ID          string          `json:"id"`
	BusinessID  string          `json:"business_id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Ratings     []int           `json:"ratings,omitempty"`
}

// AverageRating returns the arithmetic mean of the ratings rounded to
// one decimal, and the rating count. A product with no ratings yields 0, 0.
func (p Product) AverageRating() (avg float64, count int) {
	if len(p.Ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range p.Ratings {
		sum += r
	}
	avg = float64(sum) / float64(len(p.Ratings))
	return math.Round(avg*10) / 10, len(p.Ratings)
}
