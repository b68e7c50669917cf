// Package catalog provides the in-memory store for businesses and
// products, with approval gating, filtering and customer ratings.
package catalog

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/mybussiness/bazaar/domain"
)

// CategoryAll short-circuits category filtering to "no filter".
const CategoryAll = "All"

// ErrInvalidRating is returned when a rating is outside 1..5.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// ProductFilter narrows ListProducts. Zero values mean "no constraint".
type ProductFilter struct {
	// Category is an exact match against the product category.
	// Empty or CategoryAll disables the filter.
	Category string

	// Search is a case-insensitive substring match against product
	// name and category.
	Search string

	// BusinessID restricts results to one business.
	BusinessID string
}

// BusinessFilter narrows ListBusinesses.
type BusinessFilter struct {
	// ApprovedOnly hides businesses the platform admin has not approved.
	ApprovedOnly bool

	// Search is a case-insensitive substring match against business
	// name and type.
	Search string
}

// Store holds businesses and products. Collections are replaced
// wholesale on each mutation, so slices handed out by List methods are
// never written to again.
type Store struct {
	mu         sync.RWMutex
	businesses []domain.Business
	products   []domain.Product
	logger     *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithBusinesses seeds the store with businesses.
func WithBusinesses(businesses []domain.Business) Option {
	return func(s *Store) {
		s.businesses = append([]domain.Business(nil), businesses...)
	}
}

// WithProducts seeds the store with products.
func WithProducts(products []domain.Product) Option {
	return func(s *Store) {
		s.products = append([]domain.Product(nil), products...)
	}
}

// NewStore creates a catalog store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListProducts returns the products matching the filter, in store order.
func (s *Store) ListProducts(f ProductFilter) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(f.Search)
	var out []domain.Product
	for _, p := range s.products {
		if f.BusinessID != "" && p.BusinessID != f.BusinessID {
			continue
		}
		if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if search != "" && !matches(search, p.Name, p.Category) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ListBusinesses returns the businesses matching the filter, in store order.
func (s *Store) ListBusinesses(f BusinessFilter) []domain.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(f.Search)
	var out []domain.Business
	for _, b := range s.businesses {
		if f.ApprovedOnly && !b.IsApproved {
			continue
		}
		if search != "" && !matches(search, b.Name, string(b.Type)) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Product looks up a product by id.
func (s *Store) Product(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Business looks up a business by id.
func (s *Store) Business(id string) (domain.Business, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.businesses {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Business{}, false
}

// AddProduct prepends a product so newly added items list first.
// No uniqueness or referential checks are performed; the caller owns
// identifier generation.
func (s *Store) AddProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append([]domain.Product{p}, s.products...)
	s.logger.Debug("Product added", "product_id", p.ID, "business_id", p.BusinessID)
}

// AddBusiness appends a business to the store.
func (s *Store) AddBusiness(b domain.Business) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.businesses = append(s.businesses, b)
	s.logger.Debug("Business added", "business_id", b.ID)
}

// UpdateProduct replaces a product by id. Unknown ids are a silent
// no-op; callers must ensure the id exists.
func (s *Store) UpdateProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Product, len(s.products))
	found := false
	for i, existing := range s.products {
		if existing.ID == p.ID {
			next[i] = p
			found = true
		} else {
			next[i] = existing
		}
	}
	if !found {
		s.logger.Debug("Update for unknown product ignored", "product_id", p.ID)
		return
	}
	s.products = next
}

// ToggleApproval flips the approval flag of a business. Toggling twice
// restores the original value. Unknown ids are a silent no-op.
func (s *Store) ToggleApproval(businessID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Business, len(s.businesses))
	found := false
	for i, b := range s.businesses {
		if b.ID == businessID {
			b.IsApproved = !b.IsApproved
			found = true
		}
		next[i] = b
	}
	if !found {
		s.logger.Debug("Approval toggle for unknown business ignored", "business_id", businessID)
		return
	}
	s.businesses = next
}

// RateProduct appends a customer rating to the product's ratings
// sequence. Ratings outside 1..5 are rejected; unknown products are a
// silent no-op. Purchase verification is left to the caller.
func (s *Store) RateProduct(productID string, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Product, len(s.products))
	for i, p := range s.products {
		if p.ID == productID {
			ratings := append(append([]int(nil), p.Ratings...), rating)
			p.Ratings = ratings
		}
		next[i] = p
	}
	s.products = next
	return nil
}

// Categories returns CategoryAll followed by the distinct product
// categories in first-seen order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	out := []string{CategoryAll}
	for _, p := range s.products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// matches reports whether the lowercased query is a substring of any
// of the given fields.
func matches(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
