// Package fixture provides the demo seed data: the platform admin, a
// Peshawar grocery with its staff and products, and a walk-in customer.
package fixture

import (
	"github.com/shopspring/decimal"

	"github.com/mybussiness/bazaar/domain"
)

// CategoryImages maps product categories to placeholder images used
// when a product is added without one.
var CategoryImages = map[string]string{
	"Grain":     "https://images.unsplash.com/photo-1586201375761-83865001e31c?auto=format&fit=crop&w=800&q=80",
	"Oil":       "https://images.unsplash.com/photo-1474979266404-7eaacabc88c5?auto=format&fit=crop&w=800&q=80",
	"Fruit":     "https://images.unsplash.com/photo-1619566636858-adf3ef46400b?auto=format&fit=crop&w=800&q=80",
	"Beverage":  "https://images.unsplash.com/photo-1544787210-2211d74fc119?auto=format&fit=crop&w=800&q=80",
	"Vegetable": "https://images.unsplash.com/photo-1566385101042-1a000c1269c4?auto=format&fit=crop&w=800&q=80",
	"Meat":      "https://images.unsplash.com/photo-1607623273573-fb949bc59437?auto=format&fit=crop&w=800&q=80",
	"Bakery":    "https://images.unsplash.com/photo-1555507036-ab1f4038808a?auto=format&fit=crop&w=800&q=80",
	"General":   "https://images.unsplash.com/photo-1583258292688-d0213dc5a3a8?auto=format&fit=crop&w=800&q=80",
}

// ImageFor returns the placeholder image for a category, falling back
// to the general one.
func ImageFor(category string) string {
	if img, ok := CategoryImages[category]; ok {
		return img
	}
	return CategoryImages["General"]
}

// Users returns the demo accounts.
func Users() []domain.User {
	return []domain.User{
		{
			ID:     "u1",
			Name:   "INAM KHAN",
			Email:  "inam@platform.com",
			Role:   domain.RoleSuperAdmin,
			Avatar: "https://images.unsplash.com/photo-1560250097-0b93528c311a?auto=format&fit=crop&w=256&q=80",
		},
		{ID: "u2", Name: "Khan Enterprise Owner", Email: "owner@shop.com", Role: domain.RoleBusinessAdmin, BusinessID: "b1"},
		{ID: "u3", Name: "DANYIAL HOTI", Email: "danyial@shop.com", Role: domain.RoleStaff, BusinessID: "b1"},
		{ID: "u4", Name: "ABDULLAH", Email: "abdullah@gmail.com", Role: domain.RoleCustomer},
		{ID: "u5", Name: "Khyber House Owner", Email: "khyber@shop.com", Role: domain.RoleBusinessAdmin, BusinessID: "b2"},
		{ID: "u6", Name: "Lahore Logistics Owner", Email: "logistics@shop.com", Role: domain.RoleBusinessAdmin, BusinessID: "b3"},
		{ID: "u7", Name: "Floor Manager", Email: "manager@shop.com", Role: domain.RoleManager, BusinessID: "b1"},
	}
}

// Businesses returns the demo merchants.
func Businesses() []domain.Business {
	return []domain.Business{
		{
			ID:              "b1",
			Name:            "KHAN BUSSINESS Peshawar",
			Type:            domain.BusinessGrocery,
			OwnerID:         "u2",
			Address:         "University Road, Peshawar",
			Rating:          4.8,
			IsApproved:      true,
			MarketingBudget: decimal.NewFromInt(5000),
		},
		{
			ID:              "b2",
			Name:            "Khyber Tikka House",
			Type:            domain.BusinessRestaurant,
			OwnerID:         "u5",
			Address:         "Namak Mandi",
			Rating:          4.5,
			IsApproved:      true,
			MarketingBudget: decimal.NewFromInt(3000),
		},
		{
			ID:              "b3",
			Name:            "Lahore Logistics",
			Type:            domain.BusinessTransport,
			OwnerID:         "u6",
			Address:         "GT Road, Lahore",
			Rating:          4.2,
			IsApproved:      true,
			MarketingBudget: decimal.NewFromInt(10000),
		},
	}
}

// Products returns the demo catalog.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:          "p1",
			BusinessID:  "b1",
			Name:        "Basmati Rice 5kg",
			Category:    "Grain",
			Price:       decimal.NewFromInt(1200),
			Stock:       50,
			Image:       CategoryImages["Grain"],
			Description: "Premium quality long grain rice",
			Ratings:     []int{5, 4, 5, 5, 4},
		},
		{
			ID:          "p2",
			BusinessID:  "b1",
			Name:        "Sunflower Oil 1L",
			Category:    "Oil",
			Price:       decimal.NewFromInt(650),
			Stock:       15,
			Image:       CategoryImages["Oil"],
			Description: "Healthy cooking oil",
			Ratings:     []int{4, 4, 3, 5},
		},
		{
			ID:          "p3",
			BusinessID:  "b1",
			Name:        "Red Apples",
			Category:    "Fruit",
			Price:       decimal.NewFromInt(200),
			Stock:       100,
			Image:       CategoryImages["Fruit"],
			Description: "Fresh seasonal apples from Swat",
			Ratings:     []int{5, 5, 5, 4, 5},
		},
		{
			ID:          "p4",
			BusinessID:  "b1",
			Name:        "Khyber Tea Leaves",
			Category:    "Beverage",
			Price:       decimal.NewFromInt(450),
			Stock:       30,
			Image:       CategoryImages["Beverage"],
			Description: "Strong black tea",
			Ratings:     []int{3, 4, 4},
		},
	}
}

// UserByEmail finds a demo account by email, the login lookup.
func UserByEmail(email string) (domain.User, bool) {
	for _, u := range Users() {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}
