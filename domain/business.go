package domain

import "github.com/shopspring/decimal"

// BusinessType categorises a business on the platform.
type BusinessType string

const (
	BusinessFruitVeg      BusinessType = "Fruit & Vegetable"
	BusinessRetail        BusinessType = "Retail / Kirana"
	BusinessGrocery       BusinessType = "Grocery / Super Store"
	BusinessRestaurant    BusinessType = "Restaurant / Café"
	BusinessSalon         BusinessType = "Salon / Service"
	BusinessRealEstate    BusinessType = "Real Estate"
	BusinessTransport     BusinessType = "Transport / Logistics"
	BusinessManufacturing BusinessType = "Manufacturing"
	BusinessWholesale     BusinessType = "Wholesale"
	BusinessEnterprise    BusinessType = "Enterprise"
)

// Business is a merchant on the platform. IsApproved gates customer
// visibility and ordering; only the platform admin toggles it.
type Business struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Type            BusinessType    `json:"type"`
	OwnerID         string          `json:"owner_id"`
	Address         string          `json:"address"`
	Rating          float64         `json:"rating"`
	IsApproved      bool            `json:"is_approved"`
	MarketingBudget decimal.Decimal `json:"marketing_budget"`
}
