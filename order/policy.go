package order

import "github.com/shopspring/decimal"

// BargainPolicy bounds customer counter-offers. The zero value is
// fully permissive: any offer, including one above the catalog total,
// enters bargaining untouched.
type BargainPolicy struct {
	// MinRatio, when > 0, is the lowest acceptable offer as a fraction
	// of the original price (0.8 = at most 20% off).
	MinRatio float64 `yaml:"min_ratio"`

	// CapAtOriginal rejects offers above the catalog total.
	CapAtOriginal bool `yaml:"cap_at_original"`
}

// Check validates a counter-offer against the policy.
func (p BargainPolicy) Check(offer, original decimal.Decimal) error {
	if p.CapAtOriginal && offer.GreaterThan(original) {
		return ErrBargainAboveOriginal
	}
	if p.MinRatio > 0 {
		floor := original.Mul(decimal.NewFromFloat(p.MinRatio))
		if offer.LessThan(floor) {
			return ErrBargainTooLow
		}
	}
	return nil
}
