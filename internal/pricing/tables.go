package pricing

// DiscountTier is one volume-discount bracket.
type DiscountTier struct {
	Threshold  float64 `json:"threshold" yaml:"threshold"`   // minimum order value, inclusive
	Percentage float64 `json:"percentage" yaml:"percentage"` // e.g., 15 for 15%
}

// TaxRate is the tax percentage charged in one region.
type TaxRate struct {
	Code string  `json:"code" yaml:"code"` // region code, e.g., "AUK"; matched case-insensitively
	Rate float64 `json:"rate" yaml:"rate"` // e.g., 6.85 for 6.85%
}

// discountTiers is ordered by strictly decreasing threshold. Orders below the
// last threshold get no discount.
var discountTiers = [...]DiscountTier{
	{Threshold: 50000, Percentage: 15},
	{Threshold: 10000, Percentage: 10},
	{Threshold: 7000, Percentage: 7},
	{Threshold: 5000, Percentage: 5},
	{Threshold: 1000, Percentage: 3},
}

// taxRates codes are stored upper-case.
var taxRates = [...]TaxRate{
	{Code: "AUK", Rate: 6.85},
	{Code: "WLG", Rate: 8.00},
	{Code: "WAI", Rate: 6.25},
	{Code: "CHC", Rate: 4.00},
	{Code: "TAS", Rate: 8.25},
}

// DiscountTiers returns a copy of the discount table, highest threshold first.
func DiscountTiers() []DiscountTier {
	out := make([]DiscountTier, len(discountTiers))
	copy(out, discountTiers[:])
	return out
}

// TaxRates returns a copy of the tax table in its declared order.
func TaxRates() []TaxRate {
	out := make([]TaxRate, len(taxRates))
	copy(out, taxRates[:])
	return out
}
