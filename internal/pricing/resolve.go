package pricing

import "strings"

// ResolveDiscountPercentage returns the discount percentage for an order value.
// The first tier whose threshold is <= orderValue wins; values below every
// threshold (and NaN) get 0.
func ResolveDiscountPercentage(orderValue float64) float64 {
	for _, tier := range discountTiers {
		if orderValue >= tier.Threshold {
			return tier.Percentage
		}
	}
	return 0
}

// ResolveTaxPercentage returns the tax rate for a region code, or 0 when the
// code is unknown. Unknown codes are not an error.
func ResolveTaxPercentage(regionCode string) float64 {
	r, ok := LookupTaxRate(regionCode)
	if !ok {
		return 0
	}
	return r.Rate
}

// LookupTaxRate finds the table entry for a region code.
func LookupTaxRate(regionCode string) (TaxRate, bool) {
	code := normalizeCode(regionCode)
	if code == "" {
		return TaxRate{}, false
	}
	for _, r := range taxRates {
		if r.Code == code {
			return r, true
		}
	}
	return TaxRate{}, false
}

// normalizeCode upper-cases without consulting any locale.
func normalizeCode(code string) string {
	return strings.ToUpper(code)
}
