package calculator

import (
	"math"

	"github.com/xtding233/ordercalc/internal/pricing"
)

// Calculate validates f and prices it. The pricing core is never reached
// when validation fails.
func Calculate(f Form) (pricing.OrderCalculation, error) {
	in, err := ParseForm(f)
	if err != nil {
		return pricing.OrderCalculation{}, err
	}
	res := pricing.ComputeOrder(in.Quantity, in.UnitPrice, in.RegionCode)
	if !finite(res) {
		return pricing.OrderCalculation{}, ErrOutOfRange
	}
	return res, nil
}

func finite(c pricing.OrderCalculation) bool {
	for _, v := range [...]float64{c.Subtotal, c.Discount, c.PriceAfterDiscount, c.Tax, c.Total} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
