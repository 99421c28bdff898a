package pricing

// OrderCalculation is the itemized result of pricing one order line.
// Values carry full float64 precision; rounding is left to presentation.
type OrderCalculation struct {
	Subtotal           float64 `json:"subtotal"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Discount           float64 `json:"discount"`
	PriceAfterDiscount float64 `json:"priceAfterDiscount"`
	TaxPercentage      float64 `json:"taxPercentage"`
	Tax                float64 `json:"tax"`
	Total              float64 `json:"total"`
}

// ComputeOrder prices quantity units at unitPrice for the given region.
// The discount is applied first and tax is charged on the discounted price.
// No validation happens here: callers reject non-positive or non-finite input.
func ComputeOrder(quantity, unitPrice float64, regionCode string) OrderCalculation {
	subtotal := quantity * unitPrice
	discountPct := ResolveDiscountPercentage(subtotal)
	discount := subtotal * discountPct / 100
	afterDiscount := subtotal - discount
	taxPct := ResolveTaxPercentage(regionCode)
	tax, total := applyTax(afterDiscount, taxPct)

	return OrderCalculation{
		Subtotal:           subtotal,
		DiscountPercentage: discountPct,
		Discount:           discount,
		PriceAfterDiscount: afterDiscount,
		TaxPercentage:      taxPct,
		Tax:                tax,
		Total:              total,
	}
}

// applyTax computes tax and total given a taxable amount and a percentage rate.
func applyTax(amount, ratePct float64) (tax float64, total float64) {
	tax = amount * ratePct / 100
	return tax, amount + tax
}
