// Package display renders pricing results for people. Nothing here feeds
// back into the calculation.
package display

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/xtding233/ordercalc/internal/pricing"
)

const currencySymbol = "$"

var printer = message.NewPrinter(language.AmericanEnglish)

// Line is one labelled row of a rendered breakdown.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Currency formats v as US dollars with two decimals, rounding half away
// from zero, e.g. 1309.5 -> "$1,309.50".
func Currency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return currencySymbol + printer.Sprint(v)
	}
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	f, _ := d.Float64()
	return sign + currencySymbol + printer.Sprintf("%.2f", f)
}

// Percent formats a percentage in its shortest form, e.g. 8 -> "8%", 6.85 -> "6.85%".
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return printer.Sprint(v) + "%"
	}
	return decimal.NewFromFloat(v).String() + "%"
}

// Breakdown lays out a calculation the way the result panel shows it.
// The discount is shown as a deduction.
func Breakdown(c pricing.OrderCalculation) []Line {
	return []Line{
		{Label: "Subtotal", Value: Currency(c.Subtotal)},
		{Label: "Discount (" + Percent(c.DiscountPercentage) + ")", Value: "-" + Currency(c.Discount)},
		{Label: "Price After Discount", Value: Currency(c.PriceAfterDiscount)},
		{Label: "Tax (" + Percent(c.TaxPercentage) + ")", Value: Currency(c.Tax)},
		{Label: "Total", Value: Currency(c.Total)},
	}
}

// TierLabel renders a discount tier threshold, e.g. "$1,000.00+".
func TierLabel(t pricing.DiscountTier) string {
	return Currency(t.Threshold) + "+"
}
