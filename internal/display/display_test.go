package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xtding233/ordercalc/internal/pricing"
)

func TestCurrency(t *testing.T) {
	cases := map[float64]string{
		0:       "$0.00",
		34.25:   "$34.25",
		534.25:  "$534.25",
		97:      "$97.00",
		1309.5:  "$1,309.50",
		54493.5: "$54,493.50",
		928.125: "$928.13",
		0.005:   "$0.01",
		-37.5:   "-$37.50",
	}
	for in, want := range cases {
		assert.Equalf(t, want, Currency(in), "in=%v", in)
	}
}

func TestCurrencyRoundsShortestDecimal(t *testing.T) {
	// 1.005 and 2.675 sit just below the half in binary; rounding works on
	// their shortest decimal form instead.
	assert.Equal(t, "$1.01", Currency(1.005))
	assert.Equal(t, "$2.68", Currency(2.675))
	assert.Equal(t, "-$1.01", Currency(-1.005))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "6.85%", Percent(6.85))
	assert.Equal(t, "8%", Percent(8))
	assert.Equal(t, "0%", Percent(0))
	assert.Equal(t, "15%", Percent(15))
}

func TestBreakdown(t *testing.T) {
	lines := Breakdown(pricing.ComputeOrder(25, 50, "WLG"))
	assert.Equal(t, []Line{
		{Label: "Subtotal", Value: "$1,250.00"},
		{Label: "Discount (3%)", Value: "-$37.50"},
		{Label: "Price After Discount", Value: "$1,212.50"},
		{Label: "Tax (8%)", Value: "$97.00"},
		{Label: "Total", Value: "$1,309.50"},
	}, lines)
}

func TestTierLabel(t *testing.T) {
	assert.Equal(t, "$50,000.00+", TierLabel(pricing.DiscountTier{Threshold: 50000, Percentage: 15}))
}
