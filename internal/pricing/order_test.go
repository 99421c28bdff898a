package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func assertConsistent(t *testing.T, q, p float64, got OrderCalculation) {
	t.Helper()
	assert.InDelta(t, q*p, got.Subtotal, eps)
	assert.InDelta(t, got.Subtotal*got.DiscountPercentage/100, got.Discount, eps)
	assert.InDelta(t, got.Subtotal-got.Discount, got.PriceAfterDiscount, eps)
	assert.InDelta(t, got.PriceAfterDiscount*got.TaxPercentage/100, got.Tax, eps)
	assert.InDelta(t, got.Subtotal-got.Discount+got.Tax, got.Total, eps)
}

func TestComputeOrderScenarios(t *testing.T) {
	cases := []struct {
		name   string
		qty    float64
		price  float64
		region string
		want   OrderCalculation
	}{
		{
			name: "no discount", qty: 10, price: 50, region: "AUK",
			want: OrderCalculation{Subtotal: 500, PriceAfterDiscount: 500, TaxPercentage: 6.85, Tax: 34.25, Total: 534.25},
		},
		{
			name: "first tier", qty: 25, price: 50, region: "WLG",
			want: OrderCalculation{Subtotal: 1250, DiscountPercentage: 3, Discount: 37.5, PriceAfterDiscount: 1212.5, TaxPercentage: 8, Tax: 97, Total: 1309.5},
		},
		{
			name: "top tier", qty: 1000, price: 60, region: "AUK",
			want: OrderCalculation{Subtotal: 60000, DiscountPercentage: 15, Discount: 9000, PriceAfterDiscount: 51000, TaxPercentage: 6.85, Tax: 3493.5, Total: 54493.5},
		},
		{
			name: "unknown region", qty: 10, price: 50, region: "INVALID",
			want: OrderCalculation{Subtotal: 500, PriceAfterDiscount: 500, Total: 500},
		},
		{
			name: "lower case region", qty: 100, price: 75, region: "tas",
			want: OrderCalculation{Subtotal: 7500, DiscountPercentage: 7, Discount: 525, PriceAfterDiscount: 6975, TaxPercentage: 8.25, Tax: 575.4375, Total: 7550.4375},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeOrder(tc.qty, tc.price, tc.region)
			assert.InDelta(t, tc.want.Subtotal, got.Subtotal, eps)
			assert.Equal(t, tc.want.DiscountPercentage, got.DiscountPercentage)
			assert.InDelta(t, tc.want.Discount, got.Discount, eps)
			assert.InDelta(t, tc.want.PriceAfterDiscount, got.PriceAfterDiscount, eps)
			assert.Equal(t, tc.want.TaxPercentage, got.TaxPercentage)
			assert.InDelta(t, tc.want.Tax, got.Tax, eps)
			assert.InDelta(t, tc.want.Total, got.Total, eps)
			assertConsistent(t, tc.qty, tc.price, got)
		})
	}
}

func TestComputeOrderUnknownRegionTotalEqualsDiscounted(t *testing.T) {
	got := ComputeOrder(10, 50, "INVALID")
	assert.Zero(t, got.TaxPercentage)
	assert.Zero(t, got.Tax)
	assert.Equal(t, got.PriceAfterDiscount, got.Total)
}

func TestComputeOrderKeepsFullPrecision(t *testing.T) {
	// 11250 at 10% off, 8.25% tax on 10125
	got := ComputeOrder(150, 75, "TAS")
	assert.InDelta(t, 835.3125, got.Tax, eps)
	assert.InDelta(t, 10960.3125, got.Total, eps)
}

func TestComputeOrderIsPure(t *testing.T) {
	inputs := []struct {
		q, p float64
		r    string
	}{
		{10, 50, "AUK"},
		{3.3, 17.17, "wai"},
		{123456, 0.7, "CHC"},
		{1, 999.999, ""},
	}
	for _, in := range inputs {
		first := ComputeOrder(in.q, in.p, in.r)
		second := ComputeOrder(in.q, in.p, in.r)
		assert.Equal(t, first, second)
		assertConsistent(t, in.q, in.p, first)
	}
}

func TestComputeOrderAcceptsMeaninglessInput(t *testing.T) {
	got := ComputeOrder(-2, 100, "AUK")
	assert.Equal(t, float64(-200), got.Subtotal)
	assert.Zero(t, got.DiscountPercentage)
	assertConsistent(t, -2, 100, got)

	zero := ComputeOrder(0, 50, "WLG")
	assert.Zero(t, zero.Total)
}
