package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned when the item count or unit price is not a
// finite positive number. The message is shown to users as-is.
var ErrInvalidInput = errors.New("Please enter valid positive numbers")

// ErrOutOfRange is returned when valid inputs multiply past what float64 can
// hold, leaving a calculation with infinite or NaN amounts.
var ErrOutOfRange = errors.New("order is too large to calculate")

// DefaultRegion is the region a fresh form starts with.
const DefaultRegion = "AUK"

// Form carries the raw values a user typed.
type Form struct {
	NumItems     string `json:"numItems"`
	PricePerItem string `json:"pricePerItem"`
	RegionCode   string `json:"regionCode"`
}

// Input is a validated Form ready for pricing.
type Input struct {
	Quantity   float64
	UnitPrice  float64
	RegionCode string
}

// ParseForm validates the numeric fields of f. The region code is passed
// through untouched; unknown or empty regions simply carry no tax.
func ParseForm(f Form) (Input, error) {
	qty, ok := parsePositive(f.NumItems)
	if !ok {
		return Input{}, ErrInvalidInput
	}
	price, ok := parsePositive(f.PricePerItem)
	if !ok {
		return Input{}, ErrInvalidInput
	}
	return Input{Quantity: qty, UnitPrice: price, RegionCode: f.RegionCode}, nil
}

// ValidateNumbers applies the same checks as ParseForm to already-parsed values.
func ValidateNumbers(quantity, unitPrice float64) error {
	if !positiveFinite(quantity) || !positiveFinite(unitPrice) {
		return ErrInvalidInput
	}
	return nil
}

func parsePositive(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, positiveFinite(v)
}

func positiveFinite(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v > 0
}
