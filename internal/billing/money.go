package billing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when a numeric field is outside its declared
// domain (negative quantity/rate, tax rate outside 0..100).
var ErrInvalidInput = errors.New("invalid input")

var hundred = decimal.NewFromInt(100)

// Round2 rounds to 2 decimal places, half away from zero, matching currency
// display.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ValidateTaxRate rejects tax percentages outside [0, 100].
func ValidateTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return ErrInvalidInput
	}
	return nil
}
