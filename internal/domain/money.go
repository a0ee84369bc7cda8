package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest value a NUMERIC(12, 2) money column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

var (
	ErrAmountNotNumber = errors.New("must be a number")
	ErrAmountNegative  = errors.New("must not be negative")
	ErrAmountPrecision = errors.New("must have at most 2 decimal places")
	ErrAmountTooLarge  = errors.New("must not exceed 9999999999.99")
)

// ParseAmount reads a non-negative money amount with cent precision.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrAmountNotNumber
	}

	switch {
	case d.IsNegative():
		return decimal.Zero, ErrAmountNegative
	case !d.Equal(d.Truncate(2)):
		return decimal.Zero, ErrAmountPrecision
	case d.GreaterThan(MaxAmount):
		return decimal.Zero, ErrAmountTooLarge
	}

	return d.Round(2), nil
}
