package model

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when text does not parse to a finite number.
var ErrInvalidAmount = errors.New("invalid amount")

// Amounts must fit a float64: at most 309 integer digits and no digit
// finer than 1e-324.
const (
	maxIntegerDigits = 309
	minExponent      = -324
)

var maxAmount = decimal.NewFromFloat(math.MaxFloat64)

// ParseAmount converts user input into a decimal.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, an
// optional sign and an optional exponent. Empty input and values outside the
// float64 range are rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	// Normalize a lone decimal comma to a dot
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	// Check the exponent first: comparing 1e50000000 against maxAmount
	// would expand it to fifty million digits.
	if d.Exponent() < minExponent || d.NumDigits()+int(d.Exponent()) > maxIntegerDigits {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.Abs().GreaterThan(maxAmount) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
