// Package core provides money parsing and handling utilities.
//
// Amounts are kept as arbitrary precision decimals so that totals are exact
// and the persisted text keeps whatever precision the user typed.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a non-negative monetary amount.
type Money struct {
	d decimal.Decimal
}

// Zero is the empty amount.
var Zero = Money{}

// ParseMoney converts a decimal string to Money.
//
// Surrounding whitespace is ignored. Negative values, NaN, infinities and
// anything that is not a plain decimal number are rejected.
//
// Examples:
//
//	ParseMoney("42.50") -> 42.5, nil
//	ParseMoney("1e3")   -> 1000, nil
//	ParseMoney("-1")    -> error
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	m := Money{d: d}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// MustMoney is ParseMoney for literals known to be valid; it panics otherwise.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Validate() error {
	if m.d.IsNegative() {
		return fmt.Errorf("%w: %s is negative", ErrInvalidAmount, m.d.String())
	}
	return nil
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Equal compares by value, so 15.5 equals 15.50.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// String returns the natural decimal representation, e.g. "42.5" or "1200".
func (m Money) String() string {
	return m.d.String()
}

// Fixed renders m with exactly two decimals for display.
func (m Money) Fixed() string {
	return m.d.StringFixed(2)
}
