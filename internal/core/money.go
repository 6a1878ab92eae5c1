// Package core provides money parsing and handling utilities.
//
// Amounts are kept as integer cents so that totals are exact; decimal
// arithmetic is only used at the edges, for parsing and for averages.
package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// maxWholeDigits is the number of digits before the decimal point that
// still fit in int64 cents (92233720368547758.07).
const maxWholeDigits = 17

// ParseAmount converts a decimal string to cents.
//
// The whole string must be a number: trailing characters, NaN and negative
// values are rejected. Digits past the second decimal place are rounded half
// away from zero.
//
// Examples:
//
//	ParseAmount("12.5")   -> {1250}, nil
//	ParseAmount("0")      -> {0}, nil
//	ParseAmount("1.005")  -> {101}, nil
//	ParseAmount("12abc")  -> error
//	ParseAmount("-1")     -> error
//	ParseAmount("1e999")  -> error
func ParseAmount(s string) (Money, error) {
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	if d.IsZero() {
		return Money{}, nil
	}
	// Check the magnitude from digit counts before scaling: an exponent
	// like 1e999999999 would otherwise build a huge integer.
	switch whole := d.NumDigits() + int(d.Exponent()); {
	case whole > maxWholeDigits:
		return Money{}, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, s)
	case whole < -2:
		// Below 0.001, which rounds to zero cents.
		return Money{}, nil
	}
	cents := d.Shift(2).Round(0)
	if !cents.BigInt().IsInt64() {
		return Money{}, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, s)
	}
	return Money{Cents: cents.IntPart()}, nil
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String formats the amount with exactly two decimal digits.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}
