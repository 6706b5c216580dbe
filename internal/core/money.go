// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between cents and their decimal representation.
package core

import (
	"bytes"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseDecimalToCents converts a decimal string to cents with proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and performs
// half-up rounding on the third decimal place. Negative values are rejected;
// zero is accepted so that blank line items can carry a rate of 0.
//
// Examples:
//
//	ParseDecimalToCents("12.34") -> 1234, nil
//	ParseDecimalToCents("12,34") -> 1234, nil
//	ParseDecimalToCents("12.345") -> 1235, nil
//	ParseDecimalToCents("12.344") -> 1234, nil
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents := d.Mul(hundred).Round(0)
	if !cents.IsInteger() || cents.GreaterThan(decimal.NewFromInt(1<<62)) {
		return 0, ErrInvalidAmount
	}
	return cents.IntPart(), nil
}

// ParseSignedCents is ParseDecimalToCents with an optional leading minus.
// Computed figures such as net profit round-trip through it.
func ParseSignedCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		cents, err := ParseDecimalToCents(rest)
		return -cents, err
	}
	return ParseDecimalToCents(s)
}

// NewMoney builds a Money from a float literal, rounding to the nearest cent.
// Meant for fixtures and tests; request data goes through ParseDecimalToCents.
func NewMoney(v float64) Money {
	return Money{Cents: decimal.NewFromFloat(v).Mul(hundred).Round(0).IntPart()}
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Times multiplies the amount by an integer quantity.
func (m Money) Times(qty int) Money {
	return Money{Cents: m.Cents * int64(qty)}
}

// TimesChecked is Times that reports false when the product overflows.
func (m Money) TimesChecked(qty int) (Money, bool) {
	if qty == 0 || m.Cents == 0 {
		return Money{}, true
	}
	p := m.Cents * int64(qty)
	if p/int64(qty) != m.Cents || (qty == -1 && m.Cents == math.MinInt64) {
		return Money{}, false
	}
	return Money{Cents: p}, true
}

// AddChecked is Add that reports false when the sum overflows.
func (m Money) AddChecked(o Money) (Money, bool) {
	if (o.Cents > 0 && m.Cents > math.MaxInt64-o.Cents) || (o.Cents < 0 && m.Cents < math.MinInt64-o.Cents) {
		return Money{}, false
	}
	return Money{Cents: m.Cents + o.Cents}, true
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// Decimal returns the amount as a decimal with two places.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String formats the amount with two decimals, e.g. "3450.75".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON encodes the amount as a bare JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string, signed or
// not. Drafts and patches reject negative amounts during validation.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = Money{}
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		*m = Money{}
		return nil
	}
	cents, err := ParseSignedCents(s)
	if err != nil {
		return err
	}
	m.Cents = cents
	return nil
}
