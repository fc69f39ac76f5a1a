// Package money provides a fixed-point monetary value object. Amounts are
// stored as an integer number of cents; float64 is only used at the API
// boundary, never for arithmetic.
package money

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidAmount is returned when an amount cannot be represented as a
	// fixed-point value (NaN, infinity, or out of range).
	ErrInvalidAmount = errors.New("invalid monetary amount")
)

// maxFloatCents is the largest float64 dollar amount that converts to cents
// without overflowing int64.
const maxFloatCents = float64(math.MaxInt64) / 100

// Money is an immutable fixed-point amount in cents.
type Money struct {
	cents int64
}

// Zero returns the zero amount.
func Zero() Money {
	return Money{}
}

// FromCents builds a Money from an integer number of cents. This is the
// hydration path from the store.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// NewFromFloat converts a dollar amount from the API boundary into cents,
// rounding half away from zero.
func NewFromFloat(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, ErrInvalidAmount
	}
	if amount > maxFloatCents || amount < -maxFloatCents {
		return Money{}, ErrInvalidAmount
	}
	return Money{cents: int64(math.Round(amount * 100))}, nil
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the amount in dollars for serialization.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// Negate returns -m.
func (m Money) Negate() Money {
	return Money{cents: -m.cents}
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

// Equals reports whether two amounts are identical.
func (m Money) Equals(other Money) bool {
	return m.cents == other.cents
}

// String renders the amount as dollars with two decimals, e.g. "150.00".
func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.Float64())
}
