// Package money implements exact fixed-precision amounts in integer minor units.
//
// Floating point and decimal strings are only accepted at the edges (Parse,
// RoundHalfUp, FromDecimal) and are rounded to minor units before any arithmetic.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrOutOfRange       = errors.New("amount out of range")
)

// MaxMinorUnits bounds amounts accepted from decimals. Sums of many shares
// stay far from int64 overflow.
const MaxMinorUnits int64 = 1_000_000_000_000_000

var maxMinor = decimal.NewFromInt(MaxMinorUnits)

// DefaultCurrency is used when a caller does not specify one.
const DefaultCurrency = "USD"

// Money is a signed amount in minor units (cents for USD) of a single currency.
type Money struct {
	Amount   int64
	Currency string
}

// New creates Money from a minor-unit amount.
func New(minor int64, currency string) Money {
	return Money{Amount: minor, Currency: normalizeCurrency(currency)}
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return New(0, currency)
}

// Add returns a + b.
func Add(a, b Money) (Money, error) {
	if a.Currency != b.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, a.Currency, b.Currency)
	}
	return Money{Amount: a.Amount + b.Amount, Currency: a.Currency}, nil
}

// Subtract returns a - b.
func Subtract(a, b Money) (Money, error) {
	if a.Currency != b.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, a.Currency, b.Currency)
	}
	return Money{Amount: a.Amount - b.Amount, Currency: a.Currency}, nil
}

// MultiplyByFraction returns m * numerator / denominator rounded half-up
// (half away from zero) to the nearest minor unit.
func MultiplyByFraction(m Money, numerator, denominator int64) (Money, error) {
	if denominator == 0 {
		return Money{}, ErrDivisionByZero
	}
	product := decimal.NewFromInt(m.Amount).Mul(decimal.NewFromInt(numerator))
	result := product.DivRound(decimal.NewFromInt(denominator), 0)
	return Money{Amount: result.IntPart(), Currency: m.Currency}, nil
}

// RoundHalfUp converts a major-unit decimal (e.g. 12.345 dollars) into Money,
// rounding half away from zero to the currency's minor unit. Amounts beyond
// MaxMinorUnits minor units return ErrOutOfRange.
func RoundHalfUp(d decimal.Decimal, currency string) (Money, error) {
	currency = normalizeCurrency(currency)
	minor := d.Shift(Exponent(currency)).Round(0)
	if minor.Abs().GreaterThan(maxMinor) {
		return Money{}, fmt.Errorf("%w: %s", ErrOutOfRange, d.String())
	}
	return Money{Amount: minor.IntPart(), Currency: currency}, nil
}

// FromDecimal is RoundHalfUp under the name used by request decoding.
func FromDecimal(d decimal.Decimal, currency string) (Money, error) {
	return RoundHalfUp(d, currency)
}

// Parse reads a major-unit string such as "25.50" or "-3".
func Parse(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return RoundHalfUp(d, currency)
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount, -Exponent(m.Currency))
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{Amount: -m.Amount, Currency: m.Currency}
}

func (m Money) IsZero() bool     { return m.Amount == 0 }
func (m Money) IsPositive() bool { return m.Amount > 0 }
func (m Money) IsNegative() bool { return m.Amount < 0 }

// Abs returns |m|.
func (m Money) Abs() Money {
	if m.Amount < 0 {
		return m.Neg()
	}
	return m
}

// StringFixed returns the plain major-unit amount, e.g. "25.50".
func (m Money) StringFixed() string {
	return m.Decimal().StringFixed(Exponent(m.Currency))
}

// String renders the amount with its currency symbol, e.g. "$25.50" or "-$3.00".
func (m Money) String() string {
	if m.Amount < 0 {
		return "-" + symbol(m.Currency) + m.Abs().StringFixed()
	}
	return symbol(m.Currency) + m.StringFixed()
}

// FormatSigned renders a balance with an explicit sign: "+$25.50", "-$15.75", "$0.00".
func FormatSigned(m Money) string {
	if m.Amount > 0 {
		return "+" + m.String()
	}
	return m.String()
}

// Allocate divides total into n parts whose sum is exactly total. The remainder
// is handed out one minor unit at a time to the first parts in order, so
// Allocate(1000, 3) is [334 333 333].
func Allocate(total int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	parts := make([]int64, n)
	quotient := total / int64(n)
	remainder := total % int64(n)

	step := int64(1)
	if remainder < 0 {
		step = -1
		remainder = -remainder
	}
	for i := range parts {
		parts[i] = quotient
		if int64(i) < remainder {
			parts[i] += step
		}
	}
	return parts
}
