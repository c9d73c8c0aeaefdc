package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// Scale is the number of fractional digits a stored amount may carry.
	Scale int32 = 3
	// DisplayScale is the number of fractional digits used when presenting amounts.
	DisplayScale int32 = 2
)

var (
	// ErrInvalidFormat is returned when an amount cannot be parsed as a decimal number.
	ErrInvalidFormat = errors.New("invalid money format")
	// ErrTooPrecise is returned when an amount carries more fractional digits than Scale.
	ErrTooPrecise = errors.New("amount has more decimal places than supported")
)

// Money is an exact decimal amount.
// Invariants:
//   - The amount never carries more than Scale fractional digits.
//   - Arithmetic is exact; rounding only happens through Round.
type Money struct {
	amount decimal.Decimal
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// New creates Money from a decimal, rejecting values finer than Scale.
func New(amount decimal.Decimal) (Money, error) {
	if !amount.Equal(amount.Truncate(Scale)) {
		return Money{}, fmt.Errorf("%w: %s", ErrTooPrecise, amount.String())
	}
	return Money{amount: amount}, nil
}

// Parse creates Money from its textual representation, e.g. "150.75".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return New(d)
}

// MustParse is like Parse but panics on error. Intended for fixtures and tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromDecimal hydrates Money from storage, rounding to Scale.
func FromDecimal(d decimal.Decimal) Money {
	return Money{amount: d.Round(Scale)}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Round rounds half away from zero to the given number of places.
// For non-negative amounts this is half-up rounding.
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places)}
}

func (m Money) IsPositive() bool { return m.amount.IsPositive() }
func (m Money) IsZero() bool     { return m.amount.IsZero() }

func (m Money) GreaterThan(other Money) bool { return m.amount.GreaterThan(other.amount) }
func (m Money) LessThan(other Money) bool    { return m.amount.LessThan(other.amount) }
func (m Money) Equal(other Money) bool       { return m.amount.Equal(other.amount) }

// String renders the amount with two fractional digits, or three when the
// third digit is significant.
func (m Money) String() string {
	if m.amount.Equal(m.amount.Round(DisplayScale)) {
		return m.amount.StringFixed(DisplayScale)
	}
	return m.amount.StringFixed(Scale)
}

// MarshalJSON encodes the amount as a quoted decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted decimal strings and JSON numbers.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, string(data))
	}
	parsed, err := New(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
