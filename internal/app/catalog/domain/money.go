package domain

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Money is an amount in a single currency. Arithmetic between currencies is
// an error, not a silent conversion.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a Money value. Negative amounts are rejected; use
// NewAdjustment for refund/adjustment values.
func NewMoney(amount decimal.Decimal, currency string) (*Money, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return newMoney(amount, currency)
}

// NewAdjustment creates a Money value that may be negative (refunds,
// corrections).
func NewAdjustment(amount decimal.Decimal, currency string) (*Money, error) {
	return newMoney(amount, currency)
}

// MustMoney is a test/fixture helper that panics on invalid input.
func MustMoney(amount string, currency string) *Money {
	m, err := NewMoney(decimal.RequireFromString(amount), currency)
	if err != nil {
		panic(err)
	}
	return m
}

func newMoney(amount decimal.Decimal, currency string) (*Money, error) {
	if !currencyPattern.MatchString(currency) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	return &Money{amount: amount, currency: currency}, nil
}

// Amount returns the decimal amount.
func (m *Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the 3-letter currency code.
func (m *Money) Currency() string {
	return m.currency
}

// Add returns the sum of two values of the same currency.
func (m *Money) Add(other *Money) (*Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return nil, err
	}
	return &Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference of two values of the same currency.
func (m *Money) Subtract(other *Money) (*Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return nil, err
	}
	return &Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// LessThan compares two values of the same currency.
func (m *Money) LessThan(other *Money) (bool, error) {
	if err := m.checkCurrency(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// Equals reports whether amount and currency both match.
func (m *Money) Equals(other *Money) bool {
	if other == nil {
		return false
	}
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is zero.
func (m *Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is negative.
func (m *Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Copy returns an independent copy.
func (m *Money) Copy() *Money {
	return &Money{amount: m.amount, currency: m.currency}
}

// String formats the value for logs and messages.
func (m *Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}

func (m *Money) checkCurrency(other *Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}
