package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrCurrencyMismatch is returned when two amounts in different currencies are combined.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrNonPositiveRate is returned when a conversion is asked to use a rate <= 0.
var ErrNonPositiveRate = errors.New("exchange rate must be positive")

// ZeroTolerance is the magnitude below which an amount counts as zero.
var ZeroTolerance = decimal.New(1, -4)

// Money is an immutable currency-tagged amount.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney returns an amount in the given currency.
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{amount: amount, currency: currency}
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the numeric amount.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency returns the currency code.
func (m Money) Currency() string { return m.currency }

// Add returns m + o. Both must share a currency.
func (m Money) Add(o Money) (Money, error) {
	if m.currency != o.currency {
		return Money{}, fmt.Errorf("cannot add %s and %s: %w", m.currency, o.currency, ErrCurrencyMismatch)
	}
	return Money{amount: m.amount.Add(o.amount), currency: m.currency}, nil
}

// Sub returns m - o. Both must share a currency.
func (m Money) Sub(o Money) (Money, error) {
	if m.currency != o.currency {
		return Money{}, fmt.Errorf("cannot subtract %s from %s: %w", o.currency, m.currency, ErrCurrencyMismatch)
	}
	return Money{amount: m.amount.Sub(o.amount), currency: m.currency}, nil
}

// Mul scales the amount, keeping the currency.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// Convert expresses m in target using an explicit rate (1 unit of m's currency = rate units of target).
func (m Money) Convert(target string, rate decimal.Decimal) (Money, error) {
	if !rate.IsPositive() {
		return Money{}, fmt.Errorf("converting %s to %s at %s: %w", m.currency, target, rate, ErrNonPositiveRate)
	}
	return Money{amount: m.amount.Mul(rate), currency: target}, nil
}

// Round rounds half away from zero to the given number of decimal places.
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places), currency: m.currency}
}

// IsZero reports whether the amount is within ZeroTolerance of zero.
func (m Money) IsZero() bool {
	return m.amount.Abs().LessThan(ZeroTolerance)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Equal reports whether both the amount and the currency match.
func (m Money) Equal(o Money) bool {
	return m.currency == o.currency && m.amount.Equal(o.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}
