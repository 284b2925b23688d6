// Package fx resolves historical exchange rates and converts amounts between currencies.
package fx

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

// ErrMissingRate is returned by a strict Converter when no record covers a currency pair.
var ErrMissingRate = errors.New("no exchange rate for currency pair")

var one = decimal.NewFromInt(1)

// Table is an immutable snapshot of the exchange-rate history.
type Table struct {
	rates []model.ExchangeRate
}

// NewTable copies rates into a new snapshot. Records whose rate is not
// positive are dropped, so they never shadow an older valid record.
func NewTable(rates []model.ExchangeRate) *Table {
	kept := make([]model.ExchangeRate, 0, len(rates))
	for _, r := range rates {
		if r.Rate.IsPositive() {
			kept = append(kept, r)
		}
	}
	return &Table{rates: kept}
}

// Len returns the number of records in the snapshot.
func (t *Table) Len() int {
	return len(t.rates)
}

// candidates returns the records for the unordered pair {from, to}, newest
// first, optionally restricted to records dated on or before asOf. Records
// sharing a date keep input order reversed, so the later one wins.
func (t *Table) candidates(from, to string, asOf *time.Time) []model.ExchangeRate {
	var out []model.ExchangeRate
	for _, r := range t.rates {
		if !r.Matches(from, to) {
			continue
		}
		if asOf != nil && r.Date.After(*asOf) {
			continue
		}
		out = append(out, r)
	}
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b model.ExchangeRate) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// Lookup returns the rate that converts one unit of from into to. The
// identity pair is always 1. The most recent record on or before asOf wins;
// a record stored in the opposite direction yields its reciprocal. found is
// false when no record covers the pair.
func (t *Table) Lookup(from, to string, asOf *time.Time) (rate decimal.Decimal, found bool) {
	if from == to {
		return one, true
	}
	c := t.candidates(from, to, asOf)
	if len(c) == 0 {
		return decimal.Zero, false
	}
	r := c[0]
	if r.From == from && r.To == to {
		return r.Rate, true
	}
	return one.Div(r.Rate), true
}

// History returns the records for the pair, newest first, capped at limit (0 = all).
func (t *Table) History(from, to string, limit int) []model.ExchangeRate {
	c := t.candidates(from, to, nil)
	if limit > 0 && len(c) > limit {
		c = c[:limit]
	}
	return c
}

// Converter applies a rate table, deciding what happens when a pair has no rate.
type Converter struct {
	table  *Table
	strict bool
	logger *zap.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithStrict makes missing rates fail with ErrMissingRate instead of falling back to 1.
func WithStrict(strict bool) Option {
	return func(c *Converter) { c.strict = strict }
}

// WithLogger sets the logger that records missing-rate fallbacks.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewConverter returns a Converter over table. By default a missing rate
// falls back to 1 and is logged as a warning; treat such a result as best
// effort, not as proof that the currencies are at par.
func NewConverter(table *Table, opts ...Option) *Converter {
	c := &Converter{table: table, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rate returns the exchange rate from -> to as of asOf (nil = latest).
func (c *Converter) Rate(from, to string, asOf *time.Time) (decimal.Decimal, error) {
	rate, found := c.table.Lookup(from, to, asOf)
	if found {
		return rate, nil
	}
	if c.strict {
		return decimal.Zero, fmt.Errorf("%s -> %s: %w", from, to, ErrMissingRate)
	}
	fields := []zap.Field{zap.String("from", from), zap.String("to", to)}
	if asOf != nil {
		fields = append(fields, zap.Time("as_of", *asOf))
	}
	c.logger.Warn("missing exchange rate, assuming 1", fields...)
	return one, nil
}

// Convert returns amount x Rate(from, to, asOf).
func (c *Converter) Convert(amount decimal.Decimal, from, to string, asOf *time.Time) (decimal.Decimal, error) {
	rate, err := c.Rate(from, to, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

// ConvertMoney expresses m in target.
func (c *Converter) ConvertMoney(m model.Money, target string, asOf *time.Time) (model.Money, error) {
	rate, err := c.Rate(m.Currency(), target, asOf)
	if err != nil {
		return model.Money{}, err
	}
	return m.Convert(target, rate)
}
