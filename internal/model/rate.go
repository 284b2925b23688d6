package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a directional rate: 1 unit of From buys Rate units of To.
type ExchangeRate struct {
	From   string
	To     string
	Rate   decimal.Decimal
	Date   time.Time
	Source string
}

// Matches reports whether the record covers the unordered pair {a, b}.
func (r ExchangeRate) Matches(a, b string) bool {
	return (r.From == a && r.To == b) || (r.From == b && r.To == a)
}

// SymbolPosition controls where a currency symbol is placed.
type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// Currency describes a currency the business works with.
type Currency struct {
	Code           string         `yaml:"code"`
	Name           string         `yaml:"name"`
	Symbol         string         `yaml:"symbol"`
	DecimalPlaces  int32          `yaml:"decimal_places"`
	SymbolPosition SymbolPosition `yaml:"symbol_position"`
}
