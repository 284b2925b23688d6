// Package tax computes sales tax from percentage rates.
package tax

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

func fraction(ratePercent decimal.Decimal) decimal.Decimal {
	return ratePercent.Div(hundred)
}

// Tax returns the tax due on a net amount at ratePercent (15 means 15%).
func Tax(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return amount.Mul(fraction(ratePercent))
}

// AmountBeforeTax strips tax out of a gross amount.
func AmountBeforeTax(gross, ratePercent decimal.Decimal) decimal.Decimal {
	return gross.Div(decimal.NewFromInt(1).Add(fraction(ratePercent)))
}

// TotalWithTax returns the net amount plus tax.
func TotalWithTax(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(1).Add(fraction(ratePercent)))
}
