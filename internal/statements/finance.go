package statements

import "github.com/shopspring/decimal"

// Finance is revenue, cost and profit over a set of signed amounts.
type Finance struct {
	Revenue decimal.Decimal
	Cost    decimal.Decimal
	Profit  decimal.Decimal
}

// FinancialSummary treats positive amounts as revenue and negative amounts
// as cost. Results are rounded to 2 places.
func FinancialSummary(amounts []decimal.Decimal) Finance {
	revenue, cost := decimal.Zero, decimal.Zero
	for _, a := range amounts {
		switch {
		case a.IsPositive():
			revenue = revenue.Add(a)
		case a.IsNegative():
			cost = cost.Add(a.Abs())
		}
	}
	return Finance{
		Revenue: revenue.Round(2),
		Cost:    cost.Round(2),
		Profit:  revenue.Sub(cost).Round(2),
	}
}

// PercentageChange returns the change from previous to current in percent.
// With a zero previous value it returns 100 for growth and 0 otherwise.
func PercentageChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

// ProfitabilityRatio returns profit as a percentage of revenue, 0 when revenue is 0.
func ProfitabilityRatio(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred).Round(2)
}
