// Package statements derives trading, profit-and-loss and summary figures
// from aggregated ledger totals. Every function here is pure arithmetic.
package statements

import "github.com/shopspring/decimal"

// Summary is the dashboard view of a ledger.
type Summary struct {
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
	TotalRevenue     decimal.Decimal
	TotalExpenses    decimal.Decimal
	NetIncome        decimal.Decimal
}

// AccountsSummary computes the dashboard summary. Purchases are deducted
// directly from net income instead of flowing through inventory; use
// TradingAccount for gross profit.
func AccountsSummary(revenue, expenses, purchases, assets, liabilities decimal.Decimal) Summary {
	return Summary{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		TotalEquity:      assets.Sub(liabilities),
		TotalRevenue:     revenue,
		TotalExpenses:    expenses,
		NetIncome:        revenue.Sub(expenses).Sub(purchases),
	}
}

// Trading is the trading account for a period.
type Trading struct {
	Sales            decimal.Decimal
	Purchases        decimal.Decimal
	OpeningInventory decimal.Decimal
	ClosingInventory decimal.Decimal
	COGS             decimal.Decimal
	GrossProfit      decimal.Decimal
}

// TradingAccount computes COGS = opening + purchases - closing and
// gross profit = sales - COGS.
func TradingAccount(sales, purchases, openingInventory, closingInventory decimal.Decimal) Trading {
	cogs := openingInventory.Add(purchases).Sub(closingInventory)
	return Trading{
		Sales:            sales,
		Purchases:        purchases,
		OpeningInventory: openingInventory,
		ClosingInventory: closingInventory,
		COGS:             cogs,
		GrossProfit:      sales.Add(closingInventory).Sub(purchases).Sub(openingInventory),
	}
}

// PL is the profit-and-loss account for a period.
type PL struct {
	GrossProfit decimal.Decimal
	Expenses    decimal.Decimal
	OtherIncome decimal.Decimal
	NetProfit   decimal.Decimal
}

// ProfitAndLoss computes net profit from the trading account's gross profit.
func ProfitAndLoss(grossProfit, expenses, otherIncome decimal.Decimal) PL {
	return PL{
		GrossProfit: grossProfit,
		Expenses:    expenses,
		OtherIncome: otherIncome,
		NetProfit:   grossProfit.Add(otherIncome).Sub(expenses),
	}
}
