package statements

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerkit/internal/ledger"
	"github.com/cleared-dev/ledgerkit/internal/model"
)

// Tolerance is the report-level threshold for "balanced".
var Tolerance = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// Item is one account's closing position, typed by the chart of accounts.
type Item struct {
	Account model.Account
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// Net returns debit minus credit.
func (i Item) Net() decimal.Decimal {
	return i.Debit.Sub(i.Credit)
}

// AccountBalance returns the balance on the account's normal side: debit
// minus credit for assets and expenses, credit minus debit otherwise.
func AccountBalance(i Item) decimal.Decimal {
	if i.Account.Type.DebitNormal() {
		return i.Debit.Sub(i.Credit)
	}
	return i.Credit.Sub(i.Debit)
}

// typeFromCode infers an account type from the leading digit of its code.
func typeFromCode(code model.AccountCode) model.AccountType {
	switch {
	case strings.HasPrefix(string(code), "1"):
		return model.AccountTypeAsset
	case strings.HasPrefix(string(code), "2"):
		return model.AccountTypeLiability
	case strings.HasPrefix(string(code), "3"):
		return model.AccountTypeEquity
	case strings.HasPrefix(string(code), "4"):
		return model.AccountTypeRevenue
	default:
		return model.AccountTypeExpense
	}
}

// ItemsFromTrialBalance types trial balance rows using chart. Rows whose
// account is not in chart are matched by code, then typed by the leading
// digit of the code.
func ItemsFromTrialBalance(rows []ledger.Row, chart []model.Account) []Item {
	byID := make(map[model.AccountID]model.Account, len(chart))
	byCode := make(map[model.AccountCode]model.Account, len(chart))
	for _, a := range chart {
		byID[a.ID] = a
		if a.Code != "" {
			byCode[a.Code] = a
		}
	}

	items := make([]Item, 0, len(rows))
	for _, r := range rows {
		acct, ok := byID[r.AccountID]
		if !ok {
			acct, ok = byCode[r.AccountCode]
		}
		if !ok {
			acct = model.Account{ID: r.AccountID, Code: r.AccountCode, Name: r.AccountName, Type: typeFromCode(r.AccountCode)}
		}
		items = append(items, Item{Account: acct, Debit: r.ClosingDebit, Credit: r.ClosingCredit})
	}
	return items
}

func filter(items []Item, typ model.AccountType) ([]Item, decimal.Decimal) {
	var out []Item
	total := decimal.Zero
	for _, i := range items {
		if i.Account.Type != typ || i.Net().IsZero() {
			continue
		}
		out = append(out, i)
		total = total.Add(i.Net().Abs())
	}
	return out, total
}

// Income is an income statement.
type Income struct {
	Revenues      []Item
	Expenses      []Item
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetIncome     decimal.Decimal
	Profit        bool
}

// IncomeStatement sums revenue and expense accounts with a non-zero
// balance. Totals are rounded to 2 places.
func IncomeStatement(items []Item) Income {
	revenues, revenue := filter(items, model.AccountTypeRevenue)
	expenses, expense := filter(items, model.AccountTypeExpense)
	net := revenue.Sub(expense)
	return Income{
		Revenues:      revenues,
		Expenses:      expenses,
		TotalRevenue:  revenue.Round(2),
		TotalExpenses: expense.Round(2),
		NetIncome:     net.Round(2),
		Profit:        !net.IsNegative(),
	}
}

// Position is a balance sheet.
type Position struct {
	Assets                    []Item
	Liabilities               []Item
	Equity                    []Item
	TotalAssets               decimal.Decimal
	TotalLiabilities          decimal.Decimal
	TotalEquity               decimal.Decimal
	TotalLiabilitiesAndEquity decimal.Decimal
	Balanced                  bool
}

// BalanceSheet sums asset, liability and equity accounts. Revenue and
// expense accounts are not closed into equity, so an unclosed period with a
// non-zero result reports Balanced = false.
func BalanceSheet(items []Item) Position {
	assets, ta := filter(items, model.AccountTypeAsset)
	liabilities, tl := filter(items, model.AccountTypeLiability)
	equity, te := filter(items, model.AccountTypeEquity)
	tle := tl.Add(te)
	return Position{
		Assets:                    assets,
		Liabilities:               liabilities,
		Equity:                    equity,
		TotalAssets:               ta.Round(2),
		TotalLiabilities:          tl.Round(2),
		TotalEquity:               te.Round(2),
		TotalLiabilitiesAndEquity: tle.Round(2),
		Balanced:                  ta.Sub(tle).Abs().LessThan(Tolerance),
	}
}

// FinancialRatios are the headline ratios, rounded to 2 places. Percentages
// are expressed as 0-100.
type FinancialRatios struct {
	Current      decimal.Decimal
	Quick        decimal.Decimal
	DebtToEquity decimal.Decimal
	ProfitMargin decimal.Decimal
	ROE          decimal.Decimal
}

// Ratios treats every asset and liability as current. The quick ratio is
// estimated as 80% of the current ratio. A zero denominator yields 0.
func Ratios(bs Position, is Income) FinancialRatios {
	current := safeDiv(bs.TotalAssets, bs.TotalLiabilities)
	return FinancialRatios{
		Current:      current.Round(2),
		Quick:        current.Mul(decimal.New(8, -1)).Round(2),
		DebtToEquity: safeDiv(bs.TotalLiabilities, bs.TotalEquity).Round(2),
		ProfitMargin: safeDiv(is.NetIncome, is.TotalRevenue).Mul(hundred).Round(2),
		ROE:          safeDiv(is.NetIncome, bs.TotalEquity).Mul(hundred).Round(2),
	}
}

func safeDiv(a, b decimal.Decimal) decimal.Decimal {
	if !b.IsPositive() {
		return decimal.Zero
	}
	return a.Div(b)
}

// Trend is the direction of a period-over-period change.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Comparison compares a value across two periods.
type Comparison struct {
	Current       decimal.Decimal
	Previous      decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	Trend         Trend
}

// ComparePeriods reports the change from previous to current. Moves of 1%
// or less are stable; a zero previous value gives a 0% change.
func ComparePeriods(current, previous decimal.Decimal) Comparison {
	change := current.Sub(previous)
	pct := decimal.Zero
	if !previous.IsZero() {
		pct = change.Div(previous).Mul(hundred)
	}
	trend := TrendStable
	if pct.Abs().GreaterThan(decimal.NewFromInt(1)) {
		trend = TrendDown
		if change.IsPositive() {
			trend = TrendUp
		}
	}
	return Comparison{
		Current:       current.Round(2),
		Previous:      previous.Round(2),
		Change:        change.Round(2),
		ChangePercent: pct.Round(2),
		Trend:         trend,
	}
}
