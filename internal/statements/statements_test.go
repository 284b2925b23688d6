package statements

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerkit/internal/ledger"
	"github.com/cleared-dev/ledgerkit/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func item(id string, typ model.AccountType, debit, credit string) Item {
	return Item{
		Account: model.Account{ID: model.AccountID(id), Name: id, Type: typ},
		Debit:   dec(debit),
		Credit:  dec(credit),
	}
}

func TestTradingAccount(t *testing.T) {
	got := TradingAccount(dec("10000"), dec("6000"), dec("2000"), dec("2500"))
	assert.True(t, got.GrossProfit.Equal(dec("4500")))
	assert.True(t, got.COGS.Equal(dec("5500")))
	assert.True(t, got.Sales.Sub(got.COGS).Equal(got.GrossProfit))
}

func TestProfitAndLoss_ChainsFromTrading(t *testing.T) {
	trading := TradingAccount(dec("10000"), dec("6000"), dec("2000"), dec("2500"))
	pl := ProfitAndLoss(trading.GrossProfit, dec("1200"), dec("300"))
	assert.True(t, pl.NetProfit.Equal(dec("3600")))
	assert.True(t, pl.GrossProfit.Equal(dec("4500")))
}

func TestAccountsSummary_DeductsPurchases(t *testing.T) {
	s := AccountsSummary(dec("10000"), dec("1500"), dec("6000"), dec("20000"), dec("8000"))
	assert.True(t, s.NetIncome.Equal(dec("2500")))
	assert.True(t, s.TotalEquity.Equal(dec("12000")))
	assert.True(t, s.TotalRevenue.Equal(dec("10000")))
}

func TestAccountBalance(t *testing.T) {
	tests := []struct {
		typ  model.AccountType
		want string
	}{
		{model.AccountTypeAsset, "70"},
		{model.AccountTypeExpense, "70"},
		{model.AccountTypeLiability, "-70"},
		{model.AccountTypeEquity, "-70"},
		{model.AccountTypeRevenue, "-70"},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.True(t, AccountBalance(item("x", tt.typ, "100", "30")).Equal(dec(tt.want)))
		})
	}
}

var period = []Item{
	item("cash", model.AccountTypeAsset, "15000", "0"),
	item("inv", model.AccountTypeAsset, "5000", "0"),
	item("ap", model.AccountTypeLiability, "0", "4000"),
	item("capital", model.AccountTypeEquity, "0", "12000"),
	item("sales", model.AccountTypeRevenue, "0", "10000"),
	item("cogs", model.AccountTypeExpense, "5500", "0"),
	item("rent", model.AccountTypeExpense, "500", "0"),
	item("idle", model.AccountTypeExpense, "100", "100"),
}

func TestIncomeStatement(t *testing.T) {
	is := IncomeStatement(period)
	assert.True(t, is.TotalRevenue.Equal(dec("10000")))
	assert.True(t, is.TotalExpenses.Equal(dec("6000")))
	assert.True(t, is.NetIncome.Equal(dec("4000")))
	assert.True(t, is.Profit)
	assert.Len(t, is.Expenses, 2, "zero-balance accounts are skipped")

	loss := IncomeStatement([]Item{item("rent", model.AccountTypeExpense, "10", "0")})
	assert.False(t, loss.Profit)
}

func TestBalanceSheet(t *testing.T) {
	bs := BalanceSheet(period)
	assert.True(t, bs.TotalAssets.Equal(dec("20000")))
	assert.True(t, bs.TotalLiabilities.Equal(dec("4000")))
	assert.True(t, bs.TotalEquity.Equal(dec("12000")))
	assert.True(t, bs.TotalLiabilitiesAndEquity.Equal(dec("16000")))
	assert.False(t, bs.Balanced, "period result is not closed into equity")

	closed := append([]Item{}, period...)
	closed[3] = item("capital", model.AccountTypeEquity, "0", "16000")
	assert.True(t, BalanceSheet(closed).Balanced)
}

func TestRatios(t *testing.T) {
	r := Ratios(BalanceSheet(period), IncomeStatement(period))
	assert.True(t, r.Current.Equal(dec("5")))
	assert.True(t, r.Quick.Equal(dec("4")))
	assert.True(t, r.DebtToEquity.Equal(dec("0.33")))
	assert.True(t, r.ProfitMargin.Equal(dec("40")))
	assert.True(t, r.ROE.Equal(dec("33.33")))

	empty := Ratios(Position{}, Income{})
	assert.True(t, empty.Current.IsZero())
	assert.True(t, empty.ROE.IsZero())
}

func TestComparePeriods(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		previous string
		trend    Trend
		pct      string
	}{
		{"up", "110", "100", TrendUp, "10"},
		{"down", "80", "100", TrendDown, "-20"},
		{"within one percent", "100.5", "100", TrendStable, "0.5"},
		{"no previous", "50", "0", TrendStable, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ComparePeriods(dec(tt.current), dec(tt.previous))
			assert.Equal(t, tt.trend, c.Trend)
			assert.True(t, c.ChangePercent.Equal(dec(tt.pct)), "got %s", c.ChangePercent)
		})
	}
}

func TestFinancialSummary(t *testing.T) {
	f := FinancialSummary([]decimal.Decimal{dec("100"), dec("-40.004"), dec("0"), dec("25.5")})
	assert.True(t, f.Revenue.Equal(dec("125.5")))
	assert.True(t, f.Cost.Equal(dec("40")))
	assert.True(t, f.Profit.Equal(dec("85.5")))
}

func TestPercentageChangeAndProfitability(t *testing.T) {
	assert.True(t, PercentageChange(dec("150"), dec("100")).Equal(dec("50")))
	assert.True(t, PercentageChange(dec("5"), dec("0")).Equal(dec("100")))
	assert.True(t, PercentageChange(dec("-5"), dec("0")).IsZero())
	assert.True(t, ProfitabilityRatio(dec("1"), dec("3")).Equal(dec("33.33")))
	assert.True(t, ProfitabilityRatio(dec("1"), decimal.Zero).IsZero())
}

func TestItemsFromTrialBalance(t *testing.T) {
	rows := ledger.TrialBalance([]ledger.Transaction{
		{AccountID: "acc-cash", AccountCode: "1111", Debit: dec("100"), Credit: decimal.Zero},
		{AccountID: "acc-sales", AccountCode: "4100", Debit: decimal.Zero, Credit: dec("100")},
		{AccountID: "legacy", AccountCode: "2999", Debit: decimal.Zero, Credit: dec("1")},
	})
	chart := []model.Account{
		{ID: "acc-cash", Code: "1111", Name: "Cash", Type: model.AccountTypeAsset},
		{ID: "other-id", Code: "4100", Name: "Sales", Type: model.AccountTypeRevenue},
	}

	items := ItemsFromTrialBalance(rows, chart)
	require.Len(t, items, 3)
	assert.Equal(t, "Cash", items[0].Account.Name)
	assert.Equal(t, model.AccountTypeLiability, items[1].Account.Type)
	assert.Equal(t, "Sales", items[2].Account.Name, "matched by code")
	assert.True(t, IncomeStatement(items).TotalRevenue.Equal(dec("100")))
}
