package accounts

import "github.com/cleared-dev/ledgerkit/internal/model"

// DefaultChart returns the chart of accounts every new ledger starts with.
// Each posting role has one account whose ID is the role name and whose
// code is the role's static code.
func DefaultChart() []model.Account {
	return []model.Account{
		{ID: "cash", Code: model.CodeCash, Name: "Cash", Type: model.AccountTypeAsset, Description: "Cash on hand"},
		{ID: "bank", Code: model.CodeBank, Name: "Bank", Type: model.AccountTypeAsset, Description: "Bank transfers"},
		{ID: "receivables", Code: model.CodeReceivables, Name: "Accounts Receivable", Type: model.AccountTypeAsset},
		{ID: "inventory", Code: model.CodeInventory, Name: "Inventory", Type: model.AccountTypeAsset, Description: "Goods held for sale"},
		{ID: "payables", Code: model.CodePayables, Name: "Accounts Payable", Type: model.AccountTypeLiability},
		{ID: "capital", Code: "3100", Name: "Owner's Capital", Type: model.AccountTypeEquity},
		{ID: "retained_earnings", Code: model.CodeRetainedEarnings, Name: "Retained Earnings", Type: model.AccountTypeEquity},
		{ID: "sales_revenue", Code: model.CodeSalesRevenue, Name: "Sales Revenue", Type: model.AccountTypeRevenue},
		{ID: "fx_gain", Code: model.CodeFXGain, Name: "Exchange Gain", Type: model.AccountTypeRevenue},
		{ID: "cogs", Code: model.CodeCOGS, Name: "Cost of Goods Sold", Type: model.AccountTypeExpense},
		{ID: "general_expense", Code: model.CodeOperatingExpense, Name: "Operating Expenses", Type: model.AccountTypeExpense},
		{ID: "fx_loss", Code: model.CodeFXLoss, Name: "Exchange Loss", Type: model.AccountTypeExpense},
	}
}
