package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// AccountID is an opaque account identifier supplied by the caller.
type AccountID string

// AccountCode is the fixed numeric code of an account, kept as a string.
type AccountCode string

// Default account codes.
const (
	CodeCash             AccountCode = "1111"
	CodeBank             AccountCode = "1112"
	CodeReceivables      AccountCode = "1120"
	CodeInventory        AccountCode = "1130"
	CodePayables         AccountCode = "2110"
	CodeRetainedEarnings AccountCode = "3200"
	CodeSalesRevenue     AccountCode = "4100"
	CodeFXGain           AccountCode = "400001"
	CodeCOGS             AccountCode = "5100"
	CodeOperatingExpense AccountCode = "5200"
	CodeFXLoss           AccountCode = "500001"
)

// Role is the semantic purpose an account plays when posting business events.
type Role string

const (
	RoleCash             Role = "cash"
	RoleBank             Role = "bank"
	RoleReceivables      Role = "receivables"
	RoleInventory        Role = "inventory"
	RolePayables         Role = "payables"
	RoleRetainedEarnings Role = "retained_earnings"
	RoleSalesRevenue     Role = "sales_revenue"
	RoleFXGain           Role = "fx_gain"
	RoleCOGS             Role = "cogs"
	RoleGeneralExpense   Role = "general_expense"
	RoleFXLoss           Role = "fx_loss"
)

var roleCodes = map[Role]AccountCode{
	RoleCash:             CodeCash,
	RoleBank:             CodeBank,
	RoleReceivables:      CodeReceivables,
	RoleInventory:        CodeInventory,
	RolePayables:         CodePayables,
	RoleRetainedEarnings: CodeRetainedEarnings,
	RoleSalesRevenue:     CodeSalesRevenue,
	RoleFXGain:           CodeFXGain,
	RoleCOGS:             CodeCOGS,
	RoleGeneralExpense:   CodeOperatingExpense,
	RoleFXLoss:           CodeFXLoss,
}

// Roles lists every role in code order.
func Roles() []Role {
	return []Role{
		RoleCash, RoleBank, RoleReceivables, RoleInventory, RolePayables,
		RoleRetainedEarnings, RoleSalesRevenue, RoleFXGain,
		RoleCOGS, RoleGeneralExpense, RoleFXLoss,
	}
}

// Code returns the static account code for a role, or "" for an unknown role.
func (r Role) Code() AccountCode {
	return roleCodes[r]
}

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	ID          AccountID
	Code        AccountCode
	Name        string
	Type        AccountType
	ParentID    AccountID // "" = top-level
	Description string
}

// DebitNormal reports whether the account's balance normally sits on the debit side.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}
