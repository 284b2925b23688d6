package journal

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

var (
	// ErrInvariant is returned when a builder produces lines that do not balance.
	// It always indicates a defect in the builder, never bad caller input.
	ErrInvariant = errors.New("journal builder invariant violated")
	// ErrMissingAccount is returned when a required role account is not supplied.
	ErrMissingAccount = errors.New("missing account for role")
	// ErrInvalidAmount is returned when an event amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Result is the output of a journal builder.
type Result struct {
	Lines       []model.JournalLine
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balanced    bool
	Description string
}

// Empty reports whether the builder decided that nothing should be posted.
func (r Result) Empty() bool {
	return len(r.Lines) == 0
}

// RoleAccounts maps each posting role to the concrete account the caller wants used.
type RoleAccounts map[model.Role]model.AccountID

func (ra RoleAccounts) get(role model.Role) (model.AccountID, error) {
	id := ra[role]
	if id == "" {
		return "", fmt.Errorf("%s: %w", role, ErrMissingAccount)
	}
	return id, nil
}

// FXAccounts names the accounts that absorb exchange differences on vouchers.
type FXAccounts struct {
	Gain         model.AccountID
	Loss         model.AccountID
	BaseCurrency string
}

// settlementRole picks the role for the cash side of a sale or purchase.
func settlementRole(method model.PaymentMethod, creditRole model.Role) (model.Role, error) {
	switch method {
	case model.PaymentCash:
		return model.RoleCash, nil
	case model.PaymentBankTransfer:
		return model.RoleBank, nil
	case model.PaymentCredit:
		return creditRole, nil
	default:
		return "", fmt.Errorf("payment method %q: %w", method, model.ErrUnknownPaymentMethod)
	}
}

func checkAmount(what string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%s: amount %s: %w", what, amount, ErrInvalidAmount)
	}
	return nil
}

func checkRate(what string, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return fmt.Errorf("%s: rate %s: %w", what, rate, model.ErrNonPositiveRate)
	}
	return nil
}

func checkPricing(what string, amount, rate decimal.Decimal) error {
	if err := checkAmount(what, amount); err != nil {
		return err
	}
	return checkRate(what, rate)
}

func finish(lines []model.JournalLine, description string) (Result, error) {
	debit, credit := Totals(lines)
	res := Result{
		Lines:       lines,
		TotalDebit:  debit,
		TotalCredit: credit,
		Balanced:    IsBalanced(lines),
		Description: description,
	}
	for i, l := range lines {
		errs := lineErrors(i, l)
		if len(errs) == 0 {
			continue
		}
		if l.AccountID == "" {
			return res, fmt.Errorf("%s: %w: %w", description, errs[0], ErrMissingAccount)
		}
		return res, fmt.Errorf("%s: %w: %w", description, errs[0], ErrInvariant)
	}
	if !res.Balanced {
		return res, fmt.Errorf("%s: debits %s != credits %s: %w", description, debit, credit, ErrInvariant)
	}
	return res, nil
}

// BuildSale debits cash, bank or receivables (by payment method) and credits sales revenue for the sale total.
func BuildSale(sale model.Sale, debitAccount, salesAccount model.AccountID) (Result, error) {
	currency := sale.CurrencyOr(model.DefaultBaseCurrency)
	rate := sale.Rate()
	total := sale.Total()
	what := "sale " + sale.InvoiceNumber
	if err := checkPricing(what, total, rate); err != nil {
		return Result{}, err
	}
	role, err := settlementRole(sale.PaymentMethod, model.RoleReceivables)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", what, err)
	}

	lines := []model.JournalLine{
		model.NewLine(debitAccount, role.Code(),
			total, decimal.Zero, currency, rate, "Sales invoice "+sale.InvoiceNumber),
		model.NewLine(salesAccount, model.CodeSalesRevenue,
			decimal.Zero, total, currency, rate, "Sales revenue invoice "+sale.InvoiceNumber),
	}
	return finish(lines, "Sale: invoice "+sale.InvoiceNumber)
}

// BuildCOGS debits cost of goods sold and credits inventory for the cost of the sold items.
// A costless sale yields an empty, balanced result.
func BuildCOGS(invoiceRef string, items []model.SaleItem, cogsAccount, inventoryAccount model.AccountID) (Result, error) {
	return buildCOGS(invoiceRef, items, cogsAccount, inventoryAccount, model.DefaultBaseCurrency)
}

func buildCOGS(invoiceRef string, items []model.SaleItem, cogsAccount, inventoryAccount model.AccountID, base string) (Result, error) {
	totalCost := model.SaleCost{Items: items}.TotalCost()
	if totalCost.IsNegative() {
		return Result{}, fmt.Errorf("cost of sales %s: amount %s: %w", invoiceRef, totalCost, ErrInvalidAmount)
	}
	if totalCost.IsZero() {
		return Result{
			TotalDebit:  decimal.Zero,
			TotalCredit: decimal.Zero,
			Balanced:    true,
			Description: "No cost",
		}, nil
	}

	one := decimal.NewFromInt(1)
	lines := []model.JournalLine{
		model.NewLine(cogsAccount, model.CodeCOGS,
			totalCost, decimal.Zero, base, one, "Cost of sales invoice "+invoiceRef),
		model.NewLine(inventoryAccount, model.CodeInventory,
			decimal.Zero, totalCost, base, one, "Inventory issue invoice "+invoiceRef),
	}
	return finish(lines, "Cost of sales: invoice "+invoiceRef)
}

// BuildPurchase debits inventory and credits payables, cash or bank (by payment method)
// for subtotal - discount + tax.
func BuildPurchase(purchase model.Purchase, inventoryAccount, settlementAccount model.AccountID) (Result, error) {
	currency := purchase.CurrencyOr(model.DefaultBaseCurrency)
	rate := purchase.Rate()
	amount := purchase.Total()
	what := "purchase " + purchase.InvoiceNumber
	if err := checkPricing(what, amount, rate); err != nil {
		return Result{}, err
	}
	role, err := settlementRole(purchase.PaymentMethod, model.RolePayables)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", what, err)
	}

	lines := []model.JournalLine{
		model.NewLine(inventoryAccount, model.CodeInventory,
			amount, decimal.Zero, currency, rate, "Goods purchased invoice "+purchase.InvoiceNumber),
		model.NewLine(settlementAccount, role.Code(),
			decimal.Zero, amount, currency, rate, "Purchase due invoice "+purchase.InvoiceNumber),
	}
	return finish(lines, "Purchase: invoice "+purchase.InvoiceNumber)
}

// BuildExpense debits the expense's own account and credits the settlement account.
func BuildExpense(expense model.Expense, settlementAccount model.AccountID) (Result, error) {
	currency := expense.CurrencyOr(model.DefaultBaseCurrency)
	rate := expense.Rate()
	if err := checkPricing("expense "+expense.ExpenseNumber, expense.Amount, rate); err != nil {
		return Result{}, err
	}

	desc := expense.Description
	if desc == "" {
		desc = "Expense " + expense.ExpenseNumber
	}
	lines := []model.JournalLine{
		model.NewLine(expense.AccountID, model.CodeOperatingExpense,
			expense.Amount, decimal.Zero, currency, rate, desc),
		model.NewLine(settlementAccount, model.CodeCash,
			decimal.Zero, expense.Amount, currency, rate, "Expense paid "+expense.ExpenseNumber),
	}
	return finish(lines, "Expense: "+desc)
}

// BuildVoucher posts a receipt (debit cash, credit the customer) or a payment
// (debit the supplier, credit cash). The party side is valued at the invoice
// rate; any base-currency difference goes to the FX gain or loss account.
func BuildVoucher(voucher model.Voucher, cashAccount model.AccountID, fx FXAccounts) (Result, error) {
	base := fx.BaseCurrency
	if base == "" {
		base = model.DefaultBaseCurrency
	}
	currency := voucher.CurrencyOr(base)
	rate := voucher.Rate()
	invoiceRate := voucher.InvoiceRate()
	what := "voucher " + voucher.VoucherNumber
	if err := checkPricing(what, voucher.Amount, rate); err != nil {
		return Result{}, err
	}
	if err := checkRate(what+" invoice", invoiceRate); err != nil {
		return Result{}, err
	}

	var lines []model.JournalLine
	switch voucher.Type {
	case model.VoucherReceipt:
		lines = []model.JournalLine{
			model.NewLine(cashAccount, model.CodeCash,
				voucher.Amount, decimal.Zero, currency, rate, "Receipt voucher "+voucher.VoucherNumber),
			model.NewLine(voucher.PartyAccountID, model.CodeReceivables,
				decimal.Zero, voucher.Amount, currency, invoiceRate, "Received from "+voucher.PartyName),
		}
	case model.VoucherPayment:
		lines = []model.JournalLine{
			model.NewLine(voucher.PartyAccountID, model.CodePayables,
				voucher.Amount, decimal.Zero, currency, invoiceRate, "Paid to "+voucher.PartyName),
			model.NewLine(cashAccount, model.CodeCash,
				decimal.Zero, voucher.Amount, currency, rate, "Payment voucher "+voucher.VoucherNumber),
		}
	default:
		return Result{}, fmt.Errorf("voucher %s: unknown type %q", voucher.VoucherNumber, voucher.Type)
	}

	// Positive diff means cash moved more base currency than the invoice carried.
	diff := voucher.Amount.Mul(rate).Sub(voucher.Amount.Mul(invoiceRate))
	gain := diff.IsPositive() == (voucher.Type == model.VoucherReceipt)
	if !diff.IsZero() {
		one := decimal.NewFromInt(1)
		if gain {
			if fx.Gain == "" {
				return Result{}, fmt.Errorf("voucher %s: %s: %w", voucher.VoucherNumber, model.RoleFXGain, ErrMissingAccount)
			}
			lines = append(lines, model.NewLine(fx.Gain, model.CodeFXGain,
				decimal.Zero, diff.Abs(), base, one, "FX gain voucher "+voucher.VoucherNumber))
		} else {
			if fx.Loss == "" {
				return Result{}, fmt.Errorf("voucher %s: %s: %w", voucher.VoucherNumber, model.RoleFXLoss, ErrMissingAccount)
			}
			lines = append(lines, model.NewLine(fx.Loss, model.CodeFXLoss,
				diff.Abs(), decimal.Zero, base, one, "FX loss voucher "+voucher.VoucherNumber))
		}
	}

	return finish(lines, fmt.Sprintf("%s voucher %s", voucher.Type, voucher.VoucherNumber))
}

// BuildManual posts a manual voucher between two explicit accounts.
func BuildManual(txn model.ManualTransaction) (Result, error) {
	currency := txn.CurrencyOr(model.DefaultBaseCurrency)
	rate := txn.Rate()
	if err := checkPricing("manual "+txn.Reference, txn.Amount, rate); err != nil {
		return Result{}, err
	}

	lines := []model.JournalLine{
		model.NewLine(txn.DebitAccount, txn.DebitCode, txn.Amount, decimal.Zero, currency, rate, txn.Description),
		model.NewLine(txn.CreditAccount, txn.CreditCode, decimal.Zero, txn.Amount, currency, rate, txn.Description),
	}
	return finish(lines, "Manual: "+txn.Reference)
}

// Poster resolves role accounts and the reporting currency for Build.
type Poster struct {
	Accounts     RoleAccounts
	BaseCurrency string // empty means model.DefaultBaseCurrency
}

// Build dispatches an event to its builder, resolving role accounts from accts.
func Build(event model.Event, accts RoleAccounts) (Result, error) {
	return Poster{Accounts: accts}.Build(event)
}

func (p Poster) base() string {
	if p.BaseCurrency == "" {
		return model.DefaultBaseCurrency
	}
	return p.BaseCurrency
}

// Build dispatches an event to its builder. Events without a currency are
// posted in the poster's base currency.
func (p Poster) Build(event model.Event) (Result, error) {
	accts := p.Accounts
	base := p.base()

	switch e := event.(type) {
	case model.Sale:
		e.Currency = e.CurrencyOr(base)
		role, err := settlementRole(e.PaymentMethod, model.RoleReceivables)
		if err != nil {
			return Result{}, fmt.Errorf("sale %s: %w", e.InvoiceNumber, err)
		}
		debit, err := accts.get(role)
		if err != nil {
			return Result{}, err
		}
		sales, err := accts.get(model.RoleSalesRevenue)
		if err != nil {
			return Result{}, err
		}
		return BuildSale(e, debit, sales)

	case model.SaleCost:
		cogs, err := accts.get(model.RoleCOGS)
		if err != nil {
			return Result{}, err
		}
		inventory, err := accts.get(model.RoleInventory)
		if err != nil {
			return Result{}, err
		}
		return buildCOGS(e.InvoiceNumber, e.Items, cogs, inventory, base)

	case model.Purchase:
		e.Currency = e.CurrencyOr(base)
		inventory, err := accts.get(model.RoleInventory)
		if err != nil {
			return Result{}, err
		}
		role, err := settlementRole(e.PaymentMethod, model.RolePayables)
		if err != nil {
			return Result{}, fmt.Errorf("purchase %s: %w", e.InvoiceNumber, err)
		}
		settle, err := accts.get(role)
		if err != nil {
			return Result{}, err
		}
		return BuildPurchase(e, inventory, settle)

	case model.Expense:
		e.Currency = e.CurrencyOr(base)
		if e.AccountID == "" {
			e.AccountID = accts[model.RoleGeneralExpense]
		}
		if e.AccountID == "" {
			return Result{}, fmt.Errorf("expense %s: %s: %w", e.ExpenseNumber, model.RoleGeneralExpense, ErrMissingAccount)
		}
		cash, err := accts.get(model.RoleCash)
		if err != nil {
			return Result{}, err
		}
		return BuildExpense(e, cash)

	case model.Voucher:
		e.Currency = e.CurrencyOr(base)
		cash, err := accts.get(model.RoleCash)
		if err != nil {
			return Result{}, err
		}
		return BuildVoucher(e, cash, FXAccounts{
			Gain:         accts[model.RoleFXGain],
			Loss:         accts[model.RoleFXLoss],
			BaseCurrency: base,
		})

	case model.ManualTransaction:
		e.Currency = e.CurrencyOr(base)
		return BuildManual(e)

	default:
		return Result{}, fmt.Errorf("unsupported event %T", event)
	}
}
