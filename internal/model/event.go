package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBaseCurrency is the reporting currency assumed when an event names none.
const DefaultBaseCurrency = "SAR"

// PaymentMethod is how a sale or purchase is settled.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCredit       PaymentMethod = "credit"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// ErrUnknownPaymentMethod is returned for a payment method other than cash, credit or bank_transfer.
var ErrUnknownPaymentMethod = errors.New("unknown payment method")

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCredit, PaymentBankTransfer:
		return true
	}
	return false
}

// VoucherType is the direction of a cash voucher.
type VoucherType string

const (
	VoucherReceipt VoucherType = "receipt"
	VoucherPayment VoucherType = "payment"
)

// EventKind tags the business event variants.
type EventKind string

const (
	KindSale     EventKind = "sale"
	KindSaleCost EventKind = "sale_cost"
	KindPurchase EventKind = "purchase"
	KindExpense  EventKind = "expense"
	KindVoucher  EventKind = "voucher"
	KindManual   EventKind = "manual"
)

// Event is a business event that posts to the journal. The set of
// implementations is closed to this package.
type Event interface {
	Kind() EventKind
	EventDate() time.Time
	isEvent()
}

// Pricing carries the monetary fields shared by sales and purchases.
type Pricing struct {
	Currency     string
	ExchangeRate decimal.Decimal // zero means 1
}

// CurrencyOr returns the event currency, or base when none is set.
func (p Pricing) CurrencyOr(base string) string {
	if p.Currency == "" {
		return base
	}
	return p.Currency
}

// Rate returns the event's exchange rate, defaulting to 1.
func (p Pricing) Rate() decimal.Decimal {
	if p.ExchangeRate.IsZero() {
		return decimal.NewFromInt(1)
	}
	return p.ExchangeRate
}

// Sale is an invoice issued to a customer.
type Sale struct {
	Pricing
	InvoiceNumber string
	Date          time.Time
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	PaymentMethod PaymentMethod
}

// Total returns subtotal - discount + tax.
func (s Sale) Total() decimal.Decimal {
	return s.Subtotal.Sub(s.Discount).Add(s.Tax)
}

// SaleItem is a sold line item with its inventory cost.
type SaleItem struct {
	ProductName string
	Quantity    decimal.Decimal
	CostPrice   decimal.Decimal
}

// SaleCost recognizes the inventory cost of a sale.
type SaleCost struct {
	InvoiceNumber string
	Date          time.Time
	Items         []SaleItem
}

// TotalCost returns the sum of quantity x cost price over all items.
func (c SaleCost) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Quantity.Mul(it.CostPrice))
	}
	return total
}

// Purchase is a supplier invoice for inventory.
type Purchase struct {
	Pricing
	InvoiceNumber string
	Date          time.Time
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	PaymentMethod PaymentMethod
}

// Total returns subtotal - discount + tax.
func (p Purchase) Total() decimal.Decimal {
	return p.Subtotal.Sub(p.Discount).Add(p.Tax)
}

// Expense is an operating expense paid from cash or bank.
type Expense struct {
	Pricing
	ExpenseNumber string
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	AccountID     AccountID
}

// Voucher is a receipt from a customer or a payment to a supplier.
type Voucher struct {
	Pricing
	VoucherNumber       string
	Date                time.Time
	Type                VoucherType
	Amount              decimal.Decimal
	PartyName           string
	PartyAccountID      AccountID
	InvoiceExchangeRate decimal.Decimal // zero means same as ExchangeRate
}

// InvoiceRate returns the rate of the settled invoice, defaulting to the voucher's own rate.
func (v Voucher) InvoiceRate() decimal.Decimal {
	if v.InvoiceExchangeRate.IsZero() {
		return v.Rate()
	}
	return v.InvoiceExchangeRate
}

// ManualTransaction is a user-entered voucher between two explicit accounts.
type ManualTransaction struct {
	Pricing
	Reference     string
	Date          time.Time
	Description   string
	DebitAccount  AccountID
	DebitCode     AccountCode
	CreditAccount AccountID
	CreditCode    AccountCode
	Amount        decimal.Decimal
}

func (Sale) Kind() EventKind              { return KindSale }
func (SaleCost) Kind() EventKind          { return KindSaleCost }
func (Purchase) Kind() EventKind          { return KindPurchase }
func (Expense) Kind() EventKind           { return KindExpense }
func (Voucher) Kind() EventKind           { return KindVoucher }
func (ManualTransaction) Kind() EventKind { return KindManual }

func (s Sale) EventDate() time.Time              { return s.Date }
func (c SaleCost) EventDate() time.Time          { return c.Date }
func (p Purchase) EventDate() time.Time          { return p.Date }
func (e Expense) EventDate() time.Time           { return e.Date }
func (v Voucher) EventDate() time.Time           { return v.Date }
func (m ManualTransaction) EventDate() time.Time { return m.Date }

func (Sale) isEvent()              {}
func (SaleCost) isEvent()          {}
func (Purchase) isEvent()          {}
func (Expense) isEvent()           {}
func (Voucher) isEvent()           {}
func (ManualTransaction) isEvent() {}
