package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoleCode(t *testing.T) {
	tests := []struct {
		role Role
		want AccountCode
	}{
		{RoleCash, "1111"},
		{RoleReceivables, "1120"},
		{RolePayables, "2110"},
		{RoleSalesRevenue, "4100"},
		{RoleCOGS, "5100"},
		{RoleInventory, "1130"},
		{RoleGeneralExpense, "5200"},
		{Role("nope"), ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.Code(), "Code(%q)", tt.role)
	}
	for _, r := range Roles() {
		assert.NotEmpty(t, r.Code(), "role %q has no code", r)
	}
}

func TestEventTotals(t *testing.T) {
	sale := Sale{Subtotal: dec("1000"), Tax: dec("150")}
	assert.True(t, sale.Total().Equal(dec("1150")))

	purchase := Purchase{Subtotal: dec("5000"), Discount: dec("500"), Tax: dec("675")}
	assert.True(t, purchase.Total().Equal(dec("5175")))

	cost := SaleCost{Items: []SaleItem{
		{Quantity: dec("2"), CostPrice: dec("10.50")},
		{Quantity: dec("3"), CostPrice: dec("4")},
	}}
	assert.True(t, cost.TotalCost().Equal(dec("33")))
}

func TestPricingDefaults(t *testing.T) {
	var p Pricing
	assert.Equal(t, "SAR", p.CurrencyOr(DefaultBaseCurrency))
	assert.True(t, p.Rate().Equal(dec("1")))

	p = Pricing{Currency: "USD", ExchangeRate: dec("3.75")}
	assert.Equal(t, "USD", p.CurrencyOr(DefaultBaseCurrency))
	assert.True(t, p.Rate().Equal(dec("3.75")))

	v := Voucher{Pricing: p}
	assert.True(t, v.InvoiceRate().Equal(dec("3.75")))
	v.InvoiceExchangeRate = dec("3.70")
	assert.True(t, v.InvoiceRate().Equal(dec("3.70")))
}

func TestNewLineBaseAmounts(t *testing.T) {
	l := NewLine("acc-1", CodeCash, dec("100"), decimal.Zero, "USD", dec("3.75"), "x")
	assert.True(t, l.DebitBase.Equal(dec("375")))
	assert.True(t, l.CreditBase.IsZero())
	assert.True(t, l.IsDebit())
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentCash, PaymentCredit, PaymentBankTransfer} {
		assert.True(t, m.Valid(), "%q", m)
	}
	for _, m := range []PaymentMethod{"", "csah", "Cash"} {
		assert.False(t, m.Valid(), "%q", m)
	}
}
