package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestTax(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		tax    string
		total  string
	}{
		{"vat 15", "1000", "15", "150", "1150"},
		{"zero rate", "250", "0", "0", "250"},
		{"fractional", "99.99", "5", "4.9995", "104.9895"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Tax(dec(tt.amount), dec(tt.rate)).Equal(dec(tt.tax)))
			assert.True(t, TotalWithTax(dec(tt.amount), dec(tt.rate)).Equal(dec(tt.total)))
		})
	}
}

func TestAmountBeforeTax(t *testing.T) {
	assert.True(t, AmountBeforeTax(dec("1150"), dec("15")).Equal(dec("1000")))
	assert.True(t, AmountBeforeTax(dec("80"), dec("0")).Equal(dec("80")))

	net := AmountBeforeTax(dec("100"), dec("15"))
	assert.True(t, TotalWithTax(net, dec("15")).Round(2).Equal(dec("100")))
}
