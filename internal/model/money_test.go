package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestMoneyAdd(t *testing.T) {
	a := NewMoney(dec("100"), "SAR")
	b := NewMoney(dec("50"), "SAR")

	got, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, got.Amount().Equal(dec("150")))
	assert.Equal(t, "SAR", got.Currency())

	got, err = a.Sub(b)
	require.NoError(t, err)
	assert.True(t, got.Amount().Equal(dec("50")))
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	a := NewMoney(dec("100"), "SAR")
	b := NewMoney(dec("50"), "USD")

	_, err := a.Add(b)
	require.ErrorIs(t, err, ErrCurrencyMismatch)

	_, err = a.Sub(b)
	require.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoneyConvert(t *testing.T) {
	usd := NewMoney(dec("10"), "USD")

	sar, err := usd.Convert("SAR", dec("3.75"))
	require.NoError(t, err)
	assert.True(t, sar.Equal(NewMoney(dec("37.5"), "SAR")))

	_, err = usd.Convert("SAR", decimal.Zero)
	require.ErrorIs(t, err, ErrNonPositiveRate)
}

func TestMoneyRoundAndZero(t *testing.T) {
	assert.True(t, NewMoney(dec("1.005"), "SAR").Round(2).Amount().Equal(dec("1.01")))
	assert.True(t, NewMoney(dec("-1.005"), "SAR").Round(2).Amount().Equal(dec("-1.01")))

	assert.True(t, NewMoney(dec("0.00009"), "SAR").IsZero())
	assert.False(t, NewMoney(dec("0.0001"), "SAR").IsZero())
	assert.False(t, Zero("SAR").IsPositive())
	assert.Equal(t, "12.50 USD", NewMoney(dec("12.5"), "USD").String())
}

func TestMoneyMul(t *testing.T) {
	got := NewMoney(dec("12.5"), "USD").Mul(dec("4"))
	assert.True(t, got.Equal(NewMoney(dec("50"), "USD")))
}
