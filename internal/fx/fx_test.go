package fx

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

var history = []model.ExchangeRate{
	{From: "USD", To: "SAR", Rate: dec("3.75"), Date: date(2025, 1, 1)},
	{From: "USD", To: "SAR", Rate: dec("3.76"), Date: date(2025, 3, 1)},
	{From: "SAR", To: "USD", Rate: dec("0.25"), Date: date(2025, 6, 1)},
	{From: "EUR", To: "SAR", Rate: dec("4.10"), Date: date(2025, 2, 1)},
}

func TestLookup_Identity(t *testing.T) {
	table := NewTable(history)
	for _, cur := range []string{"SAR", "USD", "XYZ"} {
		rate, found := table.Lookup(cur, cur, ptr(date(1999, 1, 1)))
		assert.True(t, found)
		assert.True(t, rate.Equal(one), "identity rate for %s", cur)
	}

	conv := NewConverter(NewTable(nil))
	got, err := conv.Convert(dec("12.34"), "EUR", "EUR", nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("12.34")))
}

func TestLookup_MostRecentOnOrBefore(t *testing.T) {
	table := NewTable(history)
	tests := []struct {
		name string
		asOf *time.Time
		want decimal.Decimal
	}{
		{"first record", ptr(date(2025, 1, 15)), dec("3.75")},
		{"on the date", ptr(date(2025, 3, 1)), dec("3.76")},
		{"reversed record wins", ptr(date(2025, 7, 1)), one.Div(dec("0.25"))},
		{"no date takes latest", nil, dec("4")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, found := table.Lookup("USD", "SAR", tt.asOf)
			require.True(t, found)
			assert.True(t, rate.Equal(tt.want), "got %s want %s", rate, tt.want)
		})
	}

	_, found := table.Lookup("USD", "SAR", ptr(date(2024, 12, 31)))
	assert.False(t, found, "no record before the first one")
}

func TestLookup_Reciprocity(t *testing.T) {
	table := NewTable([]model.ExchangeRate{{From: "EUR", To: "SAR", Rate: dec("4.10"), Date: date(2025, 2, 1)}})

	forward, found := table.Lookup("EUR", "SAR", nil)
	require.True(t, found)
	assert.True(t, forward.Equal(dec("4.10")))

	back, found := table.Lookup("SAR", "EUR", nil)
	require.True(t, found)
	assert.True(t, back.Equal(decimal.NewFromInt(1).Div(dec("4.10"))))
}

func TestLookup_SameDateLaterRecordWins(t *testing.T) {
	table := NewTable([]model.ExchangeRate{
		{From: "USD", To: "SAR", Rate: dec("3.70"), Date: date(2025, 1, 1)},
		{From: "USD", To: "SAR", Rate: dec("3.71"), Date: date(2025, 1, 1)},
	})
	rate, _ := table.Lookup("USD", "SAR", nil)
	assert.True(t, rate.Equal(dec("3.71")))
}

func TestTable_IsSnapshot(t *testing.T) {
	rates := []model.ExchangeRate{{From: "USD", To: "SAR", Rate: dec("3.75"), Date: date(2025, 1, 1)}}
	table := NewTable(rates)
	rates[0].Rate = dec("9")

	rate, _ := table.Lookup("USD", "SAR", nil)
	assert.True(t, rate.Equal(dec("3.75")))
	assert.Equal(t, 1, table.Len())
}

func TestNewTable_DropsNonPositiveRates(t *testing.T) {
	table := NewTable([]model.ExchangeRate{
		{From: "USD", To: "SAR", Rate: dec("3.75"), Date: date(2025, 1, 1)},
		{From: "USD", To: "SAR", Rate: decimal.Zero, Date: date(2025, 2, 1)},
		{From: "SAR", To: "USD", Rate: dec("-0.25"), Date: date(2025, 3, 1)},
	})
	assert.Equal(t, 1, table.Len())

	rate, found := table.Lookup("USD", "SAR", nil)
	require.True(t, found)
	assert.True(t, rate.Equal(dec("3.75")), "got %s", rate)

	rate, found = table.Lookup("SAR", "USD", ptr(date(2025, 4, 1)))
	require.True(t, found)
	assert.True(t, rate.Equal(one.Div(dec("3.75"))), "got %s", rate)
	assert.Len(t, table.History("USD", "SAR", 0), 1)
}

func TestConverter_MissingRateFallsBackAndWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	conv := NewConverter(NewTable(history), WithLogger(zap.New(core)))

	rate, err := conv.Rate("GBP", "SAR", nil)
	require.NoError(t, err)
	assert.True(t, rate.Equal(one))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "GBP", logs.All()[0].ContextMap()["from"])

	got, err := conv.Convert(dec("10"), "GBP", "SAR", ptr(date(2025, 1, 1)))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("10")))
	assert.Equal(t, 2, logs.Len())
}

func TestConverter_Strict(t *testing.T) {
	conv := NewConverter(NewTable(history), WithStrict(true))

	_, err := conv.Rate("GBP", "SAR", nil)
	require.ErrorIs(t, err, ErrMissingRate)

	got, err := conv.Convert(dec("100"), "USD", "SAR", ptr(date(2025, 2, 1)))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("375")))
}

func TestConverter_ConvertMoney(t *testing.T) {
	conv := NewConverter(NewTable(history))
	got, err := conv.ConvertMoney(model.NewMoney(dec("10"), "EUR"), "SAR", nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(model.NewMoney(dec("41"), "SAR")))
}

func TestHistory(t *testing.T) {
	table := NewTable(history)
	got := table.History("SAR", "USD", 2)
	require.Len(t, got, 2)
	assert.Equal(t, date(2025, 6, 1), got[0].Date)
	assert.Equal(t, date(2025, 3, 1), got[1].Date)

	assert.Len(t, table.History("USD", "SAR", 0), 3)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"1234.56", "1,234.56"},
		{"1234.5", "1,234.50"},
		{"0.005", "0.01"},
		{"1000000", "1,000,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(dec(tt.value), "en-US"), "FormatAmount(%s)", tt.value)
	}
	assert.Equal(t, "1,234.56", FormatAmount(dec("1234.56"), "not a locale!"))
}

func TestFormatMoney(t *testing.T) {
	usd := model.Currency{Code: "USD", Symbol: "$", DecimalPlaces: 2, SymbolPosition: model.SymbolBefore}
	assert.Equal(t, "$1,234.50", FormatMoney(model.NewMoney(dec("1234.5"), "USD"), usd, "en-US"))

	kwd := model.Currency{Code: "KWD", Symbol: "KD", DecimalPlaces: 3, SymbolPosition: model.SymbolAfter}
	assert.Equal(t, "1.235 KD", FormatMoney(model.NewMoney(dec("1.2345"), "KWD"), kwd, "en-US"))

	assert.Equal(t, "7.00 SAR", FormatMoney(model.NewMoney(dec("7"), "SAR"), model.Currency{}, "en-US"))
}

func TestRatesCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRates(&buf, history))
	assert.True(t, strings.HasPrefix(buf.String(), Header))

	got, err := ReadRates(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(history))
	for i := range history {
		assert.Equal(t, history[i].From, got[i].From)
		assert.Equal(t, history[i].To, got[i].To)
		assert.True(t, history[i].Rate.Equal(got[i].Rate))
		assert.True(t, history[i].Date.Equal(got[i].Date))
	}
}

func TestReadRates_RejectsBadRows(t *testing.T) {
	for _, row := range []string{
		"USD,SAR,abc,2025-01-01,",
		"USD,SAR,0,2025-01-01,",
		"USD,SAR,3.75,01/01/2025,",
	} {
		_, err := ReadRates(strings.NewReader(Header + "\n" + row + "\n"))
		require.Error(t, err, row)
	}
}

func TestLoadTable_MissingFile(t *testing.T) {
	table, err := LoadTable(t.TempDir() + "/nope.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}
