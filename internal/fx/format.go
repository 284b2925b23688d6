package fx

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

// DefaultLocale is used when a locale tag cannot be parsed.
const DefaultLocale = "en-US"

func printer(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return message.NewPrinter(tag)
}

// FormatAmount renders value with exactly two decimals using the locale's
// grouping and digits. Rounding is half away from zero and happens on the
// decimal value before formatting.
func FormatAmount(value decimal.Decimal, locale string) string {
	return formatPlaces(value, 2, locale)
}

func formatPlaces(value decimal.Decimal, places int32, locale string) string {
	rounded := value.Round(places).InexactFloat64()
	return printer(locale).Sprintf("%v", number.Decimal(rounded,
		number.MinFractionDigits(int(places)),
		number.MaxFractionDigits(int(places)),
	))
}

// FormatMoney renders m with its currency symbol placed as the currency definition asks.
// An unknown currency (zero Currency) falls back to the code after the amount.
func FormatMoney(m model.Money, cur model.Currency, locale string) string {
	places := int32(2)
	if cur.Code != "" {
		places = cur.DecimalPlaces
	}
	amount := formatPlaces(m.Amount(), places, locale)

	symbol := cur.Symbol
	if symbol == "" {
		symbol = m.Currency()
	}
	if cur.SymbolPosition == model.SymbolBefore {
		return symbol + amount
	}
	return amount + " " + symbol
}
