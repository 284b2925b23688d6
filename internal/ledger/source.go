package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

// Converter expresses an amount in another currency as of a date.
type Converter interface {
	Convert(amount decimal.Decimal, from, to string, asOf *time.Time) (decimal.Decimal, error)
}

// NameLookup resolves an account's display name.
type NameLookup func(model.AccountID) string

// FromLines turns journal lines into transactions valued in the base currency.
// names may be nil.
func FromLines(lines []model.JournalLine, names NameLookup) []Transaction {
	txs := make([]Transaction, 0, len(lines))
	for _, l := range lines {
		tx := Transaction{
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			Debit:       l.DebitBase,
			Credit:      l.CreditBase,
		}
		if names != nil {
			tx.AccountName = names(l.AccountID)
		}
		txs = append(txs, tx)
	}
	return txs
}

// LegacyRecord is a pre-journal transaction record kept by older books:
// one account, one side, in its own currency.
type LegacyRecord struct {
	Date        time.Time
	AccountID   model.AccountID
	AccountCode model.AccountCode
	AccountName string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Currency    string
}

// FromLegacy converts legacy records into base-currency transactions using the
// rate in effect on each record's date.
func FromLegacy(records []LegacyRecord, base string, conv Converter) ([]Transaction, error) {
	txs := make([]Transaction, 0, len(records))
	for i, rec := range records {
		currency := rec.Currency
		if currency == "" {
			currency = base
		}
		asOf := rec.Date
		debit, err := conv.Convert(rec.Debit, currency, base, &asOf)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.AccountID, err)
		}
		credit, err := conv.Convert(rec.Credit, currency, base, &asOf)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.AccountID, err)
		}
		txs = append(txs, Transaction{
			AccountID:   rec.AccountID,
			AccountCode: rec.AccountCode,
			AccountName: rec.AccountName,
			Debit:       debit,
			Credit:      credit,
		})
	}
	return txs, nil
}

// Concat joins transaction sources in order.
func Concat(sources ...[]Transaction) []Transaction {
	n := 0
	for _, s := range sources {
		n += len(s)
	}
	out := make([]Transaction, 0, n)
	for _, s := range sources {
		out = append(out, s...)
	}
	return out
}
