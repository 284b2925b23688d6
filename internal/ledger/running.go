package ledger

import (
	"iter"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

// Movement is a debit/credit pair in ledger order.
type Movement struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// RunningBalance yields balance[i] = balance[i-1] + debit[i] - credit[i],
// seeded with opening. Values are computed lazily in entry order; iterate
// once per report render.
func RunningBalance(entries []Movement, opening decimal.Decimal) iter.Seq[decimal.Decimal] {
	return func(yield func(decimal.Decimal) bool) {
		balance := opening
		for _, e := range entries {
			balance = balance.Add(e.Debit.Sub(e.Credit))
			if !yield(balance) {
				return
			}
		}
	}
}

// Movements extracts the movements of one account from transactions, in order.
func Movements(txs []Transaction, account model.AccountID) []Movement {
	var out []Movement
	for _, tx := range txs {
		if tx.AccountID == account {
			out = append(out, Movement{Debit: tx.Debit, Credit: tx.Credit})
		}
	}
	return out
}
