// Package ledger folds posted journal activity into per-account balances.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

// Transaction is a single debit/credit movement against an account.
type Transaction struct {
	AccountID   model.AccountID
	AccountCode model.AccountCode
	AccountName string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// Row is the trial balance aggregate for one account.
// Closing always equals opening plus movement, component by component.
type Row struct {
	AccountID      model.AccountID
	AccountCode    model.AccountCode
	AccountName    string
	OpeningDebit   decimal.Decimal
	OpeningCredit  decimal.Decimal
	MovementDebit  decimal.Decimal
	MovementCredit decimal.Decimal
	ClosingDebit   decimal.Decimal
	ClosingCredit  decimal.Decimal
}

// Balance returns closing debit minus closing credit.
func (r Row) Balance() decimal.Decimal {
	return r.ClosingDebit.Sub(r.ClosingCredit)
}

// TrialBalance aggregates transactions per account. It performs no balance
// validation and accepts unbalanced input. Rows are sorted by account code
// compared as plain strings, so "400001" sorts before "4100"; callers that
// need numeric order must zero-pad codes to equal width.
func TrialBalance(txs []Transaction) []Row {
	rows := make(map[model.AccountID]*Row)
	var order []model.AccountID

	for _, tx := range txs {
		if r, ok := rows[tx.AccountID]; ok {
			r.MovementDebit = r.MovementDebit.Add(tx.Debit)
			r.MovementCredit = r.MovementCredit.Add(tx.Credit)
			r.ClosingDebit = r.ClosingDebit.Add(tx.Debit)
			r.ClosingCredit = r.ClosingCredit.Add(tx.Credit)
			continue
		}
		rows[tx.AccountID] = &Row{
			AccountID:      tx.AccountID,
			AccountCode:    tx.AccountCode,
			AccountName:    tx.AccountName,
			OpeningDebit:   decimal.Zero,
			OpeningCredit:  decimal.Zero,
			MovementDebit:  tx.Debit,
			MovementCredit: tx.Credit,
			ClosingDebit:   tx.Debit,
			ClosingCredit:  tx.Credit,
		}
		order = append(order, tx.AccountID)
	}

	out := make([]Row, 0, len(order))
	for _, id := range order {
		out = append(out, *rows[id])
	}
	sortByCode(out)
	return out
}

// sortByCode orders rows by code; ties keep first-occurrence order.
func sortByCode(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AccountCode < rows[j].AccountCode
	})
}

// Merge combines two trial balances by summing opening, movement and closing
// per account. Merge(TrialBalance(a), TrialBalance(b)) equals
// TrialBalance(append(a, b...)).
func Merge(a, b []Row) []Row {
	rows := make(map[model.AccountID]*Row, len(a)+len(b))
	var order []model.AccountID

	for _, src := range [][]Row{a, b} {
		for _, r := range src {
			existing, ok := rows[r.AccountID]
			if !ok {
				cp := r
				rows[r.AccountID] = &cp
				order = append(order, r.AccountID)
				continue
			}
			existing.OpeningDebit = existing.OpeningDebit.Add(r.OpeningDebit)
			existing.OpeningCredit = existing.OpeningCredit.Add(r.OpeningCredit)
			existing.MovementDebit = existing.MovementDebit.Add(r.MovementDebit)
			existing.MovementCredit = existing.MovementCredit.Add(r.MovementCredit)
			existing.ClosingDebit = existing.ClosingDebit.Add(r.ClosingDebit)
			existing.ClosingCredit = existing.ClosingCredit.Add(r.ClosingCredit)
		}
	}

	out := make([]Row, 0, len(order))
	for _, id := range order {
		out = append(out, *rows[id])
	}
	sortByCode(out)
	return out
}

// Opening is the brought-forward balance of one account.
type Opening struct {
	AccountID   model.AccountID
	AccountCode model.AccountCode
	AccountName string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// WithOpening seeds opening balances into rows and recomputes closing.
// Accounts that only have an opening balance get a row with zero movement.
func WithOpening(rows []Row, openings []Opening) []Row {
	seeded := make([]Row, 0, len(openings))
	for _, o := range openings {
		seeded = append(seeded, Row{
			AccountID:      o.AccountID,
			AccountCode:    o.AccountCode,
			AccountName:    o.AccountName,
			OpeningDebit:   o.Debit,
			OpeningCredit:  o.Credit,
			MovementDebit:  decimal.Zero,
			MovementCredit: decimal.Zero,
			ClosingDebit:   o.Debit,
			ClosingCredit:  o.Credit,
		})
	}
	return Merge(rows, seeded)
}

// Summary totals a trial balance.
type Summary struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal
	Balanced    bool
}

// ReportTolerance is the difference a rendered trial balance may show and still count as balanced.
var ReportTolerance = decimal.New(1, -2)

// Totals sums closing debits and credits over all rows.
func Totals(rows []Row) Summary {
	debit, credit := decimal.Zero, decimal.Zero
	for _, r := range rows {
		debit = debit.Add(r.ClosingDebit)
		credit = credit.Add(r.ClosingCredit)
	}
	diff := debit.Sub(credit)
	return Summary{
		TotalDebit:  debit.Round(2),
		TotalCredit: credit.Round(2),
		Difference:  diff.Round(2),
		Balanced:    diff.Abs().LessThan(ReportTolerance),
	}
}
