package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryStatus represents the lifecycle state of a journal entry.
type EntryStatus string

const (
	StatusDraft  EntryStatus = "draft"
	StatusPosted EntryStatus = "posted"
	StatusVoid   EntryStatus = "void"
)

// JournalLine is one side of a double-entry.
type JournalLine struct {
	AccountID    AccountID
	AccountCode  AccountCode
	Debit        decimal.Decimal // zero if credit side
	Credit       decimal.Decimal // zero if debit side
	Currency     string
	ExchangeRate decimal.Decimal
	DebitBase    decimal.Decimal // Debit in the reporting currency
	CreditBase   decimal.Decimal // Credit in the reporting currency
	Description  string
}

// NewLine builds a line and derives the base amounts from rate.
func NewLine(account AccountID, code AccountCode, debit, credit decimal.Decimal, currency string, rate decimal.Decimal, description string) JournalLine {
	return JournalLine{
		AccountID:    account,
		AccountCode:  code,
		Debit:        debit,
		Credit:       credit,
		Currency:     currency,
		ExchangeRate: rate,
		DebitBase:    debit.Mul(rate),
		CreditBase:   credit.Mul(rate),
		Description:  description,
	}
}

// IsDebit reports whether the line sits on the debit side.
func (l JournalLine) IsDebit() bool {
	return !l.Debit.IsZero()
}

// JournalEntry is a dated, described set of journal lines.
type JournalEntry struct {
	ID          uuid.UUID
	Date        time.Time
	Description string
	Reference   string
	Status      EntryStatus
	Lines       []JournalLine
}
