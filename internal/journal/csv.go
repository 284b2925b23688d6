package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "entry_id,date,reference,status,account_id,account_code,description,debit,credit,currency,exchange_rate,debit_base,credit_base"

const (
	numFields     = 13
	dateFormat    = "2006-01-02"
	colEntryID    = 0
	colDate       = 1
	colRef        = 2
	colStatus     = 3
	colAcctID     = 4
	colAcctCode   = 5
	colDesc       = 6
	colDebit      = 7
	colCredit     = 8
	colCurrency   = 9
	colRate       = 10
	colDebitBase  = 11
	colCreditBase = 12
)

// ReadEntries reads a journal.csv, grouping consecutive rows by entry ID.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var entries []model.JournalEntry
	index := make(map[uuid.UUID]int)
	for i, rec := range records[1:] {
		entry, line, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		pos, seen := index[entry.ID]
		if !seen {
			index[entry.ID] = len(entries)
			entries = append(entries, entry)
			pos = len(entries) - 1
		}
		entries[pos].Lines = append(entries[pos].Lines, line)
	}
	return entries, nil
}

// WriteEntries writes entries to a journal.csv writer (including header).
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, e := range entries {
		for _, l := range e.Lines {
			if err := cw.Write(MarshalRow(e, l)); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
			row++
		}
	}
	return cw.Error()
}

// MarshalRow converts one line of an entry to a CSV row ([]string).
func MarshalRow(e model.JournalEntry, l model.JournalLine) []string {
	row := make([]string, numFields)
	row[colEntryID] = e.ID.String()
	row[colDate] = e.Date.Format(dateFormat)
	row[colRef] = e.Reference
	row[colStatus] = string(e.Status)
	row[colAcctID] = string(l.AccountID)
	row[colAcctCode] = string(l.AccountCode)
	row[colDesc] = l.Description

	if !l.Debit.IsZero() {
		row[colDebit] = l.Debit.String()
		row[colDebitBase] = l.DebitBase.String()
	}
	if !l.Credit.IsZero() {
		row[colCredit] = l.Credit.String()
		row[colCreditBase] = l.CreditBase.String()
	}

	row[colCurrency] = l.Currency
	row[colRate] = l.ExchangeRate.String()
	return row
}

// UnmarshalRow converts a CSV row to the entry header it belongs to and one line.
func UnmarshalRow(record []string) (model.JournalEntry, model.JournalLine, error) {
	if len(record) != numFields {
		return model.JournalEntry{}, model.JournalLine{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := uuid.Parse(record[colEntryID])
	if err != nil {
		return model.JournalEntry{}, model.JournalLine{}, fmt.Errorf("parsing entry_id %q: %w", record[colEntryID], err)
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.JournalEntry{}, model.JournalLine{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amounts := make(map[int]decimal.Decimal, 5)
	for _, col := range []int{colDebit, colCredit, colRate, colDebitBase, colCreditBase} {
		if record[col] == "" {
			amounts[col] = decimal.Zero
			continue
		}
		d, err := decimal.NewFromString(record[col])
		if err != nil {
			return model.JournalEntry{}, model.JournalLine{}, fmt.Errorf("parsing amount %q: %w", record[col], err)
		}
		amounts[col] = d
	}

	entry := model.JournalEntry{
		ID:        id,
		Date:      date,
		Reference: record[colRef],
		Status:    model.EntryStatus(record[colStatus]),
	}
	line := model.JournalLine{
		AccountID:    model.AccountID(record[colAcctID]),
		AccountCode:  model.AccountCode(record[colAcctCode]),
		Debit:        amounts[colDebit],
		Credit:       amounts[colCredit],
		Currency:     record[colCurrency],
		ExchangeRate: amounts[colRate],
		DebitBase:    amounts[colDebitBase],
		CreditBase:   amounts[colCreditBase],
		Description:  record[colDesc],
	}
	return entry, line, nil
}
