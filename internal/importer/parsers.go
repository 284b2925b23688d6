package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerkit/internal/ledger"
	"github.com/cleared-dev/ledgerkit/internal/model"
)

const dateFormat = "2006-01-02"

func readRows(r io.Reader, fields int, name string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV: %w", name, err)
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return d, nil
}

// SplitParser reads records with separate debit and credit columns:
// date,account_id,account_code,account_name,debit,credit,currency.
type SplitParser struct{}

const (
	splitNumFields  = 7
	splitColDate    = 0
	splitColID      = 1
	splitColCode    = 2
	splitColName    = 3
	splitColDebit   = 4
	splitColCredit  = 5
	splitColCurrency = 6
)

// Format returns the parser name.
func (p *SplitParser) Format() string { return "split" }

// Parse reads a split debit/credit CSV.
func (p *SplitParser) Parse(r io.Reader) ([]ledger.LegacyRecord, error) {
	rows, err := readRows(r, splitNumFields, "split")
	if err != nil {
		return nil, err
	}

	var recs []ledger.LegacyRecord
	for i, row := range rows {
		rec, err := parseSplitRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseSplitRow(row []string) (ledger.LegacyRecord, error) {
	date, err := time.Parse(dateFormat, row[splitColDate])
	if err != nil {
		return ledger.LegacyRecord{}, fmt.Errorf("parsing date %q: %w", row[splitColDate], err)
	}
	debit, err := parseAmount("debit", row[splitColDebit])
	if err != nil {
		return ledger.LegacyRecord{}, err
	}
	credit, err := parseAmount("credit", row[splitColCredit])
	if err != nil {
		return ledger.LegacyRecord{}, err
	}
	if debit.IsNegative() || credit.IsNegative() {
		return ledger.LegacyRecord{}, fmt.Errorf("negative amount on account %s", row[splitColID])
	}

	return ledger.LegacyRecord{
		Date:        date,
		AccountID:   model.AccountID(row[splitColID]),
		AccountCode: model.AccountCode(row[splitColCode]),
		AccountName: row[splitColName],
		Debit:       debit,
		Credit:      credit,
		Currency:    strings.ToUpper(row[splitColCurrency]),
	}, nil
}

// SignedParser reads records with one signed amount column, positive for
// debits and negative for credits:
// date,account_id,account_code,description,amount,currency.
type SignedParser struct{}

const (
	signedNumFields   = 6
	signedColDate     = 0
	signedColID       = 1
	signedColCode     = 2
	signedColDesc     = 3
	signedColAmount   = 4
	signedColCurrency = 5
)

// Format returns the parser name.
func (p *SignedParser) Format() string { return "signed" }

// Parse reads a signed-amount CSV.
func (p *SignedParser) Parse(r io.Reader) ([]ledger.LegacyRecord, error) {
	rows, err := readRows(r, signedNumFields, "signed")
	if err != nil {
		return nil, err
	}

	var recs []ledger.LegacyRecord
	for i, row := range rows {
		date, err := time.Parse(dateFormat, row[signedColDate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, row[signedColDate], err)
		}
		amount, err := parseAmount("amount", row[signedColAmount])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		rec := ledger.LegacyRecord{
			Date:        date,
			AccountID:   model.AccountID(row[signedColID]),
			AccountCode: model.AccountCode(row[signedColCode]),
			AccountName: row[signedColDesc],
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
			Currency:    strings.ToUpper(row[signedColCurrency]),
		}
		if amount.IsNegative() {
			rec.Credit = amount.Neg()
		} else {
			rec.Debit = amount
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
