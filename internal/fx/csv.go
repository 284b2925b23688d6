package fx

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

// Header is the CSV header for exchange-rates.csv.
const Header = "from,to,rate,date,source"

const (
	numFields  = 5
	dateFormat = "2006-01-02"
	colFrom    = 0
	colTo      = 1
	colRate    = 2
	colDate    = 3
	colSource  = 4
)

// ReadRates reads exchange-rates.csv.
func ReadRates(r io.Reader) ([]model.ExchangeRate, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rates CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var rates []model.ExchangeRate
	for i, rec := range records[1:] {
		rate, err := UnmarshalRate(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rates = append(rates, rate)
	}
	return rates, nil
}

// LoadTable reads a rates file into a Table. A missing file yields an empty table.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewTable(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening rates %s: %w", path, err)
	}
	defer f.Close()

	rates, err := ReadRates(f)
	if err != nil {
		return nil, fmt.Errorf("reading rates %s: %w", path, err)
	}
	return NewTable(rates), nil
}

// WriteRates writes exchange-rates.csv (including header).
func WriteRates(w io.Writer, rates []model.ExchangeRate) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rates {
		if err := cw.Write(MarshalRate(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalRate converts an ExchangeRate to a CSV row.
func MarshalRate(r model.ExchangeRate) []string {
	row := make([]string, numFields)
	row[colFrom] = r.From
	row[colTo] = r.To
	row[colRate] = r.Rate.String()
	row[colDate] = r.Date.Format(dateFormat)
	row[colSource] = r.Source
	return row
}

// UnmarshalRate converts a CSV row to an ExchangeRate.
func UnmarshalRate(record []string) (model.ExchangeRate, error) {
	if len(record) != numFields {
		return model.ExchangeRate{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	rate, err := decimal.NewFromString(record[colRate])
	if err != nil {
		return model.ExchangeRate{}, fmt.Errorf("parsing rate %q: %w", record[colRate], err)
	}
	if !rate.IsPositive() {
		return model.ExchangeRate{}, fmt.Errorf("rate %s: %w", rate, model.ErrNonPositiveRate)
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.ExchangeRate{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	return model.ExchangeRate{
		From:   strings.ToUpper(record[colFrom]),
		To:     strings.ToUpper(record[colTo]),
		Rate:   rate,
		Date:   date,
		Source: record[colSource],
	}, nil
}
