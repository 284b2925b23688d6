package journal

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

// Tolerance is the largest debit/credit difference that still counts as balanced.
var Tolerance = decimal.New(1, -4)

var (
	// ErrTooFewLines is returned when an entry has fewer than two lines.
	ErrTooFewLines = errors.New("entry must have at least two lines")
	// ErrUnbalanced is returned when total debit and total credit differ beyond Tolerance.
	ErrUnbalanced = errors.New("entry is not balanced")
	// ErrInvalidLine is returned for a malformed line.
	ErrInvalidLine = errors.New("invalid journal line")
)

// ErrorKind classifies a validation failure.
type ErrorKind string

const (
	// KindTooFewLines marks an entry with fewer than two lines.
	KindTooFewLines ErrorKind = "too_few_lines"
	// KindUnbalanced marks an entry whose debits and credits differ.
	KindUnbalanced ErrorKind = "unbalanced"
	// KindInvalidLine marks a single malformed line.
	KindInvalidLine ErrorKind = "invalid_line"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Kind        ErrorKind
	Line        int // -1 when the violation concerns the whole entry
	Description string
}

func (e ValidationError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Description)
	}
	return fmt.Sprintf("%s [line %d]: %s", e.Kind, e.Line+1, e.Description)
}

// Unwrap maps the kind onto its sentinel error so callers can use errors.Is.
func (e ValidationError) Unwrap() error {
	switch e.Kind {
	case KindTooFewLines:
		return ErrTooFewLines
	case KindUnbalanced:
		return ErrUnbalanced
	default:
		return ErrInvalidLine
	}
}

// Totals returns the base-currency debit and credit sums over every line.
func Totals(lines []model.JournalLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.DebitBase)
		credit = credit.Add(l.CreditBase)
	}
	return debit, credit
}

// Difference returns total debit minus total credit in the base currency.
func Difference(lines []model.JournalLine) decimal.Decimal {
	debit, credit := Totals(lines)
	return debit.Sub(credit)
}

// IsBalanced reports whether |total debit - total credit| < Tolerance.
func IsBalanced(lines []model.JournalLine) bool {
	return Difference(lines).Abs().LessThan(Tolerance)
}

// ValidateEntry checks the two entry-level rules in order: at least two
// lines, then balance. It returns nil when the entry may be posted.
func ValidateEntry(lines []model.JournalLine) *ValidationError {
	if len(lines) < 2 {
		return &ValidationError{
			Kind:        KindTooFewLines,
			Line:        -1,
			Description: fmt.Sprintf("got %d line(s)", len(lines)),
		}
	}
	if !IsBalanced(lines) {
		debit, credit := Totals(lines)
		return &ValidationError{
			Kind:        KindUnbalanced,
			Line:        -1,
			Description: fmt.Sprintf("debits (%s) != credits (%s)", debit.String(), credit.String()),
		}
	}
	return nil
}

// ValidateLines reports every violation found in lines, entry-level and per line.
func ValidateLines(lines []model.JournalLine) []ValidationError {
	var errs []ValidationError
	if verr := ValidateEntry(lines); verr != nil {
		errs = append(errs, *verr)
	}

	for i, l := range lines {
		errs = append(errs, lineErrors(i, l)...)
	}
	return errs
}

// lineErrors checks one line: one-sided, non-negative, with an account and a
// positive exchange rate.
func lineErrors(i int, l model.JournalLine) []ValidationError {
	var errs []ValidationError
	hasDebit := !l.Debit.IsZero()
	hasCredit := !l.Credit.IsZero()
	if hasDebit == hasCredit {
		errs = append(errs, ValidationError{
			Kind:        KindInvalidLine,
			Line:        i,
			Description: "line must have exactly one of debit or credit",
		})
	}

	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		errs = append(errs, ValidationError{
			Kind:        KindInvalidLine,
			Line:        i,
			Description: fmt.Sprintf("negative amount (debit %s, credit %s)", l.Debit, l.Credit),
		})
	}

	if l.AccountID == "" {
		errs = append(errs, ValidationError{
			Kind:        KindInvalidLine,
			Line:        i,
			Description: "missing account",
		})
	}

	if !l.ExchangeRate.IsPositive() {
		errs = append(errs, ValidationError{
			Kind:        KindInvalidLine,
			Line:        i,
			Description: fmt.Sprintf("exchange rate %s must be positive", l.ExchangeRate),
		})
	}
	return errs
}
