package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

// ErrNotPostable is returned when an entry is not in a state that allows the transition.
var ErrNotPostable = errors.New("entry status does not allow this transition")

// NewEntry returns a Draft entry with a fresh ID. Drafts may be unbalanced.
func NewEntry(date time.Time, description, reference string, lines []model.JournalLine) model.JournalEntry {
	return model.JournalEntry{
		ID:          uuid.New(),
		Date:        date,
		Description: description,
		Reference:   reference,
		Status:      model.StatusDraft,
		Lines:       lines,
	}
}

// FromResult wraps builder output in a Draft entry.
func FromResult(date time.Time, reference string, res Result) model.JournalEntry {
	return NewEntry(date, res.Description, reference, res.Lines)
}

// Post validates a Draft entry and returns it as Posted. The first violation
// reported by ValidateLines blocks the transition.
func Post(entry model.JournalEntry) (model.JournalEntry, error) {
	if entry.Status != model.StatusDraft {
		return entry, fmt.Errorf("posting %s entry %s: %w", entry.Status, entry.ID, ErrNotPostable)
	}
	if errs := ValidateLines(entry.Lines); len(errs) > 0 {
		return entry, fmt.Errorf("posting entry %s: %w", entry.ID, errs[0])
	}
	entry.Status = model.StatusPosted
	return entry, nil
}

// Void marks a Draft or Posted entry as Void.
func Void(entry model.JournalEntry) (model.JournalEntry, error) {
	if entry.Status == model.StatusVoid {
		return entry, fmt.Errorf("voiding entry %s: %w", entry.ID, ErrNotPostable)
	}
	entry.Status = model.StatusVoid
	return entry, nil
}

// PostedLines returns the lines of every Posted entry, in entry order.
func PostedLines(entries []model.JournalEntry) []model.JournalLine {
	var lines []model.JournalLine
	for _, e := range entries {
		if e.Status == model.StatusPosted {
			lines = append(lines, e.Lines...)
		}
	}
	return lines
}
