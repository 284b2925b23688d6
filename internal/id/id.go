// Package id formats and parses human-readable journal entry references.
package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Prefix starts every journal entry reference.
const Prefix = "JE"

// FormatReference returns a reference like "JE-2025-01-001".
func FormatReference(year, month, seq int) string {
	return fmt.Sprintf("%s-%04d-%02d-%03d", Prefix, year, month, seq)
}

// ParseReference parses "JE-2025-01-001" into year, month, seq.
func ParseReference(ref string) (year, month, seq int, err error) {
	rest, ok := strings.CutPrefix(ref, Prefix+"-")
	if !ok {
		return 0, 0, 0, fmt.Errorf("invalid reference format: %q", ref)
	}

	parts := strings.SplitN(rest, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid reference format: %q", ref)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in reference %q: %w", ref, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in reference %q: %w", ref, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month out of range in reference %q", ref)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in reference %q: %w", ref, err)
	}

	return year, month, seq, nil
}

type period struct{ year, month int }

// Sequencer hands out the next reference for each month. It is not safe
// for concurrent use.
type Sequencer struct {
	last map[period]int
}

// NewSequencer seeds a Sequencer with references already in use.
// References that do not parse are ignored.
func NewSequencer(existing []string) *Sequencer {
	s := &Sequencer{last: make(map[period]int)}
	for _, ref := range existing {
		y, m, seq, err := ParseReference(ref)
		if err != nil {
			continue
		}
		p := period{y, m}
		s.last[p] = max(s.last[p], seq)
	}
	return s
}

// Next returns the next unused reference for the month of date.
func (s *Sequencer) Next(date time.Time) string {
	p := period{date.Year(), int(date.Month())}
	s.last[p]++
	return FormatReference(p.year, p.month, s.last[p])
}
