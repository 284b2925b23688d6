package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReference(t *testing.T) {
	tests := []struct {
		year, month, seq int
		want             string
	}{
		{2025, 1, 1, "JE-2025-01-001"},
		{2025, 12, 99, "JE-2025-12-099"},
		{2025, 1, 1234, "JE-2025-01-1234"},
	}
	for _, tt := range tests {
		got := FormatReference(tt.year, tt.month, tt.seq)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		input               string
		wantYear, wantMonth int
		wantSeq             int
	}{
		{"JE-2025-01-001", 2025, 1, 1},
		{"JE-2025-12-099", 2025, 12, 99},
		{"JE-2025-01-1234", 2025, 1, 1234},
	}
	for _, tt := range tests {
		year, month, seq, err := ParseReference(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantYear, year)
		assert.Equal(t, tt.wantMonth, month)
		assert.Equal(t, tt.wantSeq, seq)
	}
}

func TestParseReference_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"not-valid",
		"2025-01-001",
		"JE-2025-01",
		"JE-xxxx-01-001",
		"JE-2025-13-001",
		"JE-2025-01-abc",
	}
	for _, input := range badInputs {
		_, _, _, err := ParseReference(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestSequencer(t *testing.T) {
	s := NewSequencer([]string{"JE-2025-01-004", "JE-2025-01-002", "INV-77", "JE-2025-02-001"})

	jan := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "JE-2025-01-005", s.Next(jan))
	assert.Equal(t, "JE-2025-01-006", s.Next(jan))
	assert.Equal(t, "JE-2025-02-002", s.Next(feb))
	assert.Equal(t, "JE-2025-03-001", s.Next(mar))
}
