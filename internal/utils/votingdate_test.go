package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatVotingDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "well-formed calendar date",
			input:    "2026-01-15",
			expected: "मतदान दि.- 15/01/2026 रोजी स. ७ ते सायं. ६ पर्यंत",
		},
		{
			name:     "single digit day and month are zero padded",
			input:    "2026-03-05",
			expected: "मतदान दि.- 05/03/2026 रोजी स. ७ ते सायं. ६ पर्यंत",
		},
		{
			name:     "empty input passes through",
			input:    "",
			expected: "",
		},
		{
			name:     "unparseable input passes through",
			input:    "next tuesday",
			expected: "next tuesday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatVotingDate(tt.input))
		})
	}
}

func TestExtractVotingDate_RoundTrip(t *testing.T) {
	// The round trip is lossy by design: only the DD/MM/YYYY substring
	// survives, but it must reproduce the original calendar date exactly.
	original := "2026-01-15"
	display := FormatVotingDate(original)

	assert.Equal(t, original, ExtractVotingDate(display))
}

func TestExtractVotingDate_NoMatchDefaultsToToday(t *testing.T) {
	today := time.Now().Format("2006-01-02")

	assert.Equal(t, today, ExtractVotingDate("no date in here"))
	assert.Equal(t, today, ExtractVotingDate(""))
}

func TestExtractVotingDate_FindsEmbeddedDate(t *testing.T) {
	assert.Equal(t, "2025-12-01", ExtractVotingDate("custom banner 01/12/2025 text"))
}
