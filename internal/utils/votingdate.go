package utils

import (
	"fmt"
	"regexp"
	"time"
)

const votingDateLayout = "2006-01-02"

var votingDatePattern = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)

// FormatVotingDate renders a YYYY-MM-DD calendar date as the fixed ballot
// header line. The derivation is one-way: the rendered string is what gets
// stored. Input that does not parse passes through unchanged.
func FormatVotingDate(raw string) string {
	if raw == "" {
		return raw
	}
	t, err := time.Parse(votingDateLayout, raw)
	if err != nil {
		return raw
	}
	return fmt.Sprintf("मतदान दि.- %02d/%02d/%04d रोजी स. ७ ते सायं. ६ पर्यंत", t.Day(), int(t.Month()), t.Year())
}

// ExtractVotingDate recovers a YYYY-MM-DD value from a rendered voting date
// for edit pre-fill by matching the embedded DD/MM/YYYY substring. Strings
// without a match yield the current date.
func ExtractVotingDate(display string) string {
	match := votingDatePattern.FindStringSubmatch(display)
	if match == nil {
		return time.Now().Format(votingDateLayout)
	}
	return fmt.Sprintf("%s-%s-%s", match[3], match[2], match[1])
}
