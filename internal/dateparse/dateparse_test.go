package dateparse

import (
	"testing"
	"time"
)

// Wednesday, 2026-02-18
var testNow = time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC)

func TestParseFrom(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2026-03-01", "2026-03-01"},
		{"  2025-12-31 ", "2025-12-31"},
		{"today", "2026-02-18"},
		{"TODAY", "2026-02-18"},
		{"tomorrow", "2026-02-19"},
		{"yesterday", "2026-02-17"},
		{"next-week", "2026-02-23"},
		{"next-month", "2026-03-01"},
		{"+0d", "2026-02-18"},
		{"+1d", "2026-02-19"},
		{"+10d", "2026-02-28"},
		{"+14d", "2026-03-04"},
		{"-3d", "2026-02-15"},
		{"+1w", "2026-02-25"},
		{"+2w", "2026-03-04"},
		{"+1m", "2026-03-18"},
		{"+12m", "2027-02-18"},
		{"monday", "2026-02-23"},
		{"wednesday", "2026-02-25"},
		{"thu", "2026-02-19"},
		{"Sunday", "2026-02-22"},
	}
	for _, tt := range tests {
		got, err := ParseFrom(tt.input, testNow)
		if err != nil {
			t.Errorf("ParseFrom(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseFrom(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseFromYearBoundary(t *testing.T) {
	eoy := time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)
	for input, want := range map[string]string{
		"tomorrow":   "2027-01-01",
		"next-month": "2027-01-01",
		"+1w":        "2027-01-07",
	} {
		got, err := ParseFrom(input, eoy)
		if err != nil || got.String() != want {
			t.Errorf("ParseFrom(%q) = %s, %v; want %s", input, got, err, want)
		}
	}
}

func TestParseFromInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "someday", "+3x", "+d", "2026-13-01", "+-1d", "next-year"} {
		if got, err := ParseFrom(input, testNow); err == nil {
			t.Errorf("ParseFrom(%q) = %s, want error", input, got)
		}
	}
}
