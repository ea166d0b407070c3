package times

import (
	"testing"
	"time"
)

// TestParseTimeToSeconds checks accepted and rejected inputs.
func TestParseTimeToSeconds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"90", 90, true},
		{"1:30", 90, true},
		{"01:02:03", 3723, true},
		{" 0:05 ", 5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1:xx", 0, false},
		{"1:2:3:4", 0, false},
		{"-5", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseTimeToSeconds(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseTimeToSeconds(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// TestFormatETA checks clock rendering.
func TestFormatETA(t *testing.T) {
	t.Parallel()
	n := int64(3723)
	if got := FormatETA(&n); got != "01:02:03" {
		t.Errorf("got %q", got)
	}
	if got := FormatETA(nil); got != "Unknown" {
		t.Errorf("got %q", got)
	}
}

// TestParseSince checks a couple of date layouts.
func TestParseSince(t *testing.T) {
	t.Parallel()
	got, err := ParseSince("2024-03-09")
	if err != nil {
		t.Fatal(err)
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 9 {
		t.Errorf("unexpected date %v", got)
	}
	if _, err := ParseSince("not a date"); err == nil {
		t.Error("expected error")
	}
}
