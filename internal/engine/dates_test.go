package engine

import (
	"testing"
	"time"
)

// ----------------------------------------------------------------------------
// parseDate Tests
// ----------------------------------------------------------------------------

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string // ISO form of the expected date, empty means parse failure
	}{
		{name: "iso date", input: "2024-03-15", want: "2024-03-15T00:00:00Z"},
		{name: "iso with time", input: "2024-03-15T10:30:00Z", want: "2024-03-15T10:30:00Z"},
		{name: "space separated time", input: "2024-03-15 10:30:00", want: "2024-03-15T10:30:00Z"},
		{name: "us slashes", input: "03/15/2024", want: "2024-03-15T00:00:00Z"},
		{name: "single digit us", input: "3/5/2024", want: "2024-03-05T00:00:00Z"},
		{name: "dotted european", input: "15.03.2024", want: ""},
		{name: "dotted us", input: "03.15.2024", want: "2024-03-15T00:00:00Z"},
		{name: "month name", input: "Mar 15, 2024", want: "2024-03-15T00:00:00Z"},
		{name: "day first name", input: "15 Mar 2024", want: "2024-03-15T00:00:00Z"},
		{name: "compact", input: "20240315", want: "2024-03-15T00:00:00Z"},
		{name: "surrounding whitespace", input: "  2024-03-15  ", want: "2024-03-15T00:00:00Z"},
		{name: "empty", input: "", want: ""},
		{name: "garbage", input: "hello", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDate(tt.input)
			if tt.want == "" {
				if ok {
					t.Fatalf("parseDate(%q) = %v, want failure", tt.input, got)
				}
				return
			}
			if !ok {
				t.Fatalf("parseDate(%q) failed, want %s", tt.input, tt.want)
			}
			if iso := isoDate(got); iso != tt.want {
				t.Errorf("parseDate(%q) = %s, want %s", tt.input, iso, tt.want)
			}
		})
	}
}

func TestParseDate_TwoDigitYearPivot(t *testing.T) {
	// A 2-digit year far beyond the pivot window lands in the previous century.
	got, ok := parseDate("1/2/99")
	if !ok {
		t.Fatal("parseDate failed for 2-digit year")
	}
	if got.Year() != 1999 {
		t.Errorf("year = %d, want 1999", got.Year())
	}

	// A recent 2-digit year stays in the current century.
	got, ok = parseDate("1/2/20")
	if !ok {
		t.Fatal("parseDate failed for 2-digit year")
	}
	if got.Year() != 2020 {
		t.Errorf("year = %d, want 2020", got.Year())
	}
}

func TestIsoDate_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2024, 3, 15, 12, 0, 0, 0, loc)
	if got := isoDate(in); got != "2024-03-15T10:00:00Z" {
		t.Errorf("isoDate = %s, want 2024-03-15T10:00:00Z", got)
	}
}
