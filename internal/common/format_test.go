package common

import (
	"testing"
	"time"
)

func TestMonthLabel(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC), "jan/24"},
		{time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), "fev/24"},
		{time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC), "dez/23"},
		{time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC), "set/25"},
	}
	for _, tc := range cases {
		if got := MonthLabel(tc.date); got != tc.want {
			t.Errorf("MonthLabel(%v) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestParseMonthLabelRoundtrip(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		date := time.Date(2024, m, 10, 0, 0, 0, 0, time.UTC)
		parsed := ParseMonthLabel(MonthLabel(date))
		if parsed.Month() != m || parsed.Year() != 2024 || parsed.Day() != 1 {
			t.Errorf("roundtrip for %v gave %v", date, parsed)
		}
	}
}

func TestParseMonthLabelInvalid(t *testing.T) {
	for _, label := range []string{"", "jan", "xyz/24", "jan/xx", "24/jan"} {
		if got := ParseMonthLabel(label); !got.IsZero() {
			t.Errorf("ParseMonthLabel(%q) = %v, want zero", label, got)
		}
	}
}

func TestNumericMonthLabel(t *testing.T) {
	date := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	if got := NumericMonthLabel(date); got != "03/24" {
		t.Errorf("NumericMonthLabel = %q", got)
	}
}

func TestParseNumericMonthLabel(t *testing.T) {
	got := ParseNumericMonthLabel("03/24")
	want := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseNumericMonthLabel = %v, want %v", got, want)
	}
	if !ParseNumericMonthLabel("13/24").IsZero() {
		t.Error("month 13 should not parse")
	}
	if !ParseNumericMonthLabel("garbage").IsZero() {
		t.Error("garbage should not parse")
	}
}

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{0, "R$ 0,00"},
		{9.5, "R$ 9,50"},
		{1234.56, "R$ 1.234,56"},
		{1234567.89, "R$ 1.234.567,89"},
		{-42.1, "-R$ 42,10"},
	}
	for _, tc := range cases {
		if got := FormatBRL(tc.value); got != tc.want {
			t.Errorf("FormatBRL(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
