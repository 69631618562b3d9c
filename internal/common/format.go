package common

import (
	"fmt"
	"strings"
	"time"
)

// Portuguese month abbreviations indexed by time.Month (1-based).
var monthAbbrevPT = [...]string{"", "jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez"}

// MonthLabel formats a date as a Portuguese "mon/yy" label, e.g. "jan/24".
// Used as the grouping key for monthly income buckets.
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s/%02d", monthAbbrevPT[t.Month()], t.Year()%100)
}

// ParseMonthLabel reconstructs a comparable date (first day of month) from a
// "mon/yy" label. Returns the zero time for labels it cannot parse.
func ParseMonthLabel(label string) time.Time {
	parts := strings.SplitN(label, "/", 2)
	if len(parts) != 2 {
		return time.Time{}
	}
	var month time.Month
	for m := 1; m <= 12; m++ {
		if monthAbbrevPT[m] == parts[0] {
			month = time.Month(m)
			break
		}
	}
	if month == 0 {
		return time.Time{}
	}
	var yy int
	if _, err := fmt.Sscanf(parts[1], "%d", &yy); err != nil {
		return time.Time{}
	}
	return time.Date(2000+yy, month, 1, 0, 0, 0, 0, time.UTC)
}

// NumericMonthLabel formats a date as "mm/yy", e.g. "01/24".
// Used for portfolio evolution series labels.
func NumericMonthLabel(t time.Time) string {
	return fmt.Sprintf("%02d/%02d", int(t.Month()), t.Year()%100)
}

// ParseNumericMonthLabel reconstructs a date (first day of month) from a
// "mm/yy" label. Returns the zero time for labels it cannot parse.
func ParseNumericMonthLabel(label string) time.Time {
	var mm, yy int
	if _, err := fmt.Sscanf(label, "%d/%d", &mm, &yy); err != nil || mm < 1 || mm > 12 {
		return time.Time{}
	}
	return time.Date(2000+yy, time.Month(mm), 1, 0, 0, 0, 0, time.UTC)
}

// FormatBRL renders a value as Brazilian currency, e.g. "R$ 1.234,56".
// Presentation only; never feeds back into computed values.
func FormatBRL(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := fmt.Sprintf("%.2f", v)
	intPart, decPart, _ := strings.Cut(s, ".")

	// Insert thousands separators right to left.
	var sb strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(d)
	}

	out := fmt.Sprintf("R$ %s,%s", sb.String(), decPart)
	if neg {
		return "-" + out
	}
	return out
}
