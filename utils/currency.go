package utils

import (
	"strconv"
	"strings"
	"time"
)

// FormatCurrency renders an amount in tenge as a display string with
// thousand grouping, e.g. 45000 -> "45 000 ₸".
func FormatCurrency(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}

	out := b.String() + " ₸"
	if negative {
		out = "-" + out
	}
	return out
}

// ParseCurrency recovers the integer amount from a display string, ignoring
// grouping characters and the currency sign, e.g. "45 000 ₸" -> 45000.
// Returns 0 for empty or non-numeric input.
func ParseCurrency(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '-' && b.Len() == 0 {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 || b.String() == "-" {
		return 0
	}
	value, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

const dateTimeLayout = "02.01.2006, 15:04"
const dateLayout = "02.01.2006"

// FormatDateTime renders a timestamp as "DD.MM.YYYY, HH:MM"
func FormatDateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// ParseDateTime parses "DD.MM.YYYY, HH:MM"; a missing time part defaults to
// midday. The zero time and an error are returned for unparsable input.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(12 * time.Hour), nil
}
