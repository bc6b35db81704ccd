// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// DateLayout is the date format used for input and output.
const DateLayout = "2006-01-02"

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatKm formats a distance rounded to whole kilometers.
// e.g., 12345.6 -> "12,346 km"
func FormatKm(km float64) string {
	return FormatNumber(int64(math.Round(km))) + " km"
}

// FormatSignedKm formats a distance with an explicit sign.
// e.g., 250 -> "+250 km", -1200 -> "-1,200 km"
func FormatSignedKm(km float64) string {
	r := int64(math.Round(km))
	if r > 0 {
		return "+" + FormatNumber(r) + " km"
	}
	return FormatNumber(r) + " km"
}

// FormatRate formats a daily rate with one decimal.
func FormatRate(kmPerDay float64) string {
	return fmt.Sprintf("%.1f km/day", kmPerDay)
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f)
}

// FormatDays formats a day count.
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return FormatNumber(int64(n)) + " days"
}

// FormatDate formats t as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatAge describes t relative to now, e.g. "3 days ago".
func FormatAge(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
