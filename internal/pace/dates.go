package pace

import (
	"time"

	"github.com/theirongolddev/milo/internal/model"
)

// DaysBetween returns the number of whole days from from to to, truncated
// toward zero. Days are counted on the wall clock of from's location, so a
// trailing partial day never counts. The result is negative when to is
// before from.
func DaysBetween(from, to time.Time) int {
	to = to.In(from.Location())

	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	days := int(time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC).
		Sub(time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)).Hours() / 24)

	shifted := from.AddDate(0, 0, days)
	switch {
	case days > 0 && shifted.After(to):
		days--
	case days < 0 && shifted.Before(to):
		days++
	}
	return days
}

// AddYears returns t moved n calendar years, keeping the wall-clock time.
// A February 29 that lands on a non-leap year becomes February 28.
func AddYears(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	y += n
	if last := daysIn(y, m); d > last {
		d = last
	}
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// PeriodEnd returns the instant one year after the allowance period start.
func PeriodEnd(s model.Settings) time.Time {
	return AddYears(s.StartDate, 1)
}

// PeriodDays returns the length of the allowance period in whole days
// (365 or 366).
func PeriodDays(s model.Settings) int {
	return DaysBetween(s.StartDate, PeriodEnd(s))
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
