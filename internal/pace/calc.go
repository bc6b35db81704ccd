// Package pace computes allowance progress, pace, and projections from
// odometer readings. Every function is pure: the current instant is always
// passed in, and nil or empty data yields zero values.
package pace

import (
	"math"
	"time"

	"github.com/theirongolddev/milo/internal/model"
)

// NominalYearDays is the divisor used for per-day targets and ratios.
const NominalYearDays = 365

// CurrentYearData returns the bucket for now's calendar year, or nil.
func CurrentYearData(data []model.YearlyData, now time.Time) *model.YearlyData {
	year := now.Year()
	for i := range data {
		if data[i].Year == year {
			return &data[i]
		}
	}
	return nil
}

// TotalKilometers returns the highest odometer reading in the bucket.
// Readings are cumulative, so the maximum is the current total even when
// a lower reading was entered after it.
func TotalKilometers(yd *model.YearlyData) int {
	if yd == nil || len(yd.Entries) == 0 {
		return 0
	}
	total := yd.Entries[0].TotalKilometers
	for _, e := range yd.Entries[1:] {
		if e.TotalKilometers > total {
			total = e.TotalKilometers
		}
	}
	return total
}

// DailyTarget returns the flat per-day share of the yearly limit.
func DailyTarget(yearlyLimit int) float64 {
	return float64(yearlyLimit) / NominalYearDays
}

// TargetForDate returns the distance a linear pace would have covered by
// date. The start day counts as one elapsed day, so the target on the start
// date is limit/periodDays rather than zero.
func TargetForDate(date time.Time, s model.Settings) float64 {
	start := s.StartDate
	end := PeriodEnd(s)

	if date.Before(start) {
		return 0
	}
	if date.After(end) {
		return float64(s.YearlyLimit)
	}

	totalDays := DaysBetween(start, end)
	if totalDays <= 0 {
		return 0
	}
	daysPassed := DaysBetween(start, date) + 1

	return float64(s.YearlyLimit) * float64(daysPassed) / float64(totalDays)
}

// TargetForToday is TargetForDate evaluated at now.
func TargetForToday(s model.Settings, now time.Time) float64 {
	return TargetForDate(now, s)
}

// VarianceFromTarget returns total minus today's target. Positive means
// more was driven than the linear pace allows.
func VarianceFromTarget(yd *model.YearlyData, s model.Settings, now time.Time) float64 {
	return float64(TotalKilometers(yd)) - TargetForToday(s, now)
}

// RemainingKilometers returns the unused allowance. It goes negative once
// the limit is exceeded.
func RemainingKilometers(yd *model.YearlyData, yearlyLimit int) int {
	return yearlyLimit - TotalKilometers(yd)
}

// RemainingDays returns whole days left in the period, never negative.
func RemainingDays(s model.Settings, now time.Time) int {
	return max(0, DaysBetween(now, PeriodEnd(s)))
}

// DailyAverage returns km per day between the first and last reading by
// date. Intermediate readings are ignored. Fewer than two readings, or
// endpoints less than a whole day apart, give 0.
func DailyAverage(yd *model.YearlyData) float64 {
	if yd == nil || len(yd.Entries) < 2 {
		return 0
	}

	sorted := make([]model.MileageEntry, len(yd.Entries))
	copy(sorted, yd.Entries)
	model.SortByDate(sorted)

	first := sorted[0]
	last := sorted[len(sorted)-1]
	days := DaysBetween(first.Date, last.Date)
	if days == 0 {
		return 0
	}

	return float64(last.TotalKilometers-first.TotalKilometers) / float64(days)
}

// ProjectedTotal extrapolates the total to the end of the period using the
// average per elapsed day since the period start. This is a different pace
// from DailyAverage, which only looks at the first and last reading.
func ProjectedTotal(yd *model.YearlyData, s model.Settings, now time.Time) float64 {
	if yd == nil || len(yd.Entries) == 0 {
		return 0
	}
	if now.Before(s.StartDate) {
		return 0
	}

	total := TotalKilometers(yd)
	daysPassed := DaysBetween(s.StartDate, now) + 1
	totalDays := PeriodDays(s)

	return float64(total) / float64(daysPassed) * float64(totalDays)
}

// RequiredDailyAverage returns the km per day that would use exactly the
// remaining allowance by the end of the period. It is 0 once the period is
// over or the allowance is spent.
func RequiredDailyAverage(yd *model.YearlyData, s model.Settings, now time.Time) float64 {
	remainingKm := RemainingKilometers(yd, s.YearlyLimit)
	remainingDays := RemainingDays(s, now)

	if remainingDays <= 0 || remainingKm <= 0 {
		return 0
	}
	return float64(remainingKm) / float64(remainingDays)
}

// DaysPassedRatio returns whole days since the period start over a nominal
// year. It feeds the early-period allowance in TierForDailyAverage.
func DaysPassedRatio(s model.Settings, now time.Time) float64 {
	return float64(DaysBetween(s.StartDate, now)) / NominalYearDays
}

// PercentOfLimit returns total as a percentage of the yearly limit.
func PercentOfLimit(total, yearlyLimit int) float64 {
	if yearlyLimit <= 0 {
		return 0
	}
	return float64(total) / float64(yearlyLimit) * 100
}

// LatestReading returns the odometer value of the most recent entry.
func LatestReading(yd *model.YearlyData) int {
	e, ok := yd.Latest()
	if !ok {
		return 0
	}
	return e.TotalKilometers
}

// Compute evaluates every metric for one bucket at now.
func Compute(yd *model.YearlyData, s model.Settings, now time.Time) model.Metrics {
	total := TotalKilometers(yd)
	m := model.Metrics{
		At:                   now,
		PeriodStart:          s.StartDate,
		PeriodEnd:            PeriodEnd(s),
		TotalKilometers:      total,
		LatestReading:        LatestReading(yd),
		Target:               TargetForToday(s, now),
		Variance:             VarianceFromTarget(yd, s, now),
		RemainingKilometers:  RemainingKilometers(yd, s.YearlyLimit),
		RemainingDays:        RemainingDays(s, now),
		DailyTarget:          DailyTarget(s.YearlyLimit),
		DailyAverage:         DailyAverage(yd),
		ProjectedTotal:       ProjectedTotal(yd, s, now),
		RequiredDailyAverage: RequiredDailyAverage(yd, s, now),
		PercentOfLimit:       PercentOfLimit(total, s.YearlyLimit),
		DaysPassedRatio:      math.Max(0, DaysPassedRatio(s, now)),
	}
	if yd != nil {
		m.EntryCount = len(yd.Entries)
	}
	return m
}
