package pace

import (
	"math"
	"time"

	"github.com/theirongolddev/milo/internal/model"
)

// Series samples actual and target odometer values at points evenly spaced
// instants from the period start to now. Both curves are offset by the
// initial odometer reading; the target grows linearly over a nominal year
// and stops at the limit. Actual is the last reading at or before each
// instant. It returns nil when now is before the period start.
func Series(entries []model.MileageEntry, s model.Settings, now time.Time, points int) []model.SeriesPoint {
	start := s.StartDate
	if now.Before(start) {
		return nil
	}
	if points < 2 {
		points = 2
	}

	sorted := make([]model.MileageEntry, len(entries))
	copy(sorted, entries)
	model.SortByDate(sorted)

	span := now.Sub(start)
	out := make([]model.SeriesPoint, 0, points)

	for i := 0; i < points; i++ {
		progress := float64(i) / float64(points-1)
		at := start.Add(time.Duration(float64(span) * progress))

		daysPassed := at.Sub(start).Hours() / 24
		ratio := math.Min(1, daysPassed/NominalYearDays)
		target := float64(s.InitialKilometers) + ratio*float64(s.YearlyLimit)

		actual := s.InitialKilometers
		for _, e := range sorted {
			if e.Date.After(at) {
				break
			}
			actual = e.TotalKilometers
		}

		out = append(out, model.SeriesPoint{
			At:     at,
			Actual: actual,
			Target: int(math.Round(target)),
		})
	}

	return out
}
