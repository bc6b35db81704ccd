package model

import "time"

// Metrics holds the derived allowance figures for one instant.
type Metrics struct {
	At                   time.Time
	PeriodStart          time.Time
	PeriodEnd            time.Time
	TotalKilometers      int
	LatestReading        int
	Target               float64
	Variance             float64
	RemainingKilometers  int
	RemainingDays        int
	DailyTarget          float64
	DailyAverage         float64
	ProjectedTotal       float64
	RequiredDailyAverage float64
	PercentOfLimit       float64
	DaysPassedRatio      float64
	EntryCount           int
}

// SeriesPoint is one sample of actual vs target distance over the period.
type SeriesPoint struct {
	At     time.Time
	Actual int
	Target int
}
