// Package model defines domain types for milo readings, settings, and metrics.
package model

import (
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MileageEntry is one odometer reading. TotalKilometers is the cumulative
// odometer value at Date, not the distance driven since the last reading.
type MileageEntry struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	TotalKilometers int       `json:"totalKilometers"`
	Note            string    `json:"note,omitempty"`
}

// Validate rejects entries that must never reach the store.
func (e MileageEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.ID, validation.Required),
		validation.Field(&e.Date, validation.Required),
		validation.Field(&e.TotalKilometers, validation.Min(0)),
		validation.Field(&e.Note, validation.Length(0, 500)),
	)
}

// YearlyData is the bucket of readings recorded in one calendar year.
// StartDate is January 1 of Year and has nothing to do with the
// allowance period start in Settings.
type YearlyData struct {
	Year      int            `json:"year"`
	StartDate time.Time      `json:"startDate"`
	Entries   []MileageEntry `json:"entries"`
}

// NewYearlyData returns an empty bucket for the given calendar year.
func NewYearlyData(year int, loc *time.Location) YearlyData {
	return YearlyData{
		Year:      year,
		StartDate: time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		Entries:   []MileageEntry{},
	}
}

// SortEntries orders entries ascending by date. Ties keep insertion order.
func (y *YearlyData) SortEntries() {
	SortByDate(y.Entries)
}

// IndexOf returns the position of the entry with the given id, or -1.
func (y *YearlyData) IndexOf(id string) int {
	for i, e := range y.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// SortByDate sorts entries ascending by date in place.
func SortByDate(entries []MileageEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}

// EntryPatch carries the fields an edit may change. Nil fields are kept.
type EntryPatch struct {
	Date            *time.Time
	TotalKilometers *int
	Note            *string
}

// Apply returns e with the patch merged over it. The id never changes.
func (p EntryPatch) Apply(e MileageEntry) MileageEntry {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.TotalKilometers != nil {
		e.TotalKilometers = *p.TotalKilometers
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
	return e
}

// Latest returns the entry with the most recent date. It does not rely on
// the bucket being sorted.
func (y *YearlyData) Latest() (MileageEntry, bool) {
	if y == nil || len(y.Entries) == 0 {
		return MileageEntry{}, false
	}
	latest := y.Entries[0]
	for _, e := range y.Entries[1:] {
		if e.Date.After(latest.Date) {
			latest = e
		}
	}
	return latest, true
}
