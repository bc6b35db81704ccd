package cmd

import (
	"testing"
	"time"

	"github.com/theirongolddev/milo/internal/model"
)

func TestParseKm(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"12345", 12345, false},
		{"12,345", 12345, false},
		{"12.345", 12345, false},
		{"0", 0, false},
		{"1,234,567", 1234567, false},
		{" 800 ", 800, false},
		{"12345.6", 0, true},
		{"9.9", 0, true},
		{"9.5", 0, true},
		{"1,23", 0, true},
		{"12,34,567", 0, true},
		{"1_000", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseKm(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseKm(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("parseKm(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2025-03-10")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.March || d.Day() != 10 || d.Location() != time.Local {
		t.Fatalf("parseDate = %v", d)
	}
	if _, err := parseDate("10/03/2025"); err == nil {
		t.Fatal("parseDate(10/03/2025) = nil error")
	}
}

func TestHistoryTableNewestFirst(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []model.MileageEntry{
		{ID: "b", Date: now.AddDate(0, 0, -10), TotalKilometers: 1500},
		{ID: "a", Date: now.AddDate(0, 0, -40), TotalKilometers: 1000},
		{ID: "c", Date: now.AddDate(0, 0, -1), TotalKilometers: 1750},
	}

	tbl := historyTable(entries, now)
	if len(tbl.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(tbl.Rows))
	}

	wantIDs := []string{"c", "b", "a"}
	wantDelta := []string{"+250 km", "+500 km", ""}
	for i, row := range tbl.Rows {
		if row[5].Text != wantIDs[i] {
			t.Errorf("row %d id = %s, want %s", i, row[5].Text, wantIDs[i])
		}
		if row[2].Text != wantDelta[i] {
			t.Errorf("row %d delta = %q, want %q", i, row[2].Text, wantDelta[i])
		}
	}
	if entries[0].ID != "b" {
		t.Error("historyTable reordered the caller's slice")
	}
}
