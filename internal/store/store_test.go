package store

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/milo/internal/model"
)

type countingKV struct {
	KV
	sets int
}

func (c *countingKV) Set(key string, value []byte) error {
	c.sets++
	return c.KV.Set(key, value)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openBackends(t *testing.T) map[string]KV {
	t.Helper()

	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "milo.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = sq.Close() })

	dk, err := OpenDisk(filepath.Join(t.TempDir(), "records"))
	if err != nil {
		t.Fatalf("OpenDisk: %v", err)
	}

	return map[string]KV{BackendSQLite: sq, BackendDisk: dk}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "milo.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	s := New(kv, quietLogger())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestKVBackends(t *testing.T) {
	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := kv.Get("missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
			}

			if err := kv.Set("b", []byte("one")); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := kv.Set("a", []byte("x")); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := kv.Set("b", []byte("two")); err != nil {
				t.Fatalf("Set: %v", err)
			}

			got, err := kv.Get("b")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != "two" {
				t.Errorf("Get(b) = %q, want %q", got, "two")
			}

			keys, err := kv.Keys()
			if err != nil {
				t.Fatalf("Keys: %v", err)
			}
			if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
				t.Errorf("Keys = %v, want [a b]", keys)
			}
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("etcd", t.TempDir()); err == nil {
		t.Fatal("Open(etcd) = nil error, want error")
	}
}

func TestLoadDataEmpty(t *testing.T) {
	s := newStore(t)
	data := s.LoadData()
	if data == nil || len(data) != 0 {
		t.Fatalf("LoadData on empty store = %#v, want empty non-nil slice", data)
	}
}

func TestAddEntryBucketsByYear(t *testing.T) {
	s := newStore(t)

	entries := []model.MileageEntry{
		{ID: "2", Date: day(2025, 5, 1), TotalKilometers: 2000},
		{ID: "1", Date: day(2025, 2, 1), TotalKilometers: 1000},
		{ID: "3", Date: day(2026, 1, 10), TotalKilometers: 9000},
	}
	for _, e := range entries {
		if err := s.AddEntry(e); err != nil {
			t.Fatalf("AddEntry(%s): %v", e.ID, err)
		}
	}

	data := s.LoadData()
	if len(data) != 2 {
		t.Fatalf("buckets = %d, want 2", len(data))
	}

	y25 := data[0]
	if y25.Year != 2025 {
		t.Fatalf("first bucket year = %d, want 2025", y25.Year)
	}
	if !y25.StartDate.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartDate = %v, want 2025-01-01", y25.StartDate)
	}
	if len(y25.Entries) != 2 || y25.Entries[0].ID != "1" || y25.Entries[1].ID != "2" {
		t.Errorf("2025 entries not sorted by date: %+v", y25.Entries)
	}
	if data[1].Year != 2026 || len(data[1].Entries) != 1 {
		t.Errorf("2026 bucket = %+v", data[1])
	}
}

func TestAddEntryRejectsInvalid(t *testing.T) {
	kv := &countingKV{KV: newStore(t).kv}
	s := New(kv, quietLogger())

	if err := s.AddEntry(model.MileageEntry{Date: day(2025, 1, 1), TotalKilometers: 5}); err == nil {
		t.Fatal("AddEntry without id = nil error, want error")
	}
	if err := s.AddEntry(model.MileageEntry{ID: "x", Date: day(2025, 1, 1), TotalKilometers: -1}); err == nil {
		t.Fatal("AddEntry with negative km = nil error, want error")
	}
	if kv.sets != 0 {
		t.Fatalf("invalid entries caused %d writes", kv.sets)
	}
}

func TestUpdateEntry(t *testing.T) {
	s := newStore(t)
	for _, e := range []model.MileageEntry{
		{ID: "a", Date: day(2025, 3, 1), TotalKilometers: 100},
		{ID: "b", Date: day(2025, 6, 1), TotalKilometers: 600},
		{ID: "c", Date: day(2026, 3, 1), TotalKilometers: 3000},
	} {
		if err := s.AddEntry(e); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}

	bucketIDs := func(t *testing.T, year int) []string {
		t.Helper()
		for _, yd := range s.LoadData() {
			if yd.Year != year {
				continue
			}
			ids := make([]string, len(yd.Entries))
			for i, e := range yd.Entries {
				ids[i] = e.ID
			}
			return ids
		}
		t.Fatalf("no bucket for %d", year)
		return nil
	}

	t.Run("same year", func(t *testing.T) {
		km := 150
		note := "fixed typo"
		if err := s.UpdateEntry("a", model.EntryPatch{TotalKilometers: &km, Note: &note}); err != nil {
			t.Fatalf("UpdateEntry: %v", err)
		}
		got, ok := s.Entry("a")
		if !ok {
			t.Fatal("entry a missing after update")
		}
		if got.TotalKilometers != 150 || got.Note != "fixed typo" || !got.Date.Equal(day(2025, 3, 1)) {
			t.Errorf("entry a = %+v", got)
		}
	})

	t.Run("reorders within year", func(t *testing.T) {
		d := day(2025, 7, 1)
		if err := s.UpdateEntry("a", model.EntryPatch{Date: &d}); err != nil {
			t.Fatalf("UpdateEntry: %v", err)
		}
		if got := bucketIDs(t, 2025); len(got) != 2 || got[0] != "b" || got[1] != "a" {
			t.Fatalf("2025 order = %v, want [b a]", got)
		}
	})

	t.Run("moves between years", func(t *testing.T) {
		d := day(2026, 1, 5)
		if err := s.UpdateEntry("b", model.EntryPatch{Date: &d}); err != nil {
			t.Fatalf("UpdateEntry: %v", err)
		}

		if got := bucketIDs(t, 2025); len(got) != 1 || got[0] != "a" {
			t.Errorf("2025 entries = %v, want [a]", got)
		}
		if got := bucketIDs(t, 2026); len(got) != 2 || got[0] != "b" || got[1] != "c" {
			t.Errorf("2026 order = %v, want [b c]", got)
		}
		if n := len(s.LoadData()); n != 2 {
			t.Errorf("buckets = %d, want 2", n)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		kv := &countingKV{KV: s.kv}
		s2 := New(kv, quietLogger())
		km := 1
		err := s2.UpdateEntry("nope", model.EntryPatch{TotalKilometers: &km})
		if !errors.Is(err, ErrEntryNotFound) {
			t.Fatalf("UpdateEntry(nope) error = %v, want ErrEntryNotFound", err)
		}
		if kv.sets != 0 {
			t.Fatalf("unknown id caused %d writes", kv.sets)
		}
	})
}

func TestDeleteEntry(t *testing.T) {
	kv := &countingKV{KV: newStore(t).kv}
	s := New(kv, quietLogger())

	if err := s.AddEntry(model.MileageEntry{ID: "a", Date: day(2025, 3, 1), TotalKilometers: 100}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	kv.sets = 0

	removed, err := s.DeleteEntry("missing")
	if err != nil || removed {
		t.Fatalf("DeleteEntry(missing) = %v, %v; want false, nil", removed, err)
	}
	if kv.sets != 0 {
		t.Fatalf("deleting a missing id wrote %d times", kv.sets)
	}

	removed, err = s.DeleteEntry("a")
	if err != nil || !removed {
		t.Fatalf("DeleteEntry(a) = %v, %v; want true, nil", removed, err)
	}
	if _, ok := s.Entry("a"); ok {
		t.Fatal("entry a still present after delete")
	}
	if kv.sets != 1 {
		t.Fatalf("delete wrote %d times, want 1", kv.sets)
	}
}

func TestLatestReading(t *testing.T) {
	s := newStore(t)
	now := day(2025, 8, 1)

	if got := s.LatestReading(now); got != 0 {
		t.Fatalf("LatestReading on empty store = %d, want 0", got)
	}

	for _, e := range []model.MileageEntry{
		{ID: "old", Date: day(2024, 12, 30), TotalKilometers: 99999},
		{ID: "a", Date: day(2025, 7, 1), TotalKilometers: 4200},
		{ID: "b", Date: day(2025, 2, 1), TotalKilometers: 1000},
	} {
		if err := s.AddEntry(e); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}

	if got := s.LatestReading(now); got != 4200 {
		t.Fatalf("LatestReading = %d, want 4200", got)
	}
}

func TestCorruptRecordsFailSoft(t *testing.T) {
	s := newStore(t)
	now := day(2025, 4, 1)

	if err := s.kv.Set(KeyEntries, []byte("{not json")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.kv.Set(KeySettings, []byte("[1,2")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if data := s.LoadData(); len(data) != 0 {
		t.Errorf("LoadData on corrupt record = %+v, want empty", data)
	}
	if got := s.LoadSettings(now); got != model.DefaultSettings(now) {
		t.Errorf("LoadSettings on corrupt record = %+v, want defaults", got)
	}
}

func TestLoadSettingsMergesDefaults(t *testing.T) {
	s := newStore(t)
	now := day(2025, 4, 1)

	if err := s.kv.Set(KeySettings, []byte(`{"yearlyLimit":12000,"theme":"light"}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got := s.LoadSettings(now)
	if got.YearlyLimit != 12000 || got.Theme != model.ThemeLight {
		t.Errorf("persisted fields lost: %+v", got)
	}
	if got.AccentColor != model.DefaultAccentColor || got.Language != model.LanguageES || !got.StartDate.Equal(now) {
		t.Errorf("missing fields not defaulted: %+v", got)
	}
}

func TestLoadSettingsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"zero limit", `{"yearlyLimit":0}`},
		{"negative limit", `{"yearlyLimit":-500,"theme":"light"}`},
		{"bad accent", `{"accentColor":"red"}`},
		{"negative initial", `{"initialKilometers":-1}`},
		{"unknown language", `{"language":"fr"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			now := day(2025, 4, 1)
			if err := s.kv.Set(KeySettings, []byte(tt.record)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if got := s.LoadSettings(now); got != model.DefaultSettings(now) {
				t.Fatalf("LoadSettings(%s) = %+v, want defaults", tt.record, got)
			}
		})
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			s := New(kv, quietLogger())
			now := day(2025, 4, 1)

			want := model.DefaultSettings(day(2025, 3, 10))
			want.YearlyLimit = 15000
			want.AccentColor = "#00AAFF"
			want.Language = model.LanguageEN
			if err := s.SaveSettings(want); err != nil {
				t.Fatalf("SaveSettings: %v", err)
			}

			got := s.LoadSettings(now)
			if !got.StartDate.Equal(want.StartDate) {
				t.Errorf("StartDate = %v, want %v", got.StartDate, want.StartDate)
			}
			got.StartDate = want.StartDate
			if got != want {
				t.Errorf("LoadSettings = %+v, want %+v", got, want)
			}
		})
	}
}

func TestLegacyConfig(t *testing.T) {
	s := newStore(t)

	if _, ok := s.LoadLegacyConfig(); ok {
		t.Fatal("LoadLegacyConfig on empty store reported a record")
	}

	km := 300
	if err := s.SaveLegacyConfig(model.LegacyConfig{StartDate: day(2025, 1, 15), InitialKilometers: &km}); err != nil {
		t.Fatalf("SaveLegacyConfig: %v", err)
	}

	cfg, ok := s.LoadLegacyConfig()
	if !ok {
		t.Fatal("LoadLegacyConfig found nothing after save")
	}
	if !cfg.StartDate.Equal(day(2025, 1, 15)) || cfg.InitialKilometers == nil || *cfg.InitialKilometers != 300 {
		t.Errorf("LoadLegacyConfig = %+v", cfg)
	}
}
