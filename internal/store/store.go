package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/theirongolddev/milo/internal/model"
)

// Record keys.
const (
	KeyEntries  = "mileage_data"
	KeySettings = "app_settings"
	KeyConfig   = "app_config"
)

// ErrEntryNotFound is returned when no entry has the requested id.
var ErrEntryNotFound = errors.New("entry not found")

// Store maps the yearly entry buckets, the settings singleton, and the
// legacy config record onto a KV. Reads fail soft: a missing, unreadable,
// or malformed record is logged and replaced by its empty or default value.
// Writes report failures to the caller and leave the previous record intact.
type Store struct {
	kv     KV
	logger *slog.Logger
}

// New returns a Store over kv. A nil logger uses slog.Default().
func New(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// Close closes the underlying KV.
func (s *Store) Close() error {
	return s.kv.Close()
}

// load decodes the record under key into v. It reports whether v was
// filled; every failure is logged and leaves v untouched or partially
// decoded, so callers must pass a fresh default.
func (s *Store) load(key string, v any) bool {
	data, err := s.kv.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		s.logger.Error("loading record", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("discarding malformed record", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.kv.Set(key, data); err != nil {
		s.logger.Error("saving record", "key", key, "error", err)
		return err
	}
	s.logger.Debug("saved record", "key", key, "bytes", len(data))
	return nil
}

// LoadData returns every yearly bucket, or an empty list.
func (s *Store) LoadData() []model.YearlyData {
	var data []model.YearlyData
	if !s.load(KeyEntries, &data) || data == nil {
		return []model.YearlyData{}
	}
	return data
}

// SaveData replaces the yearly entries record.
func (s *Store) SaveData(data []model.YearlyData) error {
	return s.save(KeyEntries, data)
}

// LoadSettings returns the defaults for now with any persisted fields
// decoded over them. A partial record keeps the defaults for the fields
// it lacks; a record that fails validation is replaced by the defaults.
func (s *Store) LoadSettings(now time.Time) model.Settings {
	settings := model.DefaultSettings(now)
	if !s.load(KeySettings, &settings) {
		return model.DefaultSettings(now)
	}
	if err := settings.Validate(); err != nil {
		s.logger.Warn("discarding invalid settings", "key", KeySettings, "error", err)
		return model.DefaultSettings(now)
	}
	return settings
}

// SaveSettings replaces the settings record.
func (s *Store) SaveSettings(settings model.Settings) error {
	return s.save(KeySettings, settings)
}

// LoadLegacyConfig returns the legacy start-date record if one exists.
func (s *Store) LoadLegacyConfig() (model.LegacyConfig, bool) {
	var cfg model.LegacyConfig
	if !s.load(KeyConfig, &cfg) {
		return model.LegacyConfig{}, false
	}
	return cfg, true
}

// SaveLegacyConfig replaces the legacy start-date record.
func (s *Store) SaveLegacyConfig(cfg model.LegacyConfig) error {
	return s.save(KeyConfig, cfg)
}

// AddEntry files the entry under the calendar year of its date, creating
// the bucket if needed, and persists the entries record.
func (s *Store) AddEntry(entry model.MileageEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	data := s.LoadData()
	data = insertEntry(data, entry)
	return s.SaveData(data)
}

// UpdateEntry merges patch into the entry with the given id. When the new
// date falls in a different calendar year the entry moves to that year's
// bucket. Nothing is persisted if the id is unknown or the result is invalid.
func (s *Store) UpdateEntry(id string, patch model.EntryPatch) error {
	data := s.LoadData()

	bi, ei := findEntry(data, id)
	if bi < 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}

	updated := patch.Apply(data[bi].Entries[ei])
	if err := updated.Validate(); err != nil {
		return err
	}

	if updated.Date.Year() == data[bi].Year {
		data[bi].Entries[ei] = updated
		data[bi].SortEntries()
	} else {
		data[bi].Entries = append(data[bi].Entries[:ei], data[bi].Entries[ei+1:]...)
		data = insertEntry(data, updated)
		s.logger.Debug("moved entry to another year", "id", id, "year", updated.Date.Year())
	}

	return s.SaveData(data)
}

// DeleteEntry removes the first entry with the given id, scanning buckets
// in stored order. It reports whether an entry was removed; when none
// matches nothing is written.
func (s *Store) DeleteEntry(id string) (bool, error) {
	data := s.LoadData()

	bi, ei := findEntry(data, id)
	if bi < 0 {
		return false, nil
	}

	data[bi].Entries = append(data[bi].Entries[:ei], data[bi].Entries[ei+1:]...)
	if err := s.SaveData(data); err != nil {
		return false, err
	}
	return true, nil
}

// Entry looks up a single entry by id across all years.
func (s *Store) Entry(id string) (model.MileageEntry, bool) {
	data := s.LoadData()
	bi, ei := findEntry(data, id)
	if bi < 0 {
		return model.MileageEntry{}, false
	}
	return data[bi].Entries[ei], true
}

// LatestReading returns the odometer value of the most recent entry in
// now's calendar year, or 0.
func (s *Store) LatestReading(now time.Time) int {
	data := s.LoadData()
	for i := range data {
		if data[i].Year != now.Year() {
			continue
		}
		if e, ok := data[i].Latest(); ok {
			return e.TotalKilometers
		}
	}
	return 0
}

func insertEntry(data []model.YearlyData, entry model.MileageEntry) []model.YearlyData {
	year := entry.Date.Year()

	for i := range data {
		if data[i].Year == year {
			data[i].Entries = append(data[i].Entries, entry)
			data[i].SortEntries()
			return data
		}
	}

	yd := model.NewYearlyData(year, entry.Date.Location())
	yd.Entries = append(yd.Entries, entry)
	return append(data, yd)
}

func findEntry(data []model.YearlyData, id string) (int, int) {
	for bi := range data {
		if ei := data[bi].IndexOf(id); ei >= 0 {
			return bi, ei
		}
	}
	return -1, -1
}
