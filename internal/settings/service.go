// Package settings owns the in-memory copy of the user's allowance settings
// and keeps it in step with the store.
package settings

import (
	"fmt"
	"time"

	"github.com/theirongolddev/milo/internal/model"
	"github.com/theirongolddev/milo/internal/store"
)

// Patch carries a partial settings update. Nil fields are left unchanged.
type Patch struct {
	YearlyLimit       *int
	AccentColor       *string
	StartDate         *time.Time
	InitialKilometers *int
	Theme             *string
	Language          *string
}

func (p Patch) apply(s model.Settings) model.Settings {
	if p.YearlyLimit != nil {
		s.YearlyLimit = *p.YearlyLimit
	}
	if p.AccentColor != nil {
		s.AccentColor = *p.AccentColor
	}
	if p.StartDate != nil {
		s.StartDate = *p.StartDate
	}
	if p.InitialKilometers != nil {
		s.InitialKilometers = *p.InitialKilometers
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	return s
}

// Service holds the current settings. Every change is validated, persisted,
// and only then published to subscribers.
type Service struct {
	store     *store.Store
	now       func() time.Time
	current   model.Settings
	listeners []func(model.Settings)
}

// New returns a service backed by st. A nil clock uses time.Now.
func New(st *store.Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:   st,
		now:     now,
		current: model.DefaultSettings(now()),
	}
}

// Load reads the persisted settings into memory.
func (s *Service) Load() model.Settings {
	s.current = s.store.LoadSettings(s.now())
	return s.current
}

// Current returns the in-memory settings.
func (s *Service) Current() model.Settings {
	return s.current
}

// OnChange registers fn to run after each successful change.
func (s *Service) OnChange(fn func(model.Settings)) {
	s.listeners = append(s.listeners, fn)
}

// Update merges p into the current settings.
func (s *Service) Update(p Patch) (model.Settings, error) {
	return s.replace(p.apply(s.current))
}

// Reset replaces the settings with the defaults for the current time.
func (s *Service) Reset() (model.Settings, error) {
	return s.replace(model.DefaultSettings(s.now()))
}

// Setup records the allowance period start and, if given, the odometer
// reading at that start. The merged settings are validated first, then the
// legacy config record is written, and only then are the settings persisted
// and published. A failed legacy write leaves the settings untouched; a failed
// settings write after it leaves the legacy record already updated.
func (s *Service) Setup(start time.Time, initialKm *int) error {
	next := Patch{StartDate: &start, InitialKilometers: initialKm}.apply(s.current)
	if err := next.Validate(); err != nil {
		return err
	}

	cfg := model.LegacyConfig{StartDate: start, InitialKilometers: initialKm}
	if err := s.store.SaveLegacyConfig(cfg); err != nil {
		return fmt.Errorf("saving setup record: %w", err)
	}

	_, err := s.replace(next)
	return err
}

func (s *Service) replace(next model.Settings) (model.Settings, error) {
	if err := next.Validate(); err != nil {
		return s.current, err
	}
	if err := s.store.SaveSettings(next); err != nil {
		return s.current, fmt.Errorf("saving settings: %w", err)
	}

	s.current = next
	for _, fn := range s.listeners {
		fn(next)
	}
	return next, nil
}
