package model

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Theme and language values accepted in Settings.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeAuto  = "auto"

	LanguageES = "es"
	LanguageEN = "en"
)

// DefaultYearlyLimit is the allowance used until the user sets one.
const DefaultYearlyLimit = 10000

// DefaultAccentColor is the accent used until the user picks one.
const DefaultAccentColor = "#CC0000"

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Settings is the persisted user configuration of the allowance.
// StartDate anchors the rolling one-year period and is unrelated to
// calendar-year bucketing of entries.
type Settings struct {
	YearlyLimit       int       `json:"yearlyLimit"`
	AccentColor       string    `json:"accentColor"`
	StartDate         time.Time `json:"startDate"`
	InitialKilometers int       `json:"initialKilometers"`
	Theme             string    `json:"theme"`
	Language          string    `json:"language"`
}

// DefaultSettings returns the settings of a fresh install at now.
func DefaultSettings(now time.Time) Settings {
	return Settings{
		YearlyLimit:       DefaultYearlyLimit,
		AccentColor:       DefaultAccentColor,
		StartDate:         now,
		InitialKilometers: 0,
		Theme:             ThemeDark,
		Language:          LanguageES,
	}
}

// Validate checks the settings before they are persisted.
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.YearlyLimit, validation.Required, validation.Min(1)),
		validation.Field(&s.AccentColor, validation.Required, validation.Match(hexColor)),
		validation.Field(&s.StartDate, validation.Required),
		validation.Field(&s.InitialKilometers, validation.Min(0)),
		validation.Field(&s.Theme, validation.In(ThemeDark, ThemeLight, ThemeAuto)),
		validation.Field(&s.Language, validation.In(LanguageES, LanguageEN)),
	)
}

// LegacyConfig is the older start-date record still written during setup.
type LegacyConfig struct {
	StartDate         time.Time `json:"startDate"`
	InitialKilometers *int      `json:"initialKilometers,omitempty"`
}
