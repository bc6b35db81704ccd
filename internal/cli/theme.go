package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/milo/internal/model"
	"github.com/theirongolddev/milo/internal/pace"
)

// Theme defines the color roles used in terminal output.
type Theme struct {
	Name        string
	Border      lipgloss.Color // Table rules and box borders
	TextDim     lipgloss.Color // Hints, target series
	TextMuted   lipgloss.Color // Labels
	TextPrimary lipgloss.Color // Values
	Accent      lipgloss.Color // Headers, progress fill

	Excellent lipgloss.Color
	Good      lipgloss.Color
	Neutral   lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Secondary lipgloss.Color // Unrated values
}

// Dark is the default theme.
var Dark = Theme{
	Name:        model.ThemeDark,
	Border:      lipgloss.Color("#403E3C"),
	TextDim:     lipgloss.Color("#575653"),
	TextMuted:   lipgloss.Color("#999999"),
	TextPrimary: lipgloss.Color("#FFFFFF"),
	Accent:      lipgloss.Color(model.DefaultAccentColor),
	Excellent:   lipgloss.Color("#00E676"),
	Good:        lipgloss.Color("#66BB6A"),
	Neutral:     lipgloss.Color("#FFA726"),
	Warning:     lipgloss.Color("#FF7043"),
	Danger:      lipgloss.Color("#FF5252"),
	Secondary:   lipgloss.Color("#999999"),
}

// Light keeps the tier hues but darkens text for pale backgrounds.
var Light = Theme{
	Name:        model.ThemeLight,
	Border:      lipgloss.Color("#CECDC3"),
	TextDim:     lipgloss.Color("#B7B5AC"),
	TextMuted:   lipgloss.Color("#6F6E69"),
	TextPrimary: lipgloss.Color("#100F0F"),
	Accent:      lipgloss.Color(model.DefaultAccentColor),
	Excellent:   lipgloss.Color("#00A152"),
	Good:        lipgloss.Color("#43A047"),
	Neutral:     lipgloss.Color("#EF8C00"),
	Warning:     lipgloss.Color("#E64A19"),
	Danger:      lipgloss.Color("#D32F2F"),
	Secondary:   lipgloss.Color("#6F6E69"),
}

// Active is the currently selected theme.
var Active = Dark

// SetTheme selects a theme by settings name. "auto" follows the terminal
// background. The accent of the previous theme is kept.
func SetTheme(name string) {
	accent := Active.Accent
	switch name {
	case model.ThemeLight:
		Active = Light
	case model.ThemeAuto:
		if lipgloss.HasDarkBackground() {
			Active = Dark
		} else {
			Active = Light
		}
	default:
		Active = Dark
	}
	Active.Accent = accent
}

// SetAccent replaces the accent color of the active theme.
func SetAccent(hex string) {
	if hex == "" {
		return
	}
	Active.Accent = lipgloss.Color(hex)
}

// Apply makes the active theme follow s.
func Apply(s model.Settings) {
	SetTheme(s.Theme)
	SetAccent(s.AccentColor)
}

// TierColor maps a banding tier to its color in the active theme.
func TierColor(t pace.Tier) lipgloss.Color {
	switch t {
	case pace.TierExcellent:
		return Active.Excellent
	case pace.TierGood:
		return Active.Good
	case pace.TierNeutral:
		return Active.Neutral
	case pace.TierWarning:
		return Active.Warning
	case pace.TierDanger:
		return Active.Danger
	default:
		return Active.Secondary
	}
}
