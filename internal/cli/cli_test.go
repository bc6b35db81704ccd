package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/milo/internal/model"
	"github.com/theirongolddev/milo/internal/pace"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestFormatKm(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0 km"},
		{999.4, "999 km"},
		{12345.6, "12,346 km"},
		{-1500, "-1,500 km"},
	}
	for _, tt := range tests {
		if got := FormatKm(tt.in); got != tt.want {
			t.Errorf("FormatKm(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedKm(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{250, "+250 km"},
		{-1200, "-1,200 km"},
		{0.2, "0 km"},
	}
	for _, tt := range tests {
		if got := FormatSignedKm(tt.in); got != tt.want {
			t.Errorf("FormatSignedKm(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMisc(t *testing.T) {
	if got := FormatPercent(42.345); got != "42.3%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatRate(27.44); got != "27.4 km/day" {
		t.Errorf("FormatRate = %q", got)
	}
	if got := FormatDays(1); got != "1 day" {
		t.Errorf("FormatDays(1) = %q", got)
	}
	if got := FormatDays(1200); got != "1,200 days" {
		t.Errorf("FormatDays(1200) = %q", got)
	}
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	if got := FormatAge(now.AddDate(0, 0, -3), now); got != "3 days ago" {
		t.Errorf("FormatAge = %q", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline(nil, 0); got != "" {
		t.Fatalf("empty sparkline = %q", got)
	}
	if got := RenderSparkline([]float64{0, 50, 100}, 0); got != "▁▄█" {
		t.Errorf("auto-scaled sparkline = %q", got)
	}
	// A shared ceiling keeps two series comparable.
	if got := RenderSparkline([]float64{0, 100}, 200); got != "▁▄" {
		t.Errorf("ceiling sparkline = %q", got)
	}
}

func TestRenderTableAlignment(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]Cell{
			Row("Total", "1,234 km"),
			{{Text: "Variance"}, {Text: "+50 km", Tier: pace.TierNeutral}},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("table has %d lines, want 6:\n%s", len(lines), out)
	}

	width := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Errorf("line %d width = %d, want %d", i, w, width)
		}
	}
	if !strings.Contains(out, "\x1b[") {
		t.Error("table has no ANSI styling")
	}
}

func TestTierColorsFollowTheme(t *testing.T) {
	defer func() { Active = Dark }()

	Apply(model.Settings{Theme: model.ThemeDark, AccentColor: "#123456"})
	if TierColor(pace.TierExcellent) != lipgloss.Color("#00E676") {
		t.Errorf("dark excellent = %v", TierColor(pace.TierExcellent))
	}
	if TierColor(pace.TierUnrated) != Active.Secondary {
		t.Errorf("unrated = %v, want secondary", TierColor(pace.TierUnrated))
	}
	if Active.Accent != lipgloss.Color("#123456") {
		t.Errorf("accent = %v", Active.Accent)
	}

	SetTheme(model.ThemeLight)
	if Active.Name != model.ThemeLight {
		t.Errorf("theme = %s, want light", Active.Name)
	}
	if Active.Accent != lipgloss.Color("#123456") {
		t.Errorf("accent lost on theme switch: %v", Active.Accent)
	}
}

func TestRenderProgress(t *testing.T) {
	out := RenderProgress("Used", 1.7, pace.TierDanger, 20)
	if !strings.Contains(out, "100%") {
		t.Errorf("overflow not clamped: %q", out)
	}
	if lipgloss.Width(out) != len("Used")+1+20+1+4 {
		t.Errorf("progress width = %d", lipgloss.Width(out))
	}
}
