package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/milo/internal/pace"
)

// Styles are built on each call so theme and accent changes take effect.
func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Active.Accent)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Active.TextPrimary)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Active.TextMuted)
}

func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Active.Border)
}

// Cell is a table cell with an optional tier color. The zero Tier renders
// in the plain value color.
type Cell struct {
	Text string
	Tier pace.Tier
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]Cell
}

// Row builds a table row of plain cells.
func Row(texts ...string) []Cell {
	row := make([]Cell, len(texts))
	for i, s := range texts {
		row[i] = Cell{Text: s}
	}
	return row
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Active.Accent).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(lipgloss.NewStyle().Bold(true).Foreground(Active.TextPrimary).Render(title))
}

// RenderTable renders a bordered table with headers and rows. The first
// column is left-aligned, the rest right-aligned.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell.Text))
			}
		}
	}

	dim := dimStyle()
	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(dim.Render(left))
		for i, w := range widths {
			b.WriteString(dim.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dim.Render(mid))
			}
		}
		b.WriteString(dim.Render(right))
		b.WriteString("\n")
		return b.String()
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle().Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(dim.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle().Render(pad(h, widths[i], i == 0)))
			if i < numCols-1 {
				b.WriteString(dim.Render("│"))
			}
		}
		b.WriteString(dim.Render("│"))
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		b.WriteString(dim.Render("│"))
		for i := 0; i < numCols; i++ {
			var cell Cell
			if i < len(row) {
				cell = row[i]
			}
			style := valueStyle()
			if cell.Tier != pace.TierUnrated {
				style = lipgloss.NewStyle().Foreground(TierColor(cell.Tier)).Bold(true)
			}
			b.WriteString(style.Render(pad(cell.Text, widths[i], i == 0)))
			if i < numCols-1 {
				b.WriteString(dim.Render("│"))
			}
		}
		b.WriteString(dim.Render("│"))
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

func pad(s string, w int, left bool) string {
	gap := w - lipgloss.Width(s)
	if gap < 0 {
		gap = 0
	}
	if left {
		return " " + s + strings.Repeat(" ", gap) + " "
	}
	return " " + strings.Repeat(" ", gap) + s + " "
}

// RenderProgress renders a labeled bar for a 0-1 fraction colored by tier.
func RenderProgress(label string, pct float64, tier pace.Tier, width int) string {
	pct = min(max(pct, 0), 1)

	bar := progress.New(
		progress.WithSolidFill(string(TierColor(tier))),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(Active.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(TierColor(tier)).Bold(true)
	return mutedStyle().Render(label) + " " + bar.ViewAs(pct) + " " + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}

// RenderSparkline generates a unicode block sparkline scaled to ceiling.
// A ceiling of 0 scales to the largest value.
func RenderSparkline(values []float64, ceiling float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	top := ceiling
	if top <= 0 {
		for _, v := range values {
			top = max(top, v)
		}
	}
	if top == 0 {
		top = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / top * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}
	return b.String()
}

// Label renders a muted field label.
func Label(s string) string {
	return mutedStyle().Render(s)
}

// Colored renders s in the color of tier.
func Colored(s string, tier pace.Tier) string {
	return lipgloss.NewStyle().Foreground(TierColor(tier)).Bold(true).Render(s)
}

// Accent renders s in the accent color.
func Accent(s string) string {
	return headerStyle().Render(s)
}

// Dim renders s in the dim text color.
func Dim(s string) string {
	return lipgloss.NewStyle().Foreground(Active.TextDim).Render(s)
}
