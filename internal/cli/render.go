package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
)

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)

	bannerNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Padding(0, 1)

	titleCellStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	amountStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	amountCellStyle = amountStyle.
			Padding(0, 1).
			Align(lipgloss.Right)

	shareCellStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1).
			Align(lipgloss.Right)

	totalCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Padding(0, 1)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// CategoryRow is one line of the category table.
type CategoryRow struct {
	Title  string
	Budget float64
	Share  float64
}

// RenderBanner renders the summary heading: the app name and the source
// the budget came from.
func RenderBanner(source string, categories int, total float64) string {
	line := bannerNameStyle.Render("budgetring") +
		dimStyle.Render("  ·  ") +
		mutedStyle.Render(source)
	stats := fmt.Sprintf("%d categories, %s total", categories, FormatAmount(total))
	return bannerStyle.Render(line + "\n" + amountStyle.Render(stats))
}

// RenderCategoryTable renders categories with their budget and share,
// followed by a bold total row. An empty row list renders nothing.
func RenderCategoryTable(rows []CategoryRow, total float64) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Category", "Budget", "Share")

	for _, r := range rows {
		t.Row(r.Title, FormatAmount(r.Budget), FormatPercent(r.Share))
	}
	t.Row("Total", FormatAmount(total), FormatPercent(1))

	last := len(rows)
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			if col > 0 {
				return headerStyle.Align(lipgloss.Right)
			}
			return headerStyle
		case row == last:
			if col > 0 {
				return totalCellStyle.Align(lipgloss.Right)
			}
			return totalCellStyle
		case col == 1:
			return amountCellStyle
		case col == 2:
			return shareCellStyle
		default:
			return titleCellStyle
		}
	})

	return t.Render()
}

// RenderShareBar renders one category row: a colored swatch bar sized by
// share, the title, the amount and the percentage.
func RenderShareBar(title string, amount, share float64, color lipgloss.Color, labelWidth, barWidth int) string {
	if share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}
	filled := int(share*float64(barWidth) + 0.5)
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", barWidth-filled))

	return fmt.Sprintf("  %s %s %s %s",
		valueStyle.Render(fmt.Sprintf("%-*s", labelWidth, title)),
		bar,
		amountStyle.Render(fmt.Sprintf("%12s", FormatAmount(amount))),
		mutedStyle.Render(fmt.Sprintf("%6s", FormatPercent(share))),
	)
}
