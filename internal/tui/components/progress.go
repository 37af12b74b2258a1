package components

import (
	"fmt"

	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ShareBar renders a labeled bar of a category's share of the total, followed
// by the amount and the percentage. emphasized rows get the hover surface.
func ShareBar(label string, amount, share float64, color lipgloss.Color, emphasized bool, labelW, barWidth int) string {
	t := theme.Active

	if share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}
	if barWidth < 4 {
		barWidth = 4
	}

	bg := t.Surface
	fg := t.TextMuted
	if emphasized {
		bg = t.SurfaceHover
		fg = t.TextPrimary
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(fg).Background(bg).Bold(emphasized)
	amountStyle := lipgloss.NewStyle().Foreground(t.Green).Background(bg)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(bg).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(bg)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncStr(label, labelW))) +
		spaceStyle.Render(" ") +
		bar.ViewAs(share) +
		spaceStyle.Render(" ") +
		amountStyle.Render(fmt.Sprintf("%11s", cli.FormatAmount(amount))) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", share*100))
}
