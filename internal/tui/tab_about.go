package tui

import (
	"strings"

	"github.com/theirongolddev/budgetring/internal/tui/components"
	"github.com/theirongolddev/budgetring/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var aboutSections = []struct {
	title string
	body  string
}{
	{"Stay on track", "Most people underestimate where their money goes. " +
		"Tracking every category against a plan turns guesses into real numbers."},
	{"Alerts", "When a category runs dry you should know before you overspend. " +
		"The goal is to never go over budget."},
	{"Results", "Budgeting every expense gets people out of debt faster, " +
		"and spending is easier when it is already accounted for."},
	{"Free", "budgetring is free, and your data stays wherever you keep it."},
}

func (a App) renderAboutTab(cw int) string {
	t := theme.Active

	bodyStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	cols := 2
	if cw < 100 {
		cols = 1
	}
	widths := components.LayoutRow(cw, cols)

	var rows []string
	for i := 0; i < len(aboutSections); i += cols {
		var cards []string
		for j := 0; j < cols && i+j < len(aboutSections); j++ {
			sec := aboutSections[i+j]
			w := widths[j]
			body := bodyStyle.Width(components.CardInnerWidth(w)).Render(sec.body)
			cards = append(cards, components.ContentCard(sec.title, body, w, false))
		}
		rows = append(rows, components.CardRow(cards))
	}
	return strings.Join(rows, "\n")
}
