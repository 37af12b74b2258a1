package tui

import (
	"strings"

	"github.com/theirongolddev/budgetring/internal/donut"
	"github.com/theirongolddev/budgetring/internal/model"
	"github.com/theirongolddev/budgetring/internal/tui/components"
	"github.com/theirongolddev/budgetring/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	breakdownChartH = 10
	maxShareLabelW  = 16
	shareFixedW     = 20 // spaces + amount + percentage
)

// breakdownChartCard renders the bar chart card. Its height positions the
// share rows below it.
func (a App) breakdownChartCard(cw int) string {
	cats := a.coord.Categories()
	values := make([]float64, len(cats))
	labels := make([]string, len(cats))
	for i, c := range cats {
		values[i] = c.Budget
		labels[i] = c.Title
	}

	emph := donut.NoHighlight
	if idx, ok := a.coord.Highlighted(); ok {
		emph = idx
	}

	chart := components.BarChart(values, labels, a.colors.ColorOf, emph,
		components.CardInnerWidth(cw), breakdownChartH)
	return components.ContentCard("Budget by Category", chart, cw, false)
}

// shareRowsY is the screen row of the first share bar.
func (a App) shareRowsY(cw int) int {
	return headerHeight + lipgloss.Height(a.breakdownChartCard(cw)) + 2
}

// routeBreakdownPointer maps pointer motion over the share rows onto the
// legend, which shares their order.
func (a App) routeBreakdownPointer(x, y int) {
	cw := a.contentWidth()
	left := a.contentOffsetX() + 2
	row := y - a.shareRowsY(cw)

	if x < left || x >= left+components.CardInnerWidth(cw) || row < 0 || row >= a.legend.Len() {
		a.legend.PointerLeave()
		return
	}
	a.placeTooltipForLegend()
	a.legend.PointerMove(row)
}

func (a App) renderBreakdownTab(cw int) string {
	t := theme.Active
	cats := a.coord.Categories()
	if len(cats) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("No categories loaded")
		return components.ContentCard("Breakdown", hint, cw, false)
	}

	innerW := components.CardInnerWidth(cw)
	labelW := 0
	for _, c := range cats {
		if n := len([]rune(c.Title)); n > labelW {
			labelW = n
		}
	}
	if labelW > maxShareLabelW {
		labelW = maxShareLabelW
	}
	barW := innerW - labelW - shareFixedW

	emph := donut.NoHighlight
	if idx, ok := a.coord.Highlighted(); ok {
		emph = idx
	}

	total := a.coord.Total()
	rows := make([]string, len(cats))
	for i, c := range cats {
		rows[i] = components.ShareBar(c.Title, c.Budget, model.Share(c.Budget, total),
			a.colors.ColorOf(i), i == emph, labelW, barW)
	}

	var b strings.Builder
	b.WriteString(a.breakdownChartCard(cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Share of Total", strings.Join(rows, "\n"), cw, false))
	return b.String()
}
