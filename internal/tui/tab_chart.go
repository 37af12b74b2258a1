package tui

import (
	"strconv"
	"strings"

	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/tui/components"

	"github.com/charmbracelet/lipgloss"
)

// chartLayout is the screen geometry of the chart tab. View and mouse
// routing both read it so hitboxes match what is drawn.
type chartLayout struct {
	chartCardW int
	sideW      int
	legendW    int

	// Screen cell of the ring surface's top-left corner.
	ringX, ringY int
	// Screen cell of the first legend row.
	legendX, legendY int
}

func (a App) chartLayout() chartLayout {
	rw, _ := a.ring.Size()
	offsetX := a.contentOffsetX()
	chartCardW := rw + components.CardChromeX
	sideW := a.contentWidth() - chartCardW
	top := headerHeight + metricRowHeight

	// Card bodies start below the top border and title row, inside the padding.
	return chartLayout{
		chartCardW: chartCardW,
		sideW:      sideW,
		legendW:    components.CardInnerWidth(sideW),
		ringX:      offsetX + 2,
		ringY:      top + 2,
		legendX:    offsetX + chartCardW + 2,
		legendY:    top + 2,
	}
}

// routeChartPointer delivers pointer motion to the ring or the legend.
// The pane the pointer is not over is told first, so a leave always
// precedes the next enter.
func (a App) routeChartPointer(x, y int) {
	l := a.chartLayout()
	rw, rh := a.ring.Size()

	rx, ry := x-l.ringX, y-l.ringY
	overRing := rx >= 0 && ry >= 0 && rx < rw && ry < rh

	row := y - l.legendY
	overLegend := x >= l.legendX && x < l.legendX+l.legendW && row >= 0 && row < a.legend.Len()

	if !overRing {
		a.ring.PointerLeave()
	}
	if !overLegend {
		a.legend.PointerLeave()
	}

	if overRing {
		a.tooltip.MoveTo(rx, ry)
		a.ring.PointerMove(rx, ry)
	}
	if overLegend {
		a.placeTooltipForLegend()
		a.legend.PointerMove(row)
	}
}

// placeTooltipForLegend anchors the tooltip in the ring's hole when the
// highlight comes from somewhere other than the ring.
func (a App) placeTooltipForLegend() {
	rw, rh := a.ring.Size()
	a.tooltip.MoveTo(rw/4, rh/2+1)
}

func (a App) renderChartTab(cw int) string {
	l := a.chartLayout()

	var b strings.Builder
	b.WriteString(components.MetricCardRow(a.headlineMetrics(), cw))
	b.WriteString("\n")

	rw, rh := a.ring.Size()
	var overlays []components.Overlay
	if o, ok := a.tooltip.Overlay(rw, rh); ok {
		overlays = append(overlays, o)
	}
	chartCard := components.ContentCard("Budget", a.ring.View(overlays...), l.chartCardW, false)

	legendCard := components.ContentCard("Categories", a.legend.View(l.legendW), l.sideW, false)
	detailCard := components.ContentCard("Selected",
		a.tooltip.DetailView(l.legendW, a.coord.Total()), l.sideW, a.tooltip.Visible())
	side := lipgloss.JoinVertical(lipgloss.Left, legendCard, detailCard)

	b.WriteString(components.CardRow([]string{chartCard, side}))
	return b.String()
}

// headlineMetrics returns the values shown above the chart.
func (a App) headlineMetrics() []components.Metric {
	cats := a.coord.Categories()

	largest := "-"
	best := -1
	for i, c := range cats {
		if best < 0 || c.Budget > cats[best].Budget {
			best = i
		}
	}
	if best >= 0 {
		largest = cats[best].Title
	}

	highlighted := "-"
	if idx, ok := a.coord.Highlighted(); ok {
		highlighted = cats[idx].Title
	}

	return []components.Metric{
		{Label: "Total", Value: cli.FormatAmount(a.coord.Total())},
		{Label: "Categories", Value: strconv.Itoa(len(cats))},
		{Label: "Largest", Value: largest},
		{Label: "Highlighted", Value: highlighted},
	}
}
