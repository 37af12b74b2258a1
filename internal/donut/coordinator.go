package donut

import (
	"github.com/theirongolddev/budgetring/internal/model"
)

// ChartRenderer draws ring segments and reports hover through a single
// highlight callback.
type ChartRenderer interface {
	Render(segments []ArcSegment, colorOf ColorFunc)
	OnHighlight(fn func(index int))
	Emphasize(index int)
}

// LegendRenderer draws one entry per category in segment order.
type LegendRenderer interface {
	Render(categories []model.CategoryDatum, colorOf ColorFunc)
	OnHighlight(fn func(index int))
	Emphasize(index int)
}

// TooltipController shows the hovered category next to the pointer.
type TooltipController interface {
	Show(datum model.CategoryDatum)
	Hide()
}

// Coordinator owns the category list and the highlight state. It is the
// only writer of either; the panes it drives never talk to each other.
type Coordinator struct {
	chart   ChartRenderer
	legend  LegendRenderer
	tooltip TooltipController
	colors  *ColorAssigner

	categories []model.CategoryDatum
	segments   []ArcSegment
	total      float64
	highlight  int
	closed     bool
}

// NewCoordinator wires the three panes together and subscribes to hover
// reports from the chart and the legend.
func NewCoordinator(chart ChartRenderer, legend LegendRenderer, tooltip TooltipController, colors *ColorAssigner) *Coordinator {
	if colors == nil {
		colors = NewColorAssigner(DefaultPalette)
	}
	c := &Coordinator{
		chart:     chart,
		legend:    legend,
		tooltip:   tooltip,
		colors:    colors,
		highlight: NoHighlight,
	}
	chart.OnHighlight(c.Highlight)
	legend.OnHighlight(c.Highlight)
	return c
}

// Load replaces the category list wholesale and redraws both panes. An
// invalid list is refused and the previous render stays on screen. After
// Close, Load does nothing.
func (c *Coordinator) Load(categories []model.CategoryDatum) error {
	if c.closed {
		return nil
	}

	segments, err := Partition(categories)
	if err != nil {
		return err
	}

	c.Highlight(NoHighlight)

	c.categories = append([]model.CategoryDatum(nil), categories...)
	c.segments = segments
	c.total = model.TotalBudget(categories)
	c.colors.Reset()

	c.chart.Render(c.segments, c.colors.ColorOf)
	c.legend.Render(c.categories, c.colors.ColorOf)
	return nil
}

// Highlight moves the highlight to index. NoHighlight, or any index outside
// the current list, clears it and hides the tooltip.
func (c *Coordinator) Highlight(index int) {
	if c.closed {
		return
	}
	if index < 0 || index >= len(c.categories) {
		index = NoHighlight
	}

	c.highlight = index
	if index == NoHighlight {
		c.tooltip.Hide()
	} else {
		c.tooltip.Show(c.categories[index])
	}
	c.chart.Emphasize(index)
	c.legend.Emphasize(index)
}

// Highlighted returns the highlighted index and whether one is active.
func (c *Coordinator) Highlighted() (int, bool) {
	return c.highlight, c.highlight != NoHighlight
}

// Categories returns a copy of the current list.
func (c *Coordinator) Categories() []model.CategoryDatum {
	return append([]model.CategoryDatum(nil), c.categories...)
}

// Segments returns a copy of the current layout.
func (c *Coordinator) Segments() []ArcSegment {
	return append([]ArcSegment(nil), c.segments...)
}

// Total returns the budget total of the current list.
func (c *Coordinator) Total() float64 {
	return c.total
}

// ColorOf exposes the color assignment used for the current render.
func (c *Coordinator) ColorOf(index int) string {
	return string(c.colors.ColorOf(index))
}

// Closed reports whether the coordinator has been torn down.
func (c *Coordinator) Closed() bool {
	return c.closed
}

// Close tears the coordinator down: hover subscriptions are dropped, the
// tooltip is hidden and later loads or highlights are ignored.
func (c *Coordinator) Close() {
	if c.closed {
		return
	}
	c.Highlight(NoHighlight)
	c.chart.OnHighlight(nil)
	c.legend.OnHighlight(nil)
	c.closed = true
}
