package components

import (
	"fmt"

	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/model"
	"github.com/theirongolddev/budgetring/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// TooltipPane is the single floating label for the hovered category.
// It starts hidden.
type TooltipPane struct {
	visible bool
	content string
	datum   model.CategoryDatum
	x, y    int
}

// NewTooltipPane returns a hidden tooltip.
func NewTooltipPane() *TooltipPane {
	return &TooltipPane{}
}

// TooltipText formats a category as "Title: $Budget".
func TooltipText(d model.CategoryDatum) string {
	return d.Title + ": " + cli.FormatBudget(d.Budget)
}

// Show replaces the content with datum and makes the tooltip visible.
func (p *TooltipPane) Show(d model.CategoryDatum) {
	p.datum = d
	p.content = TooltipText(d)
	p.visible = true
}

// Hide makes the tooltip invisible. Content is kept until the next Show.
func (p *TooltipPane) Hide() {
	p.visible = false
}

// Visible reports whether the tooltip is shown.
func (p *TooltipPane) Visible() bool {
	return p.visible
}

// Content returns the last content set by Show.
func (p *TooltipPane) Content() string {
	return p.content
}

// MoveTo records the pointer position in surface-local cells.
func (p *TooltipPane) MoveTo(x, y int) {
	p.x, p.y = x, y
}

// Overlay returns the floating label for a surface of the given size,
// placed right of the pointer and shifted left when it would overflow.
func (p *TooltipPane) Overlay(width, height int) (Overlay, bool) {
	if !p.visible {
		return Overlay{}, false
	}
	t := theme.Active

	text := " " + p.content + " "
	w := lipgloss.Width(text)
	x := p.x + 2
	if x+w > width {
		x = p.x - w - 1
	}
	if x < 0 {
		x = 0
	}
	y := p.y - 1
	if y < 0 {
		y = p.y + 1
	}
	if y >= height {
		y = height - 1
	}

	return Overlay{
		X:          x,
		Y:          y,
		Text:       text,
		Foreground: t.Background,
		Background: t.AccentBright,
		Bold:       true,
	}, true
}

// DetailView renders the tooltip's detail card body: content plus a share
// bar against total. Hidden tooltips render a hint.
func (p *TooltipPane) DetailView(width int, total float64) string {
	t := theme.Active
	if !p.visible {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("Hover a segment or legend row")
	}

	share := model.Share(p.datum.Budget, total)
	barW := width - 8
	if barW < 6 {
		barW = 6
	}
	bar := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	contentStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	pctStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return contentStyle.Render(p.content) + "\n" +
		bar.ViewAs(share) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", share*100))
}
