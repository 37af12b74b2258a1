package components

import (
	"strings"

	"github.com/theirongolddev/budgetring/internal/donut"
	"github.com/theirongolddev/budgetring/internal/model"
	"github.com/theirongolddev/budgetring/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// LegendEntry is one rendered legend row.
type LegendEntry struct {
	Title string
	Color lipgloss.Color
}

// LegendPane lists one swatch + title per category, in segment order.
// Rows double as hover targets.
type LegendPane struct {
	entries []LegendEntry

	hovered     int
	emphasized  int
	onHighlight func(index int)
}

// NewLegendPane returns an empty legend.
func NewLegendPane() *LegendPane {
	return &LegendPane{
		hovered:    donut.NoHighlight,
		emphasized: donut.NoHighlight,
	}
}

// Render replaces all entries.
func (l *LegendPane) Render(categories []model.CategoryDatum, colorOf donut.ColorFunc) {
	l.PointerLeave()
	l.emphasized = donut.NoHighlight

	entries := make([]LegendEntry, len(categories))
	for i, c := range categories {
		entries[i] = LegendEntry{Title: c.Title, Color: colorOf(i)}
	}
	l.entries = entries
}

// Entries returns a copy of the current entries.
func (l *LegendPane) Entries() []LegendEntry {
	return append([]LegendEntry(nil), l.entries...)
}

// Len returns the number of entries, which is also the pane's row count.
func (l *LegendPane) Len() int {
	return len(l.entries)
}

// OnHighlight registers the hover subscriber; nil unsubscribes.
func (l *LegendPane) OnHighlight(fn func(index int)) {
	l.onHighlight = fn
}

// Emphasize marks one row as active.
func (l *LegendPane) Emphasize(index int) {
	if index < 0 || index >= len(l.entries) {
		index = donut.NoHighlight
	}
	l.emphasized = index
}

// Emphasized returns the active row.
func (l *LegendPane) Emphasized() int {
	return l.emphasized
}

// PointerMove handles the pointer over pane-local row.
func (l *LegendPane) PointerMove(row int) {
	idx := donut.NoHighlight
	if row >= 0 && row < len(l.entries) {
		idx = row
	}
	if idx == l.hovered {
		return
	}
	l.PointerLeave()
	if idx == donut.NoHighlight {
		return
	}
	l.hovered = idx
	if l.onHighlight != nil {
		l.onHighlight(idx)
	}
}

// PointerLeave ends any hover over the legend.
func (l *LegendPane) PointerLeave() {
	if l.hovered == donut.NoHighlight {
		return
	}
	l.hovered = donut.NoHighlight
	if l.onHighlight != nil {
		l.onHighlight(donut.NoHighlight)
	}
}

// View renders the rows, truncating titles to width.
func (l *LegendPane) View(width int) string {
	t := theme.Active

	if len(l.entries) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No categories")
	}

	titleW := width - 3
	if titleW < 4 {
		titleW = 4
	}

	var b strings.Builder
	for i, e := range l.entries {
		bg := t.Surface
		fg := t.TextMuted
		bold := false
		if i == l.emphasized {
			bg = t.SurfaceHover
			fg = t.TextPrimary
			bold = true
		}
		swatch := lipgloss.NewStyle().Foreground(e.Color).Background(bg).Render("██")
		label := lipgloss.NewStyle().Foreground(fg).Background(bg).Bold(bold).
			Render(" " + truncStr(e.Title, titleW))
		b.WriteString(swatch + label)
		if i < len(l.entries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
