package donut

import "github.com/charmbracelet/lipgloss"

// Palette is an ordered, finite list of category colors.
type Palette []lipgloss.Color

// DefaultPalette is the 12-color category palette. Categories beyond the
// twelfth reuse it cyclically.
var DefaultPalette = Palette{
	lipgloss.Color("#ffcd56"),
	lipgloss.Color("#ff6384"),
	lipgloss.Color("#36a2eb"),
	lipgloss.Color("#fd6b19"),
	lipgloss.Color("#ff5733"),
	lipgloss.Color("#4caf50"),
	lipgloss.Color("#9c27b0"),
	lipgloss.Color("#008080"),
	lipgloss.Color("#ffa500"),
	lipgloss.Color("#800080"),
	lipgloss.Color("#ff1493"),
	lipgloss.Color("#00ff00"),
}

// HighlightFill replaces a segment's fill while it is highlighted.
const HighlightFill = lipgloss.Color("#FFA500")

// ColorFunc resolves the display color for a category index.
type ColorFunc func(index int) lipgloss.Color

// ColorAssigner maps categories to palette colors. Colors follow list order,
// not title identity: reordering the categories reorders the colors.
type ColorAssigner struct {
	palette Palette
	byTitle map[string]int
}

// NewColorAssigner returns an assigner over p, falling back to
// DefaultPalette when p is empty.
func NewColorAssigner(p Palette) *ColorAssigner {
	if len(p) == 0 {
		p = DefaultPalette
	}
	return &ColorAssigner{
		palette: p,
		byTitle: make(map[string]int),
	}
}

// ColorOf returns the color for a 0-based category index.
func (c *ColorAssigner) ColorOf(index int) lipgloss.Color {
	n := len(c.palette)
	i := index % n
	if i < 0 {
		i += n
	}
	return c.palette[i]
}

// ColorFor returns the color for a title, assigning palette slots in
// first-seen order. Reset clears the order.
func (c *ColorAssigner) ColorFor(title string) lipgloss.Color {
	slot, ok := c.byTitle[title]
	if !ok {
		slot = len(c.byTitle)
		c.byTitle[title] = slot
	}
	return c.ColorOf(slot)
}

// Reset forgets title assignments, typically before a new category list.
func (c *ColorAssigner) Reset() {
	clear(c.byTitle)
}

// Palette returns the palette in use.
func (c *ColorAssigner) Palette() Palette {
	return c.palette
}
