package components

import (
	"math"
	"strings"

	"github.com/theirongolddev/budgetring/internal/donut"
	"github.com/theirongolddev/budgetring/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// cellAspect is the height/width ratio of a terminal cell. Horizontal
// distances are divided by it so the ring comes out round.
const cellAspect = 2.0

// Ring sets the donut radii as fractions of the largest circle that fits
// the surface. Inner > 0 makes a ring rather than a filled pie.
type Ring struct {
	Inner float64
	Outer float64
}

// DefaultRing is the ring used when no geometry is configured.
var DefaultRing = Ring{Inner: 0.5, Outer: 0.95}

// Overlay is text painted over the surface at cell (X, Y).
type Overlay struct {
	X, Y       int
	Text       string
	Foreground lipgloss.Color
	Background lipgloss.Color
	Bold       bool
}

// RingSurface rasterizes ring segments onto a fixed grid of terminal cells
// and turns pointer motion over that grid into highlight reports.
type RingSurface struct {
	width, height int
	ring          Ring

	segments []donut.ArcSegment
	fills    []lipgloss.Color
	cells    []int // segment index per cell, NoHighlight when empty

	hovered     int
	emphasized  int
	onHighlight func(index int)
}

// NewRingSurface returns an empty surface of width × height cells.
func NewRingSurface(width, height int, ring Ring) *RingSurface {
	if width < 4 {
		width = 4
	}
	if height < 2 {
		height = 2
	}
	if ring.Outer <= 0 || ring.Outer > 1 {
		ring.Outer = DefaultRing.Outer
	}
	if ring.Inner < 0 || ring.Inner >= ring.Outer {
		ring.Inner = DefaultRing.Inner * ring.Outer
	}
	s := &RingSurface{
		width:      width,
		height:     height,
		ring:       ring,
		hovered:    donut.NoHighlight,
		emphasized: donut.NoHighlight,
	}
	s.rasterize()
	return s
}

// Size returns the surface dimensions in cells.
func (s *RingSurface) Size() (width, height int) {
	return s.width, s.height
}

// Resize changes the grid and redraws the current segments. The pointer
// position is no longer meaningful, so any hover ends.
func (s *RingSurface) Resize(width, height int) {
	if width < 4 {
		width = 4
	}
	if height < 2 {
		height = 2
	}
	if width == s.width && height == s.height {
		return
	}
	s.endHover()
	s.width, s.height = width, height
	s.rasterize()
}

// Render replaces every drawn segment. An active hover is ended first and
// reported, so no highlight from the previous render survives.
func (s *RingSurface) Render(segments []donut.ArcSegment, colorOf donut.ColorFunc) {
	s.endHover()
	s.emphasized = donut.NoHighlight

	s.segments = append(s.segments[:0], segments...)
	s.fills = make([]lipgloss.Color, len(segments))
	for i, seg := range segments {
		s.fills[i] = colorOf(seg.Index)
	}
	s.rasterize()
}

func (s *RingSurface) rasterize() {
	s.cells = make([]int, s.width*s.height)
	for i := range s.cells {
		s.cells[i] = donut.NoHighlight
	}
	if len(s.segments) == 0 {
		return
	}

	cx := float64(s.width) / 2
	cy := float64(s.height) / 2
	radius := math.Min(float64(s.width)/cellAspect, float64(s.height)) / 2
	inner := radius * s.ring.Inner
	outer := radius * s.ring.Outer

	for y := 0; y < s.height; y++ {
		dy := float64(y) + 0.5 - cy
		for x := 0; x < s.width; x++ {
			dx := (float64(x) + 0.5 - cx) / cellAspect
			r := math.Hypot(dx, dy)
			if r < inner || r > outer {
				continue
			}
			// Zero at twelve o'clock, growing clockwise.
			angle := math.Atan2(dx, -dy)
			s.cells[y*s.width+x] = donut.SegmentAt(s.segments, angle)
		}
	}
}

// SegmentAt returns the segment index drawn at cell (x, y), or NoHighlight.
func (s *RingSurface) SegmentAt(x, y int) int {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return donut.NoHighlight
	}
	return s.cells[y*s.width+x]
}

// FillAt returns the color currently painted at (x, y).
func (s *RingSurface) FillAt(x, y int) (lipgloss.Color, bool) {
	idx := s.SegmentAt(x, y)
	if idx == donut.NoHighlight {
		return "", false
	}
	return s.fillOf(idx), true
}

func (s *RingSurface) fillOf(idx int) lipgloss.Color {
	if idx == s.emphasized {
		return donut.HighlightFill
	}
	return s.fills[idx]
}

// ShapeCount returns the number of segments currently drawn.
func (s *RingSurface) ShapeCount() int {
	return len(s.segments)
}

// OnHighlight registers the hover subscriber; nil unsubscribes.
func (s *RingSurface) OnHighlight(fn func(index int)) {
	s.onHighlight = fn
}

// Emphasize paints one segment with the highlight fill and restores every
// other segment. NoHighlight restores all.
func (s *RingSurface) Emphasize(index int) {
	if index < 0 || index >= len(s.segments) {
		index = donut.NoHighlight
	}
	s.emphasized = index
}

// Emphasized returns the segment currently painted with the highlight fill.
func (s *RingSurface) Emphasized() int {
	return s.emphasized
}

// Hovered returns the segment under the pointer, or NoHighlight.
func (s *RingSurface) Hovered() int {
	return s.hovered
}

// PointerMove handles pointer motion at surface-local cell (x, y).
func (s *RingSurface) PointerMove(x, y int) {
	s.hoverTo(s.SegmentAt(x, y))
}

// PointerLeave handles the pointer leaving the surface.
func (s *RingSurface) PointerLeave() {
	s.hoverTo(donut.NoHighlight)
}

// hoverTo emits leave for the old segment, then enter for the new one.
func (s *RingSurface) hoverTo(idx int) {
	if idx == s.hovered {
		return
	}
	s.endHover()
	if idx == donut.NoHighlight {
		return
	}
	s.hovered = idx
	s.emphasized = idx
	s.report(idx)
}

func (s *RingSurface) endHover() {
	if s.hovered == donut.NoHighlight {
		return
	}
	if s.emphasized == s.hovered {
		s.emphasized = donut.NoHighlight
	}
	s.hovered = donut.NoHighlight
	s.report(donut.NoHighlight)
}

func (s *RingSurface) report(idx int) {
	if s.onHighlight != nil {
		s.onHighlight(idx)
	}
}

type cellStyle struct {
	fg, bg lipgloss.Color
	bold   bool
}

// View paints the surface, then the overlays on top of it.
func (s *RingSurface) View(overlays ...Overlay) string {
	t := theme.Active

	chars := make([]rune, len(s.cells))
	styles := make([]cellStyle, len(s.cells))
	for i, idx := range s.cells {
		if idx == donut.NoHighlight {
			chars[i] = ' '
			styles[i] = cellStyle{fg: t.TextDim, bg: t.Surface}
			continue
		}
		chars[i] = '█'
		styles[i] = cellStyle{fg: s.fillOf(idx), bg: t.Surface}
	}

	for _, o := range overlays {
		if o.Y < 0 || o.Y >= s.height {
			continue
		}
		x := o.X
		for _, r := range o.Text {
			if x >= s.width {
				break
			}
			w := lipgloss.Width(string(r))
			if x >= 0 && x+w <= s.width {
				i := o.Y*s.width + x
				chars[i] = r
				styles[i] = cellStyle{fg: o.Foreground, bg: o.Background, bold: o.Bold}
				// A wide rune covers the next cell too.
				for k := 1; k < w; k++ {
					chars[i+k] = 0
				}
			}
			x += w
		}
	}

	var b strings.Builder
	for y := 0; y < s.height; y++ {
		row := y * s.width
		start := row
		for x := 1; x <= s.width; x++ {
			i := row + x
			if x < s.width && styles[i] == styles[start] {
				continue
			}
			var run strings.Builder
			for _, r := range chars[start:i] {
				if r != 0 {
					run.WriteRune(r)
				}
			}
			st := styles[start]
			b.WriteString(lipgloss.NewStyle().
				Foreground(st.fg).
				Background(st.bg).
				Bold(st.bold).
				Render(run.String()))
			start = i
		}
		if y < s.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
