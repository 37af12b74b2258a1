package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/budgetring/internal/donut"
	"github.com/theirongolddev/budgetring/internal/model"
)

var legendCats = []model.CategoryDatum{
	{Title: "Food", Budget: 300},
	{Title: "Rent", Budget: 700},
}

func TestLegendRenderOrderAndColors(t *testing.T) {
	l := NewLegendPane()
	l.Render(legendCats, donut.NewColorAssigner(nil).ColorOf)

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Title != "Food" || entries[1].Title != "Rent" {
		t.Errorf("entries = %+v, want Food then Rent", entries)
	}
	if entries[0].Color != donut.DefaultPalette[0] || entries[1].Color != donut.DefaultPalette[1] {
		t.Errorf("colors = %s, %s, want palette[0], palette[1]", entries[0].Color, entries[1].Color)
	}

	view := l.View(30)
	if strings.Index(view, "Food") > strings.Index(view, "Rent") {
		t.Error("Food should be listed before Rent")
	}
}

func TestLegendRenderIsIdempotent(t *testing.T) {
	l := NewLegendPane()
	colors := donut.NewColorAssigner(nil).ColorOf

	l.Render(legendCats, colors)
	first := l.View(30)
	l.Render(legendCats, colors)
	second := l.View(30)

	if l.Len() != 2 {
		t.Fatalf("Len() = %d after two renders, want 2", l.Len())
	}
	if first != second {
		t.Fatal("second identical Render changed the legend")
	}
	if got := strings.Count(second, "Food"); got != 1 {
		t.Fatalf("Food listed %d times, want 1", got)
	}
}

func TestLegendEmpty(t *testing.T) {
	l := NewLegendPane()
	l.Render(nil, donut.NewColorAssigner(nil).ColorOf)
	if l.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", l.Len())
	}
	if !strings.Contains(l.View(30), "No categories") {
		t.Error("empty legend should show a placeholder")
	}
}

func TestLegendHover(t *testing.T) {
	l := NewLegendPane()
	l.Render(legendCats, donut.NewColorAssigner(nil).ColorOf)

	var events []int
	l.OnHighlight(func(i int) { events = append(events, i) })

	l.PointerMove(1)
	l.PointerMove(1)
	l.PointerMove(0)
	l.PointerMove(5)
	l.PointerLeave()

	want := []int{1, donut.NoHighlight, 0, donut.NoHighlight}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}

func TestLegendEmphasize(t *testing.T) {
	l := NewLegendPane()
	l.Render(legendCats, donut.NewColorAssigner(nil).ColorOf)

	l.Emphasize(1)
	if l.Emphasized() != 1 {
		t.Fatalf("Emphasized() = %d, want 1", l.Emphasized())
	}
	l.Emphasize(9)
	if l.Emphasized() != donut.NoHighlight {
		t.Fatalf("out-of-range Emphasize kept %d", l.Emphasized())
	}
}

func TestLegendTruncatesLongTitles(t *testing.T) {
	l := NewLegendPane()
	l.Render([]model.CategoryDatum{{Title: strings.Repeat("x", 80), Budget: 1}}, donut.NewColorAssigner(nil).ColorOf)

	if w := lipgloss.Width(l.View(20)); w > 20 {
		t.Errorf("legend row width = %d, want <= 20", w)
	}
}
