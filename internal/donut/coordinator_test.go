package donut

import (
	"errors"
	"testing"

	"github.com/theirongolddev/budgetring/internal/model"
)

type fakeChart struct {
	renders    int
	segments   []ArcSegment
	colors     []string
	emphasized int
	onHover    func(int)
}

func (f *fakeChart) Render(segments []ArcSegment, colorOf ColorFunc) {
	f.renders++
	f.segments = segments
	f.colors = f.colors[:0]
	for _, s := range segments {
		f.colors = append(f.colors, string(colorOf(s.Index)))
	}
}
func (f *fakeChart) OnHighlight(fn func(int)) { f.onHover = fn }
func (f *fakeChart) Emphasize(index int)      { f.emphasized = index }

type fakeLegend struct {
	renders    int
	titles     []string
	colors     []string
	emphasized int
	onHover    func(int)
}

func (f *fakeLegend) Render(categories []model.CategoryDatum, colorOf ColorFunc) {
	f.renders++
	f.titles = f.titles[:0]
	f.colors = f.colors[:0]
	for i, c := range categories {
		f.titles = append(f.titles, c.Title)
		f.colors = append(f.colors, string(colorOf(i)))
	}
}
func (f *fakeLegend) OnHighlight(fn func(int)) { f.onHover = fn }
func (f *fakeLegend) Emphasize(index int)      { f.emphasized = index }

type fakeTooltip struct {
	visible bool
	datum   model.CategoryDatum
	shows   int
}

func (f *fakeTooltip) Show(d model.CategoryDatum) { f.visible, f.datum = true, d; f.shows++ }
func (f *fakeTooltip) Hide()                      { f.visible = false }

func newTestCoordinator() (*Coordinator, *fakeChart, *fakeLegend, *fakeTooltip) {
	ch, lg, tt := &fakeChart{}, &fakeLegend{}, &fakeTooltip{}
	return NewCoordinator(ch, lg, tt, nil), ch, lg, tt
}

var foodRent = []model.CategoryDatum{
	{Title: "Food", Budget: 300},
	{Title: "Rent", Budget: 700},
}

func TestCoordinatorLoadRendersBothPanesInOrder(t *testing.T) {
	c, ch, lg, _ := newTestCoordinator()

	if err := c.Load(foodRent); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ch.renders != 1 || lg.renders != 1 {
		t.Fatalf("renders chart=%d legend=%d, want 1 each", ch.renders, lg.renders)
	}
	if len(ch.segments) != 2 {
		t.Fatalf("chart got %d segments, want 2", len(ch.segments))
	}
	if lg.titles[0] != "Food" || lg.titles[1] != "Rent" {
		t.Errorf("legend titles = %v, want [Food Rent]", lg.titles)
	}
	for i := range ch.colors {
		if ch.colors[i] != lg.colors[i] {
			t.Errorf("color %d: chart %s, legend %s", i, ch.colors[i], lg.colors[i])
		}
	}
	if lg.colors[0] != string(DefaultPalette[0]) || lg.colors[1] != string(DefaultPalette[1]) {
		t.Errorf("legend colors = %v, want palette[0], palette[1]", lg.colors)
	}
	if c.Total() != 1000 {
		t.Errorf("Total() = %v, want 1000", c.Total())
	}
}

func TestCoordinatorHoverShowsAndHidesTooltip(t *testing.T) {
	c, ch, lg, tt := newTestCoordinator()
	_ = c.Load(foodRent)

	ch.onHover(1)
	if idx, ok := c.Highlighted(); !ok || idx != 1 {
		t.Fatalf("Highlighted() = %d,%v, want 1,true", idx, ok)
	}
	if !tt.visible || tt.datum.Title != "Rent" {
		t.Fatalf("tooltip = %+v visible=%v, want Rent visible", tt.datum, tt.visible)
	}
	if ch.emphasized != 1 || lg.emphasized != 1 {
		t.Errorf("emphasized chart=%d legend=%d, want 1", ch.emphasized, lg.emphasized)
	}

	ch.onHover(NoHighlight)
	if _, ok := c.Highlighted(); ok {
		t.Fatal("highlight still active after leave")
	}
	if tt.visible {
		t.Fatal("tooltip visible after leave")
	}
	if ch.emphasized != NoHighlight || lg.emphasized != NoHighlight {
		t.Errorf("emphasis not cleared: chart=%d legend=%d", ch.emphasized, lg.emphasized)
	}
}

func TestCoordinatorRepeatedEnterLeave(t *testing.T) {
	c, ch, lg, tt := newTestCoordinator()
	_ = c.Load(foodRent)

	for n := 1; n <= 5; n++ {
		for i := 0; i < n; i++ {
			ch.onHover(0)
			lg.onHover(1)
		}
		ch.onHover(NoHighlight)
		if _, ok := c.Highlighted(); ok {
			t.Fatalf("round %d: highlight active after leave", n)
		}
		if tt.visible {
			t.Fatalf("round %d: tooltip visible after leave", n)
		}
	}
}

func TestCoordinatorSingleHighlight(t *testing.T) {
	c, ch, lg, tt := newTestCoordinator()
	_ = c.Load(foodRent)

	lg.onHover(0)
	ch.onHover(1)
	if idx, _ := c.Highlighted(); idx != 1 {
		t.Fatalf("Highlighted() = %d, want last writer 1", idx)
	}
	if tt.datum.Title != "Rent" {
		t.Errorf("tooltip shows %q, want Rent", tt.datum.Title)
	}
}

func TestCoordinatorOutOfRangeClears(t *testing.T) {
	c, ch, _, tt := newTestCoordinator()
	_ = c.Load(foodRent)

	ch.onHover(0)
	c.Highlight(7)
	if _, ok := c.Highlighted(); ok || tt.visible {
		t.Fatal("out-of-range highlight should clear state")
	}
}

func TestCoordinatorRejectsInvalidAndKeepsPrior(t *testing.T) {
	c, ch, lg, _ := newTestCoordinator()
	_ = c.Load(foodRent)

	err := c.Load([]model.CategoryDatum{{Title: "Bad", Budget: -5}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if ch.renders != 1 || lg.renders != 1 {
		t.Errorf("invalid input re-rendered: chart=%d legend=%d", ch.renders, lg.renders)
	}
	if got := c.Categories(); len(got) != 2 || got[0].Title != "Food" {
		t.Errorf("Categories() = %v, want prior list", got)
	}
}

func TestCoordinatorEmptyList(t *testing.T) {
	c, ch, lg, tt := newTestCoordinator()

	if err := c.Load(nil); err != nil {
		t.Fatalf("Load(nil): %v", err)
	}
	if len(ch.segments) != 0 || len(lg.titles) != 0 {
		t.Errorf("segments=%d legend=%d, want 0", len(ch.segments), len(lg.titles))
	}
	if tt.visible || tt.shows != 0 {
		t.Error("tooltip shown for empty list")
	}
}

func TestCoordinatorReloadClearsHighlight(t *testing.T) {
	c, ch, _, tt := newTestCoordinator()
	_ = c.Load(foodRent)
	ch.onHover(1)

	if err := c.Load(foodRent[:1]); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := c.Highlighted(); ok || tt.visible {
		t.Fatal("highlight survived reload")
	}
	if ch.renders != 2 {
		t.Errorf("chart renders = %d, want 2", ch.renders)
	}
}

func TestCoordinatorCloseMakesLoadNoop(t *testing.T) {
	c, ch, lg, _ := newTestCoordinator()
	_ = c.Load(foodRent)
	c.Close()

	if ch.onHover != nil || lg.onHover != nil {
		t.Error("Close did not unsubscribe hover handlers")
	}
	if err := c.Load(foodRent[:1]); err != nil {
		t.Fatalf("Load after Close: %v", err)
	}
	if ch.renders != 1 {
		t.Errorf("Load after Close rendered (renders=%d)", ch.renders)
	}
	c.Highlight(0)
	if _, ok := c.Highlighted(); ok {
		t.Error("Highlight after Close took effect")
	}
}
