package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/budgetring/internal/donut"
	"github.com/theirongolddev/budgetring/internal/model"
)

// On a 40x20 surface with DefaultRing the ring spans radius 5..9.5 rows
// around (20, 10). (34, 9) sits at roughly 86° (Food), (5, 9) at 274° (Rent).
const (
	ringW, ringH = 40, 20
	foodX, foodY = 34, 9
	rentX, rentY = 5, 9
	holeX, holeY = 20, 10
)

func foodRentSegments(t *testing.T) []donut.ArcSegment {
	t.Helper()
	segs, err := donut.Partition([]model.CategoryDatum{
		{Title: "Food", Budget: 300},
		{Title: "Rent", Budget: 700},
	})
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	return segs
}

func newFoodRentSurface(t *testing.T) *RingSurface {
	t.Helper()
	s := NewRingSurface(ringW, ringH, DefaultRing)
	s.Render(foodRentSegments(t), donut.NewColorAssigner(nil).ColorOf)
	return s
}

func TestRingSurfaceHitTesting(t *testing.T) {
	s := newFoodRentSurface(t)

	if got := s.SegmentAt(foodX, foodY); got != 0 {
		t.Errorf("SegmentAt(food) = %d, want 0", got)
	}
	if got := s.SegmentAt(rentX, rentY); got != 1 {
		t.Errorf("SegmentAt(rent) = %d, want 1", got)
	}
	if got := s.SegmentAt(holeX, holeY); got != donut.NoHighlight {
		t.Errorf("SegmentAt(hole) = %d, want NoHighlight", got)
	}
	if got := s.SegmentAt(0, 0); got != donut.NoHighlight {
		t.Errorf("SegmentAt(corner) = %d, want NoHighlight", got)
	}
	if got := s.SegmentAt(-1, 500); got != donut.NoHighlight {
		t.Errorf("SegmentAt(outside) = %d, want NoHighlight", got)
	}

	fill, ok := s.FillAt(foodX, foodY)
	if !ok || fill != donut.DefaultPalette[0] {
		t.Errorf("FillAt(food) = %s,%v, want %s", fill, ok, donut.DefaultPalette[0])
	}
	fill, ok = s.FillAt(rentX, rentY)
	if !ok || fill != donut.DefaultPalette[1] {
		t.Errorf("FillAt(rent) = %s,%v, want %s", fill, ok, donut.DefaultPalette[1])
	}
}

func TestRingSurfaceRenderIsIdempotent(t *testing.T) {
	segs := foodRentSegments(t)
	colors := donut.NewColorAssigner(nil).ColorOf

	s := NewRingSurface(ringW, ringH, DefaultRing)
	s.Render(segs, colors)
	first := s.View()
	s.Render(segs, colors)
	second := s.View()

	if s.ShapeCount() != 2 {
		t.Fatalf("ShapeCount() = %d after two renders, want 2", s.ShapeCount())
	}
	if first != second {
		t.Fatal("second identical Render changed the view")
	}
}

func TestRingSurfaceRenderReplaces(t *testing.T) {
	s := newFoodRentSurface(t)

	s.Render(nil, donut.NewColorAssigner(nil).ColorOf)
	if s.ShapeCount() != 0 {
		t.Fatalf("ShapeCount() = %d, want 0", s.ShapeCount())
	}
	for y := 0; y < ringH; y++ {
		for x := 0; x < ringW; x++ {
			if s.SegmentAt(x, y) != donut.NoHighlight {
				t.Fatalf("cell (%d,%d) still painted after empty render", x, y)
			}
		}
	}
}

func TestRingSurfaceZeroTotalPaintsNothing(t *testing.T) {
	segs, err := donut.Partition([]model.CategoryDatum{{Title: "A"}, {Title: "B"}})
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	s := NewRingSurface(ringW, ringH, DefaultRing)
	s.Render(segs, donut.NewColorAssigner(nil).ColorOf)

	if s.ShapeCount() != 2 {
		t.Errorf("ShapeCount() = %d, want 2", s.ShapeCount())
	}
	if _, ok := s.FillAt(foodX, foodY); ok {
		t.Error("zero-width segments painted a cell")
	}
}

func TestRingSurfaceHoverContract(t *testing.T) {
	s := newFoodRentSurface(t)

	var events []int
	s.OnHighlight(func(i int) { events = append(events, i) })

	s.PointerMove(foodX, foodY)
	s.PointerMove(foodX, foodY) // no new event while staying on the segment
	if fill, _ := s.FillAt(foodX, foodY); fill != donut.HighlightFill {
		t.Errorf("hovered fill = %s, want %s", fill, donut.HighlightFill)
	}

	s.PointerMove(rentX, rentY)
	if fill, _ := s.FillAt(foodX, foodY); fill != donut.DefaultPalette[0] {
		t.Errorf("food fill after leave = %s, want %s", fill, donut.DefaultPalette[0])
	}

	s.PointerMove(holeX, holeY)
	if fill, _ := s.FillAt(rentX, rentY); fill != donut.DefaultPalette[1] {
		t.Errorf("rent fill after leave = %s, want %s", fill, donut.DefaultPalette[1])
	}

	want := []int{0, donut.NoHighlight, 1, donut.NoHighlight}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}

func TestRingSurfaceRapidEnterLeave(t *testing.T) {
	s := newFoodRentSurface(t)

	last := 99
	s.OnHighlight(func(i int) { last = i })

	for n := 0; n < 25; n++ {
		s.PointerMove(rentX, rentY)
		s.PointerLeave()
	}
	if last != donut.NoHighlight || s.Hovered() != donut.NoHighlight {
		t.Fatalf("after rapid enter/leave last=%d hovered=%d", last, s.Hovered())
	}
	if s.Emphasized() != donut.NoHighlight {
		t.Fatalf("stale emphasis %d", s.Emphasized())
	}
}

func TestRingSurfaceRenderEndsHover(t *testing.T) {
	s := newFoodRentSurface(t)

	var events []int
	s.OnHighlight(func(i int) { events = append(events, i) })
	s.PointerMove(rentX, rentY)

	s.Render(foodRentSegments(t), donut.NewColorAssigner(nil).ColorOf)

	if len(events) != 2 || events[1] != donut.NoHighlight {
		t.Fatalf("events = %v, want [1 NoHighlight]", events)
	}
	if fill, _ := s.FillAt(rentX, rentY); fill != donut.DefaultPalette[1] {
		t.Errorf("fill after re-render = %s, want base color", fill)
	}
}

func TestRingSurfaceUnsubscribe(t *testing.T) {
	s := newFoodRentSurface(t)

	calls := 0
	s.OnHighlight(func(int) { calls++ })
	s.OnHighlight(nil)
	s.PointerMove(foodX, foodY)
	if calls != 0 {
		t.Fatalf("unsubscribed handler called %d times", calls)
	}
}

func TestRingSurfaceViewOverlay(t *testing.T) {
	s := newFoodRentSurface(t)

	plain := s.View()
	if got := len(strings.Split(plain, "\n")); got != ringH {
		t.Fatalf("View() has %d rows, want %d", got, ringH)
	}

	withTip := s.View(Overlay{X: 2, Y: 1, Text: "Rent: $700"})
	if !strings.Contains(withTip, "Rent: $700") {
		t.Error("overlay text missing from view")
	}
	if strings.Contains(plain, "Rent") {
		t.Error("plain view should not contain overlay text")
	}
}

func TestRingSurfaceResizeEndsHover(t *testing.T) {
	s := newFoodRentSurface(t)

	var events []int
	s.OnHighlight(func(i int) { events = append(events, i) })
	s.PointerMove(rentX, rentY)

	s.Resize(20, 10)
	if w, h := s.Size(); w != 20 || h != 10 {
		t.Fatalf("Size() = %dx%d, want 20x10", w, h)
	}
	if len(events) != 2 || events[1] != donut.NoHighlight {
		t.Fatalf("events = %v, want [1 NoHighlight]", events)
	}
	if s.ShapeCount() != 2 {
		t.Fatalf("ShapeCount() = %d after resize, want 2", s.ShapeCount())
	}
	if got := len(strings.Split(s.View(), "\n")); got != 10 {
		t.Fatalf("View() rows = %d, want 10", got)
	}
}
