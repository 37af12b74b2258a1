// Package donut holds the chart core: ring partitioning, category colors and
// the coordinator that keeps chart, legend and tooltip in agreement.
package donut

import (
	"errors"
	"fmt"
	"math"

	"github.com/theirongolddev/budgetring/internal/model"
)

// FullTurn is the angular extent of the ring in radians.
const FullTurn = 2 * math.Pi

// NoHighlight marks the absence of a hovered or highlighted segment.
const NoHighlight = -1

// ErrInvalidInput indicates a budget that cannot be laid out (negative, NaN or infinite).
var ErrInvalidInput = errors.New("donut: invalid input")

// ArcSegment is one angular slice of the ring. Angles are radians measured
// clockwise from twelve o'clock; the segment covers [StartAngle, EndAngle).
type ArcSegment struct {
	StartAngle float64
	EndAngle   float64
	Datum      model.CategoryDatum
	Index      int
}

// Span returns the angular width of the segment.
func (s ArcSegment) Span() float64 {
	return s.EndAngle - s.StartAngle
}

// Contains reports whether angle falls inside the segment. Zero-width
// segments contain nothing.
func (s ArcSegment) Contains(angle float64) bool {
	return angle >= s.StartAngle && angle < s.EndAngle
}

// Partition lays categories out around the ring in input order. Each span is
// proportional to the category's share of the total; a zero total yields
// zero-width segments. Any invalid budget rejects the whole input.
func Partition(categories []model.CategoryDatum) ([]ArcSegment, error) {
	for i, c := range categories {
		if c.Budget < 0 || math.IsNaN(c.Budget) || math.IsInf(c.Budget, 0) {
			return nil, fmt.Errorf("%w: category %d (%q) has budget %v", ErrInvalidInput, i, c.Title, c.Budget)
		}
	}

	// Budgets are scaled by the largest one so the sum stays finite even
	// when the raw total would overflow.
	largest := 0.0
	for _, c := range categories {
		largest = math.Max(largest, c.Budget)
	}
	total := 0.0
	if largest > 0 {
		for _, c := range categories {
			total += c.Budget / largest
		}
	}
	segments := make([]ArcSegment, len(categories))

	// Boundaries come from the running sum over the total, so the last
	// boundary lands on exactly FullTurn when the total is positive.
	cum := 0.0
	start := 0.0
	for i, c := range categories {
		end := start
		if total > 0 {
			cum += c.Budget / largest
			end = FullTurn * cum / total
		}
		segments[i] = ArcSegment{
			StartAngle: start,
			EndAngle:   end,
			Datum:      c,
			Index:      i,
		}
		start = end
	}

	return segments, nil
}

// SegmentAt returns the index of the segment containing angle, or
// NoHighlight. The angle is normalized into [0, FullTurn) first.
func SegmentAt(segments []ArcSegment, angle float64) int {
	angle = math.Mod(angle, FullTurn)
	if angle < 0 {
		angle += FullTurn
	}
	for _, s := range segments {
		if s.Contains(angle) {
			return s.Index
		}
	}
	return NoHighlight
}
