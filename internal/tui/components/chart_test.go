package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/budgetring/internal/donut"
)

func TestBarChartShape(t *testing.T) {
	colors := donut.NewColorAssigner(nil).ColorOf
	out := BarChart([]float64{300, 700}, []string{"Food", "Rent"}, colors, donut.NoHighlight, 40, 8)

	lines := strings.Split(out, "\n")
	if len(lines) < 4 {
		t.Fatalf("chart has %d lines, want several", len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "Food") || !strings.Contains(lines[len(lines)-1], "Rent") {
		t.Errorf("x-axis labels missing: %q", lines[len(lines)-1])
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w > 40 {
			t.Errorf("line %d width = %d, want <= 40", i, w)
		}
	}
}

func TestBarChartFallsBackToSparkline(t *testing.T) {
	colors := donut.NewColorAssigner(nil).ColorOf
	out := BarChart([]float64{1, 2, 3}, nil, colors, donut.NoHighlight, 10, 8)
	if strings.Contains(out, "\n") {
		t.Errorf("narrow chart should be a one-line sparkline, got %q", out)
	}
	if got := lipgloss.Width(out); got != 3 {
		t.Errorf("sparkline width = %d, want 3", got)
	}
}

func TestBarChartEmpty(t *testing.T) {
	if out := BarChart(nil, nil, donut.NewColorAssigner(nil).ColorOf, donut.NoHighlight, 40, 8); out != "" {
		t.Errorf("BarChart(nil) = %q, want empty", out)
	}
}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		max  float64
		want float64
	}{
		{0, 1},
		{700, 100},
		{1000, 200},
		{50, 10},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.max); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{200, "$200"},
		{1000, "$1k"},
		{1500, "$1.5k"},
		{2e6, "$2M"},
	}
	for _, tt := range tests {
		if got := formatChartLabel(tt.in); got != tt.want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShareBar(t *testing.T) {
	out := ShareBar("Rent", 700, 0.7, donut.DefaultPalette[1], false, 10, 12)
	for _, want := range []string{"Rent", "$700", "70.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("share bar missing %q: %q", want, out)
		}
	}
	if w := lipgloss.Width(out); w != 10+1+12+1+11+1+6 {
		t.Errorf("share bar width = %d", w)
	}
}
