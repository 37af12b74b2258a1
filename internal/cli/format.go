// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatBudget prints a budget the way the tooltip shows it: a dollar sign
// followed by the shortest exact decimal form. e.g., 700 -> "$700", 12.5 -> "$12.5"
func FormatBudget(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatAmount formats a USD amount with thousands separators.
// e.g., 1234.5 -> "$1,234.50", 700 -> "$700"
func FormatAmount(v float64) string {
	if v < 0 {
		return "-" + FormatAmount(-v)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "$" + strconv.FormatFloat(v, 'f', -1, 64)
	}
	whole := math.Floor(v)
	cents := math.Round((v - whole) * 100)
	if cents >= 100 {
		whole++
		cents = 0
	}
	s := "$" + FormatNumber(int64(whole))
	if cents > 0 {
		s += fmt.Sprintf(".%02d", int64(cents))
	}
	return s
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
