package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/budgetring/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// StatusInfo is what the status bar reports about the last fetch.
type StatusInfo struct {
	LoadedAt    time.Time
	FetchFailed bool
	Refreshing  bool
	AutoRefresh bool
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	errStyle := lipgloss.NewStyle().
		Foreground(t.Red).
		Background(t.Surface).
		Bold(true)
	accentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	left := style.Render(" [?]help  [r]efresh  [q]uit")
	if info.AutoRefresh {
		left += accentStyle.Render("  auto")
	}

	var right string
	switch {
	case info.Refreshing:
		right = accentStyle.Render("refreshing… ")
	case info.FetchFailed:
		right = errStyle.Render("last fetch failed ")
	}
	if info.LoadedAt.IsZero() {
		right += style.Render("no data ")
	} else {
		right += style.Render(fmt.Sprintf("loaded %s ", humanize.Time(info.LoadedAt)))
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return left + style.Render(strings.Repeat(" ", padding)) + right
}
