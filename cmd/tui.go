package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/tui"
	"github.com/theirongolddev/budgetring/internal/tui/components"
	"github.com/theirongolddev/budgetring/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	flagDebugLog string
	flagNoWatch  bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive chart (default command)",
	RunE:  runTUI,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().StringVar(&flagDebugLog, "debug-log", "", "Write debug logs to this file")
		c.Flags().BoolVar(&flagNoWatch, "no-watch", false, "Do not reload file sources when they change")
	}
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	closeLog, err := setupTUILogging(flagDebugLog)
	if err != nil {
		return err
	}
	defer closeLog()

	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Options{
		Loader:          loader,
		ChartWidth:      cfg.Chart.Width,
		ChartHeight:     cfg.Chart.Height,
		Ring:            components.Ring{Inner: cfg.Chart.InnerRatio, Outer: cfg.Chart.OuterRatio},
		FetchTimeout:    cfg.Source.Timeout(),
		RefreshInterval: cfg.Source.RefreshInterval(),
		Watch:           !flagNoWatch,
		FirstRun:        !config.Exists() && !sourceExplicit(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// setupTUILogging routes slog away from the terminal while the TUI owns it.
func setupTUILogging(path string) (func(), error) {
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "budgetring")
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() { _ = f.Close() }, nil
}
