package tui

import (
	"errors"
	"strings"

	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/source"
	"github.com/theirongolddev/budgetring/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers collected by the setup form.
type SetupValues struct {
	Source     string
	Theme      string
	RefreshSec int
}

var refreshOptions = []struct {
	label string
	sec   int
}{
	{"Off", 0},
	{"Every 30 seconds", 30},
	{"Every 5 minutes", 300},
	{"Every 15 minutes", 900},
}

func defaultSetupValues() *SetupValues {
	cfg := config.DefaultConfig()
	return &SetupValues{
		Source:     cfg.Source.Location,
		Theme:      cfg.Appearance.Theme,
		RefreshSec: cfg.Source.RefreshIntervalSec,
	}
}

// SetupValuesFrom seeds the form with an existing config.
func SetupValuesFrom(cfg config.Config) *SetupValues {
	return &SetupValues{
		Source:     config.SourceLocation(cfg),
		Theme:      cfg.Appearance.Theme,
		RefreshSec: cfg.Source.RefreshIntervalSec,
	}
}

// NewSetupForm builds the first-run wizard writing into vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	refresh := make([]huh.Option[int], len(refreshOptions))
	for i, o := range refreshOptions {
		refresh[i] = huh.NewOption(o.label, o.sec)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to budgetring").
				Description("Answers are saved to "+config.Path()+"\nand can be changed there later."),

			huh.NewInput().
				Title("Budget source").
				Description("A server URL (serving "+source.DefaultPath+") or a local JSON file").
				Placeholder("http://localhost:3000").
				Value(&vals.Source).
				Validate(validateSource),

			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&vals.Theme),

			huh.NewSelect[int]().
				Title("Auto refresh").
				Description("Remote sources only. Files reload when they change.").
				Options(refresh...).
				Value(&vals.RefreshSec),
		),
	).WithShowHelp(true)
}

func validateSource(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a source is required")
	}
	return nil
}

// ApplySetup copies the form answers into cfg.
func ApplySetup(cfg *config.Config, vals SetupValues) {
	cfg.Source.Location = strings.TrimSpace(vals.Source)
	if vals.Theme != "" {
		cfg.Appearance.Theme = vals.Theme
	}
	cfg.Source.RefreshIntervalSec = vals.RefreshSec
}
