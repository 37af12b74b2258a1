// Package cmd implements the budgetring CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/source"

	"github.com/spf13/cobra"
)

var (
	flagSource string
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "budgetring",
	Short: "Personal budget donut chart",
	Long:  "Fetch a budget document and explore its categories as an interactive donut chart.",
	RunE:  runTUI,

	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagSource, "source", "s", "",
		"Budget source URL or JSON file (overrides $"+config.SourceEnv+" and config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig reads the config file. A broken file is reported and replaced
// by defaults so the commands still run.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v (using defaults)\n", err)
		return config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: invalid config %s: %v (using defaults)\n", config.Path(), err)
		return config.DefaultConfig()
	}
	return cfg
}

// sourceLocation resolves the flag, then the env var, then the config file.
func sourceLocation(cfg config.Config) string {
	if flagSource != "" {
		return flagSource
	}
	return config.SourceLocation(cfg)
}

// sourceExplicit reports whether the user named a source without a config file.
func sourceExplicit() bool {
	return flagSource != "" || os.Getenv(config.SourceEnv) != ""
}

// newLoader is the shared source construction path used by all commands.
func newLoader(cfg config.Config) (source.Loader, error) {
	loader, err := source.New(sourceLocation(cfg), source.Options{Path: cfg.Source.Path})
	if err != nil {
		return nil, err
	}
	if hs, ok := loader.(*source.HTTPSource); ok && cfg.Source.TimeoutSec > 0 {
		hs.Timeout = cfg.Source.Timeout()
	}
	return loader, nil
}
