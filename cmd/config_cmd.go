package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/budgetring/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("  Invalid: %v\n", err)
	}
	fmt.Println()

	fmt.Println("  [Source]")
	fmt.Printf("    Location: %s\n", sourceLocation(cfg))
	switch {
	case flagSource != "":
		fmt.Println("              (from --source)")
	case os.Getenv(config.SourceEnv) != "":
		fmt.Printf("              (from $%s)\n", config.SourceEnv)
	}
	fmt.Printf("    Path:     %s\n", cfg.Source.Path)
	fmt.Printf("    Timeout:  %s\n", cfg.Source.Timeout())
	if cfg.Source.RefreshIntervalSec > 0 {
		fmt.Printf("    Refresh:  every %s\n", cfg.Source.RefreshInterval())
	} else {
		fmt.Println("    Refresh:  off")
	}
	fmt.Println()

	fmt.Println("  [Chart]")
	fmt.Printf("    Size:  %dx%d cells\n", cfg.Chart.Width, cfg.Chart.Height)
	fmt.Printf("    Ring:  inner %.2f, outer %.2f\n", cfg.Chart.InnerRatio, cfg.Chart.OuterRatio)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Serve]")
	fmt.Printf("    Address: %s\n", cfg.Serve.Addr)
	if cfg.Serve.File != "" {
		fmt.Printf("    File:    %s\n", cfg.Serve.File)
	} else {
		fmt.Println("    File:    built-in sample")
	}
	fmt.Println()

	fmt.Println("  Run `budgetring setup` to reconfigure.")
	return nil
}
