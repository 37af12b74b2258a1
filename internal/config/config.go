package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// SourceEnv overrides Source.Location when set.
const SourceEnv = "BUDGETRING_SOURCE"

// Config holds all budgetring configuration.
type Config struct {
	Source     SourceConfig     `toml:"source"`
	Chart      ChartConfig      `toml:"chart"`
	Appearance AppearanceConfig `toml:"appearance"`
	Serve      ServeConfig      `toml:"serve"`
}

// SourceConfig says where the budget document comes from.
type SourceConfig struct {
	Location           string `toml:"location"`
	Path               string `toml:"path,omitempty"`
	TimeoutSec         int    `toml:"timeout_sec"`
	RefreshIntervalSec int    `toml:"refresh_interval_sec"`
}

// ChartConfig sizes the ring surface in terminal cells.
type ChartConfig struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	InnerRatio float64 `toml:"inner_ratio"`
	OuterRatio float64 `toml:"outer_ratio"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServeConfig configures the local document server.
type ServeConfig struct {
	Addr string `toml:"addr"`
	File string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			Location:   "http://localhost:3000",
			Path:       "/budget_data.json",
			TimeoutSec: 10,
		},
		Chart: ChartConfig{
			Width:      40,
			Height:     20,
			InnerRatio: 0.5,
			OuterRatio: 0.95,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:3000",
		},
	}
}

// Timeout returns the per-fetch timeout.
func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

// RefreshInterval returns the auto refresh period, zero when disabled.
func (s SourceConfig) RefreshInterval() time.Duration {
	return time.Duration(s.RefreshIntervalSec) * time.Second
}

// Validate rejects settings the chart or loader cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Source.TimeoutSec < 0 {
		errs = append(errs, fmt.Errorf("source.timeout_sec must be >= 0, got %d", c.Source.TimeoutSec))
	}
	if c.Source.RefreshIntervalSec < 0 {
		errs = append(errs, fmt.Errorf("source.refresh_interval_sec must be >= 0, got %d", c.Source.RefreshIntervalSec))
	}
	if c.Chart.Width < 4 || c.Chart.Height < 2 {
		errs = append(errs, fmt.Errorf("chart size must be at least 4x2, got %dx%d", c.Chart.Width, c.Chart.Height))
	}
	if c.Chart.InnerRatio < 0 || c.Chart.OuterRatio > 1 || c.Chart.InnerRatio >= c.Chart.OuterRatio {
		errs = append(errs, fmt.Errorf("chart ratios need 0 <= inner < outer <= 1, got %v/%v", c.Chart.InnerRatio, c.Chart.OuterRatio))
	}
	return errors.Join(errs...)
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetring")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgetring")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// SourceLocation returns the source from env var or config, in that order.
func SourceLocation(cfg Config) string {
	if loc := os.Getenv(SourceEnv); loc != "" {
		return loc
	}
	return cfg.Source.Location
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
