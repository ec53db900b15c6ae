package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SourceConfig holds the configuration for a single clinic integration.
type SourceConfig struct {
	// ID is the unique identifier for this source instance.
	ID string `mapstructure:"id" yaml:"id"`

	// Type identifies the source kind ("clinic", "records", "inbox").
	Type string `mapstructure:"type" yaml:"type"`

	// Name is the user-defined label for this source instance.
	Name string `mapstructure:"name" yaml:"name"`

	// BaseURL is the root URL of the source service (REST sources).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Enabled controls whether this source is actively polled.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// PollIntervalSec is how often (in seconds) to fetch updates.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`

	// Config holds source-specific key-value settings
	// (e.g., practitioner filters, IMAP host and port).
	Config map[string]string `mapstructure:"config" yaml:"config"`
}

// ToastConfig holds the transient-notification display timings.
type ToastConfig struct {
	DurationMs   int `mapstructure:"duration_ms" yaml:"duration_ms"`
	EnterDelayMs int `mapstructure:"enter_delay_ms" yaml:"enter_delay_ms"`
	ExitMs       int `mapstructure:"exit_ms" yaml:"exit_ms"`
}

// ClinicConfig holds the working-hours settings used when suggesting
// follow-up slots.
type ClinicConfig struct {
	WorkStartHour   int   `mapstructure:"work_start_hour" yaml:"work_start_hour"`
	WorkEndHour     int   `mapstructure:"work_end_hour" yaml:"work_end_hour"`
	WorkDays        []int `mapstructure:"work_days" yaml:"work_days"`
	SlotMinutes     int   `mapstructure:"slot_minutes" yaml:"slot_minutes"`
	SearchDaysAhead int   `mapstructure:"search_days_ahead" yaml:"search_days_ahead"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme           string `mapstructure:"theme" yaml:"theme"`
	PollIntervalSec int    `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Sources []SourceConfig `mapstructure:"sources" yaml:"sources"`
	Toast   ToastConfig    `mapstructure:"toast" yaml:"toast"`
	Clinic  ClinicConfig   `mapstructure:"clinic" yaml:"clinic"`
	Display DisplayConfig  `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/caredesk/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "caredesk", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Sources: []SourceConfig{},
		Toast: ToastConfig{
			DurationMs:   3000,
			EnterDelayMs: 10,
			ExitMs:       300,
		},
		Clinic: ClinicConfig{
			WorkStartHour:   9,
			WorkEndHour:     17,
			WorkDays:        []int{1, 2, 3, 4, 5},
			SlotMinutes:     30,
			SearchDaysAhead: 30,
		},
		Display: DisplayConfig{
			Theme:           "default",
			PollIntervalSec: 120,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("toast.duration_ms", 3000)
	v.SetDefault("toast.enter_delay_ms", 10)
	v.SetDefault("toast.exit_ms", 300)
	v.SetDefault("clinic.work_start_hour", 9)
	v.SetDefault("clinic.work_end_hour", 17)
	v.SetDefault("clinic.work_days", []int{1, 2, 3, 4, 5})
	v.SetDefault("clinic.slot_minutes", 30)
	v.SetDefault("clinic.search_days_ahead", 30)
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.poll_interval_sec", 120)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Apply defaults for each source entry.
	for i := range cfg.Sources {
		if cfg.Sources[i].PollIntervalSec == 0 {
			cfg.Sources[i].PollIntervalSec = 120
		}
		if !cfg.Sources[i].Enabled {
			// Viper unmarshals missing bools as false; treat unset as true.
			key := fmt.Sprintf("sources.%d.enabled", i)
			if !v.IsSet(key) {
				cfg.Sources[i].Enabled = true
			}
		}
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("sources", cfg.Sources)
	v.Set("toast", cfg.Toast)
	v.Set("clinic", cfg.Clinic)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// WorkWeekdays converts the configured work-day numbers (0=Sunday) into
// a weekday list, falling back to Mon-Fri when unset.
func (c ClinicConfig) WorkWeekdays() []int {
	if len(c.WorkDays) == 0 {
		return []int{1, 2, 3, 4, 5}
	}
	return c.WorkDays
}
