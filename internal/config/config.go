// Package config loads habitat settings from a TOML file, a .env file and
// the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
)

// Config holds all habitat configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Profile    ProfileConfig    `toml:"profile"`
	Budgets    BudgetConfig     `toml:"budgets"`
	Logging    LoggingConfig    `toml:"logging"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath          string `toml:"db_path,omitempty"`
	Currency        string `toml:"currency"`
	UnitSystem      string `toml:"unit_system"`
	WeekStart       string `toml:"week_start"`
	TrendDays       int    `toml:"trend_days"`
	HabitWindowDays int    `toml:"habit_window_days"`
}

// ProfileConfig is the single user profile. Values are metric.
type ProfileConfig struct {
	Age            int      `toml:"age,omitempty"`
	HeightCm       *float64 `toml:"height_cm,omitempty"`
	Gender         string   `toml:"gender"`
	ActivityLevel  string   `toml:"activity_level"`
	TargetWeightKg *float64 `toml:"target_weight_kg,omitempty"`
}

// BudgetConfig holds budget alert settings.
type BudgetConfig struct {
	AlertThresholds []float64 `toml:"alert_thresholds"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file,omitempty"`
}

// AppearanceConfig holds terminal output settings.
type AppearanceConfig struct {
	NoColor bool `toml:"no_color"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency:        "USD",
			UnitSystem:      "metric",
			WeekStart:       "sunday",
			TrendDays:       30,
			HabitWindowDays: 30,
		},
		Profile: ProfileConfig{
			Gender:        "male",
			ActivityLevel: "sedentary",
		},
		Budgets: BudgetConfig{
			AlertThresholds: []float64{80, 90, 100},
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "habitat")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "habitat")
}

// Path returns the full path to the config file.
func Path() string {
	if p := os.Getenv("HABITAT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "habitat")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "habitat")
}

// DBPath returns the database path from the config, or the default.
func (c Config) DBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return filepath.Join(DataDir(), "habitat.db")
}

// Load reads .env from the working directory, the config file and then
// environment overrides. A missing config file yields defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), fmt.Errorf("reading .env: %w", err)
	}
	cfg, err := LoadFile(Path())
	if err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

// LoadFile reads a config file over the defaults without consulting the environment.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // user-chosen config path
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

// ApplyEnv overrides config values from HABITAT_* environment variables.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("HABITAT_DB"); v != "" {
		cfg.General.DBPath = v
	}
	if v := os.Getenv("HABITAT_CURRENCY"); v != "" {
		cfg.General.Currency = strings.ToUpper(v)
	}
	if v := os.Getenv("HABITAT_UNITS"); v != "" {
		cfg.General.UnitSystem = strings.ToLower(v)
	}
	if v := os.Getenv("HABITAT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HABITAT_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.Appearance.NoColor = true
	}
}

// Save writes the config file.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []string

	if _, err := currency.ParseISO(c.General.Currency); err != nil {
		errs = append(errs, fmt.Sprintf("general.currency %q is not an ISO 4217 code", c.General.Currency))
	}
	if _, err := c.Units(); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := c.Calendar(); err != nil {
		errs = append(errs, err.Error())
	}
	if c.General.TrendDays < 1 {
		errs = append(errs, "general.trend_days must be at least 1")
	}
	if c.General.HabitWindowDays < 1 {
		errs = append(errs, "general.habit_window_days must be at least 1")
	}
	if err := c.UserProfile().Validate(); err != nil {
		errs = append(errs, "profile: "+err.Error())
	}
	if c.Profile.Age < 0 {
		errs = append(errs, "profile.age must not be negative")
	}
	for _, th := range c.Budgets.AlertThresholds {
		if th <= 0 {
			errs = append(errs, fmt.Sprintf("budgets.alert_thresholds: %v must be positive", th))
		}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("logging.format %q must be text or json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
