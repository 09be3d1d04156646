package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/habitat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func optFloat(p *float64, unit string) string {
	if p == nil {
		return "not set"
	}
	return fmt.Sprintf("%.1f %s", *p, unit)
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagJSON {
		return printJSON(cfg)
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:     %s\n", cfg.DBPath())
	fmt.Printf("    Currency:     %s\n", cfg.General.Currency)
	fmt.Printf("    Units:        %s\n", cfg.General.UnitSystem)
	fmt.Printf("    Week starts:  %s\n", cfg.General.WeekStart)
	fmt.Printf("    Trend window: %d days\n", cfg.General.TrendDays)
	fmt.Printf("    Habit window: %d days\n", cfg.General.HabitWindowDays)
	fmt.Println()

	fmt.Println("  [Profile]")
	if cfg.Profile.Age > 0 {
		fmt.Printf("    Age:           %d\n", cfg.Profile.Age)
	} else {
		fmt.Println("    Age:           not set")
	}
	fmt.Printf("    Height:        %s\n", optFloat(cfg.Profile.HeightCm, "cm"))
	fmt.Printf("    Gender:        %s\n", cfg.Profile.Gender)
	fmt.Printf("    Activity:      %s\n", cfg.Profile.ActivityLevel)
	fmt.Printf("    Target weight: %s\n", optFloat(cfg.Profile.TargetWeightKg, "kg"))
	fmt.Println()

	fmt.Println("  [Budgets]")
	th := make([]string, len(cfg.Thresholds()))
	for i, v := range cfg.Thresholds() {
		th[i] = fmt.Sprintf("%g%%", v)
	}
	fmt.Printf("    Alert thresholds: %s\n", strings.Join(th, ", "))
	fmt.Println()

	fmt.Println("  [Logging]")
	fmt.Printf("    Level:  %s\n", cfg.Logging.Level)
	fmt.Printf("    Format: %s\n", cfg.Logging.Format)
	if cfg.Logging.File != "" {
		fmt.Printf("    File:   %s\n", cfg.Logging.File)
	}
	fmt.Println()

	if err := cfg.Validate(); err != nil {
		fmt.Printf("  %v\n\n", err)
	}
	fmt.Println("  Run `habitat setup` to reconfigure.")
	return nil
}
