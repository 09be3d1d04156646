package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/text/currency"

	"github.com/theirongolddev/habitat/internal/config"
	"github.com/theirongolddev/habitat/internal/health"
	"github.com/theirongolddev/habitat/internal/model"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func fmtOpt(p *float64, conv func(float64) float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(conv(*p), 'f', 1, 64)
}

func identity(v float64) float64 { return v }

func positiveOrEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number or leave blank")
	}
	return nil
}

func parseOpt(s string, conv func(float64) float64) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return nil
	}
	v = conv(v)
	return &v
}

func runSetup(_ *cobra.Command, _ []string) error {
	c := cfg

	// Ask in the current display units, store metric.
	imperial := strings.EqualFold(c.General.UnitSystem, string(model.ImperialUnits))
	toDisplayLen, fromDisplayLen := identity, identity
	toDisplayW, fromDisplayW := identity, identity
	if imperial {
		toDisplayLen, fromDisplayLen = health.CmToIn, health.InToCm
		toDisplayW, fromDisplayW = health.KgToLb, health.LbToKg
	}

	age := ""
	if c.Profile.Age > 0 {
		age = strconv.Itoa(c.Profile.Age)
	}
	height := fmtOpt(c.Profile.HeightCm, toDisplayLen)
	target := fmtOpt(c.Profile.TargetWeightKg, toDisplayW)

	levels := make([]huh.Option[string], len(model.ActivityLevels))
	for i, l := range model.ActivityLevels {
		levels[i] = huh.NewOption(fmt.Sprintf("%s (x%.3g)", l, health.ActivityFactor(l)), string(l))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to habitat").
				Description("A few questions to set up money, body and habit tracking.\nYou can rerun `habitat setup` anytime."),
			huh.NewInput().
				Title("Currency").
				Description("ISO 4217 code, e.g. USD, EUR, GBP").
				Value(&c.General.Currency).
				Validate(func(s string) error {
					_, err := currency.ParseISO(strings.ToUpper(s))
					return err
				}),
			huh.NewSelect[string]().
				Title("Units").
				Options(huh.NewOptions("metric", "imperial")...).
				Value(&c.General.UnitSystem),
			huh.NewSelect[string]().
				Title("Weeks start on").
				Options(huh.NewOptions("sunday", "monday", "saturday")...).
				Value(&c.General.WeekStart),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Age").
				Value(&age).
				Validate(positiveOrEmpty),
			huh.NewInput().
				Title("Height ("+lengthUnit(imperial)+")").
				Value(&height).
				Validate(positiveOrEmpty),
			huh.NewSelect[string]().
				Title("Gender").
				Description("Used by the BMR and body fat formulas").
				Options(huh.NewOptions("male", "female")...).
				Value(&c.Profile.Gender),
			huh.NewSelect[string]().
				Title("Activity level").
				Options(levels...).
				Value(&c.Profile.ActivityLevel),
			huh.NewInput().
				Title("Target weight ("+weightUnit(imperial)+")").
				Value(&target).
				Validate(positiveOrEmpty),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	c.General.Currency = strings.ToUpper(c.General.Currency)
	c.Profile.Age, _ = strconv.Atoi(strings.TrimSpace(age))
	// Units may have changed in the form; values were typed in the old ones.
	c.Profile.HeightCm = parseOpt(height, fromDisplayLen)
	c.Profile.TargetWeightKg = parseOpt(target, fromDisplayW)

	if err := c.Validate(); err != nil {
		return err
	}
	if err := config.Save(c); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cfg = c

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `habitat setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func lengthUnit(imperial bool) string {
	if imperial {
		return "in"
	}
	return "cm"
}

func weightUnit(imperial bool) string {
	if imperial {
		return "lb"
	}
	return "kg"
}
