package config

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
)

// UserProfile converts the [profile] section into the model profile.
func (c Config) UserProfile() model.UserProfile {
	return model.UserProfile{
		Age:           c.Profile.Age,
		Height:        c.Profile.HeightCm,
		Gender:        model.Gender(strings.ToLower(c.Profile.Gender)),
		ActivityLevel: model.ActivityLevel(strings.ToLower(c.Profile.ActivityLevel)),
		TargetWeight:  c.Profile.TargetWeightKg,
	}
}

// Units returns the display unit system.
func (c Config) Units() (model.UnitSystem, error) {
	switch u := model.UnitSystem(strings.ToLower(c.General.UnitSystem)); u {
	case model.MetricUnits, model.ImperialUnits:
		return u, nil
	default:
		return model.MetricUnits, fmt.Errorf("general.unit_system %q must be metric or imperial", c.General.UnitSystem)
	}
}

// Calendar returns the locale calendar for budget weeks.
func (c Config) Calendar() (period.Calendar, error) {
	if c.General.WeekStart == "" {
		return period.Calendar{}, nil
	}
	wd, err := period.ParseWeekday(c.General.WeekStart)
	if err != nil {
		return period.Calendar{}, fmt.Errorf("general.week_start: %w", err)
	}
	return period.Calendar{WeekStart: wd}, nil
}

// Thresholds returns the budget alert thresholds.
func (c Config) Thresholds() []float64 {
	if len(c.Budgets.AlertThresholds) == 0 {
		return DefaultConfig().Budgets.AlertThresholds
	}
	return c.Budgets.AlertThresholds
}
