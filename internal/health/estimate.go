package health

import (
	"math"

	"github.com/theirongolddev/habitat/internal/model"
)

// Plausible body-fat range in percent. Values outside are discarded.
const (
	MinBodyFat = 3
	MaxBodyFat = 50
)

func profileHeight(p model.UserProfile, m *model.BodyMeasurement) *float64 {
	if m != nil && m.Measurements.Height != nil {
		return m.Measurements.Height
	}
	return p.Height
}

// EstimateBMI computes BMI from the profile height and the latest weigh-in.
func EstimateBMI(p model.UserProfile, latest *model.WeightEntry) model.Metric {
	if p.Height == nil || *p.Height <= 0 {
		return model.Unavailable("height not set in profile")
	}
	if latest == nil {
		return model.Unavailable("no weight logged")
	}
	return model.Value(BMI(latest.Weight, *p.Height, model.MetricUnits))
}

// EstimateBMR computes BMR from the profile and the latest weigh-in.
func EstimateBMR(p model.UserProfile, latest *model.WeightEntry) model.Metric {
	switch {
	case p.Height == nil || *p.Height <= 0:
		return model.Unavailable("height not set in profile")
	case p.Age <= 0:
		return model.Unavailable("age not set in profile")
	case latest == nil:
		return model.Unavailable("no weight logged")
	}
	return model.Value(BMR(latest.Weight, *p.Height, p.Age, p.Gender, model.MetricUnits))
}

// EstimateTDEE scales an available BMR by the profile's activity level.
func EstimateTDEE(p model.UserProfile, bmr model.Metric) model.Metric {
	if !bmr.Available {
		return bmr
	}
	return model.Value(TDEE(bmr.Value, p.ActivityLevel))
}

// EstimateBodyFat validates the measurements and applies the Navy formula.
// Height falls back to the profile when the measurement omits it.
func EstimateBodyFat(p model.UserProfile, m *model.BodyMeasurement) model.Metric {
	if m == nil {
		return model.Unavailable("no measurements logged")
	}
	mm := m.Measurements
	height := profileHeight(p, m)

	switch {
	case mm.Waist == nil:
		return model.Unavailable("waist measurement missing")
	case mm.Neck == nil:
		return model.Unavailable("neck measurement missing")
	case height == nil:
		return model.Unavailable("height missing")
	case p.Gender == model.Female && mm.Hip == nil:
		return model.Unavailable("hip measurement required for women")
	case *mm.Waist <= *mm.Neck:
		return model.Unavailable("waist must be larger than neck")
	}

	bf := BodyFat(p.Gender, *mm.Waist, *mm.Neck, *height, mm.Hip, model.MetricUnits)
	if math.IsNaN(bf) || math.IsInf(bf, 0) || bf < MinBodyFat || bf > MaxBodyFat {
		return model.Unavailable("estimate outside plausible range")
	}
	return model.Value(bf)
}

// TargetWeightGap returns kilograms between the latest weigh-in and the
// profile's target. Positive means weight to lose.
func TargetWeightGap(p model.UserProfile, latest *model.WeightEntry) model.Metric {
	if p.TargetWeight == nil {
		return model.Unavailable("no target weight set")
	}
	if latest == nil {
		return model.Unavailable("no weight logged")
	}
	return model.Value(latest.Weight - *p.TargetWeight)
}
