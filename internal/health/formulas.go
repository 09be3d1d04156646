// Package health implements body-composition formulas and weight trends.
//
// Formula functions assume validated inputs: a zero height yields a
// non-finite result. The Estimate functions apply the caller policy and
// report missing or implausible inputs as unavailable metrics.
package health

import (
	"math"

	"github.com/theirongolddev/habitat/internal/model"
)

// Unit conversion factors.
const (
	KgPerLb = 0.453592
	CmPerIn = 2.54

	// imperialBMIFactor converts lb/in² to kg/m².
	imperialBMIFactor = 703
)

// KgToLb converts kilograms to pounds.
func KgToLb(kg float64) float64 { return kg / KgPerLb }

// LbToKg converts pounds to kilograms.
func LbToKg(lb float64) float64 { return lb * KgPerLb }

// CmToIn converts centimeters to inches.
func CmToIn(cm float64) float64 { return cm / CmPerIn }

// InToCm converts inches to centimeters.
func InToCm(in float64) float64 { return in * CmPerIn }

// BMI returns body mass index. Metric takes kg and cm; imperial takes lb and in.
func BMI(weight, height float64, unit model.UnitSystem) float64 {
	if unit == model.ImperialUnits {
		return weight / (height * height) * imperialBMIFactor
	}
	m := height / 100
	return weight / (m * m)
}

// Category classifies a BMI. Boundary values belong to the upper class.
func Category(bmi float64) model.BMICategory {
	switch {
	case bmi < 18.5:
		return model.Underweight
	case bmi < 25:
		return model.Normal
	case bmi < 30:
		return model.Overweight
	default:
		return model.Obese
	}
}

// BMR returns basal metabolic rate in kcal/day using Mifflin-St Jeor.
func BMR(weight, height float64, age int, gender model.Gender, unit model.UnitSystem) float64 {
	kg, cm := weight, height
	if unit == model.ImperialUnits {
		kg, cm = LbToKg(weight), InToCm(height)
	}
	base := 10*kg + 6.25*cm - 5*float64(age)
	if gender == model.Female {
		return base - 161
	}
	return base + 5
}

// BodyFat returns the U.S. Navy body-fat percentage. Female estimates need
// a hip measurement and return 0 without one. waist must exceed neck.
func BodyFat(gender model.Gender, waist, neck, height float64, hip *float64, unit model.UnitSystem) float64 {
	if unit == model.ImperialUnits {
		waist, neck, height = InToCm(waist), InToCm(neck), InToCm(height)
	}

	if gender == model.Female {
		if hip == nil {
			return 0
		}
		h := *hip
		if unit == model.ImperialUnits {
			h = InToCm(h)
		}
		return 495/(1.29579-0.35004*math.Log10(waist+h-neck)+0.22100*math.Log10(height)) - 450
	}
	return 495/(1.0324-0.19077*math.Log10(waist-neck)+0.15456*math.Log10(height)) - 450
}

// ActivityFactor returns the TDEE multiplier for an activity level.
func ActivityFactor(level model.ActivityLevel) float64 {
	switch level {
	case model.LightlyActive:
		return 1.375
	case model.ModeratelyActive:
		return 1.55
	case model.VeryActive:
		return 1.725
	case model.ExtraActive:
		return 1.9
	default:
		return 1.2
	}
}

// TDEE scales BMR by activity to total daily energy expenditure.
func TDEE(bmr float64, level model.ActivityLevel) float64 {
	return bmr * ActivityFactor(level)
}
