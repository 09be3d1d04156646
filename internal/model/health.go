package model

import (
	"time"

	"github.com/google/uuid"
)

// UnitSystem selects how raw inputs and display values are expressed.
// Stored values are always metric.
type UnitSystem string

const (
	MetricUnits   UnitSystem = "metric"
	ImperialUnits UnitSystem = "imperial"
)

// Gender selects the sex-specific formula variants.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ActivityLevel scales BMR into daily energy expenditure.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "light"
	ModeratelyActive ActivityLevel = "moderate"
	VeryActive       ActivityLevel = "active"
	ExtraActive      ActivityLevel = "very_active"
)

// ActivityLevels lists the levels in increasing order.
var ActivityLevels = []ActivityLevel{Sedentary, LightlyActive, ModeratelyActive, VeryActive, ExtraActive}

// WeightEntry is one weigh-in in kilograms.
type WeightEntry struct {
	ID     uuid.UUID
	Weight float64
	Date   time.Time
	Notes  string
}

// Validate checks the invariants a weight entry must hold before it is stored.
func (w WeightEntry) Validate() error {
	if w.Weight <= 0 {
		return ErrInvalidWeight
	}
	if w.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Measurements holds optional body circumferences in centimeters.
type Measurements struct {
	Height *float64 `json:"height,omitempty"`
	Waist  *float64 `json:"waist,omitempty"`
	Chest  *float64 `json:"chest,omitempty"`
	Hip    *float64 `json:"hip,omitempty"`
	Neck   *float64 `json:"neck,omitempty"`
	Bicep  *float64 `json:"bicep,omitempty"`
	Thigh  *float64 `json:"thigh,omitempty"`
}

// BodyMeasurement is a dated set of measurements.
type BodyMeasurement struct {
	ID           uuid.UUID
	Date         time.Time
	Measurements Measurements
}

// Validate checks that the date is set and every present value is positive.
func (b BodyMeasurement) Validate() error {
	if b.Date.IsZero() {
		return ErrInvalidDate
	}
	m := b.Measurements
	for _, v := range []*float64{m.Height, m.Waist, m.Chest, m.Hip, m.Neck, m.Bicep, m.Thigh} {
		if v != nil && *v <= 0 {
			return ErrInvalidMeasure
		}
	}
	return nil
}

// UserProfile is the single per-installation profile. Heights and weights are metric.
type UserProfile struct {
	Age           int
	Height        *float64
	Gender        Gender
	ActivityLevel ActivityLevel
	TargetWeight  *float64
}

// Validate checks the enumerations of the profile.
func (p UserProfile) Validate() error {
	if p.Gender != Male && p.Gender != Female {
		return ErrInvalidGender
	}
	switch p.ActivityLevel {
	case Sedentary, LightlyActive, ModeratelyActive, VeryActive, ExtraActive:
	default:
		return ErrInvalidActivity
	}
	if p.Height != nil && *p.Height <= 0 {
		return ErrInvalidMeasure
	}
	if p.TargetWeight != nil && *p.TargetWeight <= 0 {
		return ErrInvalidWeight
	}
	return nil
}

// BMICategory is the WHO weight class of a BMI value.
type BMICategory string

const (
	Underweight BMICategory = "Underweight"
	Normal      BMICategory = "Normal"
	Overweight  BMICategory = "Overweight"
	Obese       BMICategory = "Obese"
)

// TrendDirection summarizes weight movement over a window.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// WeightTrend is the direction and absolute magnitude of weight change.
type WeightTrend struct {
	Direction TrendDirection
	Change    float64
	Entries   int
}

// WorkoutSummary totals exercise sessions over a window.
type WorkoutSummary struct {
	Sessions         int
	CardioMinutes    float64
	DistanceKm       float64
	CaloriesBurned   float64
	StrengthSets     int
	StrengthVolumeKg float64
}
