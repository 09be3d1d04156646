package health

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
)

var now = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func f(v float64) *float64 { return &v }

func TestBMI(t *testing.T) {
	assert.InDelta(t, 22.857, BMI(70, 175, model.MetricUnits), 1e-2)

	// 154.3 lb / 68.9 in² * 703 is the same person in imperial.
	assert.InDelta(t, 22.85, BMI(154.32, 68.9, model.ImperialUnits), 5e-2)
}

func TestBMIZeroHeightIsNotFinite(t *testing.T) {
	assert.True(t, math.IsInf(BMI(70, 0, model.MetricUnits), 1))
}

func TestCategoryBoundaries(t *testing.T) {
	cases := []struct {
		bmi  float64
		want model.BMICategory
	}{
		{18.49, model.Underweight},
		{18.5, model.Normal},
		{24.99, model.Normal},
		{25, model.Overweight},
		{29.99, model.Overweight},
		{30, model.Obese},
		{41, model.Obese},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Category(c.bmi), "bmi %.2f", c.bmi)
	}
}

func TestBMR(t *testing.T) {
	// 10*70 + 6.25*175 - 5*30 = 1643.75
	assert.InDelta(t, 1648.75, BMR(70, 175, 30, model.Male, model.MetricUnits), 1e-9)
	assert.InDelta(t, 1482.75, BMR(70, 175, 30, model.Female, model.MetricUnits), 1e-9)

	imperial := BMR(KgToLb(70), CmToIn(175), 30, model.Male, model.ImperialUnits)
	assert.InDelta(t, 1648.75, imperial, 1e-6)
}

func TestBodyFatMale(t *testing.T) {
	want := 495/(1.0324-0.19077*math.Log10(85-38)+0.15456*math.Log10(175)) - 450
	got := BodyFat(model.Male, 85, 38, 175, nil, model.MetricUnits)
	assert.InDelta(t, want, got, 1e-9)
	assert.InDelta(t, 16.94, got, 0.05)
}

func TestBodyFatFemale(t *testing.T) {
	assert.Equal(t, 0.0, BodyFat(model.Female, 80, 34, 165, nil, model.MetricUnits))

	want := 495/(1.29579-0.35004*math.Log10(80+95-34)+0.22100*math.Log10(165)) - 450
	assert.InDelta(t, want, BodyFat(model.Female, 80, 34, 165, f(95), model.MetricUnits), 1e-9)
}

func TestBodyFatImperialConvertsToMetric(t *testing.T) {
	metric := BodyFat(model.Male, 85, 38, 175, nil, model.MetricUnits)
	imperial := BodyFat(model.Male, CmToIn(85), CmToIn(38), CmToIn(175), nil, model.ImperialUnits)
	assert.InDelta(t, metric, imperial, 1e-9)
}

func TestTDEE(t *testing.T) {
	assert.InDelta(t, 1200, TDEE(1000, model.Sedentary), 1e-9)
	assert.InDelta(t, 1550, TDEE(1000, model.ModeratelyActive), 1e-9)
	assert.InDelta(t, 1900, TDEE(1000, model.ExtraActive), 1e-9)
	assert.InDelta(t, 1200, TDEE(1000, ""), 1e-9)
}

func TestEstimateBodyFat(t *testing.T) {
	male := model.UserProfile{Gender: model.Male, Height: f(175)}
	female := model.UserProfile{Gender: model.Female, Height: f(165)}

	m := &model.BodyMeasurement{Measurements: model.Measurements{Waist: f(85), Neck: f(38)}}
	got := EstimateBodyFat(male, m)
	require.True(t, got.Available, got.Reason)
	assert.InDelta(t, 16.94, got.Value, 0.05)

	got = EstimateBodyFat(female, &model.BodyMeasurement{Measurements: model.Measurements{Waist: f(80), Neck: f(34)}})
	assert.False(t, got.Available)
	assert.Contains(t, got.Reason, "hip")

	got = EstimateBodyFat(male, &model.BodyMeasurement{Measurements: model.Measurements{Waist: f(38), Neck: f(38)}})
	assert.False(t, got.Available)
	assert.Contains(t, got.Reason, "waist")

	got = EstimateBodyFat(model.UserProfile{Gender: model.Male}, m)
	assert.False(t, got.Available)
	assert.Contains(t, got.Reason, "height")

	// Measurement height overrides the profile.
	withHeight := &model.BodyMeasurement{Measurements: model.Measurements{Waist: f(85), Neck: f(38), Height: f(175)}}
	assert.True(t, EstimateBodyFat(model.UserProfile{Gender: model.Male}, withHeight).Available)

	// A barely-larger waist produces an implausibly low estimate.
	got = EstimateBodyFat(male, &model.BodyMeasurement{Measurements: model.Measurements{Waist: f(39), Neck: f(38)}})
	assert.False(t, got.Available)
	assert.Contains(t, got.Reason, "plausible")

	assert.False(t, EstimateBodyFat(male, nil).Available)
}

func TestEstimateBMIAndBMR(t *testing.T) {
	p := model.UserProfile{Age: 30, Gender: model.Male, Height: f(175), ActivityLevel: model.LightlyActive}
	w := &model.WeightEntry{Weight: 70}

	bmi := EstimateBMI(p, w)
	require.True(t, bmi.Available)
	assert.InDelta(t, 22.857, bmi.Value, 1e-2)

	bmr := EstimateBMR(p, w)
	require.True(t, bmr.Available)
	tdee := EstimateTDEE(p, bmr)
	assert.InDelta(t, 1648.75*1.375, tdee.Value, 1e-9)

	assert.False(t, EstimateBMI(model.UserProfile{}, w).Available)
	assert.False(t, EstimateBMI(p, nil).Available)
	assert.False(t, EstimateBMR(model.UserProfile{Height: f(175)}, w).Available)
	assert.False(t, EstimateTDEE(p, model.Unavailable("x")).Available)
}

func TestTargetWeightGap(t *testing.T) {
	p := model.UserProfile{TargetWeight: f(72)}
	gap := TargetWeightGap(p, &model.WeightEntry{Weight: 75.5})
	require.True(t, gap.Available)
	assert.InDelta(t, 3.5, gap.Value, 1e-9)
	assert.False(t, TargetWeightGap(model.UserProfile{}, &model.WeightEntry{Weight: 75}).Available)
}

func weigh(kg float64, ago int) model.WeightEntry {
	return model.WeightEntry{Weight: kg, Date: period.StartOfDay(now).AddDate(0, 0, -ago)}
}

func TestWeightTrend(t *testing.T) {
	entries := []model.WeightEntry{
		weigh(80, 6),
		weigh(79.2, 3),
		weigh(78.5, 0),
		weigh(90, 40), // outside window
	}
	tr := WeightTrend(entries, 7, now)
	assert.Equal(t, model.TrendDown, tr.Direction)
	assert.InDelta(t, 1.5, tr.Change, 1e-9)
	assert.Equal(t, 3, tr.Entries)

	tr = WeightTrend([]model.WeightEntry{weigh(70, 2), weigh(71, 0)}, 7, now)
	assert.Equal(t, model.TrendUp, tr.Direction)
	assert.InDelta(t, 1.0, tr.Change, 1e-9)
}

func TestWeightTrendStable(t *testing.T) {
	tr := WeightTrend([]model.WeightEntry{weigh(70, 2), weigh(70.05, 0)}, 7, now)
	assert.Equal(t, model.TrendStable, tr.Direction)
	assert.Less(t, tr.Change, 0.1)

	tr = WeightTrend([]model.WeightEntry{weigh(70, 0)}, 7, now)
	assert.Equal(t, model.TrendStable, tr.Direction)
	assert.Equal(t, 0.0, tr.Change)

	tr = WeightTrend(nil, 30, now)
	assert.Equal(t, model.TrendStable, tr.Direction)
}

func TestLatest(t *testing.T) {
	entries := []model.WeightEntry{weigh(70, 3), weigh(71, 1), weigh(72, 2)}
	require.NotNil(t, LatestWeight(entries))
	assert.Equal(t, 71.0, LatestWeight(entries).Weight)
	assert.Nil(t, LatestWeight(nil))
	assert.Nil(t, LatestMeasurement(nil))
}

func TestDailyWeights(t *testing.T) {
	entries := []model.WeightEntry{weigh(80, 2), weigh(79, 0)}
	got := DailyWeights(entries, period.LastDays(now, 4))
	assert.Equal(t, []float64{0, 80, 80, 79}, got)
}

func TestWorkoutSummary(t *testing.T) {
	exercises := []model.Exercise{
		{Name: "Run", Date: now, Details: model.CardioDetails{DurationMin: 30, DistanceKm: f(5), Calories: f(300)}},
		{Name: "Lift", Date: now.AddDate(0, 0, -1), Details: model.StrengthDetails{Exercises: []model.StrengthExercise{
			{Name: "Squat", Sets: []model.StrengthSet{{Reps: 5, WeightKg: 100}, {Reps: 5, WeightKg: 100}}},
			{Name: "Row", Sets: []model.StrengthSet{{Reps: 10, WeightKg: 40}}},
		}}},
		{Name: "Old run", Date: now.AddDate(0, 0, -30), Details: model.CardioDetails{DurationMin: 60}},
	}

	s := WorkoutSummary(exercises, period.LastDays(now, 7))
	assert.Equal(t, 2, s.Sessions)
	assert.Equal(t, 30.0, s.CardioMinutes)
	assert.Equal(t, 5.0, s.DistanceKm)
	assert.Equal(t, 300.0, s.CaloriesBurned)
	assert.Equal(t, 3, s.StrengthSets)
	assert.Equal(t, 1400.0, s.StrengthVolumeKg)
}
