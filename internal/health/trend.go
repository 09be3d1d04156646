package health

import (
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
)

// stableThreshold is the smallest change in kg reported as movement.
const stableThreshold = 0.1

// WeightTrend compares the newest and oldest weigh-ins of the last days
// calendar days. Fewer than two entries is reported as stable.
func WeightTrend(entries []model.WeightEntry, days int, now time.Time) model.WeightTrend {
	w := period.LastDays(now, days)

	var inWindow []model.WeightEntry
	for _, e := range entries {
		if w.Contains(e.Date) {
			inWindow = append(inWindow, e)
		}
	}

	trend := model.WeightTrend{Direction: model.TrendStable, Entries: len(inWindow)}
	if len(inWindow) < 2 {
		return trend
	}

	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].Date.After(inWindow[j].Date)
	})

	change := inWindow[0].Weight - inWindow[len(inWindow)-1].Weight
	trend.Change = math.Abs(change)
	switch {
	case trend.Change < stableThreshold:
	case change > 0:
		trend.Direction = model.TrendUp
	default:
		trend.Direction = model.TrendDown
	}
	return trend
}

// LatestWeight returns the most recent weigh-in, or nil.
func LatestWeight(entries []model.WeightEntry) *model.WeightEntry {
	var latest *model.WeightEntry
	for i := range entries {
		if latest == nil || entries[i].Date.After(latest.Date) {
			latest = &entries[i]
		}
	}
	return latest
}

// LatestMeasurement returns the most recent measurement set, or nil.
func LatestMeasurement(ms []model.BodyMeasurement) *model.BodyMeasurement {
	var latest *model.BodyMeasurement
	for i := range ms {
		if latest == nil || ms[i].Date.After(latest.Date) {
			latest = &ms[i]
		}
	}
	return latest
}

// DailyWeights returns one weight per day over the window, oldest first,
// carrying the previous value across days without a weigh-in. Days before
// the first weigh-in are zero.
func DailyWeights(entries []model.WeightEntry, w period.Window) []float64 {
	byDay := make(map[string]float64, len(entries))
	for _, e := range entries {
		byDay[period.DayKey(e.Date)] = e.Weight
	}

	var out []float64
	last := 0.0
	for d := period.StartOfDay(w.Start); !d.After(w.End); d = d.AddDate(0, 0, 1) {
		if v, ok := byDay[period.DayKey(d)]; ok {
			last = v
		}
		out = append(out, last)
	}
	return out
}

// WorkoutSummary totals the exercises logged within w.
func WorkoutSummary(exercises []model.Exercise, w period.Window) model.WorkoutSummary {
	var s model.WorkoutSummary
	for _, ex := range exercises {
		if !w.Contains(ex.Date) {
			continue
		}
		s.Sessions++
		switch d := ex.Details.(type) {
		case model.CardioDetails:
			s.CardioMinutes += d.DurationMin
			if d.DistanceKm != nil {
				s.DistanceKm += *d.DistanceKm
			}
			if d.Calories != nil {
				s.CaloriesBurned += *d.Calories
			}
		case model.StrengthDetails:
			s.StrengthSets += d.SetCount()
			s.StrengthVolumeKg += d.Volume()
		}
	}
	return s
}
