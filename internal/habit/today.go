package habit

import (
	"time"

	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
)

// Today reports each habit's entry for the day of now, defaulting to not
// completed with a zero count.
func Today(habits []model.Habit, entries []model.HabitEntry, now time.Time) []model.HabitStatus {
	today := period.DayKey(now)
	byHabit := make(map[string]model.HabitEntry)
	for _, e := range entries {
		if period.DayKey(e.Date) == today {
			byHabit[e.HabitID.String()] = e
		}
	}

	out := make([]model.HabitStatus, 0, len(habits))
	for _, h := range habits {
		st := model.HabitStatus{Habit: h}
		if e, ok := byHabit[h.ID.String()]; ok {
			st.Completed = e.Completed
			st.Count = e.Count
		}
		out = append(out, st)
	}
	return out
}

// Progress returns the equal-weight mean of each habit's capped completion
// fraction, as a percentage. Partially done habits contribute proportionally.
func Progress(statuses []model.HabitStatus) float64 {
	if len(statuses) == 0 {
		return 0
	}
	var sum float64
	for _, st := range statuses {
		sum += Fraction(st.Count, st.Habit.TargetCount) * 100
	}
	return sum / float64(len(statuses))
}

// Fraction returns count/target capped at 1.
func Fraction(count, target int) float64 {
	if target < 1 {
		target = 1
	}
	f := float64(count) / float64(target)
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}
