// Package habit computes streaks, completion rates and daily progress from
// habit entry snapshots, and applies completion transitions to entries.
package habit

import (
	"sort"
	"time"

	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
)

// sortNewestFirst returns a copy of entries ordered by date descending.
func sortNewestFirst(entries []model.HabitEntry) []model.HabitEntry {
	sorted := make([]model.HabitEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

// CalculateStreak returns the current and longest runs of completed days for
// one daily habit.
//
// The current streak counts back from the newest entry, which must be
// completed and dated today or yesterday. The longest streak scans the full
// history: a date gap or an incomplete day records the running count and
// resets it, so Longest is never below Current.
func CalculateStreak(entries []model.HabitEntry, now time.Time) model.Streak {
	sorted := sortNewestFirst(entries)
	return model.Streak{
		Current: currentStreak(sorted, now),
		Longest: longestStreak(sorted),
	}
}

func currentStreak(sorted []model.HabitEntry, now time.Time) int {
	if len(sorted) == 0 || !sorted[0].Completed {
		return 0
	}
	if period.DaysBetween(now, sorted[0].Date) > 1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(sorted); i++ {
		if !sorted[i].Completed {
			break
		}
		if period.DaysBetween(sorted[i-1].Date, sorted[i].Date) != 1 {
			break
		}
		streak++
	}
	return streak
}

func longestStreak(sorted []model.HabitEntry) int {
	longest, run := 0, 0
	for i, e := range sorted {
		if !e.Completed {
			longest = max(longest, run)
			run = 0
			continue
		}
		switch {
		case i == 0 || run == 0:
			run = 1
		case period.DaysBetween(sorted[i-1].Date, e.Date) == 1:
			run++
		default:
			longest = max(longest, run)
			run = 1
		}
	}
	return max(longest, run)
}

// CompletionRate returns completed entries as a percentage of totalDays.
// Entries are expected to be pre-filtered to the window.
func CompletionRate(entries []model.HabitEntry, totalDays int) float64 {
	if totalDays <= 0 {
		return 0
	}
	completed := 0
	for _, e := range entries {
		if e.Completed {
			completed++
		}
	}
	return float64(completed) / float64(totalDays) * 100
}

// EntriesInWindow returns the entries dated within the last days calendar
// days, today included.
func EntriesInWindow(entries []model.HabitEntry, days int, now time.Time) []model.HabitEntry {
	w := period.LastDays(now, days)
	var out []model.HabitEntry
	for _, e := range entries {
		if w.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// GroupByHabit buckets entries by habit ID.
func GroupByHabit(entries []model.HabitEntry) map[string][]model.HabitEntry {
	out := make(map[string][]model.HabitEntry)
	for _, e := range entries {
		key := e.HabitID.String()
		out[key] = append(out[key], e)
	}
	return out
}

// Summaries computes streaks and the completion rate over the last days for
// each habit, in habit order.
func Summaries(habits []model.Habit, entries []model.HabitEntry, days int, now time.Time) []model.HabitSummary {
	byHabit := GroupByHabit(entries)
	out := make([]model.HabitSummary, 0, len(habits))
	for _, h := range habits {
		hist := byHabit[h.ID.String()]
		out = append(out, model.HabitSummary{
			Habit:          h,
			Streak:         CalculateStreak(hist, now),
			CompletionRate: CompletionRate(EntriesInWindow(hist, days, now), days),
			Days:           days,
		})
	}
	return out
}
