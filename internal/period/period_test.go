package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/habitat/internal/model"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMonthBounds(t *testing.T) {
	w := Month(day("2024-02-14").Add(15 * time.Hour))
	assert.Equal(t, day("2024-02-01"), w.Start)
	assert.Equal(t, "2024-02-29", w.End.Format(DayLayout))
	assert.True(t, w.Contains(day("2024-02-29").Add(23*time.Hour)))
	assert.False(t, w.Contains(day("2024-03-01")))
	assert.False(t, w.Contains(day("2024-01-31")))
	assert.Equal(t, 29, w.Days())
}

func TestWeekSundayStart(t *testing.T) {
	// 2026-10-14 is a Wednesday.
	w := Calendar{}.Week(day("2026-10-14"))
	assert.Equal(t, day("2026-10-11"), w.Start)
	assert.Equal(t, "2026-10-17", w.End.Format(DayLayout))
	assert.Equal(t, 7, w.Days())

	// Sunday is the first day of its own week.
	w = Calendar{}.Week(day("2026-10-11"))
	assert.Equal(t, day("2026-10-11"), w.Start)
}

func TestWeekMondayStart(t *testing.T) {
	cal := Calendar{WeekStart: time.Monday}
	w := cal.Week(day("2026-10-11")) // Sunday
	assert.Equal(t, day("2026-10-05"), w.Start)
	assert.Equal(t, "2026-10-11", w.End.Format(DayLayout))
}

func TestResolve(t *testing.T) {
	now := day("2026-10-14")
	w, err := Calendar{}.Resolve(model.Monthly, now)
	require.NoError(t, err)
	assert.Equal(t, day("2026-10-01"), w.Start)

	w, err = Calendar{}.Resolve(model.Weekly, now)
	require.NoError(t, err)
	assert.Equal(t, day("2026-10-11"), w.Start)

	_, err = Calendar{}.Resolve("yearly", now)
	assert.ErrorIs(t, err, model.ErrInvalidPeriod)
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	assert.Equal(t, 1, DaysBetween(day("2026-10-02").Add(time.Hour), day("2026-10-01").Add(23*time.Hour)))
	assert.Equal(t, 0, DaysBetween(day("2026-10-01").Add(20*time.Hour), day("2026-10-01")))
	assert.Equal(t, -3, DaysBetween(day("2026-09-28"), day("2026-10-01")))
	assert.Equal(t, 366, DaysBetween(day("2025-01-01"), day("2024-01-01")))
}

func TestLastDays(t *testing.T) {
	w := LastDays(day("2026-10-18").Add(10*time.Hour), 7)
	assert.Equal(t, day("2026-10-12"), w.Start)
	assert.Equal(t, 7, w.Days())
}

func TestParseDayAndWeekday(t *testing.T) {
	d, err := ParseDay(" 2026-10-18 ", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, day("2026-10-18"), d)

	_, err = ParseDay("18/10/2026", time.UTC)
	assert.Error(t, err)

	wd, err := ParseWeekday("Mon")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, wd)
	_, err = ParseWeekday("funday")
	assert.Error(t, err)
}
