// Package period resolves calendar windows shared by the finance, health and
// habit calculations. All windows are inclusive of both ends.
package period

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/habitat/internal/model"
)

// DayLayout is the storage and key format of calendar days.
const DayLayout = "2006-01-02"

// Window is an inclusive [Start, End] range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days returns the number of calendar days the window spans.
func (w Window) Days() int {
	return DaysBetween(w.End, w.Start) + 1
}

// String renders the window as "YYYY-MM-DD..YYYY-MM-DD".
func (w Window) String() string {
	return w.Start.Format(DayLayout) + ".." + w.End.Format(DayLayout)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfMonth returns midnight on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last instant of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// DaysBetween returns the number of calendar days from b to a, ignoring
// time of day and DST shifts.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ua.Sub(ub).Hours() / 24)
}

// DayKey formats t as a map key for day bucketing.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD string as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// Month returns the calendar month containing now.
func Month(now time.Time) Window {
	return Window{Start: StartOfMonth(now), End: EndOfMonth(now)}
}

// LastDays returns the n calendar days ending today, today included.
func LastDays(now time.Time, n int) Window {
	if n < 1 {
		n = 1
	}
	return Window{
		Start: StartOfDay(now).AddDate(0, 0, -(n - 1)),
		End:   EndOfDay(now),
	}
}

// Calendar carries the locale's week start. The zero value starts weeks on Sunday.
type Calendar struct {
	WeekStart time.Weekday
}

// Week returns the seven-day week containing now.
func (c Calendar) Week(now time.Time) Window {
	offset := (int(now.Weekday()) - int(c.WeekStart) + 7) % 7
	start := StartOfDay(now).AddDate(0, 0, -offset)
	return Window{Start: start, End: EndOfDay(start.AddDate(0, 0, 6))}
}

// Resolve returns the current window for p relative to now.
func (c Calendar) Resolve(p model.Period, now time.Time) (Window, error) {
	switch p {
	case model.Monthly:
		return Month(now), nil
	case model.Weekly:
		return c.Week(now), nil
	default:
		return Window{}, fmt.Errorf("%w: %q", model.ErrInvalidPeriod, p)
	}
}

// ParseWeekday accepts a full or three-letter English day name.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}
