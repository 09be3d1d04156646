package habit

import (
	"fmt"
	"time"

	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
)

// ActionKind names a completion transition.
type ActionKind string

const (
	Increment ActionKind = "increment"
	Decrement ActionKind = "decrement"
	SetCount  ActionKind = "set"
	Complete  ActionKind = "complete"
	Reset     ActionKind = "reset"
)

// Action is a requested transition. Count is used by SetCount only.
type Action struct {
	Kind  ActionKind
	Count int
}

// StateOf classifies an entry against its habit's target. A nil entry or a
// zero count is NoEntry.
func StateOf(h model.Habit, e *model.HabitEntry) model.EntryState {
	if e == nil || e.Count <= 0 {
		return model.NoEntry
	}
	if e.Count >= h.TargetCount {
		return model.Completed
	}
	return model.InProgress
}

// Apply returns the entry for (h, day) after the action. prev is the existing
// entry for that day or nil; its ID is kept so the result can be upserted.
// Completed is always derived from the resulting count.
func Apply(h model.Habit, prev *model.HabitEntry, a Action, day time.Time) (model.HabitEntry, error) {
	e := model.HabitEntry{HabitID: h.ID, Date: period.StartOfDay(day)}
	if prev != nil {
		e.ID = prev.ID
		e.Count = prev.Count
	}

	switch a.Kind {
	case Increment:
		e.Count++
	case Decrement:
		if e.Count > 0 {
			e.Count--
		}
	case SetCount:
		if a.Count < 0 {
			return e, model.ErrInvalidCount
		}
		e.Count = a.Count
	case Complete:
		if e.Count < h.TargetCount {
			e.Count = h.TargetCount
		}
	case Reset:
		e.Count = 0
	default:
		return e, fmt.Errorf("unknown habit action %q", a.Kind)
	}

	e.Completed = e.Count >= h.TargetCount
	return e, nil
}

// Toggle completes an unfinished day or resets a completed one.
func Toggle(h model.Habit, prev *model.HabitEntry, day time.Time) (model.HabitEntry, error) {
	if StateOf(h, prev) == model.Completed {
		return Apply(h, prev, Action{Kind: Reset}, day)
	}
	return Apply(h, prev, Action{Kind: Complete}, day)
}
