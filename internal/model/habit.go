package model

import (
	"time"

	"github.com/google/uuid"
)

// Frequency of a habit. Only daily habits are tracked.
type Frequency string

const Daily Frequency = "daily"

// Habit is a recurring daily target.
type Habit struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Frequency   Frequency
	TargetCount int
	Color       string
	Icon        string
	CreatedAt   time.Time
}

// Validate checks the invariants a habit must hold before it is stored.
func (h Habit) Validate() error {
	if h.Name == "" {
		return ErrEmptyName
	}
	if h.TargetCount < 1 {
		return ErrInvalidTarget
	}
	return nil
}

// HabitEntry records progress on one habit for one calendar day.
// There is at most one entry per (HabitID, Date).
type HabitEntry struct {
	ID        uuid.UUID
	HabitID   uuid.UUID
	Date      time.Time
	Completed bool
	Count     int
}

// EntryState is the completion state of a habit on a day.
type EntryState int

const (
	NoEntry EntryState = iota
	InProgress
	Completed
)

func (s EntryState) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Completed:
		return "completed"
	default:
		return "not started"
	}
}

// Streak holds the current and longest runs of completed days.
type Streak struct {
	Current int
	Longest int
}

// HabitStatus is a habit's state for a single day.
type HabitStatus struct {
	Habit     Habit
	Completed bool
	Count     int
}

// HabitSummary combines streaks and a rolling completion rate for one habit.
type HabitSummary struct {
	Habit          Habit
	Streak         Streak
	CompletionRate float64
	Days           int
}
