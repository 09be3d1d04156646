package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/habitat/internal/habit"
	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/store"
)

// HabitStore is the persistence the tracker writes through. Lookups of
// missing rows return store.ErrNotFound.
type HabitStore interface {
	InsertHabit(ctx context.Context, h model.Habit) (model.Habit, error)
	GetHabit(ctx context.Context, id uuid.UUID) (model.Habit, error)
	ListHabits(ctx context.Context) ([]model.Habit, error)
	UpsertHabitEntry(ctx context.Context, e model.HabitEntry) (model.HabitEntry, error)
	GetHabitEntry(ctx context.Context, habitID uuid.UUID, day time.Time) (model.HabitEntry, error)
	ListHabitEntries(ctx context.Context, habitID uuid.UUID) ([]model.HabitEntry, error)
	ListAllHabitEntries(ctx context.Context) ([]model.HabitEntry, error)
}

// Tracker applies habit completion transitions as per-day upserts.
type Tracker struct {
	store HabitStore
	now   func() time.Time
	log   *slog.Logger
}

// NewTracker returns a tracker writing through st.
func NewTracker(st HabitStore, now func() time.Time, log *slog.Logger) *Tracker {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{store: st, now: now, log: log}
}

// AddHabit validates and stores h.
func (t *Tracker) AddHabit(ctx context.Context, h model.Habit) (model.Habit, error) {
	if h.Frequency == "" {
		h.Frequency = model.Daily
	}
	if err := h.Validate(); err != nil {
		return h, err
	}
	return t.store.InsertHabit(ctx, h)
}

// Apply performs a transition on the habit's entry for day and stores it.
func (t *Tracker) Apply(ctx context.Context, h model.Habit, a habit.Action, day time.Time) (model.HabitEntry, error) {
	prev, err := t.entry(ctx, h.ID, day)
	if err != nil {
		return model.HabitEntry{}, err
	}
	next, err := habit.Apply(h, prev, a, day)
	if err != nil {
		return next, err
	}
	return t.save(ctx, h, next)
}

// Toggle completes the habit for day, or resets it when already complete.
func (t *Tracker) Toggle(ctx context.Context, h model.Habit, day time.Time) (model.HabitEntry, error) {
	prev, err := t.entry(ctx, h.ID, day)
	if err != nil {
		return model.HabitEntry{}, err
	}
	next, err := habit.Toggle(h, prev, day)
	if err != nil {
		return next, err
	}
	return t.save(ctx, h, next)
}

func (t *Tracker) entry(ctx context.Context, habitID uuid.UUID, day time.Time) (*model.HabitEntry, error) {
	e, err := t.store.GetHabitEntry(ctx, habitID, day)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (t *Tracker) save(ctx context.Context, h model.Habit, e model.HabitEntry) (model.HabitEntry, error) {
	stored, err := t.store.UpsertHabitEntry(ctx, e)
	if err != nil {
		t.log.Error("habit entry write failed", "habit", h.Name, "error", err)
		return e, err
	}
	t.log.Info("habit updated", "habit", h.Name, "day", stored.Date.Format("2006-01-02"),
		"count", stored.Count, "state", habit.StateOf(h, &stored).String())
	return stored, nil
}

// Today returns each habit's status for today and the equal-weight progress.
func (t *Tracker) Today(ctx context.Context) ([]model.HabitStatus, float64, error) {
	habits, entries, err := t.load(ctx)
	if err != nil {
		return nil, 0, err
	}
	statuses := habit.Today(habits, entries, t.now())
	return statuses, habit.Progress(statuses), nil
}

// Summaries returns streaks and completion rates over the last days.
func (t *Tracker) Summaries(ctx context.Context, days int) ([]model.HabitSummary, error) {
	habits, entries, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	return habit.Summaries(habits, entries, days, t.now()), nil
}

// History returns one habit's entries within the last days, newest first,
// and its streak over the full history.
func (t *Tracker) History(ctx context.Context, h model.Habit, days int) ([]model.HabitEntry, model.Streak, error) {
	entries, err := t.store.ListHabitEntries(ctx, h.ID)
	if err != nil {
		return nil, model.Streak{}, err
	}
	now := t.now()
	return habit.EntriesInWindow(entries, days, now), habit.CalculateStreak(entries, now), nil
}

func (t *Tracker) load(ctx context.Context) ([]model.Habit, []model.HabitEntry, error) {
	habits, err := t.store.ListHabits(ctx)
	if err != nil {
		return nil, nil, err
	}
	entries, err := t.store.ListAllHabitEntries(ctx)
	if err != nil {
		return nil, nil, err
	}
	return habits, entries, nil
}
