package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/habitat/internal/model"
)

type habitRow struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Category    string    `db:"category"`
	Frequency   string    `db:"frequency"`
	TargetCount int       `db:"target_count"`
	Color       string    `db:"color"`
	Icon        string    `db:"icon"`
	CreatedAt   string    `db:"created_at"`
}

func (r habitRow) model() model.Habit {
	return model.Habit{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Frequency:   model.Frequency(r.Frequency),
		TargetCount: r.TargetCount,
		Color:       r.Color,
		Icon:        r.Icon,
		CreatedAt:   parseStamp(r.CreatedAt),
	}
}

// InsertHabit stores a new habit. Names are unique.
func (s *Store) InsertHabit(ctx context.Context, h model.Habit) (model.Habit, error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.Frequency == "" {
		h.Frequency = model.Daily
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO habits
		(id, name, category, frequency, target_count, color, icon, created_at)
		VALUES (:id, :name, :category, :frequency, :target_count, :color, :icon, :created_at)`,
		habitRow{
			ID: h.ID, Name: h.Name, Category: h.Category, Frequency: string(h.Frequency),
			TargetCount: h.TargetCount, Color: h.Color, Icon: h.Icon, CreatedAt: stamp(h.CreatedAt),
		})
	if err != nil {
		return h, fmt.Errorf("inserting habit: %w", err)
	}
	return h, nil
}

// GetHabit looks up a habit by ID.
func (s *Store) GetHabit(ctx context.Context, id uuid.UUID) (model.Habit, error) {
	return s.getHabit(ctx, "SELECT * FROM habits WHERE id = ?", id)
}

// FindHabit looks up a habit by name.
func (s *Store) FindHabit(ctx context.Context, name string) (model.Habit, error) {
	return s.getHabit(ctx, "SELECT * FROM habits WHERE name = ? COLLATE NOCASE", name)
}

func (s *Store) getHabit(ctx context.Context, query string, arg any) (model.Habit, error) {
	var row habitRow
	err := s.db.GetContext(ctx, &row, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Habit{}, ErrNotFound
	}
	if err != nil {
		return model.Habit{}, fmt.Errorf("reading habit: %w", err)
	}
	return row.model(), nil
}

// ListHabits returns every habit in creation order.
func (s *Store) ListHabits(ctx context.Context) ([]model.Habit, error) {
	var rows []habitRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM habits ORDER BY created_at, name"); err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}
	out := make([]model.Habit, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

// DeleteHabit removes a habit and its entries.
func (s *Store) DeleteHabit(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting habit: %w", err)
	}
	return rowsAffected(res)
}

type habitEntryRow struct {
	ID        uuid.UUID `db:"id"`
	HabitID   uuid.UUID `db:"habit_id"`
	Day       string    `db:"day"`
	Completed bool      `db:"completed"`
	Count     int       `db:"count"`
	UpdatedAt string    `db:"updated_at"`
}

func (r habitEntryRow) model() model.HabitEntry {
	return model.HabitEntry{
		ID:        r.ID,
		HabitID:   r.HabitID,
		Date:      parseDay(r.Day),
		Completed: r.Completed,
		Count:     r.Count,
	}
}

// UpsertHabitEntry writes the entry for (HabitID, Date), replacing any
// existing row for that day, and returns the stored entry.
func (s *Store) UpsertHabitEntry(ctx context.Context, e model.HabitEntry) (model.HabitEntry, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO habit_entries
		(id, habit_id, day, completed, count, updated_at)
		VALUES (:id, :habit_id, :day, :completed, :count, :updated_at)
		ON CONFLICT (habit_id, day) DO UPDATE SET
			completed = excluded.completed,
			count = excluded.count,
			updated_at = excluded.updated_at`,
		habitEntryRow{
			ID: e.ID, HabitID: e.HabitID, Day: dayString(e.Date),
			Completed: e.Completed, Count: e.Count, UpdatedAt: stamp(time.Now()),
		})
	if err != nil {
		return e, fmt.Errorf("upserting habit entry: %w", err)
	}
	return s.GetHabitEntry(ctx, e.HabitID, e.Date)
}

// GetHabitEntry returns the entry for a habit on a day.
func (s *Store) GetHabitEntry(ctx context.Context, habitID uuid.UUID, day time.Time) (model.HabitEntry, error) {
	var row habitEntryRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM habit_entries WHERE habit_id = ? AND day = ?", habitID, dayString(day))
	if errors.Is(err, sql.ErrNoRows) {
		return model.HabitEntry{}, ErrNotFound
	}
	if err != nil {
		return model.HabitEntry{}, fmt.Errorf("reading habit entry: %w", err)
	}
	return row.model(), nil
}

// ListHabitEntries returns a habit's entries, newest first.
func (s *Store) ListHabitEntries(ctx context.Context, habitID uuid.UUID) ([]model.HabitEntry, error) {
	return s.listEntries(ctx, "SELECT * FROM habit_entries WHERE habit_id = ? ORDER BY day DESC", habitID)
}

// ListAllHabitEntries returns every habit entry, newest first.
func (s *Store) ListAllHabitEntries(ctx context.Context) ([]model.HabitEntry, error) {
	return s.listEntries(ctx, "SELECT * FROM habit_entries ORDER BY day DESC")
}

func (s *Store) listEntries(ctx context.Context, query string, args ...any) ([]model.HabitEntry, error) {
	var rows []habitEntryRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing habit entries: %w", err)
	}
	out := make([]model.HabitEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}
