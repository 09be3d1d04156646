// Package pipeline imports journal files into the record store.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/habitat/internal/habit"
	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/source"
	"github.com/theirongolddev/habitat/internal/store"
)

// Writer is the persistence an import writes through.
type Writer interface {
	InsertTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error)
	InsertBudget(ctx context.Context, b model.Budget) (model.Budget, error)
	InsertGoal(ctx context.Context, g model.Goal) (model.Goal, error)
	InsertWeight(ctx context.Context, w model.WeightEntry) (model.WeightEntry, error)
	InsertMeasurement(ctx context.Context, m model.BodyMeasurement) (model.BodyMeasurement, error)
	InsertExercise(ctx context.Context, e model.Exercise) (model.Exercise, error)
	InsertHabit(ctx context.Context, h model.Habit) (model.Habit, error)
	FindHabit(ctx context.Context, name string) (model.Habit, error)
	GetHabitEntry(ctx context.Context, habitID uuid.UUID, day time.Time) (model.HabitEntry, error)
	UpsertHabitEntry(ctx context.Context, e model.HabitEntry) (model.HabitEntry, error)
}

// Recomputer refreshes budget spend caches after the import's writes.
type Recomputer interface {
	RecomputeBudgets(ctx context.Context) ([]model.BudgetAlert, error)
}

// ProgressFunc is called after each file with the files processed so far.
type ProgressFunc func(current, total int)

// ImportResult holds the output of an import.
type ImportResult struct {
	TotalFiles  int
	ParsedFiles int
	FileErrors  int
	Lines       int
	Skipped     int
	ParseErrors int
	WriteErrors int
	Imported    map[string]int
	Alerts      []model.BudgetAlert
}

// Total returns the number of records written.
func (r *ImportResult) Total() int {
	n := 0
	for _, c := range r.Imported {
		n += c
	}
	return n
}

// Importer writes parsed journal records in file order, then runs a single
// budget recompute pass.
type Importer struct {
	w      Writer
	rc     Recomputer
	loc    *time.Location
	log    *slog.Logger
	habits map[string]model.Habit
}

// NewImporter returns an importer. Journal dates are read in loc.
func NewImporter(w Writer, rc Recomputer, loc *time.Location, log *slog.Logger) *Importer {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = slog.Default()
	}
	return &Importer{w: w, rc: rc, loc: loc, log: log, habits: make(map[string]model.Habit)}
}

// Import reads the journal files at path, a file or a directory.
func (im *Importer) Import(ctx context.Context, path string, progressFn ProgressFunc) (*ImportResult, error) {
	files, err := source.ScanPath(path)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}

	result := &ImportResult{TotalFiles: len(files), Imported: make(map[string]int)}

	var cancelErr error
files:
	for i, f := range files {
		pr := source.ParseFile(f, im.loc)
		if pr.Err != nil {
			result.FileErrors++
			im.log.Warn("journal unreadable", "file", f, "error", pr.Err)
		} else {
			result.ParsedFiles++
			result.Lines += pr.Lines
			result.Skipped += pr.Skipped
			result.ParseErrors += pr.ParseErrors

			for _, rec := range pr.Records {
				if err := ctx.Err(); err != nil {
					cancelErr = err
					break files
				}
				if err := im.write(ctx, rec); err != nil {
					result.WriteErrors++
					im.log.Warn("journal record not imported", "file", f, "line", rec.Line, "kind", rec.Kind, "error", err)
					continue
				}
				result.Imported[rec.Kind]++
			}
		}
		if progressFn != nil {
			progressFn(i+1, len(files))
		}
	}

	// Records already written still need their recompute pass when the
	// import is cancelled part way.
	if result.Total() > 0 && im.rc != nil {
		alerts, err := im.rc.RecomputeBudgets(context.WithoutCancel(ctx))
		if err != nil {
			return result, fmt.Errorf("recomputing budgets: %w", err)
		}
		result.Alerts = alerts
	}
	if cancelErr != nil {
		im.log.Warn("import cancelled", "records", result.Total())
		return result, cancelErr
	}

	im.log.Info("import finished", "files", result.ParsedFiles, "records", result.Total(),
		"parse_errors", result.ParseErrors, "write_errors", result.WriteErrors)
	return result, nil
}

func (im *Importer) write(ctx context.Context, rec source.Record) error {
	var err error
	switch {
	case rec.Transaction != nil:
		_, err = im.w.InsertTransaction(ctx, *rec.Transaction)
	case rec.Budget != nil:
		_, err = im.w.InsertBudget(ctx, *rec.Budget)
	case rec.Goal != nil:
		_, err = im.w.InsertGoal(ctx, *rec.Goal)
	case rec.Weight != nil:
		_, err = im.w.InsertWeight(ctx, *rec.Weight)
	case rec.Measurement != nil:
		_, err = im.w.InsertMeasurement(ctx, *rec.Measurement)
	case rec.Exercise != nil:
		_, err = im.w.InsertExercise(ctx, *rec.Exercise)
	case rec.Habit != nil:
		var h model.Habit
		h, err = im.w.InsertHabit(ctx, *rec.Habit)
		if err == nil {
			im.habits[strings.ToLower(h.Name)] = h
		}
	case rec.HabitEntry != nil:
		err = im.writeHabitEntry(ctx, *rec.HabitEntry)
	default:
		err = fmt.Errorf("empty record")
	}
	return err
}

func (im *Importer) writeHabitEntry(ctx context.Context, r source.HabitEntryRecord) error {
	h, err := im.habit(ctx, r.Habit)
	if err != nil {
		return err
	}

	var prev *model.HabitEntry
	e, err := im.w.GetHabitEntry(ctx, h.ID, r.Date)
	switch {
	case err == nil:
		prev = &e
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	action := habit.Action{Kind: habit.Complete}
	switch {
	case r.Count != nil:
		action = habit.Action{Kind: habit.SetCount, Count: *r.Count}
	case r.Completed != nil && !*r.Completed:
		action = habit.Action{Kind: habit.Reset}
	}

	next, err := habit.Apply(h, prev, action, r.Date)
	if err != nil {
		return err
	}
	_, err = im.w.UpsertHabitEntry(ctx, next)
	return err
}

func (im *Importer) habit(ctx context.Context, name string) (model.Habit, error) {
	key := strings.ToLower(name)
	if h, ok := im.habits[key]; ok {
		return h, nil
	}
	h, err := im.w.FindHabit(ctx, name)
	if err != nil {
		return h, fmt.Errorf("habit %q: %w", name, err)
	}
	im.habits[key] = h
	return h, nil
}
