package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/habitat/internal/model"
)

type weightRow struct {
	ID        uuid.UUID `db:"id"`
	WeightKg  float64   `db:"weight_kg"`
	Day       string    `db:"day"`
	Notes     string    `db:"notes"`
	CreatedAt string    `db:"created_at"`
}

// InsertWeight stores a weigh-in.
func (s *Store) InsertWeight(ctx context.Context, w model.WeightEntry) (model.WeightEntry, error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO weight_entries (id, weight_kg, day, notes, created_at)
		VALUES (:id, :weight_kg, :day, :notes, :created_at)`,
		weightRow{ID: w.ID, WeightKg: w.Weight, Day: dayString(w.Date), Notes: w.Notes, CreatedAt: stamp(time.Now())})
	if err != nil {
		return w, fmt.Errorf("inserting weight: %w", err)
	}
	return w, nil
}

// ListWeights returns every weigh-in, newest first.
func (s *Store) ListWeights(ctx context.Context) ([]model.WeightEntry, error) {
	var rows []weightRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM weight_entries ORDER BY day DESC, created_at DESC"); err != nil {
		return nil, fmt.Errorf("listing weights: %w", err)
	}
	out := make([]model.WeightEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.WeightEntry{ID: r.ID, Weight: r.WeightKg, Date: parseDay(r.Day), Notes: r.Notes})
	}
	return out, nil
}

type measurementRow struct {
	ID        uuid.UUID `db:"id"`
	Day       string    `db:"day"`
	Height    *float64  `db:"height_cm"`
	Waist     *float64  `db:"waist_cm"`
	Chest     *float64  `db:"chest_cm"`
	Hip       *float64  `db:"hip_cm"`
	Neck      *float64  `db:"neck_cm"`
	Bicep     *float64  `db:"bicep_cm"`
	Thigh     *float64  `db:"thigh_cm"`
	CreatedAt string    `db:"created_at"`
}

// InsertMeasurement stores a set of body measurements in centimeters.
func (s *Store) InsertMeasurement(ctx context.Context, m model.BodyMeasurement) (model.BodyMeasurement, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	mm := m.Measurements
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO body_measurements
		(id, day, height_cm, waist_cm, chest_cm, hip_cm, neck_cm, bicep_cm, thigh_cm, created_at)
		VALUES (:id, :day, :height_cm, :waist_cm, :chest_cm, :hip_cm, :neck_cm, :bicep_cm, :thigh_cm, :created_at)`,
		measurementRow{
			ID: m.ID, Day: dayString(m.Date),
			Height: mm.Height, Waist: mm.Waist, Chest: mm.Chest, Hip: mm.Hip,
			Neck: mm.Neck, Bicep: mm.Bicep, Thigh: mm.Thigh,
			CreatedAt: stamp(time.Now()),
		})
	if err != nil {
		return m, fmt.Errorf("inserting measurement: %w", err)
	}
	return m, nil
}

// ListMeasurements returns every measurement set, newest first.
func (s *Store) ListMeasurements(ctx context.Context) ([]model.BodyMeasurement, error) {
	var rows []measurementRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM body_measurements ORDER BY day DESC, created_at DESC"); err != nil {
		return nil, fmt.Errorf("listing measurements: %w", err)
	}
	out := make([]model.BodyMeasurement, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.BodyMeasurement{
			ID:   r.ID,
			Date: parseDay(r.Day),
			Measurements: model.Measurements{
				Height: r.Height, Waist: r.Waist, Chest: r.Chest, Hip: r.Hip,
				Neck: r.Neck, Bicep: r.Bicep, Thigh: r.Thigh,
			},
		})
	}
	return out, nil
}

type exerciseRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Kind      string    `db:"kind"`
	Day       string    `db:"day"`
	Details   string    `db:"details"`
	CreatedAt string    `db:"created_at"`
}

// InsertExercise stores a workout with its details encoded as JSON.
func (s *Store) InsertExercise(ctx context.Context, e model.Exercise) (model.Exercise, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	details, err := model.EncodeExerciseDetails(e.Details)
	if err != nil {
		return e, fmt.Errorf("encoding exercise details: %w", err)
	}
	_, err = s.db.NamedExecContext(ctx, `INSERT INTO exercises (id, name, kind, day, details, created_at)
		VALUES (:id, :name, :kind, :day, :details, :created_at)`,
		exerciseRow{ID: e.ID, Name: e.Name, Kind: string(e.Kind()), Day: dayString(e.Date), Details: string(details), CreatedAt: stamp(time.Now())})
	if err != nil {
		return e, fmt.Errorf("inserting exercise: %w", err)
	}
	return e, nil
}

// ListExercises returns every workout, newest first. Rows whose details
// cannot be decoded are skipped and counted.
func (s *Store) ListExercises(ctx context.Context) ([]model.Exercise, int, error) {
	var rows []exerciseRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM exercises ORDER BY day DESC, created_at DESC"); err != nil {
		return nil, 0, fmt.Errorf("listing exercises: %w", err)
	}
	out := make([]model.Exercise, 0, len(rows))
	skipped := 0
	for _, r := range rows {
		details, err := model.DecodeExerciseDetails(model.ExerciseKind(r.Kind), r.Name, []byte(r.Details))
		if err != nil {
			skipped++
			continue
		}
		out = append(out, model.Exercise{ID: r.ID, Name: r.Name, Date: parseDay(r.Day), Details: details})
	}
	return out, skipped, nil
}
