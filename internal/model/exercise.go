package model

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ExerciseKind tags the details variant of an exercise.
type ExerciseKind string

const (
	Cardio   ExerciseKind = "cardio"
	Strength ExerciseKind = "strength"
)

// Exercise is one logged workout.
type Exercise struct {
	ID      uuid.UUID
	Name    string
	Date    time.Time
	Details ExerciseDetails
}

// Kind returns the variant of the exercise details.
func (e Exercise) Kind() ExerciseKind {
	if e.Details == nil {
		return ""
	}
	return e.Details.Kind()
}

// Validate checks the invariants an exercise must hold before it is stored.
func (e Exercise) Validate() error {
	if e.Name == "" {
		return ErrEmptyName
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if e.Details == nil {
		return ErrInvalidExercise
	}
	return nil
}

// ExerciseDetails is either CardioDetails or StrengthDetails.
type ExerciseDetails interface {
	Kind() ExerciseKind
}

// CardioDetails describes a timed session.
type CardioDetails struct {
	DurationMin float64  `json:"duration"`
	DistanceKm  *float64 `json:"distance,omitempty"`
	Calories    *float64 `json:"calories,omitempty"`
}

// Kind implements ExerciseDetails.
func (CardioDetails) Kind() ExerciseKind { return Cardio }

// StrengthDetails lists lifts performed in a session.
type StrengthDetails struct {
	Exercises []StrengthExercise `json:"exercises"`
}

// Kind implements ExerciseDetails.
func (StrengthDetails) Kind() ExerciseKind { return Strength }

// StrengthExercise is one movement and its sets.
type StrengthExercise struct {
	Name string        `json:"name"`
	Sets []StrengthSet `json:"sets"`
}

// StrengthSet is one set of a movement.
type StrengthSet struct {
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weight"`
}

// Volume returns the sum of reps times weight across all sets.
func (s StrengthDetails) Volume() float64 {
	var v float64
	for _, ex := range s.Exercises {
		for _, set := range ex.Sets {
			v += float64(set.Reps) * set.WeightKg
		}
	}
	return v
}

// SetCount returns the number of sets across all movements.
func (s StrengthDetails) SetCount() int {
	n := 0
	for _, ex := range s.Exercises {
		n += len(ex.Sets)
	}
	return n
}

// EncodeExerciseDetails serializes details in the current shape.
func EncodeExerciseDetails(d ExerciseDetails) ([]byte, error) {
	switch v := d.(type) {
	case CardioDetails, StrengthDetails:
		return json.Marshal(v)
	case *CardioDetails:
		return json.Marshal(*v)
	case *StrengthDetails:
		return json.Marshal(*v)
	default:
		return nil, ErrInvalidExercise
	}
}

// strengthPayload accepts both the current {"exercises": [...]} shape and the
// older shapes that stored a single movement's sets at the top level, either
// as an array or as flat sets/reps/weight numbers.
type strengthPayload struct {
	Exercises []StrengthExercise `json:"exercises"`
	Sets      json.RawMessage    `json:"sets"`
	Reps      int                `json:"reps"`
	Weight    float64            `json:"weight"`
}

// DecodeExerciseDetails resolves stored details into the typed variant for kind.
// name labels the movement when a legacy strength payload has none.
func DecodeExerciseDetails(kind ExerciseKind, name string, raw []byte) (ExerciseDetails, error) {
	raw = bytes.TrimSpace(raw)
	switch kind {
	case Cardio:
		var c CardioDetails
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &c); err != nil {
				return nil, fmt.Errorf("decoding cardio details: %w", err)
			}
		}
		return c, nil
	case Strength:
		return decodeStrength(name, raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidExercise, kind)
	}
}

func decodeStrength(name string, raw []byte) (StrengthDetails, error) {
	if len(raw) == 0 {
		return StrengthDetails{}, nil
	}

	// Bare array of sets.
	if raw[0] == '[' {
		var sets []StrengthSet
		if err := json.Unmarshal(raw, &sets); err != nil {
			return StrengthDetails{}, fmt.Errorf("decoding strength sets: %w", err)
		}
		return StrengthDetails{Exercises: []StrengthExercise{{Name: name, Sets: sets}}}, nil
	}

	var p strengthPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return StrengthDetails{}, fmt.Errorf("decoding strength details: %w", err)
	}
	if len(p.Exercises) > 0 {
		return StrengthDetails{Exercises: p.Exercises}, nil
	}

	sets := bytes.TrimSpace(p.Sets)
	if len(sets) == 0 {
		return StrengthDetails{}, nil
	}
	if sets[0] == '[' {
		var list []StrengthSet
		if err := json.Unmarshal(sets, &list); err != nil {
			return StrengthDetails{}, fmt.Errorf("decoding strength sets: %w", err)
		}
		return StrengthDetails{Exercises: []StrengthExercise{{Name: name, Sets: list}}}, nil
	}

	var n int
	if err := json.Unmarshal(sets, &n); err != nil {
		return StrengthDetails{}, fmt.Errorf("decoding strength set count: %w", err)
	}
	list := make([]StrengthSet, n)
	for i := range list {
		list[i] = StrengthSet{Reps: p.Reps, WeightKg: p.Weight}
	}
	return StrengthDetails{Exercises: []StrengthExercise{{Name: name, Sets: list}}}, nil
}
