package source

import (
	"github.com/shopspring/decimal"

	"github.com/goccy/go-json"
)

// Record kinds accepted in a journal file.
const (
	KindTransaction = "transaction"
	KindBudget      = "budget"
	KindGoal        = "goal"
	KindWeight      = "weight"
	KindMeasurement = "measurement"
	KindExercise    = "exercise"
	KindHabit       = "habit"
	KindHabitEntry  = "habit_entry"
)

// RawTransaction is a journal line of kind "transaction".
// Amounts may be JSON numbers or strings.
type RawTransaction struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
}

// RawBudget is a journal line of kind "budget".
type RawBudget struct {
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    string          `json:"period"`
	StartDate string          `json:"start_date,omitempty"`
}

// RawGoal is a journal line of kind "goal".
type RawGoal struct {
	Name     string          `json:"name"`
	Target   decimal.Decimal `json:"target"`
	Current  decimal.Decimal `json:"current"`
	Deadline string          `json:"deadline,omitempty"`
}

// RawWeight is a journal line of kind "weight". Weight is in kilograms.
type RawWeight struct {
	Weight float64 `json:"weight"`
	Date   string  `json:"date"`
	Notes  string  `json:"notes,omitempty"`
}

// RawMeasurement is a journal line of kind "measurement". Values are in centimeters.
type RawMeasurement struct {
	Date   string   `json:"date"`
	Height *float64 `json:"height,omitempty"`
	Waist  *float64 `json:"waist,omitempty"`
	Chest  *float64 `json:"chest,omitempty"`
	Hip    *float64 `json:"hip,omitempty"`
	Neck   *float64 `json:"neck,omitempty"`
	Bicep  *float64 `json:"bicep,omitempty"`
	Thigh  *float64 `json:"thigh,omitempty"`
}

// RawExercise is a journal line of kind "exercise". Details are kept raw and
// resolved against Type once.
type RawExercise struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Date    string          `json:"date"`
	Details json.RawMessage `json:"details"`
}

// RawHabit is a journal line of kind "habit".
type RawHabit struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Target   int    `json:"target"`
	Color    string `json:"color,omitempty"`
	Icon     string `json:"icon,omitempty"`
}

// RawHabitEntry is a journal line of kind "habit_entry", referencing its
// habit by name.
type RawHabitEntry struct {
	Habit string `json:"habit"`
	Date  string `json:"date"`
	Count *int   `json:"count,omitempty"`
	Done  *bool  `json:"completed,omitempty"`
}
