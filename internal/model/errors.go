package model

import "errors"

// Validation errors returned by the Validate methods.
var (
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrInvalidType     = errors.New("transaction type must be income or expense")
	ErrInvalidDate     = errors.New("date is required")
	ErrEmptyCategory   = errors.New("category is required")
	ErrEmptyName       = errors.New("name is required")
	ErrInvalidPeriod   = errors.New("period must be monthly or weekly")
	ErrInvalidTarget   = errors.New("target count must be at least 1")
	ErrInvalidCount    = errors.New("count must not be negative")
	ErrInvalidWeight   = errors.New("weight must be greater than zero")
	ErrInvalidGender   = errors.New("gender must be male or female")
	ErrInvalidUnit     = errors.New("unit system must be metric or imperial")
	ErrInvalidActivity = errors.New("unknown activity level")
	ErrInvalidMeasure  = errors.New("measurements must be positive")
	ErrInvalidExercise = errors.New("unknown exercise kind")
)
