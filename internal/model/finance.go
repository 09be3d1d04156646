// Package model defines the records and derived results shared by the
// finance, health and habit calculations.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType partitions transactions for every aggregation.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Period is the window designator of a budget.
type Period string

const (
	Monthly Period = "monthly"
	Weekly  Period = "weekly"
)

// Valid reports whether p names a known period.
func (p Period) Valid() bool {
	return p == Monthly || p == Weekly
}

// Transaction is a single income or expense record.
type Transaction struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Category    string
	Type        TransactionType
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the invariants a transaction must hold before it is stored.
func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if t.Type != Income && t.Type != Expense {
		return ErrInvalidType
	}
	if t.Category == "" {
		return ErrEmptyCategory
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Budget caps expense spending in one category per period.
// Spent is a cache derived from transactions and must be recomputed after
// every transaction or budget write.
type Budget struct {
	ID        uuid.UUID
	Category  string
	Amount    decimal.Decimal
	Period    Period
	Spent     decimal.Decimal
	StartDate time.Time
}

// Validate checks the invariants a budget must hold before it is stored.
func (b Budget) Validate() error {
	if b.Category == "" {
		return ErrEmptyCategory
	}
	if !b.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !b.Period.Valid() {
		return ErrInvalidPeriod
	}
	return nil
}

// Goal is a savings target adjusted by signed contributions.
type Goal struct {
	ID            uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
}

// Validate checks the invariants a goal must hold before it is stored.
func (g Goal) Validate() error {
	if g.Name == "" {
		return ErrEmptyName
	}
	if !g.TargetAmount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// MonthlyBalance holds income and expense totals for one calendar month.
type MonthlyBalance struct {
	Month    time.Time
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// CategorySpend is one row of a category spending breakdown.
type CategorySpend struct {
	Category string
	Amount   decimal.Decimal
	Share    float64 // percent of total spend in the window
}

// BudgetProgress is the display view of a budget's consumption.
type BudgetProgress struct {
	Spent      decimal.Decimal
	Percentage float64 // clamped to 100
	Remaining  decimal.Decimal
}

// BudgetAlert reports that a recompute pushed spend across a threshold.
type BudgetAlert struct {
	BudgetID   uuid.UUID
	Category   string
	Threshold  float64
	Percentage float64 // unclamped
	Spent      decimal.Decimal
	Amount     decimal.Decimal
}

// GoalProgress is the display view of a goal.
type GoalProgress struct {
	Percentage float64 // clamped to 100
	Remaining  decimal.Decimal
	DaysLeft   int
	Overdue    bool
	Achieved   bool
}
