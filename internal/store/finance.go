package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/habitat/internal/model"
)

type transactionRow struct {
	ID          uuid.UUID       `db:"id"`
	Amount      decimal.Decimal `db:"amount"`
	Category    string          `db:"category"`
	Type        string          `db:"type"`
	Day         string          `db:"day"`
	Description string          `db:"description"`
	CreatedAt   string          `db:"created_at"`
	UpdatedAt   string          `db:"updated_at"`
}

func (r transactionRow) model() model.Transaction {
	return model.Transaction{
		ID:          r.ID,
		Amount:      r.Amount,
		Category:    r.Category,
		Type:        model.TransactionType(r.Type),
		Date:        parseDay(r.Day),
		Description: r.Description,
		CreatedAt:   parseStamp(r.CreatedAt),
		UpdatedAt:   parseStamp(r.UpdatedAt),
	}
}

func toTransactionRow(t model.Transaction) transactionRow {
	return transactionRow{
		ID:          t.ID,
		Amount:      t.Amount,
		Category:    t.Category,
		Type:        string(t.Type),
		Day:         dayString(t.Date),
		Description: t.Description,
		CreatedAt:   stamp(t.CreatedAt),
		UpdatedAt:   stamp(t.UpdatedAt),
	}
}

// InsertTransaction stores a new transaction, assigning an ID and timestamps
// when they are unset.
func (s *Store) InsertTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	_, err := s.db.NamedExecContext(ctx, `INSERT INTO transactions
		(id, amount, category, type, day, description, created_at, updated_at)
		VALUES (:id, :amount, :category, :type, :day, :description, :created_at, :updated_at)`,
		toTransactionRow(t))
	if err != nil {
		return t, fmt.Errorf("inserting transaction: %w", err)
	}
	return t, nil
}

// UpdateTransaction replaces the stored fields of an existing transaction.
func (s *Store) UpdateTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	t.UpdatedAt = time.Now()
	res, err := s.db.NamedExecContext(ctx, `UPDATE transactions SET
		amount = :amount, category = :category, type = :type, day = :day,
		description = :description, updated_at = :updated_at
		WHERE id = :id`, toTransactionRow(t))
	if err != nil {
		return t, fmt.Errorf("updating transaction: %w", err)
	}
	return t, rowsAffected(res)
}

// DeleteTransaction removes a transaction by ID.
func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return rowsAffected(res)
}

// GetTransaction looks up a transaction by ID.
func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (model.Transaction, error) {
	var row transactionRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM transactions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, ErrNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("reading transaction: %w", err)
	}
	return row.model(), nil
}

// ListTransactions returns every transaction, newest first.
func (s *Store) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	var rows []transactionRow
	if err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM transactions ORDER BY day DESC, created_at DESC"); err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	out := make([]model.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

type budgetRow struct {
	ID        uuid.UUID       `db:"id"`
	Category  string          `db:"category"`
	Amount    decimal.Decimal `db:"amount"`
	Period    string          `db:"period"`
	Spent     decimal.Decimal `db:"spent"`
	StartDate string          `db:"start_date"`
	CreatedAt string          `db:"created_at"`
}

func (r budgetRow) model() model.Budget {
	return model.Budget{
		ID:        r.ID,
		Category:  r.Category,
		Amount:    r.Amount,
		Period:    model.Period(r.Period),
		Spent:     r.Spent,
		StartDate: parseDay(r.StartDate),
	}
}

// InsertBudget stores a new budget. Spent is written as given; callers
// recompute it afterwards.
func (s *Store) InsertBudget(ctx context.Context, b model.Budget) (model.Budget, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.StartDate.IsZero() {
		b.StartDate = time.Now()
	}
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO budgets
		(id, category, amount, period, spent, start_date, created_at)
		VALUES (:id, :category, :amount, :period, :spent, :start_date, :created_at)`,
		budgetRow{
			ID:        b.ID,
			Category:  b.Category,
			Amount:    b.Amount,
			Period:    string(b.Period),
			Spent:     b.Spent,
			StartDate: dayString(b.StartDate),
			CreatedAt: stamp(time.Now()),
		})
	if err != nil {
		return b, fmt.Errorf("inserting budget: %w", err)
	}
	return b, nil
}

// UpdateBudget replaces a budget's category, amount and period.
func (s *Store) UpdateBudget(ctx context.Context, b model.Budget) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE budgets SET category = ?, amount = ?, period = ? WHERE id = ?",
		b.Category, b.Amount, string(b.Period), b.ID)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}
	return rowsAffected(res)
}

// SetBudgetSpent writes the recomputed spend cache of a budget.
func (s *Store) SetBudgetSpent(ctx context.Context, id uuid.UUID, spent decimal.Decimal) error {
	res, err := s.db.ExecContext(ctx, "UPDATE budgets SET spent = ? WHERE id = ?", spent, id)
	if err != nil {
		return fmt.Errorf("updating budget spend: %w", err)
	}
	return rowsAffected(res)
}

// DeleteBudget removes a budget by ID.
func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}
	return rowsAffected(res)
}

// ListBudgets returns every budget in creation order.
func (s *Store) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	var rows []budgetRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM budgets ORDER BY created_at, category"); err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	out := make([]model.Budget, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

type goalRow struct {
	ID            uuid.UUID       `db:"id"`
	Name          string          `db:"name"`
	TargetAmount  decimal.Decimal `db:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	Deadline      sql.NullString  `db:"deadline"`
	CreatedAt     string          `db:"created_at"`
}

func (r goalRow) model() model.Goal {
	g := model.Goal{
		ID:            r.ID,
		Name:          r.Name,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
	}
	if r.Deadline.Valid {
		d := parseDay(r.Deadline.String)
		g.Deadline = &d
	}
	return g
}

// InsertGoal stores a new savings goal.
func (s *Store) InsertGoal(ctx context.Context, g model.Goal) (model.Goal, error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	row := goalRow{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		CreatedAt:     stamp(time.Now()),
	}
	if g.Deadline != nil {
		row.Deadline = sql.NullString{String: dayString(*g.Deadline), Valid: true}
	}
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO goals
		(id, name, target_amount, current_amount, deadline, created_at)
		VALUES (:id, :name, :target_amount, :current_amount, :deadline, :created_at)`, row)
	if err != nil {
		return g, fmt.Errorf("inserting goal: %w", err)
	}
	return g, nil
}

// GetGoal looks up a goal by ID.
func (s *Store) GetGoal(ctx context.Context, id uuid.UUID) (model.Goal, error) {
	var row goalRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM goals WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Goal{}, ErrNotFound
	}
	if err != nil {
		return model.Goal{}, fmt.Errorf("reading goal: %w", err)
	}
	return row.model(), nil
}

// FindGoal looks up a goal by exact name.
func (s *Store) FindGoal(ctx context.Context, name string) (model.Goal, error) {
	var row goalRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM goals WHERE name = ? ORDER BY created_at LIMIT 1", name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Goal{}, ErrNotFound
	}
	if err != nil {
		return model.Goal{}, fmt.Errorf("reading goal: %w", err)
	}
	return row.model(), nil
}

// SetGoalAmount writes a goal's current amount.
func (s *Store) SetGoalAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	res, err := s.db.ExecContext(ctx, "UPDATE goals SET current_amount = ? WHERE id = ?", amount, id)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	return rowsAffected(res)
}

// ListGoals returns every goal in creation order.
func (s *Store) ListGoals(ctx context.Context) ([]model.Goal, error) {
	var rows []goalRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM goals ORDER BY created_at, name"); err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	out := make([]model.Goal, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}
