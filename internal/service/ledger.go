// Package service owns every write path. Finance writes are followed by a
// sequential recompute of all budget spend caches before they return.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/habitat/internal/finance"
	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
)

// FinanceStore is the persistence the ledger writes through.
type FinanceStore interface {
	InsertTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error)
	UpdateTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	GetTransaction(ctx context.Context, id uuid.UUID) (model.Transaction, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)

	InsertBudget(ctx context.Context, b model.Budget) (model.Budget, error)
	UpdateBudget(ctx context.Context, b model.Budget) error
	DeleteBudget(ctx context.Context, id uuid.UUID) error
	SetBudgetSpent(ctx context.Context, id uuid.UUID, spent decimal.Decimal) error
	ListBudgets(ctx context.Context) ([]model.Budget, error)

	InsertGoal(ctx context.Context, g model.Goal) (model.Goal, error)
	GetGoal(ctx context.Context, id uuid.UUID) (model.Goal, error)
	SetGoalAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}

// LedgerOptions configures budget period resolution and alerting.
type LedgerOptions struct {
	Calendar   period.Calendar
	Thresholds []float64
	Now        func() time.Time
	Logger     *slog.Logger
}

// Ledger applies finance writes and keeps budget spend caches current.
type Ledger struct {
	store      FinanceStore
	cal        period.Calendar
	thresholds []float64
	now        func() time.Time
	log        *slog.Logger
}

// NewLedger returns a ledger writing through st.
func NewLedger(st FinanceStore, opts LedgerOptions) *Ledger {
	l := &Ledger{
		store:      st,
		cal:        opts.Calendar,
		thresholds: opts.Thresholds,
		now:        opts.Now,
		log:        opts.Logger,
	}
	if l.thresholds == nil {
		l.thresholds = finance.DefaultThresholds
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.log == nil {
		l.log = slog.Default()
	}
	return l
}

// AddTransaction validates and stores t, then recomputes budgets.
func (l *Ledger) AddTransaction(ctx context.Context, t model.Transaction) (model.Transaction, []model.BudgetAlert, error) {
	if err := t.Validate(); err != nil {
		return t, nil, err
	}
	t.Date = period.StartOfDay(t.Date)
	t, err := l.store.InsertTransaction(ctx, t)
	if err != nil {
		return t, nil, err
	}
	l.log.Info("transaction saved", "id", t.ID, "type", t.Type, "category", t.Category, "amount", t.Amount.String())

	alerts, err := l.RecomputeBudgets(ctx)
	return t, alerts, err
}

// UpdateTransaction validates and replaces t, then recomputes budgets.
func (l *Ledger) UpdateTransaction(ctx context.Context, t model.Transaction) ([]model.BudgetAlert, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.Date = period.StartOfDay(t.Date)
	if _, err := l.store.UpdateTransaction(ctx, t); err != nil {
		return nil, err
	}
	l.log.Info("transaction updated", "id", t.ID)
	return l.RecomputeBudgets(ctx)
}

// DeleteTransaction removes a transaction, then recomputes budgets.
func (l *Ledger) DeleteTransaction(ctx context.Context, id uuid.UUID) ([]model.BudgetAlert, error) {
	if err := l.store.DeleteTransaction(ctx, id); err != nil {
		return nil, err
	}
	l.log.Info("transaction deleted", "id", id)
	return l.RecomputeBudgets(ctx)
}

// AddBudget validates and stores b, then recomputes budgets.
func (l *Ledger) AddBudget(ctx context.Context, b model.Budget) (model.Budget, []model.BudgetAlert, error) {
	if err := b.Validate(); err != nil {
		return b, nil, err
	}
	b.Spent = decimal.Zero
	b, err := l.store.InsertBudget(ctx, b)
	if err != nil {
		return b, nil, err
	}
	l.log.Info("budget saved", "id", b.ID, "category", b.Category, "period", b.Period)

	alerts, err := l.RecomputeBudgets(ctx)
	return b, alerts, err
}

// UpdateBudget validates and replaces b, then recomputes budgets.
func (l *Ledger) UpdateBudget(ctx context.Context, b model.Budget) ([]model.BudgetAlert, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := l.store.UpdateBudget(ctx, b); err != nil {
		return nil, err
	}
	return l.RecomputeBudgets(ctx)
}

// DeleteBudget removes a budget.
func (l *Ledger) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return l.store.DeleteBudget(ctx, id)
}

// RecomputeBudgets rewrites every budget's spend cache, one budget at a time,
// and returns the thresholds crossed by the new values.
func (l *Ledger) RecomputeBudgets(ctx context.Context) ([]model.BudgetAlert, error) {
	budgets, err := l.store.ListBudgets(ctx)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return nil, nil
	}
	txns, err := l.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	now := l.now()
	var alerts []model.BudgetAlert
	for _, b := range budgets {
		nb, alert, err := finance.RecomputeBudget(b, txns, l.cal, now, l.thresholds)
		if err != nil {
			l.log.Warn("budget skipped", "id", b.ID, "error", err)
			continue
		}
		if !nb.Spent.Equal(b.Spent) {
			if err := l.store.SetBudgetSpent(ctx, nb.ID, nb.Spent); err != nil {
				l.log.Error("budget recompute failed", "id", b.ID, "error", err)
				return alerts, fmt.Errorf("recomputing budget %s: %w", b.Category, err)
			}
			l.log.Debug("budget recomputed", "category", nb.Category, "spent", nb.Spent.String())
		}
		if alert != nil {
			l.log.Warn("budget threshold crossed",
				"category", alert.Category,
				"threshold", alert.Threshold,
				"percentage", alert.Percentage,
			)
			alerts = append(alerts, *alert)
		}
	}
	return alerts, nil
}

// Budgets recomputes every spend cache against the current period window and
// returns the refreshed budgets. Caches are otherwise only written on finance
// writes, so a week or month rollover would leave them holding the previous
// period's spend.
func (l *Ledger) Budgets(ctx context.Context) ([]model.Budget, []model.BudgetAlert, error) {
	alerts, err := l.RecomputeBudgets(ctx)
	if err != nil {
		return nil, alerts, err
	}
	budgets, err := l.store.ListBudgets(ctx)
	return budgets, alerts, err
}

// AddGoal validates and stores g.
func (l *Ledger) AddGoal(ctx context.Context, g model.Goal) (model.Goal, error) {
	if err := g.Validate(); err != nil {
		return g, err
	}
	if g.CurrentAmount.IsNegative() {
		return g, finance.ErrInsufficientFunds
	}
	return l.store.InsertGoal(ctx, g)
}

// Contribute applies a signed delta to a goal after rejecting withdrawals
// that would leave it negative.
func (l *Ledger) Contribute(ctx context.Context, goalID uuid.UUID, delta decimal.Decimal) (model.Goal, error) {
	g, err := l.store.GetGoal(ctx, goalID)
	if err != nil {
		return g, err
	}
	if err := finance.ValidateContribution(g, delta); err != nil {
		return g, err
	}
	g = finance.ApplyContribution(g, delta)
	if err := l.store.SetGoalAmount(ctx, g.ID, g.CurrentAmount); err != nil {
		return g, err
	}
	l.log.Info("goal contribution", "goal", g.Name, "delta", delta.String(), "current", g.CurrentAmount.String())
	return g, nil
}
