package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/habitat/internal/finance"
	"github.com/theirongolddev/habitat/internal/habit"
	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/store"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.Local)

func clock() time.Time { return fixedNow }

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "habitat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func expense(amount, category string, date time.Time) model.Transaction {
	return model.Transaction{Amount: dec(amount), Category: category, Type: model.Expense, Date: date}
}

func budgetSpent(t *testing.T, s *store.Store, category string) decimal.Decimal {
	t.Helper()
	budgets, err := s.ListBudgets(context.Background())
	require.NoError(t, err)
	for _, b := range budgets {
		if b.Category == category {
			return b.Spent
		}
	}
	t.Fatalf("no budget for %s", category)
	return decimal.Zero
}

func TestLedgerRecomputesOnEveryWrite(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	l := NewLedger(s, LedgerOptions{Now: clock})

	_, _, err := l.AddTransaction(ctx, expense("100", "food", fixedNow.AddDate(0, 0, -2)))
	require.NoError(t, err)

	// A budget added after spending picks it up immediately.
	_, _, err = l.AddBudget(ctx, model.Budget{Category: "food", Amount: dec("200"), Period: model.Monthly})
	require.NoError(t, err)
	assert.True(t, budgetSpent(t, s, "food").Equal(dec("100")))

	second, _, err := l.AddTransaction(ctx, expense("50", "food", fixedNow))
	require.NoError(t, err)
	assert.True(t, budgetSpent(t, s, "food").Equal(dec("150")))

	second.Amount = dec("80")
	_, err = l.UpdateTransaction(ctx, second)
	require.NoError(t, err)
	assert.True(t, budgetSpent(t, s, "food").Equal(dec("180")))

	_, err = l.DeleteTransaction(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, budgetSpent(t, s, "food").Equal(dec("100")))

	budgets, err := s.ListBudgets(ctx)
	require.NoError(t, err)
	p := finance.BudgetProgress(budgets[0])
	assert.InDelta(t, 50, p.Percentage, 1e-9)
	assert.True(t, p.Remaining.Equal(dec("100")))
}

func TestLedgerBudgetsRollOverToNewPeriod(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	clockNow := time.Date(2026, 10, 30, 12, 0, 0, 0, time.Local)
	l := NewLedger(s, LedgerOptions{Now: func() time.Time { return clockNow }})

	_, _, err := l.AddBudget(ctx, model.Budget{
		Category:  "food",
		Amount:    dec("200"),
		Period:    model.Monthly,
		StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)
	_, _, err = l.AddTransaction(ctx, expense("180", "food", clockNow))
	require.NoError(t, err)

	budgets, _, err := l.Budgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.True(t, budgets[0].Spent.Equal(dec("180")))

	// No writes happen after the month ends.
	clockNow = time.Date(2026, 11, 5, 12, 0, 0, 0, time.Local)
	budgets, alerts, err := l.Budgets(ctx)
	require.NoError(t, err)
	assert.Empty(t, alerts)
	require.Len(t, budgets, 1)
	assert.True(t, budgets[0].Spent.IsZero(), "spent = %s", budgets[0].Spent)

	p := finance.BudgetProgress(budgets[0])
	assert.Equal(t, 0.0, p.Percentage)
	assert.True(t, p.Remaining.Equal(dec("200")))
	assert.True(t, budgetSpent(t, s, "food").IsZero(), "cache must be rewritten")
}

func TestLedgerAlerts(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	l := NewLedger(s, LedgerOptions{Now: clock})

	_, _, err := l.AddBudget(ctx, model.Budget{Category: "fun", Amount: dec("100"), Period: model.Weekly})
	require.NoError(t, err)

	_, alerts, err := l.AddTransaction(ctx, expense("70", "fun", fixedNow))
	require.NoError(t, err)
	assert.Empty(t, alerts)

	_, alerts, err = l.AddTransaction(ctx, expense("15", "fun", fixedNow))
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, 80.0, alerts[0].Threshold)
	assert.Equal(t, "fun", alerts[0].Category)

	// Income never counts toward a budget.
	_, alerts, err = l.AddTransaction(ctx, model.Transaction{Amount: dec("500"), Category: "fun", Type: model.Income, Date: fixedNow})
	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.True(t, budgetSpent(t, s, "fun").Equal(dec("85")))
}

func TestLedgerRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newStore(t), LedgerOptions{Now: clock})

	_, _, err := l.AddTransaction(ctx, expense("0", "food", fixedNow))
	assert.ErrorIs(t, err, model.ErrInvalidAmount)
	_, _, err = l.AddTransaction(ctx, expense("5", "", fixedNow))
	assert.ErrorIs(t, err, model.ErrEmptyCategory)
	_, _, err = l.AddBudget(ctx, model.Budget{Category: "food", Amount: dec("10"), Period: "daily"})
	assert.ErrorIs(t, err, model.ErrInvalidPeriod)
}

func TestLedgerContribute(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	l := NewLedger(s, LedgerOptions{Now: clock})

	g, err := l.AddGoal(ctx, model.Goal{Name: "Trip", TargetAmount: dec("1000"), CurrentAmount: dec("400")})
	require.NoError(t, err)

	g, err = l.Contribute(ctx, g.ID, dec("200"))
	require.NoError(t, err)
	assert.True(t, g.CurrentAmount.Equal(dec("600")))

	_, err = l.Contribute(ctx, g.ID, dec("-700"))
	assert.ErrorIs(t, err, finance.ErrInsufficientFunds)

	stored, err := s.GetGoal(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, stored.CurrentAmount.Equal(dec("600")), "rejected withdrawal left the goal untouched")
}

func TestTrackerUpsertsOneEntryPerDay(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	tr := NewTracker(s, clock, nil)

	water, err := tr.AddHabit(ctx, model.Habit{Name: "Water", TargetCount: 3})
	require.NoError(t, err)
	read, err := tr.AddHabit(ctx, model.Habit{Name: "Read", TargetCount: 1})
	require.NoError(t, err)

	_, err = tr.AddHabit(ctx, model.Habit{Name: "Bad", TargetCount: 0})
	assert.ErrorIs(t, err, model.ErrInvalidTarget)

	for i := 0; i < 2; i++ {
		_, err = tr.Apply(ctx, water, habit.Action{Kind: habit.Increment}, fixedNow)
		require.NoError(t, err)
	}
	e, err := tr.Apply(ctx, water, habit.Action{Kind: habit.Increment}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 3, e.Count)
	assert.True(t, e.Completed)

	entries, err := s.ListHabitEntries(ctx, water.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	statuses, progress, err := tr.Today(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, 50.0, progress)

	_, err = tr.Toggle(ctx, read, fixedNow)
	require.NoError(t, err)
	_, progress, err = tr.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100.0, progress)

	e, err = tr.Toggle(ctx, read, fixedNow)
	require.NoError(t, err)
	assert.False(t, e.Completed)
	assert.Equal(t, 0, e.Count)
}

func TestTrackerHistory(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	tr := NewTracker(s, clock, nil)

	run, err := tr.AddHabit(ctx, model.Habit{Name: "Run", TargetCount: 1})
	require.NoError(t, err)
	for _, back := range []int{0, 1, 2, 10} {
		_, err := tr.Toggle(ctx, run, fixedNow.AddDate(0, 0, -back))
		require.NoError(t, err)
	}
	// Unchecking keeps a zero-count row for the day.
	_, err = tr.Toggle(ctx, run, fixedNow.AddDate(0, 0, -10))
	require.NoError(t, err)

	entries, streak, err := tr.History(ctx, run, 7)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Date.After(entries[2].Date), "newest first")
	assert.Equal(t, model.Streak{Current: 3, Longest: 3}, streak)

	entries, _, err = tr.History(ctx, run, 30)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestTrackerSummaries(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	tr := NewTracker(s, clock, nil)

	h, err := tr.AddHabit(ctx, model.Habit{Name: "Walk", TargetCount: 1})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := tr.Apply(ctx, h, habit.Action{Kind: habit.Complete}, fixedNow.AddDate(0, 0, -i))
		require.NoError(t, err)
	}

	sums, err := tr.Summaries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, model.Streak{Current: 3, Longest: 3}, sums[0].Streak)
	assert.InDelta(t, 30, sums[0].CompletionRate, 1e-9)
}
