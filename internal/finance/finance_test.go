package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
)

var now = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC) // Wednesday

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(amount, category string, typ model.TransactionType, date time.Time) model.Transaction {
	return model.Transaction{
		ID:       uuid.New(),
		Amount:   dec(amount),
		Category: category,
		Type:     typ,
		Date:     period.StartOfDay(date),
	}
}

func daysAgo(n int) time.Time {
	return now.AddDate(0, 0, -n)
}

func TestMonthlyBalance(t *testing.T) {
	txns := []model.Transaction{
		tx("3000", "salary", model.Income, daysAgo(10)),
		tx("120.50", "food", model.Expense, daysAgo(1)),
		tx("79.50", "transport", model.Expense, now),
		tx("999", "food", model.Expense, time.Date(2026, 9, 30, 23, 0, 0, 0, time.UTC)),
		tx("500", "salary", model.Income, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)),
	}

	b := MonthlyBalance(txns, now)
	assert.True(t, b.Income.Equal(dec("3000")), "income = %s", b.Income)
	assert.True(t, b.Expenses.Equal(dec("200")), "expenses = %s", b.Expenses)
	assert.True(t, b.Balance.Equal(b.Income.Sub(b.Expenses)))
	assert.True(t, b.Balance.Equal(dec("2800")))
}

func TestMonthlyBalanceEmpty(t *testing.T) {
	b := MonthlyBalance(nil, now)
	assert.True(t, b.Income.IsZero())
	assert.True(t, b.Expenses.IsZero())
	assert.True(t, b.Balance.IsZero())
}

func TestMonthlyHistory(t *testing.T) {
	txns := []model.Transaction{
		tx("100", "salary", model.Income, now),
		tx("40", "food", model.Expense, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)),
		tx("70", "food", model.Expense, time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC)),
	}
	hist := MonthlyHistory(txns, 3, now)
	require.Len(t, hist, 3)
	assert.Equal(t, time.October, hist[0].Month.Month())
	assert.Equal(t, time.August, hist[2].Month.Month())
	assert.True(t, hist[0].Balance.Equal(dec("100")))
	assert.True(t, hist[1].Balance.IsZero())
	assert.True(t, hist[2].Balance.Equal(dec("-40")))
}

func TestCategorySpending(t *testing.T) {
	txns := []model.Transaction{
		tx("10", "food", model.Expense, now),
		tx("15", "food", model.Expense, daysAgo(2)),
		tx("30", "fun", model.Expense, daysAgo(4)), // Saturday before this week
		tx("1000", "salary", model.Income, now),
	}

	week := period.Calendar{}.Week(now)
	spend := CategorySpending(txns, week)
	assert.Len(t, spend, 1)
	assert.True(t, spend["food"].Equal(dec("25")))
	_, ok := spend["salary"]
	assert.False(t, ok, "income must not appear")
	_, ok = spend["fun"]
	assert.False(t, ok, "zero-spend categories are absent")

	month := CategorySpending(txns, period.Month(now))
	assert.Len(t, month, 2)
	assert.True(t, month["fun"].Equal(dec("30")))
}

func TestSortedCategorySpending(t *testing.T) {
	rows := SortedCategorySpending(map[string]decimal.Decimal{
		"food":      dec("75"),
		"transport": dec("25"),
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "food", rows[0].Category)
	assert.InDelta(t, 75, rows[0].Share, 1e-9)
	assert.InDelta(t, 25, rows[1].Share, 1e-9)

	assert.Empty(t, SortedCategorySpending(nil))
}

func TestRecomputeBudgetScenario(t *testing.T) {
	d := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		tx("100", "food", model.Expense, d),
		tx("50", "food", model.Expense, d.AddDate(0, 0, 1)),
	}
	b := model.Budget{ID: uuid.New(), Category: "food", Amount: dec("200"), Period: model.Monthly, Spent: decimal.Zero}

	b, alert, err := RecomputeBudget(b, txns, period.Calendar{}, now, DefaultThresholds)
	require.NoError(t, err)
	assert.Nil(t, alert)
	assert.True(t, b.Spent.Equal(dec("150")))

	p := BudgetProgress(b)
	assert.True(t, p.Spent.Equal(dec("150")))
	assert.InDelta(t, 75, p.Percentage, 1e-9)
	assert.True(t, p.Remaining.Equal(dec("50")))
}

func TestRecomputeBudgetMatchesSum(t *testing.T) {
	txns := []model.Transaction{
		tx("20", "food", model.Expense, now),
		tx("5", "food", model.Expense, daysAgo(3)), // Sunday, inside the week
		tx("7", "food", model.Expense, daysAgo(4)), // Saturday, previous week
		tx("9", "fun", model.Expense, now),
		tx("11", "food", model.Income, now),
	}
	b := model.Budget{Category: "food", Amount: dec("100"), Period: model.Weekly}

	b, _, err := RecomputeBudget(b, txns, period.Calendar{}, now, DefaultThresholds)
	require.NoError(t, err)
	assert.True(t, b.Spent.Equal(dec("25")), "spent = %s", b.Spent)

	// Monday-start weeks drop Sunday.
	b, _, err = RecomputeBudget(b, txns, period.Calendar{WeekStart: time.Monday}, now, DefaultThresholds)
	require.NoError(t, err)
	assert.True(t, b.Spent.Equal(dec("20")), "spent = %s", b.Spent)
}

func TestRecomputeBudgetAlerts(t *testing.T) {
	b := model.Budget{ID: uuid.New(), Category: "food", Amount: dec("100"), Period: model.Monthly, Spent: dec("50")}

	txns := []model.Transaction{tx("85", "food", model.Expense, now)}
	nb, alert, err := RecomputeBudget(b, txns, period.Calendar{}, now, DefaultThresholds)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, 80.0, alert.Threshold)
	assert.Equal(t, b.ID, alert.BudgetID)

	// Staying above a threshold does not alert again.
	txns = append(txns, tx("3", "food", model.Expense, now))
	nb, alert, err = RecomputeBudget(nb, txns, period.Calendar{}, now, DefaultThresholds)
	require.NoError(t, err)
	assert.Nil(t, alert)

	// Jumping past several thresholds reports the highest.
	txns = append(txns, tx("30", "food", model.Expense, now))
	_, alert, err = RecomputeBudget(nb, txns, period.Calendar{}, now, DefaultThresholds)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, 100.0, alert.Threshold)
	assert.InDelta(t, 118, alert.Percentage, 1e-9)
}

func TestRecomputeAllSkipsInvalidPeriod(t *testing.T) {
	budgets := []model.Budget{
		{Category: "food", Amount: dec("10"), Period: model.Monthly},
		{Category: "food", Amount: dec("10"), Period: "yearly", Spent: dec("1")},
	}
	txns := []model.Transaction{tx("9", "food", model.Expense, now)}

	out, alerts := RecomputeAll(budgets, txns, period.Calendar{}, now, DefaultThresholds)
	require.Len(t, out, 2)
	assert.True(t, out[0].Spent.Equal(dec("9")))
	assert.True(t, out[1].Spent.Equal(dec("1")))
	require.Len(t, alerts, 1)
	assert.Equal(t, 90.0, alerts[0].Threshold)
}

func TestBudgetProgressClamps(t *testing.T) {
	p := BudgetProgress(model.Budget{Amount: dec("100"), Spent: dec("250")})
	assert.Equal(t, 100.0, p.Percentage)
	assert.True(t, p.Remaining.IsZero())
	assert.True(t, p.Spent.Equal(dec("250")))

	p = BudgetProgress(model.Budget{Amount: decimal.Zero, Spent: decimal.Zero})
	assert.Equal(t, 0.0, p.Percentage)
	assert.True(t, p.Remaining.IsZero())
}

func TestFilterByWindow(t *testing.T) {
	txns := []model.Transaction{
		tx("10", "food", model.Expense, now),
		tx("20", "food", model.Expense, daysAgo(6)),
		tx("30", "food", model.Expense, daysAgo(7)),
	}
	got := FilterByWindow(txns, period.LastDays(now, 7))
	require.Len(t, got, 2)
	assert.True(t, got[1].Amount.Equal(dec("20")))
	assert.Empty(t, FilterByWindow(nil, period.Month(now)))
}

func TestThresholdReached(t *testing.T) {
	th, ok := ThresholdReached(91, DefaultThresholds)
	assert.True(t, ok)
	assert.Equal(t, 90.0, th)

	_, ok = ThresholdReached(79.99, DefaultThresholds)
	assert.False(t, ok)
}

func TestGoalContribution(t *testing.T) {
	g := model.Goal{Name: "Trip", TargetAmount: dec("1000"), CurrentAmount: dec("400")}

	require.NoError(t, ValidateContribution(g, dec("200")))
	g = ApplyContribution(g, dec("200"))
	assert.True(t, g.CurrentAmount.Equal(dec("600")))

	err := ValidateContribution(g, dec("-700"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, g.CurrentAmount.Equal(dec("600")), "rejected withdrawal must not mutate")

	assert.NoError(t, ValidateContribution(g, dec("-600")))
	assert.ErrorIs(t, ValidateContribution(g, decimal.Zero), model.ErrInvalidAmount)

	// The arithmetic itself never clamps.
	assert.True(t, ApplyContribution(g, dec("-700")).CurrentAmount.Equal(dec("-100")))
}

func TestGoalProgress(t *testing.T) {
	deadline := time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC)
	g := model.Goal{TargetAmount: dec("1000"), CurrentAmount: dec("250"), Deadline: &deadline}

	p := GoalProgress(g, now)
	assert.InDelta(t, 25, p.Percentage, 1e-9)
	assert.True(t, p.Remaining.Equal(dec("750")))
	assert.Equal(t, 10, p.DaysLeft)
	assert.False(t, p.Overdue)
	assert.False(t, p.Achieved)

	g.CurrentAmount = dec("1200")
	p = GoalProgress(g, deadline.AddDate(0, 0, 3))
	assert.Equal(t, 100.0, p.Percentage)
	assert.True(t, p.Remaining.IsZero())
	assert.True(t, p.Achieved)
	assert.False(t, p.Overdue)

	g.CurrentAmount = dec("10")
	p = GoalProgress(g, deadline.AddDate(0, 0, 3))
	assert.True(t, p.Overdue)
	assert.Equal(t, -3, p.DaysLeft)
}
