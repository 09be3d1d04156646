package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
)

// DefaultThresholds are the budget consumption percentages that raise alerts.
var DefaultThresholds = []float64{80, 90, 100}

// Spent sums expenses in category within w.
func Spent(txns []model.Transaction, category string, w period.Window) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.Type == model.Expense && t.Category == category && w.Contains(t.Date) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// Percentage returns spent as an unclamped percentage of amount.
// A non-positive amount yields 100 once anything is spent and 0 otherwise.
func Percentage(spent, amount decimal.Decimal) float64 {
	if !amount.IsPositive() {
		if spent.IsPositive() {
			return 100
		}
		return 0
	}
	return spent.Div(amount).Mul(hundred).InexactFloat64()
}

// CrossedThreshold returns the highest threshold that spend moved across,
// from below it before to at or above it after.
func CrossedThreshold(prevSpent, newSpent, amount decimal.Decimal, thresholds []float64) (float64, bool) {
	before := Percentage(prevSpent, amount)
	after := Percentage(newSpent, amount)

	crossed, ok := 0.0, false
	for _, th := range thresholds {
		if before < th && after >= th && th >= crossed {
			crossed, ok = th, true
		}
	}
	return crossed, ok
}

// ThresholdReached returns the highest threshold at or below pct.
func ThresholdReached(pct float64, thresholds []float64) (float64, bool) {
	reached, ok := 0.0, false
	for _, th := range thresholds {
		if pct >= th && th >= reached {
			reached, ok = th, true
		}
	}
	return reached, ok
}

// RecomputeBudget resolves the budget's current period window relative to now
// and replaces Spent with the sum of matching expenses. When the new spend
// crosses a threshold an alert is returned.
func RecomputeBudget(b model.Budget, txns []model.Transaction, cal period.Calendar, now time.Time, thresholds []float64) (model.Budget, *model.BudgetAlert, error) {
	w, err := cal.Resolve(b.Period, now)
	if err != nil {
		return b, nil, err
	}

	prev := b.Spent
	b.Spent = Spent(txns, b.Category, w)

	th, ok := CrossedThreshold(prev, b.Spent, b.Amount, thresholds)
	if !ok {
		return b, nil, nil
	}
	return b, &model.BudgetAlert{
		BudgetID:   b.ID,
		Category:   b.Category,
		Threshold:  th,
		Percentage: Percentage(b.Spent, b.Amount),
		Spent:      b.Spent,
		Amount:     b.Amount,
	}, nil
}

// RecomputeAll recomputes every budget in order. Budgets with an unknown
// period keep their cached spend and are skipped.
func RecomputeAll(budgets []model.Budget, txns []model.Transaction, cal period.Calendar, now time.Time, thresholds []float64) ([]model.Budget, []model.BudgetAlert) {
	out := make([]model.Budget, 0, len(budgets))
	var alerts []model.BudgetAlert
	for _, b := range budgets {
		nb, alert, err := RecomputeBudget(b, txns, cal, now, thresholds)
		if err != nil {
			out = append(out, b)
			continue
		}
		out = append(out, nb)
		if alert != nil {
			alerts = append(alerts, *alert)
		}
	}
	return out, alerts
}

// BudgetProgress returns the display view of a budget's cached spend.
// Percentage is clamped to 100 and Remaining floors at zero.
func BudgetProgress(b model.Budget) model.BudgetProgress {
	pct := Percentage(b.Spent, b.Amount)
	if pct > 100 {
		pct = 100
	}
	remaining := b.Amount.Sub(b.Spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return model.BudgetProgress{
		Spent:      b.Spent,
		Percentage: pct,
		Remaining:  remaining,
	}
}

// SortBudgets orders budgets by consumption, most consumed first.
func SortBudgets(budgets []model.Budget) {
	sort.SliceStable(budgets, func(i, j int) bool {
		return Percentage(budgets[i].Spent, budgets[i].Amount) > Percentage(budgets[j].Spent, budgets[j].Amount)
	})
}
