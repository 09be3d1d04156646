package finance

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
)

// ErrInsufficientFunds rejects a withdrawal larger than the saved amount.
var ErrInsufficientFunds = errors.New("withdrawal exceeds the goal's current amount")

// ValidateContribution rejects deltas that would drive the goal's current
// amount below zero. Call it before ApplyContribution.
func ValidateContribution(g model.Goal, delta decimal.Decimal) error {
	if delta.IsZero() {
		return model.ErrInvalidAmount
	}
	if g.CurrentAmount.Add(delta).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyContribution adds a signed delta to the goal's current amount without clamping.
func ApplyContribution(g model.Goal, delta decimal.Decimal) model.Goal {
	g.CurrentAmount = g.CurrentAmount.Add(delta)
	return g
}

// GoalProgress returns the display view of a goal relative to now.
func GoalProgress(g model.Goal, now time.Time) model.GoalProgress {
	p := model.GoalProgress{
		Percentage: Percentage(g.CurrentAmount, g.TargetAmount),
		Remaining:  g.TargetAmount.Sub(g.CurrentAmount),
		Achieved:   g.TargetAmount.IsPositive() && g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount),
	}
	p.Percentage = math.Max(0, math.Min(p.Percentage, 100))
	if p.Remaining.IsNegative() {
		p.Remaining = decimal.Zero
	}
	if g.Deadline != nil {
		p.DaysLeft = period.DaysBetween(*g.Deadline, now)
		p.Overdue = p.DaysLeft < 0 && !p.Achieved
	}
	return p
}
