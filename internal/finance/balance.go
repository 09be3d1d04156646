// Package finance computes balances, category spending, budget consumption
// and goal progress from transaction snapshots. Functions are pure.
package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
)

var hundred = decimal.NewFromInt(100)

// FilterByWindow returns transactions dated within w.
func FilterByWindow(txns []model.Transaction, w period.Window) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		if w.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// Balance sums income and expenses of the transactions within w.
func Balance(txns []model.Transaction, w period.Window) model.MonthlyBalance {
	b := model.MonthlyBalance{
		Month:    w.Start,
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}
	for _, t := range txns {
		if !w.Contains(t.Date) {
			continue
		}
		switch t.Type {
		case model.Income:
			b.Income = b.Income.Add(t.Amount)
		case model.Expense:
			b.Expenses = b.Expenses.Add(t.Amount)
		}
	}
	b.Balance = b.Income.Sub(b.Expenses)
	return b
}

// MonthlyBalance returns income, expenses and balance for the month containing now.
func MonthlyBalance(txns []model.Transaction, now time.Time) model.MonthlyBalance {
	return Balance(txns, period.Month(now))
}

// MonthlyHistory returns balances for the last n months, most recent first.
func MonthlyHistory(txns []model.Transaction, n int, now time.Time) []model.MonthlyBalance {
	if n < 1 {
		return nil
	}

	monthMap := make(map[string]*model.MonthlyBalance, n)
	keys := make([]string, 0, n)
	first := period.StartOfMonth(now)
	for i := 0; i < n; i++ {
		m := first.AddDate(0, -i, 0)
		key := m.Format("2006-01")
		monthMap[key] = &model.MonthlyBalance{
			Month:    m,
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
		keys = append(keys, key)
	}

	for _, t := range txns {
		mb, ok := monthMap[t.Date.Format("2006-01")]
		if !ok {
			continue
		}
		switch t.Type {
		case model.Income:
			mb.Income = mb.Income.Add(t.Amount)
		case model.Expense:
			mb.Expenses = mb.Expenses.Add(t.Amount)
		}
	}

	out := make([]model.MonthlyBalance, 0, n)
	for _, k := range keys {
		mb := monthMap[k]
		mb.Balance = mb.Income.Sub(mb.Expenses)
		out = append(out, *mb)
	}
	return out
}

// CategorySpending sums expense amounts per category within w.
// Categories without spend are absent from the result.
func CategorySpending(txns []model.Transaction, w period.Window) map[string]decimal.Decimal {
	spend := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.Type != model.Expense || !w.Contains(t.Date) {
			continue
		}
		spend[t.Category] = spend[t.Category].Add(t.Amount)
	}
	return spend
}

// SortedCategorySpending orders a spending map by amount descending and
// attaches each category's share of the total.
func SortedCategorySpending(spend map[string]decimal.Decimal) []model.CategorySpend {
	total := decimal.Zero
	for _, amt := range spend {
		total = total.Add(amt)
	}

	rows := make([]model.CategorySpend, 0, len(spend))
	for cat, amt := range spend {
		row := model.CategorySpend{Category: cat, Amount: amt}
		if total.IsPositive() {
			row.Share = amt.Div(total).Mul(hundred).InexactFloat64()
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Amount.Cmp(rows[j].Amount); c != 0 {
			return c > 0
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}
