package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/habitat/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"1234.5", "USD", "$1,234.50"},
		{"0", "usd", "$0.00"},
		{"-75", "EUR", "-€75.00"},
		{"1500", "JPY", "¥1,500"},
		{"3", "CHF", "CHF 3.00"},
		{"12345678901234567.89", "USD", "$12,345,678,901,234,567.89"},
		{"0.005", "USD", "$0.01"},
		{"-0.001", "USD", "$0.00"},
		{"999.999", "EUR", "€1,000.00"},
	}
	for _, tt := range tests {
		got := FormatMoney(decimal.RequireFromString(tt.amount), tt.code)
		assert.Equal(t, tt.want, got, "%s %s", tt.amount, tt.code)
	}
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "+$10.00", FormatDelta(decimal.NewFromInt(10), "USD"))
	assert.Equal(t, "-$10.00", FormatDelta(decimal.NewFromInt(-10), "USD"))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-1,000", FormatNumber(-1000))
}

func TestFormatMetric(t *testing.T) {
	assert.Equal(t, "22.9", FormatMetric(model.Value(22.857), 1, ""))
	assert.Equal(t, "1780 kcal", FormatMetric(model.Value(1780), 0, "kcal"))
	assert.Equal(t, "--", FormatMetric(model.Unavailable("height missing"), 1, "kg"))
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "80.0 kg", FormatWeight(80, model.MetricUnits))
	assert.Equal(t, "176.4 lb", FormatWeight(80, model.ImperialUnits))
	assert.Equal(t, "32.0 in", FormatLength(81.28, model.ImperialUnits))
}

func TestFormatDay(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.Local)
	assert.Equal(t, "today", FormatDay(now.Add(5*time.Hour), now))
	assert.Equal(t, "yesterday", FormatDay(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "tomorrow", FormatDay(now.AddDate(0, 0, 1), now))
	assert.Equal(t, "Sun Oct 11", FormatDay(now.AddDate(0, 0, -3), now))
}

func TestFormatDaysLeft(t *testing.T) {
	assert.Equal(t, "3 days overdue", FormatDaysLeft(-3, true))
	assert.Equal(t, "due today", FormatDaysLeft(0, false))
	assert.Equal(t, "1 day left", FormatDaysLeft(1, false))
	assert.Equal(t, "12 days left", FormatDaysLeft(12, false))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0m", FormatDuration(0))
	assert.Equal(t, "40m", FormatDuration(40))
	assert.Equal(t, "1h 35m", FormatDuration(95))
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "", RenderSparkline(nil))
	assert.Equal(t, "▁█", RenderSparkline([]float64{80, 81}))
	assert.Equal(t, "▁▁▁", RenderSparkline([]float64{70, 70, 70}))
}

func TestRenderTableAlignsColumns(t *testing.T) {
	SetNoColor()
	out := RenderTable(Table{
		Headers: []string{"Category", "Spent"},
		Rows:    [][]string{{"food", "$150.00"}, {"rent", "$1,200.00"}},
	})
	assert.Contains(t, out, "│ food     │   $150.00 │")
	assert.Contains(t, out, "│ rent     │ $1,200.00 │")
}

func TestRenderTableAlignsStyledCells(t *testing.T) {
	SetNoColor()
	out := RenderTable(Table{
		Headers: []string{"Item", "Amount"},
		Rows: [][]string{
			{"a", FormatMoney(decimal.NewFromInt(5), "EUR")},
			{"b", "\x1b[31m$5.00\x1b[0m"},
			{"c", "₹12.00"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := lipgloss.Width(lines[0])
	for _, l := range lines {
		assert.Equal(t, want, lipgloss.Width(l), "line %q", l)
	}
	assert.Contains(t, out, "│ Amount │", "column sized to its widest cell")
}
