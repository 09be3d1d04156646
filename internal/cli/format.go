// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/theirongolddev/habitat/internal/health"
	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
)

var symbols = map[string]string{
	"USD": "$", "CAD": "$", "AUD": "$", "NZD": "$",
	"EUR": "€", "GBP": "£", "JPY": "¥", "CNY": "¥", "INR": "₹",
}

// FormatMoney formats an amount in the given ISO 4217 currency with
// grouping and the currency's standard scale.
// e.g., (1234.5, "USD") -> "$1,234.50", (-3, "CHF") -> "-CHF 3.00"
func FormatMoney(d decimal.Decimal, code string) string {
	code = strings.ToUpper(code)
	scale := 2
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}

	d = d.Round(int32(scale))
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	num := humanize.BigComma(d.BigInt())
	if scale > 0 {
		fixed := d.StringFixed(int32(scale))
		num += fixed[strings.IndexByte(fixed, '.'):]
	}

	if sym, ok := symbols[code]; ok {
		return sign + sym + num
	}
	return sign + code + " " + num
}

// FormatDelta formats a signed money change.
func FormatDelta(d decimal.Decimal, code string) string {
	if d.IsNegative() {
		return FormatMoney(d, code)
	}
	return "+" + FormatMoney(d, code)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatFloat formats a float with the given decimals and grouping.
func FormatFloat(f float64, decimals int) string {
	if decimals <= 0 {
		return humanize.Comma(int64(math.Round(f)))
	}
	return humanize.FormatFloat("#,###."+strings.Repeat("#", decimals), f)
}

// FormatPercent formats a 0-100 percentage.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatMetric renders a derived value, or "--" when it is unavailable.
func FormatMetric(m model.Metric, decimals int, unit string) string {
	if !m.Available {
		return "--"
	}
	s := fmt.Sprintf("%.*f", decimals, m.Value)
	if unit != "" {
		s += " " + unit
	}
	return s
}

// FormatWeight renders kilograms in the display unit system.
func FormatWeight(kg float64, units model.UnitSystem) string {
	if units == model.ImperialUnits {
		return fmt.Sprintf("%.1f lb", health.KgToLb(kg))
	}
	return fmt.Sprintf("%.1f kg", kg)
}

// FormatLength renders centimetres in the display unit system.
func FormatLength(cm float64, units model.UnitSystem) string {
	if units == model.ImperialUnits {
		return fmt.Sprintf("%.1f in", health.CmToIn(cm))
	}
	return fmt.Sprintf("%.1f cm", cm)
}

// FormatDay formats a calendar day, using "today"/"yesterday" when close to now.
func FormatDay(day, now time.Time) string {
	switch period.DaysBetween(now, day) {
	case 0:
		return "today"
	case 1:
		return "yesterday"
	case -1:
		return "tomorrow"
	}
	return day.Format("Mon Jan 2")
}

// FormatDaysLeft describes a goal deadline.
func FormatDaysLeft(days int, overdue bool) string {
	switch {
	case overdue:
		return fmt.Sprintf("%d days overdue", -days)
	case days == 0:
		return "due today"
	case days == 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}

// FormatDuration formats minutes into a human-readable duration.
// e.g., 95 -> "1h 35m", 40 -> "40m"
func FormatDuration(mins float64) string {
	total := int64(math.Round(mins))
	if total <= 0 {
		return "0m"
	}
	h, m := total/60, total%60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
