// Package cmd implements the habitat CLI commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/habitat/internal/cli"
	"github.com/theirongolddev/habitat/internal/config"
	"github.com/theirongolddev/habitat/internal/logger"
	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
	"github.com/theirongolddev/habitat/internal/service"
	"github.com/theirongolddev/habitat/internal/store"
)

var (
	flagDB        string
	flagDate      string
	flagJSON      bool
	flagNoColor   bool
	flagQuiet     bool
	flagLogLevel  string
	flagLogFormat string
)

// cfg is loaded once before any command runs.
var (
	cfg      = config.DefaultConfig()
	logClose = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:               "habitat",
	Short:             "Personal finance, health and habit tracker",
	Long:              "Track spending, budgets, savings goals, body metrics and daily habits from the terminal.",
	SilenceUsage:      true,
	PersistentPreRunE: initRoot,
	RunE:              runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logClose()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDB, "db", "", "Database path (default $XDG_DATA_HOME/habitat/habitat.db)")
	pf.StringVar(&flagDate, "date", "", "Act as if today were this day (YYYY-MM-DD)")
	pf.BoolVar(&flagJSON, "json", false, "Print machine-readable JSON")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")
}

func initRoot(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	if flagDB != "" {
		cfg.General.DBPath = flagDB
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.Logging.Format = flagLogFormat
	}
	if flagNoColor || cfg.Appearance.NoColor {
		cli.SetNoColor()
	}
	if flagDate != "" {
		if _, err := period.ParseDay(flagDate, time.Local); err != nil {
			return fmt.Errorf("--date: %w", err)
		}
	}

	closeFn, err := logger.Init(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		return err
	}
	logClose = closeFn

	// config and setup must work on a broken config file
	if cmd.Name() == "config" || cmd.Name() == "setup" {
		return nil
	}
	return cfg.Validate()
}

// now returns the wall clock, or noon on --date when set.
func now() time.Time {
	if flagDate == "" {
		return time.Now()
	}
	d, err := period.ParseDay(flagDate, time.Local)
	if err != nil {
		return time.Now()
	}
	return d.Add(12 * time.Hour)
}

func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return st, nil
}

func newLedger(st *store.Store) *service.Ledger {
	cal, _ := cfg.Calendar()
	return service.NewLedger(st, service.LedgerOptions{
		Calendar:   cal,
		Thresholds: cfg.Thresholds(),
		Now:        now,
		Logger:     slog.Default(),
	})
}

func newTracker(st *store.Store) *service.Tracker {
	return service.NewTracker(st, now, slog.Default())
}

func units() model.UnitSystem {
	u, _ := cfg.Units()
	return u
}

func money(d decimal.Decimal) string {
	return cli.FormatMoney(d, cfg.General.Currency)
}

func delta(d decimal.Decimal) string {
	return cli.FormatDelta(d, cfg.General.Currency)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printAlerts(alerts []model.BudgetAlert) {
	for _, a := range alerts {
		msg := fmt.Sprintf("  Budget %s reached %.0f%% (%s of %s)",
			a.Category, a.Percentage, money(a.Spent), money(a.Amount))
		fmt.Fprintln(os.Stderr, cli.ByPercent(msg, a.Threshold))
	}
}

// parseAmount parses a money amount; it must be positive.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if !d.IsPositive() {
		return decimal.Zero, model.ErrInvalidAmount
	}
	return d, nil
}

// parseDayFlag parses a YYYY-MM-DD flag value, defaulting to today.
func parseDayFlag(s string) (time.Time, error) {
	if s == "" {
		return period.StartOfDay(now()), nil
	}
	return period.ParseDay(s, time.Local)
}

// parseID accepts a full UUID or a unique prefix of one from ids.
func parseID(s string, ids []uuid.UUID) (uuid.UUID, error) {
	if id, err := uuid.Parse(s); err == nil {
		return id, nil
	}
	var match []uuid.UUID
	for _, id := range ids {
		if strings.HasPrefix(id.String(), strings.ToLower(s)) {
			match = append(match, id)
		}
	}
	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		return uuid.Nil, fmt.Errorf("no record matches %q", s)
	default:
		return uuid.Nil, fmt.Errorf("%q matches %d records; use more characters", s, len(match))
	}
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
