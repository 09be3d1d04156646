package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/habitat/internal/cli"
	"github.com/theirongolddev/habitat/internal/finance"
	"github.com/theirongolddev/habitat/internal/health"
)

func runOverview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	txns, err := st.ListTransactions(ctx)
	if err != nil {
		return err
	}
	budgets, _, err := newLedger(st).Budgets(ctx)
	if err != nil {
		return err
	}
	weights, err := st.ListWeights(ctx)
	if err != nil {
		return err
	}
	statuses, progress, err := newTracker(st).Today(ctx)
	if err != nil {
		return err
	}

	t := now()
	bal := finance.MonthlyBalance(txns, t)
	latest := health.LatestWeight(weights)

	if flagJSON {
		out := map[string]any{
			"month":          bal,
			"habit_progress": progress,
			"habits":         statuses,
		}
		if latest != nil {
			out["weight"] = latest.Weight
		}
		return printJSON(out)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("HABITAT  " + t.Format("Monday, January 2")))
	fmt.Println()

	rows := [][]string{
		{"Income", money(bal.Income)},
		{"Expenses", money(bal.Expenses)},
		{"Balance", money(bal.Balance)},
	}
	fmt.Print(cli.RenderTable(cli.Table{Title: "This month", Rows: rows}))

	thresholds := cfg.Thresholds()
	for _, b := range budgets {
		p := finance.BudgetProgress(b)
		if th, ok := finance.ThresholdReached(p.Percentage, thresholds); ok {
			msg := fmt.Sprintf("  Budget %s at %s (past %.0f%%)", b.Category, cli.FormatPercent(p.Percentage), th)
			fmt.Println(cli.ByPercent(msg, th))
		}
	}
	fmt.Println()

	done := 0
	for _, s := range statuses {
		if s.Completed {
			done++
		}
	}
	if len(statuses) > 0 {
		fmt.Printf("  Habits   %s  %d/%d done\n", cli.RenderProgressBar(progress, 24), done, len(statuses))
	}
	if latest != nil {
		fmt.Printf("  Weight   %s  (%s)\n", cli.FormatWeight(latest.Weight, units()), cli.FormatDay(latest.Date, t))
	}
	fmt.Println()
	return nil
}
