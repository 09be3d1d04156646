package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/habitat/internal/cli"
	"github.com/theirongolddev/habitat/internal/finance"
	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/store"
)

var (
	flagBudgetPeriod string
	flagBudgetStart  string
	flagBudgetAmount string
	flagBudgetNewPer string
)

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "Budget progress for the current period",
	RunE:  runBudgets,
}

var budgetsAddCmd = &cobra.Command{
	Use:   "add CATEGORY AMOUNT",
	Short: "Create a budget for a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetsAdd,
}

var budgetsEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change a budget's amount or period",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsEdit,
}

var budgetsRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsRm,
}

var budgetsRecomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Recompute every budget's spend from transactions",
	Args:  cobra.NoArgs,
	RunE:  runBudgetsRecompute,
}

func init() {
	budgetsAddCmd.Flags().StringVar(&flagBudgetPeriod, "period", "monthly", "Budget period (monthly, weekly)")
	budgetsAddCmd.Flags().StringVar(&flagBudgetStart, "start", "", "Start date (YYYY-MM-DD, default today)")
	budgetsEditCmd.Flags().StringVar(&flagBudgetAmount, "amount", "", "New amount")
	budgetsEditCmd.Flags().StringVar(&flagBudgetNewPer, "period", "", "New period (monthly, weekly)")

	budgetsCmd.AddCommand(budgetsAddCmd, budgetsEditCmd, budgetsRmCmd, budgetsRecomputeCmd)
	rootCmd.AddCommand(budgetsCmd)
}

type budgetView struct {
	model.Budget
	Progress model.BudgetProgress
}

func runBudgets(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	budgets, alerts, err := newLedger(st).Budgets(cmd.Context())
	if err != nil {
		return err
	}
	printAlerts(alerts)
	finance.SortBudgets(budgets)

	if flagJSON {
		out := make([]budgetView, 0, len(budgets))
		for _, b := range budgets {
			out = append(out, budgetView{Budget: b, Progress: finance.BudgetProgress(b)})
		}
		return printJSON(out)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGETS"))
	fmt.Println()
	if len(budgets) == 0 {
		fmt.Println("  No budgets yet. Add one with `habitat budgets add CATEGORY AMOUNT`.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(budgets))
	for _, b := range budgets {
		p := finance.BudgetProgress(b)
		rows = append(rows, []string{
			b.Category,
			string(b.Period),
			money(p.Spent) + " / " + money(b.Amount),
			cli.ByPercent(cli.FormatPercent(p.Percentage), p.Percentage),
			leftCell(b, p),
			shortID(b.ID),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Period", "Spent", "Used", "Left", "ID"},
		Rows:    rows,
	}))
	fmt.Println()
	for _, b := range budgets {
		fmt.Printf("  %-14s %s\n", b.Category, cli.RenderProgressBar(finance.BudgetProgress(b).Percentage, 30))
	}
	fmt.Println()
	return nil
}

// leftCell shows what remains, or the overspend in red once the budget is
// exceeded, since the displayed percentage stops at 100.
func leftCell(b model.Budget, p model.BudgetProgress) string {
	if over := b.Spent.Sub(b.Amount); over.IsPositive() {
		return cli.Bad(money(over) + " over")
	}
	return money(p.Remaining)
}

func runBudgetsAdd(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	start, err := parseDayFlag(flagBudgetStart)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	b, alerts, err := newLedger(st).AddBudget(cmd.Context(), model.Budget{
		Category:  args[0],
		Amount:    amount,
		Period:    model.Period(flagBudgetPeriod),
		StartDate: start,
	})
	if err != nil {
		return err
	}
	printAlerts(alerts)
	fmt.Printf("  Budget %s: %s %s (%s)\n", b.Category, money(b.Amount), b.Period, shortID(b.ID))
	return nil
}

func findBudget(cmd *cobra.Command, st *store.Store, ref string) (model.Budget, error) {
	budgets, err := st.ListBudgets(cmd.Context())
	if err != nil {
		return model.Budget{}, err
	}
	ids := make([]uuid.UUID, 0, len(budgets))
	for _, b := range budgets {
		if b.Category == ref {
			return b, nil
		}
		ids = append(ids, b.ID)
	}
	id, err := parseID(ref, ids)
	if err != nil {
		return model.Budget{}, err
	}
	for _, b := range budgets {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Budget{}, store.ErrNotFound
}

func runBudgetsEdit(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	b, err := findBudget(cmd, st, args[0])
	if err != nil {
		return err
	}
	if flagBudgetAmount != "" {
		if b.Amount, err = parseAmount(flagBudgetAmount); err != nil {
			return err
		}
	}
	if flagBudgetNewPer != "" {
		b.Period = model.Period(flagBudgetNewPer)
	}

	alerts, err := newLedger(st).UpdateBudget(cmd.Context(), b)
	if err != nil {
		return err
	}
	printAlerts(alerts)
	fmt.Printf("  Budget %s updated\n", b.Category)
	return nil
}

func runBudgetsRm(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	b, err := findBudget(cmd, st, args[0])
	if err != nil {
		return err
	}
	if err := newLedger(st).DeleteBudget(cmd.Context(), b.ID); err != nil {
		return err
	}
	fmt.Printf("  Budget %s deleted\n", b.Category)
	return nil
}

func runBudgetsRecompute(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	alerts, err := newLedger(st).RecomputeBudgets(cmd.Context())
	if err != nil {
		return err
	}
	printAlerts(alerts)
	if !flagQuiet {
		fmt.Println("  Budgets recomputed")
	}
	return nil
}
