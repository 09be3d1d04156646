package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/habitat/internal/cli"
	"github.com/theirongolddev/habitat/internal/finance"
	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
)

var (
	flagSpendWeek bool
	flagSpendDays int
)

var spendingCmd = &cobra.Command{
	Use:   "spending",
	Short: "Expense totals per category",
	RunE:  runSpending,
}

func init() {
	spendingCmd.Flags().BoolVar(&flagSpendWeek, "week", false, "Current week instead of current month")
	spendingCmd.Flags().IntVarP(&flagSpendDays, "days", "n", 0, "Last N days instead of current month")
	rootCmd.AddCommand(spendingCmd)
}

func runSpending(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	txns, err := st.ListTransactions(cmd.Context())
	if err != nil {
		return err
	}

	t := now()
	cal, _ := cfg.Calendar()
	w := period.Month(t)
	switch {
	case flagSpendDays > 0:
		w = period.LastDays(t, flagSpendDays)
	case flagSpendWeek:
		w = cal.Week(t)
	}

	spend := finance.SortedCategorySpending(finance.CategorySpending(txns, w))
	if flagJSON {
		return printJSON(spend)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENDING  " + w.String()))
	fmt.Println()
	if len(spend) == 0 {
		fmt.Println("  No expenses in this period.")
		fmt.Println()
		return nil
	}

	rows := spendRows(spend)
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Spent", "Share"},
		Rows:    rows,
	}))
	fmt.Println()

	top := spend[0].Amount.InexactFloat64()
	for _, c := range spend {
		fmt.Println(cli.RenderHorizontalBar(c.Category, c.Amount.InexactFloat64(), top, 30))
	}
	fmt.Println()
	return nil
}

func spendRows(spend []model.CategorySpend) [][]string {
	rows := make([][]string, 0, len(spend)+2)
	total := decimal.Zero
	for _, c := range spend {
		rows = append(rows, []string{c.Category, money(c.Amount), cli.FormatPercent(c.Share)})
		total = total.Add(c.Amount)
	}
	return append(rows, []string{"---"}, []string{"Total", money(total), ""})
}
