package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/habitat/internal/cli"
	"github.com/theirongolddev/habitat/internal/finance"
)

var flagMonths int

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Income, expenses and balance by month",
	RunE:  runBalance,
}

func init() {
	balanceCmd.Flags().IntVarP(&flagMonths, "months", "n", 6, "Number of months to show")
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, _ []string) error {
	if flagMonths < 1 {
		return fmt.Errorf("--months must be at least 1")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	txns, err := st.ListTransactions(cmd.Context())
	if err != nil {
		return err
	}

	history := finance.MonthlyHistory(txns, flagMonths, now())
	if flagJSON {
		return printJSON(history)
	}

	rows := make([][]string, 0, len(history))
	for _, m := range history {
		bal := money(m.Balance)
		if m.Balance.IsNegative() {
			bal = cli.Bad(bal)
		}
		rows = append(rows, []string{m.Month.Format("Jan 2006"), money(m.Income), money(m.Expenses), bal})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("BALANCE"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Income", "Expenses", "Balance"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
