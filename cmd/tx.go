package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/habitat/internal/cli"
	"github.com/theirongolddev/habitat/internal/finance"
	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
	"github.com/theirongolddev/habitat/internal/store"
)

var (
	flagTxIncome   bool
	flagTxDesc     string
	flagTxOn       string
	flagTxLimit    int
	flagTxDays     int
	flagTxCategory string

	flagTxEditAmount string
	flagTxEditType   string
)

var txCmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transactions"},
	Short:   "Record and list transactions",
	RunE:    runTxList,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent transactions",
	Args:  cobra.NoArgs,
	RunE:  runTxList,
}

var txAddCmd = &cobra.Command{
	Use:   "add AMOUNT CATEGORY",
	Short: "Record an expense (or income with --income)",
	Args:  cobra.ExactArgs(2),
	RunE:  runTxAdd,
}

var txEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxEdit,
}

var txRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxRm,
}

func init() {
	txAddCmd.Flags().BoolVarP(&flagTxIncome, "income", "i", false, "Record income instead of an expense")
	txAddCmd.Flags().StringVarP(&flagTxDesc, "desc", "m", "", "Description")
	txAddCmd.Flags().StringVar(&flagTxOn, "on", "", "Date (YYYY-MM-DD, default today)")

	txEditCmd.Flags().StringVar(&flagTxEditAmount, "amount", "", "New amount")
	txEditCmd.Flags().StringVar(&flagTxEditType, "type", "", "New type (income, expense)")
	txEditCmd.Flags().StringVar(&flagTxCategory, "category", "", "New category")
	txEditCmd.Flags().StringVarP(&flagTxDesc, "desc", "m", "", "New description")
	txEditCmd.Flags().StringVar(&flagTxOn, "on", "", "New date (YYYY-MM-DD)")

	for _, c := range []*cobra.Command{txCmd, txListCmd} {
		c.Flags().IntVarP(&flagTxLimit, "limit", "l", 20, "Maximum rows to show")
		c.Flags().StringVarP(&flagTxCategory, "category", "c", "", "Only this category")
		c.Flags().IntVarP(&flagTxDays, "days", "n", 0, "Only the last N days")
	}

	txCmd.AddCommand(txListCmd, txAddCmd, txEditCmd, txRmCmd)
	rootCmd.AddCommand(txCmd)
}

func runTxList(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	txns, err := st.ListTransactions(cmd.Context())
	if err != nil {
		return err
	}
	if flagTxDays > 0 {
		txns = finance.FilterByWindow(txns, period.LastDays(now(), flagTxDays))
	}
	sort.SliceStable(txns, func(i, j int) bool { return txns[i].Date.After(txns[j].Date) })

	var shown []model.Transaction
	for _, t := range txns {
		if flagTxCategory != "" && !strings.EqualFold(t.Category, flagTxCategory) {
			continue
		}
		shown = append(shown, t)
		if flagTxLimit > 0 && len(shown) == flagTxLimit {
			break
		}
	}

	if flagJSON {
		return printJSON(shown)
	}
	if len(shown) == 0 {
		fmt.Println("\n  No transactions found.")
		return nil
	}

	rows := make([][]string, 0, len(shown))
	for _, t := range shown {
		amt := delta(t.Amount.Neg())
		if t.Type == model.Income {
			amt = cli.Good(delta(t.Amount))
		}
		rows = append(rows, []string{t.Date.Format("2006-01-02"), t.Category, amt, t.Description, shortID(t.ID)})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Category", "Amount", "Description", "ID"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runTxAdd(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	day, err := parseDayFlag(flagTxOn)
	if err != nil {
		return err
	}
	typ := model.Expense
	if flagTxIncome {
		typ = model.Income
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	t, alerts, err := newLedger(st).AddTransaction(cmd.Context(), model.Transaction{
		Amount:      amount,
		Category:    args[1],
		Type:        typ,
		Date:        day,
		Description: flagTxDesc,
	})
	if err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Printf("  %s %s %s on %s (%s)\n", t.Type, money(t.Amount), t.Category, t.Date.Format("2006-01-02"), shortID(t.ID))
	}
	printAlerts(alerts)
	return nil
}

func findTransaction(cmd *cobra.Command, st *store.Store, ref string) (model.Transaction, error) {
	txns, err := st.ListTransactions(cmd.Context())
	if err != nil {
		return model.Transaction{}, err
	}
	ids := make([]uuid.UUID, len(txns))
	for i, t := range txns {
		ids[i] = t.ID
	}
	id, err := parseID(ref, ids)
	if err != nil {
		return model.Transaction{}, err
	}
	return st.GetTransaction(cmd.Context(), id)
}

func runTxEdit(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	t, err := findTransaction(cmd, st, args[0])
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("amount") {
		if t.Amount, err = parseAmount(flagTxEditAmount); err != nil {
			return err
		}
	}
	if f.Changed("type") {
		t.Type = model.TransactionType(strings.ToLower(flagTxEditType))
	}
	if f.Changed("category") {
		t.Category = flagTxCategory
	}
	if f.Changed("desc") {
		t.Description = flagTxDesc
	}
	if f.Changed("on") {
		if t.Date, err = parseDayFlag(flagTxOn); err != nil {
			return err
		}
	}

	alerts, err := newLedger(st).UpdateTransaction(cmd.Context(), t)
	if err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Printf("  Transaction %s updated\n", shortID(t.ID))
	}
	printAlerts(alerts)
	return nil
}

func runTxRm(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	t, err := findTransaction(cmd, st, args[0])
	if err != nil {
		return err
	}
	alerts, err := newLedger(st).DeleteTransaction(cmd.Context(), t.ID)
	if err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Printf("  Deleted %s %s %s\n", t.Type, money(t.Amount), t.Category)
	}
	printAlerts(alerts)
	return nil
}
