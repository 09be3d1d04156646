package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/habitat/internal/cli"
	"github.com/theirongolddev/habitat/internal/pipeline"
)

var importCmd = &cobra.Command{
	Use:   "import PATH",
	Short: "Import JSONL journal files",
	Long: `Import records from a .jsonl file or every .jsonl/.ndjson file under a directory.
Each line is one JSON object with a "kind" of transaction, budget, goal, weight,
measurement, exercise, habit or habit_entry. Invalid lines are skipped and counted.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Importing [%d/%d]", current, total)
	}

	start := time.Now()
	im := pipeline.NewImporter(st, newLedger(st), time.Local, slog.Default())
	res, err := im.Import(cmd.Context(), args[0], progressFn)
	if err != nil {
		return err
	}
	if !flagQuiet && res.TotalFiles > 0 {
		fmt.Fprintln(os.Stderr)
	}

	if flagJSON {
		return printJSON(res)
	}

	kinds := make([]string, 0, len(res.Imported))
	for k := range res.Imported {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	rows := make([][]string, 0, len(kinds)+6)
	for _, k := range kinds {
		rows = append(rows, []string{k, cli.FormatNumber(int64(res.Imported[k]))})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Files", fmt.Sprintf("%d/%d", res.ParsedFiles, res.TotalFiles)},
		[]string{"Lines", cli.FormatNumber(int64(res.Lines))},
		[]string{"Skipped", cli.FormatNumber(int64(res.Skipped))},
		[]string{"Rejected", cli.FormatNumber(int64(res.ParseErrors + res.WriteErrors))},
	)

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title: fmt.Sprintf("Imported %s records in %s", cli.FormatNumber(int64(res.Total())),
			time.Since(start).Round(time.Millisecond)),
		Headers: []string{"Kind", "Count"},
		Rows:    rows,
	}))
	fmt.Println()
	printAlerts(res.Alerts)
	return nil
}
