package cmd

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/habitat/internal/cli"
	"github.com/theirongolddev/habitat/internal/finance"
	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/store"
)

var (
	flagGoalDeadline string
	flagGoalStart    string
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Savings goal progress",
	RunE:  runGoals,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add NAME TARGET",
	Short: "Create a savings goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsAdd,
}

var goalsContributeCmd = &cobra.Command{
	Use:   "contribute GOAL AMOUNT",
	Short: "Add money to a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  func(cmd *cobra.Command, args []string) error { return contribute(cmd, args, false) },
}

var goalsWithdrawCmd = &cobra.Command{
	Use:   "withdraw GOAL AMOUNT",
	Short: "Take money out of a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  func(cmd *cobra.Command, args []string) error { return contribute(cmd, args, true) },
}

func init() {
	goalsAddCmd.Flags().StringVar(&flagGoalDeadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	goalsAddCmd.Flags().StringVar(&flagGoalStart, "saved", "", "Amount already saved")

	goalsCmd.AddCommand(goalsAddCmd, goalsContributeCmd, goalsWithdrawCmd)
	rootCmd.AddCommand(goalsCmd)
}

type goalView struct {
	model.Goal
	Progress model.GoalProgress
}

func runGoals(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	goals, err := st.ListGoals(cmd.Context())
	if err != nil {
		return err
	}

	t := now()
	if flagJSON {
		out := make([]goalView, 0, len(goals))
		for _, g := range goals {
			out = append(out, goalView{Goal: g, Progress: finance.GoalProgress(g, t)})
		}
		return printJSON(out)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("GOALS"))
	fmt.Println()
	if len(goals) == 0 {
		fmt.Println("  No goals yet. Add one with `habitat goals add NAME TARGET`.")
		fmt.Println()
		return nil
	}

	for _, g := range goals {
		p := finance.GoalProgress(g, t)
		status := ""
		switch {
		case p.Achieved:
			status = cli.Good("achieved")
		case g.Deadline != nil:
			status = cli.FormatDaysLeft(p.DaysLeft, p.Overdue)
			if p.Overdue {
				status = cli.Bad(status)
			}
		}
		fmt.Printf("  %s  %s\n", g.Name, cli.Muted(shortID(g.ID)))
		fmt.Printf("    %s %s\n", cli.RenderProgressBar(p.Percentage, 30), cli.FormatPercent(p.Percentage))
		fmt.Printf("    %s of %s, %s to go  %s\n\n",
			money(g.CurrentAmount), money(g.TargetAmount), money(p.Remaining), status)
	}
	return nil
}

func runGoalsAdd(cmd *cobra.Command, args []string) error {
	target, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	g := model.Goal{Name: args[0], TargetAmount: target}
	if flagGoalStart != "" {
		if g.CurrentAmount, err = parseAmount(flagGoalStart); err != nil {
			return err
		}
	}
	if flagGoalDeadline != "" {
		d, err := parseDayFlag(flagGoalDeadline)
		if err != nil {
			return err
		}
		g.Deadline = &d
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	g, err = newLedger(st).AddGoal(cmd.Context(), g)
	if err != nil {
		return err
	}
	fmt.Printf("  Goal %s: %s (%s)\n", g.Name, money(g.TargetAmount), shortID(g.ID))
	return nil
}

func findGoal(cmd *cobra.Command, st *store.Store, ref string) (model.Goal, error) {
	g, err := st.FindGoal(cmd.Context(), ref)
	if err == nil || !errors.Is(err, store.ErrNotFound) {
		return g, err
	}
	goals, err := st.ListGoals(cmd.Context())
	if err != nil {
		return model.Goal{}, err
	}
	ids := make([]uuid.UUID, 0, len(goals))
	for _, g := range goals {
		ids = append(ids, g.ID)
	}
	id, err := parseID(ref, ids)
	if err != nil {
		return model.Goal{}, err
	}
	return st.GetGoal(cmd.Context(), id)
}

func contribute(cmd *cobra.Command, args []string, withdraw bool) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	if withdraw {
		amount = amount.Neg()
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	g, err := findGoal(cmd, st, args[0])
	if err != nil {
		return err
	}
	g, err = newLedger(st).Contribute(cmd.Context(), g.ID, amount)
	if errors.Is(err, finance.ErrInsufficientFunds) {
		return fmt.Errorf("goal %s holds only %s", g.Name, money(g.CurrentAmount))
	}
	if err != nil {
		return err
	}

	p := finance.GoalProgress(g, now())
	fmt.Printf("  %s %s: %s of %s (%s)\n", g.Name, delta(amount), money(g.CurrentAmount), money(g.TargetAmount), cli.FormatPercent(p.Percentage))
	if p.Achieved {
		fmt.Println(cli.Good("  Goal reached!"))
	}
	return nil
}
