package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/habitat/internal/cli"
	"github.com/theirongolddev/habitat/internal/habit"
	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/store"
	"github.com/theirongolddev/habitat/internal/tui"
)

var (
	flagHabitTarget   int
	flagHabitCategory string
	flagHabitColor    string
	flagHabitIcon     string
	flagHabitDays     int
	flagHistoryDays   int
	flagHabitOn       string
	flagInteractive   bool
)

var habitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "Daily habits, streaks and completion",
	RunE:  runHabitsToday,
}

var habitsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a daily habit",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitsAdd,
}

var habitsRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Delete a habit and its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitsRm,
}

var habitsTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Today's checklist",
	Args:  cobra.NoArgs,
	RunE:  runHabitsToday,
}

var habitsCheckCmd = &cobra.Command{
	Use:   "check [NAME]",
	Short: "Mark a habit complete for the day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  habitAction(habit.Action{Kind: habit.Complete}),
}

var habitsUncheckCmd = &cobra.Command{
	Use:   "uncheck [NAME]",
	Short: "Clear a habit's progress for the day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  habitAction(habit.Action{Kind: habit.Reset}),
}

var habitsIncCmd = &cobra.Command{
	Use:   "inc [NAME]",
	Short: "Add one to a habit's count for the day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  habitAction(habit.Action{Kind: habit.Increment}),
}

var habitsDecCmd = &cobra.Command{
	Use:   "dec [NAME]",
	Short: "Subtract one from a habit's count for the day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  habitAction(habit.Action{Kind: habit.Decrement}),
}

var habitsSetCmd = &cobra.Command{
	Use:   "set NAME COUNT",
	Short: "Set a habit's count for the day",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid count %q", args[1])
		}
		return habitAction(habit.Action{Kind: habit.SetCount, Count: n})(cmd, args[:1])
	},
}

var habitsStreaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Current and longest streaks with completion rates",
	Args:  cobra.NoArgs,
	RunE:  runHabitsStreaks,
}

var habitsHistoryCmd = &cobra.Command{
	Use:   "history [NAME]",
	Short: "Recent days of one habit",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHabitsHistory,
}

func init() {
	af := habitsAddCmd.Flags()
	af.IntVarP(&flagHabitTarget, "target", "t", 1, "Completions needed per day")
	af.StringVar(&flagHabitCategory, "category", "", "Category")
	af.StringVar(&flagHabitColor, "color", "", "Display color")
	af.StringVar(&flagHabitIcon, "icon", "", "Display icon")

	for _, c := range []*cobra.Command{habitsCmd, habitsTodayCmd} {
		c.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive checklist")
	}
	for _, c := range []*cobra.Command{habitsCheckCmd, habitsUncheckCmd, habitsIncCmd, habitsDecCmd, habitsSetCmd} {
		c.Flags().StringVar(&flagHabitOn, "on", "", "Day (YYYY-MM-DD, default today)")
	}
	habitsStreaksCmd.Flags().IntVarP(&flagHabitDays, "days", "n", 0, "Completion window in days (default from config)")
	habitsHistoryCmd.Flags().IntVarP(&flagHistoryDays, "days", "n", 14, "Days to show")

	habitsCmd.AddCommand(habitsAddCmd, habitsRmCmd, habitsTodayCmd, habitsCheckCmd, habitsUncheckCmd,
		habitsIncCmd, habitsDecCmd, habitsSetCmd, habitsStreaksCmd, habitsHistoryCmd)
	rootCmd.AddCommand(habitsCmd)
}

func runHabitsAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	h, err := newTracker(st).AddHabit(cmd.Context(), model.Habit{
		Name:        args[0],
		Category:    flagHabitCategory,
		TargetCount: flagHabitTarget,
		Color:       flagHabitColor,
		Icon:        flagHabitIcon,
	})
	if err != nil {
		return err
	}
	fmt.Printf("  Habit %s added (target %d/day)\n", h.Name, h.TargetCount)
	return nil
}

func runHabitsRm(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	h, err := findHabit(cmd, st, args[0])
	if err != nil {
		return err
	}
	if err := st.DeleteHabit(cmd.Context(), h.ID); err != nil {
		return err
	}
	fmt.Printf("  Habit %s deleted\n", h.Name)
	return nil
}

func findHabit(cmd *cobra.Command, st *store.Store, name string) (model.Habit, error) {
	h, err := st.FindHabit(cmd.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		return h, fmt.Errorf("no habit named %q", name)
	}
	return h, err
}

// pickHabit asks for a habit interactively.
func pickHabit(cmd *cobra.Command, st *store.Store) (model.Habit, error) {
	habits, err := st.ListHabits(cmd.Context())
	if err != nil {
		return model.Habit{}, err
	}
	if len(habits) == 0 {
		return model.Habit{}, fmt.Errorf("no habits yet; add one with `habitat habits add NAME`")
	}

	opts := make([]huh.Option[int], len(habits))
	for i, h := range habits {
		opts[i] = huh.NewOption(h.Name, i)
	}
	var choice int
	err = huh.NewSelect[int]().
		Title("Habit").
		Options(opts...).
		Value(&choice).
		Run()
	if err != nil {
		return model.Habit{}, err
	}
	return habits[choice], nil
}

func habitAction(a habit.Action) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		day, err := parseDayFlag(flagHabitOn)
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		var h model.Habit
		if len(args) == 0 {
			h, err = pickHabit(cmd, st)
		} else {
			h, err = findHabit(cmd, st, args[0])
		}
		if err != nil {
			return err
		}

		e, err := newTracker(st).Apply(cmd.Context(), h, a, day)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(e)
		}
		fmt.Printf("  %s %s  %d/%d  %s\n", cli.RenderCheck(e.Completed, habit.Fraction(e.Count, h.TargetCount)),
			h.Name, e.Count, h.TargetCount, cli.Muted(cli.FormatDay(day, now())))
		return nil
	}
}

func runHabitsToday(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tr := newTracker(st)
	if flagInteractive {
		return tui.Run(cmd.Context(), tr, now())
	}

	statuses, progress, err := tr.Today(cmd.Context())
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(map[string]any{"habits": statuses, "progress": progress})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("HABITS  " + now().Format("Mon Jan 2")))
	fmt.Println()
	if len(statuses) == 0 {
		fmt.Println("  No habits yet. Add one with `habitat habits add NAME`.")
		fmt.Println()
		return nil
	}
	for _, s := range statuses {
		fmt.Printf("  %s %-24s %d/%d\n", cli.RenderCheck(s.Completed, habit.Fraction(s.Count, s.Habit.TargetCount)),
			s.Habit.Name, s.Count, s.Habit.TargetCount)
	}
	fmt.Printf("\n  %s %s\n\n", cli.RenderProgressBar(progress, 30), cli.FormatPercent(progress))
	return nil
}

func runHabitsStreaks(cmd *cobra.Command, _ []string) error {
	days := flagHabitDays
	if days <= 0 {
		days = cfg.General.HabitWindowDays
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	sums, err := newTracker(st).Summaries(cmd.Context(), days)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(sums)
	}
	if len(sums) == 0 {
		fmt.Println("\n  No habits yet.")
		return nil
	}

	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, []string{
			s.Habit.Name,
			strconv.Itoa(s.Streak.Current),
			strconv.Itoa(s.Streak.Longest),
			cli.FormatPercent(s.CompletionRate),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Streaks  last %dd to %s", days, now().Format(time.DateOnly)),
		Headers: []string{"Habit", "Current", "Longest", "Done"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runHabitsHistory(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	var h model.Habit
	if len(args) == 1 {
		h, err = findHabit(cmd, st, args[0])
	} else {
		h, err = pickHabit(cmd, st)
	}
	if err != nil {
		return err
	}

	entries, streak, err := newTracker(st).History(cmd.Context(), h, flagHistoryDays)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(map[string]any{"habit": h, "streak": streak, "entries": entries})
	}

	t := now()
	rows := make([][]string, 0, len(entries))
	counts := make([]float64, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			cli.FormatDay(e.Date, t),
			fmt.Sprintf("%d/%d", e.Count, h.TargetCount),
			habit.StateOf(h, &e).String(),
		})
		counts = append([]float64{float64(e.Count)}, counts...)
	}

	fmt.Println()
	if len(rows) == 0 {
		fmt.Printf("  No entries for %s in the last %d days.\n\n", h.Name, flagHistoryDays)
		return nil
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   h.Name,
		Headers: []string{"Day", "Count", "State"},
		Rows:    rows,
	}))
	fmt.Printf("\n  %s  current %d, longest %d\n\n", cli.RenderSparkline(counts), streak.Current, streak.Longest)
	return nil
}
