package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/habitat/internal/cli"
	"github.com/theirongolddev/habitat/internal/health"
	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
	"github.com/theirongolddev/habitat/internal/store"
)

var (
	flagTrendDays   int
	flagHealthOn    string
	flagWeighNotes  string
	flagWorkoutDays int

	flagWaist, flagNeck, flagHip, flagChest float64
	flagBicep, flagThigh, flagHeight        float64

	flagCardioMin, flagCardioDist, flagCardioKcal float64
	flagSets, flagReps                            int
	flagLiftWeight                                float64
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Body metrics derived from your profile and logs",
	RunE:  runHealth,
}

var healthBMICmd = &cobra.Command{
	Use:   "bmi",
	Short: "Body mass index from the latest weigh-in",
	Args:  cobra.NoArgs,
	RunE:  func(cmd *cobra.Command, _ []string) error { return runSingleMetric(cmd, "bmi") },
}

var healthBMRCmd = &cobra.Command{
	Use:   "bmr",
	Short: "Basal metabolic rate and daily energy expenditure",
	Args:  cobra.NoArgs,
	RunE:  func(cmd *cobra.Command, _ []string) error { return runSingleMetric(cmd, "bmr") },
}

var healthBodyFatCmd = &cobra.Command{
	Use:   "bodyfat",
	Short: "Body fat estimate from the latest measurements",
	Args:  cobra.NoArgs,
	RunE:  func(cmd *cobra.Command, _ []string) error { return runSingleMetric(cmd, "bodyfat") },
}

var healthTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Weight trend over recent days",
	Args:  cobra.NoArgs,
	RunE:  runHealthTrend,
}

var healthWeighCmd = &cobra.Command{
	Use:   "weigh WEIGHT",
	Short: "Log a weigh-in in your display units",
	Args:  cobra.ExactArgs(1),
	RunE:  runHealthWeigh,
}

var healthMeasureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Log body measurements in your display units",
	Args:  cobra.NoArgs,
	RunE:  runHealthMeasure,
}

var healthWorkoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Workout totals for recent days",
	Args:  cobra.NoArgs,
	RunE:  runWorkouts,
}

var workoutCardioCmd = &cobra.Command{
	Use:   "cardio NAME",
	Short: "Log a cardio session",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkoutCardio,
}

var workoutStrengthCmd = &cobra.Command{
	Use:   "strength NAME",
	Short: "Log a lift with uniform sets",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkoutStrength,
}

func init() {
	healthTrendCmd.Flags().IntVarP(&flagTrendDays, "days", "n", 0, "Trend window in days (default from config)")

	healthWeighCmd.Flags().StringVar(&flagWeighNotes, "notes", "", "Notes")
	mf := healthMeasureCmd.Flags()
	mf.Float64Var(&flagWaist, "waist", 0, "Waist")
	mf.Float64Var(&flagNeck, "neck", 0, "Neck")
	mf.Float64Var(&flagHip, "hip", 0, "Hip")
	mf.Float64Var(&flagChest, "chest", 0, "Chest")
	mf.Float64Var(&flagBicep, "bicep", 0, "Bicep")
	mf.Float64Var(&flagThigh, "thigh", 0, "Thigh")
	mf.Float64Var(&flagHeight, "height", 0, "Height")

	healthWorkoutCmd.Flags().IntVarP(&flagWorkoutDays, "days", "n", 7, "Window in days")
	workoutCardioCmd.Flags().Float64Var(&flagCardioMin, "minutes", 0, "Duration in minutes")
	workoutCardioCmd.Flags().Float64Var(&flagCardioDist, "km", 0, "Distance in kilometres")
	workoutCardioCmd.Flags().Float64Var(&flagCardioKcal, "kcal", 0, "Calories burned")
	workoutStrengthCmd.Flags().IntVar(&flagSets, "sets", 3, "Number of sets")
	workoutStrengthCmd.Flags().IntVar(&flagReps, "reps", 10, "Reps per set")
	workoutStrengthCmd.Flags().Float64Var(&flagLiftWeight, "weight", 0, "Weight per rep in display units")

	for _, c := range []*cobra.Command{healthWeighCmd, healthMeasureCmd, workoutCardioCmd, workoutStrengthCmd} {
		c.Flags().StringVar(&flagHealthOn, "on", "", "Date (YYYY-MM-DD, default today)")
	}

	healthWorkoutCmd.AddCommand(workoutCardioCmd, workoutStrengthCmd)
	healthCmd.AddCommand(healthBMICmd, healthBMRCmd, healthBodyFatCmd, healthTrendCmd,
		healthWeighCmd, healthMeasureCmd, healthWorkoutCmd)
	rootCmd.AddCommand(healthCmd)
}

type healthData struct {
	weights      []model.WeightEntry
	measurements []model.BodyMeasurement
	exercises    []model.Exercise
}

func loadHealth(ctx context.Context, st *store.Store) (healthData, error) {
	var d healthData
	var err error
	if d.weights, err = st.ListWeights(ctx); err != nil {
		return d, err
	}
	if d.measurements, err = st.ListMeasurements(ctx); err != nil {
		return d, err
	}
	var skipped int
	if d.exercises, skipped, err = st.ListExercises(ctx); err != nil {
		return d, err
	}
	if skipped > 0 {
		slog.Warn("exercises with unreadable details skipped", "count", skipped)
	}
	return d, nil
}

type healthReport struct {
	BMI         model.Metric
	BMICategory model.BMICategory `json:",omitempty"`
	BMR         model.Metric
	TDEE        model.Metric
	BodyFat     model.Metric
	TargetGap   model.Metric
	Trend       model.WeightTrend
	Workouts    model.WorkoutSummary
}

func buildReport(d healthData) healthReport {
	p := cfg.UserProfile()
	t := now()
	latest := health.LatestWeight(d.weights)

	r := healthReport{
		BMI:       health.EstimateBMI(p, latest),
		BMR:       health.EstimateBMR(p, latest),
		BodyFat:   health.EstimateBodyFat(p, health.LatestMeasurement(d.measurements)),
		TargetGap: health.TargetWeightGap(p, latest),
		Trend:     health.WeightTrend(d.weights, cfg.General.TrendDays, t),
		Workouts:  health.WorkoutSummary(d.exercises, period.LastDays(t, 7)),
	}
	r.TDEE = health.EstimateTDEE(p, r.BMR)
	if r.BMI.Available {
		r.BMICategory = health.Category(r.BMI.Value)
	}
	return r
}

func withReason(s string, m model.Metric) string {
	if m.Available {
		return s
	}
	return s + "  " + cli.Muted("("+m.Reason+")")
}

func runHealth(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	d, err := loadHealth(cmd.Context(), st)
	if err != nil {
		return err
	}
	r := buildReport(d)
	if flagJSON {
		return printJSON(r)
	}

	u := units()
	latest := "--"
	if w := health.LatestWeight(d.weights); w != nil {
		latest = cli.FormatWeight(w.Weight, u) + "  " + cli.Muted(cli.FormatDay(w.Date, now()))
	}
	gap := withReason("--", r.TargetGap)
	if r.TargetGap.Available {
		gap = cli.FormatWeight(r.TargetGap.Value, u) + " to go"
		if r.TargetGap.Value < 0 {
			gap = cli.FormatWeight(-r.TargetGap.Value, u) + " to gain"
		}
	}
	bmi := withReason(cli.FormatMetric(r.BMI, 1, ""), r.BMI)
	if r.BMICategory != "" {
		bmi += "  " + string(r.BMICategory)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("HEALTH"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{Rows: [][]string{
		{"Weight", latest},
		{"Target", gap},
		{"Trend", trendLine(r.Trend)},
		{"---"},
		{"BMI", bmi},
		{"BMR", withReason(cli.FormatMetric(r.BMR, 0, "kcal"), r.BMR)},
		{"TDEE", withReason(cli.FormatMetric(r.TDEE, 0, "kcal"), r.TDEE)},
		{"Body fat", withReason(cli.FormatMetric(r.BodyFat, 1, "%"), r.BodyFat)},
		{"---"},
		{"Workouts (7d)", workoutLine(r.Workouts)},
	}}))
	fmt.Println()
	return nil
}

func trendLine(tr model.WeightTrend) string {
	if tr.Entries < 2 {
		return cli.Muted("not enough weigh-ins")
	}
	arrow := map[model.TrendDirection]string{model.TrendUp: "↑", model.TrendDown: "↓", model.TrendStable: "→"}[tr.Direction]
	return fmt.Sprintf("%s %s over %d weigh-ins", arrow, cli.FormatWeight(tr.Change, units()), tr.Entries)
}

func workoutLine(w model.WorkoutSummary) string {
	if w.Sessions == 0 {
		return cli.Muted("none")
	}
	s := fmt.Sprintf("%d sessions", w.Sessions)
	if w.CardioMinutes > 0 {
		s += ", " + cli.FormatDuration(w.CardioMinutes) + " cardio"
	}
	if w.StrengthSets > 0 {
		s += fmt.Sprintf(", %d sets", w.StrengthSets)
	}
	return s
}

func runSingleMetric(cmd *cobra.Command, which string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	d, err := loadHealth(cmd.Context(), st)
	if err != nil {
		return err
	}
	r := buildReport(d)

	var out map[string]model.Metric
	switch which {
	case "bmi":
		out = map[string]model.Metric{"BMI": r.BMI}
	case "bmr":
		out = map[string]model.Metric{"BMR": r.BMR, "TDEE": r.TDEE}
	default:
		out = map[string]model.Metric{"Body fat": r.BodyFat}
	}
	if flagJSON {
		return printJSON(out)
	}

	switch which {
	case "bmi":
		line := withReason(cli.FormatMetric(r.BMI, 1, ""), r.BMI)
		if r.BMICategory != "" {
			line += "  " + string(r.BMICategory)
		}
		fmt.Printf("  BMI       %s\n", line)
	case "bmr":
		fmt.Printf("  BMR       %s\n", withReason(cli.FormatMetric(r.BMR, 0, "kcal/day"), r.BMR))
		fmt.Printf("  TDEE      %s  %s\n", withReason(cli.FormatMetric(r.TDEE, 0, "kcal/day"), r.TDEE),
			cli.Muted(cfg.Profile.ActivityLevel))
	default:
		fmt.Printf("  Body fat  %s\n", withReason(cli.FormatMetric(r.BodyFat, 1, "%"), r.BodyFat))
	}
	return nil
}

func runHealthTrend(cmd *cobra.Command, _ []string) error {
	days := flagTrendDays
	if days <= 0 {
		days = cfg.General.TrendDays
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	weights, err := st.ListWeights(cmd.Context())
	if err != nil {
		return err
	}
	t := now()
	tr := health.WeightTrend(weights, days, t)
	if flagJSON {
		return printJSON(tr)
	}

	series := health.DailyWeights(weights, period.LastDays(t, days))
	fmt.Printf("\n  Last %d days  %s\n", days, trendLine(tr))
	if len(series) > 1 {
		fmt.Printf("  %s\n", cli.RenderSparkline(series))
	}
	fmt.Println()
	return nil
}

// toKg converts a weight in display units to kilograms.
func toKg(v float64) float64 {
	if units() == model.ImperialUnits {
		return health.LbToKg(v)
	}
	return v
}

// toCm converts a length in display units to centimetres; zero means unset.
func toCm(v float64) *float64 {
	if v == 0 {
		return nil
	}
	if units() == model.ImperialUnits {
		v = health.InToCm(v)
	}
	return &v
}

func runHealthWeigh(cmd *cobra.Command, args []string) error {
	w, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid weight %q", args[0])
	}
	day, err := parseDayFlag(flagHealthOn)
	if err != nil {
		return err
	}
	entry := model.WeightEntry{Weight: toKg(w), Date: day, Notes: flagWeighNotes}
	if err := entry.Validate(); err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.InsertWeight(cmd.Context(), entry); err != nil {
		return err
	}
	slog.Info("weight logged", "kg", entry.Weight)
	fmt.Printf("  Logged %s on %s\n", cli.FormatWeight(entry.Weight, units()), day.Format("2006-01-02"))
	return nil
}

func runHealthMeasure(cmd *cobra.Command, _ []string) error {
	day, err := parseDayFlag(flagHealthOn)
	if err != nil {
		return err
	}
	m := model.BodyMeasurement{Date: day, Measurements: model.Measurements{
		Height: toCm(flagHeight),
		Waist:  toCm(flagWaist),
		Chest:  toCm(flagChest),
		Hip:    toCm(flagHip),
		Neck:   toCm(flagNeck),
		Bicep:  toCm(flagBicep),
		Thigh:  toCm(flagThigh),
	}}
	if err := m.Validate(); err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.InsertMeasurement(cmd.Context(), m); err != nil {
		return err
	}
	bf := health.EstimateBodyFat(cfg.UserProfile(), &m)
	fmt.Printf("  Measurements logged on %s\n", day.Format("2006-01-02"))
	mm := m.Measurements
	for _, f := range []struct {
		name string
		cm   *float64
	}{
		{"Height", mm.Height}, {"Waist", mm.Waist}, {"Chest", mm.Chest}, {"Hip", mm.Hip},
		{"Neck", mm.Neck}, {"Bicep", mm.Bicep}, {"Thigh", mm.Thigh},
	} {
		if f.cm != nil {
			fmt.Printf("    %-8s %s\n", f.name, cli.FormatLength(*f.cm, units()))
		}
	}
	fmt.Printf("  Body fat %s\n", withReason(cli.FormatMetric(bf, 1, "%"), bf))
	return nil
}

func runWorkouts(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	d, err := loadHealth(cmd.Context(), st)
	if err != nil {
		return err
	}
	w := period.LastDays(now(), flagWorkoutDays)
	sum := health.WorkoutSummary(d.exercises, w)
	if flagJSON {
		return printJSON(sum)
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title: "Workouts  " + w.String(),
		Rows: [][]string{
			{"Sessions", cli.FormatNumber(int64(sum.Sessions))},
			{"Cardio", cli.FormatDuration(sum.CardioMinutes)},
			{"Distance", cli.FormatFloat(sum.DistanceKm, 1) + " km"},
			{"Calories", cli.FormatFloat(sum.CaloriesBurned, 0) + " kcal"},
			{"Sets", cli.FormatNumber(int64(sum.StrengthSets))},
			{"Volume", cli.FormatWeight(sum.StrengthVolumeKg, units())},
		},
	}))
	fmt.Println()
	return nil
}

func optional(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func saveExercise(cmd *cobra.Command, e model.Exercise) error {
	day, err := parseDayFlag(flagHealthOn)
	if err != nil {
		return err
	}
	e.Date = day
	if err := e.Validate(); err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.InsertExercise(cmd.Context(), e); err != nil {
		return err
	}
	fmt.Printf("  Logged %s %s on %s\n", e.Kind(), e.Name, day.Format("2006-01-02"))
	return nil
}

func runWorkoutCardio(cmd *cobra.Command, args []string) error {
	if flagCardioMin <= 0 {
		return fmt.Errorf("--minutes must be positive")
	}
	return saveExercise(cmd, model.Exercise{Name: args[0], Details: model.CardioDetails{
		DurationMin: flagCardioMin,
		DistanceKm:  optional(flagCardioDist),
		Calories:    optional(flagCardioKcal),
	}})
}

func runWorkoutStrength(cmd *cobra.Command, args []string) error {
	if flagSets < 1 || flagReps < 1 {
		return fmt.Errorf("--sets and --reps must be at least 1")
	}
	sets := make([]model.StrengthSet, flagSets)
	for i := range sets {
		sets[i] = model.StrengthSet{Reps: flagReps, WeightKg: toKg(flagLiftWeight)}
	}
	return saveExercise(cmd, model.Exercise{Name: args[0], Details: model.StrengthDetails{
		Exercises: []model.StrengthExercise{{Name: args[0], Sets: sets}},
	}})
}
