package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/elverum/plasmalab/internal/analysis"
	"github.com/elverum/plasmalab/internal/automation"
	"github.com/elverum/plasmalab/internal/config"
	"github.com/elverum/plasmalab/internal/experiment"
	"github.com/elverum/plasmalab/internal/export"
	"github.com/elverum/plasmalab/internal/metrics"
	"github.com/elverum/plasmalab/internal/optim"
	"github.com/elverum/plasmalab/internal/physics"
	"github.com/elverum/plasmalab/internal/sim"
	"github.com/elverum/plasmalab/internal/storage"
	"github.com/elverum/plasmalab/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	label       string
	ticks       int
	sampleEvery int
	frameRate   int
	field       string
	format      string
	outFile     string
	scanPoints  int

	// Parameter flags shared by eval/run/live.
	density  float64
	bfield   float64
	rotation float64
	salt     float64
	bio      float64
	tilt     float64
	lunarKm  float64
	phase    float64
	solar    float64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "plasmalab",
		Short: "salt-plasma generator model with lunar and solar coupling",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".plasmalab", "data directory")

	addParamFlags := func(cmd *cobra.Command) {
		def := physics.DefaultParameters()
		cmd.Flags().Float64Var(&density, "density", def.PlasmaDensity, "plasma density (m^-3)")
		cmd.Flags().Float64Var(&bfield, "bfield", def.MagneticField, "magnetic field (T)")
		cmd.Flags().Float64Var(&rotation, "rotation", def.RotationRate, "rotation rate (rad/s)")
		cmd.Flags().Float64Var(&salt, "salt", def.SaltConcentration, "salt concentration (mol/L)")
		cmd.Flags().Float64Var(&bio, "bio", def.BioelectricField, "bioelectric field (V/m)")
		cmd.Flags().Float64Var(&tilt, "tilt", def.EarthTilt, "earth tilt (degrees)")
		cmd.Flags().Float64Var(&lunarKm, "lunar-distance", def.LunarDistance, "lunar distance (km)")
		cmd.Flags().Float64Var(&phase, "phase", def.LunarPhase, "lunar phase [0,1)")
		cmd.Flags().Float64Var(&solar, "solar", def.SolarActivity, "solar activity [0,1]")
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "named preset")
	}

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate the model once and print the results",
		RunE:  runEval,
	}
	addParamFlags(evalCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the cadence headless and store the result",
		RunE:  runHeadless,
	}
	addParamFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "tick budget")
	runCmd.Flags().IntVar(&sampleEvery, "sample", config.DefaultSampleEvery, "sampling stride (ticks)")
	runCmd.Flags().StringVar(&label, "label", "run", "run label")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive dashboard",
		RunE:  runLive,
	}
	addParamFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	lunarCmd := &cobra.Command{
		Use:   "lunar",
		Short: "trace one full lunar cycle across the phase range",
		RunE:  runLunarScan,
	}
	addParamFlags(lunarCmd)
	lunarCmd.Flags().IntVar(&scanPoints, "points", 60, "phase points to evaluate")
	lunarCmd.Flags().StringVar(&field, "field", "output_voltage", "result field to plot")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's history",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&field, "field", "output_voltage", "result field to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run's history",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&field, "field", "output_voltage", "result field (svg)")
	exportCmd.Flags().StringVar(&format, "format", "csv", "csv or svg")
	exportCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	scanCmd := &cobra.Command{
		Use:   "scan [param]",
		Short: "sweep one parameter across its range and plot a result field",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	addParamFlags(scanCmd)
	scanCmd.Flags().IntVar(&scanPoints, "points", 40, "sweep points")
	scanCmd.Flags().StringVar(&field, "field", "output_voltage", "result field to plot")

	optimizeCmd := &cobra.Command{
		Use:   "optimize [param...]",
		Short: "grid-search parameters for the highest valid output voltage",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runOptimize,
	}
	addParamFlags(optimizeCmd)
	optimizeCmd.Flags().IntVar(&scanPoints, "points", 8, "grid points per axis")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	rootCmd.AddCommand(evalCmd, runCmd, liveCmd, lunarCmd, scanCmd, optimizeCmd,
		scenarioCmd, listCmd, plotCmd, exportCmd, presetsCmd)
	return rootCmd
}

// resolveParams layers preset < config file < explicit flags.
func resolveParams(cmd *cobra.Command) (physics.Parameters, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return physics.Parameters{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return physics.Parameters{}, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	params := cfg.Parameters()
	var setErr error
	set := func(flag, name string, v float64) {
		if setErr != nil || !cmd.Flags().Changed(flag) {
			return
		}
		setErr = params.SetParam(name, v)
	}
	set("density", "plasma_density", density)
	set("bfield", "magnetic_field", bfield)
	set("rotation", "rotation_rate", rotation)
	set("salt", "salt_concentration", salt)
	set("bio", "bioelectric_field", bio)
	set("tilt", "earth_tilt", tilt)
	set("lunar-distance", "lunar_distance", lunarKm)
	set("phase", "lunar_phase", phase)
	set("solar", "solar_activity", solar)
	if setErr != nil {
		return physics.Parameters{}, setErr
	}

	return params.Clamp(), nil
}

func openStore() (*storage.Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return storage.Open(filepath.Join(dataDir, "runs.db"))
}

func runEval(cmd *cobra.Command, args []string) error {
	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}
	results := physics.Evaluate(params)
	printResults(params, results)
	return nil
}

func printResults(params physics.Parameters, r physics.Results) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "output voltage\t%.4f\tV\n", r.OutputVoltage)
	fmt.Fprintf(w, "field compression\t%.4f\tx\n", r.FieldCompression)
	fmt.Fprintf(w, "current\t%.4f\tA\n", r.Current)
	fmt.Fprintf(w, "plasma beta\t%.4g\t\n", r.PlasmaBeta)
	fmt.Fprintf(w, "debye length\t%.4f\tµm\n", r.DebyeLength)
	fmt.Fprintf(w, "plasma frequency\t%.4f\tGHz\n", r.PlasmaFrequency)
	fmt.Fprintf(w, "z-pinch force\t%.4g\tN\n", r.ZPinchForce)
	fmt.Fprintf(w, "lorentz force\t%.4g\tN\n", r.LorentzForce)
	fmt.Fprintf(w, "magnetic pressure\t%.4g\tPa\n", r.MagneticPressure)
	fmt.Fprintf(w, "field energy\t%.4g\tJ\n", r.FieldEnergy)
	fmt.Fprintf(w, "emergent gravity\t%.4g\tG\n", r.EmergentGravity)
	fmt.Fprintf(w, "solar coupling\t%.4f\t\n", r.SolarCoupling)
	fmt.Fprintf(w, "lunar alignment\t%.4f\t\n", r.LunarAlignment)
	fmt.Fprintf(w, "effective density\t%.4f\tx1e15 m^-3\n", r.EffectiveDensity)
	w.Flush()

	fmt.Println("\nindicators:")
	for name, ok := range metrics.Check(r, params.InputVoltage).Flags() {
		mark := "fail"
		if ok {
			mark = "ok"
		}
		fmt.Printf("  %-12s %s\n", name, mark)
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Params:      params,
		Ticks:       ticks,
		SampleEvery: sampleEvery,
	})
	for _, m := range metrics.Default(params.InputVoltage) {
		exp.AddMetric(m)
	}

	fmt.Printf("running %d ticks...\n", ticks)
	start := time.Now()
	res, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v (%d recomputes, %d samples)\n", time.Since(start), res.Recomputes, len(res.Samples))

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runID, err := st.SaveRun(label, res)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n\nmetrics:\n", runID)
	for name, val := range res.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}
	sched := sim.NewScheduler(params)
	sched.Start()
	return viz.Run(sched, frameRate)
}

func runLunarScan(cmd *cobra.Command, args []string) error {
	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	scan := sim.Scan{Param: "lunar_phase", From: 0, To: 1, Points: scanPoints}
	points, err := scan.Run(context.Background(), params)
	if err != nil {
		return err
	}

	series := make([]float64, 0, len(points))
	for _, pt := range points {
		v, ok := pt.Results.Fields()[field]
		if !ok {
			return fmt.Errorf("unknown field: %s", field)
		}
		series = append(series, v)
	}

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("%s over one lunar cycle", field))))
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	s, err := analysis.SweepRange(context.Background(), params, args[0], scanPoints, field)
	if err != nil {
		return err
	}

	fmt.Println(asciigraph.Plot(s.Series,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("%s vs %s", s.Field, s.Param))))
	fmt.Printf("\nmin %.6g · max %.6g · mean %.6g · spread %.6g\n", s.Min, s.Max, s.Mean, s.Spread)
	return nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	ranges := make([][]float64, 0, len(args))
	for _, name := range args {
		r, ok := physics.Ranges[name]
		if !ok {
			return fmt.Errorf("parameter %s has no documented range", name)
		}
		ranges = append(ranges, optim.Steps(r.Min, r.Max, scanPoints))
	}

	valid := func(p physics.Parameters, r physics.Results) bool {
		return metrics.Check(r, p.InputVoltage).AllValid()
	}
	best, score, err := optim.NewGridSearch(args, ranges).Search(
		context.Background(), params, optim.MaxVoltage(valid))
	if err != nil {
		return err
	}
	if best == nil {
		fmt.Println("no grid point satisfied the validity indicators")
		return nil
	}

	fmt.Printf("best output voltage: %.4f V\n", score)
	for _, name := range args {
		fmt.Printf("  %s: %.6g\n", name, best[name])
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	results, err := automation.RunScenario(context.Background(), sc, st)
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d steps\n", sc.Name, len(results))
	for i, sr := range results {
		fmt.Printf("  step %d (%s): %d ticks, %d recomputes, output %.2f V\n",
			i+1, sr.Step.Label, sr.Result.Ticks, sr.Result.Recomputes, sr.Result.Final.OutputVoltage)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	metas, err := st.ListRuns()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tCREATED\tTICKS\tRECOMPUTES\tOUTPUT V")
	for _, m := range metas {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.2f\n",
			m.ID, m.Label, m.CreatedAt.Format(time.RFC3339), m.Ticks, m.Recomputes, m.Final.OutputVoltage)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("run %s has too few samples to plot", args[0])
	}

	series := make([]float64, 0, len(samples))
	for _, s := range samples {
		v, ok := s.Results.Fields()[field]
		if !ok {
			return fmt.Errorf("unknown field: %s", field)
		}
		series = append(series, v)
	}

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("%s (%s)", field, args[0]))))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "csv":
		return export.WriteCSV(out, samples)
	case "svg":
		_, err := fmt.Fprint(out, export.SeriesSVG(samples, field))
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
