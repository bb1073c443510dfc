package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/terrasim/internal/analysis"
	"github.com/san-kum/terrasim/internal/config"
	"github.com/san-kum/terrasim/internal/eco"
	"github.com/san-kum/terrasim/internal/montecarlo"
	"github.com/san-kum/terrasim/internal/optim"
	"github.com/san-kum/terrasim/internal/sim"
	"github.com/san-kum/terrasim/internal/storage"
	"github.com/san-kum/terrasim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	days       int
	seed       int64
	workers    int
	difficulty float64
	saveBatch  bool
	// Calibration
	target     float64
	calibRuns  int
	paramSpecs []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "terrasim",
		Short: "closed terrarium ecosystem lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".terrasim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate one bottle",
		RunE:  runBottle,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset setup")
	runCmd.Flags().IntVar(&days, "days", config.DefaultDayCap, "day budget")
	runCmd.Flags().Float64Var(&difficulty, "difficulty", 0, "difficulty 0..1")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a bottle live with keeper controls",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset setup")
	liveCmd.Flags().IntVar(&days, "days", config.DefaultDayCap, "day budget")
	liveCmd.Flags().Float64Var(&difficulty, "difficulty", 0, "difficulty 0..1")

	mcCmd := &cobra.Command{
		Use:   "montecarlo [runs] [days]",
		Short: "run a randomized batch and summarize survival",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runMontecarlo,
	}
	mcCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	mcCmd.Flags().Int64Var(&seed, "seed", 0, "batch seed (0 uses the clock)")
	mcCmd.Flags().IntVar(&workers, "workers", 0, "worker count (0 uses all cpus)")
	mcCmd.Flags().Float64Var(&difficulty, "difficulty", 0, "difficulty 0..1")
	mcCmd.Flags().BoolVar(&saveBatch, "save", false, "persist the batch under the data directory")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [batch_id]",
		Short: "re-analyze a stored batch",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeBatch,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored batches",
		RunE:  listBatches,
	}

	exportCmd := &cobra.Command{
		Use:   "export [batch_id]",
		Short: "export batch metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportBatch,
	}

	calibrateCmd := &cobra.Command{
		Use:   "calibrate",
		Short: "grid-search rate constants toward a target survival rate",
		RunE:  runCalibrate,
	}
	calibrateCmd.Flags().Float64Var(&target, "target", 0.5, "target survival rate")
	calibrateCmd.Flags().IntVar(&calibRuns, "runs", 200, "runs per grid point")
	calibrateCmd.Flags().IntVar(&days, "days", 90, "day budget per run")
	calibrateCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "batch seed")
	calibrateCmd.Flags().IntVar(&workers, "workers", 0, "worker count")
	calibrateCmd.Flags().StringArrayVar(&paramSpecs, "param", nil, "sweep spec name=lo:hi:steps (repeatable)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available bottle presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s %d plants, %.0f kg %s soil, %.0f L water, window %d\n",
					name, cfg.Setup.Plants, cfg.Setup.SoilKg, cfg.Setup.Soil,
					cfg.Setup.WaterLiters, cfg.Setup.WindowProximity)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, mcCmd, analyzeCmd, listCmd, exportCmd, calibrateCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, file, and flags in that order.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if difficulty != 0 {
		cfg.Difficulty = difficulty
	}
	return cfg, nil
}

// seriesObserver collects per-interval trajectories for plotting.
type seriesObserver struct {
	o2, plants, toxicity []float64
}

func (o *seriesObserver) OnStep(s eco.State, _ eco.Verdict) {
	o.o2 = append(o.o2, s.O2)
	o.plants = append(o.plants, s.PlantBiomass)
	o.toxicity = append(o.toxicity, s.Toxicity)
}

func runBottle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	setup, err := cfg.EcoSetup()
	if err != nil {
		return err
	}
	params, err := cfg.EffectiveParams()
	if err != nil {
		return err
	}

	initial, err := eco.NewState(setup)
	if err != nil {
		return err
	}

	obs := &seriesObserver{}
	runner := sim.New(params, eco.DefaultThresholds())
	runner.AddObserver(obs)
	runner.AddMetric(sim.NewMinOxygen())
	runner.AddMetric(sim.NewPeakToxicity())

	fmt.Printf("simulating %d days...\n", days)
	start := time.Now()
	result, err := runner.Run(context.Background(), initial, days)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	plots := []struct {
		name string
		data []float64
	}{
		{"oxygen fraction", obs.o2},
		{"plant biomass", obs.plants},
		{"toxicity", obs.toxicity},
	}
	for _, p := range plots {
		if len(p.data) < 2 {
			continue
		}
		fmt.Println(asciigraph.Plot(p.data,
			asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(p.name)))
		fmt.Println()
	}

	if result.Survived {
		fmt.Printf("survived all %d days\n", result.DayReached)
	} else {
		fmt.Printf("collapsed on day %d: %s\n", result.DayReached, result.Cause)
	}
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.4f\n", name, val)
	}
	if result.DomainViolations > 0 {
		fmt.Printf("  domain clamps: %d\n", result.DomainViolations)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	setup, err := cfg.EcoSetup()
	if err != nil {
		return err
	}
	params, err := cfg.EffectiveParams()
	if err != nil {
		return err
	}
	initial, err := eco.NewState(setup)
	if err != nil {
		return err
	}

	model := viz.NewModel(params, eco.DefaultThresholds(), initial, days)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runMontecarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runs := cfg.Montecarlo.Runs
	dayCap := cfg.Montecarlo.DayCap
	if len(args) > 0 {
		if runs, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("invalid run count: %s", args[0])
		}
	}
	if len(args) > 1 {
		if dayCap, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("invalid day count: %s", args[1])
		}
	}

	batchSeed := cfg.Montecarlo.Seed
	if cmd.Flags().Changed("seed") {
		batchSeed = seed
	}
	if batchSeed == 0 {
		batchSeed = time.Now().UnixNano()
	}

	params, err := cfg.EffectiveParams()
	if err != nil {
		return err
	}

	driver := montecarlo.NewDriver(params, eco.DefaultThresholds())
	driver.Workers = workers
	if driver.Workers == 0 {
		driver.Workers = cfg.Montecarlo.Workers
	}
	driver.OnProgress = func(done, total int) {
		if done%100 == 0 || done == total {
			fmt.Printf("\r%d/%d runs", done, total)
		}
	}

	fmt.Printf("running %d bottles for up to %d days (seed %d)...\n", runs, dayCap, batchSeed)
	start := time.Now()
	results, err := driver.Run(context.Background(), runs, dayCap, batchSeed)
	if err != nil {
		return err
	}
	fmt.Printf("\ncompleted in %v\n\n", time.Since(start))

	summary := analysis.Analyze(results)
	printSummary(summary, dayCap)

	if saveBatch {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		id, err := store.Save(batchSeed, dayCap, results)
		if err != nil {
			return err
		}
		fmt.Printf("\nbatch saved: %s\n", id)
	}
	return nil
}

func printSummary(s analysis.Summary, dayCap int) {
	fmt.Printf("runs: %d\n", s.TotalRuns)
	if s.TotalRuns == 0 {
		return
	}
	fmt.Printf("survived: %d (%.1f%%)\n", s.Survived, s.SurvivalRate*100)
	fmt.Printf("collapsed: %d\n", s.Collapsed)
	fmt.Printf("mean days: %.1f\n\n", s.MeanDays)

	if s.Collapsed > 0 {
		fmt.Println(asciigraph.Plot(collapseSeries(s.CollapseDayHist, dayCap),
			asciigraph.Height(10), asciigraph.Width(80),
			asciigraph.Caption("collapses per day")))
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CAUSE\tCOUNT\tSHARE")
		causes := make([]eco.Cause, 0, len(s.CauseHist))
		for c := range s.CauseHist {
			causes = append(causes, c)
		}
		sort.Slice(causes, func(i, j int) bool { return s.CauseHist[causes[i]] > s.CauseHist[causes[j]] })
		for _, c := range causes {
			n := s.CauseHist[c]
			fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", c, n, 100*float64(n)/float64(s.Collapsed))
		}
		w.Flush()
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAMETER\tSURVIVOR MEAN\tOVERALL MEAN\tLIFT")
	for _, p := range s.Parameters {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\n", p.Name, p.SurvivorMean, p.OverallMean, p.Lift)
	}
	w.Flush()
}

// collapseSeries expands the day histogram to a dense series so the
// plot's x axis is days.
func collapseSeries(hist map[int]int, dayCap int) []float64 {
	series := make([]float64, dayCap)
	for day, n := range hist {
		if day >= 1 && day <= dayCap {
			series[day-1] = float64(n)
		}
	}
	return series
}

func analyzeBatch(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	results, err := store.LoadResults(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("batch: %s (seed %d)\n\n", meta.ID, meta.Seed)
	printSummary(analysis.Analyze(results), meta.DayCap)
	return nil
}

func listBatches(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	batches, err := store.List()
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		fmt.Println("no batches found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tRUNS\tDAYS\tSURVIVED\tSEED")
	for _, b := range batches {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n",
			b.ID, b.Timestamp.Format("2006-01-02 15:04:05"),
			b.Runs, b.DayCap, b.Survived, b.Seed)
	}
	return w.Flush()
}

func exportBatch(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// parseParamSpec parses name=lo:hi:steps into a sweep.
func parseParamSpec(spec string) (string, []float64, error) {
	name, rng, ok := strings.Cut(spec, "=")
	if !ok {
		return "", nil, fmt.Errorf("invalid param spec: %s (want name=lo:hi:steps)", spec)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("invalid param range: %s (want lo:hi:steps)", rng)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, err
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, err
	}
	steps, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", nil, err
	}
	return name, optim.Values(lo, hi, steps), nil
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	if len(paramSpecs) == 0 {
		return fmt.Errorf("at least one --param sweep is required")
	}

	names := make([]string, 0, len(paramSpecs))
	ranges := make([][]float64, 0, len(paramSpecs))
	points := 1
	known := eco.DefaultParams()
	for _, spec := range paramSpecs {
		name, vals, err := parseParamSpec(spec)
		if err != nil {
			return err
		}
		if _, err := known.Get(name); err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, vals)
		points *= len(vals)
	}

	fmt.Printf("sweeping %d grid points, %d runs each, target survival %.0f%%\n",
		points, calibRuns, target*100)

	evaluated := 0
	gs := optim.NewGridSearch(names, ranges)
	best, score, err := gs.Search(context.Background(), func(vals map[string]float64) (float64, error) {
		params := eco.DefaultParams()
		for name, v := range vals {
			if err := params.Set(name, v); err != nil {
				return 0, err
			}
		}

		driver := montecarlo.NewDriver(params, eco.DefaultThresholds())
		driver.Workers = workers
		results, err := driver.Run(context.Background(), calibRuns, days, seed)
		if err != nil {
			return 0, err
		}

		summary := analysis.Analyze(results)
		evaluated++
		fmt.Printf("  [%d/%d] %v -> survival %.1f%%\n", evaluated, points, vals, summary.SurvivalRate*100)
		return abs(summary.SurvivalRate - target), nil
	})
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no grid point could be evaluated")
	}

	fmt.Printf("\nbest point (|survival - target| = %.3f):\n", score)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6g\n", name, best[name])
	}
	return w.Flush()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
