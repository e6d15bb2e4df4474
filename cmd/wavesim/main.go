package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/wavesim/internal/config"
	"github.com/san-kum/wavesim/internal/experiment"
	"github.com/san-kum/wavesim/internal/scenario"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	configFile  string
	preset      string
	steps       int
	quality     int
	resolution  float64
	breadth     float64
	wall        float64
	slit        float64
	outDir      string
	workers     int
	skipSurface bool
	spin        float64

	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepPoints int
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// main registers the wavesim commands and exits with status 1 if the
// selected command fails.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "wavesim",
		Short:        "wave interference simulator",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "run record directory (default <out>/.wavesim)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", ".", "output directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "simulate and render scenarios",
		RunE:  runScenarios,
	}
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "time steps per period")
	runCmd.Flags().IntVar(&quality, "quality", config.DefaultQuality, "surface sampling stride")
	runCmd.Flags().Float64Var(&resolution, "resolution", config.DefaultResolution, "grid spacing")
	runCmd.Flags().Float64Var(&breadth, "breadth", config.DefaultBreadth, "half width of the wall")
	runCmd.Flags().Float64Var(&wall, "wall", config.DefaultWallDistance, "distance from slits to wall")
	runCmd.Flags().Float64Var(&slit, "slit", config.DefaultSlitDistance, "distance between the double slits")
	runCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = all cpus)")
	runCmd.Flags().BoolVar(&skipSurface, "skip-surface", false, "skip the 3d surface animation")
	runCmd.Flags().Float64Var(&spin, "spin", 0, "camera rotation in degrees over the animation")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenarios",
		RunE:  listScenarios,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the time-averaged wall of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "fringe analysis of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "replay the wall of a run in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  viewRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as json",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the wall table of a run as csv",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "export the time-averaged wall as svg",
		Args:  cobra.MaximumNArgs(2),
		RunE:  exportSVG,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "measure fringe spacing across a range of slit or wall distances",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	sweepCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "time steps per period")
	sweepCmd.Flags().Float64Var(&resolution, "resolution", config.DefaultResolution, "grid spacing")
	sweepCmd.Flags().Float64Var(&breadth, "breadth", config.DefaultBreadth, "half width of the wall")
	sweepCmd.Flags().Float64Var(&wall, "wall", config.DefaultWallDistance, "distance from slits to wall")
	sweepCmd.Flags().Float64Var(&slit, "slit", config.DefaultSlitDistance, "distance between the double slits")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = all cpus)")
	sweepCmd.Flags().StringVar(&sweepParam, "param", experiment.ParamSlitDistance, "parameter to vary (slit_distance, wall_distance)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 10, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 40, "last value")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 7, "number of values")

	rootCmd.AddCommand(runCmd, scenariosCmd, presetsCmd, listCmd, plotCmd, analyzeCmd,
		viewCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, sweepCmd)
	return rootCmd
}

// buildConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Apply(p)
	}

	if err := applyLocation(cmd, cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("quality") {
		cfg.Quality = quality
	}
	if flags.Changed("resolution") {
		cfg.Resolution = resolution
	}
	if flags.Changed("breadth") {
		cfg.Breadth = breadth
	}
	if flags.Changed("wall") {
		cfg.WallDistance = wall
	}
	if flags.Changed("slit") {
		cfg.SlitDistance = slit
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("skip-surface") {
		cfg.Render.SkipSurface = skipSurface
	}
	if flags.Changed("spin") {
		cfg.Render.Spin = spin
	}
	if len(args) > 0 {
		cfg.Scenarios = append([]string(nil), args...)
	}

	return cfg, cfg.Validate()
}

// applyLocation overlays the config file and the --out and --data flags,
// which together decide where outputs and run records live.
func applyLocation(cmd *cobra.Command, cfg *config.Config) error {
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = outDir
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return nil
}

func runScenarios(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	ids, err := cfg.ScenarioIDs()
	if err != nil {
		return err
	}

	runner, err := experiment.NewRunner(cfg, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(titleStyle.Render(fmt.Sprintf("wavesim: %d scenario(s)", len(ids))))
	fmt.Println(dimStyle.Render(fmt.Sprintf("resolution %.3f, steps %d, wall %.1f, breadth %.1f, slit %.3f",
		cfg.Resolution, cfg.Steps, cfg.WallDistance, cfg.Breadth, cfg.SlitDistance)))

	start := time.Now()
	results, err := runner.RunAll(ctx, ids)

	fmt.Printf("\ncompleted %d/%d in %v\n", len(results), len(ids), time.Since(start).Round(time.Millisecond))
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("some scenarios failed"))
		return err
	}
	return nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("scenarios"))
	for _, id := range scenario.All() {
		fmt.Printf("  %-28s %s\n", id, dimStyle.Render(scenario.Describe(id)))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("presets"))
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		desc := fmt.Sprintf("steps=%d quality=%d resolution=%g", p.Steps, p.Quality, p.Resolution)
		if len(p.Scenarios) > 0 {
			desc += " scenarios=" + strings.Join(p.Scenarios, ",")
		}
		fmt.Printf("  %-18s %s\n", name, dimStyle.Render(desc))
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, nil)
	if err != nil {
		return err
	}
	id, err := scenario.Parse(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sw := &experiment.Sweep{Scenario: id, Param: sweepParam, Min: sweepMin, Max: sweepMax, Points: sweepPoints}
	fmt.Println(titleStyle.Render(fmt.Sprintf("sweep %s over %s", id, sweepParam)))

	results, err := experiment.RunSweep(ctx, cfg, sw, os.Stdout)
	if err != nil {
		return err
	}

	spacing := make([]float64, len(results))
	for i, r := range results {
		spacing[i] = r.Metrics.FringeSpacing
	}
	if len(spacing) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(spacing,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("fringe spacing vs %s (%.2f to %.2f)", sweepParam, sweepMin, sweepMax)),
		))
	}
	return nil
}
