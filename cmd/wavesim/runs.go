package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/wavesim/internal/analysis"
	"github.com/san-kum/wavesim/internal/config"
	"github.com/san-kum/wavesim/internal/render"
	"github.com/san-kum/wavesim/internal/storage"
	"github.com/san-kum/wavesim/internal/tui"
	"github.com/spf13/cobra"
)

// recordStore opens the records written by run for the same --out, --data
// and --config.
func recordStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg := config.DefaultConfig()
	if err := applyLocation(cmd, cfg); err != nil {
		return nil, err
	}
	return storage.New(cfg.RecordDir()), nil
}

// resolveRun picks the requested run, or the newest one.
func resolveRun(st *storage.Store, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	return st.Latest()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := recordStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tGRID\tSTEPS\tRES\tDURATION")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%.3f\t%.2fs\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Grid[0], run.Grid[1],
			run.Steps,
			run.Resolution,
			run.Duration,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := recordStore(cmd)
	if err != nil {
		return err
	}
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	wall, err := st.LoadWall(runID)
	if err != nil {
		return err
	}
	if wall.Steps() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("positions: %d, steps: %d\n\n", len(wall.Ys), wall.Steps())

	graph := asciigraph.Plot(wall.Average,
		asciigraph.Height(12),
		asciigraph.Width(90),
		asciigraph.Caption("time-averaged intensity along the wall"),
	)
	fmt.Println(graph)
	fmt.Println()

	last := wall.Values[wall.Steps()-1]
	graph = asciigraph.Plot(last,
		asciigraph.Height(8),
		asciigraph.Width(90),
		asciigraph.Caption(fmt.Sprintf("instantaneous intensity at step %d", wall.Steps()-1)),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st, err := recordStore(cmd)
	if err != nil {
		return err
	}
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	wall, err := st.LoadWall(runID)
	if err != nil {
		return err
	}

	m, err := analysis.Analyze(wall.Ys, wall.Average)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("fringe analysis: " + runID))
	metrics := m.Map()
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-20s %.6f\n", name, metrics[name])
	}

	centered := make([]float64, len(wall.Average))
	for i, v := range wall.Average {
		centered[i] = v - m.Mean
	}
	ps := analysis.PowerSpectrum(centered)
	if len(ps) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(ps[1:],
			asciigraph.Height(10),
			asciigraph.Width(90),
			asciigraph.Caption("power spectrum (mean removed)"),
		))
	}
	return nil
}

func viewRun(cmd *cobra.Command, args []string) error {
	st, err := recordStore(cmd)
	if err != nil {
		return err
	}
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	wall, err := st.LoadWall(runID)
	if err != nil {
		return err
	}
	return tui.Run(*meta, wall)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := recordStore(cmd)
	if err != nil {
		return err
	}
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	return st.ExportJSON(os.Stdout, runID)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := recordStore(cmd)
	if err != nil {
		return err
	}
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	return st.ExportCSV(os.Stdout, runID)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, err := recordStore(cmd)
	if err != nil {
		return err
	}
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	wall, err := st.LoadWall(runID)
	if err != nil {
		return err
	}

	path := runID + "_wall_result.svg"
	if len(args) > 1 {
		path = args[1]
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WriteSVG(f, wall.Ys, wall.Average, 800, 400, "#ff7f0e"); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}
