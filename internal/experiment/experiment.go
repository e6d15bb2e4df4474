// Package experiment runs interference scenarios end to end: sources, grid,
// field evolution, the three renderings, fringe analysis and the run record.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/wavesim/internal/analysis"
	"github.com/san-kum/wavesim/internal/config"
	"github.com/san-kum/wavesim/internal/render"
	"github.com/san-kum/wavesim/internal/scenario"
	"github.com/san-kum/wavesim/internal/storage"
	"github.com/san-kum/wavesim/internal/wave"
)

// Result of one scenario. Tensor is dropped by RunAll once the outputs are
// written.
type Result struct {
	Scenario scenario.ID
	RunID    string
	Grid     *wave.Grid
	Sources  []wave.Source
	Tensor   *wave.Tensor
	Wall     [][]float64
	Average  [][]float64
	Metrics  analysis.Metrics
	Outputs  []string
	Elapsed  time.Duration
}

type Runner struct {
	cfg     *config.Config
	evolver *wave.Evolver
	store   *storage.Store
	out     io.Writer
	logger  *log.Logger
	now     func() time.Time
}

// NewRunner validates cfg and prepares the output and record directories.
// Progress lines go to out; a nil out discards them.
func NewRunner(cfg *config.Config, out io.Writer) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		cfg:     cfg,
		evolver: wave.NewEvolver(cfg.Workers),
		store:   storage.New(cfg.RecordDir()),
		out:     out,
		logger:  log.New(os.Stderr, "wavesim: ", log.LstdFlags),
		now:     time.Now,
	}, nil
}

func (r *Runner) SetLogger(l *log.Logger) { r.logger = l }

func (r *Runner) Store() *storage.Store { return r.store }

// RunAll runs every scenario in order. A failing scenario is logged and the
// batch moves on; the failures come back joined. Cancellation stops the batch.
func (r *Runner) RunAll(ctx context.Context, ids []scenario.ID) ([]*Result, error) {
	var (
		results []*Result
		errs    []error
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res, err := r.Run(ctx, id)
		if err != nil {
			r.logger.Printf("%v", err)
			errs = append(errs, err)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				break
			}
			continue
		}
		res.Tensor = nil
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// Run computes and renders a single scenario.
func (r *Runner) Run(ctx context.Context, id scenario.ID) (*Result, error) {
	cfg := r.cfg
	start := r.now()
	fail := func(stage Stage, err error) (*Result, error) {
		return nil, &ScenarioError{Scenario: string(id), Stage: stage, Err: err}
	}

	sources, err := scenario.Sources(id, cfg.SlitDistance)
	if err != nil {
		return fail(StageSources, err)
	}
	grid, err := wave.NewGrid(cfg.WallDistance, cfg.Breadth, cfg.Resolution)
	if err != nil {
		return fail(StageGrid, err)
	}

	fmt.Fprintf(r.out, "%s: %d sources on a %dx%d grid, %d steps\n",
		id, len(sources), grid.Nx(), grid.Ny(), cfg.Steps)

	field, err := r.evolver.Evolve(ctx, grid, sources, cfg.Steps)
	if err != nil {
		return fail(StageEvolve, err)
	}

	res := &Result{
		Scenario: id,
		Grid:     grid,
		Sources:  sources,
		Tensor:   field,
		Wall:     field.Wall(),
	}
	res.Average = wave.CumulativeAverage(res.Wall, cfg.Steps)
	label := Label(id)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fail(StageOutput, err)
	}

	if !cfg.Render.SkipSurface {
		surface := render.NewSurface(cfg.Render.Width, cfg.Render.Height, cfg.Quality)
		surface.Elevation = cfg.Render.Elevation
		surface.Azimuth = cfg.Render.Azimuth
		surface.Spin = cfg.Render.Spin
		surface.HeightScale = cfg.Render.HeightScale

		path := r.outputPath(id, SurfaceSuffix)
		if err := writeFile(path, func(w io.Writer) error {
			return surface.Render(w, grid, field, label)
		}); err != nil {
			return fail(StageRender3D, err)
		}
		res.Outputs = append(res.Outputs, path)
		fmt.Fprintf(r.out, "  wrote %s\n", path)
	}

	anim := render.NewWallAnimation(cfg.Render.Width, cfg.Render.Height)
	path := r.outputPath(id, WallSuffix)
	if err := writeFile(path, func(w io.Writer) error {
		return anim.Render(w, grid.Ys, res.Wall, res.Average, label)
	}); err != nil {
		return fail(StageRenderWall, err)
	}
	res.Outputs = append(res.Outputs, path)
	fmt.Fprintf(r.out, "  wrote %s\n", path)

	profile := res.Average[len(res.Average)-1]
	result := render.NewWallResult(cfg.Render.Width, cfg.Render.Height)
	path = r.outputPath(id, ResultSuffix)
	if err := writeFile(path, func(w io.Writer) error {
		return result.Render(w, grid.Ys, profile, wave.Peak(res.Wall), label)
	}); err != nil {
		return fail(StageRenderResult, err)
	}
	res.Outputs = append(res.Outputs, path)
	fmt.Fprintf(r.out, "  wrote %s\n", path)

	res.Metrics, err = analysis.Analyze(grid.Ys, profile)
	if err != nil {
		return fail(StageAnalyze, err)
	}

	res.Elapsed = r.now().Sub(start)
	res.RunID, err = r.record(res)
	if err != nil {
		return fail(StageRecord, err)
	}
	fmt.Fprintf(r.out, "  run %s in %v (fringe spacing %.3f, visibility %.3f)\n",
		res.RunID, res.Elapsed.Round(time.Millisecond), res.Metrics.FringeSpacing, res.Metrics.Visibility)
	return res, nil
}

func (r *Runner) record(res *Result) (string, error) {
	cfg := r.cfg
	sources := make([]storage.Source, len(res.Sources))
	for i, s := range res.Sources {
		sources[i] = storage.Source{X: s.X, Y: s.Y}
	}

	meta := storage.RunMetadata{
		Scenario:     string(res.Scenario),
		Timestamp:    r.now(),
		SlitDistance: cfg.SlitDistance,
		WallDistance: cfg.WallDistance,
		Breadth:      cfg.Breadth,
		Resolution:   cfg.Resolution,
		Steps:        cfg.Steps,
		Grid:         [2]int{res.Grid.Nx(), res.Grid.Ny()},
		Sources:      sources,
		Outputs:      res.Outputs,
		Duration:     res.Elapsed.Seconds(),
		Metrics:      res.Metrics.Map(),
	}
	wall := &storage.Wall{
		Ys:      res.Grid.Ys,
		Values:  res.Wall,
		Average: res.Average[len(res.Average)-1],
	}

	if err := r.store.Init(); err != nil {
		return "", err
	}
	return r.store.Save(meta, wall)
}

func (r *Runner) outputPath(id scenario.ID, suffix string) string {
	return filepath.Join(r.cfg.OutputDir, OutputName(id, suffix))
}

// writeFile renders into path, removing the partial file on failure.
func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
