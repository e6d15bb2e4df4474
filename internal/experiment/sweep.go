package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/san-kum/wavesim/internal/analysis"
	"github.com/san-kum/wavesim/internal/config"
	"github.com/san-kum/wavesim/internal/scenario"
	"github.com/san-kum/wavesim/internal/wave"
)

var ErrInvalidSweep = errors.New("experiment: invalid sweep")

// Sweepable parameters.
const (
	ParamSlitDistance = "slit_distance"
	ParamWallDistance = "wall_distance"
)

// Sweep varies one geometry parameter over [Min, Max] and measures the
// fringes at the wall for each value. Only the wall column is evaluated and
// nothing is rendered.
type Sweep struct {
	Scenario scenario.ID
	Param    string
	Min, Max float64
	Points   int
}

type SweepResult struct {
	Value   float64
	Metrics analysis.Metrics
}

func (s *Sweep) validate() error {
	switch {
	case s.Param != ParamSlitDistance && s.Param != ParamWallDistance:
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidSweep, s.Param)
	case s.Points < 1:
		return fmt.Errorf("%w: need at least one point, got %d", ErrInvalidSweep, s.Points)
	case s.Max < s.Min:
		return fmt.Errorf("%w: max %v below min %v", ErrInvalidSweep, s.Max, s.Min)
	case s.Param == ParamWallDistance && !(s.Min > 0):
		return fmt.Errorf("%w: wall distance must be positive", ErrInvalidSweep)
	case s.Param == ParamSlitDistance && s.Min < 0:
		return fmt.Errorf("%w: slit distance must not be negative", ErrInvalidSweep)
	}
	return nil
}

// Values returns the evenly spaced parameter values of the sweep.
func (s *Sweep) Values() []float64 {
	if s.Points == 1 {
		return []float64{s.Min}
	}
	step := (s.Max - s.Min) / float64(s.Points-1)
	vals := make([]float64, s.Points)
	for i := range vals {
		vals[i] = s.Min + float64(i)*step
	}
	return vals
}

// RunSweep evaluates the sweep with the remaining geometry taken from cfg.
func RunSweep(ctx context.Context, cfg *config.Config, sw *Sweep, out io.Writer) ([]SweepResult, error) {
	if err := sw.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if out == nil {
		out = io.Discard
	}

	evolver := wave.NewEvolver(cfg.Workers)
	values := sw.Values()
	results := make([]SweepResult, 0, len(values))

	for i, v := range values {
		slit, wallDist := cfg.SlitDistance, cfg.WallDistance
		if sw.Param == ParamSlitDistance {
			slit = v
		} else {
			wallDist = v
		}

		sources, err := scenario.Sources(sw.Scenario, slit)
		if err != nil {
			return results, err
		}
		grid, err := wallGrid(wallDist, cfg.Breadth, cfg.Resolution)
		if err != nil {
			return results, err
		}
		field, err := evolver.Evolve(ctx, grid, sources, cfg.Steps)
		if err != nil {
			return results, err
		}

		avg := wave.CumulativeAverage(field.Wall(), cfg.Steps)
		m, err := analysis.Analyze(grid.Ys, avg[len(avg)-1])
		if err != nil {
			return results, err
		}
		results = append(results, SweepResult{Value: v, Metrics: m})

		fmt.Fprintf(out, "sweep %d/%d: %s=%.4f spacing=%.4f visibility=%.4f\n",
			i+1, len(values), sw.Param, v, m.FringeSpacing, m.Visibility)
	}

	return results, nil
}

// wallGrid is the single detector column of the full grid.
func wallGrid(wallDistance, breadth, resolution float64) (*wave.Grid, error) {
	full, err := wave.NewGrid(wallDistance, breadth, resolution)
	if err != nil {
		return nil, err
	}
	return &wave.Grid{
		Xs:         []float64{full.Xs[full.Nx()-1]},
		Ys:         full.Ys,
		Resolution: full.Resolution,
	}, nil
}
