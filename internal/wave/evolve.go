package wave

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pattern writes the superposed intensity for one step into dst:
//
//	dst[k] = |Σ sin(d_s[k] - 2π·step/steps)|
//
// step may be any integer; the result is periodic in steps.
func Pattern(maps []*DistanceMap, step, steps int, dst []float64) error {
	if steps <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}
	if len(maps) == 0 {
		return ErrNoSources
	}
	for _, m := range maps {
		if m.Len() != len(dst) {
			return fmt.Errorf("%w: map has %d cells, frame has %d", ErrShapeMismatch, m.Len(), len(dst))
		}
	}

	phase := 2 * math.Pi * float64(step) / float64(steps)
	for k := range dst {
		sum := 0.0
		for _, m := range maps {
			sum += math.Sin(m.data[k] - phase)
		}
		dst[k] = math.Abs(sum)
	}
	return nil
}

// Evolver fills a Tensor by evaluating Pattern for every step.
type Evolver struct {
	workers int
}

// NewEvolver returns an evolver bounded to workers concurrent steps.
// workers <= 0 selects runtime.NumCPU().
func NewEvolver(workers int) *Evolver {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Evolver{workers: workers}
}

// Workers reports the concurrency bound.
func (e *Evolver) Workers() int { return e.workers }

// Evolve computes distance maps for the sources and the full time evolution
// of their interference over steps frames. Steps are independent and run
// concurrently; the tensor is only returned once every step has completed.
func (e *Evolver) Evolve(ctx context.Context, g *Grid, sources []Source, steps int) (*Tensor, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}
	if g == nil || g.Size() == 0 {
		return nil, ErrEmptyGrid
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	maps := g.DistanceMaps(sources, e.workers)
	return e.EvolveMaps(ctx, g, maps, steps)
}

// EvolveMaps is Evolve for precomputed distance maps.
func (e *Evolver) EvolveMaps(ctx context.Context, g *Grid, maps []*DistanceMap, steps int) (*Tensor, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}
	if g == nil || g.Size() == 0 {
		return nil, ErrEmptyGrid
	}
	if len(maps) == 0 {
		return nil, ErrNoSources
	}

	field := newTensor(g.Nx(), g.Ny(), steps)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(e.workers)
	for step := 0; step < steps; step++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := Pattern(maps, step, steps, field.frame(step)); err != nil {
				return &StepError{Step: step, Wrapped: err}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return field, nil
}
