package wave

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Source is a point emitter on the slit plane.
type Source struct {
	X, Y float64
}

func (s Source) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", s.X, s.Y)
}

// Grid samples the plane between the slits (x = 0) and the detector wall.
// Xs runs over [0, wallDistance) and Ys over [-breadth, breadth), both at the
// same resolution and with the stop value excluded.
type Grid struct {
	Xs, Ys     []float64
	Resolution float64
}

// NewGrid builds the sampling mesh for a scenario.
func NewGrid(wallDistance, breadth, resolution float64) (*Grid, error) {
	if resolution <= 0 || math.IsNaN(resolution) || math.IsInf(resolution, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidResolution, resolution)
	}

	xs := axis(0, wallDistance, resolution)
	ys := axis(-breadth, breadth, resolution)
	if len(xs) == 0 || len(ys) == 0 {
		return nil, fmt.Errorf("%w: wall=%v breadth=%v resolution=%v", ErrEmptyGrid, wallDistance, breadth, resolution)
	}

	return &Grid{Xs: xs, Ys: ys, Resolution: resolution}, nil
}

// axis returns ceil((stop-start)/step) evenly spaced values starting at start.
func axis(start, stop, step float64) []float64 {
	span := (stop - start) / step
	if !(span > 0) || math.IsInf(span, 0) {
		return nil
	}
	n := int(math.Ceil(span))
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	return floats.Span(out, start, start+float64(n-1)*step)
}

// Nx is the number of samples between the slits and the wall.
func (g *Grid) Nx() int { return len(g.Xs) }

// Ny is the number of samples along the wall.
func (g *Grid) Ny() int { return len(g.Ys) }

// Size is the number of grid cells.
func (g *Grid) Size() int { return len(g.Xs) * len(g.Ys) }

// Index maps a cell to its offset in a row-major (x, y) frame.
func (g *Grid) Index(i, j int) int { return i*len(g.Ys) + j }

// DistanceMap holds the Euclidean distance of every grid cell to one source.
type DistanceMap struct {
	Source Source
	nx, ny int
	data   []float64
}

// DistanceMap computes the distance field of src over the grid. Rows are
// computed in parallel; the result does not depend on the worker count.
func (g *Grid) DistanceMap(src Source, workers int) *DistanceMap {
	nx, ny := g.Nx(), g.Ny()
	dm := &DistanceMap{
		Source: src,
		nx:     nx,
		ny:     ny,
		data:   make([]float64, nx*ny),
	}

	ParallelFor(nx, workers, 16, func(start, end int) {
		for i := start; i < end; i++ {
			dx := g.Xs[i] - src.X
			row := dm.data[i*ny : (i+1)*ny]
			for j, y := range g.Ys {
				dy := y - src.Y
				row[j] = math.Sqrt(dx*dx + dy*dy)
			}
		}
	})

	return dm
}

// At returns the distance at cell (i, j).
func (m *DistanceMap) At(i, j int) float64 {
	return m.data[i*m.ny+j]
}

// Shape returns the grid dimensions the map was computed for.
func (m *DistanceMap) Shape() (int, int) {
	return m.nx, m.ny
}

// Len is the number of cells in the map.
func (m *DistanceMap) Len() int { return len(m.data) }

// DistanceMaps computes one distance map per source, in source order.
func (g *Grid) DistanceMaps(sources []Source, workers int) []*DistanceMap {
	maps := make([]*DistanceMap, len(sources))
	for k, src := range sources {
		maps[k] = g.DistanceMap(src, workers)
	}
	return maps
}
