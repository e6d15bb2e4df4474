package wave

import "fmt"

// Tensor stores interference intensity indexed by (x, y, step).
// Frames are stored contiguously so each step can be filled independently.
type Tensor struct {
	Nx, Ny, Steps int
	data          []float64
}

func newTensor(nx, ny, steps int) *Tensor {
	return &Tensor{
		Nx:    nx,
		Ny:    ny,
		Steps: steps,
		data:  make([]float64, nx*ny*steps),
	}
}

// Shape returns (Nx, Ny, Steps).
func (t *Tensor) Shape() (int, int, int) {
	return t.Nx, t.Ny, t.Steps
}

// At returns the intensity at cell (i, j) for the given step.
func (t *Tensor) At(i, j, step int) float64 {
	return t.data[(step*t.Nx+i)*t.Ny+j]
}

func (t *Tensor) frame(step int) []float64 {
	size := t.Nx * t.Ny
	return t.data[step*size : (step+1)*size]
}

// Frame returns a read-only view of one step.
func (t *Tensor) Frame(step int) Frame {
	if step < 0 || step >= t.Steps {
		panic(fmt.Sprintf("wave: step %d out of range [0, %d)", step, t.Steps))
	}
	return Frame{nx: t.Nx, ny: t.Ny, data: t.frame(step)}
}

// Max returns the largest intensity over all steps.
func (t *Tensor) Max() float64 {
	m := 0.0
	for _, v := range t.data {
		if v > m {
			m = v
		}
	}
	return m
}

// Wall extracts the column at the farthest x index for every step,
// indexed as wall[step][j].
func (t *Tensor) Wall() [][]float64 {
	wall := make([][]float64, t.Steps)
	i := t.Nx - 1
	for s := 0; s < t.Steps; s++ {
		row := make([]float64, t.Ny)
		copy(row, t.frame(s)[i*t.Ny:(i+1)*t.Ny])
		wall[s] = row
	}
	return wall
}

// Equal reports whether two tensors have the same shape and contents.
func (t *Tensor) Equal(o *Tensor) bool {
	if t.Nx != o.Nx || t.Ny != o.Ny || t.Steps != o.Steps {
		return false
	}
	for k := range t.data {
		if t.data[k] != o.data[k] {
			return false
		}
	}
	return true
}

// Frame is a single step of a Tensor.
type Frame struct {
	nx, ny int
	data   []float64
}

// At returns the intensity at cell (i, j).
func (f Frame) At(i, j int) float64 { return f.data[i*f.ny+j] }

// Shape returns the frame dimensions.
func (f Frame) Shape() (int, int) { return f.nx, f.ny }
