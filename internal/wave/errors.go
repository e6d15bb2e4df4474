package wave

import "errors"

// Domain errors for field construction.
var (
	// ErrInvalidSteps indicates a non-positive temporal resolution.
	ErrInvalidSteps = errors.New("wave: steps must be positive")

	// ErrEmptyGrid indicates grid extents that produce no sample points.
	ErrEmptyGrid = errors.New("wave: grid has no points")

	// ErrInvalidResolution indicates a non-positive or non-finite grid spacing.
	ErrInvalidResolution = errors.New("wave: resolution must be positive")

	// ErrNoSources indicates an evolution request without any emitter.
	ErrNoSources = errors.New("wave: no sources to superpose")

	// ErrShapeMismatch indicates a distance map that belongs to another grid.
	ErrShapeMismatch = errors.New("wave: distance map does not match grid")
)

// StepError wraps a failure raised while filling one frame of the tensor.
type StepError struct {
	Step    int
	Wrapped error
}

func (e *StepError) Error() string {
	return e.Wrapped.Error()
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
