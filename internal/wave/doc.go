// Package wave provides the numerical core of the interference simulator.
//
// The package models point sources emitting phase-advancing sinusoids over a
// rectangular grid and superposes them step by step:
//
//   - [Source]: a point emitter at (X, Y)
//   - [Grid]: the sampled plane between the slits and the detector wall
//   - [DistanceMap]: per-cell Euclidean distance from one source
//   - [Tensor]: interference intensity indexed by (x, y, step)
//   - [Evolver]: fills a Tensor from a set of sources
//
// # Example
//
//	g, _ := wave.NewGrid(40, 100, 0.05)
//	ev := wave.NewEvolver(0)
//	field, _ := ev.Evolve(ctx, g, []wave.Source{{X: 0, Y: 0}}, 50)
//	avg := wave.CumulativeAverage(field.Wall(), field.Steps)
//
// # Thread Safety
//
// Grid, DistanceMap and Tensor values are read-only once constructed and may
// be shared between goroutines. The evolver writes each step into its own
// frame, so steps are computed concurrently without locking.
package wave
