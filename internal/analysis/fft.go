package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitudes of the first half of the discrete
// Fourier transform of data.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	spec := fft.FFTReal(data)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}
