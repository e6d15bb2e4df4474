package analysis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrTooShort indicates a profile with too few samples to analyse.
var ErrTooShort = errors.New("analysis: profile too short")

// Metrics summarise a detector profile.
type Metrics struct {
	Peak       float64 `json:"peak"`
	Min        float64 `json:"min"`
	Mean       float64 `json:"mean"`
	Visibility float64 `json:"visibility"`
	// DominantFrequency is in cycles per unit length along the wall; zero
	// when the profile has no periodic component.
	DominantFrequency float64 `json:"dominant_frequency"`
	FringeSpacing     float64 `json:"fringe_spacing"`
}

// Map flattens the metrics for run records.
func (m Metrics) Map() map[string]float64 {
	return map[string]float64{
		"peak":               m.Peak,
		"min":                m.Min,
		"mean":               m.Mean,
		"visibility":         m.Visibility,
		"dominant_frequency": m.DominantFrequency,
		"fringe_spacing":     m.FringeSpacing,
	}
}

// Analyze computes intensity statistics and the dominant fringe period of a
// profile sampled at evenly spaced positions ys.
func Analyze(ys, profile []float64) (Metrics, error) {
	n := len(profile)
	if n < 4 {
		return Metrics{}, fmt.Errorf("%w: %d samples", ErrTooShort, n)
	}
	if len(ys) != n {
		return Metrics{}, fmt.Errorf("analysis: %d positions for %d samples", len(ys), n)
	}

	m := Metrics{
		Peak: floats.Max(profile),
		Min:  floats.Min(profile),
		Mean: stat.Mean(profile, nil),
	}
	if m.Peak+m.Min > 0 {
		m.Visibility = (m.Peak - m.Min) / (m.Peak + m.Min)
	}

	centered := make([]float64, n)
	copy(centered, profile)
	floats.AddConst(-m.Mean, centered)

	ps := PowerSpectrum(centered)
	best, bestPower := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestPower {
			best, bestPower = k, ps[k]
		}
	}

	dy := ys[1] - ys[0]
	if best > 0 && bestPower > 1e-9 && dy > 0 {
		m.DominantFrequency = float64(best) / (float64(n) * dy)
		m.FringeSpacing = 1 / m.DominantFrequency
	}
	return m, nil
}
