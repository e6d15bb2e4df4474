package wave

import "gonum.org/v1/gonum/floats"

// CumulativeAverage accumulates the wall profile over time, scaled by the
// total step count:
//
//	avg[0] = wall[0]/steps
//	avg[t] = avg[t-1] + wall[t]/steps
//
// After the last step avg[steps-1] is the time mean of the wall.
func CumulativeAverage(wall [][]float64, steps int) [][]float64 {
	avg := make([][]float64, len(wall))
	if len(wall) == 0 || steps <= 0 {
		return avg
	}

	scale := 1 / float64(steps)
	for t, row := range wall {
		cur := make([]float64, len(row))
		if t > 0 {
			copy(cur, avg[t-1])
		}
		floats.AddScaled(cur, scale, row)
		avg[t] = cur
	}
	return avg
}

// TimeMean returns the arithmetic mean of the wall over all steps.
func TimeMean(wall [][]float64) []float64 {
	if len(wall) == 0 {
		return nil
	}
	mean := make([]float64, len(wall[0]))
	for _, row := range wall {
		floats.Add(mean, row)
	}
	floats.Scale(1/float64(len(wall)), mean)
	return mean
}

// Peak returns the largest value of a wall series.
func Peak(wall [][]float64) float64 {
	m := 0.0
	for _, row := range wall {
		if len(row) == 0 {
			continue
		}
		if v := floats.Max(row); v > m {
			m = v
		}
	}
	return m
}
