// Package analysis characterises the interference pattern recorded at the
// detector wall.
//
//   - [PowerSpectrum]: magnitude spectrum of a profile
//   - [Analyze]: peak, mean, fringe visibility and dominant fringe spacing
//
// # Fringe Spacing
//
// The dominant spatial frequency is the strongest non-DC bin of the
// mean-removed profile; the fringe spacing is its reciprocal:
//
//	m, _ := analysis.Analyze(ys, avg[len(avg)-1])
//	fmt.Printf("fringes every %.2f units\n", m.FringeSpacing)
package analysis
