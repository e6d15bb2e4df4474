package render

import (
	"image/color"
	"math"
)

// rampLevels is the number of palette entries used by the colormap.
const rampLevels = 240

var (
	background = color.RGBA{255, 255, 255, 255}
	ink        = color.RGBA{0, 0, 0, 255}
)

// Winter maps v in [0, 1] to matplotlib's "winter" colormap (blue to green).
func Winter(v float64) color.RGBA {
	v = clamp01(v)
	return color.RGBA{
		R: 0,
		G: uint8(math.Round(255 * v)),
		B: uint8(math.Round(255 * (1 - 0.5*v))),
		A: 255,
	}
}

// surfacePalette holds the colormap ramp followed by background and ink.
// Index rampLevels is the background, rampLevels+1 the ink.
func surfacePalette() color.Palette {
	p := make(color.Palette, 0, rampLevels+2)
	for i := 0; i < rampLevels; i++ {
		p = append(p, Winter(float64(i)/float64(rampLevels-1)))
	}
	return append(p, background, ink)
}

func rampIndex(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * float64(rampLevels-1)))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
