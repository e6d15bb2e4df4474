package render

import (
	"fmt"
	"io"
	"strings"
)

// WriteSVG draws a detector curve as a single SVG path, y values growing
// upwards. Bounds are padded by 10% of the data range.
func WriteSVG(w io.Writer, xs, values []float64, width, height int, stroke string) error {
	if len(xs) < 2 {
		return ErrEmptySeries
	}
	if len(values) != len(xs) {
		return fmt.Errorf("%w: %d values, %d positions", ErrLengthMismatch, len(values), len(xs))
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := values[0], values[0]
	for i := range xs {
		minX, maxX = min(minX, xs[i]), max(maxX, xs[i])
		minY, maxY = min(minY, values[i]), max(maxY, values[i])
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`, width, height, width, height, stroke)

	for i := range xs {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (values[i]-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
