package render

import (
	"image/gif"
	"io"
)

// FrameDelay converts a frame rate into GIF delay units (1/100 s).
func FrameDelay(fps int) int {
	if fps <= 0 {
		fps = 1
	}
	d := 100 / fps
	if d < 1 {
		d = 1
	}
	return d
}

// SurfaceFPS is the frame rate of the surface animation for a step count.
func SurfaceFPS(steps int) int { return max(1, steps/2) }

// WallFPS is the frame rate of the wall animation for a step count.
func WallFPS(steps int) int { return max(1, steps/3) }

func encodeGIF(w io.Writer, anim *gif.GIF) error {
	anim.LoopCount = 0
	return gif.EncodeAll(w, anim)
}
