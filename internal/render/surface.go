package render

import (
	"fmt"
	"image"
	"image/gif"
	"io"
	"math"

	"github.com/san-kum/wavesim/internal/wave"
)

// Surface renders the field as a colored height map, one GIF frame per step.
// The propagation axis points up the image and the wall runs across the top.
type Surface struct {
	Width, Height int
	// Quality is the sampling stride over grid cells; 1 draws every cell.
	Quality     int
	Elevation   float64
	Azimuth     float64
	Spin        float64
	HeightScale float64
}

func NewSurface(width, height, quality int) *Surface {
	return &Surface{
		Width:       width,
		Height:      height,
		Quality:     quality,
		Elevation:   90,
		HeightScale: 0.1,
	}
}

func (s *Surface) Render(w io.Writer, g *wave.Grid, field *wave.Tensor, title string) error {
	if s.Width <= 0 || s.Height <= 0 || s.Quality <= 0 {
		return fmt.Errorf("%w: %dx%d stride %d", ErrInvalidSize, s.Width, s.Height, s.Quality)
	}
	nx, ny, steps := field.Shape()
	if steps == 0 || nx == 0 || ny == 0 {
		return ErrEmptySeries
	}
	if nx != g.Nx() || ny != g.Ny() {
		return fmt.Errorf("%w: field %dx%d, grid %dx%d", ErrLengthMismatch, nx, ny, g.Nx(), g.Ny())
	}

	zmax := field.Max()
	if zmax == 0 {
		zmax = 1
	}

	// Normalise both axes by the same half extent so cells stay square.
	xs, ys := g.Xs, g.Ys
	cx, cy := (xs[0]+xs[nx-1])/2, (ys[0]+ys[ny-1])/2
	halfX := (xs[nx-1] - xs[0] + g.Resolution) / 2
	halfY := (ys[ny-1] - ys[0] + g.Resolution) / 2
	half := math.Max(halfX, halfY)
	eu, ev := halfY/half, halfX/half

	cam := NewCamera(s.Elevation, s.Azimuth)
	if s.Spin == 0 && s.Azimuth == 0 {
		cam.Scale = 0.95 * math.Min(float64(s.Width)/(2*eu), float64(s.Height)/(2*ev))
	} else {
		cam.Scale = 0.95 * float64(min(s.Width, s.Height)) / (2 * math.Hypot(eu, ev))
	}
	splat := max(1, int(math.Ceil(g.Resolution*float64(s.Quality)/half*cam.Scale)))

	pal := surfacePalette()
	bgIndex := uint8(rampLevels)
	bounds := image.Rect(0, 0, s.Width, s.Height)
	depth := make([]float64, s.Width*s.Height)
	delay := FrameDelay(SurfaceFPS(steps))

	anim := &gif.GIF{
		Image: make([]*image.Paletted, 0, steps),
		Delay: make([]int, 0, steps),
	}

	for step := 0; step < steps; step++ {
		cam.SetAzimuth(s.Azimuth + s.Spin*float64(step)/float64(steps))

		img := image.NewPaletted(bounds, pal)
		for k := range img.Pix {
			img.Pix[k] = bgIndex
		}
		for k := range depth {
			depth[k] = math.Inf(-1)
		}

		frame := field.Frame(step)
		for i := 0; i < nx; i += s.Quality {
			v := (xs[i] - cx) / half
			for j := 0; j < ny; j += s.Quality {
				z := frame.At(i, j) / zmax
				p := Vec3{X: (ys[j] - cy) / half, Y: v, Z: z * s.HeightScale}
				px, py, d, ok := cam.Project(p, s.Width, s.Height)
				if !ok {
					continue
				}
				s.splat(img, depth, px, py, splat, d, rampIndex(z))
			}
		}

		drawLabel(img, 8, 8, fmt.Sprintf("%s  step %d/%d", title, step+1, steps), ink, background)

		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, delay)
	}

	return encodeGIF(w, anim)
}

// splat paints a size x size block centred on (px, py), keeping the nearest
// sample per pixel.
func (s *Surface) splat(img *image.Paletted, depth []float64, px, py, size int, d float64, idx uint8) {
	x0, y0 := px-size/2, py-size/2
	for y := max(0, y0); y < min(s.Height, y0+size); y++ {
		row := y * s.Width
		for x := max(0, x0); x < min(s.Width, x0+size); x++ {
			if d <= depth[row+x] {
				continue
			}
			depth[row+x] = d
			img.Pix[y*img.Stride+x] = idx
		}
	}
}
