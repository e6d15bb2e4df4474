package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"github.com/san-kum/wavesim/internal/wave"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	instantColor = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	averageColor = drawing.Color{R: 255, G: 165, B: 0, A: 255}
)

const intensityLabel = "Intensity over Time"

// WallAnimation plots the instantaneous detector profile against its running
// average, one GIF frame per step.
type WallAnimation struct {
	Width, Height int
}

func NewWallAnimation(width, height int) *WallAnimation {
	return &WallAnimation{Width: width, Height: height}
}

func (a *WallAnimation) Render(w io.Writer, ys []float64, wall, avg [][]float64, title string) error {
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, a.Width, a.Height)
	}
	if len(wall) == 0 || len(ys) == 0 {
		return ErrEmptySeries
	}
	if len(avg) != len(wall) {
		return fmt.Errorf("%w: %d wall steps, %d average steps", ErrLengthMismatch, len(wall), len(avg))
	}
	for step := range wall {
		if len(wall[step]) != len(ys) || len(avg[step]) != len(ys) {
			return fmt.Errorf("%w: step %d has %d/%d points, axis has %d", ErrLengthMismatch, step, len(wall[step]), len(avg[step]), len(ys))
		}
	}

	top := wave.Peak(wall) + 0.2
	steps := len(wall)
	delay := FrameDelay(WallFPS(steps))
	anim := &gif.GIF{
		Image: make([]*image.Paletted, 0, steps),
		Delay: make([]int, 0, steps),
	}

	var buf bytes.Buffer
	for step := 0; step < steps; step++ {
		graph := wallChart(a.Width, a.Height, ys, top,
			fmt.Sprintf("%s  step %d/%d", title, step+1, steps),
			chart.ContinuousSeries{
				Name:    "instantaneous",
				XValues: ys,
				YValues: wall[step],
				Style:   chart.Style{StrokeColor: instantColor, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "time average",
				XValues: ys,
				YValues: avg[step],
				Style:   chart.Style{StrokeColor: averageColor, StrokeWidth: 3},
			},
		)

		buf.Reset()
		if err := graph.Render(chart.PNG, &buf); err != nil {
			return fmt.Errorf("render step %d: %w", step, err)
		}
		src, err := png.Decode(&buf)
		if err != nil {
			return fmt.Errorf("decode step %d: %w", step, err)
		}

		frame := image.NewPaletted(src.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(frame, frame.Bounds(), src, src.Bounds().Min)

		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}

	return encodeGIF(w, anim)
}

// WallResult plots the converged time-averaged detector profile.
type WallResult struct {
	Width, Height int
}

func NewWallResult(width, height int) *WallResult {
	return &WallResult{Width: width, Height: height}
}

// Render writes a PNG of profile. peak sets the upper y bound so the result
// shares its scale with the animation.
func (r *WallResult) Render(w io.Writer, ys, profile []float64, peak float64, title string) error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, r.Width, r.Height)
	}
	if len(ys) == 0 {
		return ErrEmptySeries
	}
	if len(profile) != len(ys) {
		return fmt.Errorf("%w: %d points, axis has %d", ErrLengthMismatch, len(profile), len(ys))
	}

	graph := wallChart(r.Width, r.Height, ys, peak+0.2, title,
		chart.ContinuousSeries{
			Name:    "time average",
			XValues: ys,
			YValues: profile,
			Style:   chart.Style{StrokeColor: averageColor, StrokeWidth: 3},
		},
	)
	return graph.Render(chart.PNG, w)
}

func wallChart(width, height int, ys []float64, top float64, title string, series ...chart.Series) *chart.Chart {
	xmin, xmax := ys[0], ys[len(ys)-1]
	if xmax <= xmin {
		xmax = xmin + 1
	}

	graph := &chart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "position along wall",
			Range: &chart.ContinuousRange{Min: xmin, Max: xmax},
		},
		YAxis: chart.YAxis{
			Name:  intensityLabel,
			Range: &chart.ContinuousRange{Min: -0.2, Max: top},
		},
		Series: series,
	}
	if len(series) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(graph)}
	}
	return graph
}
