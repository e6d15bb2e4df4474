package render

import (
	"bytes"
	"context"
	"errors"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/wavesim/internal/wave"
)

func testField(t *testing.T, steps int) (*wave.Grid, *wave.Tensor) {
	t.Helper()
	g, err := wave.NewGrid(4, 2, 0.25)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	field, err := wave.NewEvolver(2).Evolve(context.Background(), g, []wave.Source{{X: 0, Y: -0.5}, {X: 0, Y: 0.5}}, steps)
	if err != nil {
		t.Fatalf("evolve: %v", err)
	}
	return g, field
}

func TestSurfaceGIF(t *testing.T) {
	g, field := testField(t, 4)

	path := filepath.Join(t.TempDir(), "surface.gif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSurface(120, 60, 1)
	if err := s.Render(f, g, field, "test"); err != nil {
		f.Close()
		t.Fatalf("render: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	anim, err := gif.DecodeAll(r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 4 {
		t.Errorf("expected 4 frames, got %d", len(anim.Image))
	}
	if b := anim.Image[0].Bounds(); b.Dx() != 120 || b.Dy() != 60 {
		t.Errorf("unexpected frame size %v", b)
	}
	if anim.Delay[0] != FrameDelay(SurfaceFPS(4)) {
		t.Errorf("unexpected delay %d", anim.Delay[0])
	}
}

func TestSurfaceSpinAndStride(t *testing.T) {
	g, field := testField(t, 3)

	s := NewSurface(64, 64, 3)
	s.Spin = 90
	s.Elevation = 45
	var buf bytes.Buffer
	if err := s.Render(&buf, g, field, "spin"); err != nil {
		t.Fatalf("render: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Errorf("expected 3 frames, got %d", len(anim.Image))
	}
}

func TestSurfaceInvalid(t *testing.T) {
	g, field := testField(t, 2)

	var buf bytes.Buffer
	if err := NewSurface(0, 10, 1).Render(&buf, g, field, ""); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
	if err := NewSurface(10, 10, 0).Render(&buf, g, field, ""); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize for zero stride, got %v", err)
	}

	other, err := wave.NewGrid(1, 1, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if err := NewSurface(10, 10, 1).Render(&buf, other, field, ""); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestWallAnimationGIF(t *testing.T) {
	g, field := testField(t, 6)
	wall := field.Wall()
	avg := wave.CumulativeAverage(wall, field.Steps)

	var buf bytes.Buffer
	if err := NewWallAnimation(480, 240).Render(&buf, g.Ys, wall, avg, "wall"); err != nil {
		t.Fatalf("render: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 6 {
		t.Errorf("expected 6 frames, got %d", len(anim.Image))
	}
	if anim.Delay[0] != FrameDelay(WallFPS(6)) {
		t.Errorf("unexpected delay %d", anim.Delay[0])
	}
}

func TestWallAnimationMismatch(t *testing.T) {
	ys := []float64{0, 1, 2}
	wall := [][]float64{{1, 2, 3}, {1, 2}}
	avg := [][]float64{{1, 2, 3}, {1, 2, 3}}

	var buf bytes.Buffer
	err := NewWallAnimation(100, 100).Render(&buf, ys, wall, avg, "")
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
	err = NewWallAnimation(100, 100).Render(&buf, ys, nil, nil, "")
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("expected ErrEmptySeries, got %v", err)
	}
}

func TestWallResultPNG(t *testing.T) {
	g, field := testField(t, 5)
	wall := field.Wall()
	avg := wave.CumulativeAverage(wall, field.Steps)

	var buf bytes.Buffer
	if err := NewWallResult(400, 200).Render(&buf, g.Ys, avg[len(avg)-1], wave.Peak(wall), "result"); err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("unexpected image size %v", b)
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, []float64{-1, 0, 1}, []float64{0.2, 1, 0.2}, 200, 100, "#ff8800"); err != nil {
		t.Fatalf("svg: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "</svg>") {
		t.Errorf("malformed svg: %s", out)
	}
	if strings.Count(out, " L") != 2 {
		t.Errorf("expected 2 line segments, got %q", out)
	}
	if !strings.Contains(out, `stroke="#ff8800"`) {
		t.Error("stroke color missing")
	}

	if err := WriteSVG(&buf, []float64{1}, []float64{1}, 10, 10, "#000"); !errors.Is(err, ErrEmptySeries) {
		t.Errorf("expected ErrEmptySeries, got %v", err)
	}
}

func TestCameraTopDown(t *testing.T) {
	cam := NewCamera(90, 0)
	cam.Scale = 10

	x, y, _, ok := cam.Project(Vec3{0, 0, 0}, 100, 100)
	if !ok || x != 50 || y != 50 {
		t.Errorf("origin should project to centre, got (%d,%d,%v)", x, y, ok)
	}

	x, y, _, _ = cam.Project(Vec3{1, 1, 0}, 100, 100)
	if x != 60 || y != 40 {
		t.Errorf("expected (60,40), got (%d,%d)", x, y)
	}

	cam.SetAzimuth(90)
	x, y, _, _ = cam.Project(Vec3{1, 0, 0}, 100, 100)
	if x != 50 || y != 40 {
		t.Errorf("quarter turn should map +x to up, got (%d,%d)", x, y)
	}

	_, _, near, _ := cam.Project(Vec3{0, 0, 0.5}, 100, 100)
	_, _, far, _ := cam.Project(Vec3{0, 0, 0.1}, 100, 100)
	if near <= far {
		t.Errorf("higher points should be nearer: %v <= %v", near, far)
	}
}

func TestWinter(t *testing.T) {
	if c := Winter(0); c.R != 0 || c.G != 0 || c.B != 255 {
		t.Errorf("winter(0) should be blue, got %v", c)
	}
	if c := Winter(1); c.G != 255 || c.B != 128 {
		t.Errorf("winter(1) should be spring green, got %v", c)
	}
	if Winter(-3) != Winter(0) || Winter(7) != Winter(1) {
		t.Error("winter should clamp its input")
	}
}

func TestFrameDelay(t *testing.T) {
	tests := []struct{ fps, want int }{
		{0, 100}, {1, 100}, {25, 4}, {50, 2}, {500, 1},
	}
	for _, tt := range tests {
		if got := FrameDelay(tt.fps); got != tt.want {
			t.Errorf("FrameDelay(%d): expected %d, got %d", tt.fps, tt.want, got)
		}
	}
	if SurfaceFPS(1) != 1 || SurfaceFPS(50) != 25 || WallFPS(50) != 16 {
		t.Error("unexpected fps derivation")
	}
}

func TestWallAnimationFlatWall(t *testing.T) {
	ys := []float64{-1, 0, 1, 2}
	wall := [][]float64{{0, 0, 0, 0}, {0, 0, 0, 0}}
	avg := wave.CumulativeAverage(wall, len(wall))

	if got := wave.Peak(wall); got != 0 {
		t.Fatalf("expected zero peak, got %v", got)
	}
	var buf bytes.Buffer
	if err := NewWallAnimation(480, 240).Render(&buf, ys, wall, avg, "flat"); err != nil {
		t.Fatalf("render: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 2 {
		t.Errorf("expected 2 frames, got %d", len(anim.Image))
	}
}
