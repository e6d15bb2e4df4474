package wave

import (
	"context"
	"math"
	"testing"
)

func TestWallIsLastColumn(t *testing.T) {
	g := testGrid(t)
	field, err := NewEvolver(2).Evolve(context.Background(), g, []Source{{0, 0.25}}, 3)
	if err != nil {
		t.Fatalf("evolve: %v", err)
	}

	wall := field.Wall()
	if len(wall) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(wall))
	}
	for step, row := range wall {
		if len(row) != g.Ny() {
			t.Fatalf("step %d: expected %d points, got %d", step, g.Ny(), len(row))
		}
		for j, v := range row {
			if v != field.At(g.Nx()-1, j, step) {
				t.Errorf("step %d j %d: wall %v, tensor %v", step, j, v, field.At(g.Nx()-1, j, step))
			}
		}
	}
}

func TestCumulativeAverage(t *testing.T) {
	wall := [][]float64{
		{1, 2, 0},
		{3, 2, 0},
		{5, 2, 3},
		{7, 2, 1},
	}
	avg := CumulativeAverage(wall, len(wall))

	if got := avg[0][0]; got != 0.25 {
		t.Errorf("avg[0][0]: expected 0.25, got %v", got)
	}
	if got := avg[1][0]; got != 1.0 {
		t.Errorf("avg[1][0]: expected 1, got %v", got)
	}

	mean := TimeMean(wall)
	last := avg[len(avg)-1]
	for j := range mean {
		if math.Abs(last[j]-mean[j]) > 1e-12 {
			t.Errorf("j %d: final average %v, mean %v", j, last[j], mean[j])
		}
	}

	for step := 1; step < len(avg); step++ {
		for j := range avg[step] {
			if avg[step][j] < avg[step-1][j] {
				t.Errorf("average decreased at step %d j %d", step, j)
			}
		}
	}

	// The input must not be modified.
	if wall[0][0] != 1 {
		t.Error("cumulative average mutated its input")
	}
}

func TestCumulativeAverageFromField(t *testing.T) {
	g, err := NewGrid(3, 2, 0.25)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	field, err := NewEvolver(0).Evolve(context.Background(), g, []Source{{0, -1}, {0, 1}}, 10)
	if err != nil {
		t.Fatalf("evolve: %v", err)
	}

	wall := field.Wall()
	avg := CumulativeAverage(wall, field.Steps)
	mean := TimeMean(wall)
	for j, v := range avg[field.Steps-1] {
		if math.Abs(v-mean[j]) > 1e-12 {
			t.Errorf("j %d: expected %v, got %v", j, mean[j], v)
		}
	}
	if Peak(wall) > field.Max() {
		t.Errorf("wall peak %v exceeds field max %v", Peak(wall), field.Max())
	}
}

func TestCumulativeAverageEmpty(t *testing.T) {
	if avg := CumulativeAverage(nil, 5); len(avg) != 0 {
		t.Errorf("expected empty average, got %v", avg)
	}
	if mean := TimeMean(nil); mean != nil {
		t.Errorf("expected nil mean, got %v", mean)
	}
}
