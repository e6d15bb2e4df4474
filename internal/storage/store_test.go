package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleWall() *Wall {
	return &Wall{
		Ys: []float64{-1, 0, 1},
		Values: [][]float64{
			{0.1, 0.2, 0.3},
			{0.4, 0.5, 0.6},
		},
		Average: []float64{0.25, 0.35, 0.45},
	}
}

func sampleMeta(ts time.Time) RunMetadata {
	return RunMetadata{
		Scenario:   "single_wave",
		Timestamp:  ts,
		Steps:      2,
		Resolution: 0.05,
		Sources:    []Source{{X: 0, Y: 0}},
		Metrics:    map[string]float64{"peak": 0.6},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	ts := time.Unix(1700000000, 0)
	runID, err := st.Save(sampleMeta(ts), sampleWall())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID != "single_wave_1700000000" {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scenario != "single_wave" {
		t.Errorf("expected scenario single_wave, got %q", meta.Scenario)
	}
	if meta.Metrics["peak"] != 0.6 {
		t.Errorf("expected peak 0.6, got %f", meta.Metrics["peak"])
	}

	wall, err := st.LoadWall(runID)
	if err != nil {
		t.Fatalf("load wall failed: %v", err)
	}
	want := sampleWall()
	if wall.Steps() != 2 || len(wall.Ys) != 3 {
		t.Fatalf("unexpected wall shape: %d steps, %d positions", wall.Steps(), len(wall.Ys))
	}
	for tt := range want.Values {
		for j := range want.Ys {
			if wall.Values[tt][j] != want.Values[tt][j] {
				t.Errorf("wall[%d][%d] = %v, want %v", tt, j, wall.Values[tt][j], want.Values[tt][j])
			}
		}
	}
	for j := range want.Average {
		if wall.Average[j] != want.Average[j] {
			t.Errorf("average[%d] = %v, want %v", j, wall.Average[j], want.Average[j])
		}
	}
}

func TestStoreDuplicateID(t *testing.T) {
	st := New(t.TempDir())
	ts := time.Unix(1700000000, 0)

	first, err := st.Save(sampleMeta(ts), sampleWall())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(sampleMeta(ts), sampleWall())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Errorf("expected distinct ids, both %q", first)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	old := sampleMeta(time.Unix(1600000000, 0))
	newer := sampleMeta(time.Unix(1700000000, 0))
	newer.Scenario = "double_slit_diffraction"
	for _, m := range []RunMetadata{old, newer} {
		if _, err := st.Save(m, sampleWall()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Scenario != "double_slit_diffraction" {
		t.Errorf("expected newest first, got %q", runs[0].Scenario)
	}

	latest, err := st.Latest()
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if latest != runs[0].ID {
		t.Errorf("latest = %q, want %q", latest, runs[0].ID)
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runID, err := st.Save(sampleMeta(time.Now()), sampleWall())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "wall.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, runID, "wall.csv"))
	if err != nil {
		t.Fatal(err)
	}
	header := strings.SplitN(string(data), "\n", 2)[0]
	if header != "y,t0,t1,average" {
		t.Errorf("unexpected header %q", header)
	}
}

func TestStoreRejectsRaggedWall(t *testing.T) {
	st := New(t.TempDir())
	wall := sampleWall()
	wall.Values[1] = wall.Values[1][:2]

	if _, err := st.Save(sampleMeta(time.Now()), wall); !errors.Is(err, ErrBadRecord) {
		t.Errorf("expected ErrBadRecord, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(sampleMeta(time.Now()), sampleWall())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if data.Metadata.ID != runID {
		t.Errorf("expected id %q, got %q", runID, data.Metadata.ID)
	}
	if len(data.Wall) != 2 || len(data.Average) != 3 {
		t.Errorf("unexpected export shape: %d steps, %d averages", len(data.Wall), len(data.Average))
	}
}

func TestExportCSV(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(sampleMeta(time.Now()), sampleWall())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportCSV(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Errorf("expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[1] != "-1,0.1,0.4,0.25" {
		t.Errorf("unexpected first row %q", lines[1])
	}
}
