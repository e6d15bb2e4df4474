// Package storage keeps a small on-disk index of simulation runs: a
// metadata.json and a wall.csv per run directory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

var ErrBadRecord = errors.New("storage: malformed run record")

const (
	metadataFile = "metadata.json"
	wallFile     = "wall.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Source struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Scenario     string             `json:"scenario"`
	Timestamp    time.Time          `json:"timestamp"`
	SlitDistance float64            `json:"slit_distance"`
	WallDistance float64            `json:"wall_distance"`
	Breadth      float64            `json:"breadth"`
	Resolution   float64            `json:"resolution"`
	Steps        int                `json:"steps"`
	Grid         [2]int             `json:"grid"`
	Sources      []Source           `json:"sources"`
	Outputs      []string           `json:"outputs,omitempty"`
	Duration     float64            `json:"duration_seconds"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Wall is the detector series of a run: Values[t][j] at position Ys[j], and
// the converged time average per position.
type Wall struct {
	Ys      []float64
	Values  [][]float64
	Average []float64
}

func (w *Wall) Steps() int { return len(w.Values) }

func (w *Wall) validate() error {
	for t, row := range w.Values {
		if len(row) != len(w.Ys) {
			return fmt.Errorf("%w: step %d has %d values for %d positions", ErrBadRecord, t, len(row), len(w.Ys))
		}
	}
	if len(w.Average) != len(w.Ys) {
		return fmt.Errorf("%w: %d averages for %d positions", ErrBadRecord, len(w.Average), len(w.Ys))
	}
	return nil
}

// NewRunID names a run after its scenario and the current unix time.
func NewRunID(scenario string, now time.Time) string {
	return fmt.Sprintf("%s_%d", scenario, now.Unix())
}

// Save writes the run and returns its id. An empty meta.ID is filled in;
// an id that already exists gets a numeric suffix.
func (s *Store) Save(meta RunMetadata, wall *Wall) (string, error) {
	if err := wall.validate(); err != nil {
		return "", err
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = NewRunID(meta.Scenario, meta.Timestamp)
	}
	meta.ID = s.uniqueID(meta.ID)
	if meta.Metrics == nil {
		meta.Metrics = map[string]float64{}
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeWallCSV(filepath.Join(runDir, wallFile), wall); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func (s *Store) uniqueID(id string) string {
	candidate := id
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(s.baseDir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", id, n)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeWallCSV(path string, wall *Wall) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWallCSV(f, wall); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns all readable runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Latest returns the id of the newest run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("storage: no runs in %s", s.baseDir)
	}
	return runs[0].ID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadRecord, runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadWall(runID string) (*Wall, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, wallFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadRecord, runID, err)
	}
	return parseWall(records)
}

// wall.csv holds one row per wall position: y, t0..t{T-1}, average.
func parseWall(records [][]string) (*Wall, error) {
	if len(records) < 1 || len(records[0]) < 3 {
		return nil, fmt.Errorf("%w: missing header", ErrBadRecord)
	}
	steps := len(records[0]) - 2
	rows := records[1:]

	w := &Wall{
		Ys:      make([]float64, len(rows)),
		Values:  make([][]float64, steps),
		Average: make([]float64, len(rows)),
	}
	for t := range w.Values {
		w.Values[t] = make([]float64, len(rows))
	}

	for j, rec := range rows {
		vals := make([]float64, len(rec))
		for k, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrBadRecord, j+1, err)
			}
			vals[k] = v
		}
		w.Ys[j] = vals[0]
		for t := 0; t < steps; t++ {
			w.Values[t][j] = vals[t+1]
		}
		w.Average[j] = vals[steps+1]
	}
	return w, nil
}
