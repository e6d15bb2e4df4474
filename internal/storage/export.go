package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

type ExportData struct {
	Metadata RunMetadata `json:"metadata"`
	Ys       []float64   `json:"ys"`
	Wall     [][]float64 `json:"wall"`
	Average  []float64   `json:"average"`
}

// ExportJSON writes the run's metadata and wall series as a single JSON
// document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	wall, err := s.LoadWall(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{
		Metadata: *meta,
		Ys:       wall.Ys,
		Wall:     wall.Values,
		Average:  wall.Average,
	})
}

// ExportCSV copies the run's wall table to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	wall, err := s.LoadWall(runID)
	if err != nil {
		return err
	}
	return WriteWallCSV(w, wall)
}

func WriteWallCSV(out io.Writer, wall *Wall) error {
	if err := wall.validate(); err != nil {
		return err
	}

	w := csv.NewWriter(out)
	header := make([]string, 0, wall.Steps()+2)
	header = append(header, "y")
	for t := range wall.Values {
		header = append(header, fmt.Sprintf("t%d", t))
	}
	header = append(header, "average")
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for j, y := range wall.Ys {
		row[0] = formatFloat(y)
		for t := range wall.Values {
			row[t+1] = formatFloat(wall.Values[t][j])
		}
		row[len(row)-1] = formatFloat(wall.Average[j])
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
