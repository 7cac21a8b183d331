// Package store records headless simulation runs to disk for later plotting
// and analysis: one directory per run holding metadata.json and series.csv.
// Recording is diagnostic output only; simulations never read state back.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Slug        string             `json:"slug"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	Params      map[string]float64 `json:"params"`
	Summary     map[string]float64 `json:"summary"`
	Description string             `json:"description"`
}

// Save writes a recorded run: metadata plus the named scalar series, all of
// equal length, sampled once per step.
func (s *Store) Save(meta RunMetadata, series map[string][]float64) (string, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	header := append([]string{"step"}, names...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	rows := 0
	for _, name := range names {
		if len(series[name]) > rows {
			rows = len(series[name])
		}
	}

	for i := 0; i < rows; i++ {
		row := []string{strconv.Itoa(i)}
		for _, name := range names {
			col := series[name]
			if i < len(col) {
				row = append(row, strconv.FormatFloat(col[i], 'f', 6, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return meta.ID, nil
}

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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads the recorded scalar series back, keyed by column name.
func (s *Store) LoadSeries(runID string) (map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("run %s: empty series file", runID)
	}

	header := records[0]
	series := make(map[string][]float64, len(header)-1)
	for col := 1; col < len(header); col++ {
		series[header[col]] = make([]float64, 0, len(records)-1)
	}

	for i := 1; i < len(records); i++ {
		for col := 1; col < len(header) && col < len(records[i]); col++ {
			v, err := strconv.ParseFloat(records[i][col], 64)
			if err != nil {
				continue
			}
			series[header[col]] = append(series[header[col]], v)
		}
	}
	return series, nil
}
