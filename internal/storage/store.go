package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/averdu/dragfall/internal/fall"
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

type ScenarioMetadata struct {
	Label    string  `json:"label"`
	Mass     float64 `json:"mass"`
	Drag     float64 `json:"drag"`
	Gravity  float64 `json:"gravity"`
	V0       float64 `json:"v0"`
	Terminal float64 `json:"terminal"`
	FinalV   float64 `json:"final_v"`
	RelError float64 `json:"rel_error"`
}

type FailureMetadata struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	TMax      float64            `json:"t_max"`
	Points    int                `json:"points"`
	Scenarios []ScenarioMetadata `json:"scenarios"`
	Skipped   []FailureMetadata  `json:"skipped,omitempty"`
}

// Save writes one run as a directory holding metadata.json plus a
// series.csv with the shared time column and one velocity column per
// scenario, columns in scenario entry order.
func (s *Store) Save(tmax float64, points int, scenarios []fall.Scenario, report *fall.Report) (string, error) {
	runID := fmt.Sprintf("fall_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	byLabel := make(map[string]fall.Params, len(scenarios))
	for _, sc := range scenarios {
		byLabel[sc.Label] = sc.Params
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		TMax:      tmax,
		Points:    points,
		Scenarios: make([]ScenarioMetadata, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		p := byLabel[res.Label]
		meta.Scenarios = append(meta.Scenarios, ScenarioMetadata{
			Label:    res.Label,
			Mass:     p.Mass,
			Drag:     p.Drag,
			Gravity:  p.Gravity,
			V0:       p.V0,
			Terminal: res.Terminal,
			FinalV:   res.FinalV,
			RelError: res.RelError,
		})
	}
	for _, f := range report.Failures {
		meta.Skipped = append(meta.Skipped, FailureMetadata{Label: f.Label, Reason: f.Err.Error()})
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "series.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	series := report.Series()
	if len(series) == 0 {
		return runID, nil
	}
	for _, sr := range series {
		if len(sr.Velocities) != len(series[0].Times) {
			return "", fmt.Errorf("storage: series %q has %d samples, want %d", sr.Label, len(sr.Velocities), len(series[0].Times))
		}
	}

	header := []string{"time"}
	for _, sr := range series {
		header = append(header, sr.Label)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range series[0].Times {
		row := []string{strconv.FormatFloat(series[0].Times[i], 'f', 6, 64)}
		for _, sr := range series {
			row = append(row, strconv.FormatFloat(sr.Velocities[i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads series.csv back into plotting-ready series, column
// order (and therefore legend order) preserved.
func (s *Store) LoadSeries(runID string) ([]fall.Series, error) {
	csvPath := filepath.Join(s.baseDir, runID, "series.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 || len(records[0]) < 2 {
		return []fall.Series{}, nil
	}

	labels := records[0][1:]
	times := make([]float64, 0, len(records)-1)
	columns := make([][]float64, len(labels))
	for i := range columns {
		columns[i] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != len(labels)+1 {
			return nil, fmt.Errorf("storage: malformed row in %s: %d fields, want %d", csvPath, len(record), len(labels)+1)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: bad time value %q: %w", record[0], err)
		}
		times = append(times, t)
		for j := 1; j < len(record); j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("storage: bad velocity value %q: %w", record[j], err)
			}
			columns[j-1] = append(columns[j-1], v)
		}
	}

	series := make([]fall.Series, 0, len(labels))
	for i, label := range labels {
		series = append(series, fall.Series{Times: times, Velocities: columns[i], Label: label})
	}
	return series, nil
}
