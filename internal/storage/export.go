package storage

import (
	"encoding/json"
	"os"

	"github.com/averdu/dragfall/internal/fall"
)

type ExportData struct {
	ID        string            `json:"id"`
	TMax      float64           `json:"t_max"`
	Points    int               `json:"points"`
	Times     []float64         `json:"times"`
	Scenarios []ExportScenario  `json:"scenarios"`
	Skipped   []FailureMetadata `json:"skipped,omitempty"`
}

type ExportScenario struct {
	Label      string    `json:"label"`
	Velocities []float64 `json:"velocities"`
	Terminal   float64   `json:"terminal"`
	FinalV     float64   `json:"final_v"`
	RelError   float64   `json:"rel_error"`
}

// ExportJSONStdout writes a full run (metadata plus sampled curves) as one
// JSON document to stdout.
func ExportJSONStdout(meta *RunMetadata, series []fall.Series) error {
	data := ExportData{
		ID:        meta.ID,
		TMax:      meta.TMax,
		Points:    meta.Points,
		Scenarios: make([]ExportScenario, 0, len(series)),
		Skipped:   meta.Skipped,
	}
	if len(series) > 0 {
		data.Times = series[0].Times
	}

	byLabel := make(map[string]ScenarioMetadata, len(meta.Scenarios))
	for _, sc := range meta.Scenarios {
		byLabel[sc.Label] = sc
	}
	for _, sr := range series {
		sc := byLabel[sr.Label]
		data.Scenarios = append(data.Scenarios, ExportScenario{
			Label:      sr.Label,
			Velocities: sr.Velocities,
			Terminal:   sc.Terminal,
			FinalV:     sc.FinalV,
			RelError:   sc.RelError,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
