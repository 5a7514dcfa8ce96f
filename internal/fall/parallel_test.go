package fall

import (
	"fmt"
	"testing"
)

func TestEnsembleMatchesSequential(t *testing.T) {
	ev := compiled(t)

	scenarios := make([]Scenario, 0, 16)
	for i := 0; i < 16; i++ {
		scenarios = append(scenarios, Scenario{
			Label:  fmt.Sprintf("body-%d", i),
			Params: Params{Mass: 1 + float64(i), Drag: 2, Gravity: 9.81},
			TMax:   10,
			Points: 50,
		})
	}

	sequential := EvaluateAll(ev, scenarios)
	parallel := NewEnsemble(ev).Run(scenarios)

	if len(parallel.Results) != len(sequential.Results) {
		t.Fatalf("result count mismatch: %d vs %d", len(parallel.Results), len(sequential.Results))
	}
	for i := range sequential.Results {
		if parallel.Results[i].Label != sequential.Results[i].Label {
			t.Errorf("result %d out of order: %q vs %q", i, parallel.Results[i].Label, sequential.Results[i].Label)
		}
		if parallel.Results[i].FinalV != sequential.Results[i].FinalV {
			t.Errorf("result %d differs: %f vs %f", i, parallel.Results[i].FinalV, sequential.Results[i].FinalV)
		}
	}
}

func TestEnsembleRecordsFailures(t *testing.T) {
	ev := compiled(t)

	scenarios := []Scenario{
		{Label: "ok", Params: Params{Mass: 1, Drag: 1, Gravity: 9.8}, TMax: 5, Points: 10},
		{Label: "massless", Params: Params{Mass: 0, Drag: 1, Gravity: 9.8}, TMax: 5, Points: 10},
		{Label: "dense grid", Params: Params{Mass: 1, Drag: 1, Gravity: 9.8}, TMax: 5, Points: 1},
	}

	report := NewEnsemble(ev).Run(scenarios)

	if len(report.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(report.Results))
	}
	if len(report.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(report.Failures))
	}
	if report.Failures[0].Label != "massless" || report.Failures[1].Label != "dense grid" {
		t.Errorf("failures out of entry order: %q, %q", report.Failures[0].Label, report.Failures[1].Label)
	}
}
