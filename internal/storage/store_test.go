package storage

import (
	"testing"

	"github.com/averdu/dragfall/internal/fall"
)

func sampleRun(t *testing.T) ([]fall.Scenario, *fall.Report) {
	t.Helper()

	ev, err := fall.Compiled()
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}

	scenarios := []fall.Scenario{
		{Label: "unit", Params: fall.Params{Mass: 1, Drag: 1, Gravity: 9.8}, TMax: 5, Points: 6},
		{Label: "heavy", Params: fall.Params{Mass: 4, Drag: 2, Gravity: 9.8}, TMax: 5, Points: 6},
		{Label: "broken", Params: fall.Params{Mass: 0, Drag: 1, Gravity: 9.8}, TMax: 5, Points: 6},
	}
	return scenarios, fall.EvaluateAll(ev, scenarios)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	scenarios, report := sampleRun(t)
	runID, err := st.Save(5, 6, scenarios, report)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("id = %q, want %q", meta.ID, runID)
	}
	if meta.TMax != 5 || meta.Points != 6 {
		t.Errorf("window not persisted: t_max=%f points=%d", meta.TMax, meta.Points)
	}
	if len(meta.Scenarios) != 2 {
		t.Fatalf("expected 2 stored scenarios, got %d", len(meta.Scenarios))
	}
	if len(meta.Skipped) != 1 || meta.Skipped[0].Label != "broken" {
		t.Errorf("skipped scenario not recorded: %+v", meta.Skipped)
	}
	if meta.Scenarios[0].Mass != 1 || meta.Scenarios[0].Drag != 1 {
		t.Errorf("parameters not persisted: %+v", meta.Scenarios[0])
	}
}

func TestLoadSeries(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	scenarios, report := sampleRun(t)
	runID, err := st.Save(5, 6, scenarios, report)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(series))
	}
	if series[0].Label != "unit" || series[1].Label != "heavy" {
		t.Errorf("column order not preserved: %q, %q", series[0].Label, series[1].Label)
	}
	for _, sr := range series {
		if len(sr.Times) != 6 || len(sr.Velocities) != 6 {
			t.Errorf("series %q lost samples: %d/%d", sr.Label, len(sr.Times), len(sr.Velocities))
		}
	}
	if series[0].Times[0] != 0 || series[0].Times[5] != 5 {
		t.Errorf("time column corrupted: %v", series[0].Times)
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	scenarios, report := sampleRun(t)
	if _, err := st.Save(5, 6, scenarios, report); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("fall_0"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, err := st.LoadSeries("fall_0"); err == nil {
		t.Error("expected error for missing series")
	}
}

func TestListMissingBaseDir(t *testing.T) {
	st := New(t.TempDir() + "/never-created")

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list should tolerate a missing base dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
