package fall

import (
	"math"

	"github.com/averdu/dragfall/internal/symbolic"
)

// Evaluate samples one scenario's velocity curve on its time grid and
// compares the end of the window against the analytic terminal velocity.
// A configuration fault returns a ScenarioError carrying the label and
// parameter values; the evaluator itself is never invoked in that case.
func Evaluate(ev symbolic.Evaluator, sc Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, &ScenarioError{Label: sc.Label, Params: sc.Params, Wrapped: err}
	}

	grid := sc.Grid()
	v := ev(grid, sc.Params.Mass, sc.Params.Drag, sc.Params.Gravity, sc.Params.V0)

	terminal := sc.Params.Terminal()
	final := v[len(v)-1]

	return &Result{
		Label:      sc.Label,
		Times:      grid,
		Velocities: v,
		Terminal:   terminal,
		FinalV:     final,
		RelError:   math.Abs(terminal-final) / terminal,
	}, nil
}

// Failure records a skipped scenario and its cause.
type Failure struct {
	Label string
	Err   error
}

// Report aggregates a batch run: successful results in scenario entry
// order, faulted scenarios alongside. Legend order downstream follows
// entry order, so nothing here deduplicates or reorders.
type Report struct {
	Results  []*Result
	Failures []Failure
}

// Series forwards every successful result to the plotting sink, preserving
// entry order.
func (r *Report) Series() []Series {
	out := make([]Series, 0, len(r.Results))
	for _, res := range r.Results {
		out = append(out, Series{Times: res.Times, Velocities: res.Velocities, Label: res.Label})
	}
	return out
}

// EvaluateAll runs each scenario in order against the shared evaluator.
// A faulted scenario is recorded and the batch continues.
func EvaluateAll(ev symbolic.Evaluator, scenarios []Scenario) *Report {
	report := &Report{
		Results:  make([]*Result, 0, len(scenarios)),
		Failures: make([]Failure, 0),
	}

	for _, sc := range scenarios {
		res, err := Evaluate(ev, sc)
		if err != nil {
			report.Failures = append(report.Failures, Failure{Label: sc.Label, Err: err})
			continue
		}
		report.Results = append(report.Results, res)
	}

	return report
}
