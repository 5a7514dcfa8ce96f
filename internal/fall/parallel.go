package fall

import (
	"sync"

	"github.com/averdu/dragfall/internal/symbolic"
)

// Ensemble evaluates a batch of scenarios concurrently, one goroutine per
// scenario. Scenarios are independent and the compiled evaluator is
// read-only, so each goroutine writes only its own slot; the report is
// compacted back to entry order afterwards.
type Ensemble struct {
	ev symbolic.Evaluator
}

func NewEnsemble(ev symbolic.Evaluator) *Ensemble {
	return &Ensemble{ev: ev}
}

func (e *Ensemble) Run(scenarios []Scenario) *Report {
	results := make([]*Result, len(scenarios))
	errs := make([]error, len(scenarios))

	var wg sync.WaitGroup
	for i := range scenarios {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = Evaluate(e.ev, scenarios[idx])
		}(i)
	}
	wg.Wait()

	report := &Report{
		Results:  make([]*Result, 0, len(scenarios)),
		Failures: make([]Failure, 0),
	}
	for i := range scenarios {
		if errs[i] != nil {
			report.Failures = append(report.Failures, Failure{Label: scenarios[i].Label, Err: errs[i]})
			continue
		}
		report.Results = append(report.Results, results[i])
	}
	return report
}
