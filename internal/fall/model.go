package fall

import (
	"sync"

	"github.com/averdu/dragfall/internal/symbolic"
)

var (
	deriveOnce sync.Once
	solution   *symbolic.Solution
	evaluator  symbolic.Evaluator
	deriveErr  error
)

func derive() {
	solution, deriveErr = symbolic.DeriveVelocity()
	if deriveErr != nil {
		return
	}
	evaluator, deriveErr = solution.Compile()
}

// Compiled returns the process-wide compiled evaluator for v(t). The
// symbolic derivation runs on first use and is cached for the lifetime of
// the run; a derivation failure is fatal and repeats on every call.
func Compiled() (symbolic.Evaluator, error) {
	deriveOnce.Do(derive)
	return evaluator, deriveErr
}

// ClosedForm returns the derived symbolic expression for v(t) as text.
func ClosedForm() (string, error) {
	deriveOnce.Do(derive)
	if deriveErr != nil {
		return "", deriveErr
	}
	return solution.String(), nil
}
