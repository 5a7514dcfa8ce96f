package fall

import (
	"errors"
	"fmt"
)

// Domain errors for scenario configuration.
var (
	// ErrNonPositiveMass indicates a scenario with m <= 0.
	ErrNonPositiveMass = errors.New("fall: mass must be positive")

	// ErrNonPositiveDrag indicates a scenario with gamma <= 0; the model
	// divides by gamma for the terminal velocity.
	ErrNonPositiveDrag = errors.New("fall: drag coefficient must be positive")

	// ErrNonPositiveGravity indicates a scenario with g <= 0.
	ErrNonPositiveGravity = errors.New("fall: gravity must be positive")

	// ErrShortGrid indicates a time grid with fewer than two samples.
	ErrShortGrid = errors.New("fall: time grid needs at least two samples")

	// ErrNonPositiveHorizon indicates a sampling window with T_max <= 0.
	ErrNonPositiveHorizon = errors.New("fall: sampling horizon must be positive")
)

// ScenarioError wraps a configuration error with the offending scenario's
// label and parameter values.
type ScenarioError struct {
	Label   string
	Params  Params
	Wrapped error
}

func (e *ScenarioError) Error() string {
	return fmt.Sprintf("scenario %q (m=%g, gamma=%g, g=%g, v0=%g): %v",
		e.Label, e.Params.Mass, e.Params.Drag, e.Params.Gravity, e.Params.V0, e.Wrapped)
}

func (e *ScenarioError) Unwrap() error { return e.Wrapped }
