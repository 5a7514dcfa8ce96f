package fall

// Params holds the physical parameters of one falling body.
type Params struct {
	Mass    float64 // kg
	Drag    float64 // kg/s, linear drag coefficient
	Gravity float64 // m/s^2
	V0      float64 // m/s, initial velocity (downward positive)
}

func (p Params) Validate() error {
	if p.Mass <= 0 {
		return ErrNonPositiveMass
	}
	if p.Drag <= 0 {
		return ErrNonPositiveDrag
	}
	if p.Gravity <= 0 {
		return ErrNonPositiveGravity
	}
	return nil
}

// Terminal returns the asymptotic velocity m*g/gamma at which drag balances
// gravity. Only meaningful for validated parameters.
func (p Params) Terminal() float64 {
	return p.Mass * p.Gravity / p.Drag
}

// Scenario is one simulated fall: a parameter set plus its sampling window.
// Immutable after creation.
type Scenario struct {
	Label  string
	Params Params
	TMax   float64
	Points int
}

func (s Scenario) Validate() error {
	if err := s.Params.Validate(); err != nil {
		return err
	}
	if s.TMax <= 0 {
		return ErrNonPositiveHorizon
	}
	if s.Points < 2 {
		return ErrShortGrid
	}
	return nil
}

// Grid builds Points evenly spaced time samples over [0, TMax], endpoints
// inclusive.
func (s Scenario) Grid() []float64 {
	grid := make([]float64, s.Points)
	step := s.TMax / float64(s.Points-1)
	for i := range grid {
		grid[i] = float64(i) * step
	}
	grid[len(grid)-1] = s.TMax
	return grid
}

// Result is the evaluated trajectory of one scenario, read-only once built.
type Result struct {
	Label      string
	Times      []float64
	Velocities []float64
	Terminal   float64 // analytic terminal velocity m*g/gamma
	FinalV     float64 // last sampled velocity v(TMax)
	RelError   float64 // |Terminal - FinalV| / Terminal
}

// Series is the plotting-sink view of a result: paired same-length arrays
// plus the legend label.
type Series struct {
	Times      []float64
	Velocities []float64
	Label      string
}
