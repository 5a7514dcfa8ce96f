package symbolic

import (
	"errors"
	"fmt"
	"math"
)

// Domain errors for the Laplace pipeline.
var (
	// ErrNoSolution indicates the transform-domain equation could not be
	// solved linearly for V(s).
	ErrNoSolution = errors.New("symbolic: transform equation has no linear solution for V(s)")

	// ErrNotElementary indicates a transform-domain term has no inverse in
	// the elementary transform table.
	ErrNotElementary = errors.New("symbolic: inverse transform not expressible in elementary form")
)

// DerivationError wraps a failure in the one-time symbolic derivation with
// the pipeline stage it occurred in.
type DerivationError struct {
	Stage   string
	Wrapped error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("derivation failed at %s: %v", e.Stage, e.Wrapped)
}

func (e *DerivationError) Unwrap() error { return e.Wrapped }

// linPoly is a degree-one polynomial c0 + c1*s in the transform variable,
// with symbolic coefficients.
type linPoly struct {
	c0, c1 Expr
}

// sTerm is one summand of a transform-domain expression:
//
//	coeff / (s + pole)        pole != nil, origin = false
//	coeff / s                 pole == nil, origin = true
//	coeff / (s*(s + pole))    pole != nil, origin = true
//	coeff                     pole == nil, origin = false (no elementary inverse)
type sTerm struct {
	coeff  Expr
	pole   Expr
	origin bool
}

// Solution is the closed-form time-domain velocity derived from the drag
// model, immutable once built.
type Solution struct {
	v Expr
}

// Expr returns the time-domain expression v(t).
func (s *Solution) Expr() Expr { return s.v }

func (s *Solution) String() string { return s.v.String() }

// Evaluator is a compiled, stateless numeric form of a Solution,
// vectorized over the time samples. Safe for concurrent use.
type Evaluator func(t []float64, m, gamma, g, v0 float64) []float64

// DeriveVelocity derives v(t) for m*v'(t) + gamma*v(t) = m*g, v(0) = v0,
// by the Laplace-transform method: transform the ODE with the derivative
// rule L{v'} = s*V - v(0), solve the algebraic equation for V(s), reduce to
// table poles by partial fractions, and invert term by term.
//
// The expected result is v(t) = g*m/gamma + (v0 - g*m/gamma)*exp(-gamma*t/m).
func DeriveVelocity() (*Solution, error) {
	m, gamma, g, v0 := S("m"), S("gamma"), S("g"), S("v0")

	lhs, rhs := transformODE(m, gamma, g, v0)

	terms, err := solveForV(lhs, rhs)
	if err != nil {
		return nil, &DerivationError{Stage: "solve", Wrapped: err}
	}

	terms = partialFractions(terms)

	v, err := invert(terms)
	if err != nil {
		return nil, &DerivationError{Stage: "inverse transform", Wrapped: err}
	}

	return &Solution{v: v}, nil
}

// transformODE applies the Laplace transform to m*v' + gamma*v = m*g.
// L{m*v'} = m*(s*V - v0) and L{gamma*v} = gamma*V collect on the left as
// (m*s + gamma)*V; the initial condition m*v0 and the forcing transform
// L{m*g} = m*g/s collect on the right.
func transformODE(m, gamma, g, v0 Expr) (linPoly, []sTerm) {
	lhs := linPoly{c0: gamma, c1: m}
	rhs := []sTerm{
		{coeff: MulOf(m, v0)},
		{coeff: MulOf(m, g), origin: true},
	}
	return lhs, rhs
}

// solveForV divides each right-hand term by c1*(s + c0/c1). The division
// lands every term on a single simple pole, which is the only shape the
// inverse table below accepts.
func solveForV(lhs linPoly, rhs []sTerm) ([]sTerm, error) {
	if n, ok := lhs.c1.(Num); ok && n.Value == 0 {
		return nil, ErrNoSolution
	}
	pole := Div(lhs.c0, lhs.c1)

	out := make([]sTerm, 0, len(rhs))
	for _, term := range rhs {
		if term.pole != nil {
			// Dividing would stack two distinct poles on one term.
			return nil, ErrNotElementary
		}
		out = append(out, sTerm{
			coeff:  Div(term.coeff, lhs.c1),
			pole:   pole,
			origin: term.origin,
		})
	}
	return out, nil
}

// partialFractions rewrites c/(s*(s+a)) as (c/a)/s - (c/a)/(s+a), leaving
// pure 1/s and 1/(s+a) terms for the inverse table.
func partialFractions(terms []sTerm) []sTerm {
	out := make([]sTerm, 0, len(terms))
	for _, term := range terms {
		if term.pole == nil || !term.origin {
			out = append(out, term)
			continue
		}
		scaled := Div(term.coeff, term.pole)
		out = append(out,
			sTerm{coeff: scaled, origin: true},
			sTerm{coeff: Neg(scaled), pole: term.pole},
		)
	}
	return out
}

// invert maps each transform-domain term to its time-domain counterpart:
// c/s -> c, c/(s+a) -> c*exp(-a*t).
func invert(terms []sTerm) (Expr, error) {
	t := S("t")
	parts := make([]Expr, 0, len(terms))
	for _, term := range terms {
		switch {
		case term.pole == nil && term.origin:
			parts = append(parts, term.coeff)
		case term.pole != nil && !term.origin:
			parts = append(parts, MulOf(term.coeff, ExpOf(MulOf(N(-1), term.pole, t))))
		default:
			return nil, ErrNotElementary
		}
	}
	return AddOf(parts...), nil
}

// Compile turns the solution into a numeric evaluator over a time grid.
// It rejects expressions with symbols outside (t, m, gamma, g, v0) so the
// returned closure can never hit an unbound symbol.
func (s *Solution) Compile() (Evaluator, error) {
	for _, name := range FreeSymbols(s.v) {
		switch name {
		case "t", "m", "gamma", "g", "v0":
		default:
			return nil, &DerivationError{
				Stage:   "compile",
				Wrapped: fmt.Errorf("unexpected free symbol %q", name),
			}
		}
	}

	expr := s.v
	return func(ts []float64, m, gamma, g, v0 float64) []float64 {
		env := map[string]float64{"m": m, "gamma": gamma, "g": g, "v0": v0}
		out := make([]float64, len(ts))
		for i, t := range ts {
			env["t"] = t
			v, err := expr.Eval(env)
			if err != nil {
				v = math.NaN()
			}
			out[i] = v
		}
		return out
	}, nil
}
