// Package symbolic derives the closed-form velocity of the linear-drag
// fall model by the Laplace-transform method.
//
// The package carries a deliberately small expression kernel:
//
//   - [Expr]: immutable algebraic expression over named symbols
//   - [Solution]: the derived time-domain velocity v(t)
//   - [Evaluator]: compiled numeric form, vectorized over a time grid
//
// The derivation runs once per process:
//
//	sol, err := symbolic.DeriveVelocity()
//	ev, err := sol.Compile()
//	v := ev(grid, 80, 12, 9.81, 0)
//
// The transform table only knows 1/s and 1/(s+a); that is exactly the pole
// structure the first-order model produces, and anything else is reported
// as a derivation error rather than approximated.
package symbolic
