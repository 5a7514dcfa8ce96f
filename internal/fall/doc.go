// Package fall evaluates the linear-drag free-fall model for batches of
// physical scenarios.
//
// The model is m*v'(t) + gamma*v(t) = m*g with v(0) = v0, downward axis
// positive. Its closed form is derived once per process by the symbolic
// package and compiled into a shared, read-only evaluator; each scenario
// then contributes one sampled velocity curve, its analytic terminal
// velocity m*g/gamma, and the relative error between the two at the end of
// the sampling window.
//
// Scenario evaluation is pure: no scenario's failure affects another, and
// a faulted scenario (zero mass, zero drag, degenerate grid) is reported
// with its label rather than dropped silently.
package fall
