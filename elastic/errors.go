package elastic

import "errors"

// The error taxonomy shared by every package in the module. Callers test
// for these with errors.Is; the wrapping message carries the offending
// angle, name or value.
var (
	// ErrInvalidAngle is returned when an angle lies outside the domain of
	// the model being evaluated, including post-critical angles where a
	// model needs a real transmission angle.
	ErrInvalidAngle = errors.New("invalid angle")

	// ErrInvalidArgument is returned for unrecognized amplitude types,
	// reflection types, equations, parameters or malformed inputs.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotImplemented is returned for a valid but unsupported pairing,
	// such as a PS coefficient from a linearized equation.
	ErrNotImplemented = errors.New("not implemented")

	// ErrSolverDegenerate is returned when a least-squares or linear
	// program has no well defined minimizer.
	ErrSolverDegenerate = errors.New("solver degenerate")
)
