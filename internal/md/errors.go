package md

import "errors"

// Domain errors for simulation setup and execution.
var (
	// ErrInvalidConfig indicates a missing or invalid simulation parameter.
	ErrInvalidConfig = errors.New("md: invalid configuration")

	// ErrNotImplemented indicates a deliberately unfinished code path
	// (Lennard-Jones forces, velocity Verlet). Callers must never receive
	// a silent zero result from these paths.
	ErrNotImplemented = errors.New("md: not implemented")

	// ErrCompleted indicates a simulation that has already run to completion.
	ErrCompleted = errors.New("md: simulation already completed")
)
