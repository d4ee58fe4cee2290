package hydro

import "errors"

// Solver invocation errors.
var (
	// ErrSolverNotConfigured is returned when no solver command is set.
	// Runs that reach the solve stage need --solver or a configured
	// solver_command.
	ErrSolverNotConfigured = errors.New("hydrostatic shape solver not configured")

	// ErrInvalidSolverRequest is returned when a request fails validation
	// before the solver is invoked.
	ErrInvalidSolverRequest = errors.New("invalid solver request")

	// ErrSolverFailed is returned when the solver process exits non-zero
	// or cannot be started. The message carries the solver's stderr.
	ErrSolverFailed = errors.New("hydrostatic shape solver failed")

	// ErrSolverOutputInvalid is returned when the solver exits zero but
	// its stdout is not a valid result document.
	ErrSolverOutputInvalid = errors.New("hydrostatic shape solver returned invalid output")
)
