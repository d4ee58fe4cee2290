package hydro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// defaultSolverTimeout bounds one solver invocation. Degree-2 solutions
// finish in well under a second; minutes of runtime means the solver hung.
const defaultSolverTimeout = 5 * time.Minute

// ExecSolver runs an external hydrostatic shape solver binary. It writes
// one JSON Request to the solver's stdin and reads one JSON Result from its
// stdout; stderr is captured into the returned error on failure.
//
// Design decision: The command is validated lazily, on first use rather
// than in the constructor, so a configuration can be built before the
// solver binary is installed. Runs that never reach the solve stage, such
// as inspect, work without a solver entirely.
type ExecSolver struct {
	// command is the solver executable path or name.
	command string

	// args are fixed arguments passed before the request.
	args []string

	// timeout bounds one invocation.
	timeout time.Duration

	// logger receives per-invocation debug records.
	logger *slog.Logger
}

// ExecSolverOption configures an ExecSolver.
type ExecSolverOption func(*ExecSolver)

// WithSolverArgs sets fixed command-line arguments for every invocation.
func WithSolverArgs(args ...string) ExecSolverOption {
	return func(s *ExecSolver) {
		s.args = args
	}
}

// WithSolverTimeout bounds one invocation. Non-positive values keep the
// default.
func WithSolverTimeout(timeout time.Duration) ExecSolverOption {
	return func(s *ExecSolver) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithSolverLogger sets the logger. Nil keeps the default logger.
func WithSolverLogger(logger *slog.Logger) ExecSolverOption {
	return func(s *ExecSolver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewExecSolver creates a solver that runs the given command.
func NewExecSolver(command string, opts ...ExecSolverOption) *ExecSolver {
	s := &ExecSolver{
		command: command,
		timeout: defaultSolverTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HydrostaticShapeLith implements ShapeSolver by invoking the external
// solver process once.
func (s *ExecSolver) HydrostaticShapeLith(ctx context.Context, req *Request) (*Result, error) {
	if s.command == "" {
		return nil, ErrSolverNotConfigured
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode solver request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.command, s.args...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	s.logger.DebugContext(ctx, "invoking hydrostatic shape solver",
		"command", s.command,
		"lithosphere_index", req.LithosphereIndex,
		"max_degree", req.MaxDegree,
	)

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrSolverFailed, msg)
	}

	var result Result
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSolverOutputInvalid, err)
	}

	s.logger.DebugContext(ctx, "hydrostatic shape solver finished",
		"command", s.command,
		"duration", time.Since(start),
		"mass_kg", result.Mass,
	)
	return &result, nil
}
