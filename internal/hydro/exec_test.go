package hydro

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"
)

// solverResultJSON is the canned answer the fake solver prints.
const solverResultJSON = `{
  "shape_coefficients": [
    {"degree": 0, "order": 0, "c": 3389500.0, "s": 0},
    {"degree": 2, "order": 0, "c": -1822.0, "s": 0}
  ],
  "hydro_coefficients": [
    {"degree": 2, "order": 0, "c": -0.000801, "s": 0}
  ],
  "mass_kg": 6.417e23
}`

// fakeSolver builds an ExecSolver backed by an inline shell script. Tests
// that need a real subprocess skip on platforms without sh.
func fakeSolver(t *testing.T, script string) *ExecSolver {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake solver needs sh")
	}
	return NewExecSolver("sh", WithSolverArgs("-c", script))
}

func TestExecSolverHydrostaticShapeLith(t *testing.T) {
	t.Parallel()

	t.Run("decodes the solver result", func(t *testing.T) {
		t.Parallel()

		solver := fakeSolver(t, "cat >/dev/null; printf '%s' '"+solverResultJSON+"'")
		result, err := solver.HydrostaticShapeLith(context.Background(), validRequest())
		if err != nil {
			t.Fatalf("HydrostaticShapeLith() error = %v", err)
		}

		c20, ok := result.HydroCoeffs.C(2, 0)
		if !ok || c20 != -0.000801 {
			t.Errorf("hydro C(2,0) = (%g, %v), want (-0.000801, true)", c20, ok)
		}
		if result.Mass != 6.417e23 {
			t.Errorf("Mass = %g, want 6.417e23", result.Mass)
		}
		if len(result.ShapeCoeffs) != 2 {
			t.Errorf("len(ShapeCoeffs) = %d, want 2", len(result.ShapeCoeffs))
		}
	})

	t.Run("request is delivered on stdin", func(t *testing.T) {
		t.Parallel()

		// The script fails unless the request mentions the gravity file,
		// proving stdin carried the serialized request.
		script := `grep -q gmm3_120_sha.tab || exit 9; printf '%s' '` + solverResultJSON + `'`
		solver := fakeSolver(t, script)
		if _, err := solver.HydrostaticShapeLith(context.Background(), validRequest()); err != nil {
			t.Fatalf("HydrostaticShapeLith() error = %v", err)
		}
	})

	t.Run("nonzero exit carries stderr", func(t *testing.T) {
		t.Parallel()

		solver := fakeSolver(t, `cat >/dev/null; echo 'singular matrix at degree 2' >&2; exit 3`)
		_, err := solver.HydrostaticShapeLith(context.Background(), validRequest())
		if !errors.Is(err, ErrSolverFailed) {
			t.Fatalf("error = %v, want ErrSolverFailed", err)
		}
		if !strings.Contains(err.Error(), "singular matrix") {
			t.Errorf("error %q does not carry stderr", err)
		}
	})

	t.Run("invalid output", func(t *testing.T) {
		t.Parallel()

		solver := fakeSolver(t, `cat >/dev/null; echo 'not json'`)
		_, err := solver.HydrostaticShapeLith(context.Background(), validRequest())
		if !errors.Is(err, ErrSolverOutputInvalid) {
			t.Errorf("error = %v, want ErrSolverOutputInvalid", err)
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		t.Parallel()

		solver := NewExecSolver("pycrust-no-such-solver-binary")
		_, err := solver.HydrostaticShapeLith(context.Background(), validRequest())
		if !errors.Is(err, ErrSolverFailed) {
			t.Errorf("error = %v, want ErrSolverFailed", err)
		}
	})

	t.Run("unconfigured command", func(t *testing.T) {
		t.Parallel()

		solver := NewExecSolver("")
		_, err := solver.HydrostaticShapeLith(context.Background(), validRequest())
		if !errors.Is(err, ErrSolverNotConfigured) {
			t.Errorf("error = %v, want ErrSolverNotConfigured", err)
		}
	})

	t.Run("invalid request is rejected before spawning", func(t *testing.T) {
		t.Parallel()

		req := validRequest()
		req.MaxDegree = 0
		solver := NewExecSolver("pycrust-no-such-solver-binary")
		_, err := solver.HydrostaticShapeLith(context.Background(), req)
		if !errors.Is(err, ErrInvalidSolverRequest) {
			t.Errorf("error = %v, want ErrInvalidSolverRequest", err)
		}
	})

	t.Run("timeout kills a hung solver", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" {
			t.Skip("fake solver needs sh")
		}
		solver := NewExecSolver("sh",
			WithSolverArgs("-c", "sleep 10"),
			WithSolverTimeout(100*time.Millisecond),
		)
		start := time.Now()
		_, err := solver.HydrostaticShapeLith(context.Background(), validRequest())
		if !errors.Is(err, ErrSolverFailed) {
			t.Fatalf("error = %v, want ErrSolverFailed", err)
		}
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Errorf("solver took %v to be killed", elapsed)
		}
	})
}

func TestNewExecSolverOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		s := NewExecSolver("solver")
		if s.timeout != defaultSolverTimeout {
			t.Errorf("timeout = %v, want %v", s.timeout, defaultSolverTimeout)
		}
		if s.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("non-positive timeout keeps the default", func(t *testing.T) {
		t.Parallel()
		s := NewExecSolver("solver", WithSolverTimeout(0))
		if s.timeout != defaultSolverTimeout {
			t.Errorf("timeout = %v, want %v", s.timeout, defaultSolverTimeout)
		}
	})

	t.Run("nil logger keeps the default", func(t *testing.T) {
		t.Parallel()
		s := NewExecSolver("solver", WithSolverLogger(nil))
		if s.logger == nil {
			t.Error("expected non-nil logger")
		}
	})
}
