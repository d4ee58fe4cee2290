package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/De-Guo/pyCrust/internal/config"
	"github.com/De-Guo/pyCrust/internal/gravity"
	"github.com/De-Guo/pyCrust/internal/hydro"
	"github.com/De-Guo/pyCrust/internal/interior"
	"github.com/De-Guo/pyCrust/internal/model"
)

// ParseStep reads the model file and fills the evaluation with the parsed
// profile and the observables derived from it.
//
// Design decision: Parsing is a separate step because:
// 1. It's the foundation every later stage builds on
// 2. The inspect command runs it without the solver stages
// 3. Format dispatch stays in one place
type ParseStep struct {
	// format selects the on-disk layout to parse.
	format model.ModelFormat

	// logger for structured logging.
	logger *slog.Logger
}

// ParseStepOption configures a ParseStep.
type ParseStepOption func(*ParseStep)

// WithParseLogger sets a custom logger for the parse step.
func WithParseLogger(logger *slog.Logger) ParseStepOption {
	return func(s *ParseStep) {
		s.logger = logger
	}
}

// NewParseStep creates a new model parsing step for the given format.
func NewParseStep(format model.ModelFormat, opts ...ParseStepOption) *ParseStep {
	s := &ParseStep{
		format: format,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ParseStep) Name() string {
	return "parse"
}

// Do executes the parse step.
func (s *ParseStep) Do(_ context.Context, ev *model.Evaluation) error {
	ev.Format = s.format

	switch s.format {
	case model.FormatDeck:
		deck, err := interior.ParseDeck(ev.ModelPath)
		if err != nil {
			return err
		}
		ev.Title = deck.Title
		ev.Profile = &deck.Profile
		ev.Indices = deck.Indices

		// Boundary observables come from the rows around the two
		// discontinuity markers.
		ev.BoundariesKnown = true
		ev.MantleDensity = densityBelow(deck.Profile, deck.Indices.Crust)
		ev.MantleRadius = deck.Profile.Radius(deck.Indices.Crust)
		ev.CoreDensity = densityBelow(deck.Profile, deck.Indices.Core)
		ev.CoreRadius = deck.Profile.Radius(deck.Indices.Core)

	case model.FormatTable:
		profile, err := interior.ParseTable(ev.ModelPath)
		if err != nil {
			return err
		}
		ev.Profile = &profile
		ev.Indices = model.ShellIndices{Surface: profile.SurfaceIndex()}

	default:
		return fmt.Errorf("parse %s: unknown model format %q", ev.ModelPath, s.format)
	}

	ev.LayerCount = ev.Profile.Len()
	ev.SurfaceRadius = ev.Profile.SurfaceRadius()

	s.logger.Info("model parsed",
		"model", ev.ModelName,
		"title", ev.Title,
		"layers", ev.LayerCount,
		"surface_radius_m", ev.SurfaceRadius,
	)
	if ev.BoundariesKnown {
		s.logger.Info("structural boundaries",
			"model", ev.ModelName,
			"mantle_density", ev.MantleDensity,
			"mantle_radius_m", ev.MantleRadius,
			"core_density", ev.CoreDensity,
			"core_radius_m", ev.CoreRadius,
		)
	}

	return nil
}

// densityBelow returns the density of the row directly under idx. A boundary
// at row 0 has no material below it, so its density reports as zero.
func densityBelow(p model.RadialProfile, idx int) float64 {
	if idx == 0 {
		return 0
	}
	return p.Density(idx - 1)
}

// LocateStep finds the profile row at the base of the assumed lithosphere.
type LocateStep struct {
	// thickness is the assumed lithosphere thickness in metres.
	thickness float64

	// logger for structured logging.
	logger *slog.Logger
}

// LocateStepOption configures a LocateStep.
type LocateStepOption func(*LocateStep)

// WithLocateLogger sets a custom logger for the locate step.
func WithLocateLogger(logger *slog.Logger) LocateStepOption {
	return func(s *LocateStep) {
		s.logger = logger
	}
}

// NewLocateStep creates a lithosphere locating step for the given thickness
// in metres.
func NewLocateStep(thickness float64, opts ...LocateStepOption) *LocateStep {
	s := &LocateStep{
		thickness: thickness,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LocateStep) Name() string {
	return "locate"
}

// Do executes the locate step.
func (s *LocateStep) Do(_ context.Context, ev *model.Evaluation) error {
	if ev.Profile == nil {
		return fmt.Errorf("locate lithosphere in %s: no parsed profile", ev.ModelPath)
	}

	ev.AssumedLithosphereDepth = s.thickness

	idx, err := interior.LocateLithosphere(*ev.Profile, s.thickness)
	if err != nil {
		return fmt.Errorf("%s: %w", ev.ModelPath, err)
	}

	ev.LithosphereIndex = idx
	ev.ActualLithosphereDepth = ev.Profile.DepthOf(idx)

	s.logger.Info("lithosphere located",
		"model", ev.ModelName,
		"index", idx,
		"assumed_depth_m", ev.AssumedLithosphereDepth,
		"actual_depth_m", ev.ActualLithosphereDepth,
	)

	return nil
}

// SolveStep runs the hydrostatic shape solver for the evaluation and derives
// the degree-2 hydrostatic percentage from its output.
//
// Design decision: The step holds the gravity and topography models rather
// than re-reading them per evaluation because a batch shares one observed
// field across hundreds of interior models. Both models are read-only here,
// so sharing them across evaluation goroutines is safe.
type SolveStep struct {
	// solver computes the hydrostatic shape beneath the lithosphere.
	solver hydro.ShapeSolver

	// potential is the observed gravitational potential expansion.
	potential *gravity.PotentialModel

	// topography is the observed shape expansion.
	topography *gravity.TopographyModel

	// crustDensity is the assumed crust density in kg/m^3.
	crustDensity float64

	// sigmaDepth is the depth in metres below the topography reference
	// radius of the surface the solver expands loads around.
	sigmaDepth float64

	// rotationRate is the body's angular rotation rate in rad/s.
	rotationRate float64

	// maxDegree is the maximum spherical harmonic degree of the solution.
	maxDegree int

	// gravityHeaderUnits is the unit convention of the potential file
	// header, passed through to the solver.
	gravityHeaderUnits string

	// logger for structured logging.
	logger *slog.Logger
}

// SolveStepOption configures a SolveStep.
type SolveStepOption func(*SolveStep)

// WithCrustDensity sets the assumed crust density in kg/m^3.
func WithCrustDensity(density float64) SolveStepOption {
	return func(s *SolveStep) {
		s.crustDensity = density
	}
}

// WithSigmaDepth sets the reference surface depth in metres.
func WithSigmaDepth(depth float64) SolveStepOption {
	return func(s *SolveStep) {
		s.sigmaDepth = depth
	}
}

// WithRotationRate sets the body's angular rotation rate in rad/s.
func WithRotationRate(omega float64) SolveStepOption {
	return func(s *SolveStep) {
		s.rotationRate = omega
	}
}

// WithMaxDegree sets the maximum spherical harmonic degree.
func WithMaxDegree(lmax int) SolveStepOption {
	return func(s *SolveStep) {
		s.maxDegree = lmax
	}
}

// WithGravityHeaderUnits sets the unit convention of the potential file
// header, "km" or "m".
func WithGravityHeaderUnits(units string) SolveStepOption {
	return func(s *SolveStep) {
		s.gravityHeaderUnits = units
	}
}

// WithSolveLogger sets a custom logger for the solve step.
func WithSolveLogger(logger *slog.Logger) SolveStepOption {
	return func(s *SolveStep) {
		s.logger = logger
	}
}

// NewSolveStep creates a hydrostatic solve step.
// The rotation rate has no meaningful default and must be set with
// WithRotationRate; request validation rejects a zero rate.
func NewSolveStep(solver hydro.ShapeSolver, potential *gravity.PotentialModel, topography *gravity.TopographyModel, opts ...SolveStepOption) *SolveStep {
	s := &SolveStep{
		solver:             solver,
		potential:          potential,
		topography:         topography,
		crustDensity:       config.DefaultCrustDensity,
		sigmaDepth:         config.DefaultSigmaDepth,
		maxDegree:          config.DefaultMaxDegree,
		gravityHeaderUnits: gravity.HeaderUnitsKm,
		logger:             slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *SolveStep) Name() string {
	return "solve"
}

// Do executes the solve step.
func (s *SolveStep) Do(ctx context.Context, ev *model.Evaluation) error {
	if s.solver == nil {
		return hydro.ErrSolverNotConfigured
	}
	if ev.Profile == nil {
		return fmt.Errorf("solve hydrostatic shape for %s: no parsed profile", ev.ModelPath)
	}

	// The load reference surface sits a fixed depth below the topography
	// reference radius, not below the model surface.
	req := &hydro.Request{
		Radii:              ev.Profile.Radii(),
		Densities:          ev.Profile.Densities(),
		LithosphereIndex:   ev.LithosphereIndex,
		CrustDensity:       s.crustDensity,
		SigmaRadius:        s.topography.ReferenceRadius - s.sigmaDepth,
		RotationRate:       s.rotationRate,
		MaxDegree:          s.maxDegree,
		GravityFile:        s.potential.Path,
		GravityHeaderUnits: s.gravityHeaderUnits,
		TopographyFile:     s.topography.Path,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	result, err := s.solver.HydrostaticShapeLith(ctx, req)
	if err != nil {
		return fmt.Errorf("solve hydrostatic shape for %s: %w", ev.ModelPath, err)
	}

	hydroC20, ok := result.HydroCoeffs.C(2, 0)
	if !ok {
		return fmt.Errorf("%w: hydrostatic C(2,0) absent from solver result", gravity.ErrCoefficientMissing)
	}
	observedC20, ok := s.potential.Coeffs.C(2, 0)
	if !ok {
		return fmt.Errorf("%w: C(2,0) absent from %s", gravity.ErrCoefficientMissing, s.potential.Path)
	}
	if observedC20 == 0 {
		return fmt.Errorf("observed C(2,0) in %s is zero", s.potential.Path)
	}

	ev.Percentage = hydroC20 / observedC20 * 100
	ev.Mass = result.Mass
	ev.Solved = true

	s.logger.Info("hydrostatic solution",
		"model", ev.ModelName,
		"percentage", ev.Percentage,
		"mass_kg", ev.Mass,
	)

	return nil
}
