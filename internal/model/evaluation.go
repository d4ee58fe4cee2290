package model

import (
	"path/filepath"
	"strings"
	"time"
)

// Evaluation is the result of evaluating a single interior model file.
// It accumulates state as the evaluation pipeline advances: the parse stage
// fills the profile and boundary observables, the locate stage fills the
// lithosphere fields, and the solve stage fills the hydrostatic outputs.
//
// Design decision: We use a single flat struct rather than one type per
// stage to simplify serialization and database storage, mirroring how the
// report and database layers consume it.
type Evaluation struct {
	// === Model Identity ===

	// ModelPath is the path of the evaluated model file as given.
	ModelPath string `json:"model_path"`

	// ModelName is the base name of the model file without its extension.
	ModelName string `json:"model_name"`

	// Format is the detected or requested layout of the model file.
	Format ModelFormat `json:"format"`

	// Title is the free-text first header line of a deck file.
	Title string `json:"title,omitempty"`

	// EvaluatedAt is the timestamp when the evaluation started.
	EvaluatedAt time.Time `json:"evaluated_at"`

	// === Parsed Structure ===
	// The profile itself is carried between pipeline stages but excluded
	// from serialized output; reports and storage keep only the derived
	// observables below.

	// Profile is the parsed interior model. Nil until the parse stage ran.
	Profile *RadialProfile `json:"-"`

	// Indices are the structural boundary rows of the profile. Only
	// meaningful when BoundariesKnown is true.
	Indices ShellIndices `json:"-"`

	// LayerCount is the number of rows in the parsed profile.
	LayerCount int `json:"layer_count"`

	// SurfaceRadius is the outermost profile radius in metres.
	SurfaceRadius float64 `json:"surface_radius_m"`

	// === Boundary Observables ===
	// Derived from the core and crust discontinuity markers of deck files.
	// Tabulated files carry no markers, so BoundariesKnown stays false and
	// the four values stay zero.

	// BoundariesKnown is true when core and crust markers were parsed.
	BoundariesKnown bool `json:"boundaries_known"`

	// MantleDensity is the density directly below the crust-mantle
	// discontinuity in kg/m^3.
	MantleDensity float64 `json:"mantle_density_kg_m3"`

	// MantleRadius is the radius of the crust-mantle discontinuity in metres.
	MantleRadius float64 `json:"mantle_radius_m"`

	// CoreDensity is the density directly below the core-mantle
	// discontinuity in kg/m^3.
	CoreDensity float64 `json:"core_density_kg_m3"`

	// CoreRadius is the radius of the core-mantle discontinuity in metres.
	CoreRadius float64 `json:"core_radius_m"`

	// === Lithosphere ===

	// AssumedLithosphereDepth is the requested lithosphere thickness in
	// metres, measured down from the surface.
	AssumedLithosphereDepth float64 `json:"assumed_lithosphere_depth_m"`

	// LithosphereIndex is the profile row closest to the requested depth.
	LithosphereIndex int `json:"lithosphere_index"`

	// ActualLithosphereDepth is the depth in metres of the row the locator
	// chose. It differs from the assumed depth by up to half a shell.
	ActualLithosphereDepth float64 `json:"actual_lithosphere_depth_m"`

	// === Hydrostatic Solution ===

	// Solved reports that the shape solver ran and the fields below carry
	// its output. Inspect runs stop before the solver and leave it false.
	Solved bool `json:"solved"`

	// Percentage is the hydrostatic fraction of the observed degree-2 zonal
	// potential coefficient, in percent: C20(hydro)/C20(observed) * 100.
	Percentage float64 `json:"percentage"`

	// Mass is the total model mass in kg reported by the shape solver.
	Mass float64 `json:"mass_kg"`

	// === Failure ===

	// Error holds the failure message when the run skipped this model
	// instead of aborting the batch. Empty for successful evaluations.
	Error string `json:"error,omitempty"`
}

// NewEvaluation creates an Evaluation for the model file at path.
// The model name is the file base name without its extension.
func NewEvaluation(path string) *Evaluation {
	base := filepath.Base(path)
	return &Evaluation{
		ModelPath:   path,
		ModelName:   strings.TrimSuffix(base, filepath.Ext(base)),
		EvaluatedAt: time.Now(),
	}
}

// Failed returns true if the evaluation recorded a failure.
func (e *Evaluation) Failed() bool {
	return e.Error != ""
}

// BatchResult aggregates the evaluations of one run over a set of model
// files, together with the parameters the run was performed with.
type BatchResult struct {
	// === Run Identity ===

	// RunID uniquely identifies the run. Assigned when the run is stored.
	RunID string `json:"run_id,omitempty"`

	// Body is the planetary body the models describe.
	Body Body `json:"body"`

	// StartedAt is the timestamp when the batch run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is the timestamp when the last evaluation completed.
	FinishedAt time.Time `json:"finished_at"`

	// === Run Parameters ===

	// LithosphereDepth is the assumed lithosphere thickness in metres.
	LithosphereDepth float64 `json:"lithosphere_depth_m"`

	// CrustDensity is the assumed crust density in kg/m^3.
	CrustDensity float64 `json:"crust_density_kg_m3"`

	// SigmaDepth is the depth in metres of the reference surface the shape
	// solver expands around.
	SigmaDepth float64 `json:"sigma_depth_m"`

	// MaxDegree is the maximum spherical harmonic degree of the solution.
	MaxDegree int `json:"max_degree"`

	// RotationRate is the angular rotation rate used, in rad/s.
	RotationRate float64 `json:"rotation_rate_rad_s"`

	// GravityFile is the path of the gravitational potential model used.
	GravityFile string `json:"gravity_file,omitempty"`

	// TopographyFile is the path of the shape model used.
	TopographyFile string `json:"topography_file,omitempty"`

	// === Results ===

	// Evaluations holds one entry per model file, in input order.
	Evaluations []*Evaluation `json:"evaluations"`

	// Succeeded is the number of evaluations that completed.
	Succeeded int `json:"succeeded"`

	// Failed is the number of evaluations that recorded a failure.
	Failed int `json:"failed"`

	// MinPercentage is the smallest hydrostatic percentage across the
	// successful evaluations. Zero when Succeeded is zero.
	MinPercentage float64 `json:"min_percentage"`

	// MaxPercentage is the largest hydrostatic percentage across the
	// successful evaluations. Zero when Succeeded is zero.
	MaxPercentage float64 `json:"max_percentage"`
}

// Finalize computes the success and failure counts and the percentage
// extrema from the accumulated evaluations. It walks Evaluations in input
// order so the outcome does not depend on evaluation scheduling.
func (r *BatchResult) Finalize() {
	r.Succeeded = 0
	r.Failed = 0
	r.MinPercentage = 0
	r.MaxPercentage = 0

	for _, ev := range r.Evaluations {
		if ev == nil {
			continue
		}
		if ev.Failed() {
			r.Failed++
			continue
		}
		if r.Succeeded == 0 || ev.Percentage < r.MinPercentage {
			r.MinPercentage = ev.Percentage
		}
		if r.Succeeded == 0 || ev.Percentage > r.MaxPercentage {
			r.MaxPercentage = ev.Percentage
		}
		r.Succeeded++
	}
}

// Successful returns the evaluations that completed, in input order.
func (r *BatchResult) Successful() []*Evaluation {
	out := make([]*Evaluation, 0, len(r.Evaluations))
	for _, ev := range r.Evaluations {
		if ev != nil && !ev.Failed() {
			out = append(out, ev)
		}
	}
	return out
}
