package hydro

import (
	"context"
	"fmt"
)

// Request carries everything the hydrostatic shape solver needs for one
// model: the discretized interior, the lithosphere lid, and the run
// parameters. Radii are in metres, densities in kg/m^3, the rotation rate
// in rad/s.
type Request struct {
	// Radii are the profile row radii, ordered centre-out.
	Radii []float64 `json:"radii_m"`

	// Densities are the profile row densities; the last entry is zero.
	Densities []float64 `json:"densities_kg_m3"`

	// LithosphereIndex is the profile row at the base of the lithosphere.
	LithosphereIndex int `json:"lithosphere_index"`

	// CrustDensity is the assumed crust density.
	CrustDensity float64 `json:"crust_density_kg_m3"`

	// SigmaRadius is the radius of the internal reference surface the
	// solver expands loads around.
	SigmaRadius float64 `json:"sigma_radius_m"`

	// RotationRate is the body's angular rotation rate.
	RotationRate float64 `json:"rotation_rate_rad_s"`

	// MaxDegree is the maximum spherical harmonic degree of the solution.
	MaxDegree int `json:"max_degree"`

	// GravityFile is the path of the observed potential model, re-read by
	// the solver with GravityHeaderUnits.
	GravityFile string `json:"gravity_file"`

	// GravityHeaderUnits is "km" or "m".
	GravityHeaderUnits string `json:"gravity_header_units"`

	// TopographyFile is the path of the shape model.
	TopographyFile string `json:"topography_file"`
}

// Validate reports the first structural problem with the request.
func (r *Request) Validate() error {
	if len(r.Radii) < 2 {
		return fmt.Errorf("%w: need at least 2 profile rows, got %d", ErrInvalidSolverRequest, len(r.Radii))
	}
	if len(r.Radii) != len(r.Densities) {
		return fmt.Errorf("%w: %d radii but %d densities", ErrInvalidSolverRequest, len(r.Radii), len(r.Densities))
	}
	if r.LithosphereIndex < 0 || r.LithosphereIndex >= len(r.Radii) {
		return fmt.Errorf("%w: lithosphere index %d out of range", ErrInvalidSolverRequest, r.LithosphereIndex)
	}
	if r.CrustDensity <= 0 {
		return fmt.Errorf("%w: crust density %g", ErrInvalidSolverRequest, r.CrustDensity)
	}
	if r.SigmaRadius <= 0 {
		return fmt.Errorf("%w: sigma radius %g", ErrInvalidSolverRequest, r.SigmaRadius)
	}
	if r.RotationRate <= 0 {
		return fmt.Errorf("%w: rotation rate %g", ErrInvalidSolverRequest, r.RotationRate)
	}
	if r.MaxDegree < 1 {
		return fmt.Errorf("%w: max degree %d", ErrInvalidSolverRequest, r.MaxDegree)
	}
	if r.GravityFile == "" {
		return fmt.Errorf("%w: gravity file not set", ErrInvalidSolverRequest)
	}
	if r.TopographyFile == "" {
		return fmt.Errorf("%w: topography file not set", ErrInvalidSolverRequest)
	}
	return nil
}

// Coeff is one spherical harmonic coefficient slot of a solver result.
type Coeff struct {
	Degree int     `json:"degree"`
	Order  int     `json:"order"`
	C      float64 `json:"c"`
	S      float64 `json:"s"`
}

// CoeffList is the flat coefficient list format of solver results.
type CoeffList []Coeff

// C returns the cosine coefficient for degree l and order m.
func (cl CoeffList) C(l, m int) (float64, bool) {
	for _, c := range cl {
		if c.Degree == l && c.Order == m {
			return c.C, true
		}
	}
	return 0, false
}

// S returns the sine coefficient for degree l and order m.
func (cl CoeffList) S(l, m int) (float64, bool) {
	for _, c := range cl {
		if c.Degree == l && c.Order == m {
			return c.S, true
		}
	}
	return 0, false
}

// Result is the solver's answer for one model.
type Result struct {
	// ShapeCoeffs is the hydrostatic shape expansion in metres.
	ShapeCoeffs CoeffList `json:"shape_coefficients"`

	// HydroCoeffs is the hydrostatic potential expansion, normalized the
	// same way as the observed potential it is compared against.
	HydroCoeffs CoeffList `json:"hydro_coefficients"`

	// Mass is the total model mass in kg.
	Mass float64 `json:"mass_kg"`
}

// ShapeSolver computes the hydrostatic shape of a body whose lithosphere
// does not deform. Implementations must be safe for concurrent use; batch
// evaluation calls this from multiple goroutines.
type ShapeSolver interface {
	// HydrostaticShapeLith solves for the hydrostatic shape beneath the
	// lithospheric lid described by the request.
	HydrostaticShapeLith(ctx context.Context, req *Request) (*Result, error)
}
