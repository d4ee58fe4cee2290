package model

import (
	"errors"
	"fmt"
)

// RadialProfile errors.
var (
	// ErrProfileTooShort is returned when a profile has fewer than two rows.
	ErrProfileTooShort = errors.New("radial profile needs at least two rows")
	// ErrRadiusNotIncreasing is returned when radii are not strictly increasing.
	ErrRadiusNotIncreasing = errors.New("radial profile radii must be strictly increasing")
	// ErrNegativeRadius is returned when the innermost radius is negative.
	ErrNegativeRadius = errors.New("radial profile radius cannot be negative")
	// ErrSurfaceDensityNotZero is returned when the last row carries a density.
	ErrSurfaceDensityNotZero = errors.New("radial profile surface density must be zero")
)

// Layer is one row of a radial interior model: the radius of a shell
// boundary and the density of the material directly below it.
type Layer struct {
	// Radius is the distance from the body centre in metres.
	Radius float64 `json:"radius_m"`
	// Density is the mass density in kg/m^3.
	Density float64 `json:"density_kg_m3"`
}

// RadialProfile is an immutable value object representing a one-dimensional
// interior model. Rows are ordered from the centre outward with strictly
// increasing radii, and the outermost row always has zero density by
// construction (it marks the free surface, not a material shell).
type RadialProfile struct {
	layers []Layer
}

// NewRadialProfile creates a RadialProfile from layers ordered centre-out.
// It validates the structural invariants and returns an error for profiles
// that would make downstream interpolation or boundary lookup meaningless.
func NewRadialProfile(layers []Layer) (RadialProfile, error) {
	if len(layers) < 2 {
		return RadialProfile{}, ErrProfileTooShort
	}
	if layers[0].Radius < 0 {
		return RadialProfile{}, fmt.Errorf("%w: got %g", ErrNegativeRadius, layers[0].Radius)
	}
	for i := 1; i < len(layers); i++ {
		if layers[i].Radius <= layers[i-1].Radius {
			return RadialProfile{}, fmt.Errorf("%w: row %d (%g m) does not exceed row %d (%g m)",
				ErrRadiusNotIncreasing, i, layers[i].Radius, i-1, layers[i-1].Radius)
		}
	}
	if last := layers[len(layers)-1]; last.Density != 0 {
		return RadialProfile{}, fmt.Errorf("%w: got %g kg/m^3", ErrSurfaceDensityNotZero, last.Density)
	}

	// Copy so later mutation of the caller's slice cannot reach the profile.
	own := make([]Layer, len(layers))
	copy(own, layers)
	return RadialProfile{layers: own}, nil
}

// MustNewRadialProfile creates a RadialProfile or panics if invalid.
// Use only for known-valid profiles in tests or initialization.
func MustNewRadialProfile(layers []Layer) RadialProfile {
	p, err := NewRadialProfile(layers)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of rows in the profile.
func (p RadialProfile) Len() int {
	return len(p.layers)
}

// Layer returns the row at index i. It panics if i is out of range, matching
// slice semantics.
func (p RadialProfile) Layer(i int) Layer {
	return p.layers[i]
}

// Radius returns the radius in metres of the row at index i.
func (p RadialProfile) Radius(i int) float64 {
	return p.layers[i].Radius
}

// Density returns the density in kg/m^3 of the row at index i.
func (p RadialProfile) Density(i int) float64 {
	return p.layers[i].Density
}

// SurfaceIndex returns the index of the outermost row.
func (p RadialProfile) SurfaceIndex() int {
	return len(p.layers) - 1
}

// SurfaceRadius returns the radius in metres of the outermost row.
func (p RadialProfile) SurfaceRadius() float64 {
	return p.layers[len(p.layers)-1].Radius
}

// DepthOf returns the depth below the surface, in metres, of the row at
// index i.
func (p RadialProfile) DepthOf(i int) float64 {
	return p.SurfaceRadius() - p.layers[i].Radius
}

// Radii returns a copy of all row radii in metres, ordered centre-out.
func (p RadialProfile) Radii() []float64 {
	out := make([]float64, len(p.layers))
	for i, l := range p.layers {
		out[i] = l.Radius
	}
	return out
}

// Densities returns a copy of all row densities in kg/m^3, ordered centre-out.
func (p RadialProfile) Densities() []float64 {
	out := make([]float64, len(p.layers))
	for i, l := range p.layers {
		out[i] = l.Density
	}
	return out
}

// Layers returns a copy of all rows, ordered centre-out.
func (p RadialProfile) Layers() []Layer {
	out := make([]Layer, len(p.layers))
	copy(out, p.layers)
	return out
}

// IsZero returns true if this is a zero value (empty) RadialProfile.
func (p RadialProfile) IsZero() bool {
	return len(p.layers) == 0
}

// ShellIndices locates the structural boundaries of a deck-format profile.
// All three fields index rows of the RadialProfile the indices were parsed
// with. Tabulated profiles carry no core or crust markers, so only Surface
// is meaningful for them.
type ShellIndices struct {
	// Core is the row index of the core-mantle discontinuity.
	Core int `json:"core"`
	// Crust is the row index of the crust-mantle discontinuity.
	Crust int `json:"crust"`
	// Surface is the row index of the zero-density surface row.
	Surface int `json:"surface"`
}
