package interior

import (
	"fmt"

	"github.com/De-Guo/pyCrust/internal/model"
)

// LocateLithosphere returns the index of the profile row whose radius best
// matches the base of a lithosphere of the given thickness in metres.
//
// The target radius is the surface radius minus the thickness. The locator
// scans adjacent row pairs for the one bracketing the target, with the
// lower row inclusive, and picks the closer row of the pair. An exact hit
// or an equidistant target resolves to the lower row.
//
// A thickness that lands outside the profile, at or above the surface or
// below the innermost row, fails with ErrLithosphereDepthOutOfRange. This
// covers zero and negative thicknesses as well as thicknesses exceeding the
// body radius.
func LocateLithosphere(p model.RadialProfile, thickness float64) (int, error) {
	if p.IsZero() {
		return 0, fmt.Errorf("%w: empty profile", ErrLithosphereDepthOutOfRange)
	}

	target := p.SurfaceRadius() - thickness
	for i := 0; i+1 < p.Len(); i++ {
		lower, upper := p.Radius(i), p.Radius(i+1)
		if lower > target || upper <= target {
			continue
		}
		if target-lower <= upper-target {
			return i, nil
		}
		return i + 1, nil
	}
	return 0, fmt.Errorf("%w: thickness %g m not bracketed by any row pair (surface radius %g m)",
		ErrLithosphereDepthOutOfRange, thickness, p.SurfaceRadius())
}
