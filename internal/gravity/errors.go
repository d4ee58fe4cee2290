package gravity

import "errors"

// Coefficient file errors.
//
// Design decision: One sentinel per failure class, wrapped with
// fmt.Errorf("%w: ...") so messages carry the offending line or degree
// while callers branch with errors.Is().
var (
	// ErrMalformedCoefficientFile is returned when a spherical harmonic
	// file has an unreadable header, a row that does not parse, or an
	// order exceeding its degree.
	ErrMalformedCoefficientFile = errors.New("malformed spherical harmonic coefficient file")

	// ErrCoefficientMissing is returned when a computation needs a
	// coefficient the file did not provide, such as the degree-0 term of a
	// shape expansion or the degree-2 zonal term of a potential.
	ErrCoefficientMissing = errors.New("required spherical harmonic coefficient missing")

	// ErrInvalidHeaderUnits is returned for header unit strings other than
	// "km" or "m".
	ErrInvalidHeaderUnits = errors.New(`invalid header units: want "km" or "m"`)
)
