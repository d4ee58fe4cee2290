package gravity

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Header unit conventions for potential files.
const (
	// HeaderUnitsKm marks headers in km and km^3/s^2, the convention of
	// PDS spherical harmonic .tab products.
	HeaderUnitsKm = "km"
	// HeaderUnitsM marks headers already in SI units.
	HeaderUnitsM = "m"
)

// PotentialModel is an observed gravitational potential expansion.
type PotentialModel struct {
	// Path is the file the model was read from.
	Path string
	// ReferenceRadius is the expansion reference radius in metres.
	ReferenceRadius float64
	// GM is the gravitational parameter in m^3/s^2.
	GM float64
	// Coeffs holds the potential coefficients.
	Coeffs *Coeffs
}

// Mass returns the body mass in kg implied by GM.
func (p *PotentialModel) Mass() float64 {
	return p.GM / GravConstant
}

// potentialOptions holds the configurable behavior of ReadPotential.
type potentialOptions struct {
	headerUnits string
	maxDegree   int
	noHeader    bool
	r0          float64
	gm          float64
}

// PotentialOption configures ReadPotential.
type PotentialOption func(*potentialOptions)

// WithHeaderUnits sets the units of the header line's reference radius and
// GM: HeaderUnitsKm (the default) or HeaderUnitsM.
func WithHeaderUnits(units string) PotentialOption {
	return func(o *potentialOptions) {
		o.headerUnits = units
	}
}

// WithMaxDegree skips coefficient rows above lmax. Zero or negative keeps
// every row.
func WithMaxDegree(lmax int) PotentialOption {
	return func(o *potentialOptions) {
		o.maxDegree = lmax
	}
}

// WithExplicitHeader reads a file that carries no header line: every row is
// a coefficient row, and the reference radius (m) and GM (m^3/s^2) are the
// given values. WithHeaderUnits has no effect in this mode.
func WithExplicitHeader(referenceRadius, gm float64) PotentialOption {
	return func(o *potentialOptions) {
		o.noHeader = true
		o.r0 = referenceRadius
		o.gm = gm
	}
}

// ReadPotential reads a gravitational potential model from path.
//
// The first non-blank line is the header; its first two fields are the
// reference radius and GM in the configured units. Remaining header fields,
// such as uncertainties and degree spans, are ignored. Every following line
// is a coefficient row: degree, order, cosine, sine. Files without a header
// line are read with WithExplicitHeader, which supplies both scalars.
func ReadPotential(path string, opts ...PotentialOption) (*PotentialModel, error) {
	options := potentialOptions{headerUnits: HeaderUnitsKm}
	for _, opt := range opts {
		opt(&options)
	}

	var scale radiusScale
	switch options.headerUnits {
	case HeaderUnitsKm:
		scale = radiusScale{radius: 1e3, gm: 1e9}
	case HeaderUnitsM:
		scale = radiusScale{radius: 1, gm: 1}
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidHeaderUnits, options.headerUnits)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read potential file: %w", err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	if options.noHeader {
		coeffs, err := readCoeffRows(lines, 1, options.maxDegree)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &PotentialModel{
			Path:            path,
			ReferenceRadius: options.r0,
			GM:              options.gm,
			Coeffs:          coeffs,
		}, nil
	}

	headerAt := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		headerAt = i
		break
	}
	if headerAt < 0 {
		return nil, fmt.Errorf("%s: %w: no header line", path, ErrMalformedCoefficientFile)
	}

	header := splitCoeffFields(lines[headerAt])
	if len(header) < 2 {
		return nil, fmt.Errorf("%s: %w: header needs at least 2 fields, got %d",
			path, ErrMalformedCoefficientFile, len(header))
	}
	r0, err := strconv.ParseFloat(header[0], 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: header reference radius: %v", path, ErrMalformedCoefficientFile, err)
	}
	gm, err := strconv.ParseFloat(header[1], 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: header GM: %v", path, ErrMalformedCoefficientFile, err)
	}

	coeffs, err := readCoeffRows(lines[headerAt+1:], headerAt+2, options.maxDegree)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &PotentialModel{
		Path:            path,
		ReferenceRadius: r0 * scale.radius,
		GM:              gm * scale.gm,
		Coeffs:          coeffs,
	}, nil
}

// radiusScale converts header values to SI.
type radiusScale struct {
	radius float64
	gm     float64
}
