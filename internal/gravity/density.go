package gravity

import "fmt"

// DensityModel is a crustal grain-density expansion.
type DensityModel struct {
	// Path is the file the model was read from.
	Path string
	// MeanGrainDensity is the degree-0 term of the expansion, the average
	// grain density of the crust in kg/m^3.
	MeanGrainDensity float64
	// Coeffs holds the density coefficients in kg/m^3.
	Coeffs *Coeffs
}

// DensityOption configures ReadDensity.
type DensityOption func(*headerlessOptions)

// WithDensityMaxDegree skips rows above lmax. Zero or negative keeps every
// row.
func WithDensityMaxDegree(lmax int) DensityOption {
	return func(o *headerlessOptions) {
		o.maxDegree = lmax
	}
}

// ReadDensity reads a crustal grain-density model from path. Density files
// use the headerless layout: every line is a coefficient row of degree,
// order, cosine, sine, in kg/m^3. The degree-0 cosine term must be present;
// it is the mean grain density.
func ReadDensity(path string, opts ...DensityOption) (*DensityModel, error) {
	options := headerlessOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	coeffs, err := readHeaderlessFile(path, options.maxDegree)
	if err != nil {
		return nil, err
	}

	rho, ok := coeffs.C(0, 0)
	if !ok {
		return nil, fmt.Errorf("%s: %w: degree-0 density term", path, ErrCoefficientMissing)
	}

	return &DensityModel{
		Path:             path,
		MeanGrainDensity: rho,
		Coeffs:           coeffs,
	}, nil
}

// EffectiveDensity returns the bulk crustal density after removing the
// given pore fraction: grain density times (1 - porosity).
func (d *DensityModel) EffectiveDensity(porosity float64) float64 {
	return d.MeanGrainDensity * (1 - porosity)
}
