package gravity

import (
	"fmt"
	"os"
	"strings"
)

// TopographyModel is a shape expansion of a body's surface.
type TopographyModel struct {
	// Path is the file the model was read from.
	Path string
	// ReferenceRadius is the degree-0 term of the expansion, in metres.
	ReferenceRadius float64
	// Coeffs holds the shape coefficients in metres.
	Coeffs *Coeffs
}

// TopographyOption configures ReadTopography.
type TopographyOption func(*headerlessOptions)

// WithTopographyMaxDegree skips rows above lmax. Zero or negative keeps
// every row.
func WithTopographyMaxDegree(lmax int) TopographyOption {
	return func(o *headerlessOptions) {
		o.maxDegree = lmax
	}
}

// ReadTopography reads a shape model from path. Shape files carry no
// header: every line is a coefficient row of degree, order, cosine, sine,
// in metres. The degree-0 cosine term must be present; it is the reference
// radius of the expansion.
func ReadTopography(path string, opts ...TopographyOption) (*TopographyModel, error) {
	options := headerlessOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	coeffs, err := readHeaderlessFile(path, options.maxDegree)
	if err != nil {
		return nil, err
	}

	r0, ok := coeffs.C(0, 0)
	if !ok {
		return nil, fmt.Errorf("%s: %w: degree-0 shape term", path, ErrCoefficientMissing)
	}

	return &TopographyModel{
		Path:            path,
		ReferenceRadius: r0,
		Coeffs:          coeffs,
	}, nil
}

// headerlessOptions holds the configurable behavior of the headerless
// coefficient readers.
type headerlessOptions struct {
	maxDegree int
}

// readHeaderlessFile reads a headerless coefficient file: every non-blank,
// non-comment line is a data row.
func readHeaderlessFile(path string, maxDegree int) (*Coeffs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read coefficient file: %w", err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	coeffs, err := readCoeffRows(lines, 1, maxDegree)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return coeffs, nil
}
