package gravity

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// GravConstant is the CODATA 2018 Newtonian constant of gravitation in
// m^3/(kg s^2).
const GravConstant = 6.67430e-11

// coeffKey identifies one degree/order slot of an expansion.
type coeffKey struct {
	degree int
	order  int
}

// coeffPair holds the cosine and sine coefficients of one slot.
type coeffPair struct {
	c float64
	s float64
}

// Coeffs stores the real coefficients of a spherical harmonic expansion
// indexed by degree and order. The zero value is not usable; construct with
// NewCoeffs.
type Coeffs struct {
	lmax   int
	values map[coeffKey]coeffPair
}

// NewCoeffs returns an empty coefficient set.
func NewCoeffs() *Coeffs {
	return &Coeffs{values: make(map[coeffKey]coeffPair)}
}

// Set stores the cosine and sine coefficients for degree l and order m,
// replacing any previous values for that slot.
func (c *Coeffs) Set(l, m int, cosine, sine float64) error {
	if l < 0 {
		return fmt.Errorf("%w: negative degree %d", ErrMalformedCoefficientFile, l)
	}
	if m < 0 || m > l {
		return fmt.Errorf("%w: order %d out of range for degree %d", ErrMalformedCoefficientFile, m, l)
	}
	c.values[coeffKey{degree: l, order: m}] = coeffPair{c: cosine, s: sine}
	if l > c.lmax {
		c.lmax = l
	}
	return nil
}

// C returns the cosine coefficient for degree l and order m.
func (c *Coeffs) C(l, m int) (float64, bool) {
	p, ok := c.values[coeffKey{degree: l, order: m}]
	return p.c, ok
}

// S returns the sine coefficient for degree l and order m.
func (c *Coeffs) S(l, m int) (float64, bool) {
	p, ok := c.values[coeffKey{degree: l, order: m}]
	return p.s, ok
}

// Lmax returns the largest degree stored.
func (c *Coeffs) Lmax() int {
	return c.lmax
}

// Len returns the number of stored degree/order slots.
func (c *Coeffs) Len() int {
	return len(c.values)
}

// splitCoeffFields splits a coefficient file line on commas and whitespace.
// PDS .tab products use comma separators, plain SH files use whitespace, and
// some products mix both.
func splitCoeffFields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// parseCoeffRow parses one data row: degree, order, cosine, sine. Extra
// columns such as uncertainties are ignored.
func parseCoeffRow(line string, lineNo int) (l, m int, cosine, sine float64, err error) {
	fields := splitCoeffFields(line)
	if len(fields) < 4 {
		return 0, 0, 0, 0, fmt.Errorf("%w: line %d needs at least 4 fields, got %d",
			ErrMalformedCoefficientFile, lineNo, len(fields))
	}
	l, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%w: line %d degree: %v", ErrMalformedCoefficientFile, lineNo, err)
	}
	m, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%w: line %d order: %v", ErrMalformedCoefficientFile, lineNo, err)
	}
	cosine, err = strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%w: line %d cosine coefficient: %v", ErrMalformedCoefficientFile, lineNo, err)
	}
	sine, err = strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%w: line %d sine coefficient: %v", ErrMalformedCoefficientFile, lineNo, err)
	}
	return l, m, cosine, sine, nil
}

// readCoeffRows parses every data row in lines, starting the 1-based error
// line numbering at firstLineNo. Rows above maxDegree are skipped when
// maxDegree is positive. Blank lines and '#' comment lines are skipped.
func readCoeffRows(lines []string, firstLineNo, maxDegree int) (*Coeffs, error) {
	coeffs := NewCoeffs()
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		l, m, cosine, sine, err := parseCoeffRow(line, firstLineNo+i)
		if err != nil {
			return nil, err
		}
		if maxDegree > 0 && l > maxDegree {
			continue
		}
		if err := coeffs.Set(l, m, cosine, sine); err != nil {
			return nil, fmt.Errorf("line %d: %w", firstLineNo+i, err)
		}
	}
	return coeffs, nil
}
