package gravity

import (
	"errors"
	"math"
	"testing"
)

// almostEqual compares two floats to a relative tolerance. Header scaling
// multiplies parsed values by powers of ten, so exact equality would make
// the tests depend on rounding of the decimal literals.
func almostEqual(a, b, rel float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	return diff <= rel*scale
}

func TestCoeffsSetAndLookup(t *testing.T) {
	t.Parallel()

	c := NewCoeffs()
	if err := c.Set(2, 0, -8.7450449e-4, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Set(2, 2, -8.4582303e-5, 4.8905936e-5); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	t.Run("stored slots", func(t *testing.T) {
		t.Parallel()
		got, ok := c.C(2, 0)
		if !ok || got != -8.7450449e-4 {
			t.Errorf("C(2,0) = (%g, %v), want (-8.7450449e-4, true)", got, ok)
		}
		got, ok = c.S(2, 2)
		if !ok || got != 4.8905936e-5 {
			t.Errorf("S(2,2) = (%g, %v), want (4.8905936e-5, true)", got, ok)
		}
	})

	t.Run("absent slot", func(t *testing.T) {
		t.Parallel()
		if _, ok := c.C(3, 0); ok {
			t.Error("C(3,0) should be absent")
		}
	})

	t.Run("lmax and len", func(t *testing.T) {
		t.Parallel()
		if got := c.Lmax(); got != 2 {
			t.Errorf("Lmax() = %d, want 2", got)
		}
		if got := c.Len(); got != 2 {
			t.Errorf("Len() = %d, want 2", got)
		}
	})
}

func TestCoeffsSetValidation(t *testing.T) {
	t.Parallel()

	c := NewCoeffs()
	if err := c.Set(-1, 0, 0, 0); !errors.Is(err, ErrMalformedCoefficientFile) {
		t.Errorf("Set(-1, 0) error = %v, want ErrMalformedCoefficientFile", err)
	}
	if err := c.Set(2, 3, 0, 0); !errors.Is(err, ErrMalformedCoefficientFile) {
		t.Errorf("Set(2, 3) error = %v, want ErrMalformedCoefficientFile", err)
	}
	if err := c.Set(2, -1, 0, 0); !errors.Is(err, ErrMalformedCoefficientFile) {
		t.Errorf("Set(2, -1) error = %v, want ErrMalformedCoefficientFile", err)
	}
}

func TestSplitCoeffFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want int
	}{
		{name: "comma separated", line: "2,0,-8.7e-4,0.0", want: 4},
		{name: "comma and space separated", line: " 2,  0, -8.7e-4, 0.0", want: 4},
		{name: "whitespace separated", line: "2 0 -8.7e-4 0.0", want: 4},
		{name: "tab separated", line: "2\t0\t-8.7e-4\t0.0", want: 4},
		{name: "empty", line: "", want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := splitCoeffFields(tt.line); len(got) != tt.want {
				t.Errorf("splitCoeffFields(%q) has %d fields, want %d", tt.line, len(got), tt.want)
			}
		})
	}
}
