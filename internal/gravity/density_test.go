package gravity

import (
	"errors"
	"testing"
)

// moonDensityLikeSH mimics a headerless crustal grain-density expansion in
// kg/m^3.
const moonDensityLikeSH = `0 0 2.9168000000000000E+03 0.0000000000000000E+00
1 0 -1.2000000000000000E+01 0.0000000000000000E+00
2 0  8.5000000000000000E+00 0.0000000000000000E+00
`

func TestReadDensity(t *testing.T) {
	t.Parallel()

	t.Run("mean grain density is the degree-0 term", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "density.sh", moonDensityLikeSH)
		density, err := ReadDensity(path)
		if err != nil {
			t.Fatalf("ReadDensity() error = %v", err)
		}
		if density.MeanGrainDensity != 2916.8 {
			t.Errorf("MeanGrainDensity = %g, want 2916.8", density.MeanGrainDensity)
		}
	})

	t.Run("max degree caps stored rows", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "density.sh", moonDensityLikeSH)
		density, err := ReadDensity(path, WithDensityMaxDegree(1))
		if err != nil {
			t.Fatalf("ReadDensity() error = %v", err)
		}
		if got := density.Coeffs.Lmax(); got != 1 {
			t.Errorf("Lmax() = %d, want 1", got)
		}
	})

	t.Run("missing degree-0 term", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "no00.sh", "1 0 -12.0 0.0\n")
		_, err := ReadDensity(path)
		if !errors.Is(err, ErrCoefficientMissing) {
			t.Errorf("ReadDensity() error = %v, want ErrCoefficientMissing", err)
		}
	})
}

func TestDensityModelEffectiveDensity(t *testing.T) {
	t.Parallel()

	d := &DensityModel{MeanGrainDensity: 3000}

	tests := []struct {
		name     string
		porosity float64
		want     float64
	}{
		{name: "lunar porosity", porosity: 0.12, want: 2640},
		{name: "no porosity", porosity: 0, want: 3000},
		{name: "half porosity", porosity: 0.5, want: 1500},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := d.EffectiveDensity(tt.porosity); got != tt.want {
				t.Errorf("EffectiveDensity(%g) = %g, want %g", tt.porosity, got, tt.want)
			}
		})
	}
}
