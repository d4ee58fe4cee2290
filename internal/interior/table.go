package interior

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/De-Guo/pyCrust/internal/model"
)

// tableHeaderLines is the number of header lines before the data rows.
const tableHeaderLines = 4

// ParseTable reads and parses the tabulated model file at path.
func ParseTable(path string) (model.RadialProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.RadialProfile{}, fmt.Errorf("read tabulated model file: %w", err)
	}
	profile, err := ParseTableBytes(data)
	if err != nil {
		return model.RadialProfile{}, fmt.Errorf("%s: %w", path, err)
	}
	return profile, nil
}

// ParseTableBytes parses tabulated model content: four header lines that
// are not interpreted, then one row per line with radius (m) and density
// (kg/m^3), ordered centre-out. The density of the outermost row is
// discarded and replaced with zero since that row marks the free surface.
//
// Tabulated files carry no discontinuity markers, so no ShellIndices are
// produced for them.
func ParseTableBytes(data []byte) (model.RadialProfile, error) {
	lines := splitLines(data)
	rowCount := len(lines) - tableHeaderLines
	if rowCount < 2 {
		return model.RadialProfile{}, fmt.Errorf("%w: want %d header lines and at least 2 data rows, got %d lines",
			ErrMalformedTableFile, tableHeaderLines, len(lines))
	}

	layers := make([]model.Layer, rowCount)
	for i := range layers {
		lineNo := tableHeaderLines + i + 1
		fields := strings.Fields(lines[tableHeaderLines+i])
		if len(fields) < 2 {
			return model.RadialProfile{}, fmt.Errorf("%w: line %d needs at least 2 fields, got %d",
				ErrMalformedTableFile, lineNo, len(fields))
		}
		r, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return model.RadialProfile{}, fmt.Errorf("%w: line %d radius: %v", ErrMalformedTableFile, lineNo, err)
		}
		d, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return model.RadialProfile{}, fmt.Errorf("%w: line %d density: %v", ErrMalformedTableFile, lineNo, err)
		}
		layers[i] = model.Layer{Radius: r, Density: d}
	}
	layers[len(layers)-1].Density = 0

	profile, err := model.NewRadialProfile(layers)
	if err != nil {
		return model.RadialProfile{}, fmt.Errorf("%w: %v", ErrMalformedTableFile, err)
	}
	return profile, nil
}
