package interior

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/De-Guo/pyCrust/internal/model"
)

// deckHeaderLines is the number of header lines before the entries.
const deckHeaderLines = 3

// deckEntry is one raw entry line of the deck body, before consecutive
// pairs are collapsed into profile rows.
type deckEntry struct {
	radius  float64
	density float64
}

// Deck is the parsed content of a deck-format interior model file.
type Deck struct {
	// Title is the free-text first line of the file.
	Title string
	// Profile is the collapsed radius/density model.
	Profile model.RadialProfile
	// Indices locate the core and crust discontinuities and the surface
	// row within Profile.
	Indices model.ShellIndices
}

// ParseDeck reads and parses the deck-format model file at path.
func ParseDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	deck, err := ParseDeckBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return deck, nil
}

// ParseDeckBytes parses deck-format model content.
//
// The layout is:
//
//	line 1:  free-text title
//	line 2:  the third field must be 1 (polynomial layout)
//	line 3:  entry count, unused, core entry number, crust entry number
//	line 4+: one entry per line, radius (m) then density (kg/m^3),
//	         ordered centre-out
//
// Entry numbers on line 3 are 1-based positions in the entry list. Walking
// consecutive entry pairs: a pair with equal radii is a discontinuity and
// emits no row, but records the core or crust boundary index when the pair
// position matches a declared entry number; a pair with unequal radii emits
// one row at the lower radius carrying the mean of the two densities. A
// final row at the topmost radius with zero density closes the profile.
// A repeated-radius pair matching neither declared entry is dropped
// silently.
func ParseDeckBytes(data []byte) (*Deck, error) {
	lines := splitLines(data)
	if len(lines) < deckHeaderLines {
		return nil, fmt.Errorf("%w: want %d header lines, got %d lines",
			ErrMalformedDeckFile, deckHeaderLines, len(lines))
	}

	title := strings.TrimSpace(lines[0])

	format := strings.Fields(lines[1])
	if len(format) < 3 {
		return nil, fmt.Errorf("%w: line 2 needs at least 3 fields, got %d",
			ErrMalformedDeckFile, len(format))
	}
	flag, err := strconv.ParseFloat(format[2], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: line 2 layout flag: %v", ErrMalformedDeckFile, err)
	}
	if flag != 1 {
		return nil, fmt.Errorf("%w: layout flag is %g", ErrUnsupportedModelFormat, flag)
	}

	layout := strings.Fields(lines[2])
	if len(layout) < 4 {
		return nil, fmt.Errorf("%w: line 3 needs at least 4 fields, got %d",
			ErrMalformedDeckFile, len(layout))
	}
	entryCount, err := strconv.Atoi(layout[0])
	if err != nil {
		return nil, fmt.Errorf("%w: line 3 entry count: %v", ErrMalformedDeckFile, err)
	}
	coreEntry, err := strconv.Atoi(layout[2])
	if err != nil {
		return nil, fmt.Errorf("%w: line 3 core entry: %v", ErrMalformedDeckFile, err)
	}
	crustEntry, err := strconv.Atoi(layout[3])
	if err != nil {
		return nil, fmt.Errorf("%w: line 3 crust entry: %v", ErrMalformedDeckFile, err)
	}
	if entryCount < 2 {
		return nil, fmt.Errorf("%w: %d entries declared, need at least 2",
			ErrMalformedDeckFile, entryCount)
	}
	if got := len(lines) - deckHeaderLines; got < entryCount {
		return nil, fmt.Errorf("%w: %d entries declared but only %d entry lines present",
			ErrMalformedDeckFile, entryCount, got)
	}

	entries := make([]deckEntry, entryCount)
	for i := range entries {
		lineNo := deckHeaderLines + i + 1
		fields := strings.Fields(lines[deckHeaderLines+i])
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d needs at least 2 fields, got %d",
				ErrMalformedDeckFile, lineNo, len(fields))
		}
		r, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d radius: %v", ErrMalformedDeckFile, lineNo, err)
		}
		d, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d density: %v", ErrMalformedDeckFile, lineNo, err)
		}
		entries[i] = deckEntry{radius: r, density: d}
	}

	layers := make([]model.Layer, 0, entryCount)
	coreIdx, crustIdx := -1, -1
	for i := 0; i < entryCount-1; i++ {
		bottom, top := entries[i], entries[i+1]
		if bottom.radius == top.radius {
			// Discontinuity: the next emitted row is the boundary.
			if i == coreEntry-1 {
				coreIdx = len(layers)
			}
			if i == crustEntry-1 {
				crustIdx = len(layers)
			}
			continue
		}
		layers = append(layers, model.Layer{
			Radius:  bottom.radius,
			Density: (bottom.density + top.density) / 2,
		})
	}
	layers = append(layers, model.Layer{Radius: entries[entryCount-1].radius})

	switch {
	case coreIdx < 0:
		return nil, fmt.Errorf("%w: core entry %d does not coincide with a repeated-radius pair",
			ErrMalformedDeckFile, coreEntry)
	case crustIdx < 0:
		return nil, fmt.Errorf("%w: crust entry %d does not coincide with a repeated-radius pair",
			ErrMalformedDeckFile, crustEntry)
	}

	profile, err := model.NewRadialProfile(layers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDeckFile, err)
	}

	return &Deck{
		Title:   title,
		Profile: profile,
		Indices: model.ShellIndices{
			Core:    coreIdx,
			Crust:   crustIdx,
			Surface: profile.SurfaceIndex(),
		},
	}, nil
}

// splitLines splits file content into lines, tolerating CRLF endings and
// dropping trailing blank lines.
func splitLines(data []byte) []string {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
