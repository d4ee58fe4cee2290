package interior

import "errors"

// Parser and locator errors.
// These errors are returned by the deck and table parsers and by the
// lithosphere locator.
//
// Design decision: We use package-level sentinel errors wrapped with
// fmt.Errorf("%w: ...") so callers can branch with errors.Is() while the
// message still carries the file line or value that triggered the failure.
var (
	// ErrUnsupportedModelFormat is returned when a deck header selects a
	// layout other than the polynomial one. The second header line's third
	// field must be 1; other values describe discrete-knot decks that this
	// parser does not read.
	ErrUnsupportedModelFormat = errors.New("unsupported model format: only polynomial deck files are readable")

	// ErrMalformedDeckFile is returned when a deck file violates the
	// expected structure: missing header lines, unparseable numbers, fewer
	// entries than declared, or boundary markers that never coincide with a
	// repeated-radius pair.
	ErrMalformedDeckFile = errors.New("malformed deck file")

	// ErrMalformedTableFile is returned when a tabulated model file has
	// fewer than the four header lines plus two data rows, or rows that do
	// not parse as radius/density pairs.
	ErrMalformedTableFile = errors.New("malformed tabulated model file")

	// ErrLithosphereDepthOutOfRange is returned when no pair of adjacent
	// profile rows brackets the requested lithosphere depth. This happens
	// when the requested depth is negative, zero, or deeper than the
	// innermost row.
	ErrLithosphereDepthOutOfRange = errors.New("lithosphere depth out of range for this profile")
)
