package model

import "strings"

// formatUnknownStr is the string representation for unknown format values.
const formatUnknownStr = "unknown"

// ModelFormat identifies the on-disk layout of an interior model file.
type ModelFormat string

// Interior model format constants.
const (
	// FormatUnknown represents an unrecognized format.
	FormatUnknown ModelFormat = ""
	// FormatDeck represents the deck layout: a three-line header followed by
	// radius/density rows in which repeated radii mark discontinuities.
	FormatDeck ModelFormat = "deck"
	// FormatTable represents the plain tabulated layout: four header lines
	// followed by bare radius/density rows with no boundary markers.
	FormatTable ModelFormat = "table"
)

// String returns the string representation of the ModelFormat.
func (f ModelFormat) String() string {
	if f == FormatUnknown {
		return formatUnknownStr
	}
	return string(f)
}

// IsValid returns true if this is a known format.
func (f ModelFormat) IsValid() bool {
	switch f {
	case FormatDeck, FormatTable:
		return true
	default:
		return false
	}
}

// DefaultExtension returns the file extension conventionally used for model
// files of this format, including the leading dot.
func (f ModelFormat) DefaultExtension() string {
	switch f {
	case FormatDeck:
		return ".deck"
	case FormatTable:
		return ".dat"
	default:
		return ""
	}
}

// ParseModelFormat converts a string to ModelFormat. Common synonyms and
// bare extensions are accepted.
func ParseModelFormat(s string) ModelFormat {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "deck":
		return FormatDeck
	case "table", "tab", "dat":
		return FormatTable
	default:
		return FormatUnknown
	}
}
