package model

import "strings"

// bodyUnknownStr is the string representation for unknown body values.
const bodyUnknownStr = "unknown"

// Rotation rates in rad/s for the bodies with built-in presets.
const (
	// marsRotationRate is from the IAU orientation model of Konopliv et al.
	// (2016), 350.891985307 deg/day.
	marsRotationRate = 7.08821812e-5
	// moonRotationRate corresponds to the 27.321661 day sidereal period.
	moonRotationRate = 2.6617073e-6
)

// Body identifies the planetary body an interior model describes. The body
// selects the rotation rate used by the hydrostatic shape solver; everything
// else about a run is carried by explicit parameters.
type Body string

// Planetary body constants.
const (
	// BodyUnknown represents an unspecified body.
	BodyUnknown Body = ""
	// BodyMars represents Mars.
	BodyMars Body = "mars"
	// BodyMoon represents the Moon.
	BodyMoon Body = "moon"
)

// String returns the string representation of the Body.
func (b Body) String() string {
	if b == BodyUnknown {
		return bodyUnknownStr
	}
	return string(b)
}

// IsValid returns true if this is a known body.
func (b Body) IsValid() bool {
	switch b {
	case BodyMars, BodyMoon:
		return true
	default:
		return false
	}
}

// RotationRate returns the body's angular rotation rate in rad/s, or zero
// for an unknown body.
func (b Body) RotationRate() float64 {
	switch b {
	case BodyMars:
		return marsRotationRate
	case BodyMoon:
		return moonRotationRate
	default:
		return 0
	}
}

// ParseBody converts a string to Body. Matching is case-insensitive.
func ParseBody(s string) Body {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mars":
		return BodyMars
	case "moon", "luna":
		return BodyMoon
	default:
		return BodyUnknown
	}
}
