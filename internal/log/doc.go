// Package log provides unit-aware logging functionality, built on top of
// the standard slog package.
//
// This package extends slog to provide:
//   - Display rewriting of metre-valued attributes into kilometres
//   - Scientific notation for coefficient- and GM-scale magnitudes
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Unit Rewriting
//
// Every component stores and passes lengths in SI metres. Logs are read by
// people, and planetary radii in metres are hard to scan, so the
// QuantityHandler rewrites at output time:
//   - Float attributes whose key ends in "_m" become "_km" values
//   - Floats below 1e-2 or at or above 1e7 in magnitude are rendered in
//     scientific notation
//
// Call sites never convert; they log the SI value under the metre key.
//
// # Usage
//
//	// Create a unit-aware logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("model parsed",
//	    "surface_radius_m", 3.3895e6, // Shown as surface_radius_km=3389.5
//	    "model", "mars_thin_crust",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
