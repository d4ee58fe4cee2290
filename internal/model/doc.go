// Package model defines the core data structures used throughout pycrust.
//
// This package contains the following main types:
//   - RadialProfile: An immutable one-dimensional interior model (radius and
//     density per shell boundary, ordered from the centre outward)
//   - ShellIndices: Positions of the core and crust discontinuities and the
//     zero-density surface row within a profile
//   - Evaluation: The result of evaluating a single interior model file
//   - BatchResult: Aggregated results from a batch evaluation run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (interior, pipeline, report, database) need
// to use these types, so centralizing them prevents import cycles.
//
// All quantities are SI: radii and depths in metres, densities in kg/m^3,
// rotation rates in rad/s. Conversion to display units (km) happens only in
// the report and logging layers.
package model
