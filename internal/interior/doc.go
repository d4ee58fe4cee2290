// Package interior parses one-dimensional planetary interior models and
// locates the lithosphere within them.
//
// Two on-disk layouts are supported:
//   - Deck files: a three-line header followed by radius/density entries in
//     which a repeated radius marks a density discontinuity. The header
//     declares which discontinuities are the core-mantle and crust-mantle
//     boundaries. Parsing collapses each discontinuity pair into boundary
//     indices and averages the densities of ordinary entry pairs.
//   - Tabulated files: four header lines followed by bare radius/density
//     rows with no boundary markers.
//
// Both parsers produce a model.RadialProfile whose outermost row has zero
// density, so the locator and the hydrostatic solver can treat the last row
// as the free surface regardless of the input layout.
//
// Design decision: Parsers fail fast with sentinel errors instead of
// returning partially-filled profiles. A truncated or inconsistent model
// file would otherwise surface as a numerical anomaly deep inside the shape
// solver, far from the actual cause.
package interior
