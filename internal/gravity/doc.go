// Package gravity reads the spherical harmonic data products a run needs:
// the observed gravitational potential, the shape (topography) expansion,
// and optionally a crustal grain-density expansion.
//
// All three products share one row layout, degree and order followed by the
// cosine and sine coefficients, with columns separated by commas and/or
// whitespace. They differ only in their header:
//   - Potential files open with a header line carrying the reference radius
//     and GM, conventionally in km and km^3/s^2 (PDS spherical harmonic
//     .tab products), scaled to SI on read.
//   - Shape and density files have no header; their degree-0 coefficient is
//     the reference radius and the mean grain density respectively.
//
// Design decision: Readers return typed models (PotentialModel,
// TopographyModel, DensityModel) rather than bare coefficient maps so the
// derived scalars each consumer needs (reference radius, GM, mass, mean
// density) are computed in exactly one place.
package gravity
