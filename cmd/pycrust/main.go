// Package main provides the entry point for the pycrust CLI.
//
// pycrust evaluates planetary interior models against observed gravity and
// topography: it parses radial density profiles, locates the base of an
// assumed lithosphere, and derives the hydrostatic fraction of the degree-2
// zonal potential from an external shape solver.
//
// Usage:
//
//	pycrust evaluate --gravity <file> --topography <file> <model-files>
//	pycrust inspect <model-files>
//
// See --help for all available options.
package main

// main is the entry point for pycrust.
func main() {
	Execute()
}
