// Package hydro is the boundary to the hydrostatic shape solver.
//
// Computing the hydrostatic shape of a body with a lithospheric lid is a
// numerical routine this program treats as opaque: the pipeline hands over
// a radial profile, a lithosphere index and the run parameters, and gets
// back the shape expansion, the hydrostatic potential expansion and the
// model mass.
//
// The ShapeSolver interface captures that contract. ExecSolver is the
// production implementation; it runs an external solver binary, writing one
// JSON request to its stdin and reading one JSON result from its stdout.
//
// Design decision: A subprocess with a JSON pipe rather than an in-process
// port keeps the solver swappable (reference implementations exist outside
// this codebase) and keeps its numerical dependencies out of this module.
// Tests substitute the interface directly and never spawn the binary.
package hydro
