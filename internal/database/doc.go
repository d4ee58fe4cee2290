// Package database provides SQLite-based storage for evaluation runs.
//
// This package implements the RunDB, which stores:
//   - Run records with the parameters a batch evaluation ran under
//   - Per-model evaluation rows with their derived observables
//   - SHA3-256 digests of the input model files for change detection
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
//
// Run history is what makes comparisons possible: two stored runs can be
// diffed per model without re-running the hydrostatic solver.
package database
