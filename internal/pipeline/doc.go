// Package pipeline provides a framework for executing evaluation steps in
// sequence.
//
// The pipeline pattern is used to push an interior model through multiple
// stages: parsing the model file, locating the base of the lithosphere, and
// solving for the hydrostatic shape beneath it. Each stage is implemented
// as a Step that receives the current evaluation and fills in its part.
// Commands assemble only the steps they need: evaluate runs all three,
// inspect stops after parse and locate.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running solver runs
//
// The pipeline supports both individual evaluations and batch processing
// with concurrency control using errgroup.
package pipeline
