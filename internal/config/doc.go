// Package config provides configuration structures and utilities for pycrust.
// It defines the run options for evaluating interior models, the documented
// defaults of the reference Mars workflow, and the optional .pycrust file
// that stores per-body observational inputs and named model sets.
package config
