package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoModels is returned when no interior model source is specified.
	// This error occurs when neither positional arguments, --dir, nor
	// --set provides any model file.
	ErrNoModels = errors.New("no models specified: provide model files, --dir, or --set")

	// ErrUnknownFormat is returned when the model format is not one of the
	// supported layouts (deck or table).
	ErrUnknownFormat = errors.New(`unknown model format: want "deck" or "table"`)

	// ErrUnknownBody is returned when the body has no built-in rotation
	// rate and no explicit --omega override is given.
	ErrUnknownBody = errors.New("unknown body: use mars or moon, or set an explicit rotation rate")

	// ErrInvalidThickness is returned when the lithosphere thickness is
	// not positive. A non-positive thickness cannot bracket any shell.
	ErrInvalidThickness = errors.New("invalid lithosphere thickness: must be positive")

	// ErrInvalidCrustDensity is returned when the constant crust density is
	// not positive and no density-coefficient file is configured.
	ErrInvalidCrustDensity = errors.New("invalid crust density: must be positive")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	// A concurrency of zero would mean no models get evaluated.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
