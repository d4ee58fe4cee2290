package config

import (
	"path/filepath"
	"time"

	"github.com/De-Guo/pyCrust/internal/model"
	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the constants hard-coded in the reference Mars J2 analysis
// workflow, so a flagless run reproduces the reference behaviour.
const (
	// DefaultLithosphereThickness is the assumed lithosphere thickness in
	// metres. 150 km is the reference value for the Mars J2 models; sweeps
	// over other thicknesses override it per run.
	DefaultLithosphereThickness = 150e3

	// DefaultCrustDensity is the bulk crustal density in kg/m^3 used when
	// no density-coefficient file is configured. 2900 kg/m^3 is a
	// conventional basaltic crust value.
	DefaultCrustDensity = 2900.0

	// DefaultSigmaDepth is the depth in metres below the topography
	// reference radius at which the hydrostatic shape is evaluated.
	// The shape reference radius passed to the solver is the topography
	// (0,0) radius minus this depth.
	DefaultSigmaDepth = 45e3

	// DefaultMaxDegree is the spherical-harmonic truncation degree passed
	// to the shape solver. The J2 analysis only consumes degree 2, so a
	// higher default would cost solver time without changing any output.
	DefaultMaxDegree = 2

	// DefaultConcurrency of 1 evaluates models sequentially, which keeps
	// log output in model order and matches the reference workflow.
	// Interior models are independent, so higher values are safe when
	// throughput matters for large batches.
	DefaultConcurrency = 1

	// DefaultSolverTimeout bounds a single external solver invocation.
	// A degree-2 hydrostatic solution finishes in well under a second;
	// five minutes of runtime means the solver process hung.
	DefaultSolverTimeout = 5 * time.Minute

	// DefaultGravityHeaderUnits is the unit convention for the gravity
	// file's header line. Published potential models (GMM-3, GRGM900C)
	// state the reference radius and GM in km and km^3/s^2.
	DefaultGravityHeaderUnits = "km"

	// AppName is the application name used for XDG directory paths.
	AppName = "pycrust"
)

// Config holds all configuration options for a pycrust run.
// This struct is designed to be populated from CLI flags and the optional
// .pycrust file and passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., SolverConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// If the configuration grows significantly, consider refactoring into sub-structs.
type Config struct {
	// Models is the list of interior model files to evaluate.
	// Populated from positional arguments or from a named model set.
	Models []string

	// ModelDir is a directory to scan for model files. Files matching the
	// format's extension are evaluated in lexicographic name order.
	// Mutually additive with Models: scanned files are appended.
	ModelDir string

	// ModelSet names a model set defined in the .pycrust file. The set's
	// paths are appended to Models before validation.
	ModelSet string

	// Format selects the on-disk model layout (deck or table).
	// Deck files carry core/crust boundary markers; tabulated files do not.
	Format model.ModelFormat

	// Body selects the planetary body preset, which supplies the rotation
	// rate when RotationRate is zero.
	Body model.Body

	// RotationRate is an explicit angular rotation rate in rad/s.
	// When non-zero it overrides the body preset, which allows evaluating
	// models for bodies without a built-in preset.
	RotationRate float64

	// LithosphereThickness is the assumed lithosphere thickness in metres.
	// The locator finds the profile shell whose depth best matches it.
	LithosphereThickness float64

	// CrustDensity is the bulk crustal density in kg/m^3 passed to the
	// shape solver. Ignored when DensityFile is set.
	CrustDensity float64

	// DensityFile is an optional spherical-harmonic density-coefficient
	// file. When set, the mean crustal grain density is read from its
	// (0,0) coefficient instead of using CrustDensity.
	DensityFile string

	// Porosity is the crustal porosity applied to the grain density from
	// DensityFile: effective density = grain density * (1 - porosity).
	// Only meaningful together with DensityFile.
	Porosity float64

	// SigmaDepth is the depth in metres below the topography reference
	// radius at which the hydrostatic shape is evaluated.
	SigmaDepth float64

	// MaxDegree is the spherical-harmonic truncation degree for the solver.
	MaxDegree int

	// Concurrency is the number of models evaluated in parallel.
	// 1 reproduces the sequential reference behaviour.
	Concurrency int

	// SkipFailures switches the batch from fail-fast to skip-and-log:
	// a malformed model is recorded in the batch result instead of
	// aborting the run.
	SkipFailures bool

	// GravityFile is the spherical-harmonic potential coefficient file.
	// The evaluator consumes its C(2,0) coefficient and GM.
	GravityFile string

	// GravityHeaderUnits is the unit convention of the gravity file's
	// header line: "km" or "m".
	GravityHeaderUnits string

	// TopographyFile is the spherical-harmonic shape coefficient file.
	// The evaluator consumes its (0,0) coefficient as the reference radius.
	TopographyFile string

	// SolverCommand is the external hydrostatic shape solver executable.
	// The solver receives a JSON request on stdin and answers with a JSON
	// result on stdout.
	SolverCommand string

	// SolverArgs are fixed arguments passed to the solver command before
	// the request.
	SolverArgs []string

	// SolverTimeout bounds a single solver invocation.
	SolverTimeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of human-readable format.
	// When true, outputs the full batch result with all evaluations.
	// When false, outputs the human-readable simple report (default).
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable format.
	// When true, outputs GitHub Flavored Markdown with per-model tables.
	// When false, outputs the human-readable simple report (default).
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// DBDir is the directory path for storing the SQLite run-history
	// database. When set, run results are saved for later comparison.
	// When empty, results are not persisted.
	// Defaults to the XDG data directory (~/.local/share/pycrust on Linux).
	DBDir string

	// SaveToDB indicates whether to save run results to the database.
	// This is automatically set to true when DBDir is configured.
	SaveToDB bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .pycrust in the current directory,
	// the user's home directory, and the XDG config directory.
	ConfigFilePath string

	// BodyConfigs holds body presets and model sets loaded from the
	// config file. Populated by LoadConfigFile.
	BodyConfigs *File
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that reproduce the reference
// Mars workflow. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., thickness, degree).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Format:               model.FormatDeck,
		Body:                 model.BodyMars,
		LithosphereThickness: DefaultLithosphereThickness,
		CrustDensity:         DefaultCrustDensity,
		SigmaDepth:           DefaultSigmaDepth,
		MaxDegree:            DefaultMaxDegree,
		Concurrency:          DefaultConcurrency,
		GravityHeaderUnits:   DefaultGravityHeaderUnits,
		SolverTimeout:        DefaultSolverTimeout,
	}
}

// EffectiveRotationRate returns the rotation rate a run should use:
// the explicit override when set, otherwise the body preset.
func (c *Config) EffectiveRotationRate() float64 {
	if c.RotationRate != 0 {
		return c.RotationRate
	}
	return c.Body.RotationRate()
}

// XDGDataDir returns the XDG data directory for pycrust.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/pycrust
// On macOS: ~/Library/Application Support/pycrust
// On Windows: %LOCALAPPDATA%\pycrust
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pycrust.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/pycrust
// On macOS: ~/Library/Application Support/pycrust
// On Windows: %APPDATA%\pycrust
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any evaluation begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one model source
	if len(c.Models) == 0 && c.ModelDir == "" && c.ModelSet == "" {
		return ErrNoModels
	}

	// The format decides the parser; an unknown format cannot be evaluated
	if !c.Format.IsValid() {
		return ErrUnknownFormat
	}

	// Without a body preset an explicit rotation rate is required
	if !c.Body.IsValid() && c.RotationRate == 0 {
		return ErrUnknownBody
	}

	// A non-positive thickness cannot bracket any shell
	if c.LithosphereThickness <= 0 {
		return ErrInvalidThickness
	}

	// The constant crust density must be physical unless a density file
	// supplies it
	if c.DensityFile == "" && c.CrustDensity <= 0 {
		return ErrInvalidCrustDensity
	}

	// Concurrency must be positive; zero would mean no evaluation
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
