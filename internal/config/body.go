package config

// BodyConfig holds body-specific configuration for a single planetary body.
// This allows keeping the observational inputs for each body (gravity and
// topography coefficient files, rotation rate, crustal density model) in one
// file instead of repeating them as flags on every run.
type BodyConfig struct {
	// Gravity is the spherical-harmonic potential coefficient file for
	// this body (e.g. GMM-3 for Mars, GRGM900C for the Moon).
	Gravity string `yaml:"gravity,omitempty"`

	// Topography is the spherical-harmonic shape coefficient file for
	// this body (e.g. a MOLA or LOLA expansion).
	Topography string `yaml:"topography,omitempty"`

	// Omega is the angular rotation rate in rad/s. When zero, the body's
	// built-in preset is used.
	Omega float64 `yaml:"omega,omitempty"`

	// Density is an optional spherical-harmonic density-coefficient file.
	// When set, the crustal grain density is read from its (0,0)
	// coefficient instead of using a constant.
	Density string `yaml:"density,omitempty"`

	// Porosity is the crustal porosity applied to the grain density.
	Porosity float64 `yaml:"porosity,omitempty"`

	// HeaderUnits is the gravity file's header unit convention: "km" or "m".
	HeaderUnits string `yaml:"headerUnits,omitempty"`

	// Solver is the external hydrostatic shape solver command.
	Solver string `yaml:"solver,omitempty"`

	// SolverArgs are fixed arguments passed to the solver command.
	SolverArgs []string `yaml:"solverArgs,omitempty"`
}

// File represents the structure of the .pycrust configuration file.
type File struct {
	// Bodies maps body names to their body-specific configurations.
	// Keys are lowercase body names (e.g., "mars", "moon").
	Bodies map[string]BodyConfig `yaml:"bodies,omitempty"`

	// ModelSets maps set names to lists of interior model file paths.
	// Relative paths are resolved against the config file's directory.
	ModelSets map[string][]string `yaml:"modelSets,omitempty"`

	// Defaults contains default body configuration applied to all bodies
	// unless overridden in the body-specific configuration.
	Defaults BodyConfig `yaml:"defaults,omitempty"`
}

// GetBodyConfig returns the configuration for a specific body.
// It merges the body-specific configuration with defaults.
func (cf *File) GetBodyConfig(body string) BodyConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with body-specific configuration if present
	if bodyConfig, ok := cf.Bodies[body]; ok {
		if bodyConfig.Gravity != "" {
			result.Gravity = bodyConfig.Gravity
		}
		if bodyConfig.Topography != "" {
			result.Topography = bodyConfig.Topography
		}
		if bodyConfig.Omega != 0 {
			result.Omega = bodyConfig.Omega
		}
		if bodyConfig.Density != "" {
			result.Density = bodyConfig.Density
		}
		if bodyConfig.Porosity != 0 {
			result.Porosity = bodyConfig.Porosity
		}
		if bodyConfig.HeaderUnits != "" {
			result.HeaderUnits = bodyConfig.HeaderUnits
		}
		if bodyConfig.Solver != "" {
			result.Solver = bodyConfig.Solver
		}
		if len(bodyConfig.SolverArgs) > 0 {
			result.SolverArgs = bodyConfig.SolverArgs
		}
	}

	return result
}

// ApplyBodyConfig fills Config fields that are still unset from a body
// configuration. Flags take precedence: a field already holding a non-zero
// value is left alone, so the file only supplies what the command line did
// not.
func (c *Config) ApplyBodyConfig(bc BodyConfig) {
	if c.GravityFile == "" {
		c.GravityFile = bc.Gravity
	}
	if c.TopographyFile == "" {
		c.TopographyFile = bc.Topography
	}
	if c.RotationRate == 0 {
		c.RotationRate = bc.Omega
	}
	if c.DensityFile == "" {
		c.DensityFile = bc.Density
	}
	if c.Porosity == 0 {
		c.Porosity = bc.Porosity
	}
	if bc.HeaderUnits != "" && c.GravityHeaderUnits == DefaultGravityHeaderUnits {
		c.GravityHeaderUnits = bc.HeaderUnits
	}
	if c.SolverCommand == "" {
		c.SolverCommand = bc.Solver
	}
	if len(c.SolverArgs) == 0 {
		c.SolverArgs = bc.SolverArgs
	}
}
