package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/De-Guo/pyCrust/internal/config"
	"github.com/De-Guo/pyCrust/internal/database"
	"github.com/De-Guo/pyCrust/internal/gravity"
	"github.com/De-Guo/pyCrust/internal/hydro"
	"github.com/De-Guo/pyCrust/internal/log"
	"github.com/De-Guo/pyCrust/internal/model"
	"github.com/De-Guo/pyCrust/internal/pipeline"
	"github.com/De-Guo/pyCrust/internal/report"
	"github.com/spf13/cobra"
)

// NewEvaluateCmd creates the evaluate command.
func NewEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate [model-files...]",
		Short: "Evaluate interior models against observed gravity",
		Long: `Evaluate runs the full analysis over a batch of interior model files.

For each model it parses the radial density profile, locates the profile row
at the base of the assumed lithosphere, invokes the hydrostatic shape solver
beneath that row, and reports the hydrostatic fraction of the observed
degree-2 zonal potential coefficient.

Examples:
  # Evaluate explicit model files
  pycrust evaluate --gravity gmm3_120_sha.tab --topography molaShape.sh \
    --solver hydroflat models/mars01.deck models/mars02.deck

  # Evaluate every .deck file in a directory
  pycrust evaluate --dir models --gravity gmm3_120_sha.tab \
    --topography molaShape.sh --solver hydroflat

  # Evaluate a named set from the configuration file
  pycrust evaluate --set mars-reference

  # Sweep a different lithosphere thickness
  pycrust evaluate --thickness 200 --set mars-reference

  # Moon run with crust density from a coefficient file
  pycrust evaluate --body moon --density-file density_310.sh --porosity 0.12 \
    --set moon-reference

Configuration file (.pycrust) example:
  bodies:
    mars:
      gravity: data/gmm3_120_sha.tab
      topography: data/molaShape_719.sh
      solver: hydroflat
  modelSets:
    mars-reference:
      - models/mars01.deck
      - models/mars02.deck`,
		Args: cobra.ArbitraryArgs,
		RunE: runEvaluateCmd,
	}

	// Model selection flags
	cmd.Flags().StringP("dir", "d", "",
		"Directory to scan for model files (matched by format extension)")
	cmd.Flags().StringP("set", "s", "",
		"Named model set from the configuration file")
	cmd.Flags().StringP("format", "f", model.FormatDeck.String(),
		"Model file format: deck or table")

	// Body and rotation flags
	cmd.Flags().StringP("body", "b", model.BodyMars.String(),
		"Planetary body: mars or moon")
	cmd.Flags().Float64("omega", 0,
		"Rotation rate in rad/s (overrides the body preset)")

	// Lithosphere and crust flags
	cmd.Flags().Float64P("thickness", "t", config.DefaultLithosphereThickness/1e3,
		"Assumed lithosphere thickness in km")
	cmd.Flags().Float64("crust-density", config.DefaultCrustDensity,
		"Bulk crust density in kg/m3")
	cmd.Flags().String("density-file", "",
		"Density coefficient file; its degree-0 term replaces --crust-density")
	cmd.Flags().Float64("porosity", 0,
		"Crustal porosity applied to the density file's grain density")
	cmd.Flags().Float64("sigma-depth", config.DefaultSigmaDepth/1e3,
		"Depth of the load reference surface below the topography radius in km")
	cmd.Flags().IntP("max-degree", "l", config.DefaultMaxDegree,
		"Maximum spherical-harmonic degree of the hydrostatic solution")

	// Observed field flags
	cmd.Flags().StringP("gravity", "g", "",
		"Gravitational potential coefficient file")
	cmd.Flags().StringP("topography", "T", "",
		"Shape coefficient file")
	cmd.Flags().String("header-units", config.DefaultGravityHeaderUnits,
		"Units of the gravity file header: km or m")

	// Solver flags
	cmd.Flags().String("solver", "",
		"External hydrostatic shape solver command")
	cmd.Flags().StringSlice("solver-args", nil,
		"Fixed arguments passed to the solver command")
	cmd.Flags().Duration("solver-timeout", config.DefaultSolverTimeout,
		"Timeout for one solver invocation")

	// Batch flags
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of models evaluated in parallel")
	cmd.Flags().Bool("skip-failures", false,
		"Record failed models and continue instead of aborting the batch")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pycrust in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runEvaluateCmd executes the evaluate command.
func runEvaluateCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with quantity rewriting
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runEvaluate(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.ModelDir, err = cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}

	cfg.ModelSet, err = cmd.Flags().GetString("set")
	if err != nil {
		return nil, err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}
	cfg.Format = model.ParseModelFormat(format)

	body, err := cmd.Flags().GetString("body")
	if err != nil {
		return nil, err
	}
	cfg.Body = model.ParseBody(body)

	cfg.RotationRate, err = cmd.Flags().GetFloat64("omega")
	if err != nil {
		return nil, err
	}

	// Length flags are taken in kilometres and stored in SI metres
	thicknessKm, err := cmd.Flags().GetFloat64("thickness")
	if err != nil {
		return nil, err
	}
	cfg.LithosphereThickness = thicknessKm * 1e3

	cfg.CrustDensity, err = cmd.Flags().GetFloat64("crust-density")
	if err != nil {
		return nil, err
	}

	cfg.DensityFile, err = cmd.Flags().GetString("density-file")
	if err != nil {
		return nil, err
	}

	cfg.Porosity, err = cmd.Flags().GetFloat64("porosity")
	if err != nil {
		return nil, err
	}

	sigmaKm, err := cmd.Flags().GetFloat64("sigma-depth")
	if err != nil {
		return nil, err
	}
	cfg.SigmaDepth = sigmaKm * 1e3

	cfg.MaxDegree, err = cmd.Flags().GetInt("max-degree")
	if err != nil {
		return nil, err
	}

	cfg.GravityFile, err = cmd.Flags().GetString("gravity")
	if err != nil {
		return nil, err
	}

	cfg.TopographyFile, err = cmd.Flags().GetString("topography")
	if err != nil {
		return nil, err
	}

	cfg.GravityHeaderUnits, err = cmd.Flags().GetString("header-units")
	if err != nil {
		return nil, err
	}

	cfg.SolverCommand, err = cmd.Flags().GetString("solver")
	if err != nil {
		return nil, err
	}

	cfg.SolverArgs, err = cmd.Flags().GetStringSlice("solver-args")
	if err != nil {
		return nil, err
	}

	cfg.SolverTimeout, err = cmd.Flags().GetDuration("solver-timeout")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.SkipFailures, err = cmd.Flags().GetBool("skip-failures")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load body presets and model sets from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.BodyConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.BodyConfigs = &config.File{
			Bodies:    make(map[string]config.BodyConfig),
			ModelSets: make(map[string][]string),
		}
	}

	// The file only supplies what the command line did not
	cfg.ApplyBodyConfig(cfg.BodyConfigs.GetBodyConfig(cfg.Body.String()))

	// Positional arguments are model files; a named set appends after them
	cfg.Models = append(cfg.Models, args...)
	if cfg.ModelSet != "" {
		if configPath == "" {
			return nil, fmt.Errorf("model set %q requires a configuration file", cfg.ModelSet)
		}
		paths, err := cfg.BodyConfigs.ResolveModelSet(cfg.ModelSet, configPath)
		if err != nil {
			return nil, err
		}
		cfg.Models = append(cfg.Models, paths...)
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Always save runs to the XDG data directory for later comparison
	cfg.SaveToDB = true
	cfg.DBDir = config.XDGDataDir()

	return cfg, nil
}

// runEvaluate executes the batch evaluation.
func runEvaluate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	models, err := resolveModelFiles(cfg)
	if err != nil {
		return err
	}

	logger.Info("starting evaluation",
		"models", len(models),
		"body", cfg.Body,
		"format", cfg.Format,
		"concurrency", cfg.Concurrency,
	)

	// Open database connection if saving is enabled
	var db *database.RunDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// The observed fields are shared by every model in the batch
	if cfg.GravityFile == "" {
		return errors.New("no gravity file configured (use --gravity or the configuration file)")
	}
	potential, err := gravity.ReadPotential(cfg.GravityFile,
		gravity.WithHeaderUnits(cfg.GravityHeaderUnits),
	)
	if err != nil {
		return err
	}

	if cfg.TopographyFile == "" {
		return errors.New("no topography file configured (use --topography or the configuration file)")
	}
	topo, err := gravity.ReadTopography(cfg.TopographyFile)
	if err != nil {
		return err
	}

	crustDensity, err := resolveCrustDensity(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.SolverCommand == "" {
		return errors.New("no solver configured (use --solver or the configuration file)")
	}
	solver := hydro.NewExecSolver(cfg.SolverCommand,
		hydro.WithSolverArgs(cfg.SolverArgs...),
		hydro.WithSolverTimeout(cfg.SolverTimeout),
		hydro.WithSolverLogger(logger),
	)

	omega := cfg.EffectiveRotationRate()

	evaluator := pipeline.NewBatchEvaluator(
		func() *pipeline.Pipeline {
			return createPipeline(cfg, logger, solver, potential, topo, crustDensity, omega)
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithSkipFailures(cfg.SkipFailures),
		pipeline.WithBatchLogger(logger),
	)

	result := &model.BatchResult{
		Body:             cfg.Body,
		StartedAt:        time.Now(),
		LithosphereDepth: cfg.LithosphereThickness,
		CrustDensity:     crustDensity,
		SigmaDepth:       cfg.SigmaDepth,
		MaxDegree:        cfg.MaxDegree,
		RotationRate:     omega,
		GravityFile:      cfg.GravityFile,
		TopographyFile:   cfg.TopographyFile,
	}

	fmt.Printf("Evaluating %d models...\n", len(models))
	startTime := time.Now()

	evals, err := evaluator.EvaluateBatch(ctx, models)
	result.Evaluations = evals
	result.FinishedAt = time.Now()
	result.Finalize()
	if err != nil {
		return fmt.Errorf("batch evaluation: %w", err)
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Evaluation completed in %s\n", elapsed.Round(time.Millisecond))

	// Generate and output report
	if err := outputReport(cfg, result); err != nil {
		return err
	}

	// Save to database if enabled
	if err := saveRunResult(ctx, db, result, logger); err != nil {
		logger.Error("failed to save run", "error", err)
	}

	return nil
}

// resolveModelFiles returns the full evaluation list: explicit models first,
// then the directory scan in file-name order.
func resolveModelFiles(cfg *config.Config) ([]string, error) {
	models := cfg.Models
	if cfg.ModelDir != "" {
		scanned, err := pipeline.ListModelFiles(cfg.ModelDir, cfg.Format.DefaultExtension())
		if err != nil {
			return nil, err
		}
		models = append(models, scanned...)
	}

	if len(models) == 0 {
		return nil, errors.New("no model files found (give model paths, --dir, or --set)")
	}
	return models, nil
}

// resolveCrustDensity returns the crust density for the run: the density
// file's porosity-corrected grain density when one is configured, the
// constant otherwise.
func resolveCrustDensity(cfg *config.Config, logger *slog.Logger) (float64, error) {
	if cfg.DensityFile == "" {
		return cfg.CrustDensity, nil
	}

	dm, err := gravity.ReadDensity(cfg.DensityFile)
	if err != nil {
		return 0, err
	}

	density := dm.EffectiveDensity(cfg.Porosity)
	logger.Info("crust density from coefficient file",
		"file", cfg.DensityFile,
		"grain_density", dm.MeanGrainDensity,
		"porosity", cfg.Porosity,
		"effective_density", density,
	)
	return density, nil
}

// createPipeline assembles the parse, locate and solve steps for one model.
func createPipeline(cfg *config.Config, logger *slog.Logger, solver hydro.ShapeSolver, potential *gravity.PotentialModel, topo *gravity.TopographyModel, crustDensity, omega float64) *pipeline.Pipeline {
	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewParseStep(cfg.Format, pipeline.WithParseLogger(logger)),
		pipeline.NewLocateStep(cfg.LithosphereThickness, pipeline.WithLocateLogger(logger)),
		pipeline.NewSolveStep(solver, potential, topo,
			pipeline.WithCrustDensity(crustDensity),
			pipeline.WithSigmaDepth(cfg.SigmaDepth),
			pipeline.WithRotationRate(omega),
			pipeline.WithMaxDegree(cfg.MaxDegree),
			pipeline.WithGravityHeaderUnits(cfg.GravityHeaderUnits),
			pipeline.WithSolveLogger(logger),
		),
	)
	return p
}

// openReportFile creates the report file at path, making parent directories
// as needed. The file is created with owner-only permissions (0600); reports
// carry local model file paths.
func openReportFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// outputReport outputs the batch report in the requested format.
func outputReport(cfg *config.Config, result *model.BatchResult) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		f, err := openReportFile(cfg.ReportFile)
		if err != nil {
			return err
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full batch result wrapped with tool version)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(result)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(result)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(result)
	return err
}

// saveRunResult saves the batch result to the run-history database.
// If db is nil, this function is a no-op.
func saveRunResult(ctx context.Context, db *database.RunDB, result *model.BatchResult, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveRun(ctx, result)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("run saved to database", "run_id", id)
	fmt.Printf("Run stored as %s\n", id)
	return nil
}
