package database

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/De-Guo/pyCrust/internal/model"
)

// RunDB provides SQLite-based storage for evaluation runs.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file holding every run rather
// than one file per run. Comparing runs is the whole point of keeping
// history, and cross-run queries need the rows in one place.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB at the specified path.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, "pycrust.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		// Check if database file exists
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite doesn't benefit from multiple connections for writes,
	// but multiple readers can improve performance
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- Runs store the parameters and aggregates of one batch evaluation
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		lithosphere_depth_m REAL NOT NULL,
		crust_density_kg_m3 REAL NOT NULL,
		sigma_depth_m REAL NOT NULL,
		max_degree INTEGER NOT NULL,
		rotation_rate_rad_s REAL NOT NULL,
		gravity_file TEXT,
		topography_file TEXT,
		succeeded INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		min_percentage REAL,
		max_percentage REAL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_body ON runs(body);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Evaluations store per-model results within a run
	CREATE TABLE IF NOT EXISTS evaluations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		model_path TEXT NOT NULL,
		model_name TEXT NOT NULL,
		model_digest TEXT,
		format TEXT,
		title TEXT,
		layer_count INTEGER,
		surface_radius_m REAL,
		boundaries_known INTEGER DEFAULT 0,
		mantle_density_kg_m3 REAL,
		mantle_radius_m REAL,
		core_density_kg_m3 REAL,
		core_radius_m REAL,
		assumed_lithosphere_depth_m REAL,
		lithosphere_index INTEGER,
		actual_lithosphere_depth_m REAL,
		percentage REAL,
		mass_kg REAL,
		error TEXT,
		UNIQUE(run_id, model_path)
	);

	CREATE INDEX IF NOT EXISTS idx_eval_run ON evaluations(run_id);
	CREATE INDEX IF NOT EXISTS idx_eval_name ON evaluations(model_name);
	CREATE INDEX IF NOT EXISTS idx_eval_digest ON evaluations(model_digest);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord represents a stored batch evaluation run.
type RunRecord struct {
	ID               string
	Body             model.Body
	StartedAt        time.Time
	FinishedAt       time.Time
	LithosphereDepth float64
	CrustDensity     float64
	SigmaDepth       float64
	MaxDegree        int
	RotationRate     float64
	GravityFile      string
	TopographyFile   string
	Succeeded        int
	Failed           int
	MinPercentage    float64
	MaxPercentage    float64
	Evaluations      []EvaluationRecord
}

// EvaluationRecord represents one stored model evaluation within a run.
type EvaluationRecord struct {
	ID                      int64
	RunID                   string
	ModelPath               string
	ModelName               string
	ModelDigest             string
	Format                  model.ModelFormat
	Title                   string
	LayerCount              int
	SurfaceRadius           float64
	BoundariesKnown         bool
	MantleDensity           float64
	MantleRadius            float64
	CoreDensity             float64
	CoreRadius              float64
	AssumedLithosphereDepth float64
	LithosphereIndex        int
	ActualLithosphereDepth  float64
	Percentage              float64
	Mass                    float64
	Error                   string
}

// Failed reports whether the stored evaluation ended in an error.
func (r EvaluationRecord) Failed() bool {
	return r.Error != ""
}

// SaveRun persists a batch result and its per-model evaluations.
// When result.RunID is empty a fresh UUID is assigned, so the same id
// names the run in the result, the database and the command output.
// The returned string is the run id.
//
// Each evaluation row also stores a SHA3-256 digest of the input model
// file, so later comparisons can tell a parameter change from an edited
// model deck.
func (rdb *RunDB) SaveRun(ctx context.Context, result *model.BatchResult) (string, error) {
	if result.RunID == "" {
		result.RunID = uuid.NewString()
	}

	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	runQuery := `
	INSERT INTO runs (
		id, body, started_at, finished_at,
		lithosphere_depth_m, crust_density_kg_m3, sigma_depth_m, max_degree,
		rotation_rate_rad_s, gravity_file, topography_file,
		succeeded, failed, min_percentage, max_percentage
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, runQuery,
		result.RunID,
		result.Body.String(),
		result.StartedAt.UTC().Format(storedTimeFormat),
		result.FinishedAt.UTC().Format(storedTimeFormat),
		result.LithosphereDepth,
		result.CrustDensity,
		result.SigmaDepth,
		result.MaxDegree,
		result.RotationRate,
		result.GravityFile,
		result.TopographyFile,
		result.Succeeded,
		result.Failed,
		result.MinPercentage,
		result.MaxPercentage,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	evalQuery := `
	INSERT INTO evaluations (
		run_id, model_path, model_name, model_digest, format, title,
		layer_count, surface_radius_m, boundaries_known,
		mantle_density_kg_m3, mantle_radius_m, core_density_kg_m3, core_radius_m,
		assumed_lithosphere_depth_m, lithosphere_index, actual_lithosphere_depth_m,
		percentage, mass_kg, error
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, ev := range result.Evaluations {
		if ev == nil {
			continue
		}

		_, err = tx.ExecContext(ctx, evalQuery,
			result.RunID,
			ev.ModelPath,
			ev.ModelName,
			digestModelFile(ev.ModelPath),
			ev.Format.String(),
			ev.Title,
			ev.LayerCount,
			ev.SurfaceRadius,
			ev.BoundariesKnown,
			ev.MantleDensity,
			ev.MantleRadius,
			ev.CoreDensity,
			ev.CoreRadius,
			ev.AssumedLithosphereDepth,
			ev.LithosphereIndex,
			ev.ActualLithosphereDepth,
			ev.Percentage,
			ev.Mass,
			ev.Error,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert evaluation for %s: %w", ev.ModelPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	return result.RunID, nil
}

// GetRun retrieves a stored run and its evaluations by run id.
// Returns ErrRunNotFound when no run has the given id.
func (rdb *RunDB) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	query := `
	SELECT id, body, started_at, finished_at,
		lithosphere_depth_m, crust_density_kg_m3, sigma_depth_m, max_degree,
		rotation_rate_rad_s, gravity_file, topography_file,
		succeeded, failed, min_percentage, max_percentage
	FROM runs
	WHERE id = ?
	`

	var record RunRecord
	var body, startedAt, finishedAt string

	err := rdb.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&body,
		&startedAt,
		&finishedAt,
		&record.LithosphereDepth,
		&record.CrustDensity,
		&record.SigmaDepth,
		&record.MaxDegree,
		&record.RotationRate,
		&record.GravityFile,
		&record.TopographyFile,
		&record.Succeeded,
		&record.Failed,
		&record.MinPercentage,
		&record.MaxPercentage,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	record.Body = model.Body(body)
	record.StartedAt = parseTimestamp(startedAt)
	record.FinishedAt = parseTimestamp(finishedAt)

	evals, err := rdb.getEvaluations(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.Evaluations = evals

	return &record, nil
}

// getEvaluations loads the per-model rows of a run in insert order,
// which is the input order of the batch.
func (rdb *RunDB) getEvaluations(ctx context.Context, runID string) ([]EvaluationRecord, error) {
	query := `
	SELECT id, run_id, model_path, model_name, model_digest, format, title,
		layer_count, surface_radius_m, boundaries_known,
		mantle_density_kg_m3, mantle_radius_m, core_density_kg_m3, core_radius_m,
		assumed_lithosphere_depth_m, lithosphere_index, actual_lithosphere_depth_m,
		percentage, mass_kg, error
	FROM evaluations
	WHERE run_id = ?
	ORDER BY id
	`

	rows, err := rdb.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	var results []EvaluationRecord
	for rows.Next() {
		var rec EvaluationRecord
		var format string

		err := rows.Scan(
			&rec.ID,
			&rec.RunID,
			&rec.ModelPath,
			&rec.ModelName,
			&rec.ModelDigest,
			&format,
			&rec.Title,
			&rec.LayerCount,
			&rec.SurfaceRadius,
			&rec.BoundariesKnown,
			&rec.MantleDensity,
			&rec.MantleRadius,
			&rec.CoreDensity,
			&rec.CoreRadius,
			&rec.AssumedLithosphereDepth,
			&rec.LithosphereIndex,
			&rec.ActualLithosphereDepth,
			&rec.Percentage,
			&rec.Mass,
			&rec.Error,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}

		rec.Format = model.ModelFormat(format)
		results = append(results, rec)
	}

	return results, rows.Err()
}

// RunMetadata contains summary information about a stored run.
// This is used for displaying run history without loading the per-model rows.
type RunMetadata struct {
	// ID is the unique identifier of the run.
	ID string

	// Body is the planetary body the run evaluated models of.
	Body model.Body

	// StartedAt is when the batch evaluation started.
	StartedAt time.Time

	// FinishedAt is when the batch evaluation finished.
	FinishedAt time.Time

	// Succeeded and Failed count the evaluations by outcome.
	Succeeded int
	Failed    int

	// MinPercentage and MaxPercentage are the hydrostatic percentage
	// extrema over the successful evaluations.
	MinPercentage float64
	MaxPercentage float64
}

// ListRuns returns summary metadata for all stored runs, newest first.
func (rdb *RunDB) ListRuns(ctx context.Context) ([]RunMetadata, error) {
	query := `
	SELECT id, body, started_at, finished_at, succeeded, failed, min_percentage, max_percentage
	FROM runs
	ORDER BY started_at DESC, id
	`

	rows, err := rdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var body, startedAt, finishedAt string

		err := rows.Scan(
			&meta.ID,
			&body,
			&startedAt,
			&finishedAt,
			&meta.Succeeded,
			&meta.Failed,
			&meta.MinPercentage,
			&meta.MaxPercentage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run metadata: %w", err)
		}

		meta.Body = model.Body(body)
		meta.StartedAt = parseTimestamp(startedAt)
		meta.FinishedAt = parseTimestamp(finishedAt)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// RunComparison summarizes how evaluation results moved between two runs.
type RunComparison struct {
	// Base and Target are the two compared runs, evaluations included.
	Base   *RunRecord
	Target *RunRecord

	// Models holds the per-model movement, sorted by model name.
	Models []ModelDelta

	// MinDelta and MaxDelta are the movements of the percentage extrema.
	// They are zero unless both runs had at least one success.
	MinDelta float64
	MaxDelta float64
}

// ModelDelta is the per-model percentage movement between two runs.
type ModelDelta struct {
	// ModelName identifies the model, matched by name across the runs.
	ModelName string

	// InBase and InTarget report whether the model evaluated
	// successfully in the respective run.
	InBase   bool
	InTarget bool

	// BasePercentage and TargetPercentage are the hydrostatic
	// percentages where the respective run succeeded.
	BasePercentage   float64
	TargetPercentage float64

	// Delta is TargetPercentage minus BasePercentage. It is only
	// meaningful when both InBase and InTarget are true.
	Delta float64

	// InputChanged reports that the model file content differed
	// between the two runs.
	InputChanged bool
}

// CompareRuns loads two stored runs and computes the per-model movement
// between them. Models are matched by name; digests of the input files
// flag evaluations whose model deck changed between the runs.
func (rdb *RunDB) CompareRuns(ctx context.Context, baseID, targetID string) (*RunComparison, error) {
	base, err := rdb.GetRun(ctx, baseID)
	if err != nil {
		return nil, err
	}

	target, err := rdb.GetRun(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return compareRecords(base, target), nil
}

// compareRecords joins the evaluations of two runs by model name.
func compareRecords(base, target *RunRecord) *RunComparison {
	baseByName := evaluationsByName(base.Evaluations)
	targetByName := evaluationsByName(target.Evaluations)

	names := make([]string, 0, len(baseByName)+len(targetByName))
	for name := range baseByName {
		names = append(names, name)
	}
	for name := range targetByName {
		if _, ok := baseByName[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	comparison := &RunComparison{
		Base:   base,
		Target: target,
	}

	for _, name := range names {
		baseEval, inBase := baseByName[name]
		targetEval, inTarget := targetByName[name]

		delta := ModelDelta{ModelName: name}
		if inBase && !baseEval.Failed() {
			delta.InBase = true
			delta.BasePercentage = baseEval.Percentage
		}
		if inTarget && !targetEval.Failed() {
			delta.InTarget = true
			delta.TargetPercentage = targetEval.Percentage
		}
		if delta.InBase && delta.InTarget {
			delta.Delta = delta.TargetPercentage - delta.BasePercentage
		}
		if inBase && inTarget &&
			baseEval.ModelDigest != "" && targetEval.ModelDigest != "" &&
			baseEval.ModelDigest != targetEval.ModelDigest {
			delta.InputChanged = true
		}

		comparison.Models = append(comparison.Models, delta)
	}

	if base.Succeeded > 0 && target.Succeeded > 0 {
		comparison.MinDelta = target.MinPercentage - base.MinPercentage
		comparison.MaxDelta = target.MaxPercentage - base.MaxPercentage
	}

	return comparison
}

// evaluationsByName indexes evaluation records by model name.
func evaluationsByName(evals []EvaluationRecord) map[string]EvaluationRecord {
	byName := make(map[string]EvaluationRecord, len(evals))
	for _, ev := range evals {
		byName[ev.ModelName] = ev
	}
	return byName
}

// digestModelFile returns the hex SHA3-256 digest of the model file
// content. An unreadable file yields an empty digest rather than failing
// the save; the row then simply carries no change-detection information.
func digestModelFile(path string) string {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the evaluated model list
	if err != nil {
		return ""
	}

	hash := sha3.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// storedTimeFormat is RFC3339 with fixed-width nanoseconds. Run
// timestamps are stored in a TEXT column, and the fixed width keeps
// lexicographic order identical to chronological order for UTC times.
const storedTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	storedTimeFormat,          // Stored run timestamps
	time.RFC3339Nano,          // RFC3339 with variable-width nanoseconds
	time.RFC3339,              // Full RFC3339 format
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	// This is a fallback to avoid breaking functionality for edge cases
	return time.Time{}
}
