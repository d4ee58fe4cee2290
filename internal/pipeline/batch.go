package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/De-Guo/pyCrust/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchEvaluator handles evaluation of multiple interior model files.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchEvaluator rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-model execution
// 2. It allows different batch strategies (strict vs skip-and-record)
// 3. It provides cleaner separation of concerns
type BatchEvaluator struct {
	// pipelineFactory creates a new pipeline for each evaluation.
	// We use a factory to ensure each evaluation gets a fresh pipeline
	// instance.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent evaluations.
	concurrency int

	// skipFailures records failed models in their evaluations and keeps
	// going instead of aborting the whole batch on the first bad model.
	skipFailures bool

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchEvaluator.
type BatchOption func(*BatchEvaluator)

// WithBatchLogger sets a custom logger for batch evaluation.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchEvaluator) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent evaluations.
// Default is 1, which evaluates models one at a time in input order.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchEvaluator) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithSkipFailures configures the evaluator to record per-model failures
// and continue. The default is to abort the batch on the first failure.
//
// Design decision: Strict mode is the default because a malformed model in
// a batch usually means the wrong directory or extension was given, and
// aggregates over a partial batch are misleading. Skip mode exists for
// sweeping large model collections of mixed quality.
func WithSkipFailures(skip bool) BatchOption {
	return func(b *BatchEvaluator) {
		b.skipFailures = skip
	}
}

// NewBatchEvaluator creates a new BatchEvaluator.
//
// The pipelineFactory function is called for each evaluation to create a
// fresh pipeline instance. This ensures that pipeline state doesn't leak
// between evaluations and allows for per-model customization if needed.
func NewBatchEvaluator(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchEvaluator {
	b := &BatchEvaluator{
		pipelineFactory: pipelineFactory,
		concurrency:     1,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// EvaluateBatch evaluates multiple model files, up to the configured number
// concurrently. It respects context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each model gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously. Results land in a slice slot per input index, so the
// output order matches the input order no matter how evaluations are
// scheduled.
//
// In strict mode (the default) the first failed evaluation cancels the
// remaining ones and is returned. With WithSkipFailures the failure is
// recorded in the model's evaluation and the batch continues; only
// cancellation aborts.
func (b *BatchEvaluator) EvaluateBatch(ctx context.Context, paths []string) ([]*model.Evaluation, error) {
	b.logger.Info("starting batch evaluation",
		"total_models", len(paths),
		"concurrency", b.concurrency,
	)

	startTime := time.Now()

	// One slot per input keeps the output order. The slice is local so
	// concurrent EvaluateBatch calls on one evaluator stay independent;
	// each goroutine writes only its own slot and g.Wait orders those
	// writes before the return.
	results := make([]*model.Evaluation, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			b.logger.Debug("evaluating model",
				"model", path,
				"index", i+1,
				"total", len(paths),
			)

			// Create the evaluation for this model
			ev := model.NewEvaluation(path)

			// Create and execute pipeline
			pipeline := b.pipelineFactory()
			err := pipeline.Execute(ctx, ev)

			// Store result regardless of error
			// The evaluation contains the error message if it failed
			results[i] = ev

			if err != nil {
				// Cancellation is never a per-model failure
				if !b.skipFailures || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				b.logger.Warn("model evaluation failed",
					"model", path,
					"error", err,
				)
				return nil
			}

			b.logger.Debug("model evaluated", "model", path)
			return nil
		})
	}

	// Wait for all evaluations to complete
	err := g.Wait()

	elapsed := time.Since(startTime)
	b.logger.Info("batch evaluation complete",
		"total_models", len(paths),
		"elapsed", elapsed,
	)

	return results, err
}

// ListModelFiles returns the model files in dir with the given extension,
// sorted by name. The extension may be given with or without the leading
// dot. Subdirectories are not descended into.
func ListModelFiles(dir, ext string) ([]string, error) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list model files: %w", err)
	}

	// os.ReadDir returns entries sorted by filename, which fixes the
	// evaluation order.
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ext {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	return paths, nil
}
