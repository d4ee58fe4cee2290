package log

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Attribute key suffixes and display thresholds.
const (
	// metreSuffix marks float attributes carrying metres.
	metreSuffix = "_m"
	// kilometreSuffix replaces metreSuffix in display output.
	kilometreSuffix = "_km"
	// metresPerKilometre converts stored SI values to display units.
	metresPerKilometre = 1e3

	// scientificBelow and scientificAbove bound the magnitudes rendered in
	// decimal notation. Spherical harmonic coefficients sit far below the
	// lower bound and GM or mass values far above the upper one; both are
	// unreadable as plain decimals.
	scientificBelow = 1e-2
	scientificAbove = 1e7
)

// QuantityHandler wraps an slog.Handler to render physical quantities in
// the units the log is read in. Internally every length is SI metres;
// float attributes whose key ends in "_m" are shown as kilometres with the
// key rewritten to "_km", and dimensionless or non-length floats with very
// small or very large magnitudes switch to scientific notation.
//
// Design decision: We use a handler wrapper rather than converting at each
// call site because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites keep passing SI values, so a grep for unit bugs has one
//     convention to check
type QuantityHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler
}

// NewQuantityHandler creates a QuantityHandler wrapping the given handler.
// If handler is nil, the returned QuantityHandler uses slog.Default().Handler().
func NewQuantityHandler(handler slog.Handler) *QuantityHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &QuantityHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *QuantityHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying
// handler.
func (h *QuantityHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})

	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *QuantityHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &QuantityHandler{handler: h.handler.WithAttrs(rewritten)}
}

// WithGroup returns a new handler with the given group name.
func (h *QuantityHandler) WithGroup(name string) slog.Handler {
	return &QuantityHandler{handler: h.handler.WithGroup(name)}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
func (h *QuantityHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewritten[i] = h.rewriteAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	if a.Value.Kind() != slog.KindFloat64 {
		return a
	}
	v := a.Value.Float64()

	if strings.HasSuffix(a.Key, metreSuffix) {
		key := strings.TrimSuffix(a.Key, metreSuffix) + kilometreSuffix
		return slog.Float64(key, v/metresPerKilometre)
	}

	if abs := math.Abs(v); v != 0 && (abs < scientificBelow || abs >= scientificAbove) {
		return slog.String(a.Key, strconv.FormatFloat(v, 'e', 6, 64))
	}
	return a
}

// NewLogger creates a new slog.Logger with quantity rewriting and text
// output.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewQuantityHandler(textHandler))
}

// NewJSONLogger creates a new slog.Logger with quantity rewriting that
// outputs JSON format. Useful for structured log aggregation.
//
// Parameters:
//   - w: The io.Writer to write log output to
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewQuantityHandler(jsonHandler))
}
