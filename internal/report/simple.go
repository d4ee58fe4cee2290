package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/De-Guo/pyCrust/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display and reproduces the classic
// per-model print block of the Mars J2 analysis workflow, so existing
// tooling that greps those lines keeps working.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the per-model output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full batch result in human-readable format.
func (w *SimpleWriter) Write(result *model.BatchResult) (int, error) {
	var sb strings.Builder

	// Header
	w.writeHeader(&sb, result)

	// Run parameters
	w.writeParameters(&sb, result)

	// Per-model blocks
	w.writeModels(&sb, result)

	// Summary
	w.writeSummary(&sb, result)

	// Footer
	w.writeFooter(&sb)

	// Write to output
	return w.output.Write([]byte(sb.String()))
}

// WriteEvaluation outputs a single model evaluation without the run
// banner, parameter echo, or aggregates.
func (w *SimpleWriter) WriteEvaluation(ev *model.Evaluation) (int, error) {
	var sb strings.Builder
	w.writeModelBlock(&sb, ev)
	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.BatchResult) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                    PYCRUST EVALUATION REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Body:       %s\n", displayBody(result.Body)))
	sb.WriteString(fmt.Sprintf("Run Date:   %s\n", result.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Models:     %d\n", len(result.Evaluations)))

	if result.Failed > 0 {
		sb.WriteString(fmt.Sprintf("Status:     %d of %d models failed\n", result.Failed, len(result.Evaluations)))
	} else {
		sb.WriteString("Status:     Complete\n")
	}

	sb.WriteString("\n")
}

// writeParameters echoes the run parameters the percentages were obtained
// with. Without these a stored report cannot be reproduced.
func (w *SimpleWriter) writeParameters(sb *strings.Builder, result *model.BatchResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RUN PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if result.GravityFile != "" {
		sb.WriteString(fmt.Sprintf("  Gravity file = %s\n", result.GravityFile))
	}
	if result.TopographyFile != "" {
		sb.WriteString(fmt.Sprintf("  Topography file = %s\n", result.TopographyFile))
	}
	sb.WriteString(fmt.Sprintf("  Omega (rad/s) = %e\n", result.RotationRate))
	sb.WriteString(fmt.Sprintf("  Assumed lithosphere thickness (km) = %f\n", result.LithosphereDepth/1e3))
	sb.WriteString(fmt.Sprintf("  Crust density (kg/m3) = %f\n", result.CrustDensity))
	sb.WriteString(fmt.Sprintf("  Sigma depth (km) = %f\n", result.SigmaDepth/1e3))
	sb.WriteString(fmt.Sprintf("  Lmax of hydrostatic solution = %d\n", result.MaxDegree))
	sb.WriteString("\n")
}

// writeModels writes one block per evaluated model.
func (w *SimpleWriter) writeModels(sb *strings.Builder, result *model.BatchResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("MODELS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, ev := range result.Evaluations {
		if ev == nil {
			continue
		}
		w.writeModelBlock(sb, ev)
	}
}

// writeModelBlock writes the per-model print block. Line texture follows
// the reference workflow output so downstream tooling can keep parsing it.
func (w *SimpleWriter) writeModelBlock(sb *strings.Builder, ev *model.Evaluation) {
	sb.WriteString(fmt.Sprintf("=== Model %s ===\n", ev.ModelName))
	if ev.Title != "" {
		sb.WriteString(ev.Title)
		sb.WriteString("\n")
	}

	if ev.Failed() {
		sb.WriteString(fmt.Sprintf("FAILED: %s\n\n", ev.Error))
		return
	}

	if w.verbose {
		sb.WriteString(fmt.Sprintf("Format = %s\n", ev.Format))
		sb.WriteString(fmt.Sprintf("Layers = %d\n", ev.LayerCount))
		sb.WriteString(fmt.Sprintf("Lithosphere index = %d\n", ev.LithosphereIndex))
	}

	sb.WriteString(fmt.Sprintf("Surface radius of model (km) = %f\n", ev.SurfaceRadius/1e3))

	if ev.BoundariesKnown {
		sb.WriteString(fmt.Sprintf("Mantle density (kg/m3) = %f\n", ev.MantleDensity))
		sb.WriteString(fmt.Sprintf("Mantle radius (km) = %f\n", ev.MantleRadius/1e3))
		sb.WriteString(fmt.Sprintf("Core density (kg/m3) = %f\n", ev.CoreDensity))
		sb.WriteString(fmt.Sprintf("Core radius (km) = %f\n", ev.CoreRadius/1e3))
	}

	if ev.AssumedLithosphereDepth > 0 {
		sb.WriteString(fmt.Sprintf("Assumed depth of lithosphere (km) = %f\n", ev.AssumedLithosphereDepth/1e3))
		sb.WriteString(fmt.Sprintf("Actual depth of lithosphere in discretized model (km) = %f\n", ev.ActualLithosphereDepth/1e3))
	}

	// Inspect runs stop before the solver and get no solution lines.
	if ev.Solved {
		if w.verbose {
			sb.WriteString(fmt.Sprintf("Model mass (kg) = %e\n", ev.Mass))
		}
		sb.WriteString(fmt.Sprintf("Percentage of h20 derived from hydrostatic mantle = %f\n", ev.Percentage))
	}

	sb.WriteString("\n")
}

// writeSummary writes the aggregate section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, result *model.BatchResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Succeeded: %d\n", result.Succeeded))
	sb.WriteString(fmt.Sprintf("  Failed:    %d\n", result.Failed))

	if result.Succeeded > 0 {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  Minimum percentage = %f\n", result.MinPercentage))
		sb.WriteString(fmt.Sprintf("  Maximum percentage = %f\n", result.MaxPercentage))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by pycrust\n")
	sb.WriteString("https://github.com/De-Guo/pyCrust\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
