package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/De-Guo/pyCrust/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full batch result in Markdown format.
func (w *MarkdownWriter) Write(result *model.BatchResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	// Header
	w.writeHeader(md, result)

	// Run parameters
	w.writeParameters(md, result)

	// Per-model results
	w.writeResults(md, result)

	// Summary with outcome chart
	w.writeSummary(md, result)

	// Footer
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteEvaluation outputs a single model evaluation in Markdown format.
func (w *MarkdownWriter) WriteEvaluation(ev *model.Evaluation) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Model " + ev.ModelName)
	md.PlainText("")

	if ev.Title != "" {
		md.PlainTextf("*%s*", ev.Title)
		md.PlainText("")
	}

	if ev.Failed() {
		md.Cautionf("Evaluation failed: %s", ev.Error)
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	rows := [][]string{
		{"Path", "`" + ev.ModelPath + "`"},
		{"Format", ev.Format.String()},
		{"Layers", strconv.Itoa(ev.LayerCount)},
		{"Surface radius (km)", formatKm(ev.SurfaceRadius)},
	}
	if ev.BoundariesKnown {
		rows = append(rows,
			[]string{"Mantle density (kg/m3)", formatDensity(ev.MantleDensity)},
			[]string{"Mantle radius (km)", formatKm(ev.MantleRadius)},
			[]string{"Core density (kg/m3)", formatDensity(ev.CoreDensity)},
			[]string{"Core radius (km)", formatKm(ev.CoreRadius)},
		)
	}
	if ev.AssumedLithosphereDepth > 0 {
		rows = append(rows,
			[]string{"Assumed lithosphere depth (km)", formatKm(ev.AssumedLithosphereDepth)},
			[]string{"Actual lithosphere depth (km)", formatKm(ev.ActualLithosphereDepth)},
			[]string{"Lithosphere index", strconv.Itoa(ev.LithosphereIndex)},
		)
	}
	if ev.Solved {
		rows = append(rows,
			[]string{"Mass (kg)", fmt.Sprintf("%e", ev.Mass)},
			[]string{"Hydrostatic percentage", fmt.Sprintf("%f", ev.Percentage)},
		)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.BatchResult) {
	md.H1("pyCrust Evaluation Report")
	md.PlainText("")

	// Basic info table
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Body", displayBody(result.Body)},
			{"Run Date", result.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Models", strconv.Itoa(len(result.Evaluations))},
			{"Status", w.getStatusText(result)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on the batch outcome.
func (w *MarkdownWriter) getStatusText(result *model.BatchResult) string {
	if result.Failed > 0 {
		return fmt.Sprintf("❌ %d of %d models failed", result.Failed, len(result.Evaluations))
	}
	return "✅ Complete"
}

// writeParameters writes the run parameter table.
func (w *MarkdownWriter) writeParameters(md *markdown.Markdown, result *model.BatchResult) {
	md.H2("Run Parameters")
	md.PlainText("")

	rows := [][]string{
		{"Lithosphere thickness (km)", formatKm(result.LithosphereDepth)},
		{"Crust density (kg/m3)", formatDensity(result.CrustDensity)},
		{"Sigma depth (km)", formatKm(result.SigmaDepth)},
		{"Max degree", strconv.Itoa(result.MaxDegree)},
		{"Omega (rad/s)", fmt.Sprintf("%e", result.RotationRate)},
	}
	if result.GravityFile != "" {
		rows = append(rows, []string{"Gravity file", "`" + truncateString(result.GravityFile, 60) + "`"})
	}
	if result.TopographyFile != "" {
		rows = append(rows, []string{"Topography file", "`" + truncateString(result.TopographyFile, 60) + "`"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Parameter", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeResults writes the per-model observable table.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, result *model.BatchResult) {
	md.H2("Results")
	md.PlainText("")

	if len(result.Evaluations) == 0 {
		md.PlainText("No models evaluated.")
		md.PlainText("")
		return
	}

	headers := []string{
		"Model",
		"Surface radius (km)",
		"Mantle density (kg/m3)",
		"Core radius (km)",
		"Lithosphere depth (km)",
		"Percentage",
	}

	rows := make([][]string, 0, len(result.Evaluations))
	for _, ev := range result.Evaluations {
		if ev == nil {
			continue
		}
		if ev.Failed() {
			rows = append(rows, []string{ev.ModelName, "-", "-", "-", "-", "failed"})
			continue
		}

		mantle, core := "-", "-"
		if ev.BoundariesKnown {
			mantle = formatDensity(ev.MantleDensity)
			core = formatKm(ev.CoreRadius)
		}
		rows = append(rows, []string{
			ev.ModelName,
			formatKm(ev.SurfaceRadius),
			mantle,
			core,
			formatKm(ev.ActualLithosphereDepth),
			fmt.Sprintf("%f", ev.Percentage),
		})
	}

	md.Table(markdown.TableSet{
		Header: headers,
		Rows:   rows,
	})
	md.PlainText("")

	// Failure details below the table so the table rows stay scannable
	for _, ev := range result.Evaluations {
		if ev != nil && ev.Failed() {
			md.Details("Failed: "+ev.ModelName, ev.Error)
		}
	}
	md.PlainText("")
}

// writeSummary writes the aggregate section with an outcome chart.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, result *model.BatchResult) {
	md.H2("Summary")
	md.PlainText("")

	if result.Succeeded > 0 {
		md.Table(markdown.TableSet{
			Header: []string{"Aggregate", "Value"},
			Rows: [][]string{
				{"Succeeded", strconv.Itoa(result.Succeeded)},
				{"Failed", strconv.Itoa(result.Failed)},
				{"Minimum percentage", fmt.Sprintf("%f", result.MinPercentage)},
				{"Maximum percentage", fmt.Sprintf("%f", result.MaxPercentage)},
			},
		})
		md.PlainText("")
	}

	// Outcome pie chart when there is anything to chart
	if len(result.Evaluations) > 0 {
		w.writePieChart(md, result)
	}

	// Add alert based on the outcome
	w.writeAlert(md, result)
}

// writePieChart writes a mermaid pie chart of evaluation outcomes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, result *model.BatchResult) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Evaluation Outcomes"),
		piechart.WithShowData(true),
	)

	if result.Succeeded > 0 {
		chart.LabelAndIntValue("Succeeded", uint64(result.Succeeded))
	}
	if result.Failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(result.Failed))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the batch outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *model.BatchResult) {
	switch {
	case result.Succeeded == 0:
		md.Cautionf("No model evaluated successfully; the percentage aggregates are undefined.")
	case result.Failed > 0:
		md.Warningf(
			"%d model(s) failed evaluation and are excluded from the percentage aggregates.",
			result.Failed,
		)
	default:
		md.Tip("All models evaluated successfully.")
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [pycrust](https://github.com/De-Guo/pyCrust)*")
}

// formatKm renders a length in metres as kilometres without trailing zeros.
func formatKm(metres float64) string {
	return strconv.FormatFloat(metres/1e3, 'f', -1, 64)
}

// formatDensity renders a density in kg/m^3 without trailing zeros.
func formatDensity(density float64) string {
	return strconv.FormatFloat(density, 'f', -1, 64)
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
