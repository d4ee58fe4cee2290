package report

import (
	"io"

	"github.com/De-Guo/pyCrust/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Writer defines the interface for report output.
// Implementations write batch evaluation results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the full batch result to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.BatchResult) (int, error)

	// WriteEvaluation outputs a single model evaluation.
	// This is what the inspect command renders: one model's parsed
	// structure and lithosphere placement without run aggregates.
	WriteEvaluation(ev *model.Evaluation) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write batch results, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the batch result to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(result *model.BatchResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteEvaluation outputs the evaluation to all configured Writers.
func (m *MultiWriter) WriteEvaluation(ev *model.Evaluation) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteEvaluation(ev)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// displayBody renders a planetary body name for report headers ("mars"
// becomes "Mars").
func displayBody(b model.Body) string {
	if b == model.BodyUnknown {
		return "Unknown"
	}
	return cases.Title(language.English).String(b.String())
}
