package report

import (
	"encoding/json"
	"io"

	"github.com/De-Guo/pyCrust/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter:   newBaseWriter(output),
		indent:       false,
		indentPrefix: "",
		indentString: "",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full batch result in JSON format.
func (w *JSONWriter) Write(result *model.BatchResult) (int, error) {
	return w.writeJSON(result)
}

// WriteEvaluation outputs a single evaluation in JSON format.
func (w *JSONWriter) WriteEvaluation(ev *model.Evaluation) (int, error) {
	return w.writeJSON(ev)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v interface{}) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONRun is a wrapper for the full batch result with additional metadata.
// This is used when writing the complete result with contextual information.
//
// Design decision: We wrap the result rather than modifying BatchResult
// because this allows us to add output-specific fields without polluting
// the core data structure.
type JSONRun struct {
	// Version is the pycrust version that generated this report.
	Version string `json:"version"`

	// Result is the full batch result.
	Result *model.BatchResult `json:"result"`
}

// NewJSONRun creates a JSONRun wrapper with version information.
func NewJSONRun(result *model.BatchResult, version string) *JSONRun {
	return &JSONRun{
		Version: version,
		Result:  result,
	}
}

// FullJSONWriter outputs complete batch results with metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	// version is the pycrust version string.
	version string
}

// NewFullJSONWriter creates a writer for complete results with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the full batch result wrapped with metadata.
func (w *FullJSONWriter) Write(result *model.BatchResult) (int, error) {
	wrapped := NewJSONRun(result, w.version)
	return w.writeJSON(wrapped)
}
