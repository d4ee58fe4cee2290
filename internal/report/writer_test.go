package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/De-Guo/pyCrust/internal/model"
)

// createTestResult creates a batch result with sample data for testing.
// It carries two successful evaluations and one failure so every writer
// path gets exercised.
func createTestResult() *model.BatchResult {
	result := &model.BatchResult{
		Body:             model.BodyMars,
		StartedAt:        time.Date(2026, 8, 21, 10, 30, 0, 0, time.UTC),
		FinishedAt:       time.Date(2026, 8, 21, 10, 30, 2, 0, time.UTC),
		LithosphereDepth: 150e3,
		CrustDensity:     2900,
		SigmaDepth:       45e3,
		MaxDegree:        2,
		RotationRate:     7.08821812e-5,
		GravityFile:      "data/gmm3_120_sha.tab",
		TopographyFile:   "data/molaShape_719.sh",
		Evaluations: []*model.Evaluation{
			{
				ModelPath:               "models/mars01.deck",
				ModelName:               "mars01",
				Format:                  model.FormatDeck,
				Title:                   "Zharkov and Gudkova interior model",
				LayerCount:              12,
				SurfaceRadius:           3.3895e6,
				BoundariesKnown:         true,
				MantleDensity:           3500,
				MantleRadius:            3.28e6,
				CoreDensity:             7200,
				CoreRadius:              1.7e6,
				AssumedLithosphereDepth: 150e3,
				LithosphereIndex:        8,
				ActualLithosphereDepth:  145e3,
				Solved:                  true,
				Percentage:              80.25,
				Mass:                    6.417e23,
			},
			{
				ModelPath:               "models/mars02.deck",
				ModelName:               "mars02",
				Format:                  model.FormatDeck,
				Title:                   "Sohl and Spohn model A",
				LayerCount:              10,
				SurfaceRadius:           3.39e6,
				BoundariesKnown:         true,
				MantleDensity:           3450,
				MantleRadius:            3.3e6,
				CoreDensity:             6900,
				CoreRadius:              1.65e6,
				AssumedLithosphereDepth: 150e3,
				LithosphereIndex:        7,
				ActualLithosphereDepth:  155e3,
				Solved:                  true,
				Percentage:              92.5,
				Mass:                    6.42e23,
			},
			{
				ModelPath: "models/mars03.deck",
				ModelName: "mars03",
				Format:    model.FormatDeck,
				Error:     "parse models/mars03.deck: malformed deck file",
			},
		},
	}
	result.Finalize()
	return result
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		n, err := w.Write(createTestResult())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n == 0 {
			t.Error("expected non-zero byte count")
		}

		output := buf.String()
		if !strings.Contains(output, "PYCRUST EVALUATION REPORT") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "Body:       Mars") {
			t.Error("expected output to contain title-cased body name")
		}
		if !strings.Contains(output, "Models:     3") {
			t.Error("expected output to contain model count")
		}
	})

	t.Run("writes run parameters", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "RUN PARAMETERS") {
			t.Error("expected output to contain parameter section")
		}
		if !strings.Contains(output, "Assumed lithosphere thickness (km) = 150.000000") {
			t.Error("expected output to contain thickness in km")
		}
		if !strings.Contains(output, "Crust density (kg/m3) = 2900.000000") {
			t.Error("expected output to contain crust density")
		}
		if !strings.Contains(output, "Omega (rad/s) = 7.088218e-05") {
			t.Error("expected output to contain rotation rate")
		}
		if !strings.Contains(output, "Gravity file = data/gmm3_120_sha.tab") {
			t.Error("expected output to contain gravity file")
		}
	})

	t.Run("writes per-model blocks in workflow texture", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "=== Model mars01 ===") {
			t.Error("expected output to contain model block header")
		}
		if !strings.Contains(output, "Zharkov and Gudkova interior model") {
			t.Error("expected output to echo the deck title")
		}
		if !strings.Contains(output, "Surface radius of model (km) = 3389.500000") {
			t.Error("expected output to contain surface radius line")
		}
		if !strings.Contains(output, "Mantle density (kg/m3) = 3500.000000") {
			t.Error("expected output to contain mantle density line")
		}
		if !strings.Contains(output, "Core radius (km) = 1700.000000") {
			t.Error("expected output to contain core radius line")
		}
		if !strings.Contains(output, "Assumed depth of lithosphere (km) = 150.000000") {
			t.Error("expected output to contain assumed depth line")
		}
		if !strings.Contains(output, "Actual depth of lithosphere in discretized model (km) = 145.000000") {
			t.Error("expected output to contain actual depth line")
		}
		if !strings.Contains(output, "Percentage of h20 derived from hydrostatic mantle = 80.250000") {
			t.Error("expected output to contain percentage line")
		}
	})

	t.Run("marks failed models", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "=== Model mars03 ===") {
			t.Error("expected output to contain failed model block")
		}
		if !strings.Contains(output, "FAILED: parse models/mars03.deck") {
			t.Error("expected output to contain failure message")
		}
		if !strings.Contains(output, "Status:     1 of 3 models failed") {
			t.Error("expected status line to count failures")
		}
	})

	t.Run("complete status when nothing failed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		result := createTestResult()
		result.Evaluations = result.Evaluations[:2]
		result.Finalize()

		if _, err := w.Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "Status:     Complete") {
			t.Error("expected complete status")
		}
	})

	t.Run("verbose mode includes mass and structure detail", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Model mass (kg) = 6.417000e+23") {
			t.Error("expected verbose output to contain model mass")
		}
		if !strings.Contains(output, "Layers = 12") {
			t.Error("expected verbose output to contain layer count")
		}
		if !strings.Contains(output, "Lithosphere index = 8") {
			t.Error("expected verbose output to contain lithosphere index")
		}
	})

	t.Run("default mode omits verbose detail", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "Model mass (kg)") {
			t.Error("expected default output to omit model mass")
		}
	})

	t.Run("writes percentage extrema", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Minimum percentage = 80.250000") {
			t.Error("expected output to contain minimum percentage")
		}
		if !strings.Contains(output, "Maximum percentage = 92.500000") {
			t.Error("expected output to contain maximum percentage")
		}
	})

	t.Run("omits extrema when nothing succeeded", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		result := createTestResult()
		result.Evaluations = result.Evaluations[2:]
		result.Finalize()

		if _, err := w.Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "Minimum percentage") {
			t.Error("expected extrema to be omitted with zero successes")
		}
	})
}

// TestSimpleWriterWriteEvaluation tests single-model output.
func TestSimpleWriterWriteEvaluation(t *testing.T) {
	t.Parallel()

	t.Run("writes model block without run sections", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.WriteEvaluation(createTestResult().Evaluations[0]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "=== Model mars01 ===") {
			t.Error("expected model block header")
		}
		if !strings.Contains(output, "Surface radius of model (km) = 3389.500000") {
			t.Error("expected surface radius line")
		}
		if strings.Contains(output, "RUN PARAMETERS") {
			t.Error("expected no parameter section in single-model output")
		}
		if strings.Contains(output, "PYCRUST EVALUATION REPORT") {
			t.Error("expected no banner in single-model output")
		}
	})

	t.Run("omits percentage before the solver ran", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		ev := createTestResult().Evaluations[0]
		ev.Solved = false
		ev.Mass = 0
		ev.Percentage = 0

		if _, err := w.WriteEvaluation(ev); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.Contains(output, "Percentage of h20") {
			t.Error("expected no percentage line without a solution")
		}
		if !strings.Contains(output, "Assumed depth of lithosphere (km) = 150.000000") {
			t.Error("expected lithosphere lines to remain")
		}
	})

	t.Run("keeps percentage when a solved model reports zero mass", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		ev := createTestResult().Evaluations[0]
		ev.Mass = 0

		if _, err := w.WriteEvaluation(ev); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "Percentage of h20 derived from hydrostatic mantle = 80.250000") {
			t.Error("expected percentage line for solved evaluation")
		}
	})

	t.Run("writes failure for failed evaluation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.WriteEvaluation(createTestResult().Evaluations[2]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "FAILED: parse models/mars03.deck") {
			t.Error("expected failure message")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("outputs valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.BatchResult
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Body != model.BodyMars {
			t.Errorf("Body = %q, want mars", decoded.Body)
		}
		if len(decoded.Evaluations) != 3 {
			t.Errorf("expected 3 evaluations, got %d", len(decoded.Evaluations))
		}
		if decoded.MinPercentage != 80.25 {
			t.Errorf("MinPercentage = %v, want 80.25", decoded.MinPercentage)
		}
		if decoded.Evaluations[0].SurfaceRadius != 3.3895e6 {
			t.Errorf("SurfaceRadius = %v, want 3.3895e6", decoded.Evaluations[0].SurfaceRadius)
		}
	})

	t.Run("compact output by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.Count(output, "\n") != 1 {
			t.Error("expected compact output with single trailing newline")
		}
	})

	t.Run("pretty print with indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "{\n  \"") {
			t.Error("expected indented output")
		}
	})

	t.Run("WriteEvaluation outputs one evaluation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.WriteEvaluation(createTestResult().Evaluations[0]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.Evaluation
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.ModelName != "mars01" {
			t.Errorf("ModelName = %q, want mars01", decoded.ModelName)
		}
		if decoded.Percentage != 80.25 {
			t.Errorf("Percentage = %v, want 80.25", decoded.Percentage)
		}
	})
}

// TestFullJSONWriter tests the full JSON writer with metadata.
func TestFullJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("includes version in output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewFullJSONWriter(&buf, "v1.2.3")

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded JSONRun
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Version != "v1.2.3" {
			t.Errorf("Version = %q, want v1.2.3", decoded.Version)
		}
		if decoded.Result == nil || decoded.Result.Body != model.BodyMars {
			t.Error("expected wrapped batch result")
		}
	})
}

// TestWithIndent tests the WithIndent JSON option.
func TestWithIndent(t *testing.T) {
	t.Parallel()

	t.Run("uses custom prefix and indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithIndent(">>", "\t"))

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "\n>>\t") {
			t.Error("expected custom prefix and indent in output")
		}
	})
}

// failingWriter always fails, for error propagation tests.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

// TestMultiWriter tests writing to multiple outputs.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var text, jsonBuf bytes.Buffer
		mw := NewMultiWriter(
			NewSimpleWriter(&text),
			NewJSONWriter(&jsonBuf),
		)

		n, err := mw.Write(createTestResult())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != text.Len()+jsonBuf.Len() {
			t.Errorf("byte count %d, want %d", n, text.Len()+jsonBuf.Len())
		}
		if !strings.Contains(text.String(), "PYCRUST EVALUATION REPORT") {
			t.Error("expected text output")
		}
		if !strings.Contains(jsonBuf.String(), "\"evaluations\"") {
			t.Error("expected JSON output")
		}
	})

	t.Run("writes evaluation to all writers", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&a), NewSimpleWriter(&b))

		if _, err := mw.WriteEvaluation(createTestResult().Evaluations[0]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.String() != b.String() {
			t.Error("expected identical output in both writers")
		}
		if a.Len() == 0 {
			t.Error("expected non-empty output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after bytes.Buffer
		mw := NewMultiWriter(
			NewSimpleWriter(failingWriter{}),
			NewSimpleWriter(&after),
		)

		if _, err := mw.Write(createTestResult()); err == nil {
			t.Fatal("expected error from failing writer")
		}
		if after.Len() != 0 {
			t.Error("expected later writers to be skipped after error")
		}
	})

	t.Run("handles empty writers list", func(t *testing.T) {
		t.Parallel()

		mw := NewMultiWriter()

		n, err := mw.Write(createTestResult())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 0 {
			t.Errorf("expected 0 bytes, got %d", n)
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createTestResult())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# pyCrust Evaluation Report") {
			t.Error("expected output to contain H1 header")
		}
		if !strings.Contains(output, "Mars") {
			t.Error("expected output to contain title-cased body")
		}
	})

	t.Run("writes run parameter table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Run Parameters") {
			t.Error("expected run parameter section")
		}
		if !strings.Contains(output, "Lithosphere thickness (km)") {
			t.Error("expected thickness row")
		}
		if !strings.Contains(output, "7.088218e-05") {
			t.Error("expected omega value")
		}
		if !strings.Contains(output, "gmm3_120_sha.tab") {
			t.Error("expected gravity file")
		}
	})

	t.Run("writes results table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Results") {
			t.Error("expected results section")
		}
		if !strings.Contains(output, "mars01") {
			t.Error("expected model name in table")
		}
		if !strings.Contains(output, "3389.5") {
			t.Error("expected surface radius in km")
		}
		if !strings.Contains(output, "80.250000") {
			t.Error("expected percentage value")
		}
		if !strings.Contains(output, "failed") {
			t.Error("expected failed marker for broken model")
		}
	})

	t.Run("includes failure details", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "<details>") {
			t.Error("expected details tags")
		}
		if !strings.Contains(output, "Failed: mars03") {
			t.Error("expected failure summary")
		}
	})

	t.Run("includes outcome pie chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "```mermaid") {
			t.Error("expected mermaid code block")
		}
		if !strings.Contains(output, "pie") {
			t.Error("expected pie chart")
		}
	})

	t.Run("includes warning alert for failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "[!WARNING]") {
			t.Error("expected WARNING alert for failed models")
		}
	})

	t.Run("includes tip alert for full success", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		result := createTestResult()
		result.Evaluations = result.Evaluations[:2]
		result.Finalize()

		if _, err := w.Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "[!TIP]") {
			t.Error("expected TIP alert when nothing failed")
		}
	})

	t.Run("includes caution alert when nothing succeeded", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		result := createTestResult()
		result.Evaluations = result.Evaluations[2:]
		result.Finalize()

		if _, err := w.Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "[!CAUTION]") {
			t.Error("expected CAUTION alert when nothing succeeded")
		}
	})

	t.Run("writes summary aggregates", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Summary") {
			t.Error("expected summary section")
		}
		if !strings.Contains(output, "Minimum percentage") {
			t.Error("expected minimum percentage row")
		}
		if !strings.Contains(output, "92.500000") {
			t.Error("expected maximum percentage value")
		}
	})

	t.Run("WriteEvaluation outputs one model", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.WriteEvaluation(createTestResult().Evaluations[0]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Model mars01") {
			t.Error("expected model header")
		}
		if !strings.Contains(output, "models/mars01.deck") {
			t.Error("expected model path")
		}
		if !strings.Contains(output, "3389.5") {
			t.Error("expected surface radius")
		}
	})

	t.Run("WriteEvaluation marks failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.WriteEvaluation(createTestResult().Evaluations[2]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "[!CAUTION]") {
			t.Error("expected CAUTION alert for failed evaluation")
		}
	})
}

// TestTruncateString tests the table cell truncation helper.
func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "shorter than limit", input: "abc", maxLen: 10, want: "abc"},
		{name: "exactly at limit", input: "abcde", maxLen: 5, want: "abcde"},
		{name: "truncated with ellipsis", input: "abcdefghij", maxLen: 8, want: "abcde..."},
		{name: "tiny limit", input: "abcdef", maxLen: 3, want: "abc"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := truncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

// TestDisplayBody tests body name rendering.
func TestDisplayBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body model.Body
		want string
	}{
		{name: "mars", body: model.BodyMars, want: "Mars"},
		{name: "moon", body: model.BodyMoon, want: "Moon"},
		{name: "unknown", body: model.BodyUnknown, want: "Unknown"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := displayBody(tt.body); got != tt.want {
				t.Errorf("displayBody(%v) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
