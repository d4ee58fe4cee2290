package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/De-Guo/pyCrust/internal/config"
	"github.com/De-Guo/pyCrust/internal/log"
	"github.com/De-Guo/pyCrust/internal/model"
	"github.com/De-Guo/pyCrust/internal/report"
)

// writeDeckModel writes a parseable eight-entry deck model with a core
// discontinuity at entry 3 and a crust discontinuity at entry 6, and returns
// its path. The collapsed profile has six rows and a 3390 km surface radius.
func writeDeckModel(t *testing.T, dir, name string) string {
	t.Helper()

	content := `Synthetic Mars-like interior model
0 0.0 1
8 1 3 6
0.0        6000.0
1500000.0  5800.0
1700000.0  5600.0
1700000.0  3600.0
3000000.0  3400.0
3300000.0  3200.0
3300000.0  2900.0
3390000.0  2900.0
`
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write deck model: %v", err)
	}
	return path
}

// TestNewInspectCmd tests the inspect command creation.
func TestNewInspectCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInspectCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "inspect [model-files...]" {
			t.Errorf("expected use 'inspect [model-files...]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		flagsWithShort := map[string]string{
			"format":    "f",
			"thickness": "t",
			"json":      "j",
			"markdown":  "m",
			"output":    "o",
		}
		for name, short := range flagsWithShort {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				t.Errorf("expected %s flag", name)
				continue
			}
			if flag.Shorthand != short {
				t.Errorf("expected %s shorthand %q, got %q", name, short, flag.Shorthand)
			}
		}
	})

	t.Run("has expected defaults", func(t *testing.T) {
		t.Parallel()
		if got := cmd.Flags().Lookup("format").DefValue; got != "deck" {
			t.Errorf("expected format default 'deck', got %q", got)
		}
		if got := cmd.Flags().Lookup("thickness").DefValue; got != "150" {
			t.Errorf("expected thickness default '150', got %q", got)
		}
	})

	t.Run("does not have solver flag (inspect never solves)", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("solver")
		if flag != nil {
			t.Error("solver flag should not exist (inspect stops before the solve stage)")
		}
	})
}

// TestRunInspectCmdErrors tests flag validation of the inspect command.
func TestRunInspectCmdErrors(t *testing.T) {
	t.Parallel()

	newQuietInspectCmd := func() (*bytes.Buffer, *testingCmd) {
		var buf bytes.Buffer
		cmd := NewInspectCmd()
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		return &buf, &testingCmd{cmd}
	}

	t.Run("fails without model files", func(t *testing.T) {
		t.Parallel()
		_, tc := newQuietInspectCmd()
		tc.SetArgs([]string{})

		err := tc.Execute()
		if err == nil {
			t.Fatal("expected error when no model files are given")
		}
		if !strings.Contains(err.Error(), "no model files provided") {
			t.Errorf("expected 'no model files provided' error, got %v", err)
		}
	})

	t.Run("fails for unknown format", func(t *testing.T) {
		t.Parallel()
		_, tc := newQuietInspectCmd()
		tc.SetArgs([]string{"--format", "csv", "mars01.deck"})

		err := tc.Execute()
		if !errors.Is(err, config.ErrUnknownFormat) {
			t.Errorf("expected ErrUnknownFormat, got %v", err)
		}
	})

	t.Run("fails for non-positive thickness", func(t *testing.T) {
		t.Parallel()
		_, tc := newQuietInspectCmd()
		tc.SetArgs([]string{"--thickness", "-10", "mars01.deck"})

		err := tc.Execute()
		if !errors.Is(err, config.ErrInvalidThickness) {
			t.Errorf("expected ErrInvalidThickness, got %v", err)
		}
	})

	t.Run("fails for conflicting report formats", func(t *testing.T) {
		t.Parallel()
		_, tc := newQuietInspectCmd()
		tc.SetArgs([]string{"-j", "-m", "mars01.deck"})

		err := tc.Execute()
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})
}

// testingCmd wraps a cobra command so helpers read naturally in tests.
type testingCmd struct {
	*cobraCommand
}

// cobraCommand is an alias used only to keep the wrapper small.
type cobraCommand = cobra.Command

// TestRunInspect tests the inspect loop directly.
func TestRunInspect(t *testing.T) {
	t.Parallel()

	logger := log.NewLogger(io.Discard, false)

	t.Run("writes one block per model", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		first := writeDeckModel(t, tmpDir, "mars01.deck")
		second := writeDeckModel(t, tmpDir, "mars02.deck")

		var buf bytes.Buffer
		w := report.NewSimpleWriter(&buf)

		err := runInspect(context.Background(), []string{first, second}, model.FormatDeck, 150e3, w, logger)
		if err != nil {
			t.Fatalf("runInspect() error = %v", err)
		}

		output := buf.String()
		if got := strings.Count(output, "=== Model"); got != 2 {
			t.Errorf("expected 2 model blocks, got %d:\n%s", got, output)
		}
		if !strings.Contains(output, "=== Model mars01 ===") {
			t.Errorf("expected mars01 block, got:\n%s", output)
		}
		if !strings.Contains(output, "Synthetic Mars-like interior model") {
			t.Errorf("expected deck title in output, got:\n%s", output)
		}
	})

	t.Run("reports parsed observables", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		path := writeDeckModel(t, tmpDir, "mars01.deck")

		var buf bytes.Buffer
		w := report.NewSimpleWriter(&buf)

		err := runInspect(context.Background(), []string{path}, model.FormatDeck, 150e3, w, logger)
		if err != nil {
			t.Fatalf("runInspect() error = %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"Surface radius of model (km) = 3390.000000",
			"Mantle density (kg/m3) = 3300.000000",
			"Mantle radius (km) = 3300.000000",
			"Core density (kg/m3) = 5700.000000",
			"Core radius (km) = 1700.000000",
			"Assumed depth of lithosphere (km) = 150.000000",
			"Actual depth of lithosphere in discretized model (km) = 90.000000",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("returns error for unparseable model", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "broken.deck")
		if err := os.WriteFile(path, []byte("not a deck file\n"), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		var buf bytes.Buffer
		w := report.NewSimpleWriter(&buf)

		err := runInspect(context.Background(), []string{path}, model.FormatDeck, 150e3, w, logger)
		if err == nil {
			t.Fatal("expected error for unparseable model")
		}
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		path := writeDeckModel(t, tmpDir, "mars01.deck")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var buf bytes.Buffer
		w := report.NewSimpleWriter(&buf)

		err := runInspect(ctx, []string{path}, model.FormatDeck, 150e3, w, logger)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

// TestInspectCmdOutput tests the inspect command end to end.
func TestInspectCmdOutput(t *testing.T) {
	t.Run("writes text block to command output", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := writeDeckModel(t, tmpDir, "mars01.deck")

		var buf bytes.Buffer
		cmd := NewInspectCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{path})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "=== Model mars01 ===") {
			t.Errorf("expected model block, got:\n%s", buf.String())
		}
	})

	t.Run("writes JSON evaluation with --json", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := writeDeckModel(t, tmpDir, "mars01.deck")

		var buf bytes.Buffer
		cmd := NewInspectCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"-j", path})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var ev map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
			t.Fatalf("failed to parse JSON: %v", err)
		}
		if ev["model_name"] != "mars01" {
			t.Errorf("expected model_name 'mars01', got %v", ev["model_name"])
		}
		if ev["surface_radius_m"] != 3.39e6 {
			t.Errorf("expected surface_radius_m 3.39e6, got %v", ev["surface_radius_m"])
		}
	})

	t.Run("honors thickness flag", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := writeDeckModel(t, tmpDir, "mars01.deck")

		var buf bytes.Buffer
		cmd := NewInspectCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"-t", "200", path})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "Assumed depth of lithosphere (km) = 200.000000") {
			t.Errorf("expected 200 km assumed depth, got:\n%s", buf.String())
		}
	})

	t.Run("writes report file with --output", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := writeDeckModel(t, tmpDir, "mars01.deck")
		outputPath := filepath.Join(tmpDir, "inspect.txt")

		cmd := NewInspectCmd()
		cmd.SetArgs([]string{"-o", outputPath, path})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read output file: %v", err)
		}
		if !strings.Contains(string(content), "=== Model mars01 ===") {
			t.Errorf("expected model block in file, got:\n%s", content)
		}
	})
}
