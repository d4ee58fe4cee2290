package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/De-Guo/pyCrust/internal/config"
	"github.com/De-Guo/pyCrust/internal/log"
	"github.com/De-Guo/pyCrust/internal/model"
	"github.com/De-Guo/pyCrust/internal/pipeline"
	"github.com/De-Guo/pyCrust/internal/report"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [model-files...]",
		Short: "Parse interior models and show their structure",
		Long: `Inspect parses interior model files and prints what was found: the deck
title, layer count, surface radius, structural boundaries, and the profile
row at the base of the assumed lithosphere.

No solver runs and nothing is stored; inspect answers "did my model file
parse, and where would the lithosphere land" before committing to a batch.

Examples:
  # Inspect a deck file
  pycrust inspect models/mars01.deck

  # Inspect a tabulated model
  pycrust inspect --format table models/moon_2.dat

  # Check where a 200 km lithosphere lands in the discretized profile
  pycrust inspect --thickness 200 models/mars01.deck`,
		Args: cobra.ArbitraryArgs,
		RunE: runInspectCmd,
	}

	cmd.Flags().StringP("format", "f", model.FormatDeck.String(),
		"Model file format: deck or table")
	cmd.Flags().Float64P("thickness", "t", config.DefaultLithosphereThickness/1e3,
		"Assumed lithosphere thickness in km")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to specified file path (creates directories if needed)")

	return cmd
}

// runInspectCmd executes the inspect command.
func runInspectCmd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("no model files provided (specify one or more model files as arguments)")
	}

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format := model.ParseModelFormat(formatStr)
	if !format.IsValid() {
		return config.ErrUnknownFormat
	}

	thicknessKm, err := cmd.Flags().GetFloat64("thickness")
	if err != nil {
		return err
	}
	thickness := thicknessKm * 1e3
	if thickness <= 0 {
		return config.ErrInvalidThickness
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return config.ErrConflictingReportFormats
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	verbose := getVerboseFlag(cmd)
	logger := log.NewLogger(os.Stderr, verbose)

	var output io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		f, err := openReportFile(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case jsonOutput:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case markdownOutput:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(verbose))
	}

	return runInspect(cmd.Context(), args, format, thickness, writer, logger)
}

// runInspect parses and locates each model, writing one block per model.
// The first model that fails to parse aborts the inspection, matching the
// strict default of the batch evaluator.
func runInspect(ctx context.Context, paths []string, format model.ModelFormat, thickness float64, w report.Writer, logger *slog.Logger) error {
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ev := model.NewEvaluation(path)

		p := pipeline.New(pipeline.WithLogger(logger))
		p.AddSteps(
			pipeline.NewParseStep(format, pipeline.WithParseLogger(logger)),
			pipeline.NewLocateStep(thickness, pipeline.WithLocateLogger(logger)),
		)

		if err := p.Execute(ctx, ev); err != nil {
			return err
		}

		if _, err := w.WriteEvaluation(ev); err != nil {
			return fmt.Errorf("failed to write inspection output: %w", err)
		}
	}

	return nil
}
