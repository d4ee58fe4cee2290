package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/De-Guo/pyCrust/internal/config"
	"github.com/De-Guo/pyCrust/internal/database"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command.
// This command compares two evaluation runs stored in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [base-run-id] [target-run-id]",
		Short: "Compare two stored evaluation runs",
		Long: `Compare displays how the hydrostatic percentages moved between two stored
evaluation runs.

Runs are stored automatically by 'pycrust evaluate'. The comparison matches
models by name across the two runs and shows:
- The per-model percentage movement (target minus base)
- Models that appear in only one of the runs
- Models whose input file changed between the runs
- The movement of the percentage extrema

Examples:
  # Compare the latest two runs
  pycrust compare

  # Compare a specific run against the latest
  pycrust compare 6e0c6e96-6b2e-4b2a-9f3d-0c2f9d6a1a42

  # Compare two specific runs
  pycrust compare <base-run-id> <target-run-id>

  # List all stored runs
  pycrust compare --list

  # Output comparison in JSON format
  pycrust compare --json`,
		Args: cobra.MaximumNArgs(2),
		RunE: runCompareCmd,
	}

	// History listing flag
	cmd.Flags().BoolP("list", "l", false,
		"List all stored runs in the database")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listRuns, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	// Use XDG data directory for database
	dbDir := config.XDGDataDir()

	// Open database
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()

	// Handle --list flag
	if listRuns {
		return listRunHistory(ctx, db, cmd.OutOrStdout())
	}

	baseID, targetID, err := resolveRunIDs(ctx, db, args)
	if err != nil {
		return err
	}

	comparison, err := db.CompareRuns(ctx, baseID, targetID)
	if err != nil {
		return err
	}
	result := buildComparisonResult(comparison)

	// Output the result
	w := cmd.OutOrStdout()
	if jsonOutput {
		return outputComparisonJSON(w, result)
	}
	if markdownOutput {
		return outputComparisonMarkdown(w, result)
	}
	return outputComparisonText(w, result)
}

// resolveRunIDs picks the two runs to compare. Two explicit ids are used as
// given, base first. One id is compared against the latest stored run, and
// with no ids the latest two runs are compared.
func resolveRunIDs(ctx context.Context, db *database.RunDB, args []string) (baseID, targetID string, err error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}

	runs, err := db.ListRuns(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to list runs: %w", err)
	}

	if len(args) == 1 {
		if len(runs) == 0 {
			return "", "", errors.New("no stored runs found (use 'pycrust evaluate' to store a run)")
		}
		if runs[0].ID == args[0] {
			return "", "", fmt.Errorf("run %s is already the latest run; give two run ids to compare", args[0])
		}
		return args[0], runs[0].ID, nil
	}

	if len(runs) < 2 {
		return "", "", fmt.Errorf("at least 2 stored runs are required for comparison (found %d)", len(runs))
	}

	// Runs are sorted newest first: the previous run is the base
	return runs[1].ID, runs[0].ID, nil
}

// listRunHistory lists all stored runs, newest first.
func listRunHistory(ctx context.Context, db *database.RunDB, w io.Writer) error {
	runs, err := db.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No stored runs found in the database.")
		fmt.Fprintln(w, "\nUse 'pycrust evaluate' to run and store an evaluation.")
		return nil
	}

	fmt.Fprintf(w, "Stored runs (%d):\n\n", len(runs))
	fmt.Fprintf(w, "  %-36s  %-6s  %-20s  %s\n", "ID", "Body", "Date", "Results")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 80))

	for _, meta := range runs {
		fmt.Fprintf(w, "  %-36s  %-6s  %-20s  %s\n",
			meta.ID,
			meta.Body.String(),
			meta.StartedAt.Format("2006-01-02 15:04:05"),
			formatRunSummary(meta),
		)
	}

	fmt.Fprintln(w, "\nUse 'pycrust compare' to compare the latest two runs.")
	fmt.Fprintln(w, "Use 'pycrust compare <base-id> <target-id>' to compare specific runs.")

	return nil
}

// formatRunSummary formats a stored run's outcome counts and percentage span
// into a short display string.
func formatRunSummary(meta database.RunMetadata) string {
	parts := []string{fmt.Sprintf("%d ok", meta.Succeeded)}
	if meta.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", meta.Failed))
	}
	if meta.Succeeded > 0 {
		parts = append(parts, fmt.Sprintf("%.2f%%..%.2f%%", meta.MinPercentage, meta.MaxPercentage))
	}
	return strings.Join(parts, ", ")
}

// ComparisonResult holds the rendered result of comparing two stored runs.
type ComparisonResult struct {
	// Body is the planetary body the target run evaluated models of.
	Body string `json:"body"`

	// BaseRun and TargetRun summarize the two compared runs.
	BaseRun   RunSummary `json:"base_run"`
	TargetRun RunSummary `json:"target_run"`

	// Models holds the per-model movement, sorted by model name.
	Models []ModelChange `json:"models"`

	// MinPercentageDelta and MaxPercentageDelta are the movements of the
	// percentage extrema between the runs.
	MinPercentageDelta float64 `json:"min_percentage_delta"`
	MaxPercentageDelta float64 `json:"max_percentage_delta"`

	// ExtremaKnown is true when both runs had at least one successful
	// evaluation, so the extrema deltas mean something.
	ExtremaKnown bool `json:"extrema_known"`
}

// RunSummary is the comparison-facing summary of one stored run.
type RunSummary struct {
	// ID is the run identifier.
	ID string `json:"id"`

	// Body is the planetary body the run evaluated models of.
	Body string `json:"body"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// LithosphereDepth is the assumed lithosphere thickness in metres.
	LithosphereDepth float64 `json:"lithosphere_depth_m"`

	// Succeeded and Failed count the evaluations by outcome.
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`

	// MinPercentage and MaxPercentage span the successful evaluations.
	MinPercentage float64 `json:"min_percentage"`
	MaxPercentage float64 `json:"max_percentage"`
}

// ModelChange is the per-model movement between the two runs.
type ModelChange struct {
	// ModelName identifies the model, matched by name across the runs.
	ModelName string `json:"model_name"`

	// InBase and InTarget report whether the model evaluated successfully
	// in the respective run.
	InBase   bool `json:"in_base"`
	InTarget bool `json:"in_target"`

	// BasePercentage and TargetPercentage are the hydrostatic percentages
	// where the respective run succeeded.
	BasePercentage   float64 `json:"base_percentage,omitempty"`
	TargetPercentage float64 `json:"target_percentage,omitempty"`

	// Delta is TargetPercentage minus BasePercentage, meaningful only when
	// the model succeeded in both runs.
	Delta float64 `json:"delta,omitempty"`

	// InputChanged reports that the model file content differed between
	// the runs.
	InputChanged bool `json:"input_changed,omitempty"`
}

// buildComparisonResult converts a stored-run comparison into its rendered
// form.
func buildComparisonResult(cmp *database.RunComparison) *ComparisonResult {
	result := &ComparisonResult{
		Body:               cmp.Target.Body.String(),
		BaseRun:            summarizeRun(cmp.Base),
		TargetRun:          summarizeRun(cmp.Target),
		MinPercentageDelta: cmp.MinDelta,
		MaxPercentageDelta: cmp.MaxDelta,
		ExtremaKnown:       cmp.Base.Succeeded > 0 && cmp.Target.Succeeded > 0,
	}

	for _, d := range cmp.Models {
		result.Models = append(result.Models, ModelChange{
			ModelName:        d.ModelName,
			InBase:           d.InBase,
			InTarget:         d.InTarget,
			BasePercentage:   d.BasePercentage,
			TargetPercentage: d.TargetPercentage,
			Delta:            d.Delta,
			InputChanged:     d.InputChanged,
		})
	}

	return result
}

// summarizeRun extracts the display summary of one stored run.
func summarizeRun(r *database.RunRecord) RunSummary {
	return RunSummary{
		ID:               r.ID,
		Body:             r.Body.String(),
		StartedAt:        r.StartedAt,
		LithosphereDepth: r.LithosphereDepth,
		Succeeded:        r.Succeeded,
		Failed:           r.Failed,
		MinPercentage:    r.MinPercentage,
		MaxPercentage:    r.MaxPercentage,
	}
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(w io.Writer, result *ComparisonResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(w io.Writer, result *ComparisonResult) error {
	fmt.Fprintf(w, "# Run Comparison: %s\n\n", result.Body)

	// Run metadata table
	fmt.Fprintln(w, "## Runs")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "| Run | ID | Date | Succeeded | Failed |")
	fmt.Fprintln(w, "|-----|----|------|-----------|--------|")
	fmt.Fprintf(w, "| Base | `%s` | %s | %d | %d |\n",
		result.BaseRun.ID,
		result.BaseRun.StartedAt.Format("2006-01-02 15:04"),
		result.BaseRun.Succeeded,
		result.BaseRun.Failed)
	fmt.Fprintf(w, "| Target | `%s` | %s | %d | %d |\n",
		result.TargetRun.ID,
		result.TargetRun.StartedAt.Format("2006-01-02 15:04"),
		result.TargetRun.Succeeded,
		result.TargetRun.Failed)

	// Per-model movement table
	fmt.Fprintf(w, "\n## Models\n\n")
	fmt.Fprintln(w, "| Model | Base | Target | Delta | Input |")
	fmt.Fprintln(w, "|-------|------|--------|-------|-------|")
	for _, m := range result.Models {
		input := ""
		if m.InputChanged {
			input = "changed"
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
			m.ModelName,
			formatPercentage(m.InBase, m.BasePercentage),
			formatPercentage(m.InTarget, m.TargetPercentage),
			formatPercentDelta(m),
			input,
		)
	}

	// Extrema movement
	if result.ExtremaKnown {
		fmt.Fprintf(w, "\n## Extrema\n\n")
		fmt.Fprintln(w, "| Extremum | Base | Target | Delta |")
		fmt.Fprintln(w, "|----------|------|--------|-------|")
		fmt.Fprintf(w, "| Minimum percentage | %f | %f | %+f |\n",
			result.BaseRun.MinPercentage,
			result.TargetRun.MinPercentage,
			result.MinPercentageDelta)
		fmt.Fprintf(w, "| Maximum percentage | %f | %f | %+f |\n",
			result.BaseRun.MaxPercentage,
			result.TargetRun.MaxPercentage,
			result.MaxPercentageDelta)
	}

	return nil
}

// outputComparisonText outputs the comparison result in human-readable text
// format.
func outputComparisonText(w io.Writer, result *ComparisonResult) error {
	fmt.Fprintf(w, "Run Comparison: %s\n", result.Body)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	// Run identities
	fmt.Fprintf(w, "\nBase:   %s  (%s)\n",
		result.BaseRun.ID, result.BaseRun.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Target: %s  (%s)\n",
		result.TargetRun.ID, result.TargetRun.StartedAt.Format("2006-01-02 15:04:05"))

	// Per-model movement table
	fmt.Fprintln(w, "\nHydrostatic percentage by model:")
	fmt.Fprintf(w, "  %-20s  %-12s  %-12s  %s\n", "Model", "Base", "Target", "Delta")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))

	changed := false
	for _, m := range result.Models {
		marker := ""
		if m.InputChanged {
			marker = " *"
			changed = true
		}
		fmt.Fprintf(w, "  %-20s  %-12s  %-12s  %s%s\n",
			m.ModelName,
			formatPercentage(m.InBase, m.BasePercentage),
			formatPercentage(m.InTarget, m.TargetPercentage),
			formatPercentDelta(m),
			marker,
		)
	}
	if changed {
		fmt.Fprintln(w, "\n  * model file changed between the runs")
	}

	// Outcome counts
	fmt.Fprintf(w, "\nBase:   %d succeeded, %d failed\n",
		result.BaseRun.Succeeded, result.BaseRun.Failed)
	fmt.Fprintf(w, "Target: %d succeeded, %d failed\n",
		result.TargetRun.Succeeded, result.TargetRun.Failed)

	// Extrema movement
	if result.ExtremaKnown {
		fmt.Fprintln(w, "\nExtrema movement:")
		fmt.Fprintf(w, "  Minimum percentage: %f -> %f (%+f)\n",
			result.BaseRun.MinPercentage,
			result.TargetRun.MinPercentage,
			result.MinPercentageDelta)
		fmt.Fprintf(w, "  Maximum percentage: %f -> %f (%+f)\n",
			result.BaseRun.MaxPercentage,
			result.TargetRun.MaxPercentage,
			result.MaxPercentageDelta)
	}

	return nil
}

// formatPercentage renders a model's percentage, or "-" where the run has no
// successful evaluation of the model.
func formatPercentage(present bool, pct float64) string {
	if !present {
		return "-"
	}
	return fmt.Sprintf("%f", pct)
}

// formatPercentDelta renders the signed percentage movement of a model
// present in both runs, or "-" otherwise.
func formatPercentDelta(m ModelChange) string {
	if !m.InBase || !m.InTarget {
		return "-"
	}
	return fmt.Sprintf("%+f", m.Delta)
}
