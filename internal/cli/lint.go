package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/floweave/floweave/pkg/pipeline"
)

// lintCommand creates the lint command for validating workflow documents.
func (c *CLI) lintCommand() *cobra.Command {
	var (
		doRepair    bool
		asJSON      bool
		interactive bool
		noCache     bool
		refresh     bool
	)

	cmd := &cobra.Command{
		Use:   "lint [workflow.yml]",
		Short: "Parse and validate a workflow document",
		Long: `Parse and validate a workflow document.

The lint command decodes the document strictly, accumulating every structural
error instead of stopping at the first, then checks the node graph: unique
IDs, resolvable edges, start/end presence, cycles, reachability, and
per-kind rules. Pass "-" to read from stdin.

With --repair, mechanical text fixes (missing colons, merged lines, unbalanced
quotes) are applied before parsing. The exit status is 1 when errors remain.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Source:  sourceName(args[0]),
				Repair:  doRepair,
				Refresh: refresh,
			}
			return c.runLint(cmd.Context(), args[0], opts, asJSON, interactive, noCache)
		},
	}

	cmd.Flags().BoolVarP(&doRepair, "repair", "r", false, "apply mechanical text repairs before parsing")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full report as JSON")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse issues in an interactive list")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runLint executes the pipeline and renders the report.
func (c *CLI) runLint(ctx context.Context, input string, opts pipeline.Options, asJSON, interactive, noCache bool) error {
	text, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Linting %s...", opts.Source))
	spinner.Start()
	result, err := runner.Lint(ctx, text, opts)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("lint: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(lintReport(result))
	}
	if interactive && len(result.Issues) > 0 {
		model := NewIssueListModel(opts.Source, result.Issues)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return fmt.Errorf("interactive browser: %w", err)
		}
	} else {
		printLintResult(opts.Source, result)
	}

	if !result.OK() {
		os.Exit(1)
	}
	return nil
}

// lintReport shapes a pipeline result for JSON output.
func lintReport(result *pipeline.Result) map[string]any {
	return map[string]any{
		"ok":            result.OK(),
		"document_hash": result.DocumentHash,
		"repair_notes":  result.RepairNotes,
		"parse_errors":  result.ParseErrors,
		"issues":        result.Issues,
	}
}

// printLintResult renders the human-readable report.
func printLintResult(source string, result *pipeline.Result) {
	if len(result.RepairNotes) > 0 {
		printInfo("Repaired %d lines", len(result.RepairNotes))
		printRepairNotes(result.RepairNotes)
		printNewline()
	}

	if len(result.ParseErrors) > 0 {
		printError("%s has %d parse errors", source, len(result.ParseErrors))
		printParseErrors(result.ParseErrors)
		return
	}

	errCount := len(result.Validation.Errors)
	warnCount := len(result.Validation.Warnings)
	switch {
	case errCount > 0:
		printError("%s failed validation", source)
	case warnCount > 0:
		printWarning("%s passed with warnings", source)
	default:
		printSuccess("%s is valid", source)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LintHit)

	if len(result.Issues) > 0 {
		printNewline()
		for _, issue := range result.Issues {
			printIssue(issue)
		}
	}
}
