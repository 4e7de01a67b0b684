package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/floweave/floweave/pkg/pipeline"
	"github.com/floweave/floweave/pkg/workflow"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		doRepair bool
	)
	opts := pipeline.Options{Layout: true}

	cmd := &cobra.Command{
		Use:   "layout [workflow.yml]",
		Short: "Compute node positions for a workflow document",
		Long: `Compute node positions for a workflow document.

The layout command assigns each node a column by graph depth (a node sits
one level past its deepest parent) and centers every column vertically.
The same document always yields the same positions, and laying out an
already laid-out document changes nothing.

The positioned document is written as YAML, preserving every field the
input carried. Validation issues do not block layout; only parse errors do.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.Config()
			if err != nil {
				return err
			}
			opts.LayoutConfig = cfg.Layout
			opts.Source = sourceName(args[0])
			opts.Repair = doRepair
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.yml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVarP(&doRepair, "repair", "r", false, "apply mechanical text repairs before parsing")

	return cmd
}

// runLayout executes the pipeline with layout enabled and writes the output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	text, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	result, err := runner.Execute(ctx, text, opts)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if result.Positioned == nil {
		printError("%s does not parse; fix structural errors first", opts.Source)
		printParseErrors(result.ParseErrors)
		return fmt.Errorf("%d parse errors", len(result.ParseErrors))
	}

	outputPath := output
	if outputPath == "" {
		if input == "-" {
			outputPath = "workflow.layout.yml"
		} else {
			outputPath = replaceExt(input, ".layout.yml")
		}
	}
	if err := workflow.WriteDocumentFile(result.Positioned, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	if len(result.Issues) > 0 {
		printWarning("%d validation issues remain", len(result.Issues))
	}
	printNewline()
	printNextStep("Export", appName+" export "+outputPath)

	return nil
}
