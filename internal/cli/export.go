package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/floweave/floweave/pkg/pipeline"
	"github.com/floweave/floweave/pkg/render"
)

// exportCommand creates the export command for generating diagrams.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format   string
		output   string
		noCache  bool
		doRepair bool
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export [workflow.yml]",
		Short: "Export a workflow document as a DOT or SVG diagram",
		Long: `Export a workflow document as a diagram.

The export command converts the node graph to Graphviz DOT and optionally
renders it to SVG. Validation findings are drawn into the diagram: nodes
with errors get a red outline, warnings an orange one, and edges pointing
at missing nodes are dashed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "dot" && format != "svg" {
				return fmt.Errorf("invalid format: %q (must be dot or svg)", format)
			}
			opts := pipeline.Options{Source: sourceName(args[0]), Repair: doRepair}
			return c.runExport(cmd.Context(), args[0], opts, format, output, noCache, detailed)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&doRepair, "repair", "r", false, "apply mechanical text repairs before parsing")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include node kinds in labels")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, opts pipeline.Options, format, output string, noCache, detailed bool) error {
	text, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	result, err := runner.Lint(ctx, text, opts)
	if err != nil {
		return fmt.Errorf("lint: %w", err)
	}
	if result.Document == nil {
		printError("%s does not parse; fix structural errors first", opts.Source)
		printParseErrors(result.ParseErrors)
		return fmt.Errorf("%d parse errors", len(result.ParseErrors))
	}

	dot := render.ToDOT(result.Document, result.Validation, render.Options{Detailed: detailed})

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
		data, err = render.SVG(dot)
		spinner.Stop()
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
	}

	outputPath := output
	if outputPath == "" {
		if input == "-" {
			outputPath = "workflow." + format
		} else {
			outputPath = replaceExt(input, "."+format)
		}
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Exported %s", format)
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LintHit)
	return nil
}
