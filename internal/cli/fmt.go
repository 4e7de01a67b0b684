package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/floweave/floweave/pkg/repair"
)

// fmtCommand creates the fmt command for normalizing workflow text.
func (c *CLI) fmtCommand() *cobra.Command {
	var (
		write     bool
		showNotes bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [workflow.yml]",
		Short: "Apply mechanical text repairs to a workflow document",
		Long: `Apply mechanical text repairs to a workflow document.

The fmt command runs the text normalizer: balancing quotes, restoring
missing colons after known keys, splitting merged lines, removing orphaned
colons, fixing colon spacing, and collapsing blank-line runs. The repairs
are pure text transformations; no content is invented and well-formed input
passes through unchanged.

By default the result is written to stdout. Use --write to update the file
in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFmt(args[0], write, showNotes)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file instead of printing")
	cmd.Flags().BoolVar(&showNotes, "notes", false, "list each repaired line on stderr")

	return cmd
}

func (c *CLI) runFmt(input string, write, showNotes bool) error {
	if write && input == "-" {
		return fmt.Errorf("--write requires a file path, not stdin")
	}

	text, err := readInput(input)
	if err != nil {
		return err
	}

	normalized, notes := repair.NormalizeWithNotes(text)

	if showNotes && len(notes) > 0 {
		printInfo("Repaired %d lines", len(notes))
		printRepairNotes(notes)
	}

	if !write {
		fmt.Print(normalized)
		return nil
	}

	if len(notes) == 0 && normalized == text {
		printInfo("%s is already normalized", input)
		return nil
	}
	if err := os.WriteFile(input, []byte(normalized), 0644); err != nil {
		return fmt.Errorf("write %s: %w", input, err)
	}
	printSuccess("Repaired %d lines", len(notes))
	printFile(input)
	return nil
}
