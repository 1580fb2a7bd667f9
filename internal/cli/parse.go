package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/phylodraw/pkg/newick"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	tree bool // print the full indented tree structure
}

// newParseCmd creates the parse command for inspecting tree files.
// It parses a Newick description and prints a structural summary
// without rendering anything, which is useful for checking a file
// before a render run or for debugging syntax errors.
func newParseCmd() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a Newick tree and print a structural summary",
		Long: `Parse a Newick tree description and print a structural summary.

Examples:
  phylodraw parse tree.nwk          # summary only
  phylodraw parse tree.nwk --tree   # include the full indented structure`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.tree, "tree", false, "print the full indented tree structure")

	return cmd
}

// runParse parses the input file and prints tip labels, node counts,
// and topological depth. Parse failures are reported with their line
// and offset.
func runParse(ctx context.Context, input string, opts *parseOpts) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Parsing %s", input)

	prog := newProgress(logger)
	t, err := newick.ParseFile(input)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %d nodes", t.NodeCount()))

	printSuccess("Parsed %s", input)
	printKeyValue("tips", fmt.Sprintf("%d", t.TipCount()))
	printKeyValue("nodes", fmt.Sprintf("%d", t.NodeCount()))
	printKeyValue("max depth", fmt.Sprintf("%d", t.MaxDepth()))
	printKeyValue("tip order", strings.Join(tipLabels(t), ", "))

	if opts.tree {
		fmt.Println()
		fmt.Println(StyleTitle.Render("Structure"))
		fmt.Print(t.String())
	}
	return nil
}

// tipLabels collects tip labels in document order, substituting a
// placeholder for anonymous tips.
func tipLabels(t *newick.Tree) []string {
	labels := make([]string, 0, t.TipCount())
	for _, tip := range t.Tips() {
		label := tip.Label
		if label == "" {
			label = "<unlabeled>"
		}
		labels = append(labels, label)
	}
	return labels
}
