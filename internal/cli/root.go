package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/phylodraw/pkg/buildinfo"
)

// Execute runs the phylodraw CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (parse, render),
// configures logging based on the --verbose flag, and executes the command
// tree. Cancelling ctx aborts a running command.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "phylodraw",
		Short:        "Phylodraw renders phylogenetic trees as diagrams",
		Long:         `Phylodraw is a CLI tool for parsing Newick tree descriptions and rendering them as publication-quality dendrograms in SVG, PDF, and PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newParseCmd())
	root.AddCommand(newRenderCmd())

	return root.ExecuteContext(ctx)
}
