package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/phylodraw/pkg/errors"
	"github.com/matzehuels/phylodraw/pkg/pipeline"
	"github.com/matzehuels/phylodraw/pkg/styles"
)

// renderOpts holds the command-line flags for the render command.
// These options control layout, styling, and output formats.
type renderOpts struct {
	output      string  // output file path (or base path for multiple outputs)
	config      string  // TOML style configuration file
	mode        string  // layout mode: "cladogram" or "phylogram"
	unit        float64 // substituted for absent branch lengths in phylogram mode
	orientation string  // "horizontal" or "vertical"
	view        string  // visualization type: "tree" or "nodelink"
	formats     string  // comma-separated output formats
	width       float64 // page width in plotting units
	height      float64 // page height in plotting units
	scale       float64 // PNG oversampling factor

	// Style overrides applied on top of the config file.
	tipLabelSize  float64
	tipLabelColor string
	branchSize    float64
	branchColor   string
	theme         string
}

// newRenderCmd creates the render command for generating tree diagrams.
// It supports two visualization types (tree, nodelink) and three output
// formats (SVG, PDF, PNG).
//
// Default settings:
//   - mode: phylogram (positions follow cumulative branch length)
//   - view: tree (rectangular dendrogram)
//   - format: svg
//   - page: 20x10 units
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		unit:  1.0,
		scale: 2.0,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a Newick tree to SVG, PDF, or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML style configuration file")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "layout mode: phylogram (default), cladogram")
	cmd.Flags().Float64Var(&opts.unit, "unit", opts.unit, "unit substituted for absent branch lengths")
	cmd.Flags().StringVar(&opts.orientation, "orientation", "", "depth axis: horizontal (default), vertical")
	cmd.Flags().StringVarP(&opts.view, "type", "t", "", "visualization type: tree (default), nodelink")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), pdf, png (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "page width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "page height")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG oversampling factor")

	addStyleFlags(cmd, &opts)

	return cmd
}

// addStyleFlags registers the style override flags applied on top of
// the config file values.
func addStyleFlags(cmd *cobra.Command, opts *renderOpts) {
	cmd.Flags().Float64Var(&opts.tipLabelSize, "tip-label-size", 0, "tip label size in mm")
	cmd.Flags().StringVar(&opts.tipLabelColor, "tip-label-color", "", "tip label color (name or hex)")
	cmd.Flags().Float64Var(&opts.branchSize, "branch-size", 0, "branch line width in mm")
	cmd.Flags().StringVar(&opts.branchColor, "branch-color", "", "branch line color (name or hex)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "presentation theme: tree, tree2 (default), classic")
}

// runRender assembles pipeline options from the config file and flags,
// executes the pipeline, and reports the written files.
func runRender(ctx context.Context, cmd *cobra.Command, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	style, err := loadStyle(opts.config)
	if err != nil {
		return err
	}
	applyStyleFlags(cmd, opts, &style)

	prog := newProgress(logger)
	runner := pipeline.NewRunner(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:       input,
		Output:      opts.output,
		Mode:        opts.mode,
		DefaultUnit: opts.unit,
		Orientation: opts.orientation,
		Style:       style,
		View:        opts.view,
		Formats:     parseFormats(opts.formats),
		PageWidth:   opts.width,
		PageHeight:  opts.height,
		Scale:       opts.scale,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d nodes", result.Stats.NodeCount))

	if result.ExportErr != nil {
		printWarning("render succeeded but export failed: %s", errors.UserMessage(result.ExportErr))
		for _, path := range result.OutputPaths {
			printFile(path)
		}
		return result.ExportErr
	}

	printSuccess("Rendered %s", input)
	printDetail("%d tips, %d nodes", result.Stats.TipCount, result.Stats.NodeCount)
	for _, path := range result.OutputPaths {
		printFile(path)
	}
	return nil
}

// loadStyle returns the reference style, overlaid with values from the
// TOML configuration file when one is given. Unknown keys in the file
// are INVALID_CONFIG errors so typos do not silently fall back to
// defaults.
func loadStyle(path string) (styles.Raw, error) {
	style := styles.Default()
	if path == "" {
		return style, nil
	}

	meta, err := toml.DecodeFile(path, &style)
	if err != nil {
		return style, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load style config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return style, errors.New(errors.ErrCodeInvalidConfig,
			"unknown style keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return style, nil
}

// applyStyleFlags overrides config file values with explicitly set
// flags. Unset flags leave the file (or default) values untouched.
func applyStyleFlags(cmd *cobra.Command, opts *renderOpts, style *styles.Raw) {
	if cmd.Flags().Changed("tip-label-size") {
		style.TipLabelSize = opts.tipLabelSize
	}
	if cmd.Flags().Changed("tip-label-color") {
		style.TipLabelColor = opts.tipLabelColor
	}
	if cmd.Flags().Changed("branch-size") {
		style.BranchSize = opts.branchSize
	}
	if cmd.Flags().Changed("branch-color") {
		style.BranchColor = opts.branchColor
	}
	if cmd.Flags().Changed("theme") {
		style.Theme = opts.theme
	}
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, the pipeline default applies.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
