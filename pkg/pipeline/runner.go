package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/phylodraw/pkg/errors"
	"github.com/matzehuels/phylodraw/pkg/layout"
	"github.com/matzehuels/phylodraw/pkg/newick"
	"github.com/matzehuels/phylodraw/pkg/render"
	"github.com/matzehuels/phylodraw/pkg/render/nodelink"
	"github.com/matzehuels/phylodraw/pkg/render/sink"
	"github.com/matzehuels/phylodraw/pkg/styles"
)

// Runner executes the rendering pipeline. It is stateless except for
// the logger, so one Runner can serve many runs as long as each run
// gets its own Options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete pipeline, short-circuiting on the first
// failure and propagating its kind and message unchanged. On success,
// the rendered artifacts are written to the resolved output paths.
//
// An export failure does not discard the run: the Result carries the
// complete in-memory render with ExportErr set, and the caller decides
// how to surface the partial success.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Parse
	parseStart := time.Now()
	tree, err := newick.ParseFile(opts.Input)
	if err != nil {
		return nil, err
	}
	result.Tree = tree
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = tree.NodeCount()
	result.Stats.TipCount = tree.TipCount()

	opts.Logger.Info("parsed tree",
		"nodes", tree.NodeCount(),
		"tips", tree.TipCount(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Style. Resolving before layout lets the extent union
	// use validated limit pairs.
	cfg, err := styles.Resolve(opts.Style)
	if err != nil {
		return nil, err
	}
	result.Style = cfg

	if opts.View == ViewNodelink {
		return r.renderNodelink(result, opts)
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	l := layout.Build(tree, opts.layoutOptions(cfg)...)
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)

	opts.Logger.Info("computed layout",
		"mode", opts.Mode,
		"points", len(l.Points),
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	result.Commands = render.Render(tree, l, cfg)
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered commands",
		"commands", len(result.Commands),
		"duration", result.Stats.RenderTime)

	// Stage 5: Export
	r.exportTree(result, opts)
	return result, nil
}

// exportTree serializes the drawing commands in every requested format
// and writes the documents. The first failure is recorded on the
// Result; formats already rendered stay available.
func (r *Runner) exportTree(result *Result, opts Options) {
	for _, format := range opts.Formats {
		canvas, err := newCanvas(format, result.Style.Theme, opts.Scale)
		if err != nil {
			result.ExportErr = err
			return
		}

		canvas.SetViewport(result.Layout.Extent, opts.PageWidth, opts.PageHeight)
		render.Draw(result.Commands, canvas)

		data, err := canvas.Bytes()
		if err != nil {
			result.ExportErr = err
			return
		}
		result.Artifacts[format] = data

		if err := r.writeArtifact(result, opts, format, data); err != nil {
			result.ExportErr = err
			return
		}
	}
}

// renderNodelink renders the Graphviz alternative view. Geometry is
// delegated to Graphviz, so the layout and command stages are skipped.
func (r *Runner) renderNodelink(result *Result, opts Options) (*Result, error) {
	renderStart := time.Now()
	dot := nodelink.ToDOT(result.Tree)

	for _, format := range opts.Formats {
		var data []byte
		var err error
		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		}
		if err != nil {
			result.ExportErr = err
			return result, nil
		}
		result.Artifacts[format] = data

		if err := r.writeArtifact(result, opts, format, data); err != nil {
			result.ExportErr = err
			return result, nil
		}
	}

	result.Stats.RenderTime = time.Since(renderStart)
	return result, nil
}

// writeArtifact writes one rendered document, recording the resolved
// output path. Write failures are EXPORT_ERROR.
func (r *Runner) writeArtifact(result *Result, opts Options, format string, data []byte) error {
	path := outputPath(opts, format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeExport, err, "write %s", path)
	}
	result.OutputPaths = append(result.OutputPaths, path)
	opts.Logger.Info("wrote output", "path", path, "bytes", len(data))
	return nil
}

// newCanvas constructs the export canvas for a format.
func newCanvas(format string, theme styles.Theme, scale float64) (render.Canvas, error) {
	switch format {
	case FormatSVG:
		return sink.NewSVG(sink.WithTheme(theme)), nil
	case FormatPNG:
		opts := []sink.PNGOption{sink.WithPNGTheme(theme)}
		if scale > 0 {
			opts = append(opts, sink.WithScale(scale))
		}
		return sink.NewPNG(opts...), nil
	case FormatPDF:
		return sink.NewPDF(sink.WithTheme(theme)), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported format %q", format)
}

// outputPath resolves the output file for a format. An explicit output
// keeps its name for a single format; with several formats, or no
// output at all, the path derives from the base name.
func outputPath(opts Options, format string) string {
	if opts.Output != "" && len(opts.Formats) == 1 {
		return opts.Output
	}
	base := opts.Output
	if base == "" {
		base = strings.TrimSuffix(opts.Input, filepath.Ext(opts.Input))
	} else if ext := filepath.Ext(base); ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}
