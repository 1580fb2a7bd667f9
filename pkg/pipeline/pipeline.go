// Package pipeline provides the core rendering pipeline for phylodraw.
//
// This package implements the complete parse → layout → style → render
// → export pipeline behind the CLI. Centralizing it keeps behavior
// consistent for every entry point and makes the stages independently
// testable.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Parse: read a Newick description into an immutable tree
//  2. Style: validate and normalize the visual configuration
//  3. Layout: compute coordinates for every node
//  4. Render: produce the ordered drawing commands
//  5. Export: replay the commands onto a canvas and write the document
//
// Stages fail fast: a malformed tree or invalid style aborts the run
// with the failure's kind and message propagated unchanged. The one
// exception is export — a render that succeeded in memory is kept on
// the Result even when writing the output document fails, so the
// caller can distinguish "nothing to show" from "could not save".
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/phylodraw/pkg/errors"
	"github.com/matzehuels/phylodraw/pkg/layout"
	"github.com/matzehuels/phylodraw/pkg/newick"
	"github.com/matzehuels/phylodraw/pkg/render"
	"github.com/matzehuels/phylodraw/pkg/styles"
)

// Default values shared by every entry point.
const (
	// DefaultPageWidth and DefaultPageHeight are the output page
	// dimensions in plotting units.
	DefaultPageWidth  = 20.0
	DefaultPageHeight = 10.0

	// DefaultView is the dendrogram view.
	DefaultView = ViewTree

	// DefaultMode positions nodes by cumulative branch length.
	DefaultMode = string(layout.Phylogram)
)

// View constants for the supported visualization types.
const (
	ViewTree     = "tree"
	ViewNodelink = "nodelink"
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ValidViews is the set of supported visualization types.
var ValidViews = map[string]bool{
	ViewTree:     true,
	ViewNodelink: true,
}

// ValidModes is the set of supported layout modes.
var ValidModes = map[string]bool{
	string(layout.Cladogram): true,
	string(layout.Phylogram): true,
}

// ValidOrientations is the set of supported axis orientations.
var ValidOrientations = map[string]bool{
	string(layout.Horizontal): true,
	string(layout.Vertical):   true,
}

// Options contains all configuration for the rendering pipeline.
type Options struct {
	// Input is the path to the Newick tree description.
	Input string

	// Output is the output file path, or a base path when several
	// formats are requested. Empty derives the path from Input.
	Output string

	// Layout options
	Mode        string  // "cladogram" or "phylogram"
	DefaultUnit float64 // substituted for absent lengths in phylogram mode
	Orientation string  // "horizontal" (vertical tips, default) or "vertical"

	// Style holds the raw visual configuration; the Style Resolver
	// validates it during Execute.
	Style styles.Raw

	// Render options
	View    string   // "tree" (dendrogram) or "nodelink" (Graphviz)
	Formats []string // output formats, default ["svg"]

	// Page dimensions in plotting units.
	PageWidth  float64
	PageHeight float64

	// Scale is the raster oversampling factor for PNG output.
	Scale float64

	// Logger receives stage progress. Defaults to a discarding logger.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the parsed tree.
	Tree *newick.Tree

	// Layout contains the computed node positions and extent.
	// Empty for the nodelink view, which delegates geometry to Graphviz.
	Layout layout.Layout

	// Style is the resolved visual configuration.
	Style *styles.Config

	// Commands is the ordered drawing command sequence (tree view only).
	Commands []render.Command

	// Artifacts contains rendered documents keyed by format.
	Artifacts map[string][]byte

	// OutputPaths lists the files written, in format order.
	OutputPaths []string

	// ExportErr records a serialization or write failure. When set,
	// the in-memory render above is still valid and complete.
	ExportErr error

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	TipCount   int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once. Option-surface violations are
// INVALID_CONFIG errors.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "input path is required")
	}

	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if !ValidModes[o.Mode] {
		return errors.New(errors.ErrCodeInvalidConfig,
			"layout_mode must be one of: cladogram, phylogram; got %q", o.Mode)
	}

	if o.DefaultUnit == 0 {
		o.DefaultUnit = layout.DefaultUnit
	}
	if o.DefaultUnit < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"default unit must be positive, got %v", o.DefaultUnit)
	}

	if o.Orientation == "" {
		o.Orientation = string(layout.Horizontal)
	}
	if !ValidOrientations[o.Orientation] {
		return errors.New(errors.ErrCodeInvalidConfig,
			"orientation must be one of: horizontal, vertical; got %q", o.Orientation)
	}

	if o.View == "" {
		o.View = DefaultView
	}
	if !ValidViews[o.View] {
		return errors.New(errors.ErrCodeInvalidConfig,
			"view must be one of: tree, nodelink; got %q", o.View)
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidConfig,
				"format must be one of: svg, png, pdf; got %q", f)
		}
	}

	if o.PageWidth == 0 {
		o.PageWidth = DefaultPageWidth
	}
	if o.PageHeight == 0 {
		o.PageHeight = DefaultPageHeight
	}
	if o.PageWidth < 0 || o.PageHeight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"page dimensions must be positive, got %vx%v", o.PageWidth, o.PageHeight)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// layoutOptions translates the validated options and style limits into
// layout engine options.
func (o *Options) layoutOptions(cfg *styles.Config) []layout.Option {
	return []layout.Option{
		layout.WithMode(layout.Mode(o.Mode)),
		layout.WithOrientation(layout.Orientation(o.Orientation)),
		layout.WithDefaultUnit(o.DefaultUnit),
		layout.WithXLimits(cfg.XLimits[0], cfg.XLimits[1]),
		layout.WithYLimits(cfg.YLimits[0], cfg.YLimits[1]),
	}
}
