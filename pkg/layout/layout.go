// Package layout computes 2-D coordinates for every node of a parsed
// tree, producing the geometry that the renderer turns into drawing
// commands.
//
// The placement is the standard recursive dendrogram rule: tips receive
// strictly increasing integer ranks on the secondary axis in document
// order, internal nodes sit at the arithmetic mean of their children's
// secondary coordinates, and the depth coordinate grows from the root
// by one level (cladogram) or by branch length (phylogram). Both rules
// together guarantee no branch crossings and a deterministic,
// input-order-stable diagram.
package layout

import (
	"github.com/matzehuels/phylodraw/pkg/newick"
)

// Mode selects how the depth coordinate is assigned.
type Mode string

const (
	// Cladogram spaces nodes by topological depth only, ignoring any
	// recorded branch lengths.
	Cladogram Mode = "cladogram"

	// Phylogram positions nodes by cumulative branch length from the
	// root, substituting a configurable default unit for absent
	// lengths.
	Phylogram Mode = "phylogram"
)

// Orientation selects which plot axis carries depth.
type Orientation string

const (
	// Horizontal puts depth on X and tip rank on Y, so tips stack
	// vertically. This is the default presentation.
	Horizontal Orientation = "horizontal"

	// Vertical swaps the axes: depth on Y, tip rank on X.
	Vertical Orientation = "vertical"
)

// DefaultUnit is the branch length substituted for absent lengths in
// phylogram mode when no override is configured.
const DefaultUnit = 1.0

// Point is a node position in the abstract plotting coordinate space.
type Point struct {
	X, Y float64
}

// Extent is the bounding box of a layout, used for viewport framing.
type Extent struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// SpanX returns the horizontal span of the extent.
func (e Extent) SpanX() float64 { return e.MaxX - e.MinX }

// SpanY returns the vertical span of the extent.
func (e Extent) SpanY() float64 { return e.MaxY - e.MinY }

// Union widens the extent to encompass other. Limits act as a floor and
// ceiling on the extent, never a clip that would discard positions.
func (e Extent) Union(other Extent) Extent {
	return Extent{
		MinX: min(e.MinX, other.MinX),
		MaxX: max(e.MaxX, other.MaxX),
		MinY: min(e.MinY, other.MinY),
		MaxY: max(e.MaxY, other.MaxY),
	}
}

// Layout maps node identity to position, together with the overall
// bounding extent and the tip order the placement produced.
type Layout struct {
	// Points holds exactly one position per tree node, keyed by node ID.
	Points map[int]Point

	// Extent is the min/max of all coordinates on each axis, widened
	// by any configured expansion limits.
	Extent Extent

	// TipOrder lists tip node IDs in document (rank) order.
	TipOrder []int

	// Mode and Orientation record how the layout was produced so the
	// renderer knows which axis carries depth.
	Mode        Mode
	Orientation Orientation
}

// Option configures Build.
type Option func(*config)

type config struct {
	mode        Mode
	orientation Orientation
	defaultUnit float64
	xLimits     *[2]float64
	yLimits     *[2]float64
}

// WithMode selects cladogram or phylogram depth assignment.
func WithMode(m Mode) Option {
	return func(c *config) { c.mode = m }
}

// WithOrientation selects which axis carries depth.
func WithOrientation(o Orientation) Option {
	return func(c *config) { c.orientation = o }
}

// WithDefaultUnit overrides the branch length substituted for absent
// lengths in phylogram mode.
func WithDefaultUnit(u float64) Option {
	return func(c *config) { c.defaultUnit = u }
}

// WithXLimits widens the extent to cover at least [lo, hi] on X.
func WithXLimits(lo, hi float64) Option {
	return func(c *config) { c.xLimits = &[2]float64{lo, hi} }
}

// WithYLimits widens the extent to cover at least [lo, hi] on Y.
func WithYLimits(lo, hi float64) Option {
	return func(c *config) { c.yLimits = &[2]float64{lo, hi} }
}

// Build computes the layout for a tree. Every node gets exactly one
// point; tips get strictly increasing secondary coordinates in document
// order. A single-node tree lays out at a single point with a
// degenerate (zero-span) extent.
func Build(t *newick.Tree, opts ...Option) Layout {
	cfg := config{
		mode:        Cladogram,
		orientation: Horizontal,
		defaultUnit: DefaultUnit,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	depths := make(map[int]float64, t.NodeCount())
	secondary := make(map[int]float64, t.NodeCount())

	assignDepths(t.Root, cfg, depths)

	rank := 0
	tipOrder := make([]int, 0, t.TipCount())
	assignSecondary(t.Root, secondary, &rank, &tipOrder)

	points := make(map[int]Point, t.NodeCount())
	for _, n := range t.Nodes() {
		points[n.ID] = orient(cfg.orientation, depths[n.ID], secondary[n.ID])
	}

	extent := boundingExtent(points)
	if cfg.xLimits != nil {
		extent = extent.Union(Extent{
			MinX: cfg.xLimits[0], MaxX: cfg.xLimits[1],
			MinY: extent.MinY, MaxY: extent.MaxY,
		})
	}
	if cfg.yLimits != nil {
		extent = extent.Union(Extent{
			MinX: extent.MinX, MaxX: extent.MaxX,
			MinY: cfg.yLimits[0], MaxY: cfg.yLimits[1],
		})
	}

	return Layout{
		Points:      points,
		Extent:      extent,
		TipOrder:    tipOrder,
		Mode:        cfg.mode,
		Orientation: cfg.orientation,
	}
}

// assignDepths walks the tree in pre-order. Cladogram mode advances one
// level per edge regardless of recorded lengths. Phylogram mode
// accumulates branch lengths, substituting the default unit when a
// length is absent; the root contributes its own recorded length if it
// has one, without substitution, so a tree with only absent lengths
// behaves exactly like a cladogram with the default unit as spacing.
func assignDepths(root *newick.Node, cfg config, depths map[int]float64) {
	rootDepth := 0.0
	if cfg.mode == Phylogram && root.Length != nil {
		rootDepth = *root.Length
	}

	var walk func(n *newick.Node, depth float64)
	walk = func(n *newick.Node, depth float64) {
		depths[n.ID] = depth
		for _, c := range n.Children {
			step := 1.0
			if cfg.mode == Phylogram {
				step = cfg.defaultUnit
				if c.Length != nil {
					step = *c.Length
				}
			}
			walk(c, depth+step)
		}
	}
	walk(root, rootDepth)
}

// assignSecondary walks the tree in post-order: each tip takes the next
// integer rank, each internal node the mean of its children.
func assignSecondary(n *newick.Node, secondary map[int]float64, rank *int, tipOrder *[]int) {
	if n.IsTip() {
		secondary[n.ID] = float64(*rank)
		*rank++
		*tipOrder = append(*tipOrder, n.ID)
		return
	}

	sum := 0.0
	for _, c := range n.Children {
		assignSecondary(c, secondary, rank, tipOrder)
		sum += secondary[c.ID]
	}
	secondary[n.ID] = sum / float64(len(n.Children))
}

// orient maps (depth, secondary) onto plot axes.
func orient(o Orientation, depth, secondary float64) Point {
	if o == Vertical {
		return Point{X: secondary, Y: depth}
	}
	return Point{X: depth, Y: secondary}
}

func boundingExtent(points map[int]Point) Extent {
	first := true
	var e Extent
	for _, p := range points {
		if first {
			e = Extent{MinX: p.X, MaxX: p.X, MinY: p.Y, MaxY: p.Y}
			first = false
			continue
		}
		e.MinX = min(e.MinX, p.X)
		e.MaxX = max(e.MaxX, p.X)
		e.MinY = min(e.MinY, p.Y)
		e.MaxY = max(e.MaxY, p.Y)
	}
	return e
}
