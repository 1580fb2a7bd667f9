package render

import (
	"github.com/matzehuels/phylodraw/pkg/layout"
	"github.com/matzehuels/phylodraw/pkg/newick"
	"github.com/matzehuels/phylodraw/pkg/styles"
)

// labelMarginFrac is the tip label offset along the depth axis,
// as a fraction of the layout's depth span.
const labelMarginFrac = 0.01

// minLabelMargin keeps labels off their tips when the depth span is
// degenerate (single-node trees).
const minLabelMargin = 0.05

// Render produces the ordered drawing commands for a tree: one elbow
// line command per parent-child edge in pre-order, then one text
// command per labeled tip in document order. The order is deterministic
// so output is reproducible and testable. Internal-node labels are
// never drawn; tips without a label produce no text command.
func Render(t *newick.Tree, l layout.Layout, cfg *styles.Config) []Command {
	cmds := make([]Command, 0, t.NodeCount()+t.TipCount())

	var edges func(n *newick.Node)
	edges = func(n *newick.Node) {
		parent := l.Points[n.ID]
		for _, c := range n.Children {
			child := l.Points[c.ID]
			cmds = append(cmds, Line(elbow(l.Orientation, parent, child), cfg.BranchSize, cfg.BranchColor))
			edges(c)
		}
	}
	edges(t.Root)

	margin := labelMargin(l)
	for _, tip := range t.Tips() {
		if tip.Label == "" {
			continue
		}
		anchor := offsetOutward(l.Orientation, l.Points[tip.ID], margin)
		cmds = append(cmds, Text(anchor, tip.Label, cfg.TipLabelSize, cfg.TipLabelColor,
			cfg.HJust, cfg.VJust, cfg.Angle))
	}

	return cmds
}

// elbow builds the rectangular connector for one edge: a depth-axis
// segment at the parent's secondary coordinate from the parent's depth
// to the child's, then a secondary-axis segment at the child's depth.
func elbow(o layout.Orientation, parent, child layout.Point) []layout.Point {
	if o == layout.Vertical {
		return []layout.Point{parent, {X: parent.X, Y: child.Y}, child}
	}
	return []layout.Point{parent, {X: child.X, Y: parent.Y}, child}
}

// offsetOutward nudges a tip anchor away from the root along the depth
// axis so the label clears the branch end.
func offsetOutward(o layout.Orientation, p layout.Point, margin float64) layout.Point {
	if o == layout.Vertical {
		return layout.Point{X: p.X, Y: p.Y + margin}
	}
	return layout.Point{X: p.X + margin, Y: p.Y}
}

func labelMargin(l layout.Layout) float64 {
	span := l.Extent.SpanX()
	if l.Orientation == layout.Vertical {
		span = l.Extent.SpanY()
	}
	return max(minLabelMargin, span*labelMarginFrac)
}
