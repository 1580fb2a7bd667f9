// Package nodelink renders a tree as a Graphviz node-link diagram, an
// alternative to the dendrogram view for inspecting topology.
package nodelink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/phylodraw/pkg/errors"
	"github.com/matzehuels/phylodraw/pkg/newick"
	"github.com/matzehuels/phylodraw/pkg/render"
)

// ToDOT converts a tree to Graphviz DOT format. Tips keep their labels;
// unlabeled nodes are drawn as small points. Edges carry the recorded
// branch length when one is present.
func ToDOT(t *newick.Tree) string {
	var buf bytes.Buffer
	buf.WriteString("digraph tree {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.1,0.05\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	for _, n := range t.Nodes() {
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, nodeAttrs(n))
	}

	buf.WriteString("\n")
	for _, n := range t.Nodes() {
		for _, c := range n.Children {
			if c.Length != nil {
				fmt.Fprintf(&buf, "  n%d -> n%d [label=\"%g\"];\n", n.ID, c.ID, *c.Length)
			} else {
				fmt.Fprintf(&buf, "  n%d -> n%d;\n", n.ID, c.ID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *newick.Node) string {
	if n.Label == "" {
		return `label="", shape=point, width=0.08`
	}
	return fmt.Sprintf("label=%q", n.Label)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

// RenderPDF renders a DOT graph to PDF by converting the Graphviz SVG
// output with rsvg-convert.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "render %s", format)
	}
	return buf.Bytes(), nil
}
