// Package render turns a tree plus its layout and resolved style into
// an ordered sequence of drawing commands, and defines the canvas
// contract those commands are replayed onto.
//
// Geometry computation (layout) and drawing are deliberately separate
// pure functions, so each can be tested without a rendering backend.
package render

import (
	"github.com/matzehuels/phylodraw/pkg/layout"
	"github.com/matzehuels/phylodraw/pkg/styles"
)

// Kind tags the drawing command variants.
type Kind int

const (
	// KindLine is a stroked polyline. Branch edges use the rectangular
	// elbow convention: one command per parent-child edge carrying the
	// elbow's three points.
	KindLine Kind = iota

	// KindText is a label anchored at a point with justification and
	// rotation.
	KindText
)

// Command is a single drawing instruction. Produced by Render, consumed
// only by a Canvas.
type Command struct {
	Kind Kind

	// Line fields
	Points []layout.Point
	Width  float64

	// Text fields
	Anchor layout.Point
	Text   string
	Size   float64
	HJust  float64
	VJust  float64
	Angle  float64 // degrees counter-clockwise

	Color styles.Color
}

// Line builds a polyline command.
func Line(points []layout.Point, width float64, color styles.Color) Command {
	return Command{Kind: KindLine, Points: points, Width: width, Color: color}
}

// Text builds a label command.
func Text(anchor layout.Point, s string, size float64, color styles.Color, hjust, vjust, angle float64) Command {
	return Command{
		Kind:   KindText,
		Anchor: anchor,
		Text:   s,
		Size:   size,
		Color:  color,
		HJust:  hjust,
		VJust:  vjust,
		Angle:  angle,
	}
}

// Canvas is the minimal drawing contract an export backend implements.
// A canvas accumulates drawing operations after SetViewport establishes
// the mapping from plot coordinates to the output page, and serializes
// them on Bytes.
type Canvas interface {
	// SetViewport frames the plot extent onto a page of pageW x pageH
	// plotting units. Degenerate (zero-span) extents must be handled
	// without division by zero.
	SetViewport(extent layout.Extent, pageW, pageH float64)

	// Line strokes a polyline through points.
	Line(points []layout.Point, width float64, color styles.Color)

	// Text draws s anchored at anchor with the given size, color,
	// justification fractions and rotation in degrees.
	Text(anchor layout.Point, s string, size float64, color styles.Color, hjust, vjust, angle float64)

	// Bytes serializes the accumulated drawing into a document.
	Bytes() ([]byte, error)
}

// Draw replays commands onto a canvas in order.
func Draw(cmds []Command, c Canvas) {
	for _, cmd := range cmds {
		switch cmd.Kind {
		case KindLine:
			c.Line(cmd.Points, cmd.Width, cmd.Color)
		case KindText:
			c.Text(cmd.Anchor, cmd.Text, cmd.Size, cmd.Color, cmd.HJust, cmd.VJust, cmd.Angle)
		}
	}
}
