// Package sink provides the export canvases: SVG (native), PNG
// (rasterized with gg), and PDF (SVG piped through rsvg-convert).
//
// Every canvas implements render.Canvas. Page dimensions are given in
// plotting units, interpreted as inches at 72 points per unit; style
// sizes (font size, line width) follow the ggplot convention of
// millimetres and are converted to points on output.
package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/phylodraw/pkg/errors"
	"github.com/matzehuels/phylodraw/pkg/layout"
	"github.com/matzehuels/phylodraw/pkg/styles"
)

const (
	// pointsPerUnit converts page plotting units to typographic points.
	pointsPerUnit = 72.0

	// mmToPt converts style sizes (millimetres) to points.
	mmToPt = 72.0 / 25.4

	// degeneratePad widens a zero-span extent axis so single-point
	// layouts still frame without division by zero.
	degeneratePad = 0.5
)

// SVGOption configures an SVG canvas.
type SVGOption func(*SVGCanvas)

// WithTheme applies a presentation theme (background, depth axis).
func WithTheme(t styles.Theme) SVGOption {
	return func(c *SVGCanvas) { c.theme = t }
}

// SVGCanvas accumulates drawing commands and serializes them into an
// SVG document. Plot coordinates have Y pointing up; SVG has Y pointing
// down, so projection flips the vertical axis.
type SVGCanvas struct {
	theme styles.Theme

	extent layout.Extent
	width  float64 // page width in points
	height float64 // page height in points
	framed bool

	body bytes.Buffer
}

// NewSVG returns an empty SVG canvas.
func NewSVG(opts ...SVGOption) *SVGCanvas {
	c := &SVGCanvas{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetViewport frames the plot extent onto a pageW x pageH page.
// Zero-span axes are padded so projection never divides by zero.
func (c *SVGCanvas) SetViewport(extent layout.Extent, pageW, pageH float64) {
	c.extent = padDegenerate(extent)
	c.width = pageW * pointsPerUnit
	c.height = pageH * pointsPerUnit
	c.framed = true
}

// Line strokes a polyline through points.
func (c *SVGCanvas) Line(points []layout.Point, width float64, color styles.Color) {
	if len(points) < 2 {
		return
	}
	var pts bytes.Buffer
	for i, p := range points {
		if i > 0 {
			pts.WriteByte(' ')
		}
		x, y := c.project(p)
		fmt.Fprintf(&pts, "%.2f,%.2f", x, y)
	}
	fmt.Fprintf(&c.body,
		"  <polyline points=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%.2f\" stroke-linecap=\"round\" stroke-linejoin=\"round\"/>\n",
		pts.String(), color.Hex, width*mmToPt)
}

// Text draws s anchored at anchor. Positive angles rotate
// counter-clockwise in plot space, which is clockwise-negative in the
// flipped SVG space.
func (c *SVGCanvas) Text(anchor layout.Point, s string, size float64, color styles.Color, hjust, vjust, angle float64) {
	x, y := c.project(anchor)

	transform := ""
	if angle != 0 {
		transform = fmt.Sprintf(" transform=\"rotate(%.1f %.2f %.2f)\"", -angle, x, y)
	}

	fmt.Fprintf(&c.body,
		"  <text x=\"%.2f\" y=\"%.2f\" font-size=\"%.2f\" fill=\"%s\" text-anchor=\"%s\" dominant-baseline=\"%s\"%s>%s</text>\n",
		x, y, size*mmToPt, color.Hex, textAnchor(hjust), baseline(vjust), transform, escapeXML(s))
}

// Bytes serializes the document.
func (c *SVGCanvas) Bytes() ([]byte, error) {
	if !c.framed {
		return nil, errors.New(errors.ErrCodeExport, "canvas viewport was never set")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %.1f %.1f\" width=\"%.0f\" height=\"%.0f\">\n",
		c.width, c.height, c.width, c.height)

	if c.theme.Background != "" {
		fmt.Fprintf(&buf, "  <rect x=\"0\" y=\"0\" width=\"%.1f\" height=\"%.1f\" fill=\"%s\"/>\n",
			c.width, c.height, c.theme.Background)
	}

	buf.Write(c.body.Bytes())

	if c.theme.DepthAxis {
		fmt.Fprintf(&buf,
			"  <line x1=\"0\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"#666666\" stroke-width=\"0.75\"/>\n",
			c.height, c.width, c.height)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// project maps a plot point into page points, flipping Y.
func (c *SVGCanvas) project(p layout.Point) (float64, float64) {
	x := (p.X - c.extent.MinX) / c.extent.SpanX() * c.width
	y := c.height - (p.Y-c.extent.MinY)/c.extent.SpanY()*c.height
	return x, y
}

func padDegenerate(e layout.Extent) layout.Extent {
	if e.SpanX() == 0 {
		e.MinX -= degeneratePad
		e.MaxX += degeneratePad
	}
	if e.SpanY() == 0 {
		e.MinY -= degeneratePad
		e.MaxY += degeneratePad
	}
	return e
}

func textAnchor(hjust float64) string {
	switch {
	case hjust < 0.25:
		return "start"
	case hjust < 0.75:
		return "middle"
	default:
		return "end"
	}
}

func baseline(vjust float64) string {
	switch {
	case vjust < 0.25:
		return "auto"
	case vjust < 0.75:
		return "central"
	default:
		return "hanging"
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
