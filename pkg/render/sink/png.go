package sink

import (
	"bytes"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/phylodraw/pkg/errors"
	"github.com/matzehuels/phylodraw/pkg/layout"
	"github.com/matzehuels/phylodraw/pkg/styles"
)

// DefaultScale is the raster oversampling factor (2x resolution).
const DefaultScale = 2.0

var (
	labelFont     *truetype.Font
	labelFontErr  error
	labelFontOnce sync.Once
)

// loadFont parses the embedded Go Regular face once.
func loadFont() (*truetype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = truetype.Parse(goregular.TTF)
	})
	return labelFont, labelFontErr
}

// PNGOption configures a PNG canvas.
type PNGOption func(*PNGCanvas)

// WithPNGTheme applies a presentation theme.
func WithPNGTheme(t styles.Theme) PNGOption {
	return func(c *PNGCanvas) { c.theme = t }
}

// WithScale sets the raster scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(c *PNGCanvas) {
		if s > 0 {
			c.scale = s
		}
	}
}

// PNGCanvas rasterizes drawing commands with gg. All geometry is
// projected to page points and multiplied by the scale factor, so text
// faces render at the correct pixel size without a context transform.
type PNGCanvas struct {
	theme styles.Theme
	scale float64

	extent layout.Extent
	width  float64 // page width in points
	height float64 // page height in points
	framed bool

	dc  *gg.Context
	err error
}

// NewPNG returns an empty PNG canvas.
func NewPNG(opts ...PNGOption) *PNGCanvas {
	c := &PNGCanvas{scale: DefaultScale}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetViewport frames the plot extent and allocates the raster context.
func (c *PNGCanvas) SetViewport(extent layout.Extent, pageW, pageH float64) {
	c.extent = padDegenerate(extent)
	c.width = pageW * pointsPerUnit
	c.height = pageH * pointsPerUnit
	c.framed = true

	c.dc = gg.NewContext(int(c.width*c.scale), int(c.height*c.scale))
	if c.theme.Background != "" {
		bg, err := styles.ParseColor(c.theme.Background)
		if err != nil {
			c.err = errors.Wrap(errors.ErrCodeExport, err, "theme background")
		} else {
			c.dc.SetRGB(bg.R, bg.G, bg.B)
			c.dc.Clear()
		}
	}
	if c.theme.DepthAxis {
		c.dc.SetRGB(0.4, 0.4, 0.4)
		c.dc.SetLineWidth(0.75 * c.scale)
		c.dc.DrawLine(0, c.height*c.scale, c.width*c.scale, c.height*c.scale)
		c.dc.Stroke()
	}
}

// Line strokes a polyline through points.
func (c *PNGCanvas) Line(points []layout.Point, width float64, color styles.Color) {
	if c.dc == nil || len(points) < 2 {
		return
	}
	c.dc.SetRGB(color.R, color.G, color.B)
	c.dc.SetLineWidth(width * mmToPt * c.scale)
	for i, p := range points {
		x, y := c.project(p)
		if i == 0 {
			c.dc.MoveTo(x, y)
		} else {
			c.dc.LineTo(x, y)
		}
	}
	c.dc.Stroke()
}

// Text draws s anchored at anchor, rotated about the anchor point.
func (c *PNGCanvas) Text(anchor layout.Point, s string, size float64, color styles.Color, hjust, vjust, angle float64) {
	if c.dc == nil {
		return
	}

	f, err := loadFont()
	if err != nil {
		c.err = errors.Wrap(errors.ErrCodeExport, err, "load label font")
		return
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size * mmToPt * c.scale,
		Hinting: font.HintingFull,
	})
	c.dc.SetFontFace(face)
	c.dc.SetRGB(color.R, color.G, color.B)

	x, y := c.project(anchor)
	if angle != 0 {
		c.dc.Push()
		c.dc.RotateAbout(gg.Radians(-angle), x, y)
		c.dc.DrawStringAnchored(s, x, y, hjust, vjust)
		c.dc.Pop()
		return
	}
	c.dc.DrawStringAnchored(s, x, y, hjust, vjust)
}

// Bytes encodes the raster as PNG.
func (c *PNGCanvas) Bytes() ([]byte, error) {
	if !c.framed || c.dc == nil {
		return nil, errors.New(errors.ErrCodeExport, "canvas viewport was never set")
	}
	if c.err != nil {
		return nil, c.err
	}

	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "encode png")
	}
	return buf.Bytes(), nil
}

// project maps a plot point into scaled pixels, flipping Y.
func (c *PNGCanvas) project(p layout.Point) (float64, float64) {
	x := (p.X - c.extent.MinX) / c.extent.SpanX() * c.width
	y := c.height - (p.Y-c.extent.MinY)/c.extent.SpanY()*c.height
	return x * c.scale, y * c.scale
}
