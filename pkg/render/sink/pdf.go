package sink

import (
	"github.com/matzehuels/phylodraw/pkg/render"
)

// PDFCanvas draws onto an SVG canvas and converts the result to PDF on
// Bytes. The conversion shells out to rsvg-convert, so an EXPORT_ERROR
// is returned when librsvg is not installed.
type PDFCanvas struct {
	*SVGCanvas
}

// NewPDF returns an empty PDF canvas. SVG options (theme) pass through.
func NewPDF(opts ...SVGOption) *PDFCanvas {
	return &PDFCanvas{SVGCanvas: NewSVG(opts...)}
}

// Bytes serializes the accumulated drawing as PDF.
func (c *PDFCanvas) Bytes() ([]byte, error) {
	svg, err := c.SVGCanvas.Bytes()
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}
