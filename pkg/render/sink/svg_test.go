package sink

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/phylodraw/pkg/errors"
	"github.com/matzehuels/phylodraw/pkg/layout"
	"github.com/matzehuels/phylodraw/pkg/styles"
)

var testExtent = layout.Extent{MinX: 0, MaxX: 10, MinY: 0, MaxY: 5}

func testColor(t *testing.T, value string) styles.Color {
	t.Helper()
	c, err := styles.ParseColor(value)
	if err != nil {
		t.Fatalf("ParseColor(%q) error = %v", value, err)
	}
	return c
}

func TestSVGWellFormed(t *testing.T) {
	c := NewSVG()
	c.SetViewport(testExtent, 20, 10)
	c.Line([]layout.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}}, 1.5, testColor(t, "dark green"))
	c.Text(layout.Point{X: 5, Y: 5}, "A & B <tip>", 3, testColor(t, "blue"), 0, 0.5, 0)

	data, err := c.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	// The document must be parseable XML with properly escaped text.
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		if _, err := dec.Token(); err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("invalid XML: %v", err)
		}
	}

	svg := string(data)
	if !strings.Contains(svg, "<polyline") {
		t.Error("missing polyline element")
	}
	if !strings.Contains(svg, "#006400") {
		t.Error("missing branch color")
	}
	if !strings.Contains(svg, "A &amp; B &lt;tip&gt;") {
		t.Error("label was not XML-escaped")
	}
}

func TestSVGViewportRequired(t *testing.T) {
	c := NewSVG()
	_, err := c.Bytes()
	if err == nil {
		t.Fatal("Bytes() succeeded without a viewport")
	}
	if !errors.Is(err, errors.ErrCodeExport) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeExport)
	}
}

func TestSVGDegenerateExtent(t *testing.T) {
	// A single-point layout has zero span on both axes; projection must
	// not divide by zero.
	c := NewSVG()
	c.SetViewport(layout.Extent{MinX: 1, MaxX: 1, MinY: 2, MaxY: 2}, 20, 10)
	c.Text(layout.Point{X: 1, Y: 2}, "A", 3, testColor(t, "blue"), 0, 0.5, 0)

	data, err := c.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if strings.Contains(string(data), "NaN") || strings.Contains(string(data), "Inf") {
		t.Errorf("document contains non-finite coordinates:\n%s", data)
	}
}

func TestSVGThemeBackground(t *testing.T) {
	theme, err := styles.LookupTheme("tree2")
	if err != nil {
		t.Fatal(err)
	}

	c := NewSVG(WithTheme(theme))
	c.SetViewport(testExtent, 20, 10)
	data, err := c.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	svg := string(data)
	if !strings.Contains(svg, "<rect") || !strings.Contains(svg, "#ffffff") {
		t.Error("tree2 theme should paint a white background")
	}
	if !strings.Contains(svg, "<line") {
		t.Error("tree2 theme should draw the depth axis")
	}
}

func TestSVGBlankTheme(t *testing.T) {
	theme, err := styles.LookupTheme("tree")
	if err != nil {
		t.Fatal(err)
	}

	c := NewSVG(WithTheme(theme))
	c.SetViewport(testExtent, 20, 10)
	data, err := c.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	if strings.Contains(string(data), "<rect") {
		t.Error("blank theme should not paint a background")
	}
}

func TestSVGYAxisFlipped(t *testing.T) {
	// Plot Y grows upward; SVG Y grows downward. A point at the extent's
	// top must project near the page top (small SVG y).
	c := NewSVG()
	c.SetViewport(testExtent, 10, 10)

	topX, topY := c.project(layout.Point{X: 0, Y: 5})
	botX, botY := c.project(layout.Point{X: 0, Y: 0})

	if topX != botX {
		t.Errorf("X changed under projection: %v vs %v", topX, botX)
	}
	if topY >= botY {
		t.Errorf("plot top projected at y=%v, below plot bottom y=%v", topY, botY)
	}
}

func TestSVGTextJustification(t *testing.T) {
	tests := []struct {
		hjust  float64
		anchor string
	}{
		{0, "start"},
		{0.5, "middle"},
		{1, "end"},
	}

	for _, tt := range tests {
		c := NewSVG()
		c.SetViewport(testExtent, 20, 10)
		c.Text(layout.Point{X: 5, Y: 2}, "A", 3, testColor(t, "blue"), tt.hjust, 0.5, 0)

		data, err := c.Bytes()
		if err != nil {
			t.Fatalf("Bytes() error = %v", err)
		}
		if !strings.Contains(string(data), `text-anchor="`+tt.anchor+`"`) {
			t.Errorf("hjust %v: missing text-anchor %q", tt.hjust, tt.anchor)
		}
	}
}

func TestSVGRotation(t *testing.T) {
	c := NewSVG()
	c.SetViewport(testExtent, 20, 10)
	c.Text(layout.Point{X: 5, Y: 2}, "A", 3, testColor(t, "blue"), 0, 0.5, 45)

	data, err := c.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !strings.Contains(string(data), "rotate(-45.0") {
		t.Error("missing rotation transform")
	}
}
