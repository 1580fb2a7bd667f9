package sink

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/matzehuels/phylodraw/pkg/errors"
	"github.com/matzehuels/phylodraw/pkg/layout"
	"github.com/matzehuels/phylodraw/pkg/styles"
)

func TestPNGEncodes(t *testing.T) {
	c := NewPNG()
	c.SetViewport(testExtent, 4, 2)
	c.Line([]layout.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}}, 1.5, testColor(t, "dark green"))
	c.Text(layout.Point{X: 5, Y: 5}, "A", 3, testColor(t, "blue"), 0, 0.5, 0)

	data, err := c.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}

	// 4x2 page units at 72 points per unit, doubled by the default scale.
	bounds := img.Bounds()
	if bounds.Dx() != 576 || bounds.Dy() != 288 {
		t.Errorf("dimensions = %dx%d, want 576x288", bounds.Dx(), bounds.Dy())
	}
}

func TestPNGScale(t *testing.T) {
	c := NewPNG(WithScale(1))
	c.SetViewport(testExtent, 4, 2)

	data, err := c.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 288 || img.Bounds().Dy() != 144 {
		t.Errorf("dimensions = %dx%d, want 288x144", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestPNGViewportRequired(t *testing.T) {
	c := NewPNG()
	_, err := c.Bytes()
	if err == nil {
		t.Fatal("Bytes() succeeded without a viewport")
	}
	if !errors.Is(err, errors.ErrCodeExport) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeExport)
	}
}

func TestPNGBadThemeBackground(t *testing.T) {
	c := NewPNG(WithPNGTheme(styles.Theme{Name: "broken", Background: "#zzzzzz"}))
	c.SetViewport(testExtent, 2, 2)

	_, err := c.Bytes()
	if err == nil {
		t.Fatal("Bytes() succeeded with an unparseable theme background")
	}
	if !errors.Is(err, errors.ErrCodeExport) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeExport)
	}
}

func TestPNGDegenerateExtent(t *testing.T) {
	c := NewPNG()
	c.SetViewport(layout.Extent{MinX: 1, MaxX: 1, MinY: 2, MaxY: 2}, 2, 2)
	c.Text(layout.Point{X: 1, Y: 2}, "A", 3, testColor(t, "blue"), 0, 0.5, 0)

	if _, err := c.Bytes(); err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
}
