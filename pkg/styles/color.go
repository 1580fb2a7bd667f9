package styles

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/phylodraw/pkg/errors"
)

// Color is a resolved color value. Vector canvases use the normalized
// hex form; raster canvases use the 0..1 RGB components.
type Color struct {
	Name    string  // the value as supplied by the user
	Hex     string  // normalized "#rrggbb"
	R, G, B float64 // components in [0, 1]
}

// namedColors maps the color names accepted in configuration to hex
// values. The set follows the R/ggplot naming that the reference
// defaults ("blue", "dark green") come from; spaces and case are
// ignored during lookup.
var namedColors = map[string]string{
	"white":       "#ffffff",
	"black":       "#000000",
	"grey":        "#bebebe",
	"gray":        "#bebebe",
	"darkgrey":    "#a9a9a9",
	"darkgray":    "#a9a9a9",
	"lightgrey":   "#d3d3d3",
	"lightgray":   "#d3d3d3",
	"red":         "#ff0000",
	"darkred":     "#8b0000",
	"firebrick":   "#b22222",
	"salmon":      "#fa8072",
	"tomato":      "#ff6347",
	"orange":      "#ffa500",
	"gold":        "#ffd700",
	"yellow":      "#ffff00",
	"green":       "#00ff00",
	"darkgreen":   "#006400",
	"forestgreen": "#228b22",
	"olivedrab":   "#6b8e23",
	"blue":        "#0000ff",
	"darkblue":    "#00008b",
	"navy":        "#000080",
	"steelblue":   "#4682b4",
	"lightblue":   "#add8e6",
	"skyblue":     "#87ceeb",
	"cyan":        "#00ffff",
	"purple":      "#a020f0",
	"magenta":     "#ff00ff",
	"pink":        "#ffc0cb",
	"brown":       "#a52a2a",
}

// ParseColor resolves a user-supplied color value: either a recognized
// color name or a "#rrggbb" hex literal. Anything else is an
// INVALID_CONFIG error naming the value.
func ParseColor(value string) (Color, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), " ", ""))

	hex := key
	if !strings.HasPrefix(key, "#") {
		named, ok := namedColors[key]
		if !ok {
			return Color{}, errors.New(errors.ErrCodeInvalidConfig,
				"unknown color %q (use a known color name or #rrggbb)", value)
		}
		hex = named
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, errors.New(errors.ErrCodeInvalidConfig,
			"invalid color %q (use a known color name or #rrggbb)", value)
	}

	return Color{Name: value, Hex: c.Hex(), R: c.R, G: c.G, B: c.B}, nil
}
