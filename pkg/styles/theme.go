package styles

import (
	"sort"
	"strings"

	"github.com/matzehuels/phylodraw/pkg/errors"
)

// Theme is a presentation preset controlling the document background
// and whether a depth-axis line is drawn under the tree.
type Theme struct {
	Name       string
	Background string // "#rrggbb" fill, empty for transparent
	DepthAxis  bool   // draw a scale line along the depth axis
}

var themes = map[string]Theme{
	// Blank canvas, topology only.
	"tree": {Name: "tree"},

	// White background with a depth-axis line, the usual choice for
	// phylograms where branch lengths carry meaning.
	"tree2": {Name: "tree2", Background: "#ffffff", DepthAxis: true},

	// White background, no axis.
	"classic": {Name: "classic", Background: "#ffffff"},
}

// LookupTheme resolves a theme name, failing with INVALID_CONFIG for
// anything outside the supported set.
func LookupTheme(name string) (Theme, error) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, errors.New(errors.ErrCodeInvalidConfig,
			"unknown theme %q (supported: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return t, nil
}

// ThemeNames returns the supported theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
