// Package styles validates and normalizes the visual configuration for
// a render: label and branch sizing, colors, expansion limits, label
// justification and rotation, and the presentation theme.
//
// All configuration sanity checks live here. The layout engine and the
// renderer assume a resolved Config is valid, so nothing downstream
// re-validates.
package styles

import (
	"github.com/matzehuels/phylodraw/pkg/errors"
)

// Raw holds user-supplied style values before validation, as they
// arrive from flags or a TOML configuration file.
type Raw struct {
	TipLabelSize  float64   `toml:"tip_label_size"`
	TipLabelColor string    `toml:"tip_label_color"`
	BranchSize    float64   `toml:"branch_size"`
	BranchColor   string    `toml:"branch_color"`
	XLimits       []float64 `toml:"x_limits"`
	YLimits       []float64 `toml:"y_limits"`
	HJust         float64   `toml:"hjust"`
	VJust         float64   `toml:"vjust"`
	Angle         float64   `toml:"angle"`
	Theme         string    `toml:"theme"`
}

// Default returns the reference style values.
func Default() Raw {
	return Raw{
		TipLabelSize:  3,
		TipLabelColor: "blue",
		BranchSize:    1.5,
		BranchColor:   "dark green",
		XLimits:       []float64{-10, 10},
		YLimits:       []float64{-5, 5},
		HJust:         0,
		VJust:         0.5,
		Angle:         0,
		Theme:         "tree2",
	}
}

// Config is the resolved, validated style configuration. It is
// constructed once per render by Resolve and immutable thereafter.
type Config struct {
	TipLabelSize  float64
	TipLabelColor Color
	BranchSize    float64
	BranchColor   Color
	XLimits       [2]float64
	YLimits       [2]float64
	HJust         float64
	VJust         float64
	Angle         float64
	Theme         Theme
}

// Resolve validates raw values and returns an immutable Config. Every
// violation is an INVALID_CONFIG error naming the offending field and
// value. The documented defaults always resolve cleanly.
func Resolve(raw Raw) (*Config, error) {
	if raw.TipLabelSize <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"tip_label_size must be positive, got %v", raw.TipLabelSize)
	}
	if raw.BranchSize <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"branch_size must be positive, got %v", raw.BranchSize)
	}

	xlim, err := limitPair("x_limits", raw.XLimits)
	if err != nil {
		return nil, err
	}
	ylim, err := limitPair("y_limits", raw.YLimits)
	if err != nil {
		return nil, err
	}

	tipColor, err := ParseColor(raw.TipLabelColor)
	if err != nil {
		return nil, err
	}
	branchColor, err := ParseColor(raw.BranchColor)
	if err != nil {
		return nil, err
	}

	theme, err := LookupTheme(raw.Theme)
	if err != nil {
		return nil, err
	}

	return &Config{
		TipLabelSize:  raw.TipLabelSize,
		TipLabelColor: tipColor,
		BranchSize:    raw.BranchSize,
		BranchColor:   branchColor,
		XLimits:       xlim,
		YLimits:       ylim,
		HJust:         raw.HJust,
		VJust:         raw.VJust,
		Angle:         raw.Angle,
		Theme:         theme,
	}, nil
}

// limitPair validates an expansion limit pair: exactly two values with
// min <= max.
func limitPair(field string, values []float64) ([2]float64, error) {
	if len(values) != 2 {
		return [2]float64{}, errors.New(errors.ErrCodeInvalidConfig,
			"%s must be a pair of numbers, got %v", field, values)
	}
	if values[0] > values[1] {
		return [2]float64{}, errors.New(errors.ErrCodeInvalidConfig,
			"%s must be ordered min <= max, got [%v, %v]", field, values[0], values[1])
	}
	return [2]float64{values[0], values[1]}, nil
}
