package galaxy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// MaxCount is the largest particle count accepted by Validate.
	MaxCount = 1_000_000
	// MaxBranches is the largest number of spiral arms accepted by Validate.
	MaxBranches = 1000
)

// Color is an RGB triple with components in [0, 1].
type Color struct {
	R, G, B float64
}

// ParseColor decodes a #rrggbb (or rrggbb) string.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}

// MustParseColor is ParseColor for literals known to be valid.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel8(c.R), channel8(c.G), channel8(c.B))
}

// Lerp mixes c towards to by t. t is not clamped.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
	}
}

// RGBA implements color.Color with full opacity.
func (c Color) RGBA() (r, g, b, a uint32) {
	return channel16(c.R), channel16(c.G), channel16(c.B), 0xffff
}

func (c Color) valid() bool {
	for _, v := range [3]float64{c.R, c.G, c.B} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return false
		}
	}
	return true
}

func channel8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func channel16(v float64) uint32 {
	return uint32(math.Round(clamp01(v) * 0xffff))
}

// ParameterSet bundles the knobs of one generation. It is a value type;
// the generator never mutates it.
//
// DensityFalloff plays two roles: it is the exponent shaping radial density
// and, divided by (radius+1), the numerator of the jitter attenuation. The
// two are deliberately kept coupled.
type ParameterSet struct {
	Count          int
	Size           float64
	Radius         float64
	Branches       int
	Spin           float64
	Randomness     float64
	BranchDensity  float64
	DensityFalloff float64
	InsideColor    Color
	OutsideColor   Color
}

// DefaultParameters returns the baseline galaxy.
func DefaultParameters() ParameterSet {
	return ParameterSet{
		Count:          100000,
		Size:           0.01,
		Radius:         5,
		Branches:       3,
		Spin:           1,
		Randomness:     3,
		BranchDensity:  2,
		DensityFalloff: 1,
		InsideColor:    MustParseColor("#ff6030"),
		OutsideColor:   MustParseColor("#1b3984"),
	}
}

// Validate returns a *ValidationError for the first field outside its
// domain, or nil.
func (p ParameterSet) Validate() error {
	if p.Count < 0 {
		return invalid("count", p.Count, "must not be negative")
	}
	if p.Count > MaxCount {
		return invalid("count", p.Count, fmt.Sprintf("must not exceed %d", MaxCount))
	}
	if !finite(p.Size) || p.Size <= 0 {
		return invalid("size", p.Size, "must be positive")
	}
	if !finite(p.Radius) || p.Radius <= 0 {
		return invalid("radius", p.Radius, "must be positive")
	}
	if p.Branches < 2 {
		return invalid("branches", p.Branches, "must be at least 2")
	}
	if p.Branches > MaxBranches {
		return invalid("branches", p.Branches, fmt.Sprintf("must not exceed %d", MaxBranches))
	}
	if !finite(p.Spin) {
		return invalid("spin", p.Spin, "must be finite")
	}
	if !finite(p.Randomness) || p.Randomness < 0 {
		return invalid("randomness", p.Randomness, "must not be negative")
	}
	if !finite(p.BranchDensity) || p.BranchDensity < 1 {
		return invalid("branch_density", p.BranchDensity, "must be at least 1")
	}
	if !finite(p.DensityFalloff) || p.DensityFalloff < 0 {
		return invalid("density_falloff", p.DensityFalloff, "must not be negative")
	}
	if !p.InsideColor.valid() {
		return invalid("inside_color", p.InsideColor, "components must be within [0, 1]")
	}
	if !p.OutsideColor.valid() {
		return invalid("outside_color", p.OutsideColor, "components must be within [0, 1]")
	}
	return nil
}

// Valid reports whether Validate succeeds.
func (p ParameterSet) Valid() bool { return p.Validate() == nil }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
