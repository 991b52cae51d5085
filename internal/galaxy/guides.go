package galaxy

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// BranchCenterline samples the jitter-free curve of one branch from the
// centre to the rim in steps equal radial increments. It returns steps+1
// points, or nil for an out-of-range branch.
func BranchCenterline(p ParameterSet, branch, steps int) [][3]float64 {
	if branch < 0 || branch >= p.Branches || steps <= 0 {
		return nil
	}
	base := float64(branch) / float64(p.Branches) * 2 * math.Pi
	radii := floats.Span(make([]float64, steps+1), 0, p.Radius)
	pts := make([][3]float64, len(radii))
	for k, r := range radii {
		angle := base + r*p.Spin
		pts[k] = [3]float64{math.Cos(angle) * r, 0, math.Sin(angle) * r}
	}
	return pts
}
