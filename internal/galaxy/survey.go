package galaxy

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Survey summarises a generation run without keeping the buffers.
type Survey struct {
	Count            int
	BranchPopulation []int
	// RadiusHistogram buckets the pre-jitter radius over [0, Radius].
	RadiusHistogram []int
	MeanRadius      float64
	MinFraction     float64
	MaxFraction     float64
	// ClampedAttenuation counts particles whose raw attenuation exceeded 1
	// and would have amplified jitter without the clamp.
	ClampedAttenuation int
	MaxRawAttenuation  float64
	// Extent is the largest distance of a final position from the origin.
	Extent float64
}

// Survey draws p.Count particles exactly as Generate would and aggregates
// them into bins radius buckets.
func (g *Generator) Survey(p ParameterSet, bins int) (Survey, error) {
	if err := p.Validate(); err != nil {
		return Survey{}, err
	}
	if bins <= 0 {
		bins = 1
	}
	s := Survey{
		Count:            p.Count,
		BranchPopulation: make([]int, p.Branches),
		RadiusHistogram:  make([]int, bins),
	}
	if p.Count == 0 {
		return s, nil
	}
	radii := make([]float64, p.Count)
	fractions := make([]float64, p.Count)
	for i := range radii {
		pt := g.place(i, p)
		s.BranchPopulation[pt.branch]++
		radii[i] = pt.radius
		fractions[i] = pt.fraction

		raw := p.DensityFalloff / (pt.radius + 1)
		if raw > 1 {
			s.ClampedAttenuation++
		}
		s.MaxRawAttenuation = math.Max(s.MaxRawAttenuation, raw)
		s.Extent = math.Max(s.Extent, floats.Norm(pt.pos[:], 2))
	}
	s.MeanRadius = stat.Mean(radii, nil)
	s.MinFraction = floats.Min(fractions)
	s.MaxFraction = floats.Max(fractions)

	// The last bucket is closed so particles on the rim land in it.
	dividers := floats.Span(make([]float64, bins+1), 0, 1)
	dividers[bins] = math.Nextafter(1, 2)
	sort.Float64s(fractions)
	for b, n := range stat.Histogram(nil, dividers, fractions, nil) {
		s.RadiusHistogram[b] = int(n)
	}
	return s, nil
}
