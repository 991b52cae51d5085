package galaxy

import (
	"errors"
	"math"
	"slices"
	"sort"
	"testing"

	"spiral-gen/pkg/core"
)

type countingSource struct {
	draws int
	src   Source
}

func (c *countingSource) Float64() float64 {
	c.draws++
	return c.src.Float64()
}

func smallParams(count int) ParameterSet {
	p := DefaultParameters()
	p.Count = count
	return p
}

func TestGenerateBufferLengths(t *testing.T) {
	gen := NewGenerator(core.NewRNG(1))
	for _, count := range []int{0, 1, 7, 100, 2500} {
		buf, err := gen.Generate(smallParams(count))
		if err != nil {
			t.Fatalf("count %d: unexpected error %v", count, err)
		}
		if len(buf.Positions) != 3*count || len(buf.Colors) != 3*count {
			t.Fatalf("count %d: got %d positions, %d colors", count, len(buf.Positions), len(buf.Colors))
		}
		if buf.Count != count {
			t.Fatalf("count %d: buffer reports %d", count, buf.Count)
		}
	}
}

func TestGenerateZeroCountConsumesNoDraws(t *testing.T) {
	src := &countingSource{src: core.NewRNG(3)}
	buf, err := NewGenerator(src).Generate(smallParams(0))
	if err != nil {
		t.Fatalf("zero count must not fail: %v", err)
	}
	if len(buf.Positions) != 0 || len(buf.Colors) != 0 {
		t.Fatal("zero count must yield empty buffers")
	}
	if src.draws != 0 {
		t.Fatalf("expected no draws, got %d", src.draws)
	}
}

func TestGenerateDrawsSevenPerParticle(t *testing.T) {
	src := &countingSource{src: core.NewRNG(3)}
	if _, err := NewGenerator(src).Generate(smallParams(250)); err != nil {
		t.Fatal(err)
	}
	if src.draws != 250*7 {
		t.Fatalf("expected %d draws, got %d", 250*7, src.draws)
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	p := smallParams(1000)
	a, err := NewGenerator(core.NewRNG(99)).Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGenerator(core.NewRNG(99)).Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.Positions, b.Positions) || !slices.Equal(a.Colors, b.Colors) {
		t.Fatal("same seed must produce identical buffers")
	}
}

func TestRadiusStaysWithinGalaxy(t *testing.T) {
	for _, falloff := range []float64{0, 0.3, 1, 2.5, 10} {
		p := smallParams(2000)
		p.DensityFalloff = falloff
		gen := NewGenerator(core.NewRNG(int64(falloff * 10)))
		for i := 0; i < p.Count; i++ {
			pt := gen.place(i, p)
			if pt.radius < 0 || pt.radius > p.Radius {
				t.Fatalf("falloff %.1f particle %d: radius %f outside [0, %f]", falloff, i, pt.radius, p.Radius)
			}
		}
	}
}

func TestDensityFalloffConcentratesMass(t *testing.T) {
	mean := func(falloff float64) float64 {
		p := smallParams(5000)
		p.DensityFalloff = falloff
		gen := NewGenerator(core.NewRNG(5))
		sum := 0.0
		for i := 0; i < p.Count; i++ {
			sum += gen.place(i, p).radius
		}
		return sum / float64(p.Count)
	}
	flat, steep := mean(1), mean(4)
	if steep >= flat {
		t.Fatalf("higher falloff should pull particles inward: mean %.3f vs %.3f", steep, flat)
	}
}

func TestBranchesArePopulatedRoundRobin(t *testing.T) {
	for _, tc := range []struct{ count, branches int }{
		{1000, 3}, {1001, 7}, {5, 4}, {2, 20},
	} {
		p := smallParams(tc.count)
		p.Branches = tc.branches
		gen := NewGenerator(core.NewRNG(11))
		population := make([]int, tc.branches)
		for i := 0; i < p.Count; i++ {
			pt := gen.place(i, p)
			if pt.branch != i%tc.branches {
				t.Fatalf("particle %d assigned to branch %d", i, pt.branch)
			}
			population[pt.branch]++
		}
		lo, hi := slices.Min(population), slices.Max(population)
		if hi-lo > 1 {
			t.Fatalf("count %d branches %d: populations %v differ by more than one", tc.count, tc.branches, population)
		}
	}
}

func TestColorEndpoints(t *testing.T) {
	p := smallParams(1)
	p.InsideColor = Color{R: 1, G: 0.25, B: 0}
	p.OutsideColor = Color{R: 0, G: 0.5, B: 1}

	center := NewGenerator(core.NewSequence(0)).place(0, p)
	if center.radius != 0 || center.color != p.InsideColor {
		t.Fatalf("radius 0 should give inside color, got radius %f color %+v", center.radius, center.color)
	}

	rim := NewGenerator(core.NewSequence(1)).place(0, p)
	if math.Abs(rim.radius-p.Radius) > 1e-12 {
		t.Fatalf("u=1 should land on the rim, got %f", rim.radius)
	}
	if !closeColor(rim.color, p.OutsideColor, 1e-12) {
		t.Fatalf("rim should give outside color, got %+v", rim.color)
	}
}

func TestColorFractionIsMonotonicInRadius(t *testing.T) {
	p := smallParams(3000)
	p.DensityFalloff = 1.7
	gen := NewGenerator(core.NewRNG(21))
	pts := make([]particle, p.Count)
	for i := range pts {
		pts[i] = gen.place(i, p)
	}
	sort.Slice(pts, func(a, b int) bool { return pts[a].radius < pts[b].radius })
	for i := 1; i < len(pts); i++ {
		if pts[i].fraction < pts[i-1].fraction {
			t.Fatalf("fraction decreased from %f to %f while radius grew", pts[i-1].fraction, pts[i].fraction)
		}
		if pts[i].fraction < 0 || pts[i].fraction > 1 {
			t.Fatalf("fraction %f outside [0, 1]", pts[i].fraction)
		}
	}
}

func TestFourBranchGalaxyOnTheRim(t *testing.T) {
	p := ParameterSet{
		Count:          4,
		Size:           0.01,
		Radius:         10,
		Branches:       4,
		Spin:           0,
		Randomness:     0,
		BranchDensity:  1,
		DensityFalloff: 1,
		InsideColor:    Color{R: 1},
		OutsideColor:   Color{B: 1},
	}
	buf, err := NewGenerator(core.NewSequence(1.0)).Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < p.Count; i++ {
		angle := float64(i) / 4 * 2 * math.Pi
		x, y, z := buf.Position(i)
		if !near(x, math.Cos(angle)*10, 1e-4) || y != 0 || !near(z, math.Sin(angle)*10, 1e-4) {
			t.Fatalf("particle %d at (%f, %f, %f), want angle %f radius 10", i, x, y, z, angle)
		}
		// Fraction is exactly 1 here, so the colour is the outside endpoint.
		r, g, b := buf.Color(i)
		if r != 0 || g != 0 || b != 1 {
			t.Fatalf("particle %d color (%f, %f, %f), want (0, 0, 1)", i, r, g, b)
		}
	}
}

func TestJitterFollowsDrawOrder(t *testing.T) {
	p := ParameterSet{
		Count:          1,
		Size:           0.01,
		Radius:         2,
		Branches:       2,
		Spin:           0,
		Randomness:     1,
		BranchDensity:  1,
		DensityFalloff: 1,
		InsideColor:    Color{R: 1},
		OutsideColor:   Color{B: 1},
	}
	// radius, then (magnitude, sign) for x, y and z.
	src := core.NewSequence(0.5, 0.5, 0.9, 0.25, 0.1, 1, 0.5)
	pt := NewGenerator(src).place(0, p)

	if pt.radius != 1 {
		t.Fatalf("radius = %f, want 1", pt.radius)
	}
	if pt.attenuation != 0.5 {
		t.Fatalf("attenuation = %f, want 0.5", pt.attenuation)
	}
	want := [3]float64{0.25, -0.125, 0.5}
	if pt.jitter != want {
		t.Fatalf("jitter = %v, want %v", pt.jitter, want)
	}
	if pt.pos != [3]float64{1.25, -0.125, 0.5} {
		t.Fatalf("position = %v", pt.pos)
	}
}

func TestBranchDensityTightensJitter(t *testing.T) {
	spread := func(density float64) float64 {
		p := smallParams(4000)
		p.BranchDensity = density
		gen := NewGenerator(core.NewRNG(8))
		sum := 0.0
		for i := 0; i < p.Count; i++ {
			pt := gen.place(i, p)
			sum += math.Abs(pt.jitter[1])
		}
		return sum
	}
	if loose, tight := spread(1), spread(6); tight >= loose {
		t.Fatalf("branch density 6 spread %.2f should be below density 1 spread %.2f", tight, loose)
	}
}

func TestAttenuationClampNearCenter(t *testing.T) {
	p := smallParams(1)
	p.DensityFalloff = 3

	clamped := NewGenerator(core.NewSequence(0)).place(0, p)
	if clamped.attenuation != 1 {
		t.Fatalf("clamped attenuation = %f, want 1", clamped.attenuation)
	}

	raw := NewGenerator(core.NewSequence(0), WithAttenuation(AttenuationUnclamped)).place(0, p)
	if raw.attenuation != 3 {
		t.Fatalf("unclamped attenuation = %f, want 3", raw.attenuation)
	}
}

func TestAttenuationShrinksTowardsRim(t *testing.T) {
	p := smallParams(1)
	p.DensityFalloff = 0.5
	inner := NewGenerator(core.NewSequence(0.1)).place(0, p)
	outer := NewGenerator(core.NewSequence(0.9)).place(0, p)
	if outer.attenuation >= inner.attenuation {
		t.Fatalf("attenuation should fall with radius: inner %f outer %f", inner.attenuation, outer.attenuation)
	}
}

func TestGenerateRejectsInvalidBeforeDrawing(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*ParameterSet)
	}{
		{"branches", func(p *ParameterSet) { p.Branches = 1 }},
		{"count", func(p *ParameterSet) { p.Count = -5 }},
		{"density_falloff", func(p *ParameterSet) { p.DensityFalloff = -1 }},
		{"radius", func(p *ParameterSet) { p.Radius = 0 }},
		{"branch_density", func(p *ParameterSet) { p.BranchDensity = 0.5 }},
	}
	for _, tc := range cases {
		p := smallParams(100)
		tc.mutate(&p)
		src := &countingSource{src: core.NewRNG(1)}
		buf, err := NewGenerator(src).Generate(p)
		if buf != nil {
			t.Fatalf("%s: buffer returned for invalid parameters", tc.field)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.field, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("expected field %s, got %s", tc.field, verr.Field)
		}
		if src.draws != 0 {
			t.Fatalf("%s: %d draws consumed before validation failed", tc.field, src.draws)
		}
	}
}

func TestGenerateAllocationBudget(t *testing.T) {
	gen := NewGenerator(core.NewRNG(1), WithMaxBytes(10*bytesPerParticle))
	if _, err := gen.Generate(smallParams(10)); err != nil {
		t.Fatalf("count at budget should succeed: %v", err)
	}
	_, err := gen.Generate(smallParams(11))
	var aerr *AllocationError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AllocationError, got %v", err)
	}
	if aerr.Count != 11 || aerr.Bytes != 11*bytesPerParticle {
		t.Fatalf("unexpected allocation error %+v", aerr)
	}
	if Kind(err) != KindAllocation {
		t.Fatalf("Kind = %s", Kind(err))
	}
}

func TestDisposeReportsSecondCall(t *testing.T) {
	buf, err := NewGenerator(core.NewRNG(1)).Generate(smallParams(10))
	if err != nil {
		t.Fatal(err)
	}
	if !buf.Dispose() {
		t.Fatal("first dispose should report true")
	}
	if buf.Dispose() {
		t.Fatal("second dispose should report false")
	}
	if !buf.Disposed() || buf.Positions != nil || buf.Colors != nil {
		t.Fatal("disposed buffer must drop its slices")
	}
}

func near(got float32, want, tol float64) bool {
	return math.Abs(float64(got)-want) <= tol
}

func closeColor(a, b Color, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol && math.Abs(a.G-b.G) <= tol && math.Abs(a.B-b.B) <= tol
}
