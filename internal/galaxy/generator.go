package galaxy

import (
	"math"
	"math/rand/v2"
)

// Source yields pseudo-random floats in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Attenuation selects how the jitter attenuation factor is bounded.
type Attenuation int

const (
	// AttenuationClamped bounds densityFalloff/(radius+1) to [0, 1].
	AttenuationClamped Attenuation = iota
	// AttenuationUnclamped uses densityFalloff/(radius+1) as is, which
	// amplifies jitter near the centre whenever it exceeds 1.
	AttenuationUnclamped
)

// DefaultMaxBytes fits the buffers of MaxCount particles.
const DefaultMaxBytes = MaxCount * bytesPerParticle

// Option configures a Generator.
type Option func(*Generator)

// WithAttenuation selects the attenuation mode.
func WithAttenuation(a Attenuation) Option {
	return func(g *Generator) { g.attenuation = a }
}

// WithMaxBytes caps the combined size of the buffers a single Generate call
// may allocate.
func WithMaxBytes(n int) Option {
	return func(g *Generator) { g.maxBytes = n }
}

// Generator turns a ParameterSet into a ParticleBuffer.
type Generator struct {
	src         Source
	attenuation Attenuation
	maxBytes    int
}

// NewGenerator returns a generator drawing from src. A nil src uses a
// randomly seeded PCG.
func NewGenerator(src Source, opts ...Option) *Generator {
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	g := &Generator{src: src, maxBytes: DefaultMaxBytes}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate validates p and fills a new buffer with p.Count particles.
// Invalid parameters fail before anything is allocated.
func (g *Generator) Generate(p ParameterSet) (*ParticleBuffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if size := bufferBytes(p.Count); g.maxBytes > 0 && size > g.maxBytes {
		return nil, &AllocationError{Count: p.Count, Bytes: size}
	}
	buf, err := allocate(p.Count)
	if err != nil {
		return nil, err
	}
	buf.Size = p.Size

	for i := 0; i < p.Count; i++ {
		pt := g.place(i, p)
		i3 := i * 3
		buf.Positions[i3+0] = float32(pt.pos[0])
		buf.Positions[i3+1] = float32(pt.pos[1])
		buf.Positions[i3+2] = float32(pt.pos[2])
		buf.Colors[i3+0] = float32(pt.color.R)
		buf.Colors[i3+1] = float32(pt.color.G)
		buf.Colors[i3+2] = float32(pt.color.B)
	}
	return buf, nil
}

// particle carries the intermediate values for one generated point.
type particle struct {
	branch      int
	radius      float64
	angle       float64
	attenuation float64
	fraction    float64
	jitter      [3]float64
	pos         [3]float64
	color       Color
}

// place computes particle i. Draw order: radius, then magnitude and sign
// for x, y and z.
func (g *Generator) place(i int, p ParameterSet) particle {
	var pt particle
	pt.branch = i % p.Branches
	pt.radius = math.Pow(g.src.Float64(), p.DensityFalloff) * p.Radius

	branchAngle := float64(pt.branch) / float64(p.Branches) * 2 * math.Pi
	spinAngle := pt.radius * p.Spin
	pt.angle = branchAngle + spinAngle

	pt.attenuation = p.DensityFalloff / (pt.radius + 1)
	if g.attenuation == AttenuationClamped {
		pt.attenuation = clamp01(pt.attenuation)
	}

	for a := range pt.jitter {
		mag := math.Pow(g.src.Float64(), p.BranchDensity)
		sign := 1.0
		if g.src.Float64() < 0.5 {
			sign = -1
		}
		pt.jitter[a] = mag * sign * pt.attenuation * p.Randomness
	}

	pt.pos[0] = math.Cos(pt.angle)*pt.radius + pt.jitter[0]
	pt.pos[1] = pt.jitter[1]
	pt.pos[2] = math.Sin(pt.angle)*pt.radius + pt.jitter[2]

	pt.fraction = clamp01(pt.radius / p.Radius)
	pt.color = p.InsideColor.Lerp(p.OutsideColor, pt.fraction)
	return pt
}
