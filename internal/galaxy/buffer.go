package galaxy

import "fmt"

const bytesPerParticle = 2 * 3 * 4

// ParticleBuffer holds the generated particle attributes as flat float32
// slices of length 3*Count: x,y,z positions and r,g,b colours.
type ParticleBuffer struct {
	Count     int
	Size      float64
	Positions []float32
	Colors    []float32

	disposed bool
}

// Position returns the coordinates of particle i.
func (b *ParticleBuffer) Position(i int) (x, y, z float32) {
	i3 := i * 3
	return b.Positions[i3], b.Positions[i3+1], b.Positions[i3+2]
}

// Color returns the colour of particle i.
func (b *ParticleBuffer) Color(i int) (r, g, bl float32) {
	i3 := i * 3
	return b.Colors[i3], b.Colors[i3+1], b.Colors[i3+2]
}

// Bytes reports the memory held by both attribute slices.
func (b *ParticleBuffer) Bytes() int {
	return 4 * (len(b.Positions) + len(b.Colors))
}

// Dispose drops the attribute slices. It returns false when the buffer had
// already been disposed.
func (b *ParticleBuffer) Dispose() bool {
	if b.disposed {
		return false
	}
	b.disposed = true
	b.Positions = nil
	b.Colors = nil
	return true
}

// Disposed reports whether Dispose has been called.
func (b *ParticleBuffer) Disposed() bool { return b.disposed }

func bufferBytes(count int) int { return count * bytesPerParticle }

func allocate(count int) (buf *ParticleBuffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = &AllocationError{Count: count, Bytes: bufferBytes(count), Err: fmt.Errorf("%v", r)}
		}
	}()
	return &ParticleBuffer{
		Count:     count,
		Positions: make([]float32, 3*count),
		Colors:    make([]float32, 3*count),
	}, nil
}
