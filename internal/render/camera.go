package render

import (
	"math"

	"spiral-gen/internal/galaxy"

	"gonum.org/v1/gonum/spatial/r3"
)

// OrbitCamera looks at the origin from a point on a sphere.
type OrbitCamera struct {
	Yaw      float64 // radians around +Y, 0 looks down -Z
	Pitch    float64 // radians above the XZ plane
	Distance float64
	FOV      float64 // vertical field of view in radians
	Near     float64
	Far      float64
}

// DefaultCamera sits at (3, 3, 3) with a 75° field of view.
func DefaultCamera() OrbitCamera {
	return OrbitCamera{
		Yaw:      math.Pi / 4,
		Pitch:    math.Asin(1 / math.Sqrt(3)),
		Distance: math.Sqrt(27),
		FOV:      75 * math.Pi / 180,
		Near:     0.1,
		Far:      100,
	}
}

// Orbit rotates the camera, keeping the pitch short of the poles.
func (c *OrbitCamera) Orbit(dYaw, dPitch float64) {
	const limit = math.Pi/2 - 0.01
	c.Yaw += dYaw
	c.Pitch = math.Max(-limit, math.Min(limit, c.Pitch+dPitch))
}

// Zoom scales the distance to the origin, staying inside the clip range.
func (c *OrbitCamera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = math.Max(c.Near*2, math.Min(c.Far/2, c.Distance*factor))
}

// Position returns the camera location in world space.
func (c OrbitCamera) Position() r3.Vec {
	cp := math.Cos(c.Pitch)
	return r3.Vec{
		X: c.Distance * cp * math.Sin(c.Yaw),
		Y: c.Distance * math.Sin(c.Pitch),
		Z: c.Distance * cp * math.Cos(c.Yaw),
	}
}

// view caches the camera basis for a frame.
type view struct {
	eye           r3.Vec
	right, up, fw r3.Vec
	focal         float64
	cx, cy        float64
	near, far     float64
}

func (c OrbitCamera) view(w, h int) view {
	eye := c.Position()
	fw := r3.Unit(r3.Scale(-1, eye))
	right := r3.Unit(r3.Cross(fw, r3.Vec{Y: 1}))
	up := r3.Cross(right, fw)
	return view{
		eye:   eye,
		right: right,
		up:    up,
		fw:    fw,
		focal: float64(h) / 2 / math.Tan(c.FOV/2),
		cx:    float64(w) / 2,
		cy:    float64(h) / 2,
		near:  c.Near,
		far:   c.Far,
	}
}

// project maps a world point to screen pixels. ok is false outside the
// clip range.
func (v view) project(x, y, z float64) (sx, sy, depth float64, ok bool) {
	d := r3.Sub(r3.Vec{X: x, Y: y, Z: z}, v.eye)
	depth = r3.Dot(d, v.fw)
	if depth < v.near || depth > v.far {
		return 0, 0, depth, false
	}
	sx = v.cx + r3.Dot(d, v.right)*v.focal/depth
	sy = v.cy - r3.Dot(d, v.up)*v.focal/depth
	return sx, sy, depth, true
}

// ProjectPoint maps a single world point onto a w×h screen.
func (c OrbitCamera) ProjectPoint(x, y, z float64, w, h int) (sx, sy float64, ok bool) {
	sx, sy, _, ok = c.view(w, h).project(x, y, z)
	return sx, sy, ok
}

// Sprite is a projected particle.
type Sprite struct {
	X, Y    float32
	Radius  float32
	R, G, B float32
}

// Project fills dst with the visible particles of buf seen from c on a
// w×h screen. size is the world-space particle size handed over with the
// buffer; it is attenuated with depth and never drops below half a pixel.
func Project(dst []Sprite, buf *galaxy.ParticleBuffer, size float64, c OrbitCamera, w, h int) []Sprite {
	dst = dst[:0]
	if buf == nil || buf.Disposed() || w <= 0 || h <= 0 {
		return dst
	}
	v := c.view(w, h)
	for i := 0; i < buf.Count; i++ {
		x, y, z := buf.Position(i)
		sx, sy, depth, ok := v.project(float64(x), float64(y), float64(z))
		if !ok {
			continue
		}
		radius := math.Max(0.5, size*v.focal/depth/2)
		r, g, b := buf.Color(i)
		dst = append(dst, Sprite{X: float32(sx), Y: float32(sy), Radius: float32(radius), R: r, G: g, B: b})
	}
	return dst
}
