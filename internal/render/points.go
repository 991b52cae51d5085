//go:build ebiten

package render

import (
	"image/color"

	"spiral-gen/internal/galaxy"

	"github.com/hajimehoshi/ebiten/v2"
)

// vertices per DrawTriangles batch are addressed with uint16 indices.
const spritesPerBatch = 65536 / 4

// PointCloud draws the active particle buffer as additive quads. It
// implements lifecycle.Renderer.
type PointCloud struct {
	Camera OrbitCamera

	buf  *galaxy.ParticleBuffer
	size float64

	white    *ebiten.Image
	sprites  []Sprite
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewPointCloud returns a renderer with the default camera and no buffer.
func NewPointCloud() *PointCloud {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &PointCloud{Camera: DefaultCamera(), white: white}
}

// Activate makes buf the displayed buffer.
func (pc *PointCloud) Activate(buf *galaxy.ParticleBuffer, size float64) {
	pc.buf = buf
	pc.size = size
}

// Release drops every reference to buf and the scratch built from it.
func (pc *PointCloud) Release(buf *galaxy.ParticleBuffer) {
	if pc.buf == buf {
		pc.buf = nil
	}
	pc.sprites = nil
	pc.vertices = nil
	pc.indices = nil
}

// Draw projects and paints the active buffer onto dst.
func (pc *PointCloud) Draw(dst *ebiten.Image) {
	if pc.buf == nil {
		return
	}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	pc.sprites = Project(pc.sprites, pc.buf, pc.size, pc.Camera, w, h)

	op := &ebiten.DrawTrianglesOptions{Blend: ebiten.BlendLighter}
	for start := 0; start < len(pc.sprites); start += spritesPerBatch {
		end := min(start+spritesPerBatch, len(pc.sprites))
		pc.fillBatch(pc.sprites[start:end])
		dst.DrawTriangles(pc.vertices, pc.indices, pc.white.SubImage(pc.white.Bounds().Inset(1)).(*ebiten.Image), op)
	}
}

func (pc *PointCloud) fillBatch(sprites []Sprite) {
	pc.vertices = pc.vertices[:0]
	pc.indices = pc.indices[:0]
	for i, s := range sprites {
		base := uint16(i * 4)
		for _, corner := range [4][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
			pc.vertices = append(pc.vertices, ebiten.Vertex{
				DstX:   s.X + corner[0]*s.Radius,
				DstY:   s.Y + corner[1]*s.Radius,
				SrcX:   1,
				SrcY:   1,
				ColorR: s.R,
				ColorG: s.G,
				ColorB: s.B,
				ColorA: 1,
			})
		}
		pc.indices = append(pc.indices, base, base+1, base+2, base+1, base+3, base+2)
	}
}
