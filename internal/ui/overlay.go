//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"spiral-gen/internal/galaxy"
	"spiral-gen/internal/lifecycle"
	"spiral-gen/internal/render"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals on top of the galaxy.
type Overlay struct {
	mgr        *lifecycle.Manager
	showGuides bool
	showStats  bool
	pixel      *ebiten.Image
}

// NewOverlay constructs a new overlay reading from mgr.
func NewOverlay(mgr *lifecycle.Manager) *Overlay {
	o := &Overlay{mgr: mgr, showStats: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showGuides = !o.showGuides
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showStats = !o.showStats
	}
}

// Draw renders the enabled layers using cam for projection.
func (o *Overlay) Draw(screen *ebiten.Image, cam render.OrbitCamera) {
	h, ok := o.mgr.Active()
	if !ok {
		return
	}
	if o.showGuides {
		o.drawGuides(screen, h.Params, cam)
	}
	if o.showStats {
		msg := fmt.Sprintf("gen %d  %s particles  %s  %.0f fps",
			h.Generation,
			humanize.Comma(int64(h.Buffer.Count)),
			humanize.Bytes(uint64(h.Buffer.Bytes())),
			ebiten.ActualFPS(),
		)
		ebitenutil.DebugPrint(screen, msg)
	}
}

func (o *Overlay) drawGuides(screen *ebiten.Image, p galaxy.ParameterSet, cam render.OrbitCamera) {
	const steps = 48
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	for b := 0; b < p.Branches; b++ {
		hue := float64(b) / float64(p.Branches)
		col := guideColor(hue)
		line := galaxy.BranchCenterline(p, b, steps)
		for k := 1; k < len(line); k++ {
			x1, y1, ok1 := cam.ProjectPoint(line[k-1][0], line[k-1][1], line[k-1][2], w, h)
			x2, y2, ok2 := cam.ProjectPoint(line[k][0], line[k][1], line[k][2], w, h)
			if ok1 && ok2 {
				o.drawLine(screen, x1, y1, x2, y2, 1, col)
			}
		}
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

// guideColor picks a saturated colour around the hue wheel.
func guideColor(hue float64) color.RGBA {
	channel := func(offset float64) uint8 {
		v := 0.5 + 0.5*math.Cos(2*math.Pi*(hue+offset))
		return uint8(80 + 175*v)
	}
	return color.RGBA{R: channel(0), G: channel(1.0 / 3), B: channel(2.0 / 3), A: 255}
}
