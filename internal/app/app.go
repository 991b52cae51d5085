//go:build ebiten

package app

import (
	"image/color"
	"log/slog"

	"spiral-gen/internal/galaxy"
	"spiral-gen/internal/lifecycle"
	"spiral-gen/internal/render"
	"spiral-gen/internal/ui"
	"spiral-gen/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts the galaxy lifecycle to the ebiten.Game interface.
type Game struct {
	mgr     *lifecycle.Manager
	editor  *lifecycle.Editor
	cloud   *render.PointCloud
	hud     *ui.HUD
	overlay *ui.Overlay
	logger  *slog.Logger

	width, height, panel int

	dragging     bool
	lastX, lastY int
}

// New builds the scene and generates the initial galaxy from params.
func New(cfg *Config, params galaxy.ParameterSet, logger *slog.Logger) (*Game, error) {
	var src galaxy.Source
	if cfg.Seed != 0 {
		src = core.NewRNG(cfg.Seed)
	}
	cloud := render.NewPointCloud()
	mgr := lifecycle.New(galaxy.NewGenerator(src), cloud, logger)
	editor := lifecycle.NewEditor(mgr, params)
	if err := editor.Commit(); err != nil {
		return nil, err
	}
	return &Game{
		mgr:     mgr,
		editor:  editor,
		cloud:   cloud,
		hud:     ui.NewHUD(editor, cfg.PanelWidth),
		overlay: ui.NewOverlay(mgr),
		logger:  logger.With("component", "app"),
		width:   cfg.Width,
		height:  cfg.Height,
		panel:   cfg.PanelWidth,
	}, nil
}

// Close releases the active galaxy.
func (g *Game) Close() { g.mgr.Close() }

// Update handles per-frame input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if err := g.editor.Commit(); err != nil {
			g.logger.Warn("Commit rejected", "error", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if err := g.editor.Revert(); err != nil {
			g.logger.Warn("Revert failed", "error", err)
		}
	}

	g.hud.Update(g.width)
	g.overlay.Update()
	g.updateCamera()
	return nil
}

func (g *Game) updateCamera() {
	const (
		dragSpeed = 0.005
		keySpeed  = 0.03
	)
	cam := &g.cloud.Camera
	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && x < g.width && !g.hud.Busy() {
		g.dragging = true
		g.lastX, g.lastY = x, y
	}
	if g.dragging {
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			g.dragging = false
		} else {
			cam.Orbit(-float64(x-g.lastX)*dragSpeed, float64(y-g.lastY)*dragSpeed)
			g.lastX, g.lastY = x, y
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		cam.Orbit(-keySpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		cam.Orbit(keySpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		cam.Orbit(0, keySpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		cam.Orbit(0, -keySpeed)
	}
	if _, wheel := ebiten.Wheel(); wheel != 0 {
		cam.Zoom(1 - wheel*0.1)
	}
}

// Draw renders the galaxy, overlay and panel.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	view := screen
	if g.panel > 0 {
		b := screen.Bounds()
		b.Max.X = b.Min.X + g.width
		view = screen.SubImage(b).(*ebiten.Image)
	}
	g.cloud.Draw(view)
	g.overlay.Draw(view, g.cloud.Camera)
	g.hud.Draw(screen, g.width, g.height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width + g.panel, g.height
}
