//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"spiral-gen/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the galaxy view. Holding
// a +/- button repeats the adjustment; releasing it commits the edit. The
// colour rows step through Swatches once per click.
type HUD struct {
	target Editable
	width  int
	panel  *ebiten.Image
	height int

	snapshot     core.ParameterSnapshot
	controls     []hudControlState
	swatches     []hudSwatchState
	panelOffsetX int

	gesture *hudGesture
	status  string

	pixel *ebiten.Image
}

type hudGesture struct {
	state     *hudControlState // nil for a colour click, which never repeats
	direction int
	held      int
}

// NewHUD constructs a HUD for target with the given panel width.
func NewHUD(target Editable, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{target: target, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	controls := target.ParameterControls()
	h.controls = make([]hudControlState, len(controls))
	for i, ctrl := range controls {
		h.controls[i] = hudControlState{control: ctrl, value: "--"}
	}
	for _, key := range []string{"inside_color", "outside_color"} {
		h.swatches = append(h.swatches, hudSwatchState{key: key})
	}
	h.layoutControls()
	return h
}

// Update refreshes the cached snapshot and handles panel interaction.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.target.Parameters()
	h.refreshControlValues()
	h.handleInput()
}

// Busy reports whether an edit gesture is in progress.
func (h *HUD) Busy() bool { return h != nil && h.gesture != nil }

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.height != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.height = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 230})
	h.drawControls()
	h.drawColors()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) title() string {
	name := h.target.Name()
	if name == "" {
		return "Controls"
	}
	return strings.ToUpper(name[:1]) + name[1:] + " Controls"
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			state.hasValue = false
			state.value = "--"
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				state.hasValue = false
				state.value = "--"
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.value = strconv.Itoa(parsed)
			state.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				state.hasValue = false
				state.value = "--"
				continue
			}
			state.floatValue = parsed
			state.value = formatFloat(state.control, parsed)
			state.hasValue = true
		default:
			state.hasValue = false
			state.value = "--"
		}
	}
}

func (h *HUD) handleInput() {
	if h.gesture != nil {
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			h.gesture = nil
			h.commit()
			return
		}
		h.gesture.held++
		if h.gesture.state != nil && h.gesture.held > repeatDelay && h.gesture.held%repeatEvery == 0 {
			h.applyAdjustment(h.gesture.state, h.gesture.direction)
		}
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		direction := 0
		switch {
		case pointInRect(px, my, state.minusRect):
			direction = -1
		case pointInRect(px, my, state.plusRect):
			direction = 1
		default:
			continue
		}
		h.applyAdjustment(state, direction)
		h.gesture = &hudGesture{state: state, direction: direction}
		return
	}
	for i := range h.swatches {
		sw := &h.swatches[i]
		direction := 0
		switch {
		case pointInRect(px, my, sw.minusRect):
			direction = -1
		case pointInRect(px, my, sw.plusRect):
			direction = 1
		default:
			continue
		}
		if _, ok := CycleColor(h.target, sw.key, direction); ok {
			h.gesture = &hudGesture{direction: direction}
		}
		return
	}
}

func (h *HUD) commit() {
	if err := h.target.Commit(); err != nil {
		h.status = err.Error()
		return
	}
	h.status = ""
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if state == nil || direction == 0 {
		return
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		step := int(math.Round(state.control.Step))
		if step <= 0 {
			step = 1
		}
		target := state.intValue + direction*step
		if state.control.HasMin {
			target = max(target, int(math.Round(state.control.Min)))
		}
		if state.control.HasMax {
			target = min(target, int(math.Round(state.control.Max)))
		}
		if target == state.intValue {
			return
		}
		if h.target.SetIntParameter(state.control.Key, target) {
			state.intValue = target
			state.floatValue = float64(target)
			state.value = strconv.Itoa(target)
		}
	case core.ParamTypeFloat:
		step := state.control.Step
		if step <= 0 {
			step = 0.05
		}
		target := state.floatValue + float64(direction)*step
		if state.control.HasMin && target < state.control.Min {
			target = state.control.Min
		}
		if state.control.HasMax && target > state.control.Max {
			target = state.control.Max
		}
		if math.Abs(target-state.floatValue) < 1e-9 {
			return
		}
		if h.target.SetFloatParameter(state.control.Key, target) {
			state.floatValue = target
			state.value = formatFloat(state.control, target)
		}
	}
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	if !state.hasValue {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if direction < 0 && state.control.HasMin {
			return state.intValue > int(math.Round(state.control.Min))
		}
		if direction > 0 && state.control.HasMax {
			return state.intValue < int(math.Round(state.control.Max))
		}
		return true
	case core.ParamTypeFloat:
		if direction < 0 && state.control.HasMin {
			return state.floatValue > state.control.Min+1e-9
		}
		if direction > 0 && state.control.HasMax {
			return state.floatValue < state.control.Max-1e-9
		}
		return true
	default:
		return false
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title(), face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	text.Draw(h.panel, h.target.Summary(), face, panelPadding, headerY+infoSpacing/2, color.RGBA{R: 160, G: 160, B: 170, A: 255})

	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !state.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		h.drawButton(state.minusRect, "-", h.canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", h.canAdjust(state, 1))
	}

	if h.status != "" {
		y := controlsTop + (len(h.controls)+len(h.swatches))*lineHeight + labelBaseline
		text.Draw(h.panel, h.status, face, panelPadding, y, color.RGBA{R: 240, G: 110, B: 90, A: 255})
	}
}

// drawColors shows the gradient endpoints with a swatch between the
// previous and next buttons.
func (h *HUD) drawColors() {
	face := basicfont.Face7x13
	for i := range h.swatches {
		sw := &h.swatches[i]
		param, ok := h.snapshot.Lookup(sw.key)
		if !ok {
			continue
		}
		text.Draw(h.panel, param.Label+" "+param.Value, face, panelPadding, sw.top+labelBaseline, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		h.drawButton(sw.minusRect, "<", true)
		swatch := image.Rect(sw.minusRect.Min.X-buttonGap-buttonSize, sw.minusRect.Min.Y, sw.minusRect.Min.X-buttonGap, sw.minusRect.Max.Y)
		h.fillRect(swatch, parseHexColor(param.Value))
		h.drawButton(sw.plusRect, ">", true)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) fillRect(rect image.Rectangle, col color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		h.controls[i].top = top
		h.controls[i].minusRect, h.controls[i].plusRect = h.buttonRects(top)
	}
	for i := range h.swatches {
		top := controlsTop + (len(h.controls)+i)*lineHeight
		h.swatches[i].top = top
		h.swatches[i].minusRect, h.swatches[i].plusRect = h.buttonRects(top)
	}
}

func (h *HUD) buttonRects(top int) (minus, plus image.Rectangle) {
	buttonY := top + (lineHeight-buttonSize)/2
	plus = image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
	minus = image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
	return minus, plus
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func parseHexColor(s string) color.RGBA {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

type hudSwatchState struct {
	key       string
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + infoSpacing

	// frames before a held button starts repeating, and the repeat period
	repeatDelay = 20
	repeatEvery = 3
)
