package ui

import (
	"strings"

	"spiral-gen/internal/core"
)

// Editable is what the HUD edits: staged setters plus an explicit commit.
type Editable interface {
	Name() string
	Summary() string
	core.ParameterProvider
	core.ParameterControlsProvider
	core.IntParameterSetter
	core.FloatParameterSetter
	core.ColorParameterSetter
	core.CommitHandler
}

// Swatches are the colours offered for the gradient endpoints, starting
// with the default inside and outside colours.
var Swatches = []string{
	"#ff6030", "#1b3984", "#ffffff", "#ffd27f", "#ff3c7a",
	"#8a2be2", "#30c0ff", "#3cff8a", "#0b0b2a", "#a0a0a0",
}

// NextSwatch steps direction places through Swatches from current,
// wrapping at either end. A colour that is not a swatch steps to the first
// (forward) or last (backward) one.
func NextSwatch(current string, direction int) string {
	n := len(Swatches)
	idx := -1
	for i, s := range Swatches {
		if strings.EqualFold(s, strings.TrimSpace(current)) {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && direction < 0:
		return Swatches[n-1]
	case idx < 0:
		return Swatches[0]
	}
	return Swatches[((idx+direction)%n+n)%n]
}

// CycleColor stages the next swatch for the colour parameter key. It
// returns the staged value and whether target accepted it.
func CycleColor(target Editable, key string, direction int) (string, bool) {
	param, ok := target.Parameters().Lookup(key)
	if !ok || param.Type != core.ParamTypeColor {
		return "", false
	}
	next := NextSwatch(param.Value, direction)
	return next, target.SetColorParameter(key, next)
}
