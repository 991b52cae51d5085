package lifecycle

import (
	"errors"
	"fmt"

	"spiral-gen/internal/core"
	"spiral-gen/internal/galaxy"

	"github.com/dustin/go-humanize"
)

// Editor stages field edits in a draft parameter set and hands the draft
// to the Manager only on Commit. Intermediate values never trigger
// generation.
type Editor struct {
	mgr   *Manager
	draft galaxy.ParameterSet
	dirty bool
}

// NewEditor returns an editor whose draft starts at initial.
func NewEditor(mgr *Manager, initial galaxy.ParameterSet) *Editor {
	return &Editor{mgr: mgr, draft: initial, dirty: true}
}

// Name identifies the edited object on the panel.
func (e *Editor) Name() string { return "galaxy" }

// Draft returns the staged parameters.
func (e *Editor) Draft() galaxy.ParameterSet { return e.draft }

// Dirty reports whether the draft differs from what was last committed.
func (e *Editor) Dirty() bool { return e.dirty }

// Summary describes the active galaxy for panel titles.
func (e *Editor) Summary() string {
	p, ok := e.mgr.Params()
	if !ok {
		return "no galaxy"
	}
	return fmt.Sprintf("%s particles, %d branches", humanize.Comma(int64(p.Count)), p.Branches)
}

// SetIntParameter stages an integer field.
func (e *Editor) SetIntParameter(key string, value int) bool {
	return e.stage(e.draft.SetInt(key, value))
}

// SetFloatParameter stages a float field.
func (e *Editor) SetFloatParameter(key string, value float64) bool {
	return e.stage(e.draft.SetFloat(key, value))
}

// SetColorParameter stages a colour field given as #rrggbb.
func (e *Editor) SetColorParameter(key string, hex string) bool {
	c, err := galaxy.ParseColor(hex)
	if err != nil {
		return false
	}
	return e.stage(e.draft.SetColor(key, c))
}

func (e *Editor) stage(ok bool) bool {
	if ok {
		e.dirty = true
	}
	return ok
}

// Commit regenerates from the draft. A rejected draft is kept for
// correction and the active galaxy is left untouched. Committing a clean
// draft does nothing.
func (e *Editor) Commit() error {
	if !e.dirty {
		return nil
	}
	if _, err := e.mgr.Regenerate(e.draft); err != nil {
		return err
	}
	e.dirty = false
	return nil
}

// Revert discards staged edits, restoring the active parameters.
func (e *Editor) Revert() error {
	p, ok := e.mgr.Params()
	if !ok {
		return errors.New("revert: nothing committed yet")
	}
	e.draft = p
	e.dirty = false
	return nil
}

// Parameters exposes the draft for display.
func (e *Editor) Parameters() core.ParameterSnapshot { return e.draft.Snapshot() }

// ParameterControls lists the adjustable fields.
func (e *Editor) ParameterControls() []core.ParameterControl { return galaxy.Controls() }

var (
	_ core.ParameterProvider         = (*Editor)(nil)
	_ core.ParameterControlsProvider = (*Editor)(nil)
	_ core.IntParameterSetter        = (*Editor)(nil)
	_ core.FloatParameterSetter      = (*Editor)(nil)
	_ core.ColorParameterSetter      = (*Editor)(nil)
	_ core.CommitHandler             = (*Editor)(nil)
)
