// Package lifecycle owns the active particle buffer and replaces it when a
// new parameter set is committed.
package lifecycle

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"spiral-gen/internal/galaxy"

	"github.com/dustin/go-humanize"
)

var (
	// ErrBusy is returned when Regenerate is called while another
	// regeneration on the same manager is still running. Calls are rejected,
	// not queued.
	ErrBusy = errors.New("regeneration already in progress")
	// ErrClosed is returned by Regenerate after Close.
	ErrClosed = errors.New("manager closed")
)

// Renderer displays the active buffer. Activate hands over the new buffer;
// Release tells the renderer to drop everything wrapping a superseded one.
type Renderer interface {
	Activate(buf *galaxy.ParticleBuffer, size float64)
	Release(buf *galaxy.ParticleBuffer)
}

// BufferHandle identifies the buffer produced by one successful
// regeneration.
type BufferHandle struct {
	Generation uint64
	Buffer     *galaxy.ParticleBuffer
	Params     galaxy.ParameterSet
}

// Manager holds at most one active buffer and the parameters that produced
// it. It is meant to be driven from a single goroutine.
type Manager struct {
	gen      *galaxy.Generator
	renderer Renderer
	logger   *slog.Logger

	active     BufferHandle
	hasActive  bool
	generation uint64
	closed     bool

	busy atomic.Bool
}

// New returns a Manager without an active buffer. A nil logger uses
// slog.Default.
func New(gen *galaxy.Generator, renderer Renderer, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		gen:      gen,
		renderer: renderer,
		logger:   logger.With("component", "lifecycle"),
	}
}

// Regenerate builds a buffer from params, makes it active and releases the
// previous one. On error the previous buffer and parameters stay active.
func (m *Manager) Regenerate(params galaxy.ParameterSet) (BufferHandle, error) {
	if !m.busy.CompareAndSwap(false, true) {
		return BufferHandle{}, ErrBusy
	}
	defer m.busy.Store(false)

	if m.closed {
		return BufferHandle{}, ErrClosed
	}

	logger := m.logger.With("operation", "regenerate", "count", params.Count)
	buf, err := m.gen.Generate(params)
	if err != nil {
		logger.Warn("Regeneration rejected", "kind", galaxy.Kind(err), "error", err)
		return BufferHandle{}, fmt.Errorf("regenerate: %w", err)
	}

	m.generation++
	next := BufferHandle{Generation: m.generation, Buffer: buf, Params: params}
	prev, hadPrev := m.active, m.hasActive

	m.renderer.Activate(buf, params.Size)
	m.active, m.hasActive = next, true
	if hadPrev {
		m.release(prev)
	}

	logger.Debug("Galaxy regenerated",
		"generation", next.Generation,
		"particles", humanize.Comma(int64(params.Count)),
		"bytes", humanize.Bytes(uint64(buf.Bytes())),
	)
	return next, nil
}

// Active returns the current handle, if any.
func (m *Manager) Active() (BufferHandle, bool) {
	return m.active, m.hasActive
}

// Params returns the parameters of the active buffer, or false when nothing
// has been generated yet.
func (m *Manager) Params() (galaxy.ParameterSet, bool) {
	return m.active.Params, m.hasActive
}

// Close releases the active buffer. Further calls to Regenerate fail with
// ErrClosed; Close itself is idempotent.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	if m.hasActive {
		m.release(m.active)
		m.active, m.hasActive = BufferHandle{}, false
	}
	m.logger.Debug("Manager closed", "generations", m.generation)
}

func (m *Manager) release(h BufferHandle) {
	m.renderer.Release(h.Buffer)
	if !h.Buffer.Dispose() {
		m.logger.Error("Buffer disposed twice", "generation", h.Generation)
	}
}
