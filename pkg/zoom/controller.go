// Package zoom implements the interactive zoom controller: it owns the
// pointer state and the frame loop, moves the fractal's viewport region
// while a button is held, and asks the render engine for frames.
//
// Buttons map to motions as follows:
//
//	left           zoom in towards the pointer
//	right          zoom out away from the pointer
//	middle         pan
//	left + right   pan
//
// Touch input maps one finger to left and two fingers to right.
//
// A Controller is confined to one goroutine, the same one that runs its
// frame.Scheduler callbacks and delivers its input.
package zoom

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/joshvictor1024/go-xaos"
	"github.com/joshvictor1024/go-xaos/pkg/fractal"
	"github.com/joshvictor1024/go-xaos/pkg/frame"
	"github.com/joshvictor1024/go-xaos/pkg/input"
	"github.com/joshvictor1024/go-xaos/pkg/render"
	"github.com/joshvictor1024/go-xaos/pkg/types"
	"github.com/joshvictor1024/go-xaos/pkg/viewport"
)

var (
	// ErrNoScheduler is returned by New without a frame scheduler.
	ErrNoScheduler = errors.New("zoom: no frame scheduler")
	// ErrDisposed is returned by setters called after Dispose.
	ErrDisposed = errors.New("zoom: controller disposed")
)

// State is the observable interaction state.
type State struct {
	// Zooming is true while any pointer button is held.
	Zooming bool
	// Incomplete is always false: every frame is rendered in one pass.
	Incomplete bool
}

// Stats counts controller activity.
type Stats struct {
	Ticks   uint64
	Renders uint64
	// Skipped counts interactive renders dropped by the Approximation
	// frame interval.
	Skipped uint64
	Engine  render.Stats
}

// Controller drives a fractal view from pointer input.
type Controller struct {
	engine  *render.Engine
	surface render.Surface
	src     input.Source
	sched   frame.Scheduler
	tuning  Tuning

	fractal *fractal.Config
	mode    render.Mode
	pointer pointerState
	last    *render.StagingBuffer

	started  bool
	stopped  bool
	disposed bool
	attached bool

	pending frame.Handle
	// gen invalidates callbacks scheduled before the last Stop.
	gen uint64

	lastFrame       time.Duration
	hasLastFrame    bool
	lastInteractive time.Duration
	hasInteractive  bool

	stats Stats
}

var _ input.Handler = (*Controller)(nil)

// New returns a controller that renders cfg onto s, reads input from src
// and ticks on sched. src may be nil for a controller driven only through
// its Handler methods. New fails, returning no controller, if s has no
// drawing context, sched is nil or cfg is invalid.
func New(s render.Surface, src input.Source, sched frame.Scheduler, cfg *fractal.Config, opts ...Option) (*Controller, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	engine, err := render.NewEngine(s, o.engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("zoom: %w", err)
	}
	if sched == nil {
		return nil, ErrNoScheduler
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("zoom: %w", err)
	}

	return &Controller{
		engine:  engine,
		surface: s,
		src:     src,
		sched:   sched,
		tuning:  o.tuning,
		fractal: cfg,
		mode:    o.mode,
	}, nil
}

// Start attaches input, renders the current view at the surface's size
// and begins ticking. It does nothing if already started or disposed.
func (c *Controller) Start() {
	if c.disposed || c.started {
		return
	}
	if c.src != nil && !c.attached {
		c.src.Attach(c)
		c.attached = true
	}
	c.started = true
	c.stopped = false
	c.clearTiming()
	w, h := c.surface.Size()
	xaos.Logger().Info("zoom: start", "width", w, "height", h, "mode", c.mode)
	c.render(false)
	c.schedule()
}

// Stop cancels the pending tick. Input stays attached; a later Start
// resumes ticking with fresh timing.
func (c *Controller) Stop() {
	if c.disposed {
		return
	}
	wasStarted := c.started
	c.stopped = true
	c.started = false
	c.gen++
	if c.pending != 0 {
		c.sched.CancelFrame(c.pending)
		c.pending = 0
	}
	c.clearTiming()
	if wasStarted {
		xaos.Logger().Info("zoom: stop")
	}
}

// Dispose stops the controller and detaches input. Every later call is a
// no-op, including callbacks the scheduler still delivers.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.Stop()
	if c.attached {
		c.src.Detach(c)
		c.attached = false
	}
	c.disposed = true
	c.last = nil
	if err := c.engine.Close(); err != nil {
		xaos.Logger().Warn("zoom: release engine", "err", err)
	}
	xaos.Logger().Info("zoom: disposed")
}

// Resize sets the surface size and renders at it. Non-positive sizes are
// ignored.
func (c *Controller) Resize(width, height int) {
	if c.disposed {
		return
	}
	if width <= 0 || height <= 0 {
		xaos.Logger().Debug("zoom: ignoring resize", "width", width, "height", height)
		return
	}
	if err := c.surface.SetSize(width, height); err != nil {
		xaos.Logger().Warn("zoom: resize surface", "err", err)
		return
	}
	c.render(false)
}

// SetFractal replaces the active configuration and renders it. The
// controller keeps cfg and moves cfg.Region in place during interaction.
func (c *Controller) SetFractal(cfg *fractal.Config) error {
	if c.disposed {
		return ErrDisposed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("zoom: %w", err)
	}
	c.fractal = cfg
	c.render(false)
	return nil
}

// Fractal returns the active configuration.
func (c *Controller) Fractal() *fractal.Config {
	return c.fractal
}

// SetRenderMode selects the resolution of interactive frames and
// renders. Setting the current mode does nothing.
func (c *Controller) SetRenderMode(m render.Mode) error {
	if !m.Valid() {
		xaos.Logger().Debug("zoom: rejecting render mode", "mode", m)
		return fmt.Errorf("zoom: %w: %v", render.ErrUnsupportedMode, m)
	}
	if c.disposed {
		return ErrDisposed
	}
	if m == c.mode {
		return nil
	}
	c.mode = m
	c.render(false)
	return nil
}

// RenderMode returns the active render mode.
func (c *Controller) RenderMode() render.Mode {
	return c.mode
}

// State reports whether the user is interacting.
func (c *Controller) State() State {
	return State{Zooming: c.pointer.active()}
}

// Stats returns the counters.
func (c *Controller) Stats() Stats {
	s := c.stats
	s.Engine = c.engine.Stats()
	return s
}

// Frame returns the buffer of the most recent frame, or nil before the
// first one and after Dispose.
func (c *Controller) Frame() *render.StagingBuffer {
	return c.last
}

func (c *Controller) clearTiming() {
	c.hasLastFrame = false
	c.lastFrame = 0
	c.hasInteractive = false
	c.lastInteractive = 0
}

// schedule requests the next tick. Only one tick is ever pending.
func (c *Controller) schedule() {
	gen := c.gen
	c.pending = c.sched.RequestFrame(func(ts time.Duration) {
		c.tick(gen, ts)
	})
}

func (c *Controller) tick(gen uint64, ts time.Duration) {
	if c.disposed || c.stopped || gen != c.gen {
		return
	}
	c.pending = 0
	c.stats.Ticks++

	prev := ts
	if c.hasLastFrame {
		prev = c.lastFrame
	}
	c.lastFrame = ts
	c.hasLastFrame = true

	if c.pointer.active() {
		c.updateRegion(ts - prev)
		minInterval := time.Duration(0)
		if c.mode == render.Approximation {
			minInterval = c.tuning.MinInteractiveInterval
		}
		if !c.hasInteractive || ts-c.lastInteractive >= minInterval {
			c.render(true)
			c.lastInteractive = ts
			c.hasInteractive = true
		} else {
			c.stats.Skipped++
		}
	}
	c.schedule()
}

// updateRegion advances the view by delta according to the held buttons:
// the plane rectangle is translated by the pointer's movement since the
// last tick and scaled around the pointer's plane position.
func (c *Controller) updateRegion(delta time.Duration) {
	m := c.pointer.motion()
	if m == idle {
		return
	}
	w, h := c.surface.Size()
	if w <= 0 || h <= 0 {
		return
	}

	dt := min(max(delta, 0), c.tuning.MaxStep).Seconds()
	scale := math.Exp(-m.direction() * c.tuning.ZoomRate * dt)
	mmul := math.Pow(scale, c.tuning.Damping)

	region := &c.fractal.Region
	area := viewport.FromRegion(*region, w, h)
	anchor := area.PixelToPlane(c.pointer.pos, w, h)
	offset := area.PixelDelta(c.pointer.old, c.pointer.pos, w, h)
	*region = area.ScaleAbout(anchor, offset, mmul).Region(region.Angle)

	c.pointer.old = c.pointer.pos
}

// render draws a frame. Interactive frames use the active mode; all
// others are high fidelity.
func (c *Controller) render(interactive bool) {
	mode := render.HighFidelity
	if interactive {
		mode = c.mode
	}
	sb, err := c.engine.Render(c.fractal, mode)
	if err != nil {
		xaos.Logger().Warn("zoom: render", "mode", mode, "err", err)
		return
	}
	c.last = sb
	c.stats.Renders++
}

// PointerDown implements input.Handler.
func (c *Controller) PointerDown(ev input.PointerEvent) {
	if c.disposed || !validButton(ev.Button) {
		return
	}
	c.pointer.press(ev.Button, types.Point{X: ev.X, Y: ev.Y})
}

// PointerUp implements input.Handler. Releasing the last button renders
// a full-resolution frame.
func (c *Controller) PointerUp(ev input.PointerEvent) {
	if c.disposed || !validButton(ev.Button) {
		return
	}
	c.pointer.buttons[ev.Button] = false
	if !c.pointer.active() {
		c.render(false)
	}
}

// PointerMove implements input.Handler.
func (c *Controller) PointerMove(ev input.PointerEvent) {
	if c.disposed {
		return
	}
	c.pointer.pos = types.Point{X: ev.X, Y: ev.Y}
}

// PointerLeave implements input.Handler.
func (c *Controller) PointerLeave() {
	if c.disposed {
		return
	}
	c.pointer.reset()
	c.render(false)
}

// TouchStart implements input.Handler. Only the first point is tracked;
// events with more than two points are ignored.
func (c *Controller) TouchStart(ev input.TouchEvent) {
	if c.disposed || len(ev.Points) < 1 || len(ev.Points) > 2 {
		return
	}
	button := input.ButtonLeft
	if len(ev.Points) == 2 {
		button = input.ButtonRight
	}
	c.pointer.press(button, ev.Points[0])
}

// TouchMove implements input.Handler.
func (c *Controller) TouchMove(ev input.TouchEvent) {
	if c.disposed || len(ev.Points) == 0 {
		return
	}
	c.pointer.pos = ev.Points[0]
}

// TouchEnd implements input.Handler.
func (c *Controller) TouchEnd() {
	if c.disposed {
		return
	}
	c.pointer.reset()
	c.render(false)
}

// ContextMenu implements input.Handler. The host menu is suppressed so
// the right button can zoom out.
func (c *Controller) ContextMenu(int) bool {
	return !c.disposed
}
