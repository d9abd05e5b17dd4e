package main

import (
	"slices"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/go-xaos"
	"github.com/joshvictor1024/go-xaos/pkg/fractal"
	"github.com/joshvictor1024/go-xaos/pkg/input"
	"github.com/joshvictor1024/go-xaos/pkg/render"
	"github.com/joshvictor1024/go-xaos/pkg/types"
	"github.com/joshvictor1024/go-xaos/pkg/zoom"
)

// SDL also reports touches as mouse events from this device id.
const touchMouseID = 0xFFFFFFFF

type host struct {
	window     *sdl.Window
	ctrl       *zoom.Controller
	dispatcher *input.Dispatcher
	fingers    *fingers
	maxIter    int
	running    bool
}

func (h *host) handle(e sdl.Event) {
	switch t := e.(type) {
	case *sdl.QuitEvent:
		h.running = false
	case *sdl.MouseButtonEvent:
		if t.Which == touchMouseID {
			return
		}
		ev := input.PointerEvent{Button: mouseButton(t.Button), X: float64(t.X), Y: float64(t.Y)}
		if t.Type == sdl.MOUSEBUTTONDOWN {
			h.dispatcher.PointerDown(ev)
		} else {
			h.dispatcher.PointerUp(ev)
		}
	case *sdl.MouseMotionEvent:
		if t.Which == touchMouseID {
			return
		}
		h.dispatcher.PointerMove(input.PointerEvent{X: float64(t.X), Y: float64(t.Y)})
	case *sdl.TouchFingerEvent:
		h.handleFinger(t)
	case *sdl.WindowEvent:
		switch t.Event {
		case sdl.WINDOWEVENT_LEAVE:
			h.dispatcher.PointerLeave()
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			h.ctrl.Resize(int(t.Data1), int(t.Data2))
		case sdl.WINDOWEVENT_EXPOSED:
			w, ht := h.window.GetSize()
			h.ctrl.Resize(int(w), int(ht))
		}
	case *sdl.KeyboardEvent:
		if t.Type != sdl.KEYDOWN || t.Repeat != 0 {
			return
		}
		switch t.Keysym.Sym {
		case sdl.K_ESCAPE:
			h.running = false
		case sdl.K_m:
			h.toggleMode()
		case sdl.K_r:
			h.reset()
		}
	}
}

// mouseButton maps SDL's 1-based buttons onto input's 0-based indices.
// Buttons beyond the third stay out of range and are ignored downstream.
func mouseButton(b uint8) int {
	return int(b) - 1
}

func (h *host) handleFinger(t *sdl.TouchFingerEvent) {
	w, ht := h.window.GetSize()
	p := types.Point{X: float64(t.X) * float64(w), Y: float64(t.Y) * float64(ht)}
	id := int64(t.FingerID)
	switch t.Type {
	case sdl.FINGERDOWN:
		h.fingers.set(id, p)
		h.dispatcher.TouchStart(input.TouchEvent{Points: h.fingers.points()})
	case sdl.FINGERMOTION:
		h.fingers.set(id, p)
		h.dispatcher.TouchMove(input.TouchEvent{Points: h.fingers.points()})
	case sdl.FINGERUP:
		h.fingers.remove(id)
		h.dispatcher.TouchEnd()
	}
}

func (h *host) toggleMode() {
	next := render.HighFidelity
	if h.ctrl.RenderMode() == render.HighFidelity {
		next = render.Approximation
	}
	if err := h.ctrl.SetRenderMode(next); err != nil {
		xaos.Logger().Warn("set render mode", "err", err)
		return
	}
	xaos.Logger().Info("render mode", "mode", next)
}

func (h *host) reset() {
	cfg := fractal.NewMandelbrot()
	cfg.MaxIter = h.maxIter
	if err := h.ctrl.SetFractal(cfg); err != nil {
		xaos.Logger().Warn("reset view", "err", err)
	}
}

// fingers keeps active touch points in the order they went down, so the
// first finger stays the tracked one.
type fingers struct {
	ids []int64
	pos map[int64]types.Point
}

func newFingers() *fingers {
	return &fingers{pos: make(map[int64]types.Point)}
}

func (f *fingers) set(id int64, p types.Point) {
	if _, ok := f.pos[id]; !ok {
		f.ids = append(f.ids, id)
	}
	f.pos[id] = p
}

func (f *fingers) remove(id int64) {
	delete(f.pos, id)
	f.ids = slices.DeleteFunc(f.ids, func(x int64) bool { return x == id })
}

func (f *fingers) points() []types.Point {
	pts := make([]types.Point, 0, len(f.ids))
	for _, id := range f.ids {
		pts = append(pts, f.pos[id])
	}
	return pts
}
