// Package input carries pointer and touch events from a host to the zoom
// controller.
package input

import (
	"fmt"
	"slices"

	"github.com/joshvictor1024/go-xaos/pkg/types"
)

// Button indices carried by PointerEvent.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
)

// PointerEvent is a mouse event. X and Y are relative to the surface's
// top-left corner, in surface pixels.
type PointerEvent struct {
	Button int
	X, Y   float64
}

// TouchEvent lists the active touch points, surface-relative.
type TouchEvent struct {
	Points []types.Point
}

// Handler receives input. All methods are called on the goroutine that
// owns the handler.
type Handler interface {
	PointerDown(PointerEvent)
	PointerUp(PointerEvent)
	PointerMove(PointerEvent)
	PointerLeave()
	TouchStart(TouchEvent)
	TouchMove(TouchEvent)
	TouchEnd()
	// ContextMenu reports whether the host's context menu for button
	// should be suppressed.
	ContextMenu(button int) bool
}

// Source delivers input to attached handlers.
type Source interface {
	Attach(Handler)
	Detach(Handler)
}

// Kind identifies an Event.
type Kind uint8

const (
	KindPointerDown Kind = iota + 1
	KindPointerUp
	KindPointerMove
	KindPointerLeave
	KindTouchStart
	KindTouchMove
	KindTouchEnd
)

var kindNames = [...]string{
	KindPointerDown:  "pointerdown",
	KindPointerUp:    "pointerup",
	KindPointerMove:  "pointermove",
	KindPointerLeave: "pointerleave",
	KindTouchStart:   "touchstart",
	KindTouchMove:    "touchmove",
	KindTouchEnd:     "touchend",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) || kindNames[k] == "" {
		return nil, fmt.Errorf("input: unknown event kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name != "" && name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("input: unknown event kind %q", text)
}

// Event is any input event in one value, for hosts that queue input
// between goroutines.
type Event struct {
	Kind   Kind          `json:"type"`
	Button int           `json:"button,omitempty"`
	X      float64       `json:"x,omitempty"`
	Y      float64       `json:"y,omitempty"`
	Points []types.Point `json:"points,omitempty"`
}

// Dispatcher is a Source fed by explicit calls from the host. It is not
// safe for concurrent use.
type Dispatcher struct {
	handlers []Handler
}

var (
	_ Source  = (*Dispatcher)(nil)
	_ Handler = (*Dispatcher)(nil)
)

// Attach adds h. Attaching the same handler twice has no effect.
func (d *Dispatcher) Attach(h Handler) {
	if h == nil || slices.Contains(d.handlers, h) {
		return
	}
	d.handlers = append(d.handlers, h)
}

// Detach removes h.
func (d *Dispatcher) Detach(h Handler) {
	d.handlers = slices.DeleteFunc(d.handlers, func(x Handler) bool { return x == h })
}

// Len returns the number of attached handlers.
func (d *Dispatcher) Len() int {
	return len(d.handlers)
}

// each iterates over a copy so handlers may detach themselves.
func (d *Dispatcher) each(f func(Handler)) {
	for _, h := range slices.Clone(d.handlers) {
		f(h)
	}
}

func (d *Dispatcher) PointerDown(ev PointerEvent) { d.each(func(h Handler) { h.PointerDown(ev) }) }
func (d *Dispatcher) PointerUp(ev PointerEvent)   { d.each(func(h Handler) { h.PointerUp(ev) }) }
func (d *Dispatcher) PointerMove(ev PointerEvent) { d.each(func(h Handler) { h.PointerMove(ev) }) }
func (d *Dispatcher) PointerLeave()               { d.each(func(h Handler) { h.PointerLeave() }) }
func (d *Dispatcher) TouchStart(ev TouchEvent)    { d.each(func(h Handler) { h.TouchStart(ev) }) }
func (d *Dispatcher) TouchMove(ev TouchEvent)     { d.each(func(h Handler) { h.TouchMove(ev) }) }
func (d *Dispatcher) TouchEnd()                   { d.each(func(h Handler) { h.TouchEnd() }) }

// ContextMenu reports whether any handler suppresses the menu.
func (d *Dispatcher) ContextMenu(button int) bool {
	suppress := false
	d.each(func(h Handler) {
		if h.ContextMenu(button) {
			suppress = true
		}
	})
	return suppress
}

// Dispatch routes ev to the matching Handler method. Events of unknown
// kind are dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	p := PointerEvent{Button: ev.Button, X: ev.X, Y: ev.Y}
	switch ev.Kind {
	case KindPointerDown:
		d.PointerDown(p)
	case KindPointerUp:
		d.PointerUp(p)
	case KindPointerMove:
		d.PointerMove(p)
	case KindPointerLeave:
		d.PointerLeave()
	case KindTouchStart:
		d.TouchStart(TouchEvent{Points: ev.Points})
	case KindTouchMove:
		d.TouchMove(TouchEvent{Points: ev.Points})
	case KindTouchEnd:
		d.TouchEnd()
	}
}
