package zoom

import (
	"github.com/joshvictor1024/go-xaos/pkg/input"
	"github.com/joshvictor1024/go-xaos/pkg/types"
)

// motion is what the held buttons ask the view to do.
type motion int

const (
	idle motion = iota
	panning
	zoomingIn
	zoomingOut
)

func (m motion) String() string {
	switch m {
	case panning:
		return "panning"
	case zoomingIn:
		return "zooming-in"
	case zoomingOut:
		return "zooming-out"
	default:
		return "idle"
	}
}

// direction is the sign of the zoom exponent.
func (m motion) direction() float64 {
	switch m {
	case zoomingIn:
		return 1
	case zoomingOut:
		return -1
	default:
		return 0
	}
}

type pointerState struct {
	pos, old types.Point
	buttons  [3]bool
}

func validButton(b int) bool {
	return b >= input.ButtonLeft && b <= input.ButtonRight
}

func (p *pointerState) active() bool {
	return p.buttons[0] || p.buttons[1] || p.buttons[2]
}

func (p *pointerState) motion() motion {
	b := p.buttons
	switch {
	case b[input.ButtonMiddle] || (b[input.ButtonLeft] && b[input.ButtonRight]):
		return panning
	case b[input.ButtonLeft]:
		return zoomingIn
	case b[input.ButtonRight]:
		return zoomingOut
	default:
		return idle
	}
}

// press marks button held and anchors the drag at pos.
func (p *pointerState) press(button int, pos types.Point) {
	p.buttons[button] = true
	p.pos = pos
	p.old = pos
}

func (p *pointerState) reset() {
	*p = pointerState{}
}
