package types

import (
	"errors"
	"fmt"
)

// ErrInvalidRegion is returned by ViewportRegion.Validate.
var ErrInvalidRegion = errors.New("types: invalid viewport region")

// ViewportRegion is the window into the complex plane that is mapped onto
// the surface. Radius holds the full extent on each axis; the mapper
// square-corrects it against the surface aspect ratio.
type ViewportRegion struct {
	Center Point
	Radius Point
	// Angle is reserved. The formula does not rotate the plane.
	Angle float64
}

// Validate reports whether both radii are strictly positive.
func (r ViewportRegion) Validate() error {
	// written as negations so NaN fails too
	if !(r.Radius.X > 0) || !(r.Radius.Y > 0) {
		return fmt.Errorf("%w: radius (%g, %g) must be positive", ErrInvalidRegion, r.Radius.X, r.Radius.Y)
	}
	return nil
}

// Symmetry records optional axes of reflective symmetry of a formula.
// A nil axis means no symmetry on that axis. Nothing exploits it yet.
type Symmetry struct {
	X, Y *float64
}

// Axis returns a pointer to v, for building a Symmetry literal.
func Axis(v float64) *float64 {
	return &v
}
