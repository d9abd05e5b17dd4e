// Package viewport converts between surface pixels and the complex plane.
package viewport

import (
	"github.com/joshvictor1024/go-xaos/pkg/types"
)

// Area is the rectangle of the complex plane shown on a surface.
// Begin maps to pixel (0, 0); End maps to pixel (width, height).
type Area struct {
	Begin, End types.Point
}

// FromRegion computes the plane rectangle for a surface of the given
// size. The region is square-corrected against the surface aspect ratio
// so that the picture is never stretched, whatever the ratio of the two
// radii recorded in region.
func FromRegion(region types.ViewportRegion, width, height int) Area {
	aspect := float64(width) / float64(height)
	size := max(region.Radius.X, region.Radius.Y*aspect)
	halfWidth := size / 2
	halfHeight := size / (2 * aspect)

	c := region.Center
	return Area{
		Begin: types.Point{X: c.X - halfWidth, Y: c.Y - halfHeight},
		End:   types.Point{X: c.X + halfWidth, Y: c.Y + halfHeight},
	}
}

// Size returns the extent on each axis.
func (a Area) Size() types.Point {
	return a.End.Sub(a.Begin)
}

// Step returns the plane distance covered by one pixel on each axis when
// the area is spread over width×height pixels.
func (a Area) Step(width, height int) types.Point {
	s := a.Size()
	return types.Point{X: s.X / float64(width), Y: s.Y / float64(height)}
}

// PixelToPlane maps a pixel position to the plane.
func (a Area) PixelToPlane(p types.Point, width, height int) types.Point {
	step := a.Step(width, height)
	return types.Point{X: a.Begin.X + p.X*step.X, Y: a.Begin.Y + p.Y*step.Y}
}

// PixelDelta converts the pixel movement from → to into the plane offset
// that keeps the picture under the pointer: dragging right moves the
// view left.
func (a Area) PixelDelta(from, to types.Point, width, height int) types.Point {
	step := a.Step(width, height)
	return types.Point{X: (from.X - to.X) * step.X, Y: (from.Y - to.Y) * step.Y}
}

// ScaleAbout translates the area by delta and scales it by mul around
// anchor. mul < 1 zooms in, mul > 1 zooms out, mul == 1 pans.
func (a Area) ScaleAbout(anchor, delta types.Point, mul float64) Area {
	return Area{
		Begin: types.Point{
			X: anchor.X + (a.Begin.X-anchor.X+delta.X)*mul,
			Y: anchor.Y + (a.Begin.Y-anchor.Y+delta.Y)*mul,
		},
		End: types.Point{
			X: anchor.X + (a.End.X-anchor.X+delta.X)*mul,
			Y: anchor.Y + (a.End.Y-anchor.Y+delta.Y)*mul,
		},
	}
}

// Region converts the area back into a viewport region with the given
// angle. The radius holds the full extent, matching FromRegion.
func (a Area) Region(angle float64) types.ViewportRegion {
	return types.ViewportRegion{
		Center: types.Point{X: (a.Begin.X + a.End.X) / 2, Y: (a.Begin.Y + a.End.Y) / 2},
		Radius: a.Size(),
		Angle:  angle,
	}
}
