package viewport

import (
	"math"
	"testing"

	"github.com/joshvictor1024/go-xaos/pkg/types"
)

const eps = 1e-12

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps*max(1, math.Abs(a), math.Abs(b))
}

func nearPoint(p, q types.Point) bool {
	return near(p.X, q.X) && near(p.Y, q.Y)
}

func defaultRegion() types.ViewportRegion {
	return types.ViewportRegion{
		Center: types.Point{X: -0.75, Y: 0},
		Radius: types.Point{X: 2.5, Y: 2.5},
	}
}

func TestFromRegionAspect(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantSize      types.Point
	}{
		{"square", 100, 100, types.Point{X: 2.5, Y: 2.5}},
		// radius.y·aspect = 5 wins over radius.x.
		{"wide", 200, 100, types.Point{X: 5, Y: 2.5}},
		// radius.x wins, y extent follows the aspect.
		{"tall", 100, 200, types.Point{X: 2.5, Y: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := FromRegion(defaultRegion(), tt.width, tt.height)
			if got := a.Size(); !nearPoint(got, tt.wantSize) {
				t.Errorf("Size() = %v, want %v", got, tt.wantSize)
			}
			// Pixels are square: equal plane step on both axes.
			step := a.Step(tt.width, tt.height)
			if !near(step.X, step.Y) {
				t.Errorf("Step() = %v, want equal axes", step)
			}
			c := a.Region(0).Center
			if !nearPoint(c, defaultRegion().Center) {
				t.Errorf("center moved to %v", c)
			}
		})
	}
}

func TestFromRegionAsymmetricRadius(t *testing.T) {
	r := defaultRegion()
	r.Radius = types.Point{X: 1, Y: 4}
	a := FromRegion(r, 300, 300)
	step := a.Step(300, 300)
	if !near(step.X, step.Y) {
		t.Errorf("asymmetric radius stretched the picture: step %v", step)
	}
	if got := a.Size(); !nearPoint(got, types.Point{X: 4, Y: 4}) {
		t.Errorf("Size() = %v, want (4, 4)", got)
	}
}

func TestPixelToPlane(t *testing.T) {
	a := FromRegion(defaultRegion(), 100, 100)
	if got := a.PixelToPlane(types.Point{}, 100, 100); !nearPoint(got, a.Begin) {
		t.Errorf("pixel (0,0) = %v, want Begin %v", got, a.Begin)
	}
	if got := a.PixelToPlane(types.Point{X: 100, Y: 100}, 100, 100); !nearPoint(got, a.End) {
		t.Errorf("pixel (100,100) = %v, want End %v", got, a.End)
	}
	if got := a.PixelToPlane(types.Point{X: 50, Y: 50}, 100, 100); !nearPoint(got, types.Point{X: -0.75, Y: 0}) {
		t.Errorf("center pixel = %v, want (-0.75, 0)", got)
	}
}

func TestPixelDelta(t *testing.T) {
	a := FromRegion(defaultRegion(), 100, 100)
	// Dragging 10px right moves the view 10 steps left.
	d := a.PixelDelta(types.Point{X: 50, Y: 50}, types.Point{X: 60, Y: 50}, 100, 100)
	if !nearPoint(d, types.Point{X: -0.25, Y: 0}) {
		t.Errorf("PixelDelta = %v, want (-0.25, 0)", d)
	}
}

func TestScaleAbout(t *testing.T) {
	a := Area{Begin: types.Point{X: -1, Y: -1}, End: types.Point{X: 1, Y: 1}}

	t.Run("zoom keeps anchor fixed", func(t *testing.T) {
		anchor := types.Point{X: 0.5, Y: 0.5}
		got := a.ScaleAbout(anchor, types.Point{}, 0.5)
		want := Area{Begin: types.Point{X: -0.25, Y: -0.25}, End: types.Point{X: 0.75, Y: 0.75}}
		if !nearPoint(got.Begin, want.Begin) || !nearPoint(got.End, want.End) {
			t.Errorf("ScaleAbout = %+v, want %+v", got, want)
		}
	})

	t.Run("pan keeps size", func(t *testing.T) {
		got := a.ScaleAbout(types.Point{}, types.Point{X: 0.25, Y: -0.5}, 1)
		if !nearPoint(got.Size(), a.Size()) {
			t.Errorf("pan changed size to %v", got.Size())
		}
		if !nearPoint(got.Begin, types.Point{X: -0.75, Y: -1.5}) {
			t.Errorf("pan Begin = %v", got.Begin)
		}
	})
}

func TestRegionRoundTrip(t *testing.T) {
	r := defaultRegion()
	a := FromRegion(r, 640, 480)
	back := FromRegion(a.Region(r.Angle), 640, 480)
	if !nearPoint(a.Begin, back.Begin) || !nearPoint(a.End, back.End) {
		t.Errorf("round trip moved the area: %+v -> %+v", a, back)
	}
}
