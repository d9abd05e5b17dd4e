package types

import (
	"errors"
	"math"
	"testing"
)

func TestViewportRegionValidate(t *testing.T) {
	tests := []struct {
		name    string
		radius  Point
		wantErr bool
	}{
		{"positive", Point{X: 2.5, Y: 2.5}, false},
		{"tiny", Point{X: 1e-300, Y: 1e-300}, false},
		{"zero x", Point{X: 0, Y: 1}, true},
		{"negative y", Point{X: 1, Y: -1}, true},
		{"nan", Point{X: math.NaN(), Y: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ViewportRegion{Radius: tt.radius}.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRegion) {
				t.Errorf("error %v does not wrap ErrInvalidRegion", err)
			}
		})
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Point{X: 1, Y: 2}
	q := Point{X: 0.5, Y: -1}
	if got := p.Add(q); got != (Point{X: 1.5, Y: 1}) {
		t.Errorf("Add = %v", got)
	}
	if got := p.Sub(q); got != (Point{X: 0.5, Y: 3}) {
		t.Errorf("Sub = %v", got)
	}
}
