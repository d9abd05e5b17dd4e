package fractal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joshvictor1024/go-xaos/pkg/types"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("fractal: invalid config")

// Formula maps a point of the complex plane to a packed color. It must be
// pure: it may read cfg but not modify it, and it may be called from
// several goroutines at once.
type Formula func(cfg *Config, cr, ci float64) uint32

// Config describes one fractal: the formula, its parameters and the
// region currently on screen.
//
// The caller owns a Config. The zoom controller mutates only Region,
// in place, while the user interacts.
type Config struct {
	Symmetry types.Symmetry
	Region   types.ViewportRegion
	Z0       types.Point
	MaxIter  int
	Bailout  float64
	Palette  *Palette
	// Formula defaults to Mandelbrot when nil.
	Formula Formula
}

var defaultPalette = sync.OnceValue(GeneratePalette)

// NewMandelbrot returns the default configuration: the whole Mandelbrot
// set centered at (-0.75, 0) with the default palette.
func NewMandelbrot() *Config {
	return &Config{
		Symmetry: types.Symmetry{Y: types.Axis(0)},
		Region: types.ViewportRegion{
			Center: types.Point{X: -0.75, Y: 0},
			Radius: types.Point{X: 2.5, Y: 2.5},
		},
		MaxIter: 512,
		Bailout: 4,
		Palette: defaultPalette(),
		Formula: Mandelbrot,
	}
}

// Validate checks the invariants the renderer relies on.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if c.MaxIter <= 0 {
		return fmt.Errorf("%w: maxiter %d must be positive", ErrInvalidConfig, c.MaxIter)
	}
	if !(c.Bailout > 0) {
		return fmt.Errorf("%w: bailout %g must be positive", ErrInvalidConfig, c.Bailout)
	}
	if c.Palette == nil || c.Palette.Len() == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrEmptyPalette)
	}
	if err := c.Region.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Color evaluates the formula at cr + ci·i.
func (c *Config) Color(cr, ci float64) uint32 {
	if c.Formula == nil {
		return Mandelbrot(c, cr, ci)
	}
	return c.Formula(c, cr, ci)
}

// Snapshot returns a shallow copy. Region is a value so the copy is
// detached from later in-place region updates; the palette is immutable
// and shared.
func (c *Config) Snapshot() *Config {
	s := *c
	return &s
}
