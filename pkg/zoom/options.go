package zoom

import (
	"time"

	"github.com/joshvictor1024/go-xaos/pkg/render"
)

// Tuning holds the constants of the zoom animation.
type Tuning struct {
	// ZoomRate is the exponential zoom rate per second.
	ZoomRate float64
	// Damping is applied as an exponent to the per-tick scale factor.
	Damping float64
	// MaxStep caps the time a single tick may advance the animation.
	MaxStep time.Duration
	// MinInteractiveInterval is the shortest time between two
	// interactive renders in Approximation mode.
	MinInteractiveInterval time.Duration
}

// DefaultTuning returns the tuning the controller uses unless overridden.
func DefaultTuning() Tuning {
	return Tuning{
		ZoomRate:               4.2,
		Damping:                0.3,
		MaxStep:                50 * time.Millisecond,
		MinInteractiveInterval: 33 * time.Millisecond,
	}
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	mode       render.Mode
	tuning     Tuning
	engineOpts []render.Option
}

func defaultOptions() options {
	return options{
		mode:   render.Approximation,
		tuning: DefaultTuning(),
	}
}

// WithRenderMode sets the initial render mode. Invalid modes are ignored.
func WithRenderMode(m render.Mode) Option {
	return func(o *options) {
		if m.Valid() {
			o.mode = m
		}
	}
}

// WithTuning replaces the animation constants.
func WithTuning(t Tuning) Option {
	return func(o *options) {
		o.tuning = t
	}
}

// WithEngineOptions passes options through to the render engine.
func WithEngineOptions(opts ...render.Option) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}
