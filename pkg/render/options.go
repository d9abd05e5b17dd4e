package render

import "runtime"

// DefaultApproximationScale is the linear scale of Approximation frames.
const DefaultApproximationScale = 0.25

// Option configures an Engine.
//
// Example:
//
//	e, err := render.NewEngine(s, render.WithWorkers(1))
type Option func(*options)

type options struct {
	workers     int
	approxScale float64
}

func defaultOptions() options {
	return options{
		workers:     runtime.GOMAXPROCS(0),
		approxScale: DefaultApproximationScale,
	}
}

// WithWorkers sets how many goroutines fill a frame. Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = max(1, n)
	}
}

// WithApproximationScale sets the linear scale used in Approximation mode.
// Values outside (0, 1] are ignored.
func WithApproximationScale(scale float64) Option {
	return func(o *options) {
		if scale > 0 && scale <= 1 {
			o.approxScale = scale
		}
	}
}
