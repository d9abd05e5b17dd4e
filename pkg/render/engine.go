// Package render turns a fractal configuration into pixels on a Surface.
//
// Frames are computed into a cached staging buffer, either at the full
// surface resolution or, in Approximation mode, at a reduced one, and
// then blitted onto the surface with nearest-neighbor scaling.
package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/joshvictor1024/go-xaos"
	"github.com/joshvictor1024/go-xaos/pkg/fractal"
	"github.com/joshvictor1024/go-xaos/pkg/viewport"
)

var (
	// ErrNoContext is returned by NewEngine when the surface has no
	// drawing context.
	ErrNoContext = errors.New("render: no drawing context")
	// ErrEmptySurface is returned by Render when the surface has no area.
	ErrEmptySurface = errors.New("render: surface has zero area")
)

// StagingBuffer is the off-screen frame buffer. It is reused from frame
// to frame and reallocated only when the requested size changes.
type StagingBuffer struct {
	Width, Height int
	// Pix holds Width*Height packed colors, row-major.
	Pix []uint32

	image Staging
}

// At returns the packed color at (x, y).
func (sb *StagingBuffer) At(x, y int) uint32 {
	return sb.Pix[y*sb.Width+x]
}

// Stats counts engine activity.
type Stats struct {
	Frames      uint64
	Allocations uint64
}

// Engine renders frames onto one surface. It is not safe for concurrent
// use; the per-pixel work inside Render is parallel.
type Engine struct {
	surface Surface
	ctx     Context2D
	staging *StagingBuffer
	opts    options
	stats   Stats
}

// NewEngine returns an engine drawing on s. It fails with ErrNoContext if
// s cannot provide a drawing context.
func NewEngine(s Surface, opts ...Option) (*Engine, error) {
	if s == nil {
		return nil, ErrNoContext
	}
	ctx := s.Context()
	if ctx == nil {
		return nil, ErrNoContext
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine{
		surface: s,
		ctx:     ctx,
		opts:    o,
	}, nil
}

// Surface returns the surface the engine draws on.
func (e *Engine) Surface() Surface {
	return e.surface
}

// Stats returns the counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// TargetSize returns the buffer size a frame in mode is computed at.
func (e *Engine) TargetSize(mode Mode) (width, height int) {
	sw, sh := e.surface.Size()
	scale := 1.0
	if mode == Approximation {
		scale = e.opts.approxScale
	}
	width = max(1, int(math.Floor(float64(sw)*scale)))
	height = max(1, int(math.Floor(float64(sh)*scale)))
	return width, height
}

// Render computes a frame of cfg at the resolution selected by mode and
// presents it on the whole surface. The returned buffer is owned by the
// engine and valid until the next Render.
func (e *Engine) Render(cfg *fractal.Config, mode Mode) (*StagingBuffer, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMode, mode)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sw, sh := e.surface.Size()
	if sw <= 0 || sh <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptySurface, sw, sh)
	}

	// Workers read only the snapshot, never the caller's region.
	snap := cfg.Snapshot()
	width, height := e.TargetSize(mode)
	sb, err := e.stagingFor(width, height)
	if err != nil {
		return nil, err
	}

	area := viewport.FromRegion(snap.Region, sw, sh)
	fw := &frameWork{
		cfg:   snap,
		begin: area.Begin,
		step:  area.Step(width, height),
		width: width,
		pix:   sb.Pix,
	}
	fw.fill(height, e.opts.workers)

	sb.image.Put(sb.Pix)
	e.ctx.SetImageSmoothing(false)
	e.ctx.Clear()
	e.ctx.Draw(sb.image, image.Rect(0, 0, width, height), image.Rect(0, 0, sw, sh))
	e.stats.Frames++
	return sb, nil
}

// stagingFor returns the cached staging buffer, reallocating it only if
// its size differs from width×height.
func (e *Engine) stagingFor(width, height int) (*StagingBuffer, error) {
	if e.staging != nil && e.staging.Width == width && e.staging.Height == height {
		return e.staging, nil
	}

	img, err := e.ctx.NewStaging(width, height)
	if err != nil {
		return nil, fmt.Errorf("render: allocate %dx%d staging buffer: %w", width, height, err)
	}
	if e.staging != nil {
		if err := e.staging.image.Close(); err != nil {
			xaos.Logger().Warn("render: release staging buffer", "err", err)
		}
	}
	e.staging = &StagingBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
		image:  img,
	}
	e.stats.Allocations++
	xaos.Logger().Debug("render: staging buffer reallocated", "width", width, "height", height)
	return e.staging, nil
}

// Close releases the staging buffer. The engine may be used again
// afterwards; the next Render reallocates.
func (e *Engine) Close() error {
	if e.staging == nil {
		return nil
	}
	err := e.staging.image.Close()
	e.staging = nil
	return err
}
