package render

import (
	"errors"
	"image"
	"slices"
)

// fakeSurface records every call the engine makes.
type fakeSurface struct {
	width, height int
	ctx           *fakeContext
}

func newFakeSurface(w, h int) *fakeSurface {
	return &fakeSurface{width: w, height: h, ctx: &fakeContext{smoothing: true}}
}

func (s *fakeSurface) Size() (int, int) { return s.width, s.height }

func (s *fakeSurface) SetSize(w, h int) error {
	s.width, s.height = w, h
	return nil
}

func (s *fakeSurface) Context() Context2D {
	if s.ctx == nil {
		// avoid returning a typed nil
		return nil
	}
	return s.ctx
}

type drawCall struct {
	src    *fakeStaging
	sr, dr image.Rectangle
	smooth bool
}

type fakeContext struct {
	smoothing bool
	clears    int
	draws     []drawCall
	created   []*fakeStaging
	failAlloc bool
}

func (c *fakeContext) NewStaging(w, h int) (Staging, error) {
	if c.failAlloc {
		return nil, errors.New("out of texture memory")
	}
	st := &fakeStaging{width: w, height: h}
	c.created = append(c.created, st)
	return st, nil
}

func (c *fakeContext) SetImageSmoothing(enabled bool) { c.smoothing = enabled }

func (c *fakeContext) Clear() { c.clears++ }

func (c *fakeContext) Draw(src Staging, sr, dr image.Rectangle) {
	c.draws = append(c.draws, drawCall{src: src.(*fakeStaging), sr: sr, dr: dr, smooth: c.smoothing})
}

type fakeStaging struct {
	width, height int
	pix           []uint32
	puts          int
	closed        bool
}

func (s *fakeStaging) Size() (int, int) { return s.width, s.height }

func (s *fakeStaging) Put(pix []uint32) {
	s.pix = slices.Clone(pix)
	s.puts++
}

func (s *fakeStaging) Close() error {
	s.closed = true
	return nil
}
