// Package ggsurface is a render.Surface backed by a gogpu/gg drawing
// context, so fractal frames can be composed with other gg drawing.
package ggsurface

import (
	"encoding/binary"
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/joshvictor1024/go-xaos/pkg/render"
)

// Surface draws into a *gg.Context.
type Surface struct {
	dc     *gg.Context
	ctx    *context
	frames uint64
}

var _ render.Surface = (*Surface)(nil)

// New returns a surface with a fresh gg context of the given size.
func New(width, height int) *Surface {
	return Wrap(gg.NewContext(width, height))
}

// Wrap uses an existing gg context. The surface resizes it on SetSize.
func Wrap(dc *gg.Context) *Surface {
	s := &Surface{dc: dc}
	s.ctx = &context{s: s}
	return s
}

// Size implements render.Surface.
func (s *Surface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

// SetSize implements render.Surface.
func (s *Surface) SetSize(width, height int) error {
	if err := s.dc.Resize(width, height); err != nil {
		return fmt.Errorf("ggsurface: %w", err)
	}
	return nil
}

// Context implements render.Surface.
func (s *Surface) Context() render.Context2D {
	return s.ctx
}

// GG returns the underlying gg context.
func (s *Surface) GG() *gg.Context {
	return s.dc
}

// Image returns a copy of the current pixels.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// Frames returns how many blits the surface has received.
func (s *Surface) Frames() uint64 {
	return s.frames
}

// Close releases the gg context.
func (s *Surface) Close() error {
	return s.dc.Close()
}

// pixmapView aliases the context's pixmap as an image.RGBA.
func (s *Surface) pixmapView() *image.RGBA {
	pm := s.dc.ResizeTarget()
	return &image.RGBA{
		Pix:    pm.Data(),
		Stride: pm.Width() * 4,
		Rect:   image.Rect(0, 0, pm.Width(), pm.Height()),
	}
}

type context struct {
	s         *Surface
	smoothing bool
}

func (c *context) NewStaging(width, height int) (render.Staging, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ggsurface: invalid staging size %dx%d", width, height)
	}
	return &staging{img: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

func (c *context) SetImageSmoothing(enabled bool) {
	c.smoothing = enabled
}

func (c *context) Clear() {
	c.s.dc.Clear()
}

func (c *context) Draw(src render.Staging, sr, dr image.Rectangle) {
	st, ok := src.(*staging)
	if !ok {
		return
	}
	if c.smoothing {
		c.s.dc.DrawImageEx(gg.ImageBufFromImage(st.img), gg.DrawImageOptions{
			X:             float64(dr.Min.X),
			Y:             float64(dr.Min.Y),
			DstWidth:      float64(dr.Dx()),
			DstHeight:     float64(dr.Dy()),
			SrcRect:       &sr,
			Interpolation: gg.InterpBilinear,
			Opacity:       1,
			BlendMode:     gg.BlendNormal,
		})
	} else {
		// DrawImageEx treats a zero Interpolation as unset and samples
		// bilinearly, and InterpNearest is zero. Scale straight into the
		// pixmap instead.
		draw.NearestNeighbor.Scale(c.s.pixmapView(), dr, st.img, sr, draw.Src, nil)
	}
	c.s.frames++
}

type staging struct {
	img *image.RGBA
}

func (st *staging) Size() (int, int) {
	b := st.img.Bounds()
	return b.Dx(), b.Dy()
}

func (st *staging) Put(pix []uint32) {
	for i, c := range pix {
		binary.LittleEndian.PutUint32(st.img.Pix[i*4:], c)
	}
}

func (st *staging) Close() error {
	st.img = nil
	return nil
}
