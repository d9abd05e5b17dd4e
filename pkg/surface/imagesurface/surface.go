// Package imagesurface is an in-memory render.Surface backed by an
// *image.RGBA. Hosts without a window system (tests, the websocket host)
// present frames by reading Image.
package imagesurface

import (
	"encoding/binary"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/joshvictor1024/go-xaos/pkg/render"
)

// Surface is an image.RGBA render target.
type Surface struct {
	img    *image.RGBA
	ctx    *context
	frames uint64
}

var _ render.Surface = (*Surface)(nil)

// New returns a surface of the given size.
func New(width, height int) *Surface {
	s := &Surface{img: image.NewRGBA(image.Rect(0, 0, max(0, width), max(0, height)))}
	s.ctx = &context{s: s}
	return s
}

// Size implements render.Surface.
func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// SetSize implements render.Surface. The contents are cleared.
func (s *Surface) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("imagesurface: invalid size %dx%d", width, height)
	}
	if w, h := s.Size(); w == width && h == height {
		return nil
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// Context implements render.Surface.
func (s *Surface) Context() render.Context2D {
	return s.ctx
}

// Image returns the surface pixels. The image is replaced by SetSize.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Frames returns how many blits the surface has received. Hosts compare
// it between loop iterations to decide whether to present.
func (s *Surface) Frames() uint64 {
	return s.frames
}

type context struct {
	s         *Surface
	smoothing bool
}

func (c *context) NewStaging(width, height int) (render.Staging, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("imagesurface: invalid staging size %dx%d", width, height)
	}
	return &staging{img: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

func (c *context) SetImageSmoothing(enabled bool) {
	c.smoothing = enabled
}

func (c *context) Clear() {
	clear(c.s.img.Pix)
}

func (c *context) Draw(src render.Staging, sr, dr image.Rectangle) {
	st, ok := src.(*staging)
	if !ok {
		return
	}
	var interp draw.Interpolator = draw.NearestNeighbor
	if c.smoothing {
		interp = draw.ApproxBiLinear
	}
	interp.Scale(c.s.img, dr, st.img, sr, draw.Src, nil)
	c.s.frames++
}

type staging struct {
	img *image.RGBA
}

func (st *staging) Size() (int, int) {
	b := st.img.Bounds()
	return b.Dx(), b.Dy()
}

// Put stores packed colors; their little-endian bytes are R, G, B, A.
func (st *staging) Put(pix []uint32) {
	for i, c := range pix {
		binary.LittleEndian.PutUint32(st.img.Pix[i*4:], c)
	}
}

func (st *staging) Close() error {
	st.img = nil
	return nil
}
