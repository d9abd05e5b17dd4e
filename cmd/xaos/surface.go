package main

import (
	"encoding/binary"
	"fmt"
	"image"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/go-xaos"
	"github.com/joshvictor1024/go-xaos/pkg/render"
)

// sdlSurface presents frames through an accelerated SDL renderer. Staging
// buffers are streaming textures; blits are Renderer.Copy calls, scaled
// by the GPU.
type sdlSurface struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	ctx      *sdlContext
	frames   uint64
}

func newSDLSurface(w *sdl.Window, r *sdl.Renderer) *sdlSurface {
	s := &sdlSurface{window: w, renderer: r}
	s.ctx = &sdlContext{s: s}
	return s
}

func (s *sdlSurface) Size() (int, int) {
	w, h, err := s.renderer.GetOutputSize()
	if err != nil {
		return 0, 0
	}
	return int(w), int(h)
}

// SetSize resizes the window when it does not already have the size.
func (s *sdlSurface) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("sdl surface: invalid size %dx%d", width, height)
	}
	if w, h := s.window.GetSize(); int(w) != width || int(h) != height {
		s.window.SetSize(int32(width), int32(height))
	}
	return nil
}

func (s *sdlSurface) Context() render.Context2D {
	return s.ctx
}

type sdlContext struct {
	s         *sdlSurface
	smoothing bool
}

// NewStaging creates a streaming texture. ABGR8888 stores a packed color
// with R in the lowest byte, the same layout the engine produces.
func (c *sdlContext) NewStaging(width, height int) (render.Staging, error) {
	quality := "0"
	if c.smoothing {
		quality = "1"
	}
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, quality)

	t, err := c.s.renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING, // only textures with TEXTUREACCESS_STREAMING can be locked
		int32(width),
		int32(height),
	)
	if err != nil {
		return nil, err
	}
	return &sdlStaging{texture: t, width: width, height: height}, nil
}

// SetImageSmoothing takes effect on textures created afterwards.
func (c *sdlContext) SetImageSmoothing(enabled bool) {
	c.smoothing = enabled
}

func (c *sdlContext) Clear() {
	c.s.renderer.SetDrawColor(0, 0, 0, 255)
	c.s.renderer.Clear()
}

func (c *sdlContext) Draw(src render.Staging, sr, dr image.Rectangle) {
	st, ok := src.(*sdlStaging)
	if !ok {
		return
	}
	err := c.s.renderer.Copy(st.texture, sdlRect(sr), sdlRect(dr))
	if err != nil {
		xaos.Logger().Warn("copy staging texture", "err", err)
		return
	}
	c.s.frames++
}

func sdlRect(r image.Rectangle) *sdl.Rect {
	return &sdl.Rect{X: int32(r.Min.X), Y: int32(r.Min.Y), W: int32(r.Dx()), H: int32(r.Dy())}
}

type sdlStaging struct {
	texture       *sdl.Texture
	width, height int
}

func (st *sdlStaging) Size() (int, int) {
	return st.width, st.height
}

func (st *sdlStaging) Put(pix []uint32) {
	data, pitch, err := st.texture.Lock(nil)
	if err != nil {
		xaos.Logger().Warn("lock staging texture", "err", err)
		return
	}
	defer st.texture.Unlock()
	for y := range st.height {
		row := data[y*pitch:]
		for x, c := range pix[y*st.width : (y+1)*st.width] {
			binary.LittleEndian.PutUint32(row[x*4:], c)
		}
	}
}

func (st *sdlStaging) Close() error {
	return st.texture.Destroy()
}
