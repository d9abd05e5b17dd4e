package render

import "image"

// Surface is the display target owned by the host.
type Surface interface {
	// Size returns the pixel size of the surface.
	Size() (width, height int)
	// SetSize changes the pixel size. Contents are undefined afterwards.
	SetSize(width, height int) error
	// Context returns the 2D drawing context, or nil if the host has none.
	Context() Context2D
}

// Context2D is the immediate-mode drawing capability of a Surface.
type Context2D interface {
	// NewStaging allocates an off-screen pixel buffer.
	NewStaging(width, height int) (Staging, error)
	// SetImageSmoothing selects between smoothed and nearest-neighbor
	// sampling for Draw.
	SetImageSmoothing(enabled bool)
	// Clear resets the whole surface.
	Clear()
	// Draw blits the sr part of src, scaled, onto the dr part of the
	// surface.
	Draw(src Staging, sr, dr image.Rectangle)
}

// Staging is an off-screen buffer created by a Context2D.
type Staging interface {
	Size() (width, height int)
	// Put replaces the contents with pix, row-major packed colors
	// (see fractal.Pack). len(pix) must equal width*height.
	Put(pix []uint32)
	// Close releases host resources.
	Close() error
}
