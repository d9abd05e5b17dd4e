package fractal

import (
	"errors"
	"fmt"
	"image/color"
)

const (
	// PaletteSize is the number of entries produced by GeneratePalette.
	PaletteSize = 65536

	segmentSize = 8
)

// anchors are the colors the default palette interpolates between,
// visited cyclically.
var anchors = [...][3]uint8{
	{0, 0, 0},
	{120, 119, 238},
	{24, 7, 25},
	{197, 66, 28},
	{29, 18, 11},
	{135, 46, 71},
	{24, 27, 13},
	{241, 230, 128},
	{17, 31, 24},
	{240, 162, 139},
	{11, 4, 30},
	{106, 87, 189},
	{29, 21, 14},
	{12, 140, 118},
	{10, 6, 29},
	{50, 144, 77},
	{22, 0, 24},
	{148, 188, 243},
	{4, 32, 7},
	{231, 146, 14},
	{10, 13, 20},
	{184, 147, 68},
	{13, 28, 3},
	{169, 248, 152},
	{4, 0, 34},
	{62, 83, 48},
	{7, 21, 22},
	{152, 97, 184},
	{8, 3, 12},
	{247, 92, 235},
	{31, 32, 16},
}

// ErrEmptyPalette is returned by NewPalette for an empty color table.
var ErrEmptyPalette = errors.New("fractal: empty palette")

// Palette is an immutable table of packed colors. Entry 0 is the interior
// color, used for points that never escape.
//
// A Palette is never modified after construction, so renderers may read
// it from many goroutines without copying.
type Palette struct {
	colors []uint32
}

// NewPalette copies colors into a new Palette.
func NewPalette(colors []uint32) (*Palette, error) {
	if len(colors) == 0 {
		return nil, ErrEmptyPalette
	}
	c := make([]uint32, len(colors))
	copy(c, colors)
	return &Palette{colors: c}, nil
}

// GeneratePalette builds the default palette: PaletteSize opaque colors,
// linearly interpolated in runs of 8 between cyclically indexed anchors.
// The result is the same on every call.
func GeneratePalette() *Palette {
	nSegments := 255 / segmentSize
	setSegments := (PaletteSize + 3 + segmentSize - 1) / segmentSize

	colors := make([]uint32, 0, PaletteSize)
	for i := 0; i < setSegments && len(colors) < PaletteSize; i++ {
		from := anchors[i%nSegments]
		to := anchors[((i+1)%setSegments)%nSegments]

		r, g, b := float64(from[0]), float64(from[1]), float64(from[2])
		rs := (float64(to[0]) - r) / segmentSize
		gs := (float64(to[1]) - g) / segmentSize
		bs := (float64(to[2]) - b) / segmentSize

		for y := 0; y < segmentSize && len(colors) < PaletteSize; y++ {
			colors = append(colors, Pack(channel(r), channel(g), channel(b), 0xff))
			r += rs
			g += gs
			b += bs
		}
	}
	return &Palette{colors: colors}
}

// channel truncates an interpolated channel value to a byte.
func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	return len(p.colors)
}

// At returns entry i. An index outside [0, Len()) is a programming error
// and panics.
func (p *Palette) At(i int) uint32 {
	if i < 0 || i >= len(p.colors) {
		panic(fmt.Sprintf("fractal: palette index %d out of range [0, %d)", i, len(p.colors)))
	}
	return p.colors[i]
}

// Colors returns a copy of the table.
func (p *Palette) Colors() []uint32 {
	c := make([]uint32, len(p.colors))
	copy(c, p.colors)
	return c
}

// Pack encodes a color as A<<24 | B<<16 | G<<8 | R, which is R, G, B, A
// in little-endian memory order, the layout of an image.RGBA pixel.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// Unpack is the inverse of Pack.
func Unpack(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// RGBA converts a packed color to color.RGBA.
func RGBA(c uint32) color.RGBA {
	r, g, b, a := Unpack(c)
	return color.RGBA{R: r, G: g, B: b, A: a}
}
