/*
Package rgb565 implements the 16-bit 5-6-5 packed RGB color used for each
word of a DMA memory dump.

A word is laid out as RRRRRGGGGGGBBBBB. Packing keeps the top bits of each
8-bit component; unpacking rebuilds the discarded low bits by replicating
the high bits so that full intensity maps back to 0xff.
*/
package rgb565

import "image/color"

// Model converts any color to a Color.
var Model color.Model = color.ModelFunc(model)

// Pack truncates an 8-bit RGB triple to a packed word.
func Pack(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// Unpack expands a packed word back to an 8-bit RGB triple.
func Unpack(v uint16) (r, g, b uint8) {
	r5 := uint8(v >> 11 & 0x1f)
	g6 := uint8(v >> 5 & 0x3f)
	b5 := uint8(v & 0x1f)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// Color is a single packed word.
type Color struct {
	V uint16
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := Unpack(c.V)
	// Duplicate the whole value in the high byte.
	r = uint32(r8) | uint32(r8)<<8
	g = uint32(g8) | uint32(g8)<<8
	b = uint32(b8) | uint32(b8)<<8
	return r, g, b, 0xffff
}

// NRGBA returns the expanded 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := Unpack(c.V)
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func model(c color.Color) color.Color {
	switch c := c.(type) {
	case Color:
		return c
	case color.NRGBA:
		return Color{Pack(c.R, c.G, c.B)}
	default:
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		return Color{Pack(nc.R, nc.G, nc.B)}
	}
}
