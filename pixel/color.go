package pixel

import "image/color"

// CBGR16Model is the color model of the framebuffer panel.
var CBGR16Model color.Model = color.ModelFunc(cbgr16Model)

// CBGR16 represents a 16-bit 5-6-5 color with blue in the high bits and red in the low bits.
//
// This ordering matches the panel wiring and must not be swapped for the conventional
// RGB565 layout.
type CBGR16 struct {
	// CBlue, 5, CGreen, 6, CRed, 5
	V uint16
}

// EncodeCBGR16 packs an 8-bit per channel color, truncating the low bits of each channel.
func EncodeCBGR16(r, g, b uint8) uint16 {
	return uint16(b>>3)<<11 | uint16(g>>2)<<5 | uint16(r>>3)
}

func (c CBGR16) RGBA() (r, g, b, a uint32) {
	// Build a 5- or 6-bit value at the top of the low byte of each component.
	blu := (c.V & 0xF800) >> 8
	grn := (c.V & 0x07E0) >> 3
	red := (c.V & 0x001F) << 3
	// Duplicate the high bits in the low bits.
	blu |= blu >> 5
	grn |= grn >> 6
	red |= red >> 5
	// Duplicate the whole value in the high byte.
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return uint32(red), uint32(grn), uint32(blu), 0xffff
}

func cbgr16Model(c color.Color) color.Color {
	switch c := c.(type) {
	case CBGR16:
		return c
	case RGB:
		return CBGR16{EncodeCBGR16(c.R, c.G, c.B)}
	default:
		r, g, b, _ := c.RGBA()
		return CBGR16{EncodeCBGR16(uint8(r>>8), uint8(g>>8), uint8(b>>8))}
	}
}

// RGB is an opaque 8-bit per channel palette entry.
type RGB struct {
	R, G, B uint8
}

func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// CBGR16 encodes the color for the framebuffer.
func (c RGB) CBGR16() uint16 {
	return EncodeCBGR16(c.R, c.G, c.B)
}
