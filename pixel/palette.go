package pixel

import (
	"errors"
	"fmt"
	"io"
)

// PaletteSize is the number of entries in a palette.
const PaletteSize = 64

// ErrPaletteSize is returned when a palette file holds fewer than PaletteSize entries.
var ErrPaletteSize = errors.New("pixel: palette file too short")

// Palette is a fixed color table indexed by palette index.
type Palette [PaletteSize]RGB

// Lookup returns the color at index.
//
// The index is not validated beyond the array bounds check; an index of PaletteSize
// or above is a caller error and panics.
func (p *Palette) Lookup(index uint8) RGB {
	return p[index]
}

// CBGR16 returns the palette pre-encoded for the framebuffer.
func (p *Palette) CBGR16() (table [PaletteSize]uint16) {
	for i, c := range p {
		table[i] = c.CBGR16()
	}
	return
}

// LoadPalette reads a palette from r in the common .pal layout: PaletteSize packed R, G, B
// triples. Trailing data, such as the emphasis variants some files carry, is ignored.
func LoadPalette(r io.Reader) (*Palette, error) {
	var raw [PaletteSize * 3]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %v", ErrPaletteSize, err)
		}
		return nil, err
	}

	p := new(Palette)
	for i := range p {
		p[i] = RGB{R: raw[i*3], G: raw[i*3+1], B: raw[i*3+2]}
	}
	return p, nil
}

// NESPalette is the 2C02 PPU color table.
var NESPalette = Palette{
	{0x54, 0x54, 0x54}, {0x00, 0x1e, 0x74}, {0x08, 0x10, 0x90}, {0x30, 0x00, 0x88},
	{0x44, 0x00, 0x64}, {0x5c, 0x00, 0x30}, {0x54, 0x04, 0x00}, {0x3c, 0x18, 0x00},
	{0x20, 0x2a, 0x00}, {0x08, 0x3a, 0x00}, {0x00, 0x40, 0x00}, {0x00, 0x3c, 0x00},
	{0x00, 0x32, 0x3c}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},

	{0x98, 0x96, 0x98}, {0x08, 0x4c, 0xc4}, {0x30, 0x32, 0xec}, {0x5c, 0x1e, 0xe4},
	{0x88, 0x14, 0xb0}, {0xa0, 0x14, 0x64}, {0x98, 0x22, 0x20}, {0x78, 0x3c, 0x00},
	{0x54, 0x5a, 0x00}, {0x28, 0x72, 0x00}, {0x08, 0x7c, 0x00}, {0x00, 0x76, 0x28},
	{0x00, 0x66, 0x78}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},

	{0xec, 0xee, 0xec}, {0x4c, 0x9a, 0xec}, {0x78, 0x7c, 0xec}, {0xb0, 0x62, 0xec},
	{0xe4, 0x54, 0xec}, {0xec, 0x58, 0xb4}, {0xec, 0x6a, 0x64}, {0xd4, 0x88, 0x20},
	{0xa0, 0xaa, 0x00}, {0x74, 0xc4, 0x00}, {0x4c, 0xd0, 0x20}, {0x38, 0xcc, 0x6c},
	{0x38, 0xb4, 0xcc}, {0x3c, 0x3c, 0x3c}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},

	{0xec, 0xee, 0xec}, {0xa8, 0xcc, 0xec}, {0xbc, 0xbc, 0xec}, {0xd4, 0xb2, 0xec},
	{0xec, 0xae, 0xec}, {0xec, 0xae, 0xd4}, {0xec, 0xb4, 0xb0}, {0xe4, 0xc4, 0x90},
	{0xcc, 0xd2, 0x78}, {0xb4, 0xde, 0x78}, {0xa8, 0xe2, 0x90}, {0x98, 0xe2, 0xb4},
	{0xa0, 0xd6, 0xe4}, {0xa0, 0xa2, 0xa0}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
}

// Command is a single pixel write produced by the engine: draw palette color Index at
// device coordinates (X, Y).
type Command struct {
	X, Y  int
	Index uint8
}
