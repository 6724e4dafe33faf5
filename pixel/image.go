package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values, either in process memory or a device mapping.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	clear(p.Pix)
}

// CBGR16Image is a 16-bits per pixel 5-6-5-bit BGR image, it is the pixel writer for the
// mapped framebuffer.
type CBGR16Image struct {
	Buffer

	// Order is the byte order of the stored values; the host order for device memory.
	Order binary.ByteOrder

	// Checked drops writes outside Rect. When unset, coordinates are trusted and only Go's
	// slice bounds check protects the end of Pix.
	Checked bool
}

// NewCBGR16Image allocates an image in process memory.
func NewCBGR16Image(w, h int) *CBGR16Image {
	return &CBGR16Image{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    make([]byte, w*2*h),
			Stride: w * 2,
		},
		Order:   binary.NativeEndian,
		Checked: true,
	}
}

func (p *CBGR16Image) ColorModel() color.Model {
	return CBGR16Model
}

// PixOffset is the index of the first byte of pixel (x, y) in Pix.
func (p *CBGR16Image) PixOffset(x, y int) int {
	return y*p.Stride + x*2
}

func (p *CBGR16Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	return CBGR16{p.Order.Uint16(p.Pix[p.PixOffset(x, y):])}
}

func (p *CBGR16Image) Set(x, y int, c color.Color) {
	p.SetCBGR16(x, y, cbgr16Model(c).(CBGR16).V)
}

// SetCBGR16 stores an encoded value at (x, y).
func (p *CBGR16Image) SetCBGR16(x, y int, v uint16) {
	if p.Checked && !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.Order.PutUint16(p.Pix[p.PixOffset(x, y):], v)
}

// Block draws a logical pixel as the 2×2 block with its top left corner at (x, y).
func (p *CBGR16Image) Block(x, y int, v uint16) {
	p.SetCBGR16(x, y, v)
	p.SetCBGR16(x+1, y, v)
	p.SetCBGR16(x, y+1, v)
	p.SetCBGR16(x+1, y+1, v)
}

// FillRect writes every pixel in [0, w) × [0, h) once.
func (p *CBGR16Image) FillRect(w, h int, v uint16) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p.SetCBGR16(x, y, v)
		}
	}
}

func (p *CBGR16Image) Fill(c color.Color) {
	value := cbgr16Model(c).(CBGR16).V
	bytes := make([]byte, 2)
	p.Order.PutUint16(bytes, value)
	for i, l := 0, len(p.Pix)-1; i < l; i += 2 {
		copy(p.Pix[i:], bytes)
	}
}

var _ Image = (*CBGR16Image)(nil)
