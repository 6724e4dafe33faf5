package framebuffer

import (
	"fmt"

	"github.com/BeatGlow/fbhal/internal/debug"
)

// Geometry is the resolved display geometry. Stride and size are derived.
type Geometry struct {
	BitsPerPixel uint
	Xres         uint
	Yres         uint
}

// BytesPerPixel is the storage size of one pixel.
func (g Geometry) BytesPerPixel() int {
	return int(g.BitsPerPixel / 8)
}

// Stride is the number of bytes per scan line.
func (g Geometry) Stride() int {
	return int(g.Xres) * g.BytesPerPixel()
}

// Size is the number of bytes to map.
func (g Geometry) Size() int {
	return int(g.Yres) * g.Stride()
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d %d bpp (stride %d, %d bytes)", g.Xres, g.Yres, g.BitsPerPixel, g.Stride(), g.Size())
}

// Resolve computes the geometry from the variable screen info.
func Resolve(info VarScreenInfo) (Geometry, error) {
	if info.BitsPerPixel != 16 {
		return Geometry{}, fmt.Errorf("%w: %d", ErrUnsupportedDepth, info.BitsPerPixel)
	}
	if !info.isCBGR16() {
		debug.Printf("framebuffer: pixel layout red %+v green %+v blue %+v is not 5-6-5 blue high, colors may be off",
			info.Red, info.Green, info.Blue)
	}
	return Geometry{
		BitsPerPixel: uint(info.BitsPerPixel),
		Xres:         uint(info.Xres),
		Yres:         uint(info.Yres),
	}, nil
}

// BitField describes the position of a color channel in a pixel.
type BitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// VarScreenInfo contains device independent changeable information about a frame buffer
// device and a specific video mode (struct fb_var_screeninfo).
type VarScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha BitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

func (info *VarScreenInfo) isCBGR16() bool {
	return info.Blue.Offset == 11 &&
		info.Blue.Length == 5 &&
		info.Green.Offset == 5 &&
		info.Green.Length == 6 &&
		info.Red.Offset == 0 &&
		info.Red.Length == 5
}
