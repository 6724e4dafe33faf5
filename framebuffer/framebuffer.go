// Package framebuffer provides access to the operating system's native framebuffer
//
// This requires framebuffer device support in the operating system. The device is opened
// with [Open], its geometry is resolved from the variable screen info and its pixel memory
// is mapped into the process. Only 16 bits per pixel modes are supported.
package framebuffer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"github.com/BeatGlow/fbhal/internal/debug"
	"github.com/BeatGlow/fbhal/pixel"
)

// Errors
var (
	ErrOpen             = errors.New("framebuffer: can't open device")
	ErrQuery            = errors.New("framebuffer: can't query screen info")
	ErrMap              = errors.New("framebuffer: can't map device memory")
	ErrUnsupportedDepth = errors.New("framebuffer: unsupported bits per pixel")
	ErrNotSupported     = errors.New("framebuffer: not supported")
	ErrClosed           = errors.New("framebuffer: closed")
)

// DeviceError is returned when the device can't be initialized. It matches both its Kind
// (one of ErrOpen, ErrQuery or ErrMap) and the underlying cause with [errors.Is].
type DeviceError struct {
	Kind error
	Name string
	Err  error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Name, e.Err)
}

func (e *DeviceError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Device is a framebuffer device node.
type Device interface {
	// Name of the device, typically its path.
	Name() string

	// VarScreenInfo queries the variable screen info.
	VarScreenInfo() (VarScreenInfo, error)

	// Mmap maps length bytes of device memory shared for reading and writing.
	Mmap(length int) ([]byte, error)

	// Munmap releases a mapping returned by Mmap.
	Munmap([]byte) error

	// Close the device.
	Close() error
}

// Framebuffer is a mapped framebuffer device.
type Framebuffer struct {
	Geometry
	dev   Device
	pix   []byte
	views []*pixel.CBGR16Image
}

// Map resolves the geometry of an open device and maps its memory. The device is closed
// if any step fails, on success it is owned by the returned Framebuffer.
func Map(dev Device) (*Framebuffer, error) {
	info, err := dev.VarScreenInfo()
	if err != nil {
		_ = dev.Close()
		return nil, &DeviceError{Kind: ErrQuery, Name: dev.Name(), Err: err}
	}

	g, err := Resolve(info)
	if err != nil {
		_ = dev.Close()
		return nil, &DeviceError{Kind: ErrQuery, Name: dev.Name(), Err: err}
	}
	debug.Printf("framebuffer: %s is %s", dev.Name(), g)

	pix, err := dev.Mmap(g.Size())
	if err != nil {
		_ = dev.Close()
		return nil, &DeviceError{Kind: ErrMap, Name: dev.Name(), Err: err}
	}
	if len(pix) < g.Size() {
		_ = dev.Munmap(pix)
		_ = dev.Close()
		return nil, &DeviceError{Kind: ErrMap, Name: dev.Name(), Err: fmt.Errorf("mapped %d of %d bytes", len(pix), g.Size())}
	}

	// Clear stale display memory.
	clear(pix)

	return &Framebuffer{
		Geometry: g,
		dev:      dev,
		pix:      pix,
	}, nil
}

// Pix is the mapped device memory.
func (fb *Framebuffer) Pix() []byte {
	return fb.pix
}

// Image returns a pixel writer over the mapped memory. Close empties every writer handed
// out, after which checked writers drop all writes and unchecked ones panic.
func (fb *Framebuffer) Image(checked bool) *pixel.CBGR16Image {
	i := fb.view(checked)
	if fb.pix != nil {
		fb.views = append(fb.views, i)
	}
	return i
}

func (fb *Framebuffer) view(checked bool) *pixel.CBGR16Image {
	i := &pixel.CBGR16Image{
		Buffer: pixel.Buffer{
			Pix:    fb.pix,
			Stride: fb.Stride(),
		},
		Order:   binary.NativeEndian,
		Checked: checked,
	}
	if fb.pix != nil {
		i.Rect = image.Rect(0, 0, int(fb.Xres), int(fb.Yres))
	}
	return i
}

// Snapshot copies the current display contents.
func (fb *Framebuffer) Snapshot() image.Image {
	i := fb.view(true)
	i.Pix = append([]byte(nil), i.Pix...)
	return i
}

// Close unmaps the memory and closes the device. The device is closed even if unmapping fails.
func (fb *Framebuffer) Close() error {
	if fb.dev == nil {
		return ErrClosed
	}
	for _, i := range fb.views {
		i.Pix = nil
		i.Rect = image.Rectangle{}
	}
	fb.views = nil

	var err error
	if fb.pix != nil {
		err = fb.dev.Munmap(fb.pix)
		fb.pix = nil
	}
	err = errors.Join(err, fb.dev.Close())
	fb.dev = nil
	return err
}
