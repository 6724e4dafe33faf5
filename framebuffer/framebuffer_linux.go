package framebuffer

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/BeatGlow/fbhal/internal/ioctl"
)

// Open a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x].
func Open(name string) (*Framebuffer, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, &DeviceError{Kind: ErrOpen, Name: name, Err: err}
	}
	return Map(&fileDevice{f: f})
}

type fileDevice struct {
	f *os.File
}

func (d *fileDevice) Name() string {
	return d.f.Name()
}

func (d *fileDevice) VarScreenInfo() (info VarScreenInfo, err error) {
	err = ioctl.Call(d.f.Fd(), uintptr(ioctl.FBIOGET_VSCREENINFO), uintptr(unsafe.Pointer(&info)))
	return
}

func (d *fileDevice) Mmap(length int) ([]byte, error) {
	return unix.Mmap(int(d.f.Fd()), 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

func (d *fileDevice) Munmap(b []byte) error {
	return unix.Munmap(b)
}

func (d *fileDevice) Close() error {
	return d.f.Close()
}
