package input

import (
	"bytes"
	"fmt"
	"os"
	"unsafe"

	"github.com/BeatGlow/fbhal/internal/debug"
	"github.com/BeatGlow/fbhal/internal/ioctl"
)

// Device is an evdev input device. It implements both Keyboard and Joystick; every query
// polls the kernel's current state.
type Device struct {
	f       *os.File
	fd      uintptr
	name    string
	keyCaps [keyBytes]byte
	absCaps [absBytes]byte
	buttons []uint16
	keys    [keyBytes]byte
}

// OpenDevice opens an evdev node, typically /dev/input/event[0..x].
func OpenDevice(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	d := &Device{
		f:  f,
		fd: f.Fd(),
	}

	var name [256]byte
	if err = d.ioctl(ioctl.EVIOCGNAME(uint16(len(name))), unsafe.Pointer(&name[0])); err != nil {
		_ = f.Close()
		return nil, err
	}
	if i := bytes.IndexByte(name[:], 0); i >= 0 {
		d.name = string(name[:i])
	}

	if err = d.ioctl(ioctl.EVIOCGBIT(EvKey, keyBytes), unsafe.Pointer(&d.keyCaps[0])); err != nil {
		_ = f.Close()
		return nil, err
	}
	// Devices without absolute axes don't answer this one.
	if err = d.ioctl(ioctl.EVIOCGBIT(EvAbs, absBytes), unsafe.Pointer(&d.absCaps[0])); err != nil {
		clear(d.absCaps[:])
	}
	d.buttons = supportedButtons(d.keyCaps[:])

	debug.Printf("input: %s is %q with %d buttons", path, d.name, len(d.buttons))
	return d, nil
}

func (d *Device) String() string {
	return fmt.Sprintf("%s (%s)", d.name, d.f.Name())
}

// Name reported by the driver.
func (d *Device) Name() string {
	return d.name
}

// IsKeyboard reports if the device has the keys of the default key map.
func (d *Device) IsKeyboard() bool {
	return isKeyboard(d.keyCaps[:])
}

// IsJoystick reports if the device has an X/Y stick and joystick or gamepad buttons.
func (d *Device) IsJoystick() bool {
	return isJoystick(d.keyCaps[:], d.absCaps[:])
}

// KeyDown polls the state of a key. Errors read as released.
func (d *Device) KeyDown(code uint16) bool {
	if err := d.ioctl(ioctl.EVIOCGKEY(keyBytes), unsafe.Pointer(&d.keys[0])); err != nil {
		debug.Printf("input: %s: %v", d, err)
		return false
	}
	return testBit(d.keys[:], int(code))
}

// Button polls the n-th supported button.
func (d *Device) Button(n int) bool {
	if n < 0 || n >= len(d.buttons) {
		return false
	}
	return d.KeyDown(d.buttons[n])
}

// Axis polls the position of an axis, normalized against the limits the driver reports.
func (d *Device) Axis(stick, axis int) float32 {
	code, ok := axisCode(stick, axis)
	if !ok || !testBit(d.absCaps[:], int(code)) {
		return 0
	}

	var info absInfo
	if err := d.ioctl(ioctl.EVIOCGABS(code), unsafe.Pointer(&info)); err != nil {
		debug.Printf("input: %s: %v", d, err)
		return 0
	}
	return normalizeAxis(info.Value, info.Minimum, info.Maximum)
}

// Close the device.
func (d *Device) Close() error {
	return d.f.Close()
}

func (d *Device) ioctl(cmd ioctl.Command, arg unsafe.Pointer) error {
	return ioctl.Call(d.fd, uintptr(cmd), uintptr(arg))
}

// FindKeyboard returns the first device that looks like a keyboard.
func FindKeyboard() (string, error) {
	paths, err := probe(func(d *Device) bool { return d.IsKeyboard() })
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// FindJoystick returns the last device that looks like a joystick, the most recently
// attached one in practice.
func FindJoystick() (string, error) {
	paths, err := probe(func(d *Device) bool { return d.IsJoystick() })
	if err != nil {
		return "", err
	}
	return paths[len(paths)-1], nil
}

func probe(match func(*Device) bool) ([]string, error) {
	candidates, err := eventDevices()
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, path := range candidates {
		d, err := OpenDevice(path)
		if err != nil {
			debug.Printf("input: skipping %s: %v", path, err)
			continue
		}
		if match(d) {
			paths = append(paths, path)
		}
		_ = d.Close()
	}
	if len(paths) == 0 {
		return nil, ErrNoDevice
	}
	return paths, nil
}
