//go:build !linux

package input

// Device is an evdev input device, only available on Linux.
type Device struct{}

func OpenDevice(_ string) (*Device, error) {
	return nil, ErrNotSupported
}

func FindKeyboard() (string, error) {
	return "", ErrNotSupported
}

func FindJoystick() (string, error) {
	return "", ErrNotSupported
}

func (d *Device) String() string { return "unsupported" }
func (d *Device) Name() string { return "" }
func (d *Device) IsKeyboard() bool { return false }
func (d *Device) IsJoystick() bool { return false }
func (d *Device) KeyDown(_ uint16) bool { return false }
func (d *Device) Button(_ int) bool { return false }
func (d *Device) Axis(_, _ int) float32 { return 0 }
func (d *Device) Close() error { return nil }
