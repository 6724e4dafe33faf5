package ioctl

// From <linux/fb.h>, it predates the _IOR encoding and carries no size.
const FBIOGET_VSCREENINFO Command = 0x4600

// From <linux/input.h>
const evdevType = 'E'

// AbsInfoSize is sizeof(struct input_absinfo).
const AbsInfoSize = 24

func evdev(mode Mode, size uint16, nr uintptr) Command {
	return Encode(mode, size, evdevType<<8|nr)
}

// EVIOCGNAME gets the device name.
func EVIOCGNAME(n uint16) Command { return evdev(Read, n, 0x06) }

// EVIOCGKEY gets the global key state bitmap.
func EVIOCGKEY(n uint16) Command { return evdev(Read, n, 0x18) }

// EVIOCGBIT gets the event bits for event type ev (0 returns the supported event types).
func EVIOCGBIT(ev, n uint16) Command { return evdev(Read, n, 0x20+uintptr(ev)) }

// EVIOCGABS gets the absolute axis value and limits.
func EVIOCGABS(abs uint16) Command { return evdev(Read, AbsInfoSize, 0x40+uintptr(abs)) }
