// Package input samples keyboard and joystick state and maps it to the logical buttons of
// the emulated controller.
//
// Sampling is stateless: every query polls the device, there is no debouncing or edge
// detection.
package input

// Button is a logical controller button.
type Button uint8

// Buttons, in controller port order after Power.
const (
	Power Button = iota
	A
	B
	Select
	Start
	Up
	Down
	Left
	Right
)

// NumButtons is the number of known buttons; any Button at or above it is unknown.
const NumButtons = int(Right) + 1

// Known reports if b is one of the defined buttons.
func (b Button) Known() bool {
	return b <= Right
}

func (b Button) String() string {
	switch b {
	case Power:
		return "power"
	case A:
		return "A"
	case B:
		return "B"
	case Select:
		return "select"
	case Start:
		return "start"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Linux input event codes, from <linux/input-event-codes.h>.
const (
	KeyW = 17
	KeyU = 22
	KeyI = 23
	KeyA = 30
	KeyS = 31
	KeyD = 32
	KeyJ = 36
	KeyK = 37
	KeyQ = 16

	BtnMisc     = 0x100
	BtnJoystick = 0x120
	BtnGamepad  = 0x130
	BtnDigi     = 0x140
	KeyMax      = 0x2ff

	AbsX     = 0x00
	AbsY     = 0x01
	AbsRX    = 0x03
	AbsRY    = 0x04
	AbsHat0X = 0x10
	AbsHat0Y = 0x11
	AbsMax   = 0x3f

	EvKey = 0x01
	EvAbs = 0x03
	EvMax = 0x1f
)
