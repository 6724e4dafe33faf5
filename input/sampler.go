package input

// Keyboard is a pollable keyboard.
type Keyboard interface {
	// KeyDown reports if the key with the given event code is held.
	KeyDown(code uint16) bool
}

// Joystick is a pollable joystick.
type Joystick interface {
	// Button reports if the n-th button is held.
	Button(n int) bool

	// Axis returns the position of an axis of a stick in [-1, 1].
	Axis(stick, axis int) float32
}

// KeyMap maps buttons to keyboard event codes.
type KeyMap map[Button]uint16

// DefaultKeyMap puts the d-pad on WASD and the buttons on the right hand.
var DefaultKeyMap = KeyMap{
	A:      KeyK,
	B:      KeyJ,
	Select: KeyU,
	Start:  KeyI,
	Up:     KeyW,
	Down:   KeyS,
	Left:   KeyA,
	Right:  KeyD,
}

// JoyMap maps buttons to joystick button numbers. Directions always come from stick 0.
type JoyMap map[Button]int

// DefaultJoyMap is the layout of common USB gamepads.
var DefaultJoyMap = JoyMap{
	A:      1,
	B:      2,
	Select: 8,
	Start:  9,
}

// Sampler maps physical input state to logical buttons.
type Sampler struct {
	Keyboard Keyboard
	Joystick Joystick
	KeyMap   KeyMap
	JoyMap   JoyMap

	// UnknownPressed is reported for buttons outside the known set.
	UnknownPressed bool
}

// NewSampler returns a sampler with the default mappings, either device may be nil.
func NewSampler(kb Keyboard, js Joystick) *Sampler {
	return &Sampler{
		Keyboard:       kb,
		Joystick:       js,
		KeyMap:         DefaultKeyMap,
		JoyMap:         DefaultJoyMap,
		UnknownPressed: true,
	}
}

// KeyState reports if b is held on the keyboard. Power is always on.
func (s *Sampler) KeyState(b Button) bool {
	switch {
	case b == Power:
		return true
	case !b.Known():
		return s.UnknownPressed
	case s.Keyboard == nil:
		return false
	}

	code, ok := s.KeyMap[b]
	if !ok {
		return false
	}
	return s.Keyboard.KeyDown(code)
}

// JoystickState reports if b is held on the joystick. Power is always on.
func (s *Sampler) JoystickState(b Button) bool {
	switch {
	case b == Power:
		return true
	case !b.Known():
		return s.UnknownPressed
	case s.Joystick == nil:
		return false
	}

	switch b {
	case Up:
		return s.Joystick.Axis(0, 1) == -1
	case Down:
		return s.Joystick.Axis(0, 1) == 1
	case Left:
		return s.Joystick.Axis(0, 0) == -1
	case Right:
		return s.Joystick.Axis(0, 0) == 1
	}

	n, ok := s.JoyMap[b]
	if !ok {
		return false
	}
	return s.Joystick.Button(n)
}

// State reports if b is held on either device.
func (s *Sampler) State(b Button) bool {
	return s.KeyState(b) || s.JoystickState(b)
}
