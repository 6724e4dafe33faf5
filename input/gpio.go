package input

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// GPIOPadConfig names the GPIO pins of a pad wired directly to the board. Empty names are
// left unconnected.
type GPIOPadConfig struct {
	// Buttons by joystick button number, see JoyMap.
	Buttons []string

	Up, Down, Left, Right string

	// ActiveLow pins read Low when pressed and get a pull-up, otherwise a pull-down.
	ActiveLow bool
}

// DefaultGPIOPadConfig is a common handheld wiring: switches to ground, A on GPIO5 and B on
// GPIO6, Select on GPIO13, Start on GPIO26, d-pad on GPIO17, 27, 22 and 23.
var DefaultGPIOPadConfig = GPIOPadConfig{
	Buttons:   []string{"", "GPIO5", "GPIO6", "", "", "", "", "", "GPIO13", "GPIO26"},
	Up:        "GPIO17",
	Down:      "GPIO27",
	Left:      "GPIO22",
	Right:     "GPIO23",
	ActiveLow: true,
}

// GPIOPad is a Joystick read from GPIO pins; the d-pad pins form the axes of stick 0.
type GPIOPad struct {
	Buttons               []gpio.PinIn
	Up, Down, Left, Right gpio.PinIn
	ActiveLow             bool
}

// OpenGPIOPad resolves the configured pins and sets them up as inputs. The host drivers
// must be initialized first, see periph.io/x/host/v3.
func OpenGPIOPad(config *GPIOPadConfig) (*GPIOPad, error) {
	if config == nil {
		config = new(GPIOPadConfig)
		*config = DefaultGPIOPadConfig
	}

	byName := func(name string) (gpio.PinIn, error) {
		if name == "" {
			return nil, nil
		}
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("input: unknown GPIO pin %q", name)
		}
		return p, nil
	}

	pad := &GPIOPad{
		Buttons:   make([]gpio.PinIn, len(config.Buttons)),
		ActiveLow: config.ActiveLow,
	}
	var err error
	for i, name := range config.Buttons {
		if pad.Buttons[i], err = byName(name); err != nil {
			return nil, err
		}
	}
	for _, dir := range []struct {
		pin  *gpio.PinIn
		name string
	}{
		{&pad.Up, config.Up},
		{&pad.Down, config.Down},
		{&pad.Left, config.Left},
		{&pad.Right, config.Right},
	} {
		if *dir.pin, err = byName(dir.name); err != nil {
			return nil, err
		}
	}

	if err = pad.setup(); err != nil {
		return nil, err
	}
	return pad, nil
}

func (p *GPIOPad) pins() []gpio.PinIn {
	return append([]gpio.PinIn{p.Up, p.Down, p.Left, p.Right}, p.Buttons...)
}

func (p *GPIOPad) setup() error {
	pull := gpio.PullDown
	if p.ActiveLow {
		pull = gpio.PullUp
	}
	for _, pin := range p.pins() {
		if pin == nil {
			continue
		}
		if err := pin.In(pull, gpio.NoEdge); err != nil {
			return fmt.Errorf("input: GPIO pin %s: %w", pin, err)
		}
	}
	return nil
}

func (p *GPIOPad) pressed(pin gpio.PinIn) bool {
	if pin == nil {
		return false
	}
	return pin.Read() != gpio.Level(p.ActiveLow)
}

// Button reads the n-th button pin.
func (p *GPIOPad) Button(n int) bool {
	if n < 0 || n >= len(p.Buttons) {
		return false
	}
	return p.pressed(p.Buttons[n])
}

// Axis reads the d-pad as stick 0. The result is always -1, 0 or 1.
func (p *GPIOPad) Axis(stick, axis int) float32 {
	if stick != 0 {
		return 0
	}
	var neg, pos gpio.PinIn
	switch axis {
	case 0:
		neg, pos = p.Left, p.Right
	case 1:
		neg, pos = p.Up, p.Down
	default:
		return 0
	}
	switch {
	case p.pressed(neg) && !p.pressed(pos):
		return -1
	case p.pressed(pos) && !p.pressed(neg):
		return 1
	default:
		return 0
	}
}
