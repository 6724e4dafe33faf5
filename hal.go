// Package fbhal is the display and input hardware abstraction layer of an emulator running
// on a Linux framebuffer console.
//
// A [Session] owns the mapped framebuffer, the frame timer and the input devices. The
// engine loop is:
//
//	for {
//		s.WaitForFrame()
//		// sample s.Port() or s.KeyState / s.JoystickState
//		// run one engine step
//		s.SetBackground(bg)
//		s.Flush(commands)
//	}
package fbhal

import (
	"errors"
	"sync/atomic"

	"github.com/BeatGlow/fbhal/framebuffer"
	"github.com/BeatGlow/fbhal/input"
	"github.com/BeatGlow/fbhal/internal/debug"
	"github.com/BeatGlow/fbhal/pacer"
	"github.com/BeatGlow/fbhal/pixel"
)

// Errors
var (
	ErrSessionActive = errors.New("fbhal: a display session is already open")
	ErrClosed        = errors.New("fbhal: session is closed")
)

// Device selection values for Config.Keyboard and Config.Joystick.
const (
	// AutoDevice probes /dev/input for a matching device.
	AutoDevice = "auto"

	// NoDevice disables the device.
	NoDevice = "none"
)

// Config is the session configuration.
type Config struct {
	// Device is the framebuffer device node.
	Device string

	// FPS is the frame rate of the timer.
	FPS float64

	// Width and Height of the region cleared by SetBackground, in device pixels. The region
	// is clipped to the display.
	Width  int
	Height int

	// Palette maps color indices to colors.
	Palette *pixel.Palette

	// Checked drops pixel writes outside the display instead of trusting the caller.
	Checked bool

	// Keyboard and Joystick are evdev nodes, AutoDevice or NoDevice.
	Keyboard string
	Joystick string

	// KeyMap overrides input.DefaultKeyMap.
	KeyMap input.KeyMap

	// GPIOPad, if set, is used as the joystick instead of an evdev device.
	GPIOPad *input.GPIOPadConfig
}

// DefaultConfig are the default configuration values.
var DefaultConfig = Config{
	Device:   "/dev/fb0",
	FPS:      60,
	Width:    256,
	Height:   240,
	Palette:  &pixel.NESPalette,
	Keyboard: AutoDevice,
	Joystick: AutoDevice,
}

var (
	// active guards the single display session per process.
	active atomic.Bool

	openFramebuffer = framebuffer.Open
)

// Session is the open display. It must only be used from one goroutine.
type Session struct {
	config  Config
	fb      *framebuffer.Framebuffer
	image   *pixel.CBGR16Image
	colors  [pixel.PaletteSize]uint16
	queue   *pacer.Queue
	timer   *pacer.Timer
	pacer   *pacer.Pacer
	sampler *input.Sampler
	port    *input.Port
	closers []func() error
}

// Open the display. Only one session can be open at a time; a failed Open releases
// everything it acquired.
func Open(config *Config) (*Session, error) {
	if !active.CompareAndSwap(false, true) {
		return nil, ErrSessionActive
	}

	s, err := open(withDefaults(config))
	if err != nil {
		active.Store(false)
		return nil, err
	}
	return s, nil
}

func withDefaults(config *Config) Config {
	if config == nil {
		return DefaultConfig
	}
	c := *config
	if c.Device == "" {
		c.Device = DefaultConfig.Device
	}
	if c.FPS <= 0 {
		c.FPS = DefaultConfig.FPS
	}
	if c.Width <= 0 {
		c.Width = DefaultConfig.Width
	}
	if c.Height <= 0 {
		c.Height = DefaultConfig.Height
	}
	if c.Palette == nil {
		c.Palette = DefaultConfig.Palette
	}
	if c.Keyboard == "" {
		c.Keyboard = DefaultConfig.Keyboard
	}
	if c.Joystick == "" {
		c.Joystick = DefaultConfig.Joystick
	}
	return c
}

func open(config Config) (*Session, error) {
	fb, err := openFramebuffer(config.Device)
	if err != nil {
		return nil, err
	}

	s := newSession(config, fb)

	var kb input.Keyboard
	if d := openKeyboard(config.Keyboard); d != nil {
		kb = d
		s.closers = append(s.closers, d.Close)
	}
	js, err := openJoystick(config)
	if err != nil {
		_ = s.close()
		return nil, err
	}
	if closer, ok := js.(interface{ Close() error }); ok {
		s.closers = append(s.closers, closer.Close)
	}
	s.setInput(kb, js)

	s.timer = pacer.NewTimer(config.FPS, s.queue)
	s.timer.Start()
	return s, nil
}

func newSession(config Config, fb *framebuffer.Framebuffer) *Session {
	if w, h := int(fb.Xres), int(fb.Yres); config.Width > w || config.Height > h {
		debug.Printf("fbhal: background %dx%d clipped to the %dx%d display", config.Width, config.Height, w, h)
		config.Width, config.Height = min(config.Width, w), min(config.Height, h)
	}

	s := &Session{
		config: config,
		fb:     fb,
		image:  fb.Image(config.Checked),
		colors: config.Palette.CBGR16(),
		queue:  pacer.NewQueue(),
	}
	s.pacer = pacer.New(s.queue)
	s.setInput(nil, nil)
	return s
}

func (s *Session) setInput(kb input.Keyboard, js input.Joystick) {
	s.sampler = input.NewSampler(kb, js)
	if s.config.KeyMap != nil {
		s.sampler.KeyMap = s.config.KeyMap
	}
	s.port = input.NewPort(s.sampler)
}

// openKeyboard returns nil (keyboard input disabled) when no device can be opened.
func openKeyboard(path string) *input.Device {
	if path == NoDevice {
		return nil
	}
	if path == AutoDevice {
		var err error
		if path, err = input.FindKeyboard(); err != nil {
			debug.Printf("fbhal: no keyboard: %v", err)
			return nil
		}
	}
	d, err := input.OpenDevice(path)
	if err != nil {
		debug.Printf("fbhal: keyboard %s: %v", path, err)
		return nil
	}
	return d
}

// openJoystick returns a nil Joystick when no evdev joystick is present; a configured GPIO
// pad that can't be set up is an error.
func openJoystick(config Config) (input.Joystick, error) {
	if config.GPIOPad != nil {
		pad, err := input.OpenGPIOPad(config.GPIOPad)
		if err != nil {
			return nil, err
		}
		return pad, nil
	}

	path := config.Joystick
	if path == NoDevice {
		return nil, nil
	}
	if path == AutoDevice {
		var err error
		if path, err = input.FindJoystick(); err != nil {
			debug.Printf("fbhal: no joystick: %v", err)
			return nil, nil
		}
	}
	d, err := input.OpenDevice(path)
	if err != nil {
		debug.Printf("fbhal: joystick %s: %v", path, err)
		return nil, nil
	}
	return d, nil
}

// Close stops the timer, closes the input devices, then unmaps and closes the framebuffer.
func (s *Session) Close() error {
	if s.fb == nil {
		return ErrClosed
	}
	err := s.close()
	active.Store(false)
	return err
}

func (s *Session) close() error {
	if s.timer != nil {
		s.timer.Stop()
	}
	var errs []error
	for _, closer := range s.closers {
		errs = append(errs, closer())
	}
	s.closers = nil
	errs = append(errs, s.fb.Close())
	s.fb = nil
	return errors.Join(errs...)
}

// Geometry of the display.
func (s *Session) Geometry() framebuffer.Geometry {
	return s.fb.Geometry
}

// Image is the pixel writer over the display memory.
func (s *Session) Image() *pixel.CBGR16Image {
	return s.image
}

// Framebuffer is the mapped display.
func (s *Session) Framebuffer() *framebuffer.Framebuffer {
	return s.fb
}

// SetBackground fills the configured region, clipped to the display, with a palette color,
// one device pixel per pixel.
func (s *Session) SetBackground(index uint8) {
	s.image.FillRect(s.config.Width, s.config.Height, s.colors[index])
}

// FlushPixel draws one command as a 2×2 block.
func (s *Session) FlushPixel(c pixel.Command) {
	s.image.Block(c.X, c.Y, s.colors[c.Index])
}

// Flush draws a batch of commands in order, each as a 2×2 block.
func (s *Session) Flush(commands []pixel.Command) {
	for _, c := range commands {
		s.image.Block(c.X, c.Y, s.colors[c.Index])
	}
}

// FlipDisplay presents the frame. The display scans the mapped memory on its own, so there
// is nothing to do.
func (s *Session) FlipDisplay() error {
	return nil
}

// WaitForFrame blocks until the next timer tick.
func (s *Session) WaitForFrame() {
	s.pacer.WaitForFrame()
}

// Frames is the number of frames waited for.
func (s *Session) Frames() uint64 {
	return s.pacer.Frames()
}

// Queue is the event queue the frame timer posts to. Other event sources may post to it.
func (s *Session) Queue() *pacer.Queue {
	return s.queue
}

// KeyState polls a button on the keyboard.
func (s *Session) KeyState(b input.Button) bool {
	return s.sampler.KeyState(b)
}

// JoystickState polls a button on the joystick.
func (s *Session) JoystickState(b input.Button) bool {
	return s.sampler.JoystickState(b)
}

// Sampler maps the session's input devices to buttons.
func (s *Session) Sampler() *input.Sampler {
	return s.sampler
}

// Port is the controller port for the engine.
func (s *Session) Port() *input.Port {
	return s.port
}
