package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/image/bmp"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/fbhal"
	"github.com/BeatGlow/fbhal/draw"
	"github.com/BeatGlow/fbhal/input"
	"github.com/BeatGlow/fbhal/pacer"
	"github.com/BeatGlow/fbhal/pixel"
)

const (
	colorBlack  = 0x0f
	colorWhite  = 0x30
	colorCursor = 0x16
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fatal(err)
	}
}

// run draws the test pattern until stopped. Errors are returned so the deferred cleanup
// restores the terminal and releases the display before the process exits.
func run(args []string) error {
	flags := flag.NewFlagSet("fbhal-test", flag.ExitOnError)
	fbFlag := flags.String("fb", fbhal.DefaultConfig.Device, "Framebuffer device")
	fpsFlag := flags.Float64("fps", fbhal.DefaultConfig.FPS, "Frames per second")
	widthFlag := flags.Int("width", fbhal.DefaultConfig.Width, "Background width")
	heightFlag := flags.Int("height", fbhal.DefaultConfig.Height, "Background height")
	paletteFlag := flags.String("palette", "", "Palette file (default: built-in NES palette)")
	checkedFlag := flags.Bool("checked", false, "Drop pixel writes outside the display")
	keyboardFlag := flags.String("keyboard", fbhal.AutoDevice, "Keyboard evdev device, auto or none")
	joystickFlag := flags.String("joystick", fbhal.AutoDevice, "Joystick evdev device, auto or none")
	gpioFlag := flags.Bool("gpio", false, "Read the joystick from GPIO pins")
	gpioUpFlag := flags.String("gpio-up", input.DefaultGPIOPadConfig.Up, "Up GPIO pin")
	gpioDownFlag := flags.String("gpio-down", input.DefaultGPIOPadConfig.Down, "Down GPIO pin")
	gpioLeftFlag := flags.String("gpio-left", input.DefaultGPIOPadConfig.Left, "Left GPIO pin")
	gpioRightFlag := flags.String("gpio-right", input.DefaultGPIOPadConfig.Right, "Right GPIO pin")
	gpioActiveHighFlag := flags.Bool("gpio-active-high", false, "GPIO buttons read high when pressed")
	framesFlag := flags.Uint64("frames", 0, "Stop after this many frames (default: run until interrupted)")
	snapshotFlag := flags.String("snapshot", "", "Write a BMP snapshot of the display on exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	config := &fbhal.Config{
		Device:   *fbFlag,
		FPS:      *fpsFlag,
		Width:    *widthFlag,
		Height:   *heightFlag,
		Checked:  *checkedFlag,
		Keyboard: *keyboardFlag,
		Joystick: *joystickFlag,
	}
	if *paletteFlag != "" {
		var err error
		if config.Palette, err = loadPalette(*paletteFlag); err != nil {
			return err
		}
	}
	if *gpioFlag {
		if _, err := host.Init(); err != nil {
			return err
		}
		pad := input.DefaultGPIOPadConfig
		pad.Up, pad.Down, pad.Left, pad.Right = *gpioUpFlag, *gpioDownFlag, *gpioLeftFlag, *gpioRightFlag
		pad.ActiveLow = !*gpioActiveHighFlag
		config.GPIOPad = &pad
	}

	s, err := fbhal.Open(config)
	if err != nil {
		return err
	}
	defer s.Close()
	fmt.Printf("using display: %s %s\n", *fbFlag, s.Geometry())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		s.Queue().Post(pacer.Event{Kind: pacer.QuitEvent})
	}()

	banner, err := bannerImage("fbhal", 16)
	if err != nil {
		return err
	}

	fmt.Println("hit q or control-c to stop...")
	tty, err := openTerminal(s.Queue())
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: "+err.Error())
	} else {
		defer tty.Restore()
	}
	var (
		g      = s.Geometry()
		bounds = image.Rect(0, 0, min(*widthFlag, int(g.Xres)), min(*heightFlag, int(g.Yres)))
		cursor = bounds.Min.Add(bounds.Size().Div(2))
		port   = s.Port()
		batch  draw.Batch
	)
	for *framesFlag == 0 || s.Frames() < *framesFlag {
		s.WaitForFrame()
		if ctx.Err() != nil || (tty != nil && tty.Quit()) {
			break
		}

		buttons := readPort(port)
		if buttons[input.Select] && buttons[input.Start] {
			break
		}
		cursor = moveCursor(cursor, buttons, bounds)

		batch.Reset()
		paletteBars(&batch, bounds)
		plotBanner(&batch, banner, image.Pt(4, 4), colorWhite)
		batch.Rectangle(image.Rectangle{Min: cursor, Max: cursor.Add(image.Pt(8, 8))}, colorCursor)

		s.SetBackground(colorBlack)
		s.Flush(batch)
		if err = s.FlipDisplay(); err != nil {
			return err
		}
	}
	if tty != nil {
		tty.Restore()
	}
	fmt.Printf("drew %d frames\n", s.Frames())

	if *snapshotFlag != "" {
		if err = writeSnapshot(*snapshotFlag, s.Framebuffer().Snapshot()); err != nil {
			return err
		}
		fmt.Printf("wrote snapshot to %s\n", *snapshotFlag)
	}
	return nil
}

func loadPalette(name string) (*pixel.Palette, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pixel.LoadPalette(f)
}

// readPort latches the controller port and shifts out all buttons like the emulated CPU does.
func readPort(port *input.Port) (buttons [input.NumButtons]bool) {
	port.Write(1)
	port.Write(0)
	for b := input.A; b <= input.Right; b++ {
		buttons[b] = port.Read() == 1
	}
	return
}

func moveCursor(p image.Point, buttons [input.NumButtons]bool, bounds image.Rectangle) image.Point {
	const step = 2
	if buttons[input.Up] {
		p.Y -= step
	}
	if buttons[input.Down] {
		p.Y += step
	}
	if buttons[input.Left] {
		p.X -= step
	}
	if buttons[input.Right] {
		p.X += step
	}
	inner := image.Rectangle{Min: bounds.Min, Max: bounds.Max.Sub(image.Pt(10, 10))}
	if inner.Empty() {
		return bounds.Min
	}
	p.X = max(inner.Min.X, min(p.X, inner.Max.X))
	p.Y = max(inner.Min.Y, min(p.Y, inner.Max.Y))
	return p
}

// paletteBars draws all palette entries as a 16×4 grid of bars in the lower half.
func paletteBars(b *draw.Batch, bounds image.Rectangle) {
	var (
		w = bounds.Dx() / 16 &^ 1
		h = bounds.Dy() / 8 &^ 1
		y = bounds.Min.Y + bounds.Dy()/2
	)
	if w < 2 || h < 2 {
		return
	}
	for i := 0; i < pixel.PaletteSize; i++ {
		x0 := bounds.Min.X + (i%16)*w
		y0 := y + (i/16)*h
		b.Blocks(image.Rect(x0, y0, x0+w, y0+h), 2, uint8(i))
	}
}

func writeSnapshot(name string, m image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = bmp.Encode(f, m); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
