package main

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/pkg/term/termios"
	"golang.org/x/term"

	"github.com/BeatGlow/fbhal/pacer"
)

// terminal puts the controlling terminal in raw mode, so keys pressed for the evdev
// keyboard don't echo over the framebuffer console, and watches it for the quit keys.
type terminal struct {
	fd       int
	oldState *term.State
	quit     atomic.Bool
	restore  sync.Once
}

func openTerminal(queue *pacer.Queue) (*terminal, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to set raw mode: %w", err)
	}

	t := &terminal{fd: fd, oldState: oldState}
	go t.read(queue)
	return t, nil
}

func (t *terminal) read(queue *pacer.Queue) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		// Raw mode delivers control-c as a byte instead of a signal.
		switch buf[0] {
		case 'q', 'Q', 0x03, 0x1b:
			t.quit.Store(true)
			queue.Post(pacer.Event{Kind: pacer.QuitEvent})
		}
	}
}

// Quit reports if a quit key was pressed.
func (t *terminal) Quit() bool {
	return t.quit.Load()
}

// Restore discards pending input and restores the terminal state.
func (t *terminal) Restore() {
	t.restore.Do(func() {
		_ = termios.Tcflush(uintptr(t.fd), termios.TCIFLUSH)
		_ = term.Restore(t.fd, t.oldState)
	})
}
