// Package screen implements a terminal front-end for the emulator: an ANSI
// escape code renderer and a raw mode keypad reader.
package screen

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/chip8goemu/internal/chip8"
)

// Terminal control sequences.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	bell        = "\a"
)

// Screen renders frames to a terminal and samples the keypad from raw mode
// stdin. It implements the emulator Renderer and Input interfaces.
type Screen struct {
	in  *os.File
	out io.Writer

	restore *terminalState
	readBuf [64]byte
	hold    [chip8.NumKeys]int
	beeping bool
}

// New switches the controlling terminal into raw mode and prepares the
// display. Close restores the previous terminal state.
func New() (*Screen, error) {
	s := &Screen{
		in:  os.Stdin,
		out: os.Stdout,
	}

	state, err := enterRawMode(int(s.in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("entering raw terminal mode: %w", err)
	}
	s.restore = state

	fmt.Fprint(s.out, hideCursor+clearScreen)
	return s, nil
}

// Close restores the terminal state changed by New.
func (s *Screen) Close() error {
	fmt.Fprint(s.out, showCursor)

	if s.restore == nil {
		return nil
	}
	if err := restoreMode(int(s.in.Fd()), s.restore); err != nil {
		return fmt.Errorf("restoring terminal mode: %w", err)
	}
	return nil
}

// Render draws a frame to the terminal, one character per pixel.
func (s *Screen) Render(frame chip8.Frame) error {
	var b strings.Builder
	b.Grow(len(cursorHome) + (chip8.DisplayWidth+1)*chip8.DisplayHeight)

	b.WriteString(cursorHome)
	for y := range frame {
		for x := range frame[y] {
			if frame[y][x] {
				b.WriteByte('@')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(s.out, b.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Beep rings the terminal bell when the tone starts.
func (s *Screen) Beep(active bool) {
	if active && !s.beeping {
		fmt.Fprint(s.out, bell)
	}
	s.beeping = active
}
