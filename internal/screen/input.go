package screen

import (
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/chip8goemu/internal/chip8"
	"github.com/retroenv/chip8goemu/internal/emulator"
)

// keyEscape quits the emulation.
const keyEscape = 0x1b

// keyHoldFrames is how many frames a key stays pressed after its byte
// arrived. Terminals deliver no key release events, so a short hold window
// approximates them: held keys repeat fast enough to refresh the window.
const keyHoldFrames = 6

// keypadLayout maps the left QWERTY block onto the 4x4 CHIP-8 keypad:
//
//	1 2 3 4        1 2 3 C
//	q w e r   ->   4 5 6 D
//	a s d f        7 8 9 E
//	z x c v        A 0 B F
var keypadLayout = map[byte]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Poll drains pending terminal input and returns the current keypad state.
// It returns emulator.ErrQuit when the escape key was pressed.
func (s *Screen) Poll() (chip8.Keys, error) {
	n, err := s.in.Read(s.readBuf[:])
	if err != nil && !errors.Is(err, io.EOF) {
		return chip8.Keys{}, fmt.Errorf("reading keyboard input: %w", err)
	}

	for _, c := range s.readBuf[:n] {
		if c == keyEscape {
			return chip8.Keys{}, emulator.ErrQuit
		}
		s.handleKey(c)
	}

	return s.snapshot(), nil
}

// handleKey refreshes the hold window of the keypad key mapped to the
// terminal input byte, if any.
func (s *Screen) handleKey(c byte) {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if key, ok := keypadLayout[c]; ok {
		s.hold[key] = keyHoldFrames
	}
}

// snapshot decays the hold windows and returns the resulting keypad state.
func (s *Screen) snapshot() chip8.Keys {
	var keys chip8.Keys
	for key := range s.hold {
		if s.hold[key] > 0 {
			s.hold[key]--
			keys[key] = true
		}
	}
	return keys
}
