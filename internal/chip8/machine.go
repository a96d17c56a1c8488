// Package chip8 implements the CHIP-8 virtual machine core.
package chip8

import (
	"fmt"
	"math/rand"
	"time"
)

// Memory layout and machine dimension constants.
const (
	// MemorySize is the total addressable memory of a CHIP-8 machine.
	MemorySize = 4096

	// ProgramStart is the memory address where CHIP-8 programs begin execution.
	ProgramStart = 0x200

	// FontStart is the memory address of the built-in hexadecimal glyph table.
	FontStart = 0x050

	// MaxROMSize is the largest program image that fits into memory.
	MaxROMSize = MemorySize - ProgramStart

	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16

	// NumRegisters is the number of general purpose registers V0-VF.
	NumRegisters = 16

	// NumKeys is the number of keys on the CHIP-8 hexadecimal keypad.
	NumKeys = 16

	// DisplayWidth is the width of the monochrome display in pixels.
	DisplayWidth = 64

	// DisplayHeight is the height of the monochrome display in pixels.
	DisplayHeight = 32

	// addressMask limits addresses to the 12 bit memory space.
	addressMask = MemorySize - 1
)

// Frame is a snapshot of the display, one bool per pixel.
type Frame [DisplayHeight][DisplayWidth]bool

// Keys is the state of the 16 key keypad, indexed by key value 0x0-0xF.
type Keys [NumKeys]bool

// Options configure a new machine.
type Options struct {
	Quirks Quirks

	// Seed for the random number generator used by the RND opcode.
	// A zero seed selects a time based seed.
	Seed int64
}

// DefaultOptions returns the default machine options.
func DefaultOptions() Options {
	return Options{
		Quirks: DefaultQuirks(),
	}
}

// Machine is a complete CHIP-8 interpreter state. It owns its memory,
// registers, call stack, display and timers exclusively; all mutation
// happens through Step and TickTimers on a single goroutine.
type Machine struct {
	mem   [MemorySize]byte
	v     [NumRegisters]byte
	i     uint16
	pc    uint16
	stack [StackDepth]uint16
	sp    int

	delayTimer byte
	soundTimer byte

	display [DisplayHeight][DisplayWidth]bool
	redraw  bool

	keys   Keys
	quirks Quirks
	rng    *rand.Rand

	// fault latches the first fatal error, stepping can not resume after it
	fault error
}

// New creates a machine with the given ROM image loaded at ProgramStart.
// It fails if the image does not fit into program memory.
func New(rom []byte, opts Options) (*Machine, error) {
	if len(rom) > MaxROMSize {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := &Machine{
		pc:     ProgramStart,
		quirks: opts.Quirks,
		rng:    rand.New(rand.NewSource(seed)),
	}
	copy(m.mem[FontStart:], fontSet[:])
	copy(m.mem[ProgramStart:], rom)
	return m, nil
}

// PC returns the current program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// NextOpcode returns the big-endian opcode word the next Step will fetch.
func (m *Machine) NextOpcode() uint16 {
	return uint16(m.mem[m.pc&addressMask])<<8 | uint16(m.mem[(m.pc+1)&addressMask])
}

// Redraw reports whether the display changed since the last ClearRedraw.
func (m *Machine) Redraw() bool {
	return m.redraw
}

// ClearRedraw marks the current display contents as consumed by the renderer.
func (m *Machine) ClearRedraw() {
	m.redraw = false
}

// Frame returns a copy of the current display contents.
func (m *Machine) Frame() Frame {
	return m.display
}

// Pixel reports whether the pixel at the given display coordinate is set.
// Coordinates wrap around the display edges.
func (m *Machine) Pixel(x, y int) bool {
	return m.display[y%DisplayHeight][x%DisplayWidth]
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() byte {
	return m.delayTimer
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() byte {
	return m.soundTimer
}

// Sound reports whether the sound timer is active and a tone should play.
func (m *Machine) Sound() bool {
	return m.soundTimer > 0
}

// TickTimers decrements the delay and sound timers by one, flooring at 0.
// It is expected to be called at a fixed 60 Hz cadence by the driver,
// independent of the instruction execution rate.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// SetKey updates the pressed state of a single keypad key.
func (m *Machine) SetKey(key byte, down bool) {
	m.keys[key&0xF] = down
}

// SetKeys replaces the complete keypad state.
func (m *Machine) SetKeys(keys Keys) {
	m.keys = keys
}
