package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	rom := []byte{0x12, 0x00}
	m, err := New(rom, DefaultOptions())
	assert.NoError(t, err)
	assert.NotNil(t, m)

	assert.Equal(t, uint16(ProgramStart), m.pc)
	assert.Equal(t, uint16(0), m.i)
	assert.Equal(t, 0, m.sp)

	// font glyphs live at FontStart
	assert.Equal(t, byte(0xF0), m.mem[FontStart])
	assert.Equal(t, byte(0x80), m.mem[FontStart+79])

	// ROM image loaded at ProgramStart
	assert.Equal(t, byte(0x12), m.mem[ProgramStart])
	assert.Equal(t, byte(0x00), m.mem[ProgramStart+1])

	for i := range m.v {
		assert.Equal(t, byte(0), m.v[i])
	}
	assert.Equal(t, byte(0), m.delayTimer)
	assert.Equal(t, byte(0), m.soundTimer)
	assert.False(t, m.Redraw())
}

func TestNew_ROMSizeLimit(t *testing.T) {
	m, err := New(make([]byte, MaxROMSize), DefaultOptions())
	assert.NoError(t, err)
	assert.NotNil(t, m)

	_, err = New(make([]byte, MaxROMSize+1), DefaultOptions())
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrROMTooLarge))
	assert.ErrorContains(t, err, "3585")
}

func TestNextOpcode(t *testing.T) {
	m, err := New([]byte{0xAB, 0xCD}, DefaultOptions())
	assert.NoError(t, err)

	// opcodes are fetched big-endian, high byte first
	assert.Equal(t, uint16(0xABCD), m.NextOpcode())
}

func TestTickTimers(t *testing.T) {
	m, err := New(nil, DefaultOptions())
	assert.NoError(t, err)

	m.delayTimer = 2
	m.soundTimer = 1

	m.TickTimers()
	assert.Equal(t, byte(1), m.DelayTimer())
	assert.Equal(t, byte(0), m.SoundTimer())
	assert.False(t, m.Sound())

	// timers floor at 0, they never wrap
	m.TickTimers()
	m.TickTimers()
	assert.Equal(t, byte(0), m.DelayTimer())
	assert.Equal(t, byte(0), m.SoundTimer())
}

func TestTickTimers_TouchesNothingElse(t *testing.T) {
	m, err := New([]byte{0x60, 0x42}, DefaultOptions())
	assert.NoError(t, err)
	m.delayTimer = 5
	m.soundTimer = 5

	m.TickTimers()

	assert.Equal(t, uint16(ProgramStart), m.pc)
	assert.Equal(t, byte(0x60), m.mem[ProgramStart])
	for i := range m.v {
		assert.Equal(t, byte(0), m.v[i])
	}
}

func TestSetKey(t *testing.T) {
	m, err := New(nil, DefaultOptions())
	assert.NoError(t, err)

	m.SetKey(0xA, true)
	assert.True(t, m.keys[0xA])

	m.SetKey(0xA, false)
	assert.False(t, m.keys[0xA])

	// key values are masked to the 16 key keypad
	m.SetKey(0x1A, true)
	assert.True(t, m.keys[0xA])
}

func TestSetKeys(t *testing.T) {
	m, err := New(nil, DefaultOptions())
	assert.NoError(t, err)

	var keys Keys
	keys[0x1] = true
	keys[0xF] = true
	m.SetKeys(keys)

	assert.True(t, m.keys[0x1])
	assert.True(t, m.keys[0xF])
	assert.False(t, m.keys[0x0])
}

func TestStep_FaultIsSticky(t *testing.T) {
	m, err := New([]byte{0x00, 0xE1}, DefaultOptions())
	assert.NoError(t, err)

	err = m.Step()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOpcode))

	// stepping after a fatal error returns the same error and mutates nothing
	pc := m.pc
	err2 := m.Step()
	assert.Error(t, err2)
	assert.Equal(t, err.Error(), err2.Error())
	assert.Equal(t, pc, m.pc)
}

func TestSound(t *testing.T) {
	m, err := New(nil, DefaultOptions())
	assert.NoError(t, err)

	assert.False(t, m.Sound())
	m.soundTimer = 3
	assert.True(t, m.Sound())
}
