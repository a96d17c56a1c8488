package emulator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/chip8goemu/internal/chip8"
	"github.com/retroenv/chip8goemu/internal/config"
	"github.com/retroenv/retrogolib/assert"
)

type stubRenderer struct {
	frames []chip8.Frame
	beeps  []bool
}

func (r *stubRenderer) Render(frame chip8.Frame) error {
	r.frames = append(r.frames, frame)
	return nil
}

func (r *stubRenderer) Beep(active bool) {
	r.beeps = append(r.beeps, active)
}

type stubInput struct {
	keys chip8.Keys
	err  error
}

func (i *stubInput) Poll() (chip8.Keys, error) {
	return i.keys, i.err
}

func newTestEmulator(t *testing.T, rom []byte, renderer Renderer, input Input, opts Options) *Emulator {
	t.Helper()

	machine, err := chip8.New(rom, chip8.DefaultOptions())
	assert.NoError(t, err)
	logger := config.CreateLogger(false, true)
	return New(logger, machine, renderer, input, opts)
}

func TestRunFrame_RendersOnRedraw(t *testing.T) {
	// clear screen once, then spin: only the first frame triggers a render
	rom := []byte{0x00, 0xE0, 0x12, 0x02}
	renderer := &stubRenderer{}
	e := newTestEmulator(t, rom, renderer, nil, Options{InstructionsPerFrame: 2})

	assert.NoError(t, e.RunFrame())
	assert.Len(t, renderer.frames, 1)

	assert.NoError(t, e.RunFrame())
	assert.Len(t, renderer.frames, 1)
}

func TestRunFrame_TicksTimers(t *testing.T) {
	// set the sound timer to 2, then spin
	rom := []byte{0x61, 0x02, 0xF1, 0x18, 0x12, 0x04}
	renderer := &stubRenderer{}
	e := newTestEmulator(t, rom, renderer, nil, Options{InstructionsPerFrame: 2})

	assert.NoError(t, e.RunFrame())
	assert.Equal(t, []bool{true}, renderer.beeps)

	assert.NoError(t, e.RunFrame())
	assert.NoError(t, e.RunFrame())
	assert.Equal(t, []bool{true, false, false}, renderer.beeps)
}

func TestRunFrame_ForwardsKeys(t *testing.T) {
	// wait for a key, then store 0xBB in V2
	rom := []byte{0xF1, 0x0A, 0x62, 0xBB, 0x12, 0x04}
	input := &stubInput{}
	e := newTestEmulator(t, rom, nil, input, Options{InstructionsPerFrame: 1})

	// without a key the wait instruction spins in place
	assert.NoError(t, e.RunFrame())
	assert.Equal(t, uint16(0x200), e.machine.PC())

	input.keys[0x4] = true
	assert.NoError(t, e.RunFrame())
	assert.Equal(t, uint16(0x202), e.machine.PC())
}

func TestRunFrame_FatalMachineError(t *testing.T) {
	rom := []byte{0xFF, 0xFF}
	e := newTestEmulator(t, rom, nil, nil, Options{InstructionsPerFrame: 1})

	err := e.RunFrame()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, chip8.ErrUnknownOpcode))
	assert.ErrorContains(t, err, "executing instruction")
}

func TestRun_FrameLimit(t *testing.T) {
	rom := []byte{0x12, 0x00}
	e := newTestEmulator(t, rom, nil, nil, Options{InstructionsPerFrame: 1, Frames: 2})

	done := make(chan error, 1)
	go func() {
		done <- e.Run(context.Background())
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after the frame limit")
	}
}

func TestRun_ContextCancel(t *testing.T) {
	rom := []byte{0x12, 0x00}
	e := newTestEmulator(t, rom, nil, nil, Options{InstructionsPerFrame: 1})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- e.Run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop on context cancellation")
	}
}

func TestRun_QuitRequest(t *testing.T) {
	rom := []byte{0x12, 0x00}
	input := &stubInput{err: ErrQuit}
	e := newTestEmulator(t, rom, nil, input, Options{InstructionsPerFrame: 1})

	done := make(chan error, 1)
	go func() {
		done <- e.Run(context.Background())
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop on quit request")
	}
}
