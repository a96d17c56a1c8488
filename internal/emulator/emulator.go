// Package emulator orchestrates the emulation workflow: input polling,
// instruction pacing, timer ticks and frame rendering.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8goemu/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// ErrQuit is returned by an Input implementation when the user requests to
// stop the emulation. It ends the run without being treated as a failure.
var ErrQuit = errors.New("quit requested")

// Renderer consumes finished frames and the sound timer state.
type Renderer interface {
	Render(frame chip8.Frame) error
	Beep(active bool)
}

// Input produces the keypad state, sampled once per frame.
type Input interface {
	Poll() (chip8.Keys, error)
}

// Options configure the emulation pacing.
type Options struct {
	// InstructionsPerFrame is the number of machine steps per 60 Hz frame.
	InstructionsPerFrame int

	// Frames limits the run length when greater than zero.
	Frames int

	// Trace logs every executed instruction at debug level.
	Trace bool
}

// DefaultOptions returns the default emulation options.
func DefaultOptions() Options {
	return Options{
		InstructionsPerFrame: 10,
	}
}

// frameDuration is the 60 Hz pacing of timers and display updates.
const frameDuration = time.Second / 60

// Emulator drives a machine at a fixed frame cadence.
type Emulator struct {
	logger   *log.Logger
	machine  *chip8.Machine
	renderer Renderer
	input    Input
	opts     Options
}

// New creates a new emulator driving the given machine. A nil renderer or
// input falls back to a no-op implementation.
func New(logger *log.Logger, machine *chip8.Machine, renderer Renderer, input Input, opts Options) *Emulator {
	if renderer == nil {
		renderer = NopRenderer{}
	}
	if input == nil {
		input = NopInput{}
	}
	if opts.InstructionsPerFrame < 1 {
		opts.InstructionsPerFrame = DefaultOptions().InstructionsPerFrame
	}

	return &Emulator{
		logger:   logger,
		machine:  machine,
		renderer: renderer,
		input:    input,
		opts:     opts,
	}
}

// Run executes the machine until the context is canceled, the input
// requests a quit, the configured frame budget is spent or a fatal machine
// error occurs. Timers tick once per frame regardless of the instruction
// rate, matching the 60 Hz hardware cadence.
func (e *Emulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	frames := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := e.RunFrame(); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}

			frames++
			if e.opts.Frames > 0 && frames >= e.opts.Frames {
				return nil
			}
		}
	}
}

// RunFrame advances the machine by one frame: sample the keypad, execute
// the configured instruction budget, tick the timers and render when the
// display changed.
func (e *Emulator) RunFrame() error {
	keys, err := e.input.Poll()
	if err != nil {
		if errors.Is(err, ErrQuit) {
			return err
		}
		return fmt.Errorf("polling input: %w", err)
	}
	e.machine.SetKeys(keys)

	for i := 0; i < e.opts.InstructionsPerFrame; i++ {
		if e.opts.Trace {
			e.traceStep()
		}
		if err := e.machine.Step(); err != nil {
			return fmt.Errorf("executing instruction: %w", err)
		}
	}

	e.machine.TickTimers()

	if e.machine.Redraw() {
		if err := e.renderer.Render(e.machine.Frame()); err != nil {
			return fmt.Errorf("rendering frame: %w", err)
		}
		e.machine.ClearRedraw()
	}
	e.renderer.Beep(e.machine.Sound())

	return nil
}

// traceStep logs the instruction the next machine step will execute.
func (e *Emulator) traceStep() {
	pc := e.machine.PC()
	w := e.machine.NextOpcode()
	e.logger.Debug("Executing",
		log.String("pc", fmt.Sprintf("$%03X", pc)),
		log.String("opcode", fmt.Sprintf("$%04X", w)),
		log.String("asm", chip8.Disassemble(w)),
	)
}

// NopRenderer discards frames, used for headless runs.
type NopRenderer struct{}

func (NopRenderer) Render(chip8.Frame) error { return nil }

func (NopRenderer) Beep(bool) {}

// NopInput reports an idle keypad, used for headless runs.
type NopInput struct{}

func (NopInput) Poll() (chip8.Keys, error) { return chip8.Keys{}, nil }
