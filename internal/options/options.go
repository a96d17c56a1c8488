// Package options contains the program options.
package options

// Program options of the emulator.
type Program struct {
	Input string // ROM file to run

	Debug bool
	Quiet bool
	Trace bool // log every executed instruction, implies debug logging

	InstructionsPerFrame int
	HeadlessFrames       int   // run without terminal UI for a fixed number of frames
	Seed                 int64 // random number generator seed, 0 selects a time based seed

	ShiftVX   bool // shift opcodes operate on VX in place instead of loading VY first
	KeepIndex bool // register store/load opcodes leave the index register unchanged
}

// New returns a new options instance with default options.
func New() Program {
	return Program{
		InstructionsPerFrame: 10,
	}
}
