// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/chip8goemu/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options.New()
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}
	if opts.InstructionsPerFrame < 1 {
		return opts, fmt.Errorf("invalid instructions per frame value %d", opts.InstructionsPerFrame)
	}
	if opts.HeadlessFrames < 0 {
		return opts, fmt.Errorf("invalid headless frame count %d", opts.HeadlessFrames)
	}

	opts.Input = args[0]
	if opts.Trace {
		opts.Debug = true
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8goemu [options] <ROM file to run>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after the ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.IntVar(&opts.InstructionsPerFrame, "ipf", opts.InstructionsPerFrame, "instructions to execute per 60 Hz frame")
	flags.IntVar(&opts.HeadlessFrames, "headless", 0, "run the given number of frames without terminal UI and exit")
	flags.Int64Var(&opts.Seed, "seed", 0, "random number generator seed, 0 selects a time based seed")
	flags.BoolVar(&opts.ShiftVX, "shift-vx", false, "shift opcodes operate on VX in place instead of loading VY first")
	flags.BoolVar(&opts.KeepIndex, "keep-index", false, "register store/load opcodes leave the index register unchanged")
}
