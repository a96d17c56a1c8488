// Package main implements the main entry point for a CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8goemu/internal/chip8"
	"github.com/retroenv/chip8goemu/internal/cli"
	"github.com/retroenv/chip8goemu/internal/config"
	"github.com/retroenv/chip8goemu/internal/emulator"
	"github.com/retroenv/chip8goemu/internal/loader"
	"github.com/retroenv/chip8goemu/internal/options"
	"github.com/retroenv/chip8goemu/internal/screen"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return
		}
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

// printBanner prints application version information
func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}
	logger.Info("chip8goemu", log.String("version", buildinfo.Version(version, commit, date)))
}

// run loads the ROM and drives the emulation until it ends.
func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	rom, err := loader.New(logger).Load(opts.Input)
	if err != nil {
		return err
	}

	machine, err := chip8.New(rom, machineOptions(opts))
	if err != nil {
		return err
	}

	logger.Debug("ROM loaded",
		log.String("file", opts.Input),
		log.String("quirks", quirkSummary(opts)))

	var renderer emulator.Renderer
	var input emulator.Input
	if opts.HeadlessFrames == 0 {
		term, err := screen.New()
		if err != nil {
			return err
		}
		defer func() {
			_ = term.Close()
		}()
		renderer = term
		input = term
	}

	emu := emulator.New(logger, machine, renderer, input, emulator.Options{
		InstructionsPerFrame: opts.InstructionsPerFrame,
		Frames:               opts.HeadlessFrames,
		Trace:                opts.Trace,
	})
	return emu.Run(ctx)
}

// machineOptions maps program options to machine options.
func machineOptions(opts options.Program) chip8.Options {
	machineOpts := chip8.DefaultOptions()
	machineOpts.Seed = opts.Seed
	machineOpts.Quirks.ShiftUsesVY = !opts.ShiftVX
	machineOpts.Quirks.IncrementIndex = !opts.KeepIndex
	return machineOpts
}

// quirkSummary describes the active quirk settings for debug logging.
func quirkSummary(opts options.Program) string {
	shift := "vy"
	if opts.ShiftVX {
		shift = "vx"
	}
	index := "increment"
	if opts.KeepIndex {
		index = "keep"
	}
	return fmt.Sprintf("shift=%s,index=%s", shift, index)
}
