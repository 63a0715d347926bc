// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.Usage = func() {} // usage is printed by UsageError.ShowUsage
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
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
	fmt.Printf("usage: retrochip8 [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && len(arg) > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	opts.System = strings.ToLower(opts.System)

	if opts.TicksPerFrame < 1 {
		return fmt.Errorf("invalid instructions per frame %d, must be at least 1", opts.TicksPerFrame)
	}
	if opts.FramesPerSecond < 0 {
		return fmt.Errorf("invalid frames per second %d", opts.FramesPerSecond)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame limit %d", opts.Frames)
	}

	validFrontends := []string{options.FrontendTerminal, options.FrontendHeadless}
	for _, valid := range validFrontends {
		if opts.Frontend == valid {
			if opts.Frontend == options.FrontendHeadless && opts.Frames == 0 {
				opts.Frames = config.DefaultHeadlessFrames
			}
			return nil
		}
	}

	return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
		opts.Frontend, strings.Join(validFrontends, ", "))
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input program file")
	flags.StringVar(&opts.System, "s", "", "system of the program (chip8) - if not auto-detected from file extension")
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendTerminal, "frontend to run the program with (terminal/headless)")
	flags.IntVar(&opts.TicksPerFrame, "ticks", config.DefaultTicksPerFrame, "number of instructions executed per frame")
	flags.IntVar(&opts.FramesPerSecond, "fps", config.DefaultFramesPerSecond, "frames per second, 0 runs as fast as possible")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after the given number of frames, 0 runs until quit (headless default: 600)")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a random seed")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
