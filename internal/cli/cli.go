// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
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
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: chip8vm [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
	fmt.Println("keypad:  1 2 3 4 / q w e r / a s d f / z x c v, esc quits")
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	if len(args) > 1 {
		return &UsageError{
			msg: fmt.Sprintf("Unexpected argument %s found after ROM file, please pass the ROM file as last argument", args[1]),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.CPUHz <= 0 {
		return fmt.Errorf("invalid instruction rate %d, it has to be positive", opts.CPUHz)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame count %d, it can not be negative", opts.Frames)
	}
	if opts.Trace {
		opts.Debug = true
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	defaults := host.DefaultConfig()

	flags.IntVar(&opts.CPUHz, "cpu", defaults.CPUHz, "instructions per second")
	flags.IntVar(&opts.Frames, "frames", 0, "run headless for this many frames and print the final display")
	flags.StringVar(&opts.Wav, "wav", "", "record the sound tone into this WAV file")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random seed for the RND instruction, 0 uses a random seed")
	flags.BoolVar(&opts.Strict, "strict", false, "halt on out of range key and font glyph indexes instead of masking them")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
