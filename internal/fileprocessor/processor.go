// Package fileprocessor handles ROM loading and emulation runs
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/audio"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/terminal"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile loads the ROM of the options and runs it. Headless runs
// stop after the configured number of frames and write the final display
// to out.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, out io.Writer) (err error) {
	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	machine := vm.New(config.MachineOptions(logger, opts)...)
	if err := machine.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	logger.Debug("Program loaded",
		log.String("file", opts.Input),
		log.Int("size", len(program)))

	cfg := config.RunnerConfig(opts)

	var tone host.Tone
	if opts.Wav != "" {
		recorder, closeRecorder, rerr := createRecorder(opts.Wav, cfg.TimerHz)
		if rerr != nil {
			return rerr
		}
		defer func() {
			if cerr := closeRecorder(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		tone = recorder
	}

	if opts.Headless() {
		return runHeadless(ctx, logger, machine, cfg, tone, out)
	}
	return runInteractive(ctx, logger, machine, cfg, tone, out)
}

func runHeadless(ctx context.Context, logger *log.Logger, machine *vm.Machine,
	cfg host.Config, tone host.Tone, out io.Writer) error {

	runner := host.New(logger, machine, cfg, nil, nil, tone)
	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	if _, err := io.WriteString(out, terminal.Format(machine.Display(), "\n")); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	return nil
}

func runInteractive(ctx context.Context, logger *log.Logger, machine *vm.Machine,
	cfg host.Config, tone host.Tone, out io.Writer) (err error) {

	term, err := terminal.Open(os.Stdin)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer func() {
		if rerr := term.Restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	renderer := terminal.NewRenderer(out, true)
	keypad := terminal.NewKeypad(term.Bytes(), 0)
	runner := host.New(logger, machine, cfg, renderer, keypad, tone)
	return runRendered(ctx, runner, renderer)
}

// runRendered runs the runner between renderer start and stop. A quit
// request ends the run without error.
func runRendered(ctx context.Context, runner *host.Runner, renderer *terminal.Renderer) (err error) {
	if err := renderer.Start(); err != nil {
		return fmt.Errorf("starting renderer: %w", err)
	}
	defer func() {
		if serr := renderer.Stop(); serr != nil && err == nil {
			err = fmt.Errorf("stopping renderer: %w", serr)
		}
	}()

	if err := runner.Run(ctx); err != nil && !errors.Is(err, host.ErrQuit) {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func createRecorder(path string, frameRate int) (*audio.Recorder, func() error, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating WAV file %s: %w", path, err)
	}

	recorder, err := audio.NewRecorder(file, frameRate)
	if err != nil {
		_ = file.Close()
		return nil, nil, fmt.Errorf("creating WAV recorder: %w", err)
	}

	closeFn := func() error {
		if err := recorder.Close(); err != nil {
			_ = file.Close()
			return fmt.Errorf("finishing WAV file: %w", err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("closing WAV file: %w", err)
		}
		return nil
	}
	return recorder, closeFn, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("chip8vm", log.String("version", buildinfo.Version(version, commit, date)))
}
