// Package host drives a CHIP-8 machine at fixed instruction and timer
// rates and connects it to display, keypad and tone implementations.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// ErrQuit is returned by Run when the keypad requested to quit.
var ErrQuit = errors.New("quit requested")

// Display shows the pixel buffer of the machine.
type Display interface {
	Render(pixels []bool) error
}

// Keypad returns the current pressed state of all keys.
type Keypad interface {
	Poll() (keys [vm.KeyCount]bool, quit bool)
}

// Tone plays the sound of the machine for one timer tick.
type Tone interface {
	Tone(active bool) error
}

// Config defines the execution rates of the runner.
type Config struct {
	CPUHz     int  // instructions per second
	TimerHz   int  // timer ticks and frames per second
	MaxFrames int  // stop after this many frames, 0 runs until cancelled
	Unpaced   bool // run frames back to back without waiting for the ticker
}

// DefaultConfig returns the default runner configuration.
func DefaultConfig() Config {
	return Config{
		CPUHz:   700,
		TimerHz: 60,
	}
}

// CyclesPerFrame returns the number of instructions executed per timer tick.
func (c Config) CyclesPerFrame() int {
	if c.TimerHz <= 0 {
		return 1
	}
	return max(1, c.CPUHz/c.TimerHz)
}

// Runner executes a machine frame by frame. Display, keypad and tone are
// optional.
type Runner struct {
	logger  *log.Logger
	machine *vm.Machine
	cfg     Config

	display Display
	keypad  Keypad
	tone    Tone

	keys   [vm.KeyCount]bool
	frames int
}

// New returns a new runner for the machine.
func New(logger *log.Logger, machine *vm.Machine, cfg Config, display Display, keypad Keypad, tone Tone) *Runner {
	defaults := DefaultConfig()
	if cfg.CPUHz <= 0 {
		cfg.CPUHz = defaults.CPUHz
	}
	if cfg.TimerHz <= 0 {
		cfg.TimerHz = defaults.TimerHz
	}

	return &Runner{
		logger:  logger,
		machine: machine,
		cfg:     cfg,
		display: display,
		keypad:  keypad,
		tone:    tone,
	}
}

// Frames returns the number of executed frames.
func (r *Runner) Frames() int {
	return r.frames
}

// Run executes frames at the configured timer rate until the context is
// cancelled, the keypad requests to quit, the frame limit is reached or
// the machine fails.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("Starting machine",
		log.Int("cpu_hz", r.cfg.CPUHz),
		log.Int("timer_hz", r.cfg.TimerHz),
		log.Int("cycles_per_frame", r.cfg.CyclesPerFrame()))

	var tick <-chan time.Time
	if !r.cfg.Unpaced {
		ticker := time.NewTicker(time.Second / time.Duration(r.cfg.TimerHz))
		defer ticker.Stop()
		tick = ticker.C
	}

	for r.cfg.MaxFrames == 0 || r.frames < r.cfg.MaxFrames {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.Frame(); err != nil {
			return err
		}
	}

	r.logger.Debug("Frame limit reached", log.Int("frames", r.frames))
	return nil
}

// Frame executes one timer tick worth of machine time: it applies key
// changes, executes the instructions of the frame, ticks the timers and
// outputs sound and display.
func (r *Runner) Frame() error {
	if r.keypad != nil {
		keys, quit := r.keypad.Poll()
		if quit {
			return ErrQuit
		}
		r.applyKeys(keys)
	}

	for range r.cfg.CyclesPerFrame() {
		if err := r.machine.Step(); err != nil {
			return fmt.Errorf("executing frame %d: %w", r.frames, err)
		}
	}

	active := r.machine.SoundActive()
	if r.machine.TickTimers() {
		r.logger.Debug("Sound timer expired", log.Int("frame", r.frames))
	}
	if r.tone != nil {
		if err := r.tone.Tone(active); err != nil {
			return fmt.Errorf("playing tone: %w", err)
		}
	}

	if r.display != nil {
		if err := r.display.Render(r.machine.Display()); err != nil {
			return fmt.Errorf("rendering display: %w", err)
		}
	}

	r.frames++
	return nil
}

// applyKeys forwards keys that changed state since the last poll.
func (r *Runner) applyKeys(keys [vm.KeyCount]bool) {
	for key, pressed := range keys {
		if pressed == r.keys[key] {
			continue
		}
		r.machine.SetKey(key, pressed)
	}
	r.keys = keys
}
