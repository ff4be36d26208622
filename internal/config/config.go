// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	if opts.Debug || opts.Trace {
		cfg.Level = log.DebugLevel
	} else if opts.Quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineOptions returns the virtual machine options for the program options.
func MachineOptions(logger *log.Logger, opts options.Program) []vm.Option {
	machineOpts := []vm.Option{
		vm.WithLogger(logger),
		vm.WithTrace(opts.Trace),
		vm.WithResetOnLoad(true),
	}
	if opts.Seed != 0 {
		machineOpts = append(machineOpts, vm.WithRandom(vm.SeededRandom(opts.Seed)))
	}
	if opts.Strict {
		machineOpts = append(machineOpts, vm.WithIndexPolicy(vm.IndexFault))
	}
	return machineOpts
}

// RunnerConfig returns the runner configuration for the program options.
// Headless runs are not paced to real time.
func RunnerConfig(opts options.Program) host.Config {
	cfg := host.DefaultConfig()
	if opts.CPUHz > 0 {
		cfg.CPUHz = opts.CPUHz
	}
	if opts.Headless() {
		cfg.MaxFrames = opts.Frames
		cfg.Unpaced = true
	}
	return cfg
}
