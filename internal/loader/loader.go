// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

var (
	errEmptyROM    = errors.New("empty ROM")
	errROMTooLarge = errors.New("ROM too large")
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the raw CHIP-8 program from the given file.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.Read(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", path, err)
	}
	return data, nil
}

// Read loads a raw CHIP-8 program as headerless cartridge buffer and
// checks that it fits into the program memory of the machine.
func (l *Loader) Read(r io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized input
	cart, err := cartridge.LoadBuffer(io.LimitReader(r, vm.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("loading cartridge buffer: %w", err)
	}

	data := cart.PRG
	switch {
	case len(data) == 0:
		return nil, errEmptyROM
	case len(data) > vm.MaxProgramSize:
		return nil, fmt.Errorf("%w: maximum size is %d bytes", errROMTooLarge, vm.MaxProgramSize)
	}
	return data, nil
}
