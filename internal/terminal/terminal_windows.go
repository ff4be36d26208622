package terminal

import (
	"errors"
	"os"
)

var errUnsupported = errors.New("raw terminal input is not supported on windows")

// Terminal is not available on windows.
type Terminal struct{}

// Open returns an error, raw mode is not implemented on windows.
func Open(*os.File) (*Terminal, error) {
	return nil, errUnsupported
}

// Bytes returns nil.
func (t *Terminal) Bytes() <-chan byte {
	return nil
}

// Restore does nothing.
func (t *Terminal) Restore() error {
	return nil
}
