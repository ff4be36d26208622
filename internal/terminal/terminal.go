//go:build !windows

package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"

	"github.com/pkg/term/termios"
)

// Terminal switches a terminal input into raw mode and delivers the
// bytes read from it on a channel.
type Terminal struct {
	input *os.File

	canAttr syscall.Termios
	rawAttr syscall.Termios

	bytes chan byte
	done  chan struct{}
	once  sync.Once
}

// Open puts the input terminal into raw mode and starts reading from it.
// Restore has to be called to return the terminal to canonical mode.
func Open(input *os.File) (*Terminal, error) {
	t := &Terminal{
		input: input,
		bytes: make(chan byte, 64),
		done:  make(chan struct{}),
	}

	if err := termios.Tcgetattr(input.Fd(), &t.canAttr); err != nil {
		return nil, fmt.Errorf("reading terminal attributes: %w", err)
	}
	t.rawAttr = t.canAttr
	termios.Cfmakeraw(&t.rawAttr)

	if err := termios.Tcsetattr(input.Fd(), termios.TCIFLUSH, &t.rawAttr); err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}

	go forward(input, t.bytes, t.done)
	return t, nil
}

// Bytes returns the channel of bytes read from the terminal. It is
// closed when reading fails.
func (t *Terminal) Bytes() <-chan byte {
	return t.bytes
}

// Restore returns the terminal to canonical mode and stops forwarding
// input. A read that is blocked on the terminal ends with the next byte,
// which is dropped.
func (t *Terminal) Restore() error {
	t.once.Do(func() { close(t.done) })
	if err := termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr); err != nil {
		return fmt.Errorf("restoring terminal mode: %w", err)
	}
	return nil
}

// forward sends the bytes read from r to out until reading fails or done
// is closed. out is closed on return.
func forward(r io.Reader, out chan<- byte, done <-chan struct{}) {
	defer close(out)

	buf := make([]byte, 16)
	for {
		select {
		case <-done:
			return
		default:
		}

		n, err := r.Read(buf)
		if err != nil {
			return
		}
		for _, b := range buf[:n] {
			select {
			case out <- b:
			case <-done:
				return
			}
		}
	}
}
