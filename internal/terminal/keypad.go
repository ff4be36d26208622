package terminal

import "github.com/retroenv/chip8vm/internal/vm"

// DefaultHoldFrames is the number of frames a key stays pressed after its
// last byte was received. It bridges the delay before a held key starts
// to auto repeat.
const DefaultHoldFrames = 30

// Keypad turns the byte stream of a terminal into keypad state.
// Terminals only report key presses, a key is released after it was not
// seen for the hold duration.
type Keypad struct {
	input      <-chan byte
	holdFrames int
	remaining  [vm.KeyCount]int
	quit       bool
}

// NewKeypad returns a keypad reading bytes from input.
func NewKeypad(input <-chan byte, holdFrames int) *Keypad {
	if holdFrames <= 0 {
		holdFrames = DefaultHoldFrames
	}
	return &Keypad{
		input:      input,
		holdFrames: holdFrames,
	}
}

// Poll consumes all pending input and returns the key state for the
// next frame. It is called once per frame.
func (k *Keypad) Poll() ([vm.KeyCount]bool, bool) {
	for i := range k.remaining {
		if k.remaining[i] > 0 {
			k.remaining[i]--
		}
	}

	k.drain()

	var keys [vm.KeyCount]bool
	for i, remaining := range k.remaining {
		keys[i] = remaining > 0
	}
	return keys, k.quit
}

func (k *Keypad) drain() {
	for {
		select {
		case b, ok := <-k.input:
			if !ok {
				k.quit = true
				return
			}
			k.handleByte(b)
		default:
			return
		}
	}
}

func (k *Keypad) handleByte(b byte) {
	if b == keyEscape || b == keyCtrlC {
		k.quit = true
		return
	}
	if key, ok := KeyForByte(b); ok {
		k.remaining[key] = k.holdFrames
	}
}
