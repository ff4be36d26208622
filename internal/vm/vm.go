package vm

import "fmt"

// Memory layout and machine dimension constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the memory address where programs are loaded and
	// execution starts.
	ProgramStart = 0x200

	// MaxAddress is the highest valid memory address.
	MaxAddress = MemorySize - 1

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// StackSize is the maximum number of nested calls.
	StackSize = 16

	// KeyCount is the number of keys of the hexadecimal keypad.
	KeyCount = 16

	// ScreenWidth is the display width in pixels.
	ScreenWidth = 64

	// ScreenHeight is the display height in pixels.
	ScreenHeight = 32

	// PixelCount is the number of pixels of the display.
	PixelCount = ScreenWidth * ScreenHeight
)

// flagRegister is VF, the carry, borrow and collision output.
const flagRegister = 0xF

// Machine is the state of a CHIP-8 virtual machine.
type Machine struct {
	opts options

	memory    [MemorySize]byte
	registers [RegisterCount]uint8
	stack     [StackSize]uint16
	display   [PixelCount]bool
	keys      [KeyCount]bool

	pc         uint16
	index      uint16
	sp         uint8
	delayTimer uint8
	soundTimer uint8

	err error // cause of the halt, nil while running
}

// New returns a new machine with cleared state, the font loaded and the
// program counter at ProgramStart.
func New(opts ...Option) *Machine {
	m := &Machine{
		opts: options{
			random: defaultRandom,
		},
	}
	for _, opt := range opts {
		opt(&m.opts)
	}
	m.Reset()
	return m
}

// Reset returns the machine to its construction time state, discarding
// any loaded program and runtime state.
func (m *Machine) Reset() {
	m.memory = [MemorySize]byte{}
	m.registers = [RegisterCount]uint8{}
	m.stack = [StackSize]uint16{}
	m.display = [PixelCount]bool{}
	m.keys = [KeyCount]bool{}

	m.pc = ProgramStart
	m.index = 0
	m.sp = 0
	m.delayTimer = 0
	m.soundTimer = 0
	m.err = nil

	copy(m.memory[:], fontSet[:])
}

// Load copies the program into memory starting at ProgramStart.
// Memory is not cleared before, unless the machine was created with
// WithResetOnLoad. Call Reset first for a clean boot.
func (m *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	if m.opts.resetOnLoad {
		m.Reset()
	}
	copy(m.memory[ProgramStart:], program)
	return nil
}

// SetKey sets the pressed state of a keypad key. Indexes outside of
// 0-15 are ignored.
func (m *Machine) SetKey(key int, pressed bool) {
	if key < 0 || key >= KeyCount {
		return
	}
	m.keys[key] = pressed
}

// Key returns whether the given key is pressed.
func (m *Machine) Key(key int) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return m.keys[key]
}

// Display returns a copy of the pixel buffer. Pixels are stored row by
// row, the pixel at x,y has the index x + ScreenWidth*y.
func (m *Machine) Display() []bool {
	pixels := make([]bool, PixelCount)
	copy(pixels, m.display[:])
	return pixels
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.index
}

// Register returns the value of register Vx. Only the low nibble of x is used.
func (m *Machine) Register(x int) uint8 {
	return m.registers[x&0xF]
}

// StackPointer returns the number of stack entries in use.
func (m *Machine) StackPointer() int {
	return int(m.sp)
}

// DelayTimer returns the value of the delay timer.
func (m *Machine) DelayTimer() uint8 {
	return m.delayTimer
}

// SoundTimer returns the value of the sound timer.
func (m *Machine) SoundTimer() uint8 {
	return m.soundTimer
}

// ReadMemory returns the byte at the given address, masked to the memory size.
func (m *Machine) ReadMemory(address uint16) byte {
	return m.memory[address&MaxAddress]
}

// Err returns the error that halted the machine, or nil.
func (m *Machine) Err() error {
	return m.err
}

// writeMemory stores a byte at the masked address. The font region is
// read only, writes to it are dropped.
func (m *Machine) writeMemory(address uint16, value byte) {
	address &= MaxAddress
	if address < fontSize {
		return
	}
	m.memory[address] = value
}

func (m *Machine) push(address uint16) error {
	if m.sp >= StackSize {
		return ErrStackOverflow
	}
	m.stack[m.sp] = address
	m.sp++
	return nil
}

func (m *Machine) pop() (uint16, error) {
	if m.sp == 0 {
		return 0, ErrStackUnderflow
	}
	m.sp--
	return m.stack[m.sp], nil
}
