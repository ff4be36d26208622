package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// newTestMachine returns a machine with the given opcodes loaded at
// ProgramStart and a fixed random source.
func newTestMachine(t *testing.T, opcodes ...uint16) *Machine {
	t.Helper()

	m := New(WithRandom(func() byte { return 0xFF }))
	assert.NoError(t, m.Load(assemble(opcodes...)))
	return m
}

func assemble(opcodes ...uint16) []byte {
	data := make([]byte, 0, len(opcodes)*opcodeSize)
	for _, op := range opcodes {
		data = append(data, byte(op>>8), byte(op))
	}
	return data
}

// steps executes the given number of steps and fails on any error.
func steps(t *testing.T, m *Machine, count int) {
	t.Helper()

	for i := range count {
		if err := m.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func TestNew(t *testing.T) {
	m := New()

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.Index())
	assert.Equal(t, 0, m.StackPointer())
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
	assert.NoError(t, m.Err())

	for i, b := range fontSet {
		assert.Equal(t, b, m.ReadMemory(uint16(i)))
	}
	for address := uint16(fontSize); address < MemorySize; address++ {
		if m.ReadMemory(address) != 0 {
			t.Fatalf("memory at 0x%03X not cleared", address)
		}
	}
	for x := range RegisterCount {
		assert.Equal(t, uint8(0), m.Register(x))
	}

	display := m.Display()
	assert.Equal(t, PixelCount, len(display))
	for _, pixel := range display {
		assert.False(t, pixel)
	}
}

func TestLoad(t *testing.T) {
	m := New()
	assert.NoError(t, m.Load([]byte{0x6A, 0x07}))

	assert.Equal(t, byte(0x6A), m.ReadMemory(ProgramStart))
	assert.Equal(t, byte(0x07), m.ReadMemory(ProgramStart+1))
	assert.Equal(t, uint16(ProgramStart), m.PC())
}

func TestLoad_FirstStep(t *testing.T) {
	m := New()
	assert.NoError(t, m.Load([]byte{0x6A, 0x07}))

	assert.NoError(t, m.Step())
	assert.Equal(t, uint8(7), m.Register(0xA))
	assert.Equal(t, uint16(ProgramStart+2), m.PC())
}

func TestLoad_Overlay(t *testing.T) {
	m := New()
	assert.NoError(t, m.Load([]byte{0x11, 0x22, 0x33, 0x44}))
	assert.NoError(t, m.Load([]byte{0xAA}))

	// a second load only overwrites the bytes it covers
	assert.Equal(t, byte(0xAA), m.ReadMemory(ProgramStart))
	assert.Equal(t, byte(0x22), m.ReadMemory(ProgramStart+1))
	assert.Equal(t, byte(0x44), m.ReadMemory(ProgramStart+3))
}

func TestLoad_ResetThenLoad(t *testing.T) {
	m := New()
	assert.NoError(t, m.Load([]byte{0x11, 0x22, 0x33, 0x44}))
	m.Reset()
	assert.NoError(t, m.Load([]byte{0xAA}))

	assert.Equal(t, byte(0xAA), m.ReadMemory(ProgramStart))
	assert.Equal(t, byte(0x00), m.ReadMemory(ProgramStart+1))
	assert.Equal(t, byte(0x00), m.ReadMemory(ProgramStart+3))
}

func TestLoad_ResetOnLoad(t *testing.T) {
	m := New(WithResetOnLoad(true))
	assert.NoError(t, m.Load(assemble(0x6A07, 0x1202)))
	steps(t, m, 1)
	m.SetKey(3, true)

	assert.NoError(t, m.Load([]byte{0xAA}))

	assert.Equal(t, byte(0xAA), m.ReadMemory(ProgramStart))
	assert.Equal(t, byte(0x00), m.ReadMemory(ProgramStart+1))
	assert.Equal(t, byte(0x00), m.ReadMemory(ProgramStart+2))
	assert.Equal(t, uint8(0), m.Register(0xA))
	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.False(t, m.Key(3))
}

func TestLoad_Size(t *testing.T) {
	m := New()

	assert.NoError(t, m.Load(make([]byte, MaxProgramSize)))

	program := make([]byte, MaxProgramSize+1)
	program[0] = 0xAB
	err := m.Load(program)
	assert.True(t, errors.Is(err, ErrProgramTooLarge))
	assert.Equal(t, byte(0x00), m.ReadMemory(ProgramStart))
}

func TestReset(t *testing.T) {
	m := newTestMachine(t,
		0x6A07, // LD VA, $07
		0xA123, // LD I, $123
		0x6305, // LD V3, $05
		0xF315, // LD DT, V3
		0xF318, // LD ST, V3
		0x2300, // CALL $300
	)
	steps(t, m, 6)
	m.SetKey(5, true)
	m.display[10] = true
	m.memory[0x10] = 0x00

	m.Reset()

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.Index())
	assert.Equal(t, 0, m.StackPointer())
	assert.Equal(t, uint8(0), m.Register(0xA))
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
	assert.False(t, m.Key(5))
	assert.False(t, m.Display()[10])
	assert.Equal(t, byte(0x00), m.ReadMemory(ProgramStart))
	assert.Equal(t, fontSet[0x10], m.ReadMemory(0x10))
}

func TestSetKey(t *testing.T) {
	m := New()

	m.SetKey(0xF, true)
	assert.True(t, m.Key(0xF))
	m.SetKey(0xF, false)
	assert.False(t, m.Key(0xF))

	// out of range indexes are ignored
	m.SetKey(-1, true)
	m.SetKey(KeyCount, true)
	for key := range KeyCount {
		assert.False(t, m.Key(key))
	}
	assert.False(t, m.Key(KeyCount))
}

func TestDisplay_ReturnsCopy(t *testing.T) {
	m := New()

	display := m.Display()
	display[0] = true

	assert.False(t, m.Display()[0])
}

func TestStackOverflow(t *testing.T) {
	m := newTestMachine(t, 0x2200) // CALL $200

	steps(t, m, StackSize)
	assert.Equal(t, StackSize, m.StackPointer())

	err := m.Step()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, StackSize, m.StackPointer())
}

func TestStackUnderflow(t *testing.T) {
	m := newTestMachine(t, 0x00EE) // RET

	err := m.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, 0, m.StackPointer())
}

func TestHalt(t *testing.T) {
	m := newTestMachine(t, 0x00EE, 0x6A07)

	err := m.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.True(t, errors.Is(m.Err(), ErrStackUnderflow))

	// a halted machine does not execute further instructions
	pc := m.PC()
	err = m.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, pc, m.PC())
	assert.Equal(t, uint8(0), m.Register(0xA))

	m.Reset()
	assert.NoError(t, m.Err())
}

func TestFetch_OutOfRange(t *testing.T) {
	m := New()
	assert.NoError(t, m.Load(assemble(0x1FFE))) // JP $FFE
	m.memory[0xFFE] = 0x1F                      // JP $FFF
	m.memory[0xFFF] = 0xFF

	steps(t, m, 2)
	assert.Equal(t, uint16(0xFFF), m.PC())

	err := m.Step()
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
}

func TestFontRegion_ReadOnly(t *testing.T) {
	m := newTestMachine(t,
		0xA000, // LD I, $000
		0x6012, // LD V0, $12
		0xF055, // LD [I], V0
	)
	steps(t, m, 3)

	assert.Equal(t, fontSet[0], m.ReadMemory(0))
}

func TestReadMemory_Masked(t *testing.T) {
	m := newTestMachine(t,
		0xAFFF, // LD I, $FFF
		0xF165, // LD V1, [I]
	)
	m.memory[0xFFF] = 0x12
	steps(t, m, 2)

	assert.Equal(t, byte(0x12), m.ReadMemory(0x1FFF))
	assert.Equal(t, fontSet[0], m.ReadMemory(0x1000))
	// the second load wraps around to address 0
	assert.Equal(t, uint8(0x12), m.Register(0))
	assert.Equal(t, fontSet[0], m.Register(1))
}
