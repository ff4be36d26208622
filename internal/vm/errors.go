package vm

import "errors"

var (
	// ErrStackOverflow is returned when a call is made with all 16 stack entries in use.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is executed with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrUnknownOpcode is returned for opcodes that are not part of the CHIP-8 instruction set.
	ErrUnknownOpcode = errors.New("unimplemented opcode")
	// ErrAddressOutOfRange is returned when an instruction is fetched from outside of memory.
	ErrAddressOutOfRange = errors.New("address out of range")
	// ErrKeyOutOfRange is returned for key indexes above 0xF when IndexFault is set.
	ErrKeyOutOfRange = errors.New("key index out of range")
	// ErrGlyphOutOfRange is returned for font glyph indexes above 0xF when IndexFault is set.
	ErrGlyphOutOfRange = errors.New("glyph index out of range")
	// ErrProgramTooLarge is returned by Load for programs that do not fit into memory.
	ErrProgramTooLarge = errors.New("program too large")
)
