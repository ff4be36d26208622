// Package vm implements the CHIP-8 virtual machine core.
//
// # Machine Layout
//
// The machine has 4KB of memory (0x000-MaxAddress):
//   - 0x000-0x04F: built-in hexadecimal font, 16 glyphs of 5 bytes
//   - ProgramStart-MaxAddress: program and data area
//
// Besides memory it holds 16 general purpose 8-bit registers V0-VF, the
// 16-bit index register I, a call stack of 16 return addresses, a 64x32
// monochrome display, the state of the 16 key hexadecimal keypad and the
// delay and sound timers.
//
// Register VF doubles as flag output for the carry, borrow, shift and
// sprite collision results of the instructions that set it.
//
// # Driving the Machine
//
// The machine has no internal clock. The host calls Step at its chosen
// instruction rate and TickTimers at 60 Hz, delivers key state changes
// with SetKey and reads the pixel buffer with Display:
//
//	m := vm.New()
//	if err := m.Load(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		if err := m.Step(); err != nil {
//			return err
//		}
//	}
//
// Step fails on stack overflow, stack underflow, unknown opcodes and
// instruction fetches outside of memory. Any such error halts the
// machine until Reset is called.
//
// A Machine must only be used from a single goroutine at a time.
package vm
