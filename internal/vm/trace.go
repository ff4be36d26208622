package vm

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Mnemonic returns the assembler mnemonic of the opcode as listed in the
// CHIP-8 opcode table, or an empty string for unlisted opcodes.
func Mnemonic(opcode uint16) string {
	firstNibble := opcode >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Instruction != nil && op.Info.Mask&opcode == op.Info.Value {
			return op.Instruction.Name
		}
	}
	return ""
}

func (m *Machine) traceInstruction(address uint16, ins Instruction) {
	if m.opts.logger == nil {
		return
	}
	m.opts.logger.Debug("Executing instruction",
		log.Hex("address", address),
		log.Hex("opcode", ins.Opcode),
		log.String("mnemonic", Mnemonic(ins.Opcode)),
		log.String("kind", ins.Kind.String()),
		log.Hex("index", m.index),
		log.Uint8("stack", m.sp))
}
