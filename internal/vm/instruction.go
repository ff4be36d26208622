package vm

import "fmt"

// Kind identifies the operation of a decoded instruction.
type Kind uint8

// Instruction kinds, one per opcode pattern of the CHIP-8 instruction set.
// In the comments x and y are register nibbles, n is the low nibble,
// kk the low byte and nnn the low 12 bits of the opcode.
const (
	KindInvalid   Kind = iota
	KindNop            // 0000
	KindCls            // 00E0
	KindRet            // 00EE
	KindJump           // 1nnn
	KindCall           // 2nnn
	KindSkipEqImm      // 3xkk
	KindSkipNeImm      // 4xkk
	KindSkipEqReg      // 5xy0
	KindLoadImm        // 6xkk
	KindAddImm         // 7xkk
	KindLoadReg        // 8xy0
	KindOr             // 8xy1
	KindAnd            // 8xy2
	KindXor            // 8xy3
	KindAddReg         // 8xy4
	KindSub            // 8xy5
	KindShr            // 8xy6
	KindSubn           // 8xy7
	KindShl            // 8xyE
	KindSkipNeReg      // 9xy0
	KindLoadIndex      // Annn
	KindJumpV0         // Bnnn
	KindRandom         // Cxkk
	KindDraw           // Dxyn
	KindSkipKey        // Ex9E
	KindSkipNoKey      // ExA1
	KindLoadDelay      // Fx07
	KindWaitKey        // Fx0A
	KindSetDelay       // Fx15
	KindSetSound       // Fx18
	KindAddIndex       // Fx1E
	KindLoadGlyph      // Fx29
	KindStoreBCD       // Fx33
	KindStoreRegs      // Fx55
	KindLoadRegs       // Fx65

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:   "invalid",
	KindNop:       "nop",
	KindCls:       "cls",
	KindRet:       "ret",
	KindJump:      "jump",
	KindCall:      "call",
	KindSkipEqImm: "skip-eq-imm",
	KindSkipNeImm: "skip-ne-imm",
	KindSkipEqReg: "skip-eq-reg",
	KindLoadImm:   "load-imm",
	KindAddImm:    "add-imm",
	KindLoadReg:   "load-reg",
	KindOr:        "or",
	KindAnd:       "and",
	KindXor:       "xor",
	KindAddReg:    "add-reg",
	KindSub:       "sub",
	KindShr:       "shr",
	KindSubn:      "subn",
	KindShl:       "shl",
	KindSkipNeReg: "skip-ne-reg",
	KindLoadIndex: "load-index",
	KindJumpV0:    "jump-v0",
	KindRandom:    "random",
	KindDraw:      "draw",
	KindSkipKey:   "skip-key",
	KindSkipNoKey: "skip-no-key",
	KindLoadDelay: "load-delay",
	KindWaitKey:   "wait-key",
	KindSetDelay:  "set-delay",
	KindSetSound:  "set-sound",
	KindAddIndex:  "add-index",
	KindLoadGlyph: "load-glyph",
	KindStoreBCD:  "store-bcd",
	KindStoreRegs: "store-regs",
	KindLoadRegs:  "load-regs",
}

// String returns the name of the instruction kind.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Instruction is a decoded opcode with its operands.
type Instruction struct {
	Opcode uint16
	Kind   Kind

	X   uint8  // register index from the second nibble
	Y   uint8  // register index from the third nibble
	N   uint8  // low nibble
	KK  uint8  // low byte
	NNN uint16 // low 12 bits
}

// String returns the opcode in hex followed by the instruction kind.
func (i Instruction) String() string {
	return fmt.Sprintf("%04X %s", i.Opcode, i.Kind)
}

// Decode splits the opcode into its nibbles and classifies it.
// Opcodes that do not match any pattern return ErrUnknownOpcode.
func Decode(opcode uint16) (Instruction, error) {
	ins := Instruction{
		Opcode: opcode,
		X:      extractRegisterX(opcode),
		Y:      extractRegisterY(opcode),
		N:      uint8(opcode & 0x000F),
		KK:     uint8(opcode & 0x00FF),
		NNN:    opcode & 0x0FFF,
	}

	kind := decodeKind(opcode)
	if kind == KindInvalid {
		return ins, fmt.Errorf("%w: 0x%04X", ErrUnknownOpcode, opcode)
	}
	ins.Kind = kind
	return ins, nil
}

//nolint:cyclop,funlen // one case per opcode pattern
func decodeKind(opcode uint16) Kind {
	n := opcode & 0x000F
	kk := opcode & 0x00FF

	switch opcode >> 12 {
	case 0x0:
		switch opcode {
		case 0x0000:
			return KindNop
		case 0x00E0:
			return KindCls
		case 0x00EE:
			return KindRet
		}
	case 0x1:
		return KindJump
	case 0x2:
		return KindCall
	case 0x3:
		return KindSkipEqImm
	case 0x4:
		return KindSkipNeImm
	case 0x5:
		if n == 0 {
			return KindSkipEqReg
		}
	case 0x6:
		return KindLoadImm
	case 0x7:
		return KindAddImm
	case 0x8:
		return decodeALU(n)
	case 0x9:
		if n == 0 {
			return KindSkipNeReg
		}
	case 0xA:
		return KindLoadIndex
	case 0xB:
		return KindJumpV0
	case 0xC:
		return KindRandom
	case 0xD:
		return KindDraw
	case 0xE:
		switch kk {
		case 0x9E:
			return KindSkipKey
		case 0xA1:
			return KindSkipNoKey
		}
	case 0xF:
		return decodeMisc(kk)
	}
	return KindInvalid
}

// decodeALU classifies the 8xyn register arithmetic group.
func decodeALU(n uint16) Kind {
	switch n {
	case 0x0:
		return KindLoadReg
	case 0x1:
		return KindOr
	case 0x2:
		return KindAnd
	case 0x3:
		return KindXor
	case 0x4:
		return KindAddReg
	case 0x5:
		return KindSub
	case 0x6:
		return KindShr
	case 0x7:
		return KindSubn
	case 0xE:
		return KindShl
	}
	return KindInvalid
}

// decodeMisc classifies the Fxkk timer, keypad and memory group.
func decodeMisc(kk uint16) Kind {
	switch kk {
	case 0x07:
		return KindLoadDelay
	case 0x0A:
		return KindWaitKey
	case 0x15:
		return KindSetDelay
	case 0x18:
		return KindSetSound
	case 0x1E:
		return KindAddIndex
	case 0x29:
		return KindLoadGlyph
	case 0x33:
		return KindStoreBCD
	case 0x55:
		return KindStoreRegs
	case 0x65:
		return KindLoadRegs
	}
	return KindInvalid
}

// extractRegisterX extracts the X register nibble from an opcode.
func extractRegisterX(opcode uint16) uint8 {
	return uint8((opcode & 0x0F00) >> 8)
}

// extractRegisterY extracts the Y register nibble from an opcode.
func extractRegisterY(opcode uint16) uint8 {
	return uint8((opcode & 0x00F0) >> 4)
}
