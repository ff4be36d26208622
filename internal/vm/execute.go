package vm

import "fmt"

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Step executes exactly one fetch-decode-execute cycle. A returned error
// halts the machine, every following call returns the same error until
// Reset is called.
func (m *Machine) Step() error {
	if m.err != nil {
		return m.err
	}
	if err := m.step(); err != nil {
		m.err = err
		return err
	}
	return nil
}

func (m *Machine) step() error {
	address := m.pc
	opcode, err := m.fetch()
	if err != nil {
		return err
	}

	ins, err := Decode(opcode)
	if err != nil {
		return fmt.Errorf("decoding at address 0x%03X: %w", address, err)
	}
	if m.opts.trace {
		m.traceInstruction(address, ins)
	}

	if err := m.execute(ins); err != nil {
		return fmt.Errorf("executing %s at address 0x%03X: %w", ins, address, err)
	}
	return nil
}

// fetch reads the big endian opcode at the program counter and advances it.
func (m *Machine) fetch() (uint16, error) {
	if int(m.pc)+1 > MaxAddress {
		return 0, fmt.Errorf("%w: fetching opcode at 0x%04X", ErrAddressOutOfRange, m.pc)
	}
	opcode := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
	m.pc += opcodeSize
	return opcode, nil
}

//nolint:cyclop,funlen,gocyclo // one case per instruction kind
func (m *Machine) execute(ins Instruction) error {
	v := &m.registers
	x, y := ins.X, ins.Y

	switch ins.Kind {
	case KindNop:

	case KindCls:
		m.display = [PixelCount]bool{}

	case KindRet:
		address, err := m.pop()
		if err != nil {
			return err
		}
		m.pc = address

	case KindJump:
		m.pc = ins.NNN

	case KindCall:
		if err := m.push(m.pc); err != nil {
			return err
		}
		m.pc = ins.NNN

	case KindSkipEqImm:
		m.skipIf(v[x] == ins.KK)

	case KindSkipNeImm:
		m.skipIf(v[x] != ins.KK)

	case KindSkipEqReg:
		m.skipIf(v[x] == v[y])

	case KindLoadImm:
		v[x] = ins.KK

	case KindAddImm:
		v[x] += ins.KK

	case KindLoadReg:
		v[x] = v[y]

	case KindOr:
		v[x] |= v[y]

	case KindAnd:
		v[x] &= v[y]

	case KindXor:
		v[x] ^= v[y]

	case KindAddReg:
		sum := uint16(v[x]) + uint16(v[y])
		v[x] = uint8(sum)
		v[flagRegister] = uint8(sum >> 8)

	case KindSub:
		vx, vy := v[x], v[y]
		v[x] = vx - vy
		v[flagRegister] = boolToByte(vx >= vy)

	case KindShr:
		lsb := v[x] & 0x01
		v[x] >>= 1
		v[flagRegister] = lsb

	case KindSubn:
		vx, vy := v[x], v[y]
		v[x] = vy - vx
		v[flagRegister] = boolToByte(vy >= vx)

	case KindShl:
		msb := v[x] >> 7
		v[x] <<= 1
		v[flagRegister] = msb

	case KindSkipNeReg:
		m.skipIf(v[x] != v[y])

	case KindLoadIndex:
		m.index = ins.NNN

	case KindJumpV0:
		m.pc = uint16(v[0]) + ins.NNN

	case KindRandom:
		v[x] = m.opts.random() & ins.KK

	case KindDraw:
		m.drawSprite(v[x], v[y], ins.N)

	case KindSkipKey, KindSkipNoKey:
		key, err := m.keyIndex(v[x])
		if err != nil {
			return err
		}
		m.skipIf(m.keys[key] == (ins.Kind == KindSkipKey))

	case KindLoadDelay:
		v[x] = m.delayTimer

	case KindWaitKey:
		m.waitKey(x)

	case KindSetDelay:
		m.delayTimer = v[x]

	case KindSetSound:
		m.soundTimer = v[x]

	case KindAddIndex:
		m.index += uint16(v[x])

	case KindLoadGlyph:
		glyph, err := m.glyphIndex(v[x])
		if err != nil {
			return err
		}
		m.index = uint16(glyph) * glyphSize

	case KindStoreBCD:
		value := v[x]
		m.writeMemory(m.index, value/100)
		m.writeMemory(m.index+1, value/10%10)
		m.writeMemory(m.index+2, value%10)

	case KindStoreRegs:
		for i := uint16(0); i <= uint16(x); i++ {
			m.writeMemory(m.index+i, v[i])
		}

	case KindLoadRegs:
		for i := uint16(0); i <= uint16(x); i++ {
			v[i] = m.ReadMemory(m.index + i)
		}

	default:
		return fmt.Errorf("%w: 0x%04X", ErrUnknownOpcode, ins.Opcode)
	}
	return nil
}

// skipIf skips the next instruction if the condition is met.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += opcodeSize
	}
}

// waitKey stores the lowest pressed key in Vx. If no key is pressed the
// program counter is rewound so that the instruction executes again on
// the next step.
func (m *Machine) waitKey(x uint8) {
	for key, pressed := range m.keys {
		if pressed {
			m.registers[x] = uint8(key)
			return
		}
	}
	m.pc -= opcodeSize
}

func (m *Machine) keyIndex(value uint8) (uint8, error) {
	if value < KeyCount {
		return value, nil
	}
	if m.opts.indexPolicy == IndexFault {
		return 0, fmt.Errorf("%w: 0x%02X", ErrKeyOutOfRange, value)
	}
	return value & 0x0F, nil
}

func (m *Machine) glyphIndex(value uint8) (uint8, error) {
	if value < glyphCount {
		return value, nil
	}
	if m.opts.indexPolicy == IndexFault {
		return 0, fmt.Errorf("%w: 0x%02X", ErrGlyphOutOfRange, value)
	}
	return value & 0x0F, nil
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
