package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode uint16
		kind   Kind
	}{
		{0x0000, KindNop},
		{0x00E0, KindCls},
		{0x00EE, KindRet},
		{0x1234, KindJump},
		{0x2345, KindCall},
		{0x3A12, KindSkipEqImm},
		{0x4A12, KindSkipNeImm},
		{0x5AB0, KindSkipEqReg},
		{0x6A07, KindLoadImm},
		{0x7A01, KindAddImm},
		{0x8AB0, KindLoadReg},
		{0x8AB1, KindOr},
		{0x8AB2, KindAnd},
		{0x8AB3, KindXor},
		{0x8AB4, KindAddReg},
		{0x8AB5, KindSub},
		{0x8AB6, KindShr},
		{0x8AB7, KindSubn},
		{0x8ABE, KindShl},
		{0x9AB0, KindSkipNeReg},
		{0xA123, KindLoadIndex},
		{0xB123, KindJumpV0},
		{0xCA0F, KindRandom},
		{0xDAB5, KindDraw},
		{0xEA9E, KindSkipKey},
		{0xEAA1, KindSkipNoKey},
		{0xFA07, KindLoadDelay},
		{0xFA0A, KindWaitKey},
		{0xFA15, KindSetDelay},
		{0xFA18, KindSetSound},
		{0xFA1E, KindAddIndex},
		{0xFA29, KindLoadGlyph},
		{0xFA33, KindStoreBCD},
		{0xFA55, KindStoreRegs},
		{0xFA65, KindLoadRegs},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			ins, err := Decode(tt.opcode)
			assert.NoError(t, err)
			assert.Equal(t, tt.kind, ins.Kind)
			assert.Equal(t, tt.opcode, ins.Opcode)
		})
	}
}

func TestDecode_Operands(t *testing.T) {
	ins, err := Decode(0xDAB5)
	assert.NoError(t, err)

	assert.Equal(t, uint8(0xA), ins.X)
	assert.Equal(t, uint8(0xB), ins.Y)
	assert.Equal(t, uint8(0x5), ins.N)
	assert.Equal(t, uint8(0xB5), ins.KK)
	assert.Equal(t, uint16(0xAB5), ins.NNN)
}

func TestDecode_Unknown(t *testing.T) {
	opcodes := []uint16{
		0x0123, // machine code routine call, not supported
		0x00E1,
		0x00FF, // SUPER-CHIP high resolution mode
		0x5AB1,
		0x8AB8,
		0x8ABF,
		0x9AB1,
		0xEA00,
		0xEA9F,
		0xF000,
		0xFA30, // SUPER-CHIP large font
		0xFA75,
		0xFFFF,
	}

	for _, opcode := range opcodes {
		ins, err := Decode(opcode)
		assert.True(t, errors.Is(err, ErrUnknownOpcode), "opcode %04X", opcode)
		assert.Equal(t, KindInvalid, ins.Kind)
	}
}

func TestStep_UnknownOpcode(t *testing.T) {
	m := newTestMachine(t, 0x5AB1)

	err := m.Step()
	assert.True(t, errors.Is(err, ErrUnknownOpcode))
	assert.ErrorContains(t, err, "0x5AB1")
}

func TestExecute_InvalidKind(t *testing.T) {
	m := New()

	err := m.execute(Instruction{Opcode: 0x1234, Kind: KindInvalid})
	assert.True(t, errors.Is(err, ErrUnknownOpcode))

	err = m.execute(Instruction{Opcode: 0x1234, Kind: kindCount})
	assert.True(t, errors.Is(err, ErrUnknownOpcode))
}

func TestKind_String(t *testing.T) {
	for kind := KindInvalid; kind < kindCount; kind++ {
		assert.NotEmpty(t, kind.String())
	}
	assert.Equal(t, "draw", KindDraw.String())
	assert.Equal(t, "kind(200)", Kind(200).String())
}

func TestInstruction_String(t *testing.T) {
	ins, err := Decode(0x8AB4)
	assert.NoError(t, err)
	assert.Equal(t, "8AB4 add-reg", ins.String())
}
