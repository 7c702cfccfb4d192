package sh

import "fmt"

// Encode serialises the instruction into its 2-byte big-endian machine
// form. Calling it on a symbolic instruction (Label, JumpToLabel,
// CallToLabel) or an operand combination the ISA has no encoding for is a
// programmer error and panics; the assembler removes all symbolic forms
// before emission.
func (i Instruction) Encode() [2]byte {
	switch i.Op {
	case OpNop:
		return word(0x00, 0x09)
	case OpLiteral:
		return word(uint8(i.Disp>>8), uint8(i.Disp))

	case OpMov:
		return word(0x60|lo4(i.N), 0x03|hi4(i.M))
	case OpMovI:
		return word(0xe0|lo4(i.N), i.Imm)
	case OpMovA:
		return word(0xc7, i.Imm)
	case OpMovT:
		return word(0x00|lo4(i.N), 0x29)
	case OpMovB:
		return i.encodeMove(0x0, 0xc, 0x4)
	case OpMovW:
		return i.encodeMove(0x1, 0xd, 0x5)
	case OpMovL:
		return i.encodeMove(0x2, 0xe, 0x6)
	case OpExtuW:
		return word(0x60|lo4(i.N), 0x0d|hi4(i.M))

	case OpPushReg:
		return word(0x20|lo4(i.N), 0x06|hi4(i.M))
	case OpPushRegB:
		return word(0x20|lo4(i.N), 0x04|hi4(i.M))
	case OpPopReg:
		return word(0x60|lo4(i.N), 0x06|hi4(i.M))
	case OpPushPRReg:
		return word(0x40|lo4(i.N), 0x22)
	case OpPopPRReg:
		return word(0x40|lo4(i.N), 0x26)

	case OpAdd:
		return word(0x30|lo4(i.N), 0x0c|hi4(i.M))
	case OpAddI:
		return word(0x70|lo4(i.N), i.Imm)
	case OpSub:
		return word(0x30|lo4(i.N), 0x08|hi4(i.M))
	case OpSubc:
		return word(0x30|lo4(i.N), 0x0a|hi4(i.M))
	case OpMulL:
		return word(0x00|lo4(i.N), 0x07|hi4(i.M))
	case OpDmulSL:
		return word(0x30|lo4(i.N), 0x0d|hi4(i.M))

	case OpXor:
		return word(0x20|lo4(i.N), 0x0a|hi4(i.M))
	case OpOr:
		return word(0x20|lo4(i.N), 0x0b|hi4(i.M))
	case OpTst:
		return word(0x20|lo4(i.N), 0x08|hi4(i.M))

	case OpShll:
		return word(0x40|lo4(i.N), 0x00)
	case OpShll2:
		return word(0x40|lo4(i.N), 0x08)
	case OpShll8:
		return word(0x40|lo4(i.N), 0x18)
	case OpShll16:
		return word(0x40|lo4(i.N), 0x28)
	case OpShlr:
		return word(0x40|lo4(i.N), 0x01)
	case OpShlr2:
		return word(0x40|lo4(i.N), 0x09)
	case OpShlr8:
		return word(0x40|lo4(i.N), 0x19)
	case OpShlr16:
		return word(0x40|lo4(i.N), 0x29)
	case OpShar:
		return word(0x40|lo4(i.N), 0x21)
	case OpShld:
		return word(0x40|lo4(i.N), 0x0d|hi4(i.M))

	case OpCmpEq:
		return word(0x30|lo4(i.N), 0x00|hi4(i.M))
	case OpCmpEqI:
		return word(0x88, i.Imm)
	case OpCmpHs:
		return word(0x30|lo4(i.N), 0x02|hi4(i.M))
	case OpCmpGe:
		return word(0x30|lo4(i.N), 0x03|hi4(i.M))
	case OpCmpHi:
		return word(0x30|lo4(i.N), 0x06|hi4(i.M))
	case OpCmpGt:
		return word(0x30|lo4(i.N), 0x07|hi4(i.M))
	case OpCmpPz:
		return word(0x40|lo4(i.N), 0x11)
	case OpDt:
		return word(0x40|lo4(i.N), 0x10)

	case OpBT:
		return word(0x89, i.Imm)
	case OpBTs:
		return word(0x8d, i.Imm)
	case OpBF:
		return word(0x8b, i.Imm)
	case OpBFs:
		return word(0x8f, i.Imm)
	case OpBRA:
		return word(0xa0|uint8((i.Disp>>8)&0x0f), uint8(i.Disp))
	case OpBSR:
		return word(0xb0|uint8((i.Disp>>8)&0x0f), uint8(i.Disp))
	case OpJmp:
		return word(0x40|lo4(i.M), 0x2b)
	case OpJsr:
		return word(0x40|lo4(i.M), 0x0b)
	case OpRts:
		return word(0x00, 0x0b)

	case OpStsPr:
		return word(0x00|lo4(i.N), 0x2a)
	case OpStsMacl:
		return word(0x00|lo4(i.N), 0x1a)
	case OpStsLMacl:
		return word(0x40|lo4(i.N), 0x12)
	case OpLdsLMacl:
		return word(0x40|lo4(i.N), 0x16)
	case OpStsMach:
		return word(0x00|lo4(i.N), 0x0a)
	case OpStsLMach:
		return word(0x40|lo4(i.N), 0x02)
	case OpLdsLMach:
		return word(0x40|lo4(i.N), 0x06)
	}

	panic(fmt.Sprintf("sh: no encoding for %v", i))
}

// encodeMove handles the shared layout of the byte/word/long moves.
// width is the low nibble selecting B/W/L in the register-indirect forms;
// r0Load/r0Store select the @(R0,Rn) forms.
func (i Instruction) encodeMove(width, r0Load, r0Store uint8) [2]byte {
	d, s := i.Dst, i.Src
	switch {
	case d.Mode == ModeRegister && s.Mode == ModeAtRegister:
		return word(0x60|lo4(d.Reg), width|hi4(s.Reg))
	case d.Mode == ModeAtRegister && s.Mode == ModeRegister:
		return word(0x20|lo4(d.Reg), width|hi4(s.Reg))
	case d.Mode == ModeRegister && s.Mode == ModeDisplacement8 && i.Op == OpMovW:
		return word(0x90|lo4(d.Reg), s.Disp)
	case d.Mode == ModeRegister && s.Mode == ModeDisplacement8 && i.Op == OpMovL:
		return word(0xd0|lo4(d.Reg), s.Disp)
	case d.Mode == ModeRegister && s.Mode == ModeDisplacement4Reg && i.Op == OpMovL:
		return word(0x50|lo4(d.Reg), hi4(s.Reg)|lo4(s.Disp))
	case d.Mode == ModeDisplacement4Reg && s.Mode == ModeRegister && i.Op == OpMovL:
		return word(0x10|lo4(d.Reg), hi4(s.Reg)|lo4(d.Disp))
	case d.Mode == ModeRegister && s.Mode == ModeOffsetR0:
		return word(0x00|lo4(d.Reg), r0Load|hi4(s.Reg))
	case d.Mode == ModeOffsetR0 && s.Mode == ModeRegister:
		return word(0x00|lo4(d.Reg), r0Store|hi4(s.Reg))
	}
	panic(fmt.Sprintf("sh: no encoding for %v", i))
}

func word(hi, lo uint8) [2]byte { return [2]byte{hi, lo} }

func lo4(v uint8) uint8 { return v & 0x0f }
func hi4(v uint8) uint8 { return (v << 4) & 0xf0 }
