package codegen

import "github.com/Lol3rrr/prizm-sub000/sh"

// storeU16 materialises a 16-bit constant in the register. Zero becomes a
// register XOR, small values a sign-extending move-immediate; anything
// else reads an inline literal word that the surrounding code jumps over:
//
//	MOV.W @(2,PC), Rn
//	NOP
//	BRA 1
//	NOP
//	.word value
func storeU16(register uint8, value uint16) []sh.Instruction {
	if value == 0 {
		return []sh.Instruction{sh.Xor(register, register)}
	}
	if value <= 0x7f {
		return []sh.Instruction{sh.MovI(register, uint8(value))}
	}

	return []sh.Instruction{
		sh.MovW(sh.Reg(register), sh.Disp8(2)),
		sh.Nop(),
		sh.BRA(1),
		sh.Nop(),
		sh.Literal(uint8(value>>8), uint8(value)),
	}
}

// storeU32 materialises a 32-bit constant in the register. Values that fit
// 16 bits reuse storeU16; wider values compose two 16-bit loads, shift the
// high half into place, mask the (sign-extended) low half and add, using
// the other working register as scratch.
func storeU32(register uint8, value uint32) []sh.Instruction {
	if value == 0 {
		return []sh.Instruction{sh.Xor(register, register)}
	}
	if value <= 0x7f {
		return []sh.Instruction{sh.MovI(register, uint8(value))}
	}
	if value <= 0xffff {
		return storeU16(register, uint16(value))
	}

	otherReg := uint8(regScratch)
	if register == regScratch {
		otherReg = regAccum
	}

	result := []sh.Instruction{sh.Push(otherReg)}
	result = append(result, storeU16(register, uint16(value>>16))...)
	result = append(result, storeU16(otherReg, uint16(value))...)
	result = append(result,
		sh.Shll16(register),
		sh.Shll16(otherReg),
		sh.Shlr16(otherReg),
		sh.Add(register, otherReg),
		sh.Pop(otherReg),
	)

	return result
}
