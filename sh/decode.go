package sh

// Decode parses a raw 16-bit instruction word. It follows the classic
// SuperH nibble discipline: the word is split into four nibbles, the fixed
// nibbles select the variant and the variable nibbles carry the operands.
// Decoding is total: anything unrecognised comes back as a Literal.
func Decode(raw uint16) Instruction {
	n1 := uint8(raw>>12) & 0x0f
	n2 := uint8(raw>>8) & 0x0f
	n3 := uint8(raw>>4) & 0x0f
	n4 := uint8(raw) & 0x0f
	imm := uint8(raw)

	switch n1 {
	case 0x0:
		switch {
		case raw == 0x0009:
			return Nop()
		case raw == 0x000b:
			return Rts()
		case n3 == 0x2 && n4 == 0x9:
			return MovT(n2)
		case n3 == 0x2 && n4 == 0xa:
			return StsPr(n2)
		case n3 == 0x1 && n4 == 0xa:
			return StsMacl(n2)
		case n3 == 0x0 && n4 == 0xa:
			return StsMach(n2)
		case n4 == 0x7:
			return MulL(n2, n3)
		case n4 == 0xc:
			return MovB(Reg(n2), OffsetR0(n3))
		case n4 == 0xd:
			return MovW(Reg(n2), OffsetR0(n3))
		case n4 == 0xe:
			return MovL(Reg(n2), OffsetR0(n3))
		case n4 == 0x4:
			return MovB(OffsetR0(n2), Reg(n3))
		case n4 == 0x5:
			return MovW(OffsetR0(n2), Reg(n3))
		case n4 == 0x6:
			return MovL(OffsetR0(n2), Reg(n3))
		}

	case 0x1:
		return MovL(Disp4Reg(n4, n2), Reg(n3))

	case 0x2:
		switch n4 {
		case 0x0:
			return MovB(AtReg(n2), Reg(n3))
		case 0x1:
			return MovW(AtReg(n2), Reg(n3))
		case 0x2:
			return MovL(AtReg(n2), Reg(n3))
		case 0x4:
			return PushOtherB(n3, n2)
		case 0x6:
			return PushOther(n3, n2)
		case 0x8:
			return Tst(n2, n3)
		case 0xa:
			return Xor(n2, n3)
		case 0xb:
			return Or(n2, n3)
		}

	case 0x3:
		switch n4 {
		case 0x0:
			return CmpEq(n2, n3)
		case 0x2:
			return CmpHs(n2, n3)
		case 0x3:
			return CmpGe(n2, n3)
		case 0x6:
			return CmpHi(n2, n3)
		case 0x7:
			return CmpGt(n2, n3)
		case 0x8:
			return Sub(n2, n3)
		case 0xa:
			return Subc(n2, n3)
		case 0xc:
			return Add(n2, n3)
		case 0xd:
			return DmulSL(n2, n3)
		}

	case 0x4:
		if n4 == 0xd {
			return Shld(n2, n3)
		}
		switch {
		case n3 == 0x0 && n4 == 0x0:
			return Shll(n2)
		case n3 == 0x0 && n4 == 0x8:
			return Shll2(n2)
		case n3 == 0x1 && n4 == 0x8:
			return Shll8(n2)
		case n3 == 0x2 && n4 == 0x8:
			return Shll16(n2)
		case n3 == 0x0 && n4 == 0x1:
			return Shlr(n2)
		case n3 == 0x0 && n4 == 0x9:
			return Shlr2(n2)
		case n3 == 0x1 && n4 == 0x9:
			return Shlr8(n2)
		case n3 == 0x2 && n4 == 0x9:
			return Shlr16(n2)
		case n3 == 0x2 && n4 == 0x1:
			return Shar(n2)
		case n3 == 0x1 && n4 == 0x0:
			return Dt(n2)
		case n3 == 0x1 && n4 == 0x1:
			return CmpPz(n2)
		case n3 == 0x2 && n4 == 0x2:
			return PushPROther(n2)
		case n3 == 0x2 && n4 == 0x6:
			return PopPROther(n2)
		case n3 == 0x1 && n4 == 0x2:
			return StsLMacl(n2)
		case n3 == 0x1 && n4 == 0x6:
			return LdsLMacl(n2)
		case n3 == 0x0 && n4 == 0x2:
			return StsLMach(n2)
		case n3 == 0x0 && n4 == 0x6:
			return LdsLMach(n2)
		case n3 == 0x2 && n4 == 0xb:
			return Jmp(n2)
		case n3 == 0x0 && n4 == 0xb:
			return Jsr(n2)
		}

	case 0x5:
		return MovL(Reg(n2), Disp4Reg(n4, n3))

	case 0x6:
		switch n4 {
		case 0x0:
			return MovB(Reg(n2), AtReg(n3))
		case 0x1:
			return MovW(Reg(n2), AtReg(n3))
		case 0x2:
			return MovL(Reg(n2), AtReg(n3))
		case 0x3:
			return Mov(n2, n3)
		case 0x6:
			return PopOther(n2, n3)
		case 0xd:
			return ExtuW(n2, n3)
		}

	case 0x7:
		return AddI(n2, imm)

	case 0x8:
		switch n2 {
		case 0x8:
			return CmpEqI(imm)
		case 0x9:
			return BT(imm)
		case 0xb:
			return BF(imm)
		case 0xd:
			return BTs(imm)
		case 0xf:
			return BFs(imm)
		}

	case 0x9:
		return MovW(Reg(n2), Disp8(imm))

	case 0xa:
		return BRA(raw & 0x0fff)

	case 0xb:
		return BSR(raw & 0x0fff)

	case 0xc:
		if n2 == 0x7 {
			return MovA(imm)
		}

	case 0xd:
		return MovL(Reg(n2), Disp8(imm))

	case 0xe:
		return MovI(n2, imm)
	}

	return Literal(uint8(raw>>8), uint8(raw))
}
