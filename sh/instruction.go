// Package sh models the 16-bit instruction set of the SuperH-family
// processor used by the calculator. It is shared by the compiler backend,
// the assembler and the emulator: one Instruction value, one 2-byte
// big-endian encoding.
//
// Instruction reference: http://shared-ptr.com/sh_insns.html
package sh

import "fmt"

// Op identifies an instruction variant. The Push/Pop/PushPR/PopPR helpers
// below are constructors for the canonical register-relative forms, so that
// Decode(Encode(i)) == i holds for every real instruction.
type Op uint8

const (
	// OpLiteral is a raw 16-bit word that decoded to no known pattern. It
	// round-trips through the codec untouched; the user is responsible for
	// its meaning.
	OpLiteral Op = iota
	OpNop

	// Moves
	OpMov   // Rm -> Rn
	OpMovI  // sign-extended 8-bit immediate -> Rn
	OpMovA  // PC-relative address -> R0
	OpMovT  // T flag -> Rn
	OpMovB  // byte move, operand modes in Dst/Src
	OpMovW  // word move
	OpMovL  // long move
	OpExtuW // zero-extend word Rm -> Rn

	// Stack-style accesses (pre-decrement / post-increment)
	OpPushReg   // MOV.L Rm,@-Rn
	OpPushRegB  // MOV.B Rm,@-Rn
	OpPopReg    // MOV.L @Rm+,Rn
	OpPushPRReg // STS.L PR,@-Rn
	OpPopPRReg  // LDS.L @Rm+,PR

	// Arithmetic
	OpAdd
	OpAddI
	OpSub
	OpSubc
	OpMulL
	OpDmulSL

	// Logic
	OpXor
	OpOr
	OpTst

	// Shifts
	OpShll
	OpShll2
	OpShll8
	OpShll16
	OpShlr
	OpShlr2
	OpShlr8
	OpShlr16
	OpShar
	OpShld

	// Comparisons
	OpCmpEq
	OpCmpEqI
	OpCmpHs
	OpCmpGe
	OpCmpHi
	OpCmpGt
	OpCmpPz
	OpDt

	// Branches
	OpBT
	OpBTs
	OpBF
	OpBFs
	OpBRA
	OpBSR
	OpJmp
	OpJsr
	OpRts

	// System registers
	OpStsPr
	OpStsMacl
	OpStsLMacl
	OpLdsLMacl
	OpStsMach
	OpStsLMach
	OpLdsLMach

	// Symbolic forms, only valid before assembly. Encode rejects them.
	OpLabel
	OpJumpToLabel
	OpCallToLabel
)

// Mode is the addressing mode of a move operand.
type Mode uint8

const (
	ModeRegister Mode = iota
	ModeAtRegister
	ModeDisplacement8
	ModeDisplacement4Reg
	ModeOffsetR0
)

// Operand describes one side of a byte/word/long move.
type Operand struct {
	Mode Mode
	Reg  uint8
	Disp uint8
}

// Reg addresses a register directly.
func Reg(r uint8) Operand { return Operand{Mode: ModeRegister, Reg: r} }

// AtReg addresses the memory location whose address is in the register.
func AtReg(r uint8) Operand { return Operand{Mode: ModeAtRegister, Reg: r} }

// Disp8 is a PC-relative displacement (scaled by the access width).
func Disp8(d uint8) Operand { return Operand{Mode: ModeDisplacement8, Disp: d} }

// Disp4Reg addresses memory at register + 4-bit scaled displacement.
func Disp4Reg(d, r uint8) Operand { return Operand{Mode: ModeDisplacement4Reg, Reg: r, Disp: d} }

// OffsetR0 addresses memory at R0 + register.
func OffsetR0(r uint8) Operand { return Operand{Mode: ModeOffsetR0, Reg: r} }

// Instruction is one processor instruction. Values are comparable; the
// unused fields of a variant are always zero.
type Instruction struct {
	Op       Op
	N, M     uint8   // register fields (target, source)
	Imm      uint8   // 8-bit immediate or branch displacement
	Disp     uint16  // 12-bit displacement (BRA/BSR) or raw literal word
	Dst, Src Operand // operands of MovB/MovW/MovL
	Name     string  // label name of the symbolic forms
}

// IsSymbolic reports whether the instruction is an assembler-only form
// that has no encoding.
func (i Instruction) IsSymbolic() bool {
	return i.Op == OpLabel || i.Op == OpJumpToLabel || i.Op == OpCallToLabel
}

// IsBranch reports whether the instruction occupies a delay slot when it
// executes. Placing one of these in another branch's delay slot is illegal.
func (i Instruction) IsBranch() bool {
	switch i.Op {
	case OpBT, OpBTs, OpBF, OpBFs, OpBRA, OpBSR, OpJmp, OpJsr, OpRts:
		return true
	}
	return false
}

// Constructors. Register operands follow the Intel-style (target, source)
// order used throughout the compiler backend.

func Nop() Instruction { return Instruction{Op: OpNop} }
func Mov(n, m uint8) Instruction { return Instruction{Op: OpMov, N: n, M: m} }
func MovI(n, v uint8) Instruction { return Instruction{Op: OpMovI, N: n, Imm: v} }
func MovA(d uint8) Instruction { return Instruction{Op: OpMovA, Imm: d} }
func MovT(n uint8) Instruction { return Instruction{Op: OpMovT, N: n} }
func MovB(dst, src Operand) Instruction {
	return Instruction{Op: OpMovB, Dst: dst, Src: src}
}
func MovW(dst, src Operand) Instruction {
	return Instruction{Op: OpMovW, Dst: dst, Src: src}
}
func MovL(dst, src Operand) Instruction {
	return Instruction{Op: OpMovL, Dst: dst, Src: src}
}
func ExtuW(n, m uint8) Instruction { return Instruction{Op: OpExtuW, N: n, M: m} }

// Push stores the register on the stack (SP = R15, pre-decrement).
func Push(r uint8) Instruction { return PushOther(r, 15) }

// PushOther stores src through an explicit stack register.
func PushOther(src, stack uint8) Instruction {
	return Instruction{Op: OpPushReg, M: src, N: stack}
}

// PushOtherB is the byte-wide pre-decrement store.
func PushOtherB(src, stack uint8) Instruction {
	return Instruction{Op: OpPushRegB, M: src, N: stack}
}

// Pop loads the register from the stack (SP = R15, post-increment).
func Pop(r uint8) Instruction { return PopOther(r, 15) }

// PopOther loads dst through an explicit stack register.
func PopOther(dst, stack uint8) Instruction {
	return Instruction{Op: OpPopReg, N: dst, M: stack}
}

// PushPR saves the PR control register on the stack.
func PushPR() Instruction { return PushPROther(15) }

func PushPROther(stack uint8) Instruction {
	return Instruction{Op: OpPushPRReg, N: stack}
}

// PopPR restores the PR control register from the stack.
func PopPR() Instruction { return PopPROther(15) }

func PopPROther(stack uint8) Instruction {
	return Instruction{Op: OpPopPRReg, N: stack}
}

func Add(n, m uint8) Instruction { return Instruction{Op: OpAdd, N: n, M: m} }
func AddI(n, v uint8) Instruction { return Instruction{Op: OpAddI, N: n, Imm: v} }
func Sub(n, m uint8) Instruction { return Instruction{Op: OpSub, N: n, M: m} }
func Subc(n, m uint8) Instruction { return Instruction{Op: OpSubc, N: n, M: m} }
func MulL(n, m uint8) Instruction { return Instruction{Op: OpMulL, N: n, M: m} }
func DmulSL(n, m uint8) Instruction { return Instruction{Op: OpDmulSL, N: n, M: m} }

func Xor(n, m uint8) Instruction { return Instruction{Op: OpXor, N: n, M: m} }
func Or(n, m uint8) Instruction { return Instruction{Op: OpOr, N: n, M: m} }
func Tst(n, m uint8) Instruction { return Instruction{Op: OpTst, N: n, M: m} }

func Shll(n uint8) Instruction { return Instruction{Op: OpShll, N: n} }
func Shll2(n uint8) Instruction { return Instruction{Op: OpShll2, N: n} }
func Shll8(n uint8) Instruction { return Instruction{Op: OpShll8, N: n} }
func Shll16(n uint8) Instruction { return Instruction{Op: OpShll16, N: n} }
func Shlr(n uint8) Instruction { return Instruction{Op: OpShlr, N: n} }
func Shlr2(n uint8) Instruction { return Instruction{Op: OpShlr2, N: n} }
func Shlr8(n uint8) Instruction { return Instruction{Op: OpShlr8, N: n} }
func Shlr16(n uint8) Instruction { return Instruction{Op: OpShlr16, N: n} }
func Shar(n uint8) Instruction { return Instruction{Op: OpShar, N: n} }
func Shld(n, m uint8) Instruction { return Instruction{Op: OpShld, N: n, M: m} }

func CmpEq(n, m uint8) Instruction { return Instruction{Op: OpCmpEq, N: n, M: m} }
func CmpEqI(v uint8) Instruction { return Instruction{Op: OpCmpEqI, Imm: v} }
func CmpHs(n, m uint8) Instruction { return Instruction{Op: OpCmpHs, N: n, M: m} }
func CmpGe(n, m uint8) Instruction { return Instruction{Op: OpCmpGe, N: n, M: m} }
func CmpHi(n, m uint8) Instruction { return Instruction{Op: OpCmpHi, N: n, M: m} }
func CmpGt(n, m uint8) Instruction { return Instruction{Op: OpCmpGt, N: n, M: m} }
func CmpPz(n uint8) Instruction { return Instruction{Op: OpCmpPz, N: n} }
func Dt(n uint8) Instruction { return Instruction{Op: OpDt, N: n} }

func BT(d uint8) Instruction { return Instruction{Op: OpBT, Imm: d} }
func BTs(d uint8) Instruction { return Instruction{Op: OpBTs, Imm: d} }
func BF(d uint8) Instruction { return Instruction{Op: OpBF, Imm: d} }
func BFs(d uint8) Instruction { return Instruction{Op: OpBFs, Imm: d} }
func BRA(d uint16) Instruction { return Instruction{Op: OpBRA, Disp: d & 0x0fff} }
func BSR(d uint16) Instruction { return Instruction{Op: OpBSR, Disp: d & 0x0fff} }
func Jmp(m uint8) Instruction { return Instruction{Op: OpJmp, M: m} }
func Jsr(m uint8) Instruction { return Instruction{Op: OpJsr, M: m} }
func Rts() Instruction { return Instruction{Op: OpRts} }

func StsPr(n uint8) Instruction { return Instruction{Op: OpStsPr, N: n} }
func StsMacl(n uint8) Instruction { return Instruction{Op: OpStsMacl, N: n} }
func StsLMacl(n uint8) Instruction { return Instruction{Op: OpStsLMacl, N: n} }
func LdsLMacl(m uint8) Instruction { return Instruction{Op: OpLdsLMacl, N: m} }
func StsMach(n uint8) Instruction { return Instruction{Op: OpStsMach, N: n} }
func StsLMach(n uint8) Instruction { return Instruction{Op: OpStsLMach, N: n} }
func LdsLMach(m uint8) Instruction { return Instruction{Op: OpLdsLMach, N: m} }

// Literal is a raw 16-bit word emitted verbatim, used for inline constant
// pools and for opcodes the model does not name.
func Literal(hi, lo uint8) Instruction {
	return Instruction{Op: OpLiteral, Disp: uint16(hi)<<8 | uint16(lo)}
}

// Label marks a position in symbolic assembly. It occupies no bytes.
func Label(name string) Instruction { return Instruction{Op: OpLabel, Name: name} }

// JumpToLabel is resolved by the assembler into BRA plus a delay-slot Nop.
func JumpToLabel(name string) Instruction { return Instruction{Op: OpJumpToLabel, Name: name} }

// CallToLabel is resolved by the assembler into BSR plus a delay-slot Nop.
func CallToLabel(name string) Instruction { return Instruction{Op: OpCallToLabel, Name: name} }

func (o Operand) String() string {
	switch o.Mode {
	case ModeRegister:
		return fmt.Sprintf("R%d", o.Reg)
	case ModeAtRegister:
		return fmt.Sprintf("@R%d", o.Reg)
	case ModeDisplacement8:
		return fmt.Sprintf("@(%d,PC)", o.Disp)
	case ModeDisplacement4Reg:
		return fmt.Sprintf("@(%d,R%d)", o.Disp, o.Reg)
	case ModeOffsetR0:
		return fmt.Sprintf("@(R0,R%d)", o.Reg)
	}
	return "?"
}

var opNames = map[Op]string{
	OpLiteral: ".word", OpNop: "NOP",
	OpMov: "MOV", OpMovI: "MOV#", OpMovA: "MOVA", OpMovT: "MOVT",
	OpMovB: "MOV.B", OpMovW: "MOV.W", OpMovL: "MOV.L", OpExtuW: "EXTU.W",
	OpPushReg: "PUSH", OpPushRegB: "PUSH.B", OpPopReg: "POP",
	OpPushPRReg: "PUSH PR", OpPopPRReg: "POP PR",
	OpAdd: "ADD", OpAddI: "ADD#", OpSub: "SUB", OpSubc: "SUBC",
	OpMulL: "MUL.L", OpDmulSL: "DMULS.L",
	OpXor: "XOR", OpOr: "OR", OpTst: "TST",
	OpShll: "SHLL", OpShll2: "SHLL2", OpShll8: "SHLL8", OpShll16: "SHLL16",
	OpShlr: "SHLR", OpShlr2: "SHLR2", OpShlr8: "SHLR8", OpShlr16: "SHLR16",
	OpShar: "SHAR", OpShld: "SHLD",
	OpCmpEq: "CMP/EQ", OpCmpEqI: "CMP/EQ#", OpCmpHs: "CMP/HS", OpCmpGe: "CMP/GE",
	OpCmpHi: "CMP/HI", OpCmpGt: "CMP/GT", OpCmpPz: "CMP/PZ", OpDt: "DT",
	OpBT: "BT", OpBTs: "BT/S", OpBF: "BF", OpBFs: "BF/S",
	OpBRA: "BRA", OpBSR: "BSR", OpJmp: "JMP", OpJsr: "JSR", OpRts: "RTS",
	OpStsPr: "STS PR", OpStsMacl: "STS MACL", OpStsLMacl: "STS.L MACL",
	OpLdsLMacl: "LDS.L MACL", OpStsMach: "STS MACH", OpStsLMach: "STS.L MACH",
	OpLdsLMach: "LDS.L MACH",
	OpLabel: "LABEL", OpJumpToLabel: "JMP->", OpCallToLabel: "JSR->",
}

func (i Instruction) String() string {
	name := opNames[i.Op]
	switch i.Op {
	case OpNop, OpRts:
		return name
	case OpLiteral:
		return fmt.Sprintf("%s 0x%04X", name, i.Disp)
	case OpLabel, OpJumpToLabel, OpCallToLabel:
		return fmt.Sprintf("%s %s", name, i.Name)
	case OpMovI, OpAddI:
		return fmt.Sprintf("%s R%d, #0x%02X", name, i.N, i.Imm)
	case OpMovA, OpCmpEqI, OpBT, OpBTs, OpBF, OpBFs:
		return fmt.Sprintf("%s 0x%02X", name, i.Imm)
	case OpBRA, OpBSR:
		return fmt.Sprintf("%s 0x%03X", name, i.Disp)
	case OpMovB, OpMovW, OpMovL:
		return fmt.Sprintf("%s %s, %s", name, i.Dst, i.Src)
	case OpJmp, OpJsr:
		return fmt.Sprintf("%s @R%d", name, i.M)
	case OpPushReg, OpPushRegB:
		return fmt.Sprintf("%s R%d (via R%d)", name, i.M, i.N)
	case OpPopReg:
		return fmt.Sprintf("%s R%d (via R%d)", name, i.N, i.M)
	case OpMovT, OpShll, OpShll2, OpShll8, OpShll16, OpShlr, OpShlr2, OpShlr8,
		OpShlr16, OpShar, OpCmpPz, OpDt, OpStsPr, OpStsMacl, OpStsLMacl,
		OpLdsLMacl, OpStsMach, OpStsLMach, OpLdsLMach, OpPushPRReg, OpPopPRReg:
		return fmt.Sprintf("%s R%d", name, i.N)
	}
	return fmt.Sprintf("%s R%d, R%d", name, i.N, i.M)
}
