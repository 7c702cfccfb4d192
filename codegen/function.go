package codegen

import (
	"fmt"

	"github.com/Lol3rrr/prizm-sub000/ir"
	"github.com/Lol3rrr/prizm-sub000/sh"
)

// varMeta is one entry of the frame layout table.
type varMeta struct {
	offset   uint8 // byte offset from FP
	dataType ir.DataType
}

// varOffsets maps variable names to their slot in the current frame.
type varOffsets map[string]varMeta

// paramBaseOffset skips the three longs between the locals and the first
// argument: the saved FP, the saved SP and the return PR.
const paramBaseOffset = 12

// frameLayout walks the function and assigns every local and parameter its
// FP-relative offset. Locals are laid out in declaration order, descending
// into loop bodies; parameters follow above the saved registers. The total
// local area size is returned so the prologue can reserve it.
func frameLayout(fn *ir.Function, ctx *Context) (varOffsets, uint8, error) {
	vars := make(varOffsets)
	var localSize uint8

	if err := localOffsets(fn.Body, vars, &localSize, ctx); err != nil {
		return nil, 0, err
	}

	current := localSize + paramBaseOffset
	for _, param := range fn.Params {
		size, err := slotSize(param.Type)
		if err != nil {
			return nil, 0, fmt.Errorf("parameter %s: %w", param.Name, err)
		}
		if uint32(current)%param.Type.AssignSize() != 0 {
			ctx.warnf("parameter %s is unaligned at offset 0x%X", param.Name, current)
		}
		vars[param.Name] = varMeta{offset: current, dataType: param.Type}
		current += size
	}

	return vars, localSize, nil
}

// localOffsets assigns the offsets of declared locals, recursing into loop
// bodies so that declarations hoisted out of for-loops get a slot too.
func localOffsets(stmts []ir.Statement, vars varOffsets, offset *uint8, ctx *Context) error {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case ir.Declaration:
			size, err := slotSize(s.Type)
			if err != nil {
				return fmt.Errorf("variable %s: %w", s.Name, err)
			}
			if uint32(*offset)%s.Type.AssignSize() != 0 {
				ctx.warnf("variable %s is unaligned at offset 0x%X", s.Name, *offset)
			}
			vars[s.Name] = varMeta{offset: *offset, dataType: s.Type}
			*offset += size
		case ir.WhileLoop:
			if err := localOffsets(s.Body, vars, offset, ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// slotSize is the frame space of one variable. Offsets are applied with
// the 8-bit add-immediate, which caps a frame slot at 127 bytes.
func slotSize(dt ir.DataType) (uint8, error) {
	size := dt.Size()
	if size > 127 {
		return 0, fmt.Errorf("type %s does not fit a stack frame slot (%d bytes)", dt, size)
	}
	return uint8(size), nil
}

// generateFunction emits label, prologue, body and epilogues for one
// function. The epilogue (unwind locals, restore SP and FP) is spliced in
// front of every RTS the body produced.
func generateFunction(fn *ir.Function, out *[]sh.Instruction, ctx *Context) error {
	vars, localSize, err := frameLayout(fn, ctx)
	if err != nil {
		return err
	}

	body := []sh.Instruction{
		sh.Label(fn.Name),
		sh.Push(regFP),
		sh.Push(regSP),
	}
	if localSize > 0 {
		body = append(body, sh.AddI(regSP, twosComplement(localSize)))
	}
	body = append(body, sh.Mov(regFP, regSP))

	for _, stmt := range fn.Body {
		instrs, err := generateStatement(stmt, ctx, vars)
		if err != nil {
			return err
		}
		body = append(body, instrs...)
	}

	*out = append(*out, spliceEpilogues(body, localSize)...)
	return nil
}

// spliceEpilogues inserts the frame teardown in front of every RTS.
func spliceEpilogues(body []sh.Instruction, localSize uint8) []sh.Instruction {
	epilogue := []sh.Instruction{
		sh.AddI(regSP, localSize),
		sh.Pop(regSP),
		sh.Pop(regFP),
	}

	result := make([]sh.Instruction, 0, len(body))
	for _, instr := range body {
		if instr.Op == sh.OpRts {
			result = append(result, epilogue...)
		}
		result = append(result, instr)
	}
	return result
}

// twosComplement negates an 8-bit offset so it can be applied with the
// sign-extending add-immediate.
func twosComplement(v uint8) uint8 {
	return (v ^ 0xff) + 1
}

// functionReturn is the shared tail of every return path.
func functionReturn() []sh.Instruction {
	return []sh.Instruction{sh.Rts(), sh.Nop()}
}
