package codegen

import (
	"fmt"

	"github.com/Lol3rrr/prizm-sub000/ir"
	"github.com/Lol3rrr/prizm-sub000/sh"
)

// indexedElementSize is the byte stride used for indexed accesses.
// TODO: derive from the element type instead; long is the only stride the
// current source dialect exercises.
const indexedElementSize = 4

// generateExpression emits instructions that leave the expression's value
// in R0. R1 is scratch and is preserved around every sub-evaluation.
func generateExpression(exp ir.Expression, ctx *Context, vars varOffsets) ([]sh.Instruction, error) {
	if value, ok := foldConstant(exp); ok {
		return storeU32(regAccum, value.AsU32()), nil
	}

	switch e := exp.(type) {
	case ir.Constant:
		return storeU32(regAccum, e.Value.AsU32()), nil

	case ir.Variable:
		meta, ok := vars[e.Name]
		if !ok {
			return nil, fmt.Errorf("undeclared identifier %q", e.Name)
		}
		if meta.dataType.Kind == ir.KindArray {
			// Array lvalues decay to their address.
			return []sh.Instruction{
				sh.Mov(regAccum, regFP),
				sh.AddI(regAccum, meta.offset),
			}, nil
		}
		return []sh.Instruction{
			sh.Push(regScratch),
			sh.Mov(regScratch, regFP),
			sh.AddI(regScratch, meta.offset),
			movInstr(sh.Reg(regAccum), sh.AtReg(regScratch), meta.dataType),
			sh.Pop(regScratch),
		}, nil

	case ir.Reference:
		meta, ok := vars[e.Name]
		if !ok {
			return nil, fmt.Errorf("undeclared identifier %q", e.Name)
		}
		return []sh.Instruction{
			sh.Mov(regAccum, regFP),
			sh.AddI(regAccum, meta.offset),
		}, nil

	case ir.Dereference:
		result, err := generateExpression(e.Expr, ctx, vars)
		if err != nil {
			return nil, err
		}
		// TODO: the load is always long regardless of the pointee type.
		return append(result, sh.MovL(sh.Reg(regAccum), sh.AtReg(regAccum))), nil

	case ir.Indexed:
		return generateIndexed(e, ctx, vars)

	case ir.Operation:
		return generateOperation(e, ctx, vars)

	case ir.Call:
		if e.Name == "__syscall" {
			return generateSyscallCall(e, ctx, vars)
		}
		return generateCall(e, ctx, vars)

	case ir.Empty:
		return nil, nil
	}

	return nil, fmt.Errorf("unknown expression %v", exp)
}

// generateOperation evaluates the right child first, parks it on the
// stack, evaluates the left child and applies the operator over R0/R1.
func generateOperation(e ir.Operation, ctx *Context, vars varOffsets) ([]sh.Instruction, error) {
	result := []sh.Instruction{sh.Push(regScratch)}

	right, err := generateExpression(e.Right, ctx, vars)
	if err != nil {
		return nil, err
	}
	result = append(result, right...)
	result = append(result, sh.Push(regAccum))

	left, err := generateExpression(e.Left, ctx, vars)
	if err != nil {
		return nil, err
	}
	result = append(result, left...)
	result = append(result, sh.Pop(regScratch))

	switch e.Op {
	case ir.Add:
		result = append(result, sh.Add(regAccum, regScratch))
	case ir.Multiply:
		result = append(result,
			sh.MulL(regAccum, regScratch),
			sh.StsMacl(regAccum),
		)
	default:
		return nil, fmt.Errorf("operation %q is not implemented", e.Op)
	}

	result = append(result, sh.Pop(regScratch))
	return result, nil
}

// generateIndexed computes base + offset*element-size into R0.
func generateIndexed(e ir.Indexed, ctx *Context, vars varOffsets) ([]sh.Instruction, error) {
	result := []sh.Instruction{sh.Push(regScratch)}

	base, err := generateExpression(e.Base, ctx, vars)
	if err != nil {
		return nil, err
	}
	result = append(result, base...)
	result = append(result, sh.Push(regAccum))

	offset, err := generateExpression(e.Offset, ctx, vars)
	if err != nil {
		return nil, err
	}
	result = append(result, offset...)
	result = append(result,
		sh.MovI(regScratch, indexedElementSize),
		sh.MulL(regAccum, regScratch),
		sh.StsMacl(regAccum),
		sh.Pop(regScratch),
		sh.Add(regAccum, regScratch),
		sh.Pop(regScratch),
	)

	return result, nil
}

// generateCall pushes the arguments right to left, saves PR around the
// subroutine jump and discards the arguments afterwards. The return value
// arrives in R0.
func generateCall(e ir.Call, ctx *Context, vars varOffsets) ([]sh.Instruction, error) {
	var result []sh.Instruction

	for i := len(e.Args) - 1; i >= 0; i-- {
		arg, err := generateExpression(e.Args[i], ctx, vars)
		if err != nil {
			return nil, err
		}
		result = append(result, arg...)
		result = append(result, sh.Push(regAccum))
	}

	result = append(result,
		sh.PushPR(),
		sh.CallToLabel(e.Name),
		sh.Nop(),
		sh.PopPR(),
	)

	for range e.Args {
		result = append(result, sh.AddI(regSP, 4))
	}

	return result, nil
}

// movInstr picks the move width matching the data type's assignment size.
func movInstr(dst, src sh.Operand, dt ir.DataType) sh.Instruction {
	switch dt.AssignSize() {
	case 1:
		return sh.MovB(dst, src)
	case 2:
		return sh.MovW(dst, src)
	default:
		return sh.MovL(dst, src)
	}
}

// foldConstant evaluates an operation tree whose leaves are all constants.
// Folding happens during lowering, so constant arithmetic never touches
// the two working registers.
func foldConstant(exp ir.Expression) (ir.Value, bool) {
	switch e := exp.(type) {
	case ir.Constant:
		return e.Value, true
	case ir.Operation:
		left, okL := foldConstant(e.Left)
		right, okR := foldConstant(e.Right)
		if !okL || !okR {
			return ir.Value{}, false
		}
		l, r := left.AsU32(), right.AsU32()
		switch e.Op {
		case ir.Add:
			return ir.U32Value(l + r), true
		case ir.Subtract:
			return ir.U32Value(l - r), true
		case ir.Multiply:
			return ir.U32Value(l * r), true
		case ir.Divide:
			if r == 0 {
				return ir.Value{}, false
			}
			return ir.U32Value(l / r), true
		}
	}
	return ir.Value{}, false
}
