package codegen

import (
	"fmt"

	"github.com/Lol3rrr/prizm-sub000/ir"
	"github.com/Lol3rrr/prizm-sub000/sh"
)

// generateStatement lowers a single statement.
func generateStatement(stmt ir.Statement, ctx *Context, vars varOffsets) ([]sh.Instruction, error) {
	switch s := stmt.(type) {
	case ir.Declaration:
		// Space was reserved by the frame layout.
		return nil, nil

	case ir.Assignment:
		return generateAssignment(s, ctx, vars)

	case ir.DerefAssignment:
		return generateDerefAssignment(s, ctx, vars)

	case ir.Return:
		result, err := generateExpression(s.Expr, ctx, vars)
		if err != nil {
			return nil, err
		}
		return append(result, functionReturn()...), nil

	case ir.SingleExpression:
		return generateExpression(s.Expr, ctx, vars)

	case ir.WhileLoop:
		return generateWhile(s, ctx, vars)

	case ir.If:
		return generateIf(s, ctx, vars)
	}

	return nil, fmt.Errorf("unknown statement %T", stmt)
}

// generateAssignment stores R0 into the variable's frame slot with the
// width of its declared type.
func generateAssignment(s ir.Assignment, ctx *Context, vars varOffsets) ([]sh.Instruction, error) {
	meta, ok := vars[s.Name]
	if !ok {
		return nil, fmt.Errorf("undeclared identifier %q", s.Name)
	}

	result, err := generateExpression(s.Expr, ctx, vars)
	if err != nil {
		return nil, err
	}

	result = append(result,
		sh.Mov(regScratch, regFP),
		sh.AddI(regScratch, meta.offset),
		movInstr(sh.AtReg(regScratch), sh.Reg(regAccum), meta.dataType),
	)
	return result, nil
}

// generateDerefAssignment evaluates the target address, parks it, then
// evaluates the value and stores through the address. Writing through a
// declared pointer uses the pointee's width; any other target gets a
// single byte.
func generateDerefAssignment(s ir.DerefAssignment, ctx *Context, vars varOffsets) ([]sh.Instruction, error) {
	result, err := generateExpression(s.Target, ctx, vars)
	if err != nil {
		return nil, err
	}
	result = append(result, sh.Push(regAccum))

	value, err := generateExpression(s.Value, ctx, vars)
	if err != nil {
		return nil, err
	}
	result = append(result, value...)
	result = append(result, sh.Pop(regScratch))

	target, source := sh.AtReg(regScratch), sh.Reg(regAccum)

	mov := sh.MovB(target, source)
	if variable, ok := s.Target.(ir.Variable); ok {
		meta, found := vars[variable.Name]
		if !found {
			return nil, fmt.Errorf("undeclared identifier %q", variable.Name)
		}
		if meta.dataType.Kind != ir.KindPtr {
			return nil, fmt.Errorf("cannot dereference non-pointer %q of type %s",
				variable.Name, meta.dataType)
		}
		mov = movInstr(target, source, *meta.dataType.Inner)
	}
	result = append(result, mov)

	return result, nil
}

// generateComparison emits the instruction that sets T for the condition.
// The left operand is expected in leftReg, the right in rightReg.
// Less-than is currently always the unsigned comparison.
func generateComparison(cmp ir.Comparison, leftReg, rightReg uint8, signed bool) (sh.Instruction, error) {
	switch cmp {
	case ir.Equal:
		return sh.CmpEq(leftReg, rightReg), nil
	case ir.LessThan:
		if signed {
			return sh.CmpGt(rightReg, leftReg), nil
		}
		return sh.CmpHi(rightReg, leftReg), nil
	}
	return sh.Instruction{}, fmt.Errorf("unknown comparison %v", cmp)
}

// generateCondition evaluates both sides of the condition and emits the
// branch pair: BT skips the jump to endLabel when the condition holds.
func generateCondition(cond ir.Condition, endLabel string, ctx *Context, vars varOffsets) ([]sh.Instruction, error) {
	result, err := generateExpression(cond.Left, ctx, vars)
	if err != nil {
		return nil, err
	}
	result = append(result, sh.Push(regAccum))

	right, err := generateExpression(cond.Right, ctx, vars)
	if err != nil {
		return nil, err
	}
	result = append(result, right...)
	result = append(result, sh.Pop(regScratch))

	// R1 holds the left side, R0 the right side.
	cmp, err := generateComparison(cond.Comparison, regScratch, regAccum, false)
	if err != nil {
		return nil, err
	}
	result = append(result,
		cmp,
		// Skip the jump to the end when the condition held. BT without
		// the slot variant takes no delay slot.
		sh.BT(1),
		sh.JumpToLabel(endLabel),
		sh.Nop(),
	)

	return result, nil
}

func generateWhile(s ir.WhileLoop, ctx *Context, vars varOffsets) ([]sh.Instruction, error) {
	startLabel := ctx.nextLabel("WHILE_START")
	endLabel := ctx.nextLabel("WHILE_END")

	result := []sh.Instruction{sh.Label(startLabel)}

	cond, err := generateCondition(s.Cond, endLabel, ctx, vars)
	if err != nil {
		return nil, err
	}
	result = append(result, cond...)

	for _, inner := range s.Body {
		instrs, err := generateStatement(inner, ctx, vars)
		if err != nil {
			return nil, err
		}
		result = append(result, instrs...)
	}

	result = append(result,
		sh.JumpToLabel(startLabel),
		sh.Nop(),
		sh.Label(endLabel),
	)
	return result, nil
}

func generateIf(s ir.If, ctx *Context, vars varOffsets) ([]sh.Instruction, error) {
	endLabel := ctx.nextLabel("IF_END")

	result, err := generateCondition(s.Cond, endLabel, ctx, vars)
	if err != nil {
		return nil, err
	}

	for _, inner := range s.Body {
		instrs, err := generateStatement(inner, ctx, vars)
		if err != nil {
			return nil, err
		}
		result = append(result, instrs...)
	}

	result = append(result, sh.Label(endLabel))
	return result, nil
}
