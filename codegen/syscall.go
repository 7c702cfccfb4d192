package codegen

import (
	"fmt"

	"github.com/Lol3rrr/prizm-sub000/ir"
	"github.com/Lol3rrr/prizm-sub000/sh"
)

// syscallArgCount is the fixed arity of the __syscall intrinsic:
// the call id plus four parameters.
const syscallArgCount = 5

// generateSyscallCall lowers the __syscall intrinsic. The parameters are
// moved into R4..R7, the id into R0, and control transfers to the fixed
// syscall trap address through R2.
func generateSyscallCall(e ir.Call, ctx *Context, vars varOffsets) ([]sh.Instruction, error) {
	if len(e.Args) != syscallArgCount {
		return nil, fmt.Errorf("__syscall expects %d arguments (id, p1, p2, p3, p4), got %d",
			syscallArgCount, len(e.Args))
	}

	id, ok := foldConstant(e.Args[0])
	if !ok {
		return nil, fmt.Errorf("__syscall id must be a constant integer")
	}

	var result []sh.Instruction
	for i := 1; i <= 4; i++ {
		arg, err := generateExpression(e.Args[i], ctx, vars)
		if err != nil {
			return nil, err
		}
		result = append(result, arg...)
		result = append(result, sh.Mov(3+uint8(i), regAccum))
	}

	result = append(result, syscallTrap(uint16(id.AsU32()))...)
	return result, nil
}

// syscallTrap loads the call id into R0, builds the trap address
// 0x80020070 in R2 from immediates and shifts, and jumps there with PR
// saved around the call.
func syscallTrap(id uint16) []sh.Instruction {
	result := storeU16(regAccum, id)

	result = append(result,
		sh.MovI(regSyscall, 0x80),
		sh.Shll8(regSyscall),
		sh.AddI(regSyscall, 0x02),
		sh.Shll16(regSyscall),
		sh.AddI(regSyscall, 0x70),

		sh.PushPR(),
		sh.Jsr(regSyscall),
		sh.Nop(),
		sh.PopPR(),
	)

	return result
}
