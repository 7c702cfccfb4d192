// Package codegen lowers the IR into symbolic assembly: real instructions
// plus Label/JumpToLabel/CallToLabel markers that the assembler resolves.
//
// Calling convention: R15 is the stack pointer, R14 the frame pointer, R0
// the primary accumulator and return value, R1 the scratch register.
// The stack grows down; arguments are pushed right to left and discarded
// by the caller.
package codegen

import (
	"fmt"

	"github.com/Lol3rrr/prizm-sub000/ir"
	"github.com/Lol3rrr/prizm-sub000/sh"
)

const (
	regAccum   = 0
	regScratch = 1
	regSyscall = 2
	regFP      = 14
	regSP      = 15
)

// Context carries the per-translation state of a lowering run: the label
// counter keeping generated jump targets unique, and the collected
// non-fatal diagnostics.
type Context struct {
	labelCounter int
	Warnings     []string
}

// nextLabel returns a fresh label with the given prefix. A monotonic
// counter keeps the output reproducible across runs.
func (c *Context) nextLabel(prefix string) string {
	c.labelCounter++
	return fmt.Sprintf("%s_%d", prefix, c.labelCounter)
}

func (c *Context) warnf(format string, args ...interface{}) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

// Generate lowers the functions into one symbolic instruction list. The
// program entry is an unconditional jump to main, so the list is valid
// regardless of function order.
func Generate(funcs []ir.Function) ([]sh.Instruction, *Context, error) {
	ctx := &Context{}
	result := []sh.Instruction{sh.JumpToLabel("main")}

	for i := range funcs {
		if err := generateFunction(&funcs[i], &result, ctx); err != nil {
			return nil, ctx, fmt.Errorf("function %s: %w", funcs[i].Name, err)
		}
	}

	return result, ctx, nil
}
