package vm

import (
	"fmt"

	"github.com/Lol3rrr/prizm-sub000/sh"
)

// ExceptionKind classifies the ways execution can fault.
type ExceptionKind int

const (
	// SlotIllegal is raised when the delay slot of a branch contains
	// another branch.
	SlotIllegal ExceptionKind = iota
	// UnknownInstruction is raised when the executor meets an opcode it
	// has no semantics for; the decoder itself never fails.
	UnknownInstruction
	// UnalignedAccess is raised for word accesses at odd addresses and
	// long accesses not divisible by four.
	UnalignedAccess
)

// Exception is the single error sum surfaced by the emulator. A tick that
// raises one is aborted; the driver decides whether to continue.
type Exception struct {
	Kind        ExceptionKind
	Address     uint32
	Instruction sh.Instruction
}

func (e *Exception) Error() string {
	switch e.Kind {
	case SlotIllegal:
		return fmt.Sprintf("branch in delay slot at 0x%08X", e.Address)
	case UnknownInstruction:
		return fmt.Sprintf("unknown instruction %v at 0x%08X", e.Instruction, e.Address)
	case UnalignedAccess:
		return fmt.Sprintf("unaligned access at 0x%08X", e.Address)
	}
	return fmt.Sprintf("exception %d at 0x%08X", e.Kind, e.Address)
}
