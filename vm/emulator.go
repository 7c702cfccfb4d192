// Package vm is the instruction-accurate emulator for the calculator CPU:
// fetch/decode/execute with delay-slot handling, grow-on-access memory
// with the VRAM mapping, and the syscall trap dispatching to the display
// and input sinks.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/Lol3rrr/prizm-sub000/sh"
)

const (
	// CodeMappingOffset is where compiled code is loaded; execution
	// starts there.
	CodeMappingOffset = 0x00300000

	// SyscallTrapAddress intercepts jumps and dispatches them to host
	// services instead of fetching.
	SyscallTrapAddress = 0x80020070

	// InitialStackTop is the starting SP and FP: the top of a 512 KiB
	// heap window.
	InitialStackTop = 0x80000
)

// queuedInstruction is a pending delay-slot instruction together with the
// address it was fetched from.
type queuedInstruction struct {
	addr  uint32
	instr sh.Instruction
}

// Emulator owns the CPU state and memory arena for its lifetime; the
// display and input sinks are borrowed for the duration of each tick.
type Emulator struct {
	CPU    *CPU
	Memory *Memory

	Input   Input
	Display Display

	// Verbose enables the per-instruction trace on Output.
	Verbose bool
	Output  io.Writer

	// TickLimit aborts execution after that many ticks; zero means
	// unlimited.
	TickLimit uint64

	queued *queuedInstruction
	ticks  uint64
}

// New creates an emulator with the code loaded at the code mapping offset
// and SP/FP at the top of the heap window.
func New(code []byte, input Input, display Display) *Emulator {
	em := &Emulator{
		CPU:     NewCPU(CodeMappingOffset),
		Memory:  NewMemory(),
		Input:   input,
		Display: display,
		Output:  os.Stdout,
	}

	em.CPU.WriteRegister(R15, InitialStackTop)
	em.CPU.WriteRegister(R14, InitialStackTop)

	for i, b := range code {
		em.Memory.WriteByte(CodeMappingOffset+uint32(i), b, display)
	}

	return em
}

// NewFromInstructions is the test construction path: the instructions are
// encoded directly, without the assembler, and loaded as usual. Symbolic
// instructions are not allowed here.
func NewFromInstructions(instructions []sh.Instruction, input Input, display Display) *Emulator {
	code := make([]byte, 0, len(instructions)*2)
	for _, instr := range instructions {
		encoded := instr.Encode()
		code = append(code, encoded[0], encoded[1])
	}
	return New(code, input, display)
}

// PC returns the current program counter.
func (em *Emulator) PC() uint32 { return em.CPU.PC }

// Ticks returns the number of ticks executed so far.
func (em *Emulator) Ticks() uint64 { return em.ticks }

// Registers returns a snapshot of the sixteen general registers.
func (em *Emulator) Registers() [16]uint32 { return em.CPU.R }

// Heap returns a copy of the heap contents.
func (em *Emulator) Heap() []byte { return em.Memory.HeapSnapshot() }

// fetch reads and decodes the instruction at the address.
func (em *Emulator) fetch(addr uint32) (sh.Instruction, error) {
	word, err := em.Memory.ReadWord(addr)
	if err != nil {
		return sh.Instruction{}, err
	}
	return sh.Decode(word), nil
}

// InstructionAt decodes the instruction at the given offset from the
// current PC, for the debugger's instruction view.
func (em *Emulator) InstructionAt(offset uint32) (sh.Instruction, error) {
	return em.fetch(em.CPU.PC + offset)
}

func (em *Emulator) trace(addr uint32, instr sh.Instruction) {
	if em.Verbose {
		fmt.Fprintf(em.Output, "[%08X] %v\n", addr, instr)
	}
}

// Tick advances execution by exactly one instruction. A previously queued
// delay-slot instruction completes first: it executes while the program
// counter is held at the branch destination, which is restored afterwards
// so the slot runs exactly once between the branch and its target.
func (em *Emulator) Tick() error {
	if em.TickLimit > 0 && em.ticks >= em.TickLimit {
		return fmt.Errorf("tick limit exceeded (%d ticks)", em.TickLimit)
	}
	em.ticks++

	if q := em.queued; q != nil {
		em.queued = nil
		prevPC := em.CPU.PC
		em.trace(q.addr, q.instr)
		if err := em.execute(q.instr); err != nil {
			return err
		}
		em.CPU.PC = prevPC
		return nil
	}

	if em.CPU.PC == SyscallTrapAddress {
		if err := em.syscall(em.CPU.R[R0]); err != nil {
			return err
		}
		em.CPU.PC = em.CPU.PR
		return nil
	}

	instr, err := em.fetch(em.CPU.PC)
	if err != nil {
		return err
	}
	em.trace(em.CPU.PC, instr)
	return em.execute(instr)
}

// RunUntil ticks until the program counter reaches or passes the target.
func (em *Emulator) RunUntil(targetPC uint32) error {
	for {
		if err := em.Tick(); err != nil {
			return err
		}
		if em.CPU.PC >= targetPC {
			return nil
		}
	}
}

// RunToCompletion ticks until the program counter drops to zero, which is
// where a return from main ends up: main is entered by a plain branch, so
// its RTS pops the initial zero PR.
func (em *Emulator) RunToCompletion() error {
	for {
		if err := em.Tick(); err != nil {
			return err
		}
		if em.CPU.PC == 0 {
			return nil
		}
	}
}

// checkSlot verifies that the delay slot of a branch at the current PC
// does not contain another branch.
func (em *Emulator) checkSlot() error {
	slotAddr := em.CPU.PC + 2
	slot, err := em.fetch(slotAddr)
	if err != nil {
		return err
	}
	if slot.IsBranch() {
		return &Exception{Kind: SlotIllegal, Address: slotAddr, Instruction: slot}
	}
	return nil
}

// jump transfers control. For a delayed branch the instruction in the
// slot is queued to execute on the next tick, before the target's first
// instruction.
func (em *Emulator) jump(destination uint32, delayed bool) error {
	if delayed {
		slotAddr := em.CPU.PC + 2
		slot, err := em.fetch(slotAddr)
		if err != nil {
			return err
		}
		em.queued = &queuedInstruction{addr: slotAddr, instr: slot}
	}
	em.CPU.PC = destination
	return nil
}

// PrintRegisters writes the register file to the writer.
func (em *Emulator) PrintRegisters(w io.Writer) {
	fmt.Fprintf(w, "PC: 0x%08X PR: 0x%08X T: %v MACL: 0x%08X MACH: 0x%08X\n",
		em.CPU.PC, em.CPU.PR, em.CPU.T, em.CPU.MACL, em.CPU.MACH)
	for i, reg := range em.CPU.R {
		fmt.Fprintf(w, "R%-2d: 0x%08X", i, reg)
		if i%4 == 3 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, "  ")
		}
	}
}

// PrintStack writes the bytes between SP and FP to the writer.
func (em *Emulator) PrintStack(w io.Writer) {
	start, end := em.CPU.SP(), em.CPU.FP()
	if start > end {
		start, end = end, start
	}
	for addr := start; addr < end; addr++ {
		fmt.Fprintf(w, "[%08X] 0x%02X\n", addr, em.Memory.ReadByte(addr))
	}
}

// PrintCode disassembles the code region between the two offsets from the
// code mapping base.
func (em *Emulator) PrintCode(w io.Writer, start, end uint32) {
	for offset := start &^ 1; offset < end; offset += 2 {
		addr := CodeMappingOffset + offset
		instr, err := em.fetch(addr)
		if err != nil {
			fmt.Fprintf(w, "[%08X] <%v>\n", addr, err)
			return
		}
		fmt.Fprintf(w, "[%08X] %v\n", addr, instr)
	}
}
