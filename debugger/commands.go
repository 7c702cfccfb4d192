package debugger

import (
	"fmt"
	"strconv"

	"github.com/Lol3rrr/prizm-sub000/vm"
)

// Command handler implementations

// cmdRun executes until a breakpoint, an exception or program completion
// (PC dropping to zero after the return from main).
func (d *Debugger) cmdRun(args []string) error {
	for {
		if bp := d.Breakpoints.At(d.Em.PC()); bp != nil {
			bp.HitCount++
			d.Printf("Breakpoint %d at 0x%08X\n", bp.ID, bp.Address)
			return nil
		}

		if err := d.Em.Tick(); err != nil {
			d.Printf("Error: %v\n", err)
			return nil
		}

		if d.Em.PC() == 0 {
			d.Println("Program finished")
			return nil
		}
	}
}

// cmdStep executes a single instruction.
func (d *Debugger) cmdStep(args []string) error {
	if err := d.Em.Tick(); err != nil {
		d.Printf("Error: %v\n", err)
	}
	return nil
}

// cmdBreak sets a breakpoint at an address.
func (d *Debugger) cmdBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: b <hex-address>")
	}

	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}

	bp := d.Breakpoints.AddBreakpoint(address)
	d.Printf("Breakpoint %d at 0x%08X\n", bp.ID, address)
	return nil
}

// cmdDelete deletes breakpoint(s).
func (d *Debugger) cmdDelete(args []string) error {
	if len(args) == 0 {
		d.Breakpoints.Clear()
		d.Println("All breakpoints deleted")
		return nil
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}

	if err := d.Breakpoints.DeleteBreakpoint(id); err != nil {
		return err
	}

	d.Printf("Breakpoint %d deleted\n", id)
	return nil
}

// cmdInfo inspects emulator state: registers, the current instruction
// pair, the code region or the active stack slice.
func (d *Debugger) cmdInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: info reg|instr|code|stack|break")
	}

	switch args[0] {
	case "reg", "registers":
		d.Em.PrintRegisters(&d.Output)

	case "instr":
		current, err := d.Em.InstructionAt(0)
		if err != nil {
			return err
		}
		next, err := d.Em.InstructionAt(2)
		if err != nil {
			return err
		}
		d.Printf("Current Instruction: %v\n", current)
		d.Printf("Next Instruction:    %v\n", next)

	case "code":
		end := d.Em.Memory.HeapSize()
		if end > vm.CodeMappingOffset {
			d.Em.PrintCode(&d.Output, 0, end-vm.CodeMappingOffset)
		}

	case "stack":
		d.Em.PrintStack(&d.Output)

	case "break", "breakpoints":
		bps := d.Breakpoints.All()
		if len(bps) == 0 {
			d.Println("No breakpoints set")
			return nil
		}
		for _, bp := range bps {
			d.Printf("Breakpoint %d at 0x%08X (hits: %d)\n", bp.ID, bp.Address, bp.HitCount)
		}

	default:
		return fmt.Errorf("unknown info target: %s", args[0])
	}

	return nil
}

// cmdVerbose toggles the per-instruction trace.
func (d *Debugger) cmdVerbose(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: verbose true|false")
	}

	switch args[0] {
	case "true":
		d.Em.Verbose = true
		d.Println("Verbose output enabled")
	case "false":
		d.Em.Verbose = false
		d.Println("Verbose output disabled")
	default:
		return fmt.Errorf("usage: verbose true|false")
	}
	return nil
}

func (d *Debugger) cmdHelp(args []string) error {
	d.Println(`Commands:
  run, r           Run until breakpoint, error or completion
  step, s          Execute a single instruction
  b ADDR           Set breakpoint at address (hex with 0x prefix)
  delete [ID]      Delete one or all breakpoints
  info reg         Show registers and control registers
  info instr       Show current and next instruction
  info code        Disassemble the loaded code
  info stack       Show the active stack slice
  info break       List breakpoints
  verbose BOOL     Enable/disable instruction trace (true|false)
  help             Show this help
  quit             Leave the debugger`)
	return nil
}
