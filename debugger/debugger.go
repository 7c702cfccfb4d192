// Package debugger is the interactive shell around the emulator: a
// command loop with breakpoints, state inspection and an optional TUI
// front-end.
package debugger

import (
	"fmt"
	"strings"

	"github.com/Lol3rrr/prizm-sub000/vm"
)

// Debugger holds the interactive session state.
type Debugger struct {
	Em *vm.Emulator

	// Breakpoint management
	Breakpoints *BreakpointManager

	// Command history
	History *CommandHistory

	// Last command (for repeat on empty input)
	LastCommand string

	// Quit is set once the session should end.
	Quit bool

	// Output buffer
	Output strings.Builder
}

// NewDebugger creates a debugger around the emulator.
func NewDebugger(em *vm.Emulator) *Debugger {
	return &Debugger{
		Em:          em,
		Breakpoints: NewBreakpointManager(),
		History:     NewCommandHistory(),
	}
}

// ResolveAddress parses a numeric address, hex with 0x prefix or decimal.
func (d *Debugger) ResolveAddress(addrStr string) (uint32, error) {
	var addr uint32
	if strings.HasPrefix(addrStr, "0x") || strings.HasPrefix(addrStr, "0X") {
		if _, err := fmt.Sscanf(addrStr, "0x%x", &addr); err != nil {
			return 0, fmt.Errorf("invalid address: %s", addrStr)
		}
		return addr, nil
	}
	if _, err := fmt.Sscanf(addrStr, "%d", &addr); err != nil {
		return 0, fmt.Errorf("invalid address: %s", addrStr)
	}
	return addr, nil
}

// ExecuteCommand processes and executes a debugger command line.
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)

	// Empty command repeats the last one (for step, run, etc.)
	if cmdLine == "" {
		cmdLine = d.LastCommand
	}
	if cmdLine != "" {
		d.History.Add(cmdLine)
		d.LastCommand = cmdLine
	}

	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	return d.handleCommand(cmd, args)
}

// handleCommand dispatches commands to the handlers in commands.go.
func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "run", "r":
		return d.cmdRun(args)
	case "step", "s":
		return d.cmdStep(args)

	case "b", "break":
		return d.cmdBreak(args)
	case "delete", "d":
		return d.cmdDelete(args)

	case "info", "i":
		return d.cmdInfo(args)
	case "verbose":
		return d.cmdVerbose(args)

	case "help", "h", "?":
		return d.cmdHelp(args)
	case "quit", "q", "exit":
		d.Quit = true
		return nil

	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

// GetOutput returns and clears the output buffer.
func (d *Debugger) GetOutput() string {
	output := d.Output.String()
	d.Output.Reset()
	return output
}

// Printf writes formatted output to the output buffer.
func (d *Debugger) Printf(format string, args ...interface{}) {
	d.Output.WriteString(fmt.Sprintf(format, args...))
}

// Println writes a line to the output buffer.
func (d *Debugger) Println(args ...interface{}) {
	d.Output.WriteString(fmt.Sprintln(args...))
}
