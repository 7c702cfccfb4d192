package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Lol3rrr/prizm-sub000/sh"
	"github.com/Lol3rrr/prizm-sub000/vm"
)

// tuiContext bundles the widgets of the TUI debugger.
type tuiContext struct {
	app *tview.Application
	dbg *Debugger

	registersView *tview.TextView
	codeView      *tview.TextView
	outputView    *tview.TextView
	commandInput  *tview.InputField
}

// RunTUI starts the full-screen debugger interface. The layout mirrors
// the command-line debugger: registers and disassembly on top, command
// output below, a command line at the bottom.
func RunTUI(d *Debugger) error {
	ctx := &tuiContext{
		app: tview.NewApplication(),
		dbg: d,
	}

	ctx.registersView = tview.NewTextView().SetDynamicColors(true)
	ctx.registersView.SetBorder(true).SetTitle(" Registers ")

	ctx.codeView = tview.NewTextView().SetDynamicColors(true)
	ctx.codeView.SetBorder(true).SetTitle(" Code ")

	ctx.outputView = tview.NewTextView().SetScrollable(true)
	ctx.outputView.SetBorder(true).SetTitle(" Output ")

	ctx.commandInput = tview.NewInputField().SetLabel("> ")
	ctx.commandInput.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		line := ctx.commandInput.GetText()
		ctx.commandInput.SetText("")
		ctx.execute(line)
	})

	top := tview.NewFlex().
		AddItem(ctx.registersView, 0, 1, false).
		AddItem(ctx.codeView, 0, 2, false)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 0, 2, false).
		AddItem(ctx.outputView, 0, 1, false).
		AddItem(ctx.commandInput, 1, 0, true)

	ctx.refresh()

	return ctx.app.SetRoot(layout, true).SetFocus(ctx.commandInput).Run()
}

// execute runs a command line and refreshes the views.
func (ctx *tuiContext) execute(line string) {
	if err := ctx.dbg.ExecuteCommand(line); err != nil {
		fmt.Fprintf(ctx.outputView, "%v\n", err)
	}
	if output := ctx.dbg.GetOutput(); output != "" {
		fmt.Fprint(ctx.outputView, output)
	}
	ctx.outputView.ScrollToEnd()

	if ctx.dbg.Quit {
		ctx.app.Stop()
		return
	}
	ctx.refresh()
}

// refresh redraws the register and disassembly panes around the current
// program counter.
func (ctx *tuiContext) refresh() {
	var regs strings.Builder
	ctx.dbg.Em.PrintRegisters(&regs)
	ctx.registersView.SetText(regs.String())

	ctx.codeView.SetText(ctx.disassembleAround(ctx.dbg.Em.PC()))
}

// disassembleAround renders a window of instructions centred on the PC,
// marking the current one.
func (ctx *tuiContext) disassembleAround(pc uint32) string {
	const contextLines = 8

	var sb strings.Builder
	start := pc
	if start >= vm.CodeMappingOffset+contextLines*2 {
		start -= contextLines * 2
	} else {
		start = vm.CodeMappingOffset
	}

	for addr := start; addr < pc+contextLines*2; addr += 2 {
		word, err := ctx.dbg.Em.Memory.ReadWord(addr)
		if err != nil {
			break
		}
		marker := "  "
		if addr == pc {
			marker = "=>"
		}
		fmt.Fprintf(&sb, "%s [%08X] %v\n", marker, addr, sh.Decode(word))
	}
	return sb.String()
}
