package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"

	"github.com/Lol3rrr/prizm-sub000/loader"
)

func main() {
	input := flag.String("i", "", "Container file to emulate")
	verbose := flag.Bool("verbose", false, "Trace every executed instruction")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: rizm-gui -i <program.g3a>")
		os.Exit(1)
	}

	display := NewWindowDisplay()
	keypad := NewWindowInput()

	em, err := loader.BootFromPath(*input, keypad, display)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	em.Verbose = *verbose

	fyneApp := app.New()
	window := fyneApp.NewWindow("rizm")
	window.SetContent(display.Canvas())
	window.Canvas().SetOnTypedKey(keypad.HandleKey)

	go func() {
		if err := em.RunToCompletion(); err != nil {
			fmt.Fprintf(os.Stderr, "Runtime error at PC=0x%08X: %v\n", em.PC(), err)
		}
	}()

	window.ShowAndRun()
}
