package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Lol3rrr/prizm-sub000/compiler"
	"github.com/Lol3rrr/prizm-sub000/config"
	"github.com/Lol3rrr/prizm-sub000/debugger"
	"github.com/Lol3rrr/prizm-sub000/g3a"
	"github.com/Lol3rrr/prizm-sub000/loader"
	"github.com/Lol3rrr/prizm-sub000/term"
	"github.com/Lol3rrr/prizm-sub000/vm"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(0)
	}

	switch os.Args[1] {
	case "compile":
		if err := runCompile(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "emulate":
		if err := runEmulate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version", "-version", "--version":
		fmt.Printf("rizm %s\n", Version)
	case "help", "-help", "--help":
		printHelp()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

// runCompile implements `rizm compile -i <source.c> -o <output.g3a>`.
func runCompile(args []string) error {
	flags := flag.NewFlagSet("compile", flag.ExitOnError)
	input := flags.String("i", "", "Source file to compile")
	output := flags.String("o", "", "Output container file")
	name := flags.String("name", "", "Application name (default: from config)")
	verbose := flags.Bool("verbose", false, "Dump the parsed functions")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *input == "" || *output == "" {
		return fmt.Errorf("usage: rizm compile -i <source.c> -o <output.g3a>")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if *verbose {
		content, err := os.ReadFile(*input) // #nosec G304 -- user-specified source path
		if err != nil {
			return err
		}
		functions, err := compiler.ParseOnly(string(content), *input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		var dump strings.Builder
		for i := range functions {
			functions[i].Dump(&dump)
		}
		fmt.Print(dump.String())
	}

	result, err := compiler.CompileFile(*input)
	if err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	appName := *name
	if appName == "" {
		appName = cfg.Container.Name
	}

	builder := g3a.NewFileBuilder(appName, time.Now()).
		ShortName(cfg.Container.ShortName).
		InternalName(cfg.Container.InternalName).
		Version(cfg.Container.Version).
		FileName("/" + filepath.Base(*output)).
		Code(result.Code)
	if cfg.Container.SelectedIcon != "" {
		builder.SelectedImagePath(cfg.Container.SelectedIcon)
	}
	if cfg.Container.UnselectedIcon != "" {
		builder.UnselectedImagePath(cfg.Container.UnselectedIcon)
	}

	file := builder.Finish()
	if err := os.WriteFile(*output, file.Serialize(), 0644); err != nil { // #nosec G306 -- container is not sensitive
		return fmt.Errorf("writing container: %w", err)
	}

	fmt.Printf("Compiled %s -> %s (%d instruction bytes)\n", *input, *output, len(result.Code))
	return nil
}

// runEmulate implements `rizm emulate -i <program.g3a>` with the
// interactive debugger loop, optionally as a TUI or with the terminal
// screen attached.
func runEmulate(args []string) error {
	flags := flag.NewFlagSet("emulate", flag.ExitOnError)
	input := flags.String("i", "", "Container file to emulate")
	verbose := flags.Bool("verbose", false, "Trace every executed instruction")
	tui := flags.Bool("tui", false, "Use the TUI debugger")
	screen := flags.Bool("screen", false, "Render the calculator display into the terminal")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *input == "" {
		return fmt.Errorf("usage: rizm emulate -i <program.g3a>")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var (
		inputSink   vm.Input
		displaySink vm.Display
	)
	if *screen || *tui {
		tcellScreen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("opening terminal screen: %w", err)
		}
		if err := tcellScreen.Init(); err != nil {
			return fmt.Errorf("initialising terminal screen: %w", err)
		}
		defer tcellScreen.Fini()

		inputSink = term.NewInput(tcellScreen)
		displaySink = term.NewDisplay(tcellScreen)
	} else {
		inputSink = term.NewStdinInput()
		displaySink = vm.NewMockDisplay()
	}

	em, err := loader.BootFromPath(*input, inputSink, displaySink)
	if err != nil {
		return err
	}
	em.Verbose = *verbose || cfg.Emulator.Verbose
	em.TickLimit = cfg.Emulator.MaxTicks

	dbg := debugger.NewDebugger(em)

	if *tui {
		return debugger.RunTUI(dbg)
	}

	fmt.Printf("rizm debugger - program loaded: %s\n", *input)
	fmt.Println("Type 'help' for commands")
	return debugger.RunCLI(dbg)
}

func printHelp() {
	fmt.Printf(`rizm %s - C-subset compiler and emulator for the calculator

Usage:
  rizm compile -i <source.c> -o <output.g3a>
  rizm emulate -i <program.g3a> [-verbose] [-tui] [-screen]

Compile options:
  -i FILE      Source file
  -o FILE      Output container
  -name NAME   Application name (default from config)
  -verbose     Dump the parsed functions before compiling

Emulate options:
  -i FILE      Container file
  -verbose     Trace every executed instruction
  -tui         Full-screen TUI debugger
  -screen      Render the calculator display into the terminal

Debugger commands (emulate mode):
  run, step, b <hex-addr>, delete,
  info reg|instr|code|stack|break, verbose true|false, help, quit

Configuration is read from %s.
`, Version, config.GetConfigPath())
}
